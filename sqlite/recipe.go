package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/saucier"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ saucier.RecipeService = (*RecipeService)(nil)

// RecipeService implements saucier.RecipeService using SQLite. Recipes are
// stored as JSON keyed by source URL; a repeat store for the same URL
// replaces the previous row.
type RecipeService struct {
	db *DB
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(db *DB) *RecipeService {
	return &RecipeService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content []byte) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64(content))
	return hex.EncodeToString(b)
}

// CreateRecipe stores an extraction result, replacing any previous result
// for the same source URL.
func (s *RecipeService) CreateRecipe(ctx context.Context, rec *saucier.StoredRecipe) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(rec.Recipe)
	if err != nil {
		return fmt.Errorf("failed to encode recipe: %w", err)
	}

	rec.ID = uuid.New().String()
	rec.FetchedAt = time.Now().UTC()
	rec.ContentHash = hashContent(payload)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO recipes (id, source_url, recipe, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(source_url) DO UPDATE SET
			id = excluded.id,
			recipe = excluded.recipe,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
	`, rec.ID, rec.SourceURL, string(payload), rec.ContentHash,
		rec.FetchedAt.Format(time.RFC3339))

	return err
}

// FindRecipeByURL retrieves the cached result for a source URL.
func (s *RecipeService) FindRecipeByURL(ctx context.Context, url string) (*saucier.StoredRecipe, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, recipe, content_hash, fetched_at
		FROM recipes
		WHERE source_url = ?
	`, url)

	rec, err := scanRecipe(row.Scan)
	if err == sql.ErrNoRows {
		return nil, saucier.Errorf(saucier.ENOTFOUND, "no cached recipe for %q", url)
	}
	return rec, err
}

// FindRecipes retrieves cached results matching the filter, newest first.
func (s *RecipeService) FindRecipes(ctx context.Context, filter saucier.RecipeFilter) ([]*saucier.StoredRecipe, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, recipe, content_hash, fetched_at FROM recipes WHERE 1=1")

	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY fetched_at DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*saucier.StoredRecipe
	for rows.Next() {
		rec, err := scanRecipe(rows.Scan)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// DeleteRecipe permanently removes a cached result.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM recipes WHERE id = ?", id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return saucier.Errorf(saucier.ENOTFOUND, "recipe not found")
	}
	return nil
}

// scanRecipe reads one row through the given scan function.
func scanRecipe(scan func(dest ...any) error) (*saucier.StoredRecipe, error) {
	var rec saucier.StoredRecipe
	var payload, fetchedAt string

	if err := scan(&rec.ID, &rec.SourceURL, &payload, &rec.ContentHash, &fetchedAt); err != nil {
		return nil, err
	}

	rec.Recipe = &saucier.Recipe{}
	if err := json.Unmarshal([]byte(payload), rec.Recipe); err != nil {
		return nil, fmt.Errorf("failed to decode recipe: %w", err)
	}

	var err error
	rec.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fetched_at: %w", err)
	}

	return &rec, nil
}
