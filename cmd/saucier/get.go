package main

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/fwojciec/saucier"
)

// Run executes the get command: fetch one page, extract, print JSON.
func (c *GetCmd) Run(deps *Dependencies) error {
	if u, err := url.Parse(c.URL); err != nil || !u.IsAbs() || u.Host == "" {
		return saucier.Errorf(saucier.EINVALID, "invalid url: %q", c.URL)
	}

	html, finalURL, err := deps.Fetcher.Fetch(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", saucier.ErrorMessage(err))
		return err
	}

	rec, err := deps.Extractor.Extract(html, finalURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", saucier.ErrorMessage(err))
		return err
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode recipe: %w", err)
	}
	fmt.Fprintln(deps.Stdout, string(out))

	return nil
}
