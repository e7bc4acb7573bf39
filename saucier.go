// Package saucier extracts structured recipe data from recipe web pages.
// It reads schema.org structured data (JSON-LD and microdata) when present
// and falls back to HTML heuristics when it is missing or empty, producing
// a canonical Recipe with normalized times and yields.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., schemaorg/, goquery/,
// sqlite/).
package saucier
