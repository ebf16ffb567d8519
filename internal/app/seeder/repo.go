// Package seeder orchestrates loading Open Multilingual Wordnet files into
// the database.
package seeder

import (
	"context"

	"github.com/heartmarshall/omw-seeder/internal/domain"
)

// SynsetBulkRepo defines the batch repository contract consumed by the seeder pipeline.
// All methods use only domain types; no adapter imports.
// Implemented by synset.Repo.
type SynsetBulkRepo interface {
	// Batch inserts: duplicates are skipped, the returned count is rows actually written.
	BulkInsertLemmas(ctx context.Context, lemmas []domain.SynsetLemma) (int, error)
	BulkInsertDefinitions(ctx context.Context, defs []domain.SynsetDefinition) (int, error)
	BulkInsertExamples(ctx context.Context, examples []domain.SynsetExample) (int, error)

	// Registry of imported files.
	UpsertSources(ctx context.Context, sources []domain.WordnetSource) error

	// Reads.
	GetSynset(ctx context.Context, key domain.SenseKey, language string) (*domain.Synset, error)
	CountLemmasByLanguage(ctx context.Context) (map[string]int, error)
}
