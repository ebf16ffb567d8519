// Package synset stores OMW lemmas, definitions and examples keyed by
// WordNet sense key.
package synset

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/omw-seeder/internal/adapter/postgres"
	"github.com/heartmarshall/omw-seeder/internal/domain"
)

const (
	tableSources     = "omw_sources"
	tableLemmas      = "omw_lemmas"
	tableDefinitions = "omw_definitions"
	tableExamples    = "omw_examples"
)

var (
	lemmaColumns      = []string{"id", "synset_offset", "pos", "language", "lemma", "source_slug", "position", "created_at"}
	lemmaInsertCols   = []string{"id", "synset_offset", "pos", "language", "lemma", "lemma_search", "source_slug", "position", "created_at"}
	definitionColumns = []string{"id", "synset_offset", "pos", "language", "sense_index", "definition", "source_slug", "created_at"}
	exampleColumns    = []string{"id", "synset_offset", "pos", "language", "example", "source_slug", "position", "created_at"}
	sourceColumns     = []string{"id", "language", "name", "url", "license", "path", "total_lines", "imported_at"}
)

// Repo provides bulk writes and synset reads over the omw_* tables.
type Repo struct {
	db  postgres.DB
	txm *postgres.TxManager
	sb  squirrel.StatementBuilderType
}

// New creates a synset repository.
func New(db postgres.DB, txm *postgres.TxManager) *Repo {
	return &Repo{
		db:  db,
		txm: txm,
		sb:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ---------------------------------------------------------------------------
// Bulk inserts
// ---------------------------------------------------------------------------

// BulkInsertLemmas inserts lemmas in a single multi-row statement. Rows
// already present (same synset, language and lemma) are skipped. The lemma
// is stored verbatim; its search key goes to lemma_search.
// Returns the number of actually inserted rows.
func (r *Repo) BulkInsertLemmas(ctx context.Context, lemmas []domain.SynsetLemma) (int, error) {
	if len(lemmas) == 0 {
		return 0, nil
	}

	q := r.sb.Insert(tableLemmas).Columns(lemmaInsertCols...)
	for _, l := range lemmas {
		q = q.Values(l.ID, l.Key.Offset, l.Key.POS.Code(), l.Language, l.Lemma,
			domain.LemmaSearchKey(l.Lemma), l.SourceSlug, l.Position, l.CreatedAt)
	}

	return r.execInsert(ctx, q.Suffix("ON CONFLICT ON CONSTRAINT uq_omw_lemmas DO NOTHING"), "lemmas")
}

// BulkInsertDefinitions inserts definitions. A synset keeps at most one
// definition per language and sense index; later duplicates are skipped.
func (r *Repo) BulkInsertDefinitions(ctx context.Context, defs []domain.SynsetDefinition) (int, error) {
	if len(defs) == 0 {
		return 0, nil
	}

	q := r.sb.Insert(tableDefinitions).Columns(definitionColumns...)
	for _, d := range defs {
		q = q.Values(d.ID, d.Key.Offset, d.Key.POS.Code(), d.Language, d.SenseIndex, d.Definition, d.SourceSlug, d.CreatedAt)
	}

	return r.execInsert(ctx, q.Suffix("ON CONFLICT ON CONSTRAINT uq_omw_definitions DO NOTHING"), "definitions")
}

// BulkInsertExamples inserts examples, skipping exact duplicates.
func (r *Repo) BulkInsertExamples(ctx context.Context, examples []domain.SynsetExample) (int, error) {
	if len(examples) == 0 {
		return 0, nil
	}

	q := r.sb.Insert(tableExamples).Columns(exampleColumns...)
	for _, e := range examples {
		q = q.Values(e.ID, e.Key.Offset, e.Key.POS.Code(), e.Language, e.Example, e.SourceSlug, e.Position, e.CreatedAt)
	}

	return r.execInsert(ctx, q.Suffix("ON CONFLICT ON CONSTRAINT uq_omw_examples DO NOTHING"), "examples")
}

func (r *Repo) execInsert(ctx context.Context, q squirrel.InsertBuilder, what string) (int, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert %s: %w", what, err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, what, "bulk")
	}

	return int(tag.RowsAffected()), nil
}

// UpsertSources records imported files. Re-importing the same file for the
// same language refreshes its metadata. All rows are written in one
// transaction.
func (r *Repo) UpsertSources(ctx context.Context, sources []domain.WordnetSource) error {
	if len(sources) == 0 {
		return nil
	}

	return r.txm.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.db)
		for _, s := range sources {
			sql, args, err := r.sb.Insert(tableSources).
				Columns(sourceColumns...).
				Values(s.ID, s.Language, s.Name, s.URL, s.License, s.Path, s.TotalLines, s.ImportedAt).
				Suffix(`ON CONFLICT ON CONSTRAINT uq_omw_sources DO UPDATE SET
					name = EXCLUDED.name,
					url = EXCLUDED.url,
					license = EXCLUDED.license,
					total_lines = EXCLUDED.total_lines,
					imported_at = EXCLUDED.imported_at`).
				ToSql()
			if err != nil {
				return fmt.Errorf("build upsert source: %w", err)
			}

			if _, err := q.Exec(ctx, sql, args...); err != nil {
				return postgres.MapError(err, "source", s.Language+" "+s.Path)
			}
		}
		return nil
	})
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// GetSynset loads everything stored for key. An empty language means all
// languages. Returns domain.ErrNotFound if no rows match.
func (r *Repo) GetSynset(ctx context.Context, key domain.SenseKey, language string) (*domain.Synset, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	where := squirrel.Eq{"synset_offset": key.Offset, "pos": key.POS.Code()}
	if language != "" {
		where["language"] = language
	}

	lemmas, err := selectRows[lemmaRow](ctx, q, r.sb.Select(lemmaColumns...).From(tableLemmas).Where(where).
		OrderBy("language", "position", "lemma"))
	if err != nil {
		return nil, postgres.MapError(err, "synset", key.String())
	}

	defs, err := selectRows[definitionRow](ctx, q, r.sb.Select(definitionColumns...).From(tableDefinitions).Where(where).
		OrderBy("language", "sense_index"))
	if err != nil {
		return nil, postgres.MapError(err, "synset", key.String())
	}

	examples, err := selectRows[exampleRow](ctx, q, r.sb.Select(exampleColumns...).From(tableExamples).Where(where).
		OrderBy("language", "position"))
	if err != nil {
		return nil, postgres.MapError(err, "synset", key.String())
	}

	if len(lemmas) == 0 && len(defs) == 0 && len(examples) == 0 {
		return nil, postgres.MapError(pgx.ErrNoRows, "synset", key.String())
	}

	s := &domain.Synset{Key: key}
	for _, row := range lemmas {
		l, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		s.Lemmas = append(s.Lemmas, l)
	}
	for _, row := range defs {
		d, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		s.Definitions = append(s.Definitions, d)
	}
	for _, row := range examples {
		e, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		s.Examples = append(s.Examples, e)
	}

	return s, nil
}

// FindKeysByLemma returns the synsets whose lemmas in language share the
// domain.LemmaSearchKey of lemma. Keys are ordered by offset then part of
// speech.
func (r *Repo) FindKeysByLemma(ctx context.Context, language, lemma string) ([]domain.SenseKey, error) {
	norm := domain.LemmaSearchKey(lemma)
	if norm == "" {
		return nil, domain.NewValidationError("lemma", "required")
	}

	rows, err := selectRows[keyRow](ctx, postgres.QuerierFromCtx(ctx, r.db),
		r.sb.Select("synset_offset", "pos").
			Distinct().
			From(tableLemmas).
			Where(squirrel.Eq{"language": language, "lemma_search": norm}).
			OrderBy("synset_offset", "pos"))
	if err != nil {
		return nil, postgres.MapError(err, "lemma", language+":"+norm)
	}

	keys := make([]domain.SenseKey, 0, len(rows))
	for _, row := range rows {
		key, err := toKey(row.Offset, row.POS)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// CountLemmasByLanguage returns the number of stored lemmas per language.
func (r *Repo) CountLemmasByLanguage(ctx context.Context) (map[string]int, error) {
	rows, err := selectRows[countRow](ctx, postgres.QuerierFromCtx(ctx, r.db),
		r.sb.Select("language", "count(*) AS count").
			From(tableLemmas).
			GroupBy("language").
			OrderBy("language"))
	if err != nil {
		return nil, postgres.MapError(err, "lemmas", "count")
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Language] = int(row.Count)
	}
	return counts, nil
}

func selectRows[T any](ctx context.Context, q postgres.Querier, sb squirrel.SelectBuilder) ([]T, error) {
	sql, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var out []T
	if err := pgxscan.Select(ctx, q, &out, sql, args...); err != nil {
		return nil, err
	}
	return out, nil
}
