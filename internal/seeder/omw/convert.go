package omw

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/omw-seeder/internal/domain"
)

const SourceSlug = "omw"

// DomainRows holds the rows produced from a ParseResult, one slice per table.
type DomainRows struct {
	Lemmas      []domain.SynsetLemma
	Definitions []domain.SynsetDefinition
	Examples    []domain.SynsetExample
}

// ToDomainRows converts parsed entries to domain rows in Keys order.
// Position counts from 0 per synset and language.
func (r ParseResult) ToDomainRows(now time.Time) DomainRows {
	var rows DomainRows

	for _, key := range r.Keys {
		e := r.Entries[key]
		if e == nil {
			continue
		}

		lemmaPos := make(map[string]int)
		for _, l := range e.Lemmas {
			rows.Lemmas = append(rows.Lemmas, domain.SynsetLemma{
				ID:         uuid.New(),
				Key:        key,
				Language:   l.Language,
				Lemma:      l.Lemma,
				SourceSlug: SourceSlug,
				Position:   lemmaPos[l.Language],
				CreatedAt:  now,
			})
			lemmaPos[l.Language]++
		}

		for _, d := range e.Definitions {
			rows.Definitions = append(rows.Definitions, domain.SynsetDefinition{
				ID:         uuid.New(),
				Key:        key,
				Language:   d.Language,
				SenseIndex: d.SenseIndex,
				Definition: d.Definition,
				SourceSlug: SourceSlug,
				CreatedAt:  now,
			})
		}

		examplePos := make(map[string]int)
		for _, ex := range e.Examples {
			rows.Examples = append(rows.Examples, domain.SynsetExample{
				ID:         uuid.New(),
				Key:        key,
				Language:   ex.Language,
				Example:    ex.Example,
				SourceSlug: SourceSlug,
				Position:   examplePos[ex.Language],
				CreatedAt:  now,
			})
			examplePos[ex.Language]++
		}
	}

	return rows
}

// ToDomainSources converts file headers to source rows. Path and TotalLines
// describe the file the headers came from.
func ToDomainSources(sources []Source, path string, totalLines int, now time.Time) []domain.WordnetSource {
	out := make([]domain.WordnetSource, 0, len(sources))
	for _, s := range sources {
		out = append(out, domain.WordnetSource{
			ID:         uuid.New(),
			Language:   s.Language,
			Name:       s.Name,
			URL:        s.URL,
			License:    s.License,
			Path:       path,
			TotalLines: totalLines,
			ImportedAt: now,
		})
	}
	return out
}
