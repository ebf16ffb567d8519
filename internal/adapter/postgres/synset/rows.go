package synset

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/omw-seeder/internal/domain"
)

// Row types mirror the omw_* columns for pgxscan.

type lemmaRow struct {
	ID         uuid.UUID `db:"id"`
	Offset     string    `db:"synset_offset"`
	POS        string    `db:"pos"`
	Language   string    `db:"language"`
	Lemma      string    `db:"lemma"`
	SourceSlug string    `db:"source_slug"`
	Position   int       `db:"position"`
	CreatedAt  time.Time `db:"created_at"`
}

type definitionRow struct {
	ID         uuid.UUID `db:"id"`
	Offset     string    `db:"synset_offset"`
	POS        string    `db:"pos"`
	Language   string    `db:"language"`
	SenseIndex int       `db:"sense_index"`
	Definition string    `db:"definition"`
	SourceSlug string    `db:"source_slug"`
	CreatedAt  time.Time `db:"created_at"`
}

type exampleRow struct {
	ID         uuid.UUID `db:"id"`
	Offset     string    `db:"synset_offset"`
	POS        string    `db:"pos"`
	Language   string    `db:"language"`
	Example    string    `db:"example"`
	SourceSlug string    `db:"source_slug"`
	Position   int       `db:"position"`
	CreatedAt  time.Time `db:"created_at"`
}

type keyRow struct {
	Offset string `db:"synset_offset"`
	POS    string `db:"pos"`
}

type countRow struct {
	Language string `db:"language"`
	Count    int64  `db:"count"`
}

func toKey(offset, code string) (domain.SenseKey, error) {
	pos, ok := domain.PartOfSpeechFromCode(code)
	if !ok {
		return domain.SenseKey{}, fmt.Errorf("stored part of speech %q: %w", code, domain.ErrValidation)
	}
	return domain.SenseKey{Offset: offset, POS: pos}, nil
}

func (r lemmaRow) toDomain() (domain.SynsetLemma, error) {
	key, err := toKey(r.Offset, r.POS)
	if err != nil {
		return domain.SynsetLemma{}, err
	}
	return domain.SynsetLemma{
		ID:         r.ID,
		Key:        key,
		Language:   r.Language,
		Lemma:      r.Lemma,
		SourceSlug: r.SourceSlug,
		Position:   r.Position,
		CreatedAt:  r.CreatedAt,
	}, nil
}

func (r definitionRow) toDomain() (domain.SynsetDefinition, error) {
	key, err := toKey(r.Offset, r.POS)
	if err != nil {
		return domain.SynsetDefinition{}, err
	}
	return domain.SynsetDefinition{
		ID:         r.ID,
		Key:        key,
		Language:   r.Language,
		SenseIndex: r.SenseIndex,
		Definition: r.Definition,
		SourceSlug: r.SourceSlug,
		CreatedAt:  r.CreatedAt,
	}, nil
}

func (r exampleRow) toDomain() (domain.SynsetExample, error) {
	key, err := toKey(r.Offset, r.POS)
	if err != nil {
		return domain.SynsetExample{}, err
	}
	return domain.SynsetExample{
		ID:         r.ID,
		Key:        key,
		Language:   r.Language,
		Example:    r.Example,
		SourceSlug: r.SourceSlug,
		Position:   r.Position,
		CreatedAt:  r.CreatedAt,
	}, nil
}
