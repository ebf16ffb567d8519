package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SenseKey identifies a synset in the base WordNet: an 8-digit offset
// (kept as text, zero padded) plus a part of speech.
type SenseKey struct {
	Offset string
	POS    PartOfSpeech
}

// String renders the key in WordNet's "offset-pos" form, e.g. "00018158-v".
func (k SenseKey) String() string {
	return k.Offset + "-" + k.POS.Code()
}

// ParseSenseKey parses the "offset-pos" form produced by SenseKey.String.
func ParseSenseKey(s string) (SenseKey, error) {
	offset, code, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok || len(offset) != 8 || !isDigits(offset) {
		return SenseKey{}, NewValidationError("sense_key", fmt.Sprintf("expected <8 digits>-<pos>, got %q", s))
	}
	pos, ok := PartOfSpeechFromCode(code)
	if !ok {
		return SenseKey{}, NewValidationError("sense_key", fmt.Sprintf("unknown part of speech %q", code))
	}
	return SenseKey{Offset: offset, POS: pos}, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// SynsetLemma is a stored word form realizing a synset in one language.
type SynsetLemma struct {
	ID         uuid.UUID
	Key        SenseKey
	Language   string
	Lemma      string
	SourceSlug string
	Position   int
	CreatedAt  time.Time
}

// SynsetDefinition is a stored gloss. SenseIndex tells apart several
// glosses attached to the same synset in the same language.
type SynsetDefinition struct {
	ID         uuid.UUID
	Key        SenseKey
	Language   string
	SenseIndex int
	Definition string
	SourceSlug string
	CreatedAt  time.Time
}

// SynsetExample is a stored usage sentence.
type SynsetExample struct {
	ID         uuid.UUID
	Key        SenseKey
	Language   string
	Example    string
	SourceSlug string
	Position   int
	CreatedAt  time.Time
}

// Synset is the read model: everything stored for one SenseKey.
type Synset struct {
	Key         SenseKey
	Lemmas      []SynsetLemma
	Definitions []SynsetDefinition
	Examples    []SynsetExample
}

// WordnetSource describes one imported OMW file.
type WordnetSource struct {
	ID         uuid.UUID
	Language   string
	Name       string
	URL        string
	License    string
	Path       string
	TotalLines int
	ImportedAt time.Time
}
