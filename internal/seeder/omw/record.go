package omw

import (
	"fmt"

	"github.com/heartmarshall/omw-seeder/internal/domain"
)

// Kind is the record type tag written after the language code ("ind:lemma").
type Kind string

const (
	KindLemma      Kind = "lemma"
	KindDefinition Kind = "def"
	KindExample    Kind = "exe"
)

func (k Kind) String() string { return string(k) }

// ParseKind decodes the literal tag of a line. Anything other than the three
// known tags yields ErrUnknownKind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindLemma:
		return KindLemma, nil
	case KindDefinition:
		return KindDefinition, nil
	case KindExample:
		return KindExample, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Record is one parsed line: a Lemma, a Definition or an Example.
// The set of implementations is closed.
type Record interface {
	Kind() Kind
	Key() domain.SenseKey
	Lang() string
	isRecord()
}

// Header holds the fields every line carries.
type Header struct {
	Language string
	Offset   string
	POS      domain.PartOfSpeech
}

func (h Header) Key() domain.SenseKey {
	return domain.SenseKey{Offset: h.Offset, POS: h.POS}
}

func (h Header) Lang() string { return h.Language }

func (Header) isRecord() {}

// Lemma is a word form realizing the synset in Language.
type Lemma struct {
	Header
	Lemma string
}

func (Lemma) Kind() Kind { return KindLemma }

// Definition is a gloss. SenseIndex is the single digit that follows "def".
type Definition struct {
	Header
	SenseIndex int
	Definition string
}

func (Definition) Kind() Kind { return KindDefinition }

// Example is a usage sentence.
type Example struct {
	Header
	Example string
}

func (Example) Kind() Kind { return KindExample }
