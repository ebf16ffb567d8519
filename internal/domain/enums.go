package domain

// PartOfSpeech represents the grammatical category of a WordNet synset.
type PartOfSpeech string

const (
	PartOfSpeechNoun      PartOfSpeech = "NOUN"
	PartOfSpeechVerb      PartOfSpeech = "VERB"
	PartOfSpeechAdjective PartOfSpeech = "ADJECTIVE"
	PartOfSpeechAdverb    PartOfSpeech = "ADVERB"
)

func (p PartOfSpeech) String() string { return string(p) }

func (p PartOfSpeech) IsValid() bool {
	switch p {
	case PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective, PartOfSpeechAdverb:
		return true
	}
	return false
}

// Code returns the single-letter WordNet code ("n", "v", "a", "r").
// Returns an empty string for an invalid value.
func (p PartOfSpeech) Code() string {
	switch p {
	case PartOfSpeechNoun:
		return "n"
	case PartOfSpeechVerb:
		return "v"
	case PartOfSpeechAdjective:
		return "a"
	case PartOfSpeechAdverb:
		return "r"
	}
	return ""
}

// PartOfSpeechFromCode decodes a single-letter WordNet code.
// The adjective satellite code "s" is not accepted.
func PartOfSpeechFromCode(code string) (PartOfSpeech, bool) {
	switch code {
	case "n":
		return PartOfSpeechNoun, true
	case "v":
		return PartOfSpeechVerb, true
	case "a":
		return PartOfSpeechAdjective, true
	case "r":
		return PartOfSpeechAdverb, true
	}
	return "", false
}
