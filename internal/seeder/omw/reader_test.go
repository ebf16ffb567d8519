package omw

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/omw-seeder/internal/domain"
)

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

var (
	keyHeterotrof = domain.SenseKey{Offset: "00006024", POS: domain.PartOfSpeechNoun}
	keyMembubung  = domain.SenseKey{Offset: "00018158", POS: domain.PartOfSpeechVerb}
	keyGembira    = domain.SenseKey{Offset: "00012345", POS: domain.PartOfSpeechAdjective}
)

func TestParse_SampleFile(t *testing.T) {
	result, err := Parse(testdataPath(t, "omw_sample.tab"), Options{})
	require.NoError(t, err)

	assert.Equal(t, Stats{
		TotalLines:   12,
		BlankLines:   1,
		CommentLines: 2,
		Lemmas:       5,
		Definitions:  1,
		Examples:     1,
		Malformed:    2,
		Synsets:      3,
	}, result.Stats)

	assert.Equal(t, []domain.SenseKey{keyHeterotrof, keyMembubung, keyGembira}, result.Keys)

	require.Len(t, result.Sources, 1)
	assert.Equal(t, Source{
		Name:     "Indonesian",
		Language: "ind",
		URL:      "http://wn-msa.sourceforge.net/",
		License:  "MIT",
	}, result.Sources[0])

	verb := result.Entries[keyMembubung]
	require.NotNil(t, verb)
	require.Len(t, verb.Lemmas, 3)
	assert.Equal(t, "membubung", verb.Lemmas[0].Lemma)
	assert.Equal(t, "naik", verb.Lemmas[1].Lemma)
	assert.Equal(t, "rise", verb.Lemmas[2].Lemma)
	assert.Equal(t, "eng", verb.Lemmas[2].Language)
	require.Len(t, verb.Examples, 1)
	assert.Equal(t, "Asap membubung ke langit.", verb.Examples[0].Example)

	noun := result.Entries[keyHeterotrof]
	require.Len(t, noun.Definitions, 1)
	assert.Equal(t, 0, noun.Definitions[0].SenseIndex)
}

func TestParse_CollectsLineErrors(t *testing.T) {
	result, err := Parse(testdataPath(t, "omw_sample.tab"), Options{})
	require.NoError(t, err)

	require.Len(t, result.Errors, 2)
	assert.Equal(t, 9, result.Errors[0].LineNo)
	assert.Equal(t, "0001815-v\tind:lemma\trusak", result.Errors[0].Line)
	assert.ErrorIs(t, result.Errors[0], ErrMalformedLine)

	assert.Equal(t, 11, result.Errors[1].LineNo)
	assert.ErrorIs(t, result.Errors[1], ErrMalformedLine)
}

func TestParse_Strict(t *testing.T) {
	_, err := Parse(testdataPath(t, "omw_sample.tab"), Options{Strict: true})
	require.Error(t, err)

	var lerr *LineError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, 9, lerr.LineNo)
	assert.ErrorIs(t, err, ErrMalformedLine)
}

func TestParse_LanguageFilter(t *testing.T) {
	result, err := Parse(testdataPath(t, "omw_sample.tab"), Options{
		Languages: map[string]bool{"ind": true},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Stats.Lemmas)
	assert.Equal(t, 1, result.Stats.SkippedLanguage)
	for _, l := range result.Entries[keyMembubung].Lemmas {
		assert.Equal(t, "ind", l.Language)
	}
}

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse(testdataPath(t, "does_not_exist.tab"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open file")
}

func TestParseReader_FreeCommentIsNotHeader(t *testing.T) {
	input := "# just a note\n00018158-v\tind:lemma\tmembubung\n"

	result, err := ParseReader(strings.NewReader(input), Options{})
	require.NoError(t, err)

	assert.Empty(t, result.Sources)
	assert.Equal(t, 1, result.Stats.CommentLines)
	assert.Equal(t, 1, result.Stats.Lemmas)
}

func TestParseReader_HeaderOnlyBeforeData(t *testing.T) {
	input := "00018158-v\tind:lemma\tmembubung\n# Late\tind\turl\tMIT\n"

	result, err := ParseReader(strings.NewReader(input), Options{})
	require.NoError(t, err)

	assert.Empty(t, result.Sources)
}

func TestParseReader_Empty(t *testing.T) {
	result, err := ParseReader(strings.NewReader(""), Options{})
	require.NoError(t, err)

	assert.Empty(t, result.Keys)
	assert.Zero(t, result.Stats.TotalLines)
}

func TestParseResult_Merge(t *testing.T) {
	ind, err := ParseReader(strings.NewReader(
		"# Indonesian\tind\turl\tMIT\n00018158-v\tind:lemma\tmembubung\n"), Options{})
	require.NoError(t, err)
	eng, err := ParseReader(strings.NewReader(
		"# English\teng\turl\tCC\n00018158-v\teng:lemma\trise\n00012345-a\teng:lemma\tjoyful\nbroken\n"), Options{})
	require.NoError(t, err)

	var merged ParseResult
	merged.Merge(ind)
	merged.Merge(eng)

	assert.Equal(t, []domain.SenseKey{keyMembubung, keyGembira}, merged.Keys)
	assert.Len(t, merged.Entries[keyMembubung].Lemmas, 2)
	assert.Len(t, merged.Sources, 2)
	assert.Len(t, merged.Errors, 1)
	assert.Equal(t, 3, merged.Stats.Lemmas)
	assert.Equal(t, 2, merged.Stats.Synsets)
	assert.Equal(t, 1, merged.Stats.Malformed)
	assert.Equal(t, 6, merged.Stats.TotalLines)
}
