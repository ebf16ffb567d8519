package omw

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/omw-seeder/internal/domain"
)

// --- Well-formed lines ---

func TestParseLine_Records(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Record
	}{
		{
			name: "indonesian lemma",
			line: "00018158-v\tind:lemma\tmembubung\n",
			want: Lemma{
				Header: Header{Language: "ind", Offset: "00018158", POS: domain.PartOfSpeechVerb},
				Lemma:  "membubung",
			},
		},
		{
			name: "indonesian definition",
			line: "00006024-n\tind:def\t0\torganisme yang tergantung pada zat organik kompleks untuk gizi\n",
			want: Definition{
				Header:     Header{Language: "ind", Offset: "00006024", POS: domain.PartOfSpeechNoun},
				SenseIndex: 0,
				Definition: "organisme yang tergantung pada zat organik kompleks untuk gizi",
			},
		},
		{
			name: "english example",
			line: "00012345-a\teng:exe\tShe felt an overwhelming sense of joy.\n",
			want: Example{
				Header:  Header{Language: "eng", Offset: "00012345", POS: domain.PartOfSpeechAdjective},
				Example: "She felt an overwhelming sense of joy.",
			},
		},
		{
			name: "adverb lemma without newline",
			line: "00099999-r\tfra:lemma\trapidement",
			want: Lemma{
				Header: Header{Language: "fra", Offset: "00099999", POS: domain.PartOfSpeechAdverb},
				Lemma:  "rapidement",
			},
		},
		{
			name: "definition with non-zero sense index",
			line: "00006024-n\tind:def\t3\tgloss ketiga\n",
			want: Definition{
				Header:     Header{Language: "ind", Offset: "00006024", POS: domain.PartOfSpeechNoun},
				SenseIndex: 3,
				Definition: "gloss ketiga",
			},
		},
		{
			name: "internal whitespace kept",
			line: "00018158-v\tind:lemma\tbuah  hati\n",
			want: Lemma{
				Header: Header{Language: "ind", Offset: "00018158", POS: domain.PartOfSpeechVerb},
				Lemma:  "buah  hati",
			},
		},
		{
			name: "trailing whitespace and CRLF trimmed",
			line: "00018158-v\tind:lemma\tmembubung  \t\r\n",
			want: Lemma{
				Header: Header{Language: "ind", Offset: "00018158", POS: domain.PartOfSpeechVerb},
				Lemma:  "membubung",
			},
		},
		{
			name: "spaces as separators",
			line: "00018158-v  ind:lemma   membubung\n",
			want: Lemma{
				Header: Header{Language: "ind", Offset: "00018158", POS: domain.PartOfSpeechVerb},
				Lemma:  "membubung",
			},
		},
		{
			name: "single digit lemma",
			line: "00018158-n\teng:lemma\t1\n",
			want: Lemma{
				Header: Header{Language: "eng", Offset: "00018158", POS: domain.PartOfSpeechNoun},
				Lemma:  "1",
			},
		},
		{
			name: "language with digits and underscore",
			line: "00018158-n\tx_1:lemma\tfoo\n",
			want: Lemma{
				Header: Header{Language: "x_1", Offset: "00018158", POS: domain.PartOfSpeechNoun},
				Lemma:  "foo",
			},
		},
		{
			name: "no-break space alone is content",
			line: "00018158-n\tind:lemma\t\u00a0\n",
			want: Lemma{
				Header: Header{Language: "ind", Offset: "00018158", POS: domain.PartOfSpeechNoun},
				Lemma:  "\u00a0",
			},
		},
		{
			name: "trailing no-break space kept",
			line: "00018158-n\tind:lemma\tfoo\u00a0\n",
			want: Lemma{
				Header: Header{Language: "ind", Offset: "00018158", POS: domain.PartOfSpeechNoun},
				Lemma:  "foo\u00a0",
			},
		},
		{
			name: "unicode content",
			line: "00018158-n\tjpn:lemma\t生物\n",
			want: Lemma{
				Header: Header{Language: "jpn", Offset: "00018158", POS: domain.PartOfSpeechNoun},
				Lemma:  "生物",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLine_KindAndKey(t *testing.T) {
	lines := map[Kind]string{
		KindLemma:      "00012345-a\teng:lemma\tjoyful\n",
		KindDefinition: "00012345-a\teng:def\t1\tfull of joy\n",
		KindExample:    "00012345-a\teng:exe\tA joyful day.\n",
	}
	want := domain.SenseKey{Offset: "00012345", POS: domain.PartOfSpeechAdjective}

	for kind, line := range lines {
		t.Run(string(kind), func(t *testing.T) {
			rec, err := ParseLine(line)
			require.NoError(t, err)
			assert.Equal(t, kind, rec.Kind())
			assert.Equal(t, want, rec.Key())
			assert.Equal(t, "eng", rec.Lang())
		})
	}
}

// --- Failures ---

func TestParseLine_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"seven digit offset", "0001234-n\teng:lemma\tcat\n"},
		{"nine digit offset", "000123456-n\teng:lemma\tcat\n"},
		{"invalid pos z", "00012345-z\teng:lemma\tcat\n"},
		{"invalid pos x", "00012345-x\teng:lemma\tcat\n"},
		{"adjective satellite", "00012345-s\teng:lemma\tcat\n"},
		{"uppercase pos", "00012345-N\teng:lemma\tcat\n"},
		{"definition without sense index", "00006024-n\tind:def\torganisme yang tergantung\n"},
		{"definition with two digit index", "00006024-n\tind:def\t10\tsepuluh\n"},
		{"stray sense index on lemma", "00012345-n\teng:lemma\t3\tcat\n"},
		{"stray sense index on example", "00012345-n\teng:exe\t0\tThe cat sat.\n"},
		{"unknown kind", "00012345-n\teng:note\tcat\n"},
		{"two letter language", "00012345-n\ten:lemma\tcat\n"},
		{"four letter language", "00012345-n\tengl:lemma\tcat\n"},
		{"missing colon", "00012345-n\teng lemma\tcat\n"},
		{"missing dash", "00012345n\teng:lemma\tcat\n"},
		{"no separator before language", "00012345-neng:lemma\tcat\n"},
		{"missing content", "00012345-n\teng:lemma\n"},
		{"whitespace only content", "00012345-n\teng:lemma\t \t\n"},
		{"leading whitespace", " 00012345-n\teng:lemma\tcat\n"},
		{"empty line", ""},
		{"comment", "# Indonesian\tind\thttp://example.org\tMIT"},
		{"embedded newline", "00012345-n\teng:lemma\tcat\nsecond line"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseLine(tt.line)
			require.Error(t, err)
			assert.Nil(t, rec)
			assert.ErrorIs(t, err, ErrMalformedLine)

			var lerr *LineError
			require.ErrorAs(t, err, &lerr)
			assert.Equal(t, strings.TrimRight(tt.line, "\r\n"), lerr.Line)
			assert.Zero(t, lerr.LineNo)
		})
	}
}

// A definition without its sense index whose text starts with a lone digit
// is indistinguishable from an indexed one: the digit becomes the index.
func TestParseLine_DefinitionLeadingDigitReadAsSenseIndex(t *testing.T) {
	rec, err := ParseLine("00012345-n\teng:def\t3 things\n")

	require.NoError(t, err)
	assert.Equal(t, Definition{
		Header:     Header{Language: "eng", Offset: "00012345", POS: domain.PartOfSpeechNoun},
		SenseIndex: 3,
		Definition: "things",
	}, rec)
}

func TestParseLine_DefinitionMissingIndexIsNotAnotherKind(t *testing.T) {
	rec, err := ParseLine("00006024-n\tind:def\torganisme\n")

	assert.Nil(t, rec)
	assert.ErrorIs(t, err, ErrMalformedLine)
	assert.NotErrorIs(t, err, ErrUnknownKind)
	assert.NotErrorIs(t, err, ErrUnknownPartOfSpeech)
}

func TestParseLine_ExcerptIsTruncated(t *testing.T) {
	line := strings.Repeat("ä", 300) + "\n"

	_, err := ParseLine(line)

	var lerr *LineError
	require.ErrorAs(t, err, &lerr)
	assert.True(t, strings.HasSuffix(lerr.Line, "…"))
	assert.Equal(t, maxExcerptRunes+1, utf8.RuneCountInString(lerr.Line))
}

// --- Purity ---

func TestParseLine_Idempotent(t *testing.T) {
	lines := []string{
		"00018158-v\tind:lemma\tmembubung\n",
		"00006024-n\tind:def\t0\torganisme\n",
		"0001234-n\teng:lemma\tcat\n",
	}

	for _, line := range lines {
		first, err1 := ParseLine(line)
		second, err2 := ParseLine(line)
		assert.Equal(t, first, second)
		assert.Equal(t, err1, err2)
	}
}

func TestParseLine_Concurrent(t *testing.T) {
	const workers = 16
	line := "00006024-n\tind:def\t0\torganisme yang tergantung pada zat organik kompleks untuk gizi\n"
	want, err := ParseLine(line)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]Record, workers)
	errs := make([]error, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = ParseLine(line)
		}()
	}
	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.Equal(t, want, results[i])
	}
}

// --- Kind decoding ---

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{"lemma", KindLemma, false},
		{"def", KindDefinition, false},
		{"exe", KindExample, false},
		{"LEMMA", "", true},
		{"definition", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// --- LineError ---

func TestLineError_Error(t *testing.T) {
	withNo := &LineError{LineNo: 7, Line: "bad", Err: ErrMalformedLine}
	assert.Equal(t, `line 7: malformed line: "bad"`, withNo.Error())

	withoutNo := &LineError{Line: "bad", Err: ErrUnknownKind}
	assert.Equal(t, `unknown record kind: "bad"`, withoutNo.Error())
}

func TestLineError_Unwrap(t *testing.T) {
	err := error(&LineError{Line: "x", Err: ErrUnknownPartOfSpeech})
	assert.True(t, errors.Is(err, ErrUnknownPartOfSpeech))
	assert.False(t, errors.Is(err, ErrMalformedLine))
}
