// Package omw parses Open Multilingual Wordnet tab files.
// Pure functions: text in, records out. No database dependencies.
//
// Every data line has the shape
//
//	<offset>-<pos>\t<lang>:<kind>\t[<sid>\t]<content>
//
// for example "00018158-v\tind:lemma\tmembubung" or
// "00006024-n\tind:def\t0\torganisme yang ...".
package omw

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/heartmarshall/omw-seeder/internal/domain"
)

// lineRe is compiled during package initialization and only read afterwards;
// *regexp.Regexp is safe for concurrent use.
var lineRe = regexp.MustCompile(
	`^(?P<offset>\d{8})-(?P<pos>[nvar])\s+(?P<language>\w{3}):(?P<kind>lemma|def|exe)\s+(?:(?P<sid>\d)\s+)?(?P<content>.+?)\s*$`,
)

var (
	offsetGroup   = lineRe.SubexpIndex("offset")
	posGroup      = lineRe.SubexpIndex("pos")
	languageGroup = lineRe.SubexpIndex("language")
	kindGroup     = lineRe.SubexpIndex("kind")
	sidGroup      = lineRe.SubexpIndex("sid")
	contentGroup  = lineRe.SubexpIndex("content")
)

// separators is the set \s matches in lineRe. Content is judged empty
// against the same set, so U+00A0 and other Unicode spaces count as text.
const separators = " \t\n\f\r"

// ParseLine turns one line of an OMW tab file into a Record.
// A trailing newline is ignored. On failure the returned error is a
// *LineError wrapping ErrMalformedLine, ErrUnknownPartOfSpeech or
// ErrUnknownKind.
func ParseLine(line string) (Record, error) {
	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return nil, newLineError(line, ErrMalformedLine)
	}

	pos, ok := domain.PartOfSpeechFromCode(m[posGroup])
	if !ok {
		return nil, newLineError(line, fmt.Errorf("%w: %q", ErrUnknownPartOfSpeech, m[posGroup]))
	}

	kind, err := ParseKind(m[kindGroup])
	if err != nil {
		return nil, newLineError(line, err)
	}

	content := m[contentGroup]
	if strings.Trim(content, separators) == "" {
		return nil, newLineError(line, fmt.Errorf("%w: empty content", ErrMalformedLine))
	}

	h := Header{
		Language: m[languageGroup],
		Offset:   m[offsetGroup],
		POS:      pos,
	}
	sid := m[sidGroup]

	switch kind {
	case KindLemma:
		if sid != "" {
			return nil, newLineError(line, fmt.Errorf("%w: sense index on %s line", ErrMalformedLine, kind))
		}
		return Lemma{Header: h, Lemma: content}, nil

	case KindDefinition:
		if sid == "" {
			return nil, newLineError(line, fmt.Errorf("%w: missing sense index", ErrMalformedLine))
		}
		n, err := strconv.Atoi(sid)
		if err != nil {
			return nil, newLineError(line, fmt.Errorf("%w: sense index: %w", ErrMalformedLine, err))
		}
		return Definition{Header: h, SenseIndex: n, Definition: content}, nil

	case KindExample:
		if sid != "" {
			return nil, newLineError(line, fmt.Errorf("%w: sense index on %s line", ErrMalformedLine, kind))
		}
		return Example{Header: h, Example: content}, nil
	}

	return nil, newLineError(line, fmt.Errorf("%w: %q", ErrUnknownKind, kind))
}
