package omw

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/heartmarshall/omw-seeder/internal/domain"
)

const maxLineBytes = 1024 * 1024

// Options controls how a file is read.
type Options struct {
	// Strict aborts on the first line that fails to parse.
	Strict bool
	// Languages keeps only records in these languages. Empty keeps all.
	Languages map[string]bool
}

// Source is the header line of an OMW file:
// "# <name>\t<lang>\t<url>\t<license>".
type Source struct {
	Name     string
	Language string
	URL      string
	License  string
}

// Entry groups all records of one synset.
type Entry struct {
	Key         domain.SenseKey
	Lemmas      []Lemma
	Definitions []Definition
	Examples    []Example
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalLines      int
	BlankLines      int
	CommentLines    int
	Lemmas          int
	Definitions     int
	Examples        int
	Malformed       int
	SkippedLanguage int
	Synsets         int
}

func (s *Stats) add(o Stats) {
	s.TotalLines += o.TotalLines
	s.BlankLines += o.BlankLines
	s.CommentLines += o.CommentLines
	s.Lemmas += o.Lemmas
	s.Definitions += o.Definitions
	s.Examples += o.Examples
	s.Malformed += o.Malformed
	s.SkippedLanguage += o.SkippedLanguage
}

// ParseResult is the index built from one or more files, keyed by synset.
type ParseResult struct {
	Entries map[domain.SenseKey]*Entry
	// Keys lists Entries in first-seen order.
	Keys    []domain.SenseKey
	Sources []Source
	Errors  []*LineError
	Stats   Stats
}

func newParseResult() ParseResult {
	return ParseResult{Entries: make(map[domain.SenseKey]*Entry)}
}

// Parse reads an OMW tab file.
func Parse(filePath string, opts Options) (ParseResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return ParseResult{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ParseReader(f, opts)
}

// ParseReader reads OMW lines from r. Lines that fail to parse are collected
// in ParseResult.Errors with their line numbers, unless opts.Strict is set.
func ParseReader(r io.Reader, opts Options) (ParseResult, error) {
	result := newParseResult()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	seenData := false
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		result.Stats.TotalLines++
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			result.Stats.BlankLines++
			continue
		}

		if strings.HasPrefix(line, "#") {
			result.Stats.CommentLines++
			if !seenData && len(result.Sources) == 0 {
				if src, ok := parseHeader(line); ok {
					result.Sources = append(result.Sources, src)
				}
			}
			continue
		}
		seenData = true

		rec, err := ParseLine(line)
		if err != nil {
			var lerr *LineError
			if !errors.As(err, &lerr) {
				return ParseResult{}, err
			}
			lerr.LineNo = lineNo
			if opts.Strict {
				return ParseResult{}, lerr
			}
			result.Stats.Malformed++
			result.Errors = append(result.Errors, lerr)
			continue
		}

		if len(opts.Languages) > 0 && !opts.Languages[rec.Lang()] {
			result.Stats.SkippedLanguage++
			continue
		}

		result.add(rec)
	}

	if err := scanner.Err(); err != nil {
		return ParseResult{}, fmt.Errorf("scanner error: %w", err)
	}

	result.Stats.Synsets = len(result.Entries)
	return result, nil
}

func (r *ParseResult) entry(key domain.SenseKey) *Entry {
	e, ok := r.Entries[key]
	if !ok {
		e = &Entry{Key: key}
		r.Entries[key] = e
		r.Keys = append(r.Keys, key)
	}
	return e
}

func (r *ParseResult) add(rec Record) {
	e := r.entry(rec.Key())
	switch v := rec.(type) {
	case Lemma:
		e.Lemmas = append(e.Lemmas, v)
		r.Stats.Lemmas++
	case Definition:
		e.Definitions = append(e.Definitions, v)
		r.Stats.Definitions++
	case Example:
		e.Examples = append(e.Examples, v)
		r.Stats.Examples++
	}
}

// Merge folds other into r. Entries for the same synset are concatenated
// in the order the results are merged.
func (r *ParseResult) Merge(other ParseResult) {
	if r.Entries == nil {
		r.Entries = make(map[domain.SenseKey]*Entry)
	}
	for _, key := range other.Keys {
		src := other.Entries[key]
		dst := r.entry(key)
		dst.Lemmas = append(dst.Lemmas, src.Lemmas...)
		dst.Definitions = append(dst.Definitions, src.Definitions...)
		dst.Examples = append(dst.Examples, src.Examples...)
	}
	r.Sources = append(r.Sources, other.Sources...)
	r.Errors = append(r.Errors, other.Errors...)
	r.Stats.add(other.Stats)
	r.Stats.Synsets = len(r.Entries)
}

// parseHeader decodes "# Indonesian\tind\thttp://...\tMIT".
// Free-form comments (fewer than two fields) are not headers.
func parseHeader(line string) (Source, bool) {
	body := strings.TrimSpace(strings.TrimPrefix(line, "#"))
	fields := strings.Split(body, "\t")
	if len(fields) < 2 {
		return Source{}, false
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	src := Source{Name: fields[0], Language: fields[1]}
	if len(fields) > 2 {
		src.URL = fields[2]
	}
	if len(fields) > 3 {
		src.License = fields[3]
	}
	return src, true
}
