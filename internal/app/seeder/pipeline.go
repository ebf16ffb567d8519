package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/omw-seeder/internal/domain"
	"github.com/heartmarshall/omw-seeder/internal/seeder/omw"
	"github.com/heartmarshall/omw-seeder/pkg/ctxutil"
)

const (
	PhaseLemmas      = "lemmas"
	PhaseDefinitions = "definitions"
	PhaseExamples    = "examples"
)

// allPhases defines the canonical execution order.
var allPhases = []string{PhaseLemmas, PhaseDefinitions, PhaseExamples}

// ErrNoInput is returned by Run when no file paths are configured.
var ErrNoInput = errors.New("no input files configured")

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Inserted int
	Skipped  int
	Duration time.Duration
	Err      error
}

type fileResult struct {
	path   string
	result omw.ParseResult
}

// Pipeline parses OMW files and loads them phase by phase.
type Pipeline struct {
	log     *slog.Logger
	repo    SynsetBulkRepo
	cfg     Config
	now     func() time.Time
	results map[string]PhaseResult
	stats   omw.Stats
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, repo SynsetBulkRepo, cfg Config) *Pipeline {
	return &Pipeline{
		log:     log,
		repo:    repo,
		cfg:     cfg,
		now:     time.Now,
		results: make(map[string]PhaseResult),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// ParseStats returns the parser statistics summed over all files.
func (p *Pipeline) ParseStats() omw.Stats {
	return p.stats
}

// HasErrors returns true if any phase failed or any line was malformed.
func (p *Pipeline) HasErrors() bool {
	if p.stats.Malformed > 0 {
		return true
	}
	for _, r := range p.results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// Run executes the pipeline. If phases is non-empty, only the listed phases run.
// Unknown phase names are rejected.
func (p *Pipeline) Run(ctx context.Context, phases []string) error {
	toRun, err := selectPhases(phases)
	if err != nil {
		return err
	}
	if len(p.cfg.Paths) == 0 {
		return ErrNoInput
	}
	if id, ok := ctxutil.RunIDFromCtx(ctx); ok {
		p.log = p.log.With(slog.String("run_id", id.String()))
	}

	// Step 1: Parse every file.
	files, err := p.parseFiles(ctx)
	if err != nil {
		return err
	}

	// Step 2: Report and merge in path order.
	merged := p.report(files)
	p.stats = merged.Stats

	now := p.now()
	rows := merged.ToDomainRows(now)

	if p.cfg.DryRun {
		p.results[PhaseLemmas] = PhaseResult{Skipped: len(rows.Lemmas)}
		p.results[PhaseDefinitions] = PhaseResult{Skipped: len(rows.Definitions)}
		p.results[PhaseExamples] = PhaseResult{Skipped: len(rows.Examples)}
		for _, ph := range allPhases {
			if !slices.Contains(toRun, ph) {
				delete(p.results, ph)
			}
		}
		p.log.Info("dry run: nothing written",
			slog.Int("lemmas", len(rows.Lemmas)),
			slog.Int("definitions", len(rows.Definitions)),
			slog.Int("examples", len(rows.Examples)),
		)
		return nil
	}

	// Step 3: Register imported files.
	var sources []domain.WordnetSource
	for _, f := range files {
		sources = append(sources, omw.ToDomainSources(f.result.Sources, f.path, f.result.Stats.TotalLines, now)...)
	}
	if err := p.repo.UpsertSources(ctx, sources); err != nil {
		return fmt.Errorf("upsert sources: %w", err)
	}

	// Step 4: Execute phases in order.
	for _, phase := range toRun {
		start := time.Now()
		p.log.Info("starting phase", slog.String("phase", phase))

		var result PhaseResult
		switch phase {
		case PhaseLemmas:
			result = runPhase(rows.Lemmas, p.cfg.BatchSize, func(batch []domain.SynsetLemma) (int, error) {
				return p.repo.BulkInsertLemmas(ctx, batch)
			})
		case PhaseDefinitions:
			result = runPhase(rows.Definitions, p.cfg.BatchSize, func(batch []domain.SynsetDefinition) (int, error) {
				return p.repo.BulkInsertDefinitions(ctx, batch)
			})
		case PhaseExamples:
			result = runPhase(rows.Examples, p.cfg.BatchSize, func(batch []domain.SynsetExample) (int, error) {
				return p.repo.BulkInsertExamples(ctx, batch)
			})
		}
		result.Duration = time.Since(start)
		p.results[phase] = result

		if result.Err != nil {
			p.log.Warn("phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
		} else {
			p.log.Info("phase completed",
				slog.String("phase", phase),
				slog.Int("inserted", result.Inserted),
				slog.Int("skipped", result.Skipped),
				slog.Duration("duration", result.Duration),
			)
		}
	}

	// Step 5: Summary.
	counts, err := p.repo.CountLemmasByLanguage(ctx)
	if err != nil {
		p.log.Warn("count lemmas by language", slog.String("error", err.Error()))
	} else {
		langs := make([]string, 0, len(counts))
		for l := range counts {
			langs = append(langs, l)
		}
		slices.Sort(langs)
		for _, l := range langs {
			p.log.Info("lemmas stored", slog.String("language", l), slog.Int("count", counts[l]))
		}
	}

	p.log.Info("pipeline completed", slog.Int("phases_run", len(toRun)))
	return nil
}

// parseFiles parses cfg.Paths with at most cfg.Workers files in flight. The
// first I/O error (or first malformed line in strict mode) cancels the rest.
func (p *Pipeline) parseFiles(ctx context.Context) ([]fileResult, error) {
	opts := omw.Options{Strict: p.cfg.Strict, Languages: p.cfg.languageFilter()}
	files := make([]fileResult, len(p.cfg.Paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.cfg.Workers, 1))

	for i, path := range p.cfg.Paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := omw.Parse(path, opts)
			if err != nil {
				return fmt.Errorf("parse %s: %w", path, err)
			}
			files[i] = fileResult{path: path, result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// report logs per-file statistics and the first MaxLoggedErrors line
// errors, then merges the results in path order.
func (p *Pipeline) report(files []fileResult) omw.ParseResult {
	var merged omw.ParseResult
	logged := 0

	for _, f := range files {
		s := f.result.Stats
		p.log.Info("omw file parsed",
			slog.String("file", f.path),
			slog.Int("total_lines", s.TotalLines),
			slog.Int("lemmas", s.Lemmas),
			slog.Int("definitions", s.Definitions),
			slog.Int("examples", s.Examples),
			slog.Int("synsets", s.Synsets),
			slog.Int("malformed", s.Malformed),
			slog.Int("skipped_language", s.SkippedLanguage),
		)

		for _, lerr := range f.result.Errors {
			if logged >= p.cfg.MaxLoggedErrors {
				break
			}
			p.log.Warn("malformed line",
				slog.String("file", f.path),
				slog.Int("line", lerr.LineNo),
				slog.String("error", lerr.Error()),
			)
			logged++
		}

		merged.Merge(f.result)
	}

	if rest := merged.Stats.Malformed - logged; rest > 0 {
		p.log.Warn("more malformed lines not logged", slog.Int("count", rest))
	}

	return merged
}

// runPhase inserts items in batches; rows the database already had count
// as skipped.
func runPhase[T any](items []T, batchSize int, fn func([]T) (int, error)) PhaseResult {
	inserted, err := batchProcess(items, batchSize, fn)
	if err != nil {
		return PhaseResult{Inserted: inserted, Err: err}
	}
	return PhaseResult{Inserted: inserted, Skipped: len(items) - inserted}
}

// batchProcess splits items into batches and processes each via fn.
func batchProcess[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func selectPhases(phases []string) ([]string, error) {
	if len(phases) == 0 {
		return allPhases, nil
	}

	filter := make(map[string]bool, len(phases))
	for _, ph := range phases {
		if !slices.Contains(allPhases, ph) {
			return nil, fmt.Errorf("unknown phase %q (want one of %v)", ph, allPhases)
		}
		filter[ph] = true
	}

	var filtered []string
	for _, ph := range allPhases {
		if filter[ph] {
			filtered = append(filtered, ph)
		}
	}
	return filtered, nil
}
