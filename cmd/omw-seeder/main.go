// Command omw-seeder loads Open Multilingual Wordnet tab files
// (wn-data-<lang>.tab) into PostgreSQL.
//
// Usage:
//
//	omw-seeder [flags] [file.tab ...]
//
// Positional arguments replace the paths from SEEDER_OMW_PATHS / the seeder config.
//
// Flags:
//
//	--phase          comma-separated list of phases to run: lemmas,definitions,examples (default: all)
//	--dry-run        parse files and report statistics without connecting to the DB
//	--strict         abort on the first malformed line
//	--migrate        apply database migrations before seeding
//	--seeder-config  path to seeder YAML config file
//	--lookup         print a stored synset, e.g. --lookup 00018158-v, and exit
//	--find           print the synset keys whose lemmas match a word (requires --lang), and exit
//	--lang           restrict --lookup to one language; language for --find
//	--version        print version and exit
//
// Exit codes: 0 = success, 1 = error or malformed input.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/heartmarshall/omw-seeder/internal/adapter/postgres"
	"github.com/heartmarshall/omw-seeder/internal/adapter/postgres/synset"
	"github.com/heartmarshall/omw-seeder/internal/app"
	"github.com/heartmarshall/omw-seeder/internal/app/seeder"
	"github.com/heartmarshall/omw-seeder/internal/config"
	"github.com/heartmarshall/omw-seeder/internal/domain"
)

// Compile-time interface assertion.
var _ seeder.SynsetBulkRepo = (*synset.Repo)(nil)

func main() {
	phaseFlag := flag.String("phase", "", "comma-separated phases to run (default: all)")
	dryRunFlag := flag.Bool("dry-run", false, "parse files without writing to DB")
	strictFlag := flag.Bool("strict", false, "abort on the first malformed line")
	migrateFlag := flag.Bool("migrate", false, "apply database migrations before seeding")
	seederConfigFlag := flag.String("seeder-config", "", "path to seeder YAML config file")
	lookupFlag := flag.String("lookup", "", "print the stored synset for an offset-pos key and exit")
	findFlag := flag.String("find", "", "print synset keys for a lemma in --lang and exit")
	langFlag := flag.String("lang", "", "language for --lookup (default: all) and --find")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println(app.BuildVersion())
		return
	}

	// 30-minute context timeout.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	// Load app config (for DB connection and logging).
	ctx, appCfg, logger, err := app.Bootstrap(ctx)
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	if *lookupFlag != "" {
		if err := lookup(ctx, appCfg.Database, *lookupFlag, *langFlag, os.Stdout); err != nil {
			logger.Error("lookup", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	if *findFlag != "" {
		if err := find(ctx, appCfg.Database, *langFlag, *findFlag, os.Stdout); err != nil {
			logger.Error("find", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	// Load seeder config.
	seederCfg, err := seeder.LoadConfig(*seederConfigFlag)
	if err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// CLI flags override config.
	if *dryRunFlag {
		seederCfg.DryRun = true
	}
	if *strictFlag {
		seederCfg.Strict = true
	}
	if args := flag.Args(); len(args) > 0 {
		seederCfg.Paths = args
	}

	phases := splitList(*phaseFlag)

	if *migrateFlag {
		if err := postgres.Migrate(ctx, appCfg.Database.DSN); err != nil {
			logger.Error("migrate database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("migrations applied")
		if len(seederCfg.Paths) == 0 {
			return
		}
	}

	var repo seeder.SynsetBulkRepo
	if !seederCfg.DryRun {
		pool, err := postgres.NewPool(ctx, appCfg.Database)
		if err != nil {
			logger.Error("connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()

		repo = synset.New(pool, postgres.NewTxManager(pool))
	}

	// Run pipeline.
	pipeline := seeder.NewPipeline(logger, repo, *seederCfg)
	if err := pipeline.Run(ctx, phases); err != nil {
		logger.Error("pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if pipeline.HasErrors() {
		logger.Warn("pipeline completed with errors",
			slog.Int("malformed_lines", pipeline.ParseStats().Malformed),
		)
		os.Exit(1)
	}

	logger.Info("pipeline completed successfully")
}

func lookup(ctx context.Context, dbCfg config.DatabaseConfig, rawKey, lang string, w io.Writer) error {
	key, err := domain.ParseSenseKey(rawKey)
	if err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	repo := synset.New(pool, postgres.NewTxManager(pool))
	s, err := repo.GetSynset(ctx, key, lang)
	if err != nil {
		return err
	}

	printSynset(w, s)
	return nil
}

func find(ctx context.Context, dbCfg config.DatabaseConfig, lang, lemma string, w io.Writer) error {
	if len(lang) != 3 {
		return domain.NewValidationError("lang", "--find needs a 3-letter --lang")
	}

	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	repo := synset.New(pool, postgres.NewTxManager(pool))
	keys, err := repo.FindKeysByLemma(ctx, lang, lemma)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return fmt.Errorf("lemma %q in %s: %w", lemma, lang, domain.ErrNotFound)
	}

	for _, k := range keys {
		fmt.Fprintln(w, k.String())
	}
	return nil
}

// printSynset writes s back out in OMW tab format.
func printSynset(w io.Writer, s *domain.Synset) {
	k := s.Key.String()
	for _, l := range s.Lemmas {
		fmt.Fprintf(w, "%s\t%s:lemma\t%s\n", k, l.Language, l.Lemma)
	}
	for _, d := range s.Definitions {
		fmt.Fprintf(w, "%s\t%s:def\t%d\t%s\n", k, d.Language, d.SenseIndex, d.Definition)
	}
	for _, e := range s.Examples {
		fmt.Fprintf(w, "%s\t%s:exe\t%s\n", k, e.Language, e.Example)
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
