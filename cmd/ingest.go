package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/propai/catalyst-cli/internal/fetch"
	"github.com/propai/catalyst-cli/internal/ingest"
)

var (
	ingestSourcesFile string
	ingestDryRun      bool
	ingestConcurrency int
	ingestSkipSeeds   bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch state incentive sources and reconcile catalysts into the store",
	Long: `Fetches every configured state incentive-program source, normalizes and
classifies the rows into catalyst candidates, and upserts them into the
store by (name, state, type) business key. Curated seed catalysts are
reconciled alongside the automated sources.

Examples:
  # Run all built-in sources plus the curated seeds
  ingest

  # Preview candidates without writing to the store
  ingest --dry-run

  # Add or override source adapters from a yaml file
  ingest --sources ./sources.yaml`,
	RunE: runIngest,
}

func init() {
	f := ingestCmd.Flags()
	f.StringVar(&ingestSourcesFile, "sources", "", "yaml file of additional source adapters (default from config)")
	f.BoolVar(&ingestDryRun, "dry-run", false, "build candidates but skip the store write")
	f.IntVar(&ingestConcurrency, "concurrency", 0, "parallel source fetches (default from config)")
	f.BoolVar(&ingestSkipSeeds, "skip-seeds", false, "skip the curated seed catalysts")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := zap.L().With(zap.String("command", "ingest"))

	sources := ingest.DefaultSources()
	sourcesFile := ingestSourcesFile
	if sourcesFile == "" {
		sourcesFile = cfg.Ingest.SourcesFile
	}
	if sourcesFile != "" {
		var err error
		sources, err = ingest.LoadSources(sourcesFile)
		if err != nil {
			return err
		}
	}

	concurrency := ingestConcurrency
	if concurrency == 0 {
		concurrency = cfg.Ingest.Concurrency
	}

	fetcher := fetch.New(fetch.Options{
		UserAgent: cfg.Ingest.UserAgent,
		Timeout:   time.Duration(cfg.Ingest.TimeoutSecs) * time.Second,
	})

	rules := ingest.Rules{
		MinCapexUSD: cfg.Ingest.MinCapexUSD,
		MinJobs:     cfg.Ingest.MinJobs,
		MaxAgeYears: cfg.Ingest.MaxAgeYears,
	}

	engine := ingest.NewEngine(fetcher, rules, concurrency)
	candidates, results := engine.Run(ctx, sources)

	for _, r := range results {
		status := "ok"
		if r.Err != nil {
			status = "failed"
		}
		fmt.Printf("%-40s %-4s %-8s %d candidates\n", r.Source, r.State, status, r.Candidates)
	}

	if !ingestSkipSeeds {
		seeds := ingest.SeedCatalysts(time.Now())
		candidates = append(candidates, seeds...)
		log.Info("added curated seeds", zap.Int("seeds", len(seeds)))
	}

	if ingestDryRun {
		fmt.Printf("\ndry run: %d candidates, store untouched\n", len(candidates))
		return nil
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	stats, err := ingest.NewReconciler(s).Reconcile(ctx, candidates)
	if err != nil {
		return err
	}

	fmt.Printf("\nreconciled: %d inserted, %d updated\n", stats.Inserted, stats.Updated)
	return nil
}
