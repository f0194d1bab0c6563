package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/propai/catalyst-cli/internal/fetch"
	"github.com/propai/catalyst-cli/internal/model"
)

// Engine runs the ingestion pipeline: fetch each source, normalize and
// classify its rows, and emit catalyst candidates.
type Engine struct {
	fetcher     fetch.Fetcher
	rules       Rules
	concurrency int
	now         func() time.Time
}

// NewEngine creates an ingestion engine. Concurrency bounds how many
// sources fetch in parallel; values below 1 mean sequential.
func NewEngine(f fetch.Fetcher, rules Rules, concurrency int) *Engine {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Engine{
		fetcher:     f,
		rules:       rules,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// SourceResult reports the per-adapter outcome of a run.
type SourceResult struct {
	Source     string
	State      string
	Candidates int
	Err        error
}

// Run fetches all sources and returns the union of their candidate rows.
// Adapters are independent: one failing is logged, reported in its
// SourceResult, and never aborts the others. The candidate union is
// deterministic regardless of fetch completion order.
func (e *Engine) Run(ctx context.Context, sources []SourceConfig) ([]model.Catalyst, []SourceResult) {
	log := zap.L().With(zap.String("component", "ingest.engine"))

	perSource := make([][]model.Catalyst, len(sources))
	results := make([]SourceResult, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, src := range sources {
		g.Go(func() error {
			srcLog := log.With(zap.String("source", src.Name), zap.String("state", src.State))
			srcLog.Info("loading source")

			rows, err := e.loadSource(gctx, src)
			results[i] = SourceResult{Source: src.Name, State: src.State, Candidates: len(rows), Err: err}
			if err != nil {
				srcLog.Error("source failed, skipping", zap.Error(err))
				return nil
			}

			perSource[i] = rows
			srcLog.Info("source loaded", zap.Int("candidates", len(rows)))
			return nil
		})
	}
	_ = g.Wait()

	var candidates []model.Catalyst
	for _, rows := range perSource {
		candidates = append(candidates, rows...)
	}

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	log.Info("ingestion run complete",
		zap.Int("sources", len(sources)),
		zap.Int("failed", failed),
		zap.Int("candidates", len(candidates)),
	)

	return candidates, results
}

// loadSource fetches and parses one source, then filters and classifies
// its rows into candidates.
func (e *Engine) loadSource(ctx context.Context, src SourceConfig) ([]model.Catalyst, error) {
	body, err := e.fetcher.Download(ctx, src.URL)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: fetch %s", src.Name)
	}
	defer body.Close()

	var rows []fetch.Row
	switch src.Format {
	case FormatCSV:
		rows, err = fetch.DecodeCSV(body, src.Encoding)
	case FormatJSON:
		rows, err = fetch.DecodeRecords(body)
	case FormatXLSX:
		rows, err = fetch.DecodeXLSX(body)
	default:
		return nil, eris.Errorf("ingest: source %s: unknown format %q", src.Name, src.Format)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: parse %s", src.Name)
	}

	var candidates []model.Catalyst
	for _, row := range rows {
		if c, ok := e.buildCandidate(src, row); ok {
			candidates = append(candidates, c)
		}
	}
	return candidates, nil
}

// buildCandidate normalizes one source row and applies the qualification
// and classification rules. Returns ok=false for rows that are dropped:
// missing geometry or under the magnitude/age thresholds.
func (e *Engine) buildCandidate(src SourceConfig, row fetch.Row) (model.Catalyst, bool) {
	now := e.now().UTC()

	capex := optFloat(row.Get(src.CapexField))
	jobs := optInt(row.Get(src.JobsField))
	year := optYear(row.Get(src.YearField))

	lat, latOK := NormalizeFloat(row.Get(src.LatField))
	lng, lngOK := NormalizeFloat(row.Get(src.LngField))
	if !latOK || !lngOK {
		return model.Catalyst{}, false
	}

	if !e.rules.Qualifies(capex, jobs, year, now) {
		return model.Catalyst{}, false
	}

	var sector string
	if src.SectorField != "" {
		sector = row.Get(src.SectorField)
	}
	catType := ClassifyType(sector, src.DefaultType)

	name := row.Get(src.NameField)
	if name == "" {
		name = fmt.Sprintf("%s Project", src.State)
	}

	c := model.Catalyst{
		Name:          name,
		State:         src.State,
		Type:          catType,
		Lat:           lat,
		Lng:           lng,
		RadiusMiles:   InferRadiusMiles(catType, capex),
		CapexUSD:      capex,
		JobsEstimated: jobs,
		RecencyTier:   RecencyTierFromYear(year, now),
	}
	if year != nil {
		t := time.Date(*year, time.January, 1, 0, 0, 0, 0, time.UTC)
		c.AnnouncedAt = &t
	}
	return c, true
}

func optFloat(s string) *float64 {
	if v, ok := NormalizeFloat(s); ok {
		return &v
	}
	return nil
}

func optInt(s string) *int {
	if v, ok := NormalizeInt(s); ok {
		return &v
	}
	return nil
}

func optYear(s string) *int {
	if v, ok := NormalizeYear(s); ok {
		return &v
	}
	return nil
}
