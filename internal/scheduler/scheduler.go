package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"StockLens/internal/analyzer"
	"StockLens/internal/grid"
	"StockLens/internal/ingest"
	"StockLens/internal/metrics"
	"StockLens/internal/model"
	"StockLens/internal/recorder"
	"StockLens/internal/report"
	"StockLens/internal/universe"
)

// Scheduler manages the cron tasks that keep the grid and the dashboard
// outputs fresh.
type Scheduler struct {
	Cron      *cron.Cron
	Universe  *universe.Manager
	Grid      *grid.Grid
	GridPath  string
	Populator *ingest.Populator
	Analyzer  *analyzer.Analyzer
	Writer    *report.Writer
	Recorder  recorder.Recorder
	Ctx       context.Context

	log zerolog.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, um *universe.Manager, g *grid.Grid, gridPath string,
	pop *ingest.Populator, an *analyzer.Analyzer, w *report.Writer, rec recorder.Recorder,
	log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Universe:  um,
		Grid:      g,
		GridPath:  gridPath,
		Populator: pop,
		Analyzer:  an,
		Writer:    w,
		Recorder:  rec,
		Ctx:       ctx,
		log:       log,
	}
}

// RegisterAll registers the intraday refresh and end-of-day tasks.
func (s *Scheduler) RegisterAll(refreshCron, eodCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	if _, err := s.Cron.AddFunc(eodCron, s.eodTask); err != nil {
		return fmt.Errorf("register eod task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.log.Info().Msg("scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately (manual trigger /
// RUN_ON_START).
func (s *Scheduler) RunRefreshNow() { s.refreshTask() }

// RunEODNow executes the end-of-day task immediately.
func (s *Scheduler) RunEODNow() { s.eodTask() }

// RunBackfill fetches the last few trading days into the grid. Used at
// startup when the grid is empty or stale.
func (s *Scheduler) RunBackfill(days int) {
	today := model.Day(time.Now().In(model.MarketTZ))
	dates := grid.LastTradingDays(today, days)
	stats := s.Populator.Populate(s.Ctx, s.Universe.Stocks(), dates)
	metrics.CellsFilled.Add(float64(stats.Cells))
	metrics.FetchErrors.Add(float64(stats.Errors))
	s.saveGrid()
	s.log.Info().Int("days", len(dates)).Int("cells", stats.Cells).Msg("backfill complete")
}

func (s *Scheduler) refreshTask() { s.run(recorder.RunRefresh, false) }

func (s *Scheduler) eodTask() { s.run(recorder.RunEOD, true) }

func (s *Scheduler) run(kind recorder.RunKind, withYearly bool) {
	start := time.Now()
	today := model.Day(start.In(model.MarketTZ))
	s.log.Info().Str("kind", string(kind)).Msg("run started")

	if grid.IsTradingDay(today) {
		stats := s.Populator.Populate(s.Ctx, s.Universe.Stocks(), []time.Time{today})
		metrics.CellsFilled.Add(float64(stats.Cells))
		metrics.FetchErrors.Add(float64(stats.Errors))
		s.saveGrid()
	} else {
		s.log.Info().Msg("market closed today, analyzing existing data")
	}

	date, ok := s.Analyzer.LatestTradingDay()
	if !ok {
		s.log.Error().Msg("grid has no data to analyze")
		metrics.RunsTotal.WithLabelValues(string(kind), "error").Inc()
		return
	}

	symbols := s.Universe.DisplaySymbols()
	rep, err := s.Analyzer.AnalyzeDay(date, symbols)
	if err != nil {
		s.log.Error().Err(err).Msg("day analysis failed")
		metrics.RunsTotal.WithLabelValues(string(kind), "error").Inc()
		return
	}

	trend := s.Analyzer.SectorDailySeries(symbols, date)
	window := s.Analyzer.SectorWindowSummaries(symbols, date)
	now := time.Now().In(model.MarketTZ)

	if err := s.Writer.WriteDashboard(report.NewDashboard(rep, trend, window, now)); err != nil {
		s.log.Error().Err(err).Msg("dashboard write failed")
	}
	for _, d := range rep.Stocks {
		if err := s.Writer.WriteStockDetail(report.NewStockDetailFile(d, date, now)); err != nil {
			s.log.Error().Err(err).Str("symbol", d.Symbol).Msg("detail write failed")
		}
	}
	if withYearly {
		s.writeYearlyDetails(symbols, date, now)
	}

	runID, err := s.Recorder.RecordRun(recorder.NewRunSummary(kind, rep, time.Since(start)),
		recorder.NewStockSnapshots(rep))
	if err != nil {
		s.log.Error().Err(err).Msg("record run failed")
	}

	metrics.RunsTotal.WithLabelValues(string(kind), "ok").Inc()
	metrics.StocksAnalyzed.Set(float64(rep.Summary.TotalStocks))
	s.log.Info().
		Str("kind", string(kind)).
		Str("run_id", runID).
		Str("date", date.Format(grid.DateLayout)).
		Int("stocks", rep.Summary.TotalStocks).
		Str("mood", string(rep.Summary.Mood)).
		Dur("took", time.Since(start)).
		Msg("run complete")
}

func (s *Scheduler) writeYearlyDetails(symbols []string, end, now time.Time) {
	for _, sym := range symbols {
		y, err := s.Analyzer.AnalyzeYear(sym, end)
		if err != nil {
			s.log.Debug().Err(err).Str("symbol", sym).Msg("yearly analysis skipped")
			continue
		}
		if err := s.Writer.WriteYearlyDetail(report.NewYearlyDetailFile(y, now)); err != nil {
			s.log.Error().Err(err).Str("symbol", sym).Msg("yearly write failed")
		}
	}
}

func (s *Scheduler) saveGrid() {
	if err := grid.Save(s.GridPath, s.Grid); err != nil {
		s.log.Error().Err(err).Str("path", s.GridPath).Msg("grid save failed")
	}
}
