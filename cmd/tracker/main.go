package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"StockLens/internal/analyzer"
	"StockLens/internal/config"
	"StockLens/internal/fetcher"
	"StockLens/internal/grid"
	"StockLens/internal/ingest"
	"StockLens/internal/metrics"
	"StockLens/internal/model"
	"StockLens/internal/recorder"
	"StockLens/internal/report"
	"StockLens/internal/scheduler"
	"StockLens/internal/universe"
	"StockLens/internal/util"
)

func main() {
	_ = godotenv.Load()

	once := flag.Bool("once", false, "run one full analysis cycle and exit")
	backfill := flag.Int("backfill", 0, "fetch this many past trading days before starting")
	flag.Parse()

	log := util.NewLogger("info")

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	log = util.NewLogger(cfg.Log.Level)
	log.Info().Str("config", cfgPath).Msg("StockLens starting")

	um, err := universe.NewManager(cfg.Data.UniverseFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load universe")
	}
	if len(um.Stocks()) == 0 {
		log.Fatal().Str("path", cfg.Data.UniverseFile).Msg("universe is empty, add stocks with stockctl")
	}
	log.Info().Int("stocks", len(um.Stocks())).Msg("universe loaded")

	g, err := grid.Load(cfg.Data.GridFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load grid")
	}
	for _, sym := range um.DisplaySymbols() {
		g.AddSymbol(sym)
	}

	var f fetcher.Fetcher
	if cfg.Fetch.Source == "mock" {
		f = &fetcher.MockFetcher{}
	} else {
		f = fetcher.NewYahooFetcher(cfg.Proxy)
	}
	log.Info().Str("source", f.Name()).Msg("fetcher ready")

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.Warn().Err(err).Msg("sqlite recorder unavailable, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	pop := ingest.NewPopulator(f, g, cfg.Fetch.MaxWorkers, log)
	an := analyzer.New(g, um, analyzer.Options{
		LevelWindow:      cfg.Analysis.LevelWindow,
		HistoryDays:      cfg.Analysis.HistoryDays,
		SectorSeriesDays: cfg.Analysis.SectorSeriesDays,
		SectorWindowDays: cfg.Analysis.SectorWindowDays,
		SharesPerStock:   cfg.Analysis.SharesPerStock,
		Workers:          cfg.Fetch.MaxWorkers,
	}, log)
	w := report.NewWriter(cfg.Output.DashboardFile, cfg.Output.DetailsDir, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, um, g, cfg.Data.GridFile, pop, an, w, rec, log)

	switch {
	case *backfill > 0:
		sched.RunBackfill(*backfill)
	case len(g.Dates()) == 0:
		log.Info().Int("days", cfg.Fetch.BackfillDays).Msg("grid is empty, backfilling")
		sched.RunBackfill(cfg.Fetch.BackfillDays)
	}

	if *once {
		sched.RunEODNow()
		if date, ok := an.LatestTradingDay(); ok {
			if rep, err := an.AnalyzeDay(date, um.DisplaySymbols()); err == nil {
				fmt.Print(report.FormatDaySummary(rep, time.Now().In(model.MarketTZ)))
			}
		}
		return
	}

	if cfg.Metrics.Addr != "" {
		metrics.Serve(cfg.Metrics.Addr)
		log.Info().Str("addr", cfg.Metrics.Addr).Msg("metrics listening")
	}

	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.EODCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, executing refresh now")
		go sched.RunRefreshNow()
	}

	log.Info().Msg("StockLens is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
	cancel()
	log.Info().Msg("StockLens stopped")
}
