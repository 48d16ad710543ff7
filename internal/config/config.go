package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Data struct {
		GridFile     string `yaml:"grid_file"`
		UniverseFile string `yaml:"universe_file"`
	} `yaml:"data"`
	Fetch struct {
		Source       string `yaml:"source"`
		MaxWorkers   int    `yaml:"max_workers"`
		BackfillDays int    `yaml:"backfill_days"`
	} `yaml:"fetch"`
	Analysis struct {
		LevelWindow      int `yaml:"level_window"`
		HistoryDays      int `yaml:"history_days"`
		SectorSeriesDays int `yaml:"sector_series_days"`
		SectorWindowDays int `yaml:"sector_window_days"`
		SharesPerStock   int `yaml:"shares_per_stock"`
	} `yaml:"analysis"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
		EODCron     string `yaml:"eod_cron"`
	} `yaml:"schedule"`
	Output struct {
		DashboardFile string `yaml:"dashboard_file"`
		DetailsDir    string `yaml:"details_dir"`
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("GRID_FILE"); v != "" {
		cfg.Data.GridFile = v
	}
	if v := os.Getenv("UNIVERSE_FILE"); v != "" {
		cfg.Data.UniverseFile = v
	}
	if v := os.Getenv("FETCH_SOURCE"); v != "" {
		cfg.Fetch.Source = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("CRON_EOD"); v != "" {
		cfg.Schedule.EODCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SHARES_PER_STOCK"); v != "" {
		var shares int
		if _, err := fmt.Sscanf(v, "%d", &shares); err == nil {
			cfg.Analysis.SharesPerStock = shares
		}
	}

	// Defaults
	if cfg.Data.GridFile == "" {
		cfg.Data.GridFile = "data/stock_grid.csv"
	}
	if cfg.Data.UniverseFile == "" {
		cfg.Data.UniverseFile = "configs/stocks.json"
	}
	if cfg.Fetch.Source == "" {
		cfg.Fetch.Source = "yahoo"
	}
	if cfg.Fetch.MaxWorkers == 0 {
		cfg.Fetch.MaxWorkers = 5
	}
	if cfg.Fetch.BackfillDays == 0 {
		cfg.Fetch.BackfillDays = 10
	}
	if cfg.Analysis.LevelWindow == 0 {
		cfg.Analysis.LevelWindow = 10
	}
	if cfg.Analysis.HistoryDays == 0 {
		cfg.Analysis.HistoryDays = 10
	}
	if cfg.Analysis.SectorSeriesDays == 0 {
		cfg.Analysis.SectorSeriesDays = 7
	}
	if cfg.Analysis.SectorWindowDays == 0 {
		cfg.Analysis.SectorWindowDays = 30
	}
	if cfg.Analysis.SharesPerStock == 0 {
		cfg.Analysis.SharesPerStock = 100
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */15 9-15 * * 1-5"
	}
	if cfg.Schedule.EODCron == "" {
		cfg.Schedule.EODCron = "0 45 15 * * 1-5"
	}
	if cfg.Output.DashboardFile == "" {
		cfg.Output.DashboardFile = "output/dashboard_data.json"
	}
	if cfg.Output.DetailsDir == "" {
		cfg.Output.DetailsDir = "output/stocks"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stocklens.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Data.GridFile == "" {
		return fmt.Errorf("data.grid_file is required")
	}
	if c.Data.UniverseFile == "" {
		return fmt.Errorf("data.universe_file is required")
	}
	if c.Fetch.Source != "yahoo" && c.Fetch.Source != "mock" {
		return fmt.Errorf("fetch.source must be yahoo or mock, got %q", c.Fetch.Source)
	}
	if c.Fetch.MaxWorkers <= 0 {
		return fmt.Errorf("fetch.max_workers must be positive")
	}
	if c.Analysis.LevelWindow <= 0 {
		return fmt.Errorf("analysis.level_window must be positive")
	}
	if c.Analysis.SharesPerStock <= 0 {
		return fmt.Errorf("analysis.shares_per_stock must be positive")
	}
	return nil
}
