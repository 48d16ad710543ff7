package recorder

import (
	"time"

	"StockLens/internal/model"
)

// RunKind names what triggered an analysis run.
type RunKind string

const (
	RunRefresh RunKind = "refresh"
	RunEOD     RunKind = "eod"
)

// RunSummary holds one analysis run's aggregate outcome.
type RunSummary struct {
	Kind            RunKind
	Date            time.Time
	TotalStocks     int
	GainerCount     int
	LoserCount      int
	AvgVolatility   float64
	Mood            string
	PortfolioValue  float64
	PortfolioChange float64
	PortfolioPct    float64
	Duration        time.Duration
}

// StockSnapshot is one stock's state captured during a run.
type StockSnapshot struct {
	Symbol      string
	Sector      string
	Open        float64
	Close       float64
	High        float64
	HighTime    model.Slot
	Low         float64
	LowTime     model.Slot
	Change      float64
	ChangePct   *float64
	GreenShadow float64
	RedShadow   float64
	Trend       string
	Signal      string
}

// RunRow is a stored run as read back for inspection.
type RunRow struct {
	ID             string
	Kind           RunKind
	Date           string
	CreatedAt      time.Time
	TotalStocks    int
	Mood           string
	PortfolioValue float64
}

// Recorder persists analysis runs for later inspection.
type Recorder interface {
	// RecordRun stores the run summary with its per-stock snapshots and
	// returns the new run's ID.
	RecordRun(run *RunSummary, stocks []StockSnapshot) (string, error)
	RecentRuns(limit int) ([]RunRow, error)
	Close() error
}

// NewRunSummary flattens a day report into a run summary.
func NewRunSummary(kind RunKind, r *model.DayReport, duration time.Duration) *RunSummary {
	return &RunSummary{
		Kind:            kind,
		Date:            r.Summary.Date,
		TotalStocks:     r.Summary.TotalStocks,
		GainerCount:     r.Summary.GainerCount,
		LoserCount:      r.Summary.LoserCount,
		AvgVolatility:   r.Summary.AvgVolatility,
		Mood:            string(r.Summary.Mood),
		PortfolioValue:  r.Portfolio.TotalValue,
		PortfolioChange: r.Portfolio.TotalChange,
		PortfolioPct:    r.Portfolio.ChangePct,
		Duration:        duration,
	}
}

// NewStockSnapshots flattens a day report's stocks into snapshots.
func NewStockSnapshots(r *model.DayReport) []StockSnapshot {
	snaps := make([]StockSnapshot, 0, len(r.Stocks))
	for _, d := range r.Stocks {
		snaps = append(snaps, StockSnapshot{
			Symbol:      d.Symbol,
			Sector:      d.Sector,
			Open:        d.Bar.Open,
			Close:       d.Bar.Close,
			High:        d.Bar.High,
			HighTime:    d.Bar.HighTime,
			Low:         d.Bar.Low,
			LowTime:     d.Bar.LowTime,
			Change:      d.Bar.Change,
			ChangePct:   d.Bar.ChangePct,
			GreenShadow: d.Bar.GreenShadow,
			RedShadow:   d.Bar.RedShadow,
			Trend:       string(d.Trend.Overall),
			Signal:      string(d.Trend.Signal),
		})
	}
	return snaps
}
