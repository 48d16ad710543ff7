package model

import "time"

// Trend labels one EMA horizon's read, or the overall vote.
type Trend string

const (
	TrendBullish Trend = "Bullish"
	TrendBearish Trend = "Bearish"
	TrendNeutral Trend = "Neutral"
	TrendNA      Trend = "N/A"
)

// Signal is the action mirror of the overall trend.
type Signal string

const (
	SignalBuy  Signal = "BUY"
	SignalSell Signal = "SELL"
	SignalHold Signal = "HOLD"
)

// EMA horizons used across the analyzer. The smoothing engine itself takes
// any period; these are the three the reports are built from.
const (
	EmaShortPeriod  = 9
	EmaMediumPeriod = 20
	EmaLongPeriod   = 200
)

// EmaSet holds the three horizon values. A nil entry means that horizon had
// fewer closes than its period and is reported as unavailable, never zero.
type EmaSet struct {
	Short  *float64
	Medium *float64
	Long   *float64
}

// TrendResult is the classifier output: per-horizon reads plus the majority
// vote and its action signal. Stateless given close and EMA inputs.
type TrendResult struct {
	Overall    Trend
	Signal     Signal
	ShortTerm  Trend
	MediumTerm Trend
	LongTerm   Trend
}

// SupportResistance holds trailing-window extrema for one stock. Distances
// are plain subtractions against the current close and may be negative.
type SupportResistance struct {
	Resistance           float64
	Support              float64
	DistanceToResistance float64
	DistanceToSupport    float64
}

// ClosePoint is one entry of a stock's recent close history.
type ClosePoint struct {
	Date  time.Time
	Close float64
}

// StockDetail is the full per-stock record handed to report generators.
type StockDetail struct {
	Symbol   string
	Sector   string
	Bar      DailyBar
	Ema      EmaSet
	Trend    TrendResult
	Levels   SupportResistance
	History  []ClosePoint
	Intraday []Observation
}

// YearlyDetail is the yearly-scope per-stock record: the year's aggregate
// bar plus the indicator set computed at yearly scope.
type YearlyDetail struct {
	Symbol string
	Sector string
	Bar    YearlyBar
	Ema    EmaSet
	Trend  TrendResult
	Levels SupportResistance
}

// Mood is the market-wide read derived from gainer and loser counts.
type Mood string

const (
	MoodPositive Mood = "positive"
	MoodNegative Mood = "negative"
	MoodNeutral  Mood = "neutral"
)

// DaySummary carries the whole-market figures for one trading date.
type DaySummary struct {
	Date          time.Time
	TotalStocks   int
	GainerCount   int
	LoserCount    int
	AvgVolatility float64
	Mood          Mood
}

// SectorSummary aggregates one sector's constituents for a single day.
type SectorSummary struct {
	Sector         string
	Stocks         int
	AvgChangePct   float64
	BestStock      string
	BestChangePct  float64
	WorstStock     string
	WorstChangePct float64
}

// SectorDayPerf is one day of a sector performance series. Stocks counts
// the constituents that had usable data that day.
type SectorDayPerf struct {
	Date         time.Time
	AvgChangePct float64
	Stocks       int
}

// SectorSeries is a sector's trailing daily performance, oldest first.
type SectorSeries struct {
	Sector string
	Days   []SectorDayPerf
}

// StockWindowPerf is one stock's first-vs-last close move over a window.
type StockWindowPerf struct {
	Symbol     string
	FirstClose float64
	LastClose  float64
	ChangePct  float64
}

// SectorWindowSummary is the 30-day style sector view: the average of the
// constituents' window moves plus the best and worst gainer.
type SectorWindowSummary struct {
	Sector       string
	Stocks       int
	AvgChangePct float64
	Best         StockWindowPerf
	Worst        StockWindowPerf
}

// PortfolioSnapshot values every analyzed stock at a fixed share count.
type PortfolioSnapshot struct {
	SharesPerStock int
	Stocks         int
	TotalValue     float64
	TotalChange    float64
	ChangePct      float64
}

// DayReport is the complete output for one analyzed trading date.
type DayReport struct {
	Summary   DaySummary
	Stocks    []StockDetail
	Gainers   []StockDetail
	Losers    []StockDetail
	Sectors   []SectorSummary
	Portfolio PortfolioSnapshot
}
