package analyzer

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"StockLens/internal/calculator"
	"StockLens/internal/grid"
	"StockLens/internal/model"
	"StockLens/internal/strategy"
)

// SectorMapper resolves a display symbol to its sector tag. Unmapped
// symbols come back as "Unknown" rather than failing.
type SectorMapper interface {
	SectorOf(symbol string) string
}

// Options carries the windows and knobs the analyzer computes with.
type Options struct {
	LevelWindow      int
	HistoryDays      int
	SectorSeriesDays int
	SectorWindowDays int
	SharesPerStock   int
	Workers          int
}

func (o Options) withDefaults() Options {
	if o.LevelWindow <= 0 {
		o.LevelWindow = 10
	}
	if o.HistoryDays <= 0 {
		o.HistoryDays = 10
	}
	if o.SectorSeriesDays <= 0 {
		o.SectorSeriesDays = 7
	}
	if o.SectorWindowDays <= 0 {
		o.SectorWindowDays = 30
	}
	if o.SharesPerStock <= 0 {
		o.SharesPerStock = 100
	}
	if o.Workers <= 0 {
		o.Workers = 4
	}
	return o
}

// Analyzer derives all analytics from the price grid. It holds no state of
// its own; every call recomputes from the grid, so reruns over the same
// data always agree.
type Analyzer struct {
	grid    *grid.Grid
	sectors SectorMapper
	opts    Options
	log     zerolog.Logger
}

// New creates an Analyzer over the given grid and sector mapping.
func New(g *grid.Grid, sectors SectorMapper, opts Options, log zerolog.Logger) *Analyzer {
	return &Analyzer{grid: g, sectors: sectors, opts: opts.withDefaults(), log: log}
}

// LatestTradingDay returns the newest date with any grid data.
func (a *Analyzer) LatestTradingDay() (time.Time, bool) {
	return a.grid.LatestDate()
}

// Series builds the stock's daily bars up to and including asOf. Dates
// with fewer than two observations cannot form a bar and are skipped.
func (a *Analyzer) Series(symbol string, asOf time.Time) model.StockSeries {
	asOf = model.Day(asOf)
	series := model.StockSeries{Symbol: symbol}
	for _, date := range a.grid.Dates() {
		if date.After(asOf) {
			break
		}
		obs := a.grid.Observations(symbol, date)
		bar, err := calculator.AggregateDay(symbol, date, obs)
		if err != nil {
			continue
		}
		series.Bars = append(series.Bars, bar)
	}
	return series
}

// closesUpTo returns the stock's daily closes through asOf. Days with a
// single observation still contribute their close here even though they
// cannot form a full bar.
func (a *Analyzer) closesUpTo(symbol string, asOf time.Time) []model.ClosePoint {
	asOf = model.Day(asOf)
	var out []model.ClosePoint
	for _, cp := range a.grid.DailyCloses(symbol) {
		if cp.Date.After(asOf) {
			break
		}
		out = append(out, cp)
	}
	return out
}

// emaSet computes the three horizon EMAs over the close sequence. A
// horizon with fewer closes than its period stays nil.
func (a *Analyzer) emaSet(symbol string, closes []float64) model.EmaSet {
	var set model.EmaSet
	for _, h := range []struct {
		period int
		target **float64
	}{
		{model.EmaShortPeriod, &set.Short},
		{model.EmaMediumPeriod, &set.Medium},
		{model.EmaLongPeriod, &set.Long},
	} {
		v, err := calculator.CalculateEMA(closes, h.period)
		if err != nil {
			if !errors.Is(err, calculator.ErrInsufficientData) {
				a.log.Warn().Err(err).Str("symbol", symbol).Int("period", h.period).Msg("ema calculation failed")
			}
			continue
		}
		value := v
		*h.target = &value
	}
	return set
}

// AnalyzeStock computes the full per-stock record for one date: the daily
// bar, EMA set, trend read, trailing levels, close history and the day's
// intraday sequence.
func (a *Analyzer) AnalyzeStock(symbol string, date time.Time) (model.StockDetail, error) {
	date = model.Day(date)
	obs := a.grid.Observations(symbol, date)
	bar, err := calculator.AggregateDay(symbol, date, obs)
	if err != nil {
		return model.StockDetail{}, fmt.Errorf("aggregate %s on %s: %w", symbol, date.Format(grid.DateLayout), err)
	}

	closePoints := a.closesUpTo(symbol, date)
	closes := make([]float64, len(closePoints))
	for i, cp := range closePoints {
		closes[i] = cp.Close
	}
	set := a.emaSet(symbol, closes)
	trend := strategy.Classify(bar.Close, set)

	series := a.Series(symbol, date)
	levels := calculator.ComputeLevels(series.Bars, a.opts.LevelWindow, bar.Close, bar.High, bar.Low)

	history := closePoints
	if len(history) > a.opts.HistoryDays {
		history = history[len(history)-a.opts.HistoryDays:]
	}

	return model.StockDetail{
		Symbol:   symbol,
		Sector:   a.sectors.SectorOf(symbol),
		Bar:      bar,
		Ema:      set,
		Trend:    trend,
		Levels:   levels,
		History:  history,
		Intraday: obs,
	}, nil
}

// AnalyzeDay runs the per-stock pipeline for every symbol over a worker
// pool, then joins for the cross-stock aggregations. A stock without
// enough data for the date is skipped with a log line and never blocks
// the others.
func (a *Analyzer) AnalyzeDay(date time.Time, symbols []string) (*model.DayReport, error) {
	date = model.Day(date)

	details := make([]*model.StockDetail, len(symbols))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < a.opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				d, err := a.AnalyzeStock(symbols[i], date)
				if err != nil {
					if errors.Is(err, calculator.ErrInsufficientData) {
						a.log.Debug().Str("symbol", symbols[i]).Msg("no usable data for date, skipping")
					} else {
						a.log.Warn().Err(err).Str("symbol", symbols[i]).Msg("stock analysis failed")
					}
					continue
				}
				details[i] = &d
			}
		}()
	}
	for i := range symbols {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	report := &model.DayReport{}
	for _, d := range details {
		if d != nil {
			report.Stocks = append(report.Stocks, *d)
		}
	}
	if len(report.Stocks) == 0 {
		return nil, fmt.Errorf("no stock had usable data on %s", date.Format(grid.DateLayout))
	}

	report.Gainers, report.Losers = rankMovers(report.Stocks)
	report.Sectors = SectorSummaries(report.Stocks)

	bars := make([]model.DailyBar, len(report.Stocks))
	for i, d := range report.Stocks {
		bars[i] = d.Bar
	}
	report.Portfolio = Portfolio(bars, a.opts.SharesPerStock)
	report.Summary = summarize(date, report.Stocks, report.Gainers, report.Losers)
	return report, nil
}

// rankMovers splits the day's stocks into gainers (descending) and losers
// (ascending). Flat stocks and stocks without a change percentage land in
// neither list.
func rankMovers(stocks []model.StockDetail) (gainers, losers []model.StockDetail) {
	for _, d := range stocks {
		if d.Bar.ChangePct == nil {
			continue
		}
		switch {
		case *d.Bar.ChangePct > 0:
			gainers = append(gainers, d)
		case *d.Bar.ChangePct < 0:
			losers = append(losers, d)
		}
	}
	sort.SliceStable(gainers, func(i, j int) bool {
		return *gainers[i].Bar.ChangePct > *gainers[j].Bar.ChangePct
	})
	sort.SliceStable(losers, func(i, j int) bool {
		return *losers[i].Bar.ChangePct < *losers[j].Bar.ChangePct
	})
	return gainers, losers
}

func summarize(date time.Time, stocks, gainers, losers []model.StockDetail) model.DaySummary {
	sum := model.DaySummary{
		Date:        date,
		TotalStocks: len(stocks),
		GainerCount: len(gainers),
		LoserCount:  len(losers),
	}

	total, counted := 0.0, 0
	for _, d := range stocks {
		if d.Bar.ChangePct != nil {
			total += math.Abs(*d.Bar.ChangePct)
			counted++
		}
	}
	if counted > 0 {
		sum.AvgVolatility = calculator.Round2(total / float64(counted))
	}

	switch {
	case len(gainers) > len(losers):
		sum.Mood = model.MoodPositive
	case len(losers) > len(gainers):
		sum.Mood = model.MoodNegative
	default:
		sum.Mood = model.MoodNeutral
	}
	return sum
}
