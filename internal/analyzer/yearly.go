package analyzer

import (
	"fmt"
	"time"

	"StockLens/internal/calculator"
	"StockLens/internal/model"
	"StockLens/internal/strategy"
)

// AnalyzeYear aggregates one stock over every loaded date through end:
// open of the first session, close of the last, extrema with the date and
// slot they printed at, plus the indicator set computed at yearly scope.
// The EMAs run over the full intraday sequence rather than daily closes,
// and the levels span the whole series instead of a trailing window.
func (a *Analyzer) AnalyzeYear(symbol string, end time.Time) (model.YearlyDetail, error) {
	end = model.Day(end)

	var flat []model.Observation
	for _, date := range a.grid.Dates() {
		if date.After(end) {
			break
		}
		flat = append(flat, a.grid.Observations(symbol, date)...)
	}
	if len(flat) < 2 {
		return model.YearlyDetail{}, fmt.Errorf("aggregate %s yearly: %w", symbol, calculator.ErrInsufficientData)
	}

	first, last := flat[0], flat[len(flat)-1]
	high, low := flat[0], flat[0]
	for _, o := range flat[1:] {
		if o.Price > high.Price {
			high = o
		}
		if o.Price < low.Price {
			low = o
		}
	}

	bar := model.YearlyBar{
		Symbol:      symbol,
		FirstDate:   first.Date,
		LastDate:    last.Date,
		Open:        calculator.Round2(first.Price),
		Close:       calculator.Round2(last.Price),
		High:        calculator.Round2(high.Price),
		HighDate:    high.Date,
		HighTime:    high.Slot,
		Low:         calculator.Round2(low.Price),
		LowDate:     low.Date,
		LowTime:     low.Slot,
		Change:      calculator.Round2(last.Price - first.Price),
		GreenShadow: calculator.Round2(high.Price - last.Price),
		RedShadow:   calculator.Round2(first.Price - low.Price),
	}
	if first.Price > 0 {
		pct := calculator.Round2((last.Price - first.Price) / first.Price * 100)
		bar.ChangePct = &pct
	}

	prices := make([]float64, len(flat))
	for i, o := range flat {
		prices[i] = o.Price
	}
	set := a.emaSet(symbol, prices)
	series := a.Series(symbol, end)

	return model.YearlyDetail{
		Symbol: symbol,
		Sector: a.sectors.SectorOf(symbol),
		Bar:    bar,
		Ema:    set,
		Trend:  strategy.Classify(bar.Close, set),
		Levels: calculator.ComputeLevels(series.Bars, len(series.Bars), bar.Close, bar.High, bar.Low),
	}, nil
}
