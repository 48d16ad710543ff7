package model

import "time"

// DailyBar is the aggregate of one stock's observations on one date.
// ChangePct is nil when the open is not positive, so a degenerate open
// never turns into a division fault or a silent NaN.
type DailyBar struct {
	Symbol      string
	Date        time.Time
	Open        float64
	Close       float64
	High        float64
	HighTime    Slot
	Low         float64
	LowTime     Slot
	Change      float64
	ChangePct   *float64
	GreenShadow float64
	RedShadow   float64
}

// StockSeries is one stock's bars ordered by date, one bar per date.
type StockSeries struct {
	Symbol string
	Bars   []DailyBar
}

// Closes returns the chronological close sequence of the series.
func (s *StockSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Last returns the most recent bar, or nil for an empty series.
func (s *StockSeries) Last() *DailyBar {
	if len(s.Bars) == 0 {
		return nil
	}
	return &s.Bars[len(s.Bars)-1]
}

// Window returns the trailing n bars, or the whole series when fewer exist.
func (s *StockSeries) Window(n int) []DailyBar {
	if n <= 0 || n >= len(s.Bars) {
		return s.Bars
	}
	return s.Bars[len(s.Bars)-n:]
}

// YearlyBar aggregates a stock over the full loaded date range: open of the
// first trading date, close of the last, extrema over every observation in
// between with the date and slot they occurred at.
type YearlyBar struct {
	Symbol      string
	FirstDate   time.Time
	LastDate    time.Time
	Open        float64
	Close       float64
	High        float64
	HighDate    time.Time
	HighTime    Slot
	Low         float64
	LowDate     time.Time
	LowTime     Slot
	Change      float64
	ChangePct   *float64
	GreenShadow float64
	RedShadow   float64
}
