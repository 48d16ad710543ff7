package analyzer

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"StockLens/internal/calculator"
	"StockLens/internal/grid"
	"StockLens/internal/model"
)

type stubSectors map[string]string

func (s stubSectors) SectorOf(symbol string) string {
	if sector, ok := s[symbol]; ok {
		return sector
	}
	return "Unknown"
}

var (
	d1 = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	d2 = time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	d3 = time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)
)

func slotAt(h, m int) model.Slot { return model.Slot(h*60 + m) }

// fixtureGrid: RELIANCE has three days of data, TCS and INFY trade only on
// the last day, NODATA prints a single lonely tick.
func fixtureGrid() *grid.Grid {
	g := grid.New([]string{"RELIANCE", "TCS", "INFY", "NODATA"})

	g.SetPrice("RELIANCE", d1, slotAt(9, 0), 2700)
	g.SetPrice("RELIANCE", d1, slotAt(15, 30), 2760)
	g.SetPrice("RELIANCE", d2, slotAt(9, 0), 2760)
	g.SetPrice("RELIANCE", d2, slotAt(15, 30), 2790)
	g.SetPrice("RELIANCE", d3, slotAt(9, 0), 2800)
	g.SetPrice("RELIANCE", d3, slotAt(10, 0), 2900)
	g.SetPrice("RELIANCE", d3, slotAt(11, 0), 2750)
	g.SetPrice("RELIANCE", d3, slotAt(15, 30), 2856)

	g.SetPrice("TCS", d3, slotAt(9, 0), 4000)
	g.SetPrice("TCS", d3, slotAt(15, 30), 3900)

	g.SetPrice("INFY", d3, slotAt(9, 0), 1500)
	g.SetPrice("INFY", d3, slotAt(15, 30), 1530)

	g.SetPrice("NODATA", d3, slotAt(10, 0), 50)
	return g
}

func fixtureAnalyzer() *Analyzer {
	sectors := stubSectors{"RELIANCE": "Energy", "TCS": "IT", "INFY": "IT"}
	return New(fixtureGrid(), sectors, Options{}, zerolog.Nop())
}

func TestAnalyzeStock(t *testing.T) {
	a := fixtureAnalyzer()
	d, err := a.AnalyzeStock("RELIANCE", d3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.Sector != "Energy" {
		t.Errorf("expected sector Energy, got %q", d.Sector)
	}
	if d.Bar.Open != 2800 || d.Bar.Close != 2856 {
		t.Errorf("expected open/close 2800/2856, got %v/%v", d.Bar.Open, d.Bar.Close)
	}
	if d.Bar.High != 2900 || d.Bar.HighTime != slotAt(10, 0) {
		t.Errorf("expected high 2900 at 10:00, got %v at %s", d.Bar.High, d.Bar.HighTime)
	}
	if d.Bar.ChangePct == nil || *d.Bar.ChangePct != 2 {
		t.Errorf("expected change pct 2, got %v", d.Bar.ChangePct)
	}

	// only three closes exist, far short of the 9-day horizon
	if d.Ema.Short != nil || d.Ema.Medium != nil || d.Ema.Long != nil {
		t.Errorf("expected all EMA horizons unavailable, got %+v", d.Ema)
	}
	if d.Trend.Overall != model.TrendNeutral || d.Trend.Signal != model.SignalHold {
		t.Errorf("expected Neutral/HOLD without EMAs, got %s/%s", d.Trend.Overall, d.Trend.Signal)
	}
	if d.Trend.LongTerm != model.TrendNA {
		t.Errorf("expected N/A long term, got %s", d.Trend.LongTerm)
	}

	if d.Levels.Resistance != 2900 || d.Levels.Support != 2700 {
		t.Errorf("expected levels 2900/2700, got %v/%v", d.Levels.Resistance, d.Levels.Support)
	}
	if d.Levels.DistanceToResistance != 44 || d.Levels.DistanceToSupport != 156 {
		t.Errorf("expected distances 44/156, got %v/%v", d.Levels.DistanceToResistance, d.Levels.DistanceToSupport)
	}

	if len(d.History) != 3 || d.History[2].Close != 2856 {
		t.Errorf("expected 3 history points ending 2856, got %+v", d.History)
	}
	if len(d.Intraday) != 4 {
		t.Errorf("expected 4 intraday observations, got %d", len(d.Intraday))
	}
}

func TestAnalyzeStock_InsufficientData(t *testing.T) {
	a := fixtureAnalyzer()
	_, err := a.AnalyzeStock("NODATA", d3)
	if !errors.Is(err, calculator.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestAnalyzeDay(t *testing.T) {
	a := fixtureAnalyzer()
	report, err := a.AnalyzeDay(d3, []string{"RELIANCE", "TCS", "INFY", "NODATA"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Stocks) != 3 {
		t.Fatalf("expected 3 analyzed stocks, got %d", len(report.Stocks))
	}
	if report.Stocks[0].Symbol != "RELIANCE" || report.Stocks[1].Symbol != "TCS" {
		t.Errorf("expected input order preserved, got %s then %s", report.Stocks[0].Symbol, report.Stocks[1].Symbol)
	}

	// RELIANCE and INFY both gained exactly 2%, ranked by input order
	if len(report.Gainers) != 2 || report.Gainers[0].Symbol != "RELIANCE" || report.Gainers[1].Symbol != "INFY" {
		t.Errorf("unexpected gainers: %+v", symbolsOf(report.Gainers))
	}
	if len(report.Losers) != 1 || report.Losers[0].Symbol != "TCS" {
		t.Errorf("unexpected losers: %+v", symbolsOf(report.Losers))
	}

	sum := report.Summary
	if !sum.Date.Equal(d3) || sum.TotalStocks != 3 || sum.GainerCount != 2 || sum.LoserCount != 1 {
		t.Errorf("unexpected summary: %+v", sum)
	}
	if sum.Mood != model.MoodPositive {
		t.Errorf("expected positive mood, got %s", sum.Mood)
	}
	// mean of |2|, |-2.5|, |2|
	if sum.AvgVolatility != 2.17 {
		t.Errorf("expected avg volatility 2.17, got %v", sum.AvgVolatility)
	}

	if report.Portfolio.TotalValue != 828600 {
		t.Errorf("expected portfolio value 828600, got %v", report.Portfolio.TotalValue)
	}
	if report.Portfolio.TotalChange != -1400 {
		t.Errorf("expected portfolio change -1400, got %v", report.Portfolio.TotalChange)
	}
	if report.Portfolio.ChangePct != -0.17 {
		t.Errorf("expected portfolio change pct -0.17, got %v", report.Portfolio.ChangePct)
	}

	if len(report.Sectors) != 2 || report.Sectors[0].Sector != "Energy" || report.Sectors[1].Sector != "IT" {
		t.Errorf("unexpected sector order: %+v", report.Sectors)
	}
}

func TestAnalyzeDay_NoUsableData(t *testing.T) {
	a := New(grid.New(nil), stubSectors{}, Options{}, zerolog.Nop())
	if _, err := a.AnalyzeDay(d3, []string{"GHOST"}); err == nil {
		t.Error("expected error when no stock has data")
	}
}

func TestLatestTradingDay(t *testing.T) {
	a := fixtureAnalyzer()
	latest, ok := a.LatestTradingDay()
	if !ok || !latest.Equal(d3) {
		t.Errorf("expected latest %v, got %v (ok=%v)", d3, latest, ok)
	}
}

func TestAnalyzeYear(t *testing.T) {
	a := fixtureAnalyzer()
	y, err := a.AnalyzeYear("RELIANCE", d3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b := y.Bar
	if b.Open != 2700 || b.Close != 2856 {
		t.Errorf("expected open/close 2700/2856, got %v/%v", b.Open, b.Close)
	}
	if !b.FirstDate.Equal(d1) || !b.LastDate.Equal(d3) {
		t.Errorf("expected range %v..%v, got %v..%v", d1, d3, b.FirstDate, b.LastDate)
	}
	if b.High != 2900 || !b.HighDate.Equal(d3) || b.HighTime != slotAt(10, 0) {
		t.Errorf("expected high 2900 on d3 at 10:00, got %v on %v at %s", b.High, b.HighDate, b.HighTime)
	}
	// 2700 printed first on d1, so the later 2750 does not move the low
	if b.Low != 2700 || !b.LowDate.Equal(d1) || b.LowTime != slotAt(9, 0) {
		t.Errorf("expected low 2700 on d1 at 09:00, got %v on %v at %s", b.Low, b.LowDate, b.LowTime)
	}
	if b.Change != 156 {
		t.Errorf("expected change 156, got %v", b.Change)
	}
	if b.ChangePct == nil || *b.ChangePct != 5.78 {
		t.Errorf("expected change pct 5.78, got %v", b.ChangePct)
	}
	if b.GreenShadow != 44 || b.RedShadow != 0 {
		t.Errorf("expected shadows 44/0, got %v/%v", b.GreenShadow, b.RedShadow)
	}

	// eight intraday prices, short of the 9-point horizon
	if y.Ema.Short != nil {
		t.Errorf("expected short EMA unavailable over 8 prices, got %v", *y.Ema.Short)
	}
	if y.Levels.Resistance != 2900 || y.Levels.Support != 2700 {
		t.Errorf("expected yearly levels 2900/2700, got %v/%v", y.Levels.Resistance, y.Levels.Support)
	}
}

func TestAnalyzeYear_NoData(t *testing.T) {
	a := fixtureAnalyzer()
	if _, err := a.AnalyzeYear("NODATA", d3); !errors.Is(err, calculator.ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData for single observation, got %v", err)
	}
}

func symbolsOf(details []model.StockDetail) []string {
	out := make([]string, len(details))
	for i, d := range details {
		out[i] = d.Symbol
	}
	return out
}
