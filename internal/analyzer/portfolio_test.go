package analyzer

import (
	"testing"

	"StockLens/internal/model"
)

func TestPortfolio(t *testing.T) {
	bars := []model.DailyBar{
		{Symbol: "AAA", Close: 100, Change: 5},
		{Symbol: "BBB", Close: 200, Change: -10},
	}

	snap := Portfolio(bars, 100)
	if snap.Stocks != 2 || snap.SharesPerStock != 100 {
		t.Errorf("unexpected snapshot shape: %+v", snap)
	}
	if snap.TotalValue != 30000 {
		t.Errorf("expected total value 30000, got %v", snap.TotalValue)
	}
	if snap.TotalChange != -500 {
		t.Errorf("expected total change -500, got %v", snap.TotalChange)
	}
	// -500 against the 30500 opening valuation
	if snap.ChangePct != -1.64 {
		t.Errorf("expected change pct -1.64, got %v", snap.ChangePct)
	}
}

func TestPortfolio_Empty(t *testing.T) {
	snap := Portfolio(nil, 100)
	if snap.Stocks != 0 || snap.TotalValue != 0 || snap.TotalChange != 0 || snap.ChangePct != 0 {
		t.Errorf("expected zero snapshot, got %+v", snap)
	}
}

func TestPortfolio_WorthlessHoldings(t *testing.T) {
	bars := []model.DailyBar{{Symbol: "DUD", Close: 0, Change: -3}}
	snap := Portfolio(bars, 100)
	if snap.TotalValue != 0 {
		t.Errorf("expected zero value, got %v", snap.TotalValue)
	}
	if snap.ChangePct != 0 {
		t.Errorf("expected zero pct for worthless holdings, got %v", snap.ChangePct)
	}
}

func TestPortfolio_ZeroOpeningValuation(t *testing.T) {
	// close equals change, so the implied opening value is zero
	bars := []model.DailyBar{{Symbol: "IPO", Close: 50, Change: 50}}
	snap := Portfolio(bars, 10)
	if snap.TotalValue != 500 || snap.TotalChange != 500 {
		t.Errorf("unexpected totals: %+v", snap)
	}
	if snap.ChangePct != 0 {
		t.Errorf("expected pct 0 when opening valuation is zero, got %v", snap.ChangePct)
	}
}

func TestPortfolio_DecimalExactness(t *testing.T) {
	// prices that would drift under repeated float addition
	bars := make([]model.DailyBar, 10)
	for i := range bars {
		bars[i] = model.DailyBar{Close: 0.1, Change: 0.1}
	}
	snap := Portfolio(bars, 1)
	if snap.TotalValue != 1 {
		t.Errorf("expected exact total 1, got %v", snap.TotalValue)
	}
	if snap.TotalChange != 1 {
		t.Errorf("expected exact change 1, got %v", snap.TotalChange)
	}
}
