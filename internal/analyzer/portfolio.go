package analyzer

import (
	"github.com/shopspring/decimal"

	"StockLens/internal/model"
)

// Portfolio values every bar at a fixed share count. The change percentage
// is measured against the implied opening valuation, and comes back 0 for
// an empty or worthless portfolio instead of failing.
func Portfolio(bars []model.DailyBar, sharesPerStock int) model.PortfolioSnapshot {
	snap := model.PortfolioSnapshot{SharesPerStock: sharesPerStock, Stocks: len(bars)}

	shares := decimal.NewFromInt(int64(sharesPerStock))
	totalValue := decimal.Zero
	totalChange := decimal.Zero
	for _, b := range bars {
		totalValue = totalValue.Add(decimal.NewFromFloat(b.Close).Mul(shares))
		totalChange = totalChange.Add(decimal.NewFromFloat(b.Change).Mul(shares))
	}

	snap.TotalValue, _ = totalValue.Round(2).Float64()
	snap.TotalChange, _ = totalChange.Round(2).Float64()

	if totalValue.Sign() > 0 {
		opening := totalValue.Sub(totalChange)
		if !opening.IsZero() {
			pct := totalChange.Div(opening).Mul(decimal.NewFromInt(100))
			snap.ChangePct, _ = pct.Round(2).Float64()
		}
	}
	return snap
}
