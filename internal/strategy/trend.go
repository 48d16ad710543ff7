package strategy

import "StockLens/internal/model"

// horizonTrend reads one EMA horizon: bullish only on a strict close above
// the EMA, bearish otherwise. An absent EMA is N/A and never votes.
func horizonTrend(closePrice float64, ema *float64) model.Trend {
	if ema == nil {
		return model.TrendNA
	}
	if closePrice > *ema {
		return model.TrendBullish
	}
	return model.TrendBearish
}

// Classify votes the current close against each available EMA horizon and
// returns the majority read with its action signal. Horizons with no EMA
// stay out of both the vote and the denominator, so a stock with only
// short history is still classified on what it has. All three horizons
// follow the same N/A rule.
func Classify(closePrice float64, ema model.EmaSet) model.TrendResult {
	res := model.TrendResult{
		ShortTerm:  horizonTrend(closePrice, ema.Short),
		MediumTerm: horizonTrend(closePrice, ema.Medium),
		LongTerm:   horizonTrend(closePrice, ema.Long),
	}

	bullish, bearish := 0, 0
	for _, h := range []model.Trend{res.ShortTerm, res.MediumTerm, res.LongTerm} {
		switch h {
		case model.TrendBullish:
			bullish++
		case model.TrendBearish:
			bearish++
		}
	}

	switch {
	case bullish > bearish:
		res.Overall = model.TrendBullish
		res.Signal = model.SignalBuy
	case bearish > bullish:
		res.Overall = model.TrendBearish
		res.Signal = model.SignalSell
	default:
		res.Overall = model.TrendNeutral
		res.Signal = model.SignalHold
	}
	return res
}
