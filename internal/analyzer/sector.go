package analyzer

import (
	"sort"
	"time"

	"StockLens/internal/calculator"
	"StockLens/internal/model"
)

// SectorSummaries groups the day's stocks by sector, in order of first
// appearance. The average covers constituents with an available change
// percentage; a sector where none qualifies is dropped rather than shown
// as zero.
func SectorSummaries(stocks []model.StockDetail) []model.SectorSummary {
	type member struct {
		symbol string
		pct    float64
	}
	order := []string{}
	groups := make(map[string][]member)
	counts := make(map[string]int)

	for _, d := range stocks {
		sector := d.Sector
		if _, seen := groups[sector]; !seen {
			order = append(order, sector)
			groups[sector] = nil
		}
		counts[sector]++
		if d.Bar.ChangePct != nil {
			groups[sector] = append(groups[sector], member{symbol: d.Symbol, pct: *d.Bar.ChangePct})
		}
	}

	var out []model.SectorSummary
	for _, sector := range order {
		members := groups[sector]
		if len(members) == 0 {
			continue
		}

		total := 0.0
		for _, m := range members {
			total += m.pct
		}

		ranked := make([]member, len(members))
		copy(ranked, members)
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].pct > ranked[j].pct })
		best := ranked[0]
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].pct < ranked[j].pct })
		worst := ranked[0]

		out = append(out, model.SectorSummary{
			Sector:         sector,
			Stocks:         counts[sector],
			AvgChangePct:   calculator.Round2(total / float64(len(members))),
			BestStock:      best.symbol,
			BestChangePct:  best.pct,
			WorstStock:     worst.symbol,
			WorstChangePct: worst.pct,
		})
	}
	return out
}

// SectorDailySeries builds each sector's trailing daily performance: for
// every one of the last few trading days, the mean same-day change of the
// sector's constituents. Stocks missing a day are excluded from that
// day's mean, not treated as flat.
func (a *Analyzer) SectorDailySeries(symbols []string, end time.Time) []model.SectorSeries {
	end = model.Day(end)
	dates := a.tradingDatesThrough(end, a.opts.SectorSeriesDays)

	order := []string{}
	bySector := make(map[string][]string)
	for _, sym := range symbols {
		sector := a.sectors.SectorOf(sym)
		if _, seen := bySector[sector]; !seen {
			order = append(order, sector)
		}
		bySector[sector] = append(bySector[sector], sym)
	}

	var out []model.SectorSeries
	for _, sector := range order {
		series := model.SectorSeries{Sector: sector}
		for _, date := range dates {
			perf := model.SectorDayPerf{Date: date}
			total := 0.0
			for _, sym := range bySector[sector] {
				bar, err := calculator.AggregateDay(sym, date, a.grid.Observations(sym, date))
				if err != nil || bar.ChangePct == nil {
					continue
				}
				total += *bar.ChangePct
				perf.Stocks++
			}
			if perf.Stocks > 0 {
				perf.AvgChangePct = calculator.Round2(total / float64(perf.Stocks))
			}
			series.Days = append(series.Days, perf)
		}
		out = append(out, series)
	}
	return out
}

// SectorWindowSummaries builds the long-window sector view: each
// constituent's first-vs-last close move over the trailing window, then
// the sector average and its best and worst gainer. Stocks with fewer
// than two closes in the window are excluded.
func (a *Analyzer) SectorWindowSummaries(symbols []string, end time.Time) []model.SectorWindowSummary {
	end = model.Day(end)
	dates := a.tradingDatesThrough(end, a.opts.SectorWindowDays)
	if len(dates) == 0 {
		return nil
	}
	first := dates[0]

	order := []string{}
	bySector := make(map[string][]model.StockWindowPerf)
	for _, sym := range symbols {
		sector := a.sectors.SectorOf(sym)
		if _, seen := bySector[sector]; !seen {
			order = append(order, sector)
			bySector[sector] = nil
		}

		var windowCloses []model.ClosePoint
		for _, cp := range a.closesUpTo(sym, end) {
			if cp.Date.Before(first) {
				continue
			}
			windowCloses = append(windowCloses, cp)
		}
		if len(windowCloses) < 2 || windowCloses[0].Close <= 0 {
			continue
		}
		firstClose := windowCloses[0].Close
		lastClose := windowCloses[len(windowCloses)-1].Close
		bySector[sector] = append(bySector[sector], model.StockWindowPerf{
			Symbol:     sym,
			FirstClose: firstClose,
			LastClose:  lastClose,
			ChangePct:  calculator.Round2((lastClose - firstClose) / firstClose * 100),
		})
	}

	var out []model.SectorWindowSummary
	for _, sector := range order {
		members := bySector[sector]
		if len(members) == 0 {
			continue
		}
		total := 0.0
		for _, m := range members {
			total += m.ChangePct
		}

		ranked := make([]model.StockWindowPerf, len(members))
		copy(ranked, members)
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].ChangePct > ranked[j].ChangePct })
		best := ranked[0]
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].ChangePct < ranked[j].ChangePct })
		worst := ranked[0]

		out = append(out, model.SectorWindowSummary{
			Sector:       sector,
			Stocks:       len(members),
			AvgChangePct: calculator.Round2(total / float64(len(members))),
			Best:         best,
			Worst:        worst,
		})
	}
	return out
}

// tradingDatesThrough returns the last n grid dates ending at end.
func (a *Analyzer) tradingDatesThrough(end time.Time, n int) []time.Time {
	var dates []time.Time
	for _, d := range a.grid.Dates() {
		if d.After(end) {
			break
		}
		dates = append(dates, d)
	}
	if len(dates) > n {
		dates = dates[len(dates)-n:]
	}
	return dates
}
