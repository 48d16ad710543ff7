package report

import (
	"time"

	"StockLens/internal/grid"
	"StockLens/internal/model"
)

const topMoverCount = 3

// StockRow is one stock's day summary as the dashboard consumes it.
type StockRow struct {
	Name        string   `json:"name"`
	Sector      string   `json:"sector"`
	Open        float64  `json:"open"`
	Close       float64  `json:"close"`
	High        float64  `json:"high"`
	HighTime    string   `json:"high_time"`
	Low         float64  `json:"low"`
	LowTime     string   `json:"low_time"`
	Change      float64  `json:"change"`
	ChangePct   *float64 `json:"change_pct"`
	GreenShadow float64  `json:"green_shadow"`
	RedShadow   float64  `json:"red_shadow"`
}

// PortfolioRow carries the equal-weight portfolio valuation.
type PortfolioRow struct {
	Total     float64 `json:"total"`
	Change    float64 `json:"change"`
	ChangePct float64 `json:"change_pct"`
}

// Stats is the dashboard's market-wide header block.
type Stats struct {
	TotalStocks   int     `json:"total_stocks"`
	GainersCount  int     `json:"gainers_count"`
	LosersCount   int     `json:"losers_count"`
	AvgVolatility float64 `json:"avg_volatility"`
}

// SectorRow is one sector's single-day aggregate.
type SectorRow struct {
	Sector         string  `json:"sector"`
	Stocks         int     `json:"stocks"`
	AvgChangePct   float64 `json:"avg_change_pct"`
	BestStock      string  `json:"best_stock"`
	BestChangePct  float64 `json:"best_change_pct"`
	WorstStock     string  `json:"worst_stock"`
	WorstChangePct float64 `json:"worst_change_pct"`
}

// SectorTrendRow is one sector's trailing daily performance line.
type SectorTrendRow struct {
	Sector string          `json:"sector"`
	Days   []SectorDayCell `json:"days"`
}

// SectorDayCell is a single day inside a sector trend line.
type SectorDayCell struct {
	Date         string  `json:"date"`
	AvgChangePct float64 `json:"avg_change_pct"`
	Stocks       int     `json:"stocks"`
}

// SectorWindowRow is one sector's long-window performance.
type SectorWindowRow struct {
	Sector         string  `json:"sector"`
	Stocks         int     `json:"stocks"`
	AvgChangePct   float64 `json:"avg_change_pct"`
	BestStock      string  `json:"best_stock"`
	BestChangePct  float64 `json:"best_change_pct"`
	WorstStock     string  `json:"worst_stock"`
	WorstChangePct float64 `json:"worst_change_pct"`
}

// Dashboard is the full payload the web dashboard reads.
type Dashboard struct {
	Date         string            `json:"date"`
	UpdatedTime  string            `json:"updated_time"`
	Mood         string            `json:"mood"`
	MoodEmoji    string            `json:"mood_emoji"`
	Portfolio    PortfolioRow      `json:"portfolio"`
	Stats        Stats             `json:"stats"`
	TopGainers   []StockRow        `json:"top_gainers"`
	TopLosers    []StockRow        `json:"top_losers"`
	AllStocks    []StockRow        `json:"all_stocks"`
	Sectors      []SectorRow       `json:"sectors,omitempty"`
	SectorTrend  []SectorTrendRow  `json:"sector_trend,omitempty"`
	SectorWindow []SectorWindowRow `json:"sector_window,omitempty"`
	Insights     []string          `json:"insights"`
}

// EmaRow holds the three EMA horizons, null when unavailable.
type EmaRow struct {
	Ema9   *float64 `json:"ema_9"`
	Ema20  *float64 `json:"ema_20"`
	Ema200 *float64 `json:"ema_200"`
}

// TrendRow is the per-horizon trend verdict plus the overall call.
type TrendRow struct {
	Overall    string `json:"overall"`
	Signal     string `json:"signal"`
	ShortTerm  string `json:"short_term"`
	MediumTerm string `json:"medium_term"`
	LongTerm   string `json:"long_term"`
}

// LevelsRow carries support and resistance with distances from close.
type LevelsRow struct {
	Resistance           float64 `json:"resistance"`
	Support              float64 `json:"support"`
	DistanceToResistance float64 `json:"distance_to_resistance"`
	DistanceToSupport    float64 `json:"distance_to_support"`
}

// HistoricalRow pairs recent closing dates with their prices.
type HistoricalRow struct {
	Dates  []string  `json:"dates"`
	Prices []float64 `json:"prices"`
}

// PricePoint is one intraday observation.
type PricePoint struct {
	Time  string  `json:"time"`
	Price float64 `json:"price"`
}

// ShadowsRow carries the candle shadow measurements.
type ShadowsRow struct {
	GreenShadow float64 `json:"green_shadow"`
	RedShadow   float64 `json:"red_shadow"`
}

// KeyLevelsRow repeats the day extremes with their times.
type KeyLevelsRow struct {
	DayHigh     float64 `json:"day_high"`
	DayHighTime string  `json:"day_high_time"`
	DayLow      float64 `json:"day_low"`
	DayLowTime  string  `json:"day_low_time"`
}

// StockDetailFile is one stock's standalone detail page payload.
type StockDetailFile struct {
	Name              string        `json:"name"`
	Sector            string        `json:"sector"`
	CurrentPrice      float64       `json:"current_price"`
	Open              float64       `json:"open"`
	High              float64       `json:"high"`
	Low               float64       `json:"low"`
	Change            float64       `json:"change"`
	ChangePct         *float64      `json:"change_pct"`
	Date              string        `json:"date"`
	UpdatedTime       string        `json:"updated_time"`
	Ema               EmaRow        `json:"ema"`
	Trend             TrendRow      `json:"trend"`
	SupportResistance LevelsRow     `json:"support_resistance"`
	Historical        HistoricalRow `json:"historical"`
	Intraday          []PricePoint  `json:"intraday"`
	Shadows           ShadowsRow    `json:"shadows"`
	KeyLevels         KeyLevelsRow  `json:"key_levels"`
}

// YearlyDetailFile is one stock's year-to-date detail payload.
type YearlyDetailFile struct {
	Name              string    `json:"name"`
	Sector            string    `json:"sector"`
	FirstDate         string    `json:"first_date"`
	LastDate          string    `json:"last_date"`
	Open              float64   `json:"open"`
	Close             float64   `json:"close"`
	High              float64   `json:"high"`
	HighDate          string    `json:"high_date"`
	HighTime          string    `json:"high_time"`
	Low               float64   `json:"low"`
	LowDate           string    `json:"low_date"`
	LowTime           string    `json:"low_time"`
	Change            float64   `json:"change"`
	ChangePct         *float64  `json:"change_pct"`
	GreenShadow       float64   `json:"green_shadow"`
	RedShadow         float64   `json:"red_shadow"`
	UpdatedTime       string    `json:"updated_time"`
	Ema               EmaRow    `json:"ema"`
	Trend             TrendRow  `json:"trend"`
	SupportResistance LevelsRow `json:"support_resistance"`
}

// NewDashboard assembles the dashboard payload from a day's analysis.
// The sector trend and window slices are optional extras.
func NewDashboard(r *model.DayReport, trend []model.SectorSeries, window []model.SectorWindowSummary, now time.Time) Dashboard {
	d := Dashboard{
		Date:        r.Summary.Date.Format(grid.DateLayout),
		UpdatedTime: now.Format("03:04 PM"),
		Mood:        string(r.Summary.Mood),
		MoodEmoji:   moodEmoji(r.Summary.Mood),
		Portfolio: PortfolioRow{
			Total:     r.Portfolio.TotalValue,
			Change:    r.Portfolio.TotalChange,
			ChangePct: r.Portfolio.ChangePct,
		},
		Stats: Stats{
			TotalStocks:   r.Summary.TotalStocks,
			GainersCount:  r.Summary.GainerCount,
			LosersCount:   r.Summary.LoserCount,
			AvgVolatility: r.Summary.AvgVolatility,
		},
		TopGainers: stockRows(topN(r.Gainers, topMoverCount)),
		TopLosers:  stockRows(topN(r.Losers, topMoverCount)),
		AllStocks:  stockRows(r.Stocks),
		Insights:   Insights(r),
	}

	for _, s := range r.Sectors {
		d.Sectors = append(d.Sectors, SectorRow{
			Sector:         s.Sector,
			Stocks:         s.Stocks,
			AvgChangePct:   s.AvgChangePct,
			BestStock:      s.BestStock,
			BestChangePct:  s.BestChangePct,
			WorstStock:     s.WorstStock,
			WorstChangePct: s.WorstChangePct,
		})
	}
	for _, s := range trend {
		row := SectorTrendRow{Sector: s.Sector}
		for _, day := range s.Days {
			row.Days = append(row.Days, SectorDayCell{
				Date:         day.Date.Format(grid.DateLayout),
				AvgChangePct: day.AvgChangePct,
				Stocks:       day.Stocks,
			})
		}
		d.SectorTrend = append(d.SectorTrend, row)
	}
	for _, s := range window {
		d.SectorWindow = append(d.SectorWindow, SectorWindowRow{
			Sector:         s.Sector,
			Stocks:         s.Stocks,
			AvgChangePct:   s.AvgChangePct,
			BestStock:      s.Best.Symbol,
			BestChangePct:  s.Best.ChangePct,
			WorstStock:     s.Worst.Symbol,
			WorstChangePct: s.Worst.ChangePct,
		})
	}
	return d
}

// NewStockDetailFile assembles one stock's detail payload.
func NewStockDetailFile(d model.StockDetail, date, now time.Time) StockDetailFile {
	f := StockDetailFile{
		Name:         d.Symbol,
		Sector:       d.Sector,
		CurrentPrice: d.Bar.Close,
		Open:         d.Bar.Open,
		High:         d.Bar.High,
		Low:          d.Bar.Low,
		Change:       d.Bar.Change,
		ChangePct:    d.Bar.ChangePct,
		Date:         date.Format(grid.DateLayout),
		UpdatedTime:  now.Format("03:04 PM"),
		Ema:          EmaRow{Ema9: d.Ema.Short, Ema20: d.Ema.Medium, Ema200: d.Ema.Long},
		Trend:        trendRow(d.Trend),
		SupportResistance: LevelsRow{
			Resistance:           d.Levels.Resistance,
			Support:              d.Levels.Support,
			DistanceToResistance: d.Levels.DistanceToResistance,
			DistanceToSupport:    d.Levels.DistanceToSupport,
		},
		Shadows: ShadowsRow{GreenShadow: d.Bar.GreenShadow, RedShadow: d.Bar.RedShadow},
		KeyLevels: KeyLevelsRow{
			DayHigh:     d.Bar.High,
			DayHighTime: d.Bar.HighTime.String(),
			DayLow:      d.Bar.Low,
			DayLowTime:  d.Bar.LowTime.String(),
		},
	}
	for _, cp := range d.History {
		f.Historical.Dates = append(f.Historical.Dates, cp.Date.Format(grid.DateLayout))
		f.Historical.Prices = append(f.Historical.Prices, cp.Close)
	}
	for _, obs := range d.Intraday {
		f.Intraday = append(f.Intraday, PricePoint{Time: obs.Slot.String(), Price: obs.Price})
	}
	return f
}

// NewYearlyDetailFile assembles one stock's yearly payload.
func NewYearlyDetailFile(y model.YearlyDetail, now time.Time) YearlyDetailFile {
	b := y.Bar
	return YearlyDetailFile{
		Name:        y.Symbol,
		Sector:      y.Sector,
		FirstDate:   b.FirstDate.Format(grid.DateLayout),
		LastDate:    b.LastDate.Format(grid.DateLayout),
		Open:        b.Open,
		Close:       b.Close,
		High:        b.High,
		HighDate:    b.HighDate.Format(grid.DateLayout),
		HighTime:    b.HighTime.String(),
		Low:         b.Low,
		LowDate:     b.LowDate.Format(grid.DateLayout),
		LowTime:     b.LowTime.String(),
		Change:      b.Change,
		ChangePct:   b.ChangePct,
		GreenShadow: b.GreenShadow,
		RedShadow:   b.RedShadow,
		UpdatedTime: now.Format("03:04 PM"),
		Ema:         EmaRow{Ema9: y.Ema.Short, Ema20: y.Ema.Medium, Ema200: y.Ema.Long},
		Trend:       trendRow(y.Trend),
		SupportResistance: LevelsRow{
			Resistance:           y.Levels.Resistance,
			Support:              y.Levels.Support,
			DistanceToResistance: y.Levels.DistanceToResistance,
			DistanceToSupport:    y.Levels.DistanceToSupport,
		},
	}
}

func stockRows(details []model.StockDetail) []StockRow {
	rows := make([]StockRow, 0, len(details))
	for _, d := range details {
		rows = append(rows, StockRow{
			Name:        d.Symbol,
			Sector:      d.Sector,
			Open:        d.Bar.Open,
			Close:       d.Bar.Close,
			High:        d.Bar.High,
			HighTime:    d.Bar.HighTime.String(),
			Low:         d.Bar.Low,
			LowTime:     d.Bar.LowTime.String(),
			Change:      d.Bar.Change,
			ChangePct:   d.Bar.ChangePct,
			GreenShadow: d.Bar.GreenShadow,
			RedShadow:   d.Bar.RedShadow,
		})
	}
	return rows
}

func trendRow(t model.TrendResult) TrendRow {
	return TrendRow{
		Overall:    string(t.Overall),
		Signal:     string(t.Signal),
		ShortTerm:  string(t.ShortTerm),
		MediumTerm: string(t.MediumTerm),
		LongTerm:   string(t.LongTerm),
	}
}

func topN(details []model.StockDetail, n int) []model.StockDetail {
	if len(details) > n {
		return details[:n]
	}
	return details
}

func moodEmoji(m model.Mood) string {
	switch m {
	case model.MoodPositive:
		return "😊"
	case model.MoodNegative:
		return "😟"
	default:
		return "😐"
	}
}
