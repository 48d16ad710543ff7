package report

import (
	"fmt"
	"strings"
	"time"

	"StockLens/internal/grid"
	"StockLens/internal/model"
)

// Insights derives the plain-language takeaways for the day: the market
// mood line, plus the top performer and biggest loser with the price
// level and time that made them so.
func Insights(r *model.DayReport) []string {
	var insights []string

	switch r.Summary.Mood {
	case model.MoodPositive:
		insights = append(insights, "Overall market is positive today - Good day to stay invested")
	case model.MoodNegative:
		insights = append(insights, "Market is down today - Be cautious with new investments")
	default:
		insights = append(insights, "Market is mixed today - Wait for clear signals")
	}

	if len(r.Gainers) > 0 {
		top := r.Gainers[0]
		insights = append(insights, fmt.Sprintf("%s is top performer (+%.2f%%) - Hit ₹%.2f at %s",
			top.Symbol, *top.Bar.ChangePct, top.Bar.High, top.Bar.HighTime))
	}
	if len(r.Losers) > 0 {
		worst := r.Losers[0]
		insights = append(insights, fmt.Sprintf("Avoid %s today (%.2f%%) - Dropped to ₹%.2f at %s",
			worst.Symbol, *worst.Bar.ChangePct, worst.Bar.Low, worst.Bar.LowTime))
	}
	return insights
}

// FormatDaySummary formats the day's analysis into a terminal-friendly
// report.
func FormatDaySummary(r *model.DayReport, now time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 StockLens Daily | %s\n", r.Summary.Date.Format(grid.DateLayout)))
	b.WriteString(fmt.Sprintf("🕐 Updated: %s\n\n", now.Format("03:04 PM")))

	b.WriteString(fmt.Sprintf("%s Market Mood: %s\n", moodEmoji(r.Summary.Mood), strings.ToUpper(string(r.Summary.Mood))))
	b.WriteString(fmt.Sprintf("Stocks: %d | Gainers: %d | Losers: %d | Avg Volatility: %.2f%%\n\n",
		r.Summary.TotalStocks, r.Summary.GainerCount, r.Summary.LoserCount, r.Summary.AvgVolatility))

	b.WriteString("💰 Portfolio:\n")
	b.WriteString(fmt.Sprintf("   Value: ₹%.2f\n", r.Portfolio.TotalValue))
	b.WriteString(fmt.Sprintf("   Change: ₹%.2f (%+.2f%%)\n\n", r.Portfolio.TotalChange, r.Portfolio.ChangePct))

	if len(r.Gainers) > 0 {
		b.WriteString("🏆 Top Gainers:\n")
		for _, d := range topN(r.Gainers, topMoverCount) {
			writeMoverLine(&b, d)
		}
		b.WriteString("\n")
	}
	if len(r.Losers) > 0 {
		b.WriteString("⚠️ Top Losers:\n")
		for _, d := range topN(r.Losers, topMoverCount) {
			writeMoverLine(&b, d)
		}
		b.WriteString("\n")
	}

	if len(r.Sectors) > 0 {
		b.WriteString("🏭 Sectors:\n")
		for _, s := range r.Sectors {
			b.WriteString(fmt.Sprintf("   %s: %+.2f%% (%d stocks, best %s)\n",
				s.Sector, s.AvgChangePct, s.Stocks, s.BestStock))
		}
		b.WriteString("\n")
	}

	b.WriteString("💡 Insights:\n")
	for _, insight := range Insights(r) {
		b.WriteString(fmt.Sprintf("   • %s\n", insight))
	}
	return b.String()
}

func writeMoverLine(b *strings.Builder, d model.StockDetail) {
	pct := 0.0
	if d.Bar.ChangePct != nil {
		pct = *d.Bar.ChangePct
	}
	b.WriteString(fmt.Sprintf("   %s: ₹%.2f (%+.2f%%)\n", d.Symbol, d.Bar.Close, pct))
	b.WriteString(fmt.Sprintf("      📈 High: ₹%.2f at %s | 📉 Low: ₹%.2f at %s\n",
		d.Bar.High, d.Bar.HighTime, d.Bar.Low, d.Bar.LowTime))
}
