package recorder

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testRun(kind RunKind) *RunSummary {
	return &RunSummary{
		Kind:            kind,
		Date:            time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
		TotalStocks:     2,
		GainerCount:     1,
		LoserCount:      1,
		AvgVolatility:   2.25,
		Mood:            "neutral",
		PortfolioValue:  675600,
		PortfolioChange: -4400,
		PortfolioPct:    -0.65,
		Duration:        1500 * time.Millisecond,
	}
}

func testSnapshots() []StockSnapshot {
	up := 2.0
	return []StockSnapshot{
		{Symbol: "RELIANCE", Sector: "Energy", Open: 2800, Close: 2856, High: 2900, HighTime: 600,
			Low: 2750, LowTime: 660, Change: 56, ChangePct: &up, GreenShadow: 44, RedShadow: 50,
			Trend: "Bullish", Signal: "BUY"},
		{Symbol: "NEWIPO", Sector: "IT", Open: 0, Close: 39, High: 40, HighTime: 540,
			Low: 0, LowTime: 540, Change: 39, ChangePct: nil,
			Trend: "Neutral", Signal: "HOLD"},
	}
}

func TestSQLiteRecorder_RecordAndRead(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	rec, err := NewSQLiteRecorder(dbPath, zerolog.Nop())
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer rec.Close()

	id, err := rec.RecordRun(testRun(RunRefresh), testSnapshots())
	if err != nil {
		t.Fatalf("record run: %v", err)
	}
	if id == "" {
		t.Fatal("expected a run ID")
	}

	runs, err := rec.RecentRuns(5)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.ID != id || got.Kind != RunRefresh || got.Date != "04-06-2025" {
		t.Errorf("unexpected run row: %+v", got)
	}
	if got.TotalStocks != 2 || got.Mood != "neutral" || got.PortfolioValue != 675600 {
		t.Errorf("unexpected run stats: %+v", got)
	}

	var count int
	if err := rec.db.QueryRow(`SELECT COUNT(*) FROM stock_snapshots WHERE run_id = ?`, id).Scan(&count); err != nil {
		t.Fatalf("count snapshots: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 snapshots, got %d", count)
	}

	var pct sql.NullFloat64
	if err := rec.db.QueryRow(`SELECT change_pct FROM stock_snapshots WHERE run_id = ? AND symbol = 'NEWIPO'`, id).Scan(&pct); err != nil {
		t.Fatalf("read snapshot pct: %v", err)
	}
	if pct.Valid {
		t.Errorf("expected NULL change_pct, got %v", pct.Float64)
	}

	var highTime string
	if err := rec.db.QueryRow(`SELECT high_time FROM stock_snapshots WHERE run_id = ? AND symbol = 'RELIANCE'`, id).Scan(&highTime); err != nil {
		t.Fatalf("read snapshot time: %v", err)
	}
	if highTime != "10:00" {
		t.Errorf("expected high_time 10:00, got %q", highTime)
	}
}

func TestSQLiteRecorder_RecentRunsOrder(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	rec, err := NewSQLiteRecorder(dbPath, zerolog.Nop())
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer rec.Close()

	if _, err := rec.RecordRun(testRun(RunRefresh), nil); err != nil {
		t.Fatalf("record first: %v", err)
	}
	second, err := rec.RecordRun(testRun(RunEOD), nil)
	if err != nil {
		t.Fatalf("record second: %v", err)
	}

	runs, err := rec.RecentRuns(1)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != second {
		t.Errorf("expected newest run %s first, got %+v", second, runs)
	}
}

func TestSQLiteRecorder_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	rec, err := NewSQLiteRecorder(dbPath, zerolog.Nop())
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	if _, err := rec.RecordRun(testRun(RunEOD), testSnapshots()); err != nil {
		t.Fatalf("record: %v", err)
	}
	rec.Close()

	rec, err = NewSQLiteRecorder(dbPath, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen recorder: %v", err)
	}
	defer rec.Close()

	runs, err := rec.RecentRuns(5)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected run to survive reopen, got %d", len(runs))
	}
}
