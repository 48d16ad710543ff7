package universe

import (
	"path/filepath"
	"testing"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stocks.json")
	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

func TestManager_AddAndSectorOf(t *testing.T) {
	m := testManager(t)
	if err := m.Add("RELIANCE.NS", "Energy"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Add("TCS.NS", "IT"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := m.SectorOf("RELIANCE.NS"); got != "Energy" {
		t.Errorf("expected Energy, got %q", got)
	}
	if got := m.SectorOf("RELIANCE"); got != "Energy" {
		t.Errorf("expected Energy for display symbol, got %q", got)
	}
	if got := m.SectorOf("UNLISTED"); got != SectorUnknown {
		t.Errorf("expected %q for unmapped symbol, got %q", SectorUnknown, got)
	}
}

func TestManager_DuplicateAdd(t *testing.T) {
	m := testManager(t)
	if err := m.Add("INFY.NS", "IT"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Add("infy.ns", "IT"); err == nil {
		t.Error("expected duplicate add to fail")
	}
}

func TestManager_RemoveByDisplaySymbol(t *testing.T) {
	m := testManager(t)
	if err := m.Add("HDFCBANK.NS", "Banking"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Remove("HDFCBANK"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Stocks()) != 0 {
		t.Errorf("expected empty universe after remove, got %d stocks", len(m.Stocks()))
	}
	if err := m.Remove("HDFCBANK"); err == nil {
		t.Error("expected remove of missing symbol to fail")
	}
}

func TestManager_BulkAddSkipsDuplicates(t *testing.T) {
	m := testManager(t)
	if err := m.Add("SUNPHARMA.NS", "Pharma"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	added, err := m.BulkAdd([]string{"SUNPHARMA.NS", "CIPLA.NS", "", "DRREDDY.NS"}, "Pharma")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added != 2 {
		t.Errorf("expected 2 added, got %d", added)
	}
	if len(m.Stocks()) != 3 {
		t.Errorf("expected 3 tracked stocks, got %d", len(m.Stocks()))
	}
}

func TestManager_PersistsAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stocks.json")
	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Add("ITC.NS", "FMCG"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reloaded, err := NewManager(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := reloaded.SectorOf("ITC"); got != "FMCG" {
		t.Errorf("expected FMCG after reload, got %q", got)
	}
}

func TestDisplaySymbol(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"RELIANCE.NS", "RELIANCE"},
		{"TATASTEEL.BO", "TATASTEEL"},
		{"AAPL", "AAPL"},
	}
	for _, tt := range tests {
		if got := DisplaySymbol(tt.in); got != tt.want {
			t.Errorf("DisplaySymbol(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
