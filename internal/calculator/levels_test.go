package calculator

import (
	"testing"
	"time"

	"StockLens/internal/model"
)

func barsFrom(highs, lows []float64) []model.DailyBar {
	bars := make([]model.DailyBar, len(highs))
	base := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := range highs {
		bars[i] = model.DailyBar{
			Symbol: "TEST",
			Date:   base.AddDate(0, 0, i),
			High:   highs[i],
			Low:    lows[i],
		}
	}
	return bars
}

func TestComputeLevels_Window(t *testing.T) {
	bars := barsFrom([]float64{10, 12, 9}, []float64{5, 4, 6})
	sr := ComputeLevels(bars, 3, 9, 0, 0)
	if sr.Resistance != 12 {
		t.Errorf("expected resistance 12, got %v", sr.Resistance)
	}
	if sr.Support != 4 {
		t.Errorf("expected support 4, got %v", sr.Support)
	}
	if sr.DistanceToResistance != 3 {
		t.Errorf("expected distance to resistance 3, got %v", sr.DistanceToResistance)
	}
	if sr.DistanceToSupport != 5 {
		t.Errorf("expected distance to support 5, got %v", sr.DistanceToSupport)
	}
}

func TestComputeLevels_TrailingOnly(t *testing.T) {
	bars := barsFrom([]float64{50, 10, 12, 9}, []float64{1, 5, 4, 6})
	sr := ComputeLevels(bars, 3, 9, 0, 0)
	if sr.Resistance != 12 || sr.Support != 4 {
		t.Errorf("expected trailing window 12/4, got %v/%v", sr.Resistance, sr.Support)
	}
}

func TestComputeLevels_ShortHistory(t *testing.T) {
	bars := barsFrom([]float64{10, 12}, []float64{5, 4})
	sr := ComputeLevels(bars, 10, 11, 0, 0)
	if sr.Resistance != 12 || sr.Support != 4 {
		t.Errorf("expected full short history 12/4, got %v/%v", sr.Resistance, sr.Support)
	}
}

func TestComputeLevels_NoBarsFallback(t *testing.T) {
	sr := ComputeLevels(nil, 10, 100, 104.5, 98.2)
	if sr.Resistance != 104.5 || sr.Support != 98.2 {
		t.Errorf("expected fallback levels 104.5/98.2, got %v/%v", sr.Resistance, sr.Support)
	}
	if sr.DistanceToResistance != 4.5 {
		t.Errorf("expected distance to resistance 4.5, got %v", sr.DistanceToResistance)
	}
	if sr.DistanceToSupport != 1.8 {
		t.Errorf("expected distance to support 1.8, got %v", sr.DistanceToSupport)
	}
}

func TestComputeLevels_DistancesNotClamped(t *testing.T) {
	bars := barsFrom([]float64{10, 12, 9}, []float64{5, 4, 6})
	sr := ComputeLevels(bars, 3, 13, 0, 0)
	if sr.DistanceToResistance != -1 {
		t.Errorf("expected negative distance to resistance, got %v", sr.DistanceToResistance)
	}
}
