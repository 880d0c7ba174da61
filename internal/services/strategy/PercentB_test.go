package strategy

import (
	"testing"

	"github.com/signhoff/7-ETF-Strategies/config"
	"github.com/signhoff/7-ETF-Strategies/internal/models"
	"github.com/signhoff/7-ETF-Strategies/internal/services/indicators"
)

func TestPercentBLongEntry(t *testing.T) {
	s := NewPercentBStrategy(config.StrategyParams{})

	tests := []struct {
		name string
		pctB [3]float64
		want bool
	}{
		{"three days under the band", [3]float64{0.15, 0.1, 0.05}, true},
		{"only two days", [3]float64{0.5, 0.1, 0.05}, false},
		{"last day back inside", [3]float64{0.15, 0.1, 0.3}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bars := barsFromCloses(100, 100, 100)
			snaps := buildSnaps(90,
				snapSpec{close: 100, pctB: tc.pctB[0]},
				snapSpec{close: 100, pctB: tc.pctB[1]},
				snapSpec{close: 100, pctB: tc.pctB[2]},
			)

			sig := s.Evaluate(bars, snaps, flatPosition())
			if tc.want {
				if sig == nil || sig.Kind != models.SignalEntry || sig.Side != models.SideLong {
					t.Fatalf("got %+v, want long entry", sig)
				}
				return
			}
			if sig != nil {
				t.Fatalf("got %+v, want no signal", sig)
			}
		})
	}
}

func TestPercentBShortEntry(t *testing.T) {
	s := NewPercentBStrategy(config.StrategyParams{})

	bars := barsFromCloses(100, 100, 100)
	snaps := buildSnaps(110,
		snapSpec{close: 100, pctB: 0.85},
		snapSpec{close: 100, pctB: 0.9},
		snapSpec{close: 100, pctB: 0.95},
	)

	sig := s.Evaluate(bars, snaps, flatPosition())
	if sig == nil || sig.Kind != models.SignalEntry || sig.Side != models.SideShort {
		t.Fatalf("got %+v, want short entry", sig)
	}
}

func TestPercentBOpenPosition(t *testing.T) {
	s := NewPercentBStrategy(config.StrategyParams{})

	tests := []struct {
		name     string
		pctB     float64
		pos      *models.Position
		wantKind string
	}{
		{"exit over upper band", 0.85, openPosition(models.SideLong, 100), models.SignalExit},
		{"scale under lower band", 0.1, openPosition(models.SideLong, 100), models.SignalScaleIn},
		{"hold in the middle", 0.5, openPosition(models.SideLong, 100), ""},
		{"short exit under lower band", 0.1, openPosition(models.SideShort, 100), models.SignalExit},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bars := barsFromCloses(100)
			snaps := buildSnaps(90, snapSpec{close: 100, pctB: tc.pctB})

			sig := s.Evaluate(bars, snaps, tc.pos)
			if tc.wantKind == "" {
				if sig != nil {
					t.Fatalf("got %+v, want hold", sig)
				}
				return
			}
			if sig == nil || sig.Kind != tc.wantKind {
				t.Fatalf("got %+v, want %s", sig, tc.wantKind)
			}
		})
	}
}

func TestPercentBCollapsedBandsNoSignal(t *testing.T) {
	s := NewPercentBStrategy(config.StrategyParams{})

	// Zero-width bands leave %b unreported; the bar is a no-op even with an
	// open position.
	snaps := []indicators.Snapshot{{Close: 100, HasSMA200: true, SMA200: 90}}
	bars := barsFromCloses(100)
	if sig := s.Evaluate(bars, snaps, openPosition(models.SideLong, 100)); sig != nil {
		t.Fatalf("got %+v, want no signal without a valid %%b", sig)
	}
}
