package strategy

import (
	"testing"

	"github.com/signhoff/7-ETF-Strategies/config"
	"github.com/signhoff/7-ETF-Strategies/internal/models"
)

func TestR3LongEntry(t *testing.T) {
	s := NewR3Strategy(config.StrategyParams{})

	tests := []struct {
		name string
		rsi2 [3]float64 // oldest to newest
		want bool
	}{
		{"slide into oversold", [3]float64{55, 30, 5}, true},
		{"start not below 60", [3]float64{65, 30, 5}, false},
		{"finish not below 10", [3]float64{55, 30, 15}, false},
		{"not monotonic", [3]float64{55, 5, 8}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bars := barsFromCloses(100, 100, 100)
			snaps := buildSnaps(90,
				snapSpec{close: 100, sma5: 100, rsi2: tc.rsi2[0]},
				snapSpec{close: 100, sma5: 100, rsi2: tc.rsi2[1]},
				snapSpec{close: 100, sma5: 100, rsi2: tc.rsi2[2]},
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

func TestR3ShortEntry(t *testing.T) {
	s := NewR3Strategy(config.StrategyParams{})

	bars := barsFromCloses(100, 100, 100)
	snaps := buildSnaps(110,
		snapSpec{close: 100, sma5: 100, rsi2: 45},
		snapSpec{close: 100, sma5: 100, rsi2: 70},
		snapSpec{close: 100, sma5: 100, rsi2: 95},
	)

	sig := s.Evaluate(bars, snaps, flatPosition())
	if sig == nil || sig.Kind != models.SignalEntry || sig.Side != models.SideShort {
		t.Fatalf("got %+v, want short entry", sig)
	}
}

func TestR3OpenPosition(t *testing.T) {
	s := NewR3Strategy(config.StrategyParams{})

	tests := []struct {
		name     string
		close    float64
		rsi2     float64
		pos      *models.Position
		wantKind string
	}{
		{"exit over 70", 100, 75, openPosition(models.SideLong, 100), models.SignalExit},
		{"scale under first entry", 98, 40, openPosition(models.SideLong, 100), models.SignalScaleIn},
		{"hold", 101, 40, openPosition(models.SideLong, 100), ""},
		{"short exit under 30", 100, 25, openPosition(models.SideShort, 100), models.SignalExit},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bars := barsFromCloses(tc.close)
			snaps := buildSnaps(90, snapSpec{close: tc.close, sma5: 100, rsi2: tc.rsi2})

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
