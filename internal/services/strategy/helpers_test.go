package strategy

import (
	"time"

	"github.com/signhoff/7-ETF-Strategies/internal/models"
	"github.com/signhoff/7-ETF-Strategies/internal/services/indicators"
)

var testDay = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

// barsFromCloses builds a daily series where open/high/low track the close.
func barsFromCloses(closes ...float64) []models.Bar {
	bars := make([]models.Bar, len(closes))
	for i, c := range closes {
		bars[i] = models.Bar{
			Symbol: "SPY",
			Date:   testDay.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

// snapSpec pins the indicator readings for one hand-built snapshot.
type snapSpec struct {
	close float64
	sma5  float64
	rsi2  float64
	rsi4  float64
	pctB  float64
}

// buildSnaps makes fully warmed-up snapshots with a shared trend SMA, so tests
// control the trend verdict through close vs sma200.
func buildSnaps(sma200 float64, specs ...snapSpec) []indicators.Snapshot {
	snaps := make([]indicators.Snapshot, len(specs))
	for i, sp := range specs {
		snaps[i] = indicators.Snapshot{
			Date:        testDay.AddDate(0, 0, i),
			Close:       sp.close,
			SMA5:        sp.sma5,
			SMA200:      sma200,
			RSI2:        sp.rsi2,
			RSI4:        sp.rsi4,
			PercentB:    sp.pctB,
			HasSMA5:     true,
			HasSMA200:   true,
			HasRSI2:     true,
			HasRSI4:     true,
			HasPercentB: true,
		}
	}
	return snaps
}

func openPosition(side string, entryPrices ...float64) *models.Position {
	pos := &models.Position{Ticker: "SPY", Side: side}
	for i, price := range entryPrices {
		pos.Tranches = append(pos.Tranches, models.Tranche{
			EntryDate:    testDay.AddDate(0, 0, i),
			EntryPrice:   price,
			SizeFraction: 0.5,
		})
	}
	return pos
}

func flatPosition() *models.Position {
	return &models.Position{Ticker: "SPY"}
}
