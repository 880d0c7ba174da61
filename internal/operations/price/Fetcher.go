package price

import (
	"context"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/rs/zerolog"

	"github.com/signhoff/7-ETF-Strategies/internal/models"
)

// BarSource is the data-access boundary the core depends on: an ordered
// sequence of daily bars per symbol.
type BarSource interface {
	FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]models.Bar, error)
}

// BinanceFetcher pulls daily klines for symbols the exchange serves.
type BinanceFetcher struct {
	client *binance.Client
	log    zerolog.Logger
}

func NewBinanceFetcher(client *binance.Client, log zerolog.Logger) *BinanceFetcher {
	return &BinanceFetcher{client: client, log: log}
}

const klineLimit = 500

func (f *BinanceFetcher) FetchDailyBars(ctx context.Context, symbol string, start, end time.Time) ([]models.Bar, error) {
	var bars []models.Bar

	currentStart := start
	for currentStart.Before(end) {
		currentEnd := currentStart.AddDate(0, 0, klineLimit)
		if currentEnd.After(end) {
			currentEnd = end
		}

		klines, err := f.client.NewKlinesService().
			Symbol(symbol).
			Interval("1d").
			StartTime(currentStart.UnixMilli()).
			EndTime(currentEnd.UnixMilli()).
			Limit(klineLimit).
			Do(ctx)
		if err != nil {
			return nil, err
		}

		for _, k := range klines {
			openTime := time.UnixMilli(k.OpenTime).UTC()
			bars = append(bars, models.Bar{
				Symbol: symbol,
				Date:   time.Date(openTime.Year(), openTime.Month(), openTime.Day(), 0, 0, 0, 0, time.UTC),
				Open:   parseFloat(k.Open),
				High:   parseFloat(k.High),
				Low:    parseFloat(k.Low),
				Close:  parseFloat(k.Close),
				Volume: int64(parseFloat(k.Volume)),
			})
		}
		f.log.Debug().
			Str("symbol", symbol).
			Int("bars", len(klines)).
			Str("from", currentStart.Format("2006-01-02")).
			Str("to", currentEnd.Format("2006-01-02")).
			Msg("fetched daily klines")

		currentStart = currentEnd

		// Small delay to stay clear of rate limits.
		time.Sleep(100 * time.Millisecond)
	}
	return bars, nil
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
