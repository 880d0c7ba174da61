package handlers

import (
	"context"
	"time"

	"github.com/adshao/go-binance/v2"
	"github.com/rs/zerolog"

	"github.com/signhoff/7-ETF-Strategies/internal/models"
	"github.com/signhoff/7-ETF-Strategies/internal/operations/price"
	"github.com/signhoff/7-ETF-Strategies/internal/repositories"
)

// PriceHandler owns the bar data path: it backfills the cache from the
// exchange and serves ordered daily series to the backtester and scanner.
type PriceHandler struct {
	barRepo  *repositories.BarRepository
	recorder *price.Recorder
	symbols  []string
	log      zerolog.Logger
}

func NewPriceHandler(client *binance.Client, barRepo *repositories.BarRepository, symbols []string, log zerolog.Logger) *PriceHandler {
	fetcher := price.NewBinanceFetcher(client, log)
	return &PriceHandler{
		barRepo:  barRepo,
		recorder: price.NewRecorder(fetcher, barRepo, log),
		symbols:  symbols,
		log:      log,
	}
}

// Sync tops up the cache with the trailing lookbackDays of daily bars.
func (h *PriceHandler) Sync(ctx context.Context, lookbackDays int) error {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -lookbackDays)
	return h.recorder.Backfill(ctx, h.symbols, start, end)
}

// LoadSeries returns every symbol's cached bars ordered by date. Symbols with
// no cached data are skipped with a warning.
func (h *PriceHandler) LoadSeries() (map[string][]models.Bar, error) {
	series := make(map[string][]models.Bar, len(h.symbols))
	for _, symbol := range h.symbols {
		bars, err := h.barRepo.GetAllBars(symbol)
		if err != nil {
			return nil, err
		}
		if len(bars) == 0 {
			h.log.Warn().Str("symbol", symbol).Msg("no cached bars, skipping")
			continue
		}
		series[symbol] = bars
	}
	return series, nil
}
