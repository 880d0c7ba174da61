package price

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/signhoff/7-ETF-Strategies/internal/repositories"
)

// Recorder keeps the local bar cache current: it fetches only the trailing
// range missing from the cache and relies on the unique (symbol, date) index
// to drop overlap.
type Recorder struct {
	source  BarSource
	barRepo *repositories.BarRepository
	log     zerolog.Logger
}

func NewRecorder(source BarSource, barRepo *repositories.BarRepository, log zerolog.Logger) *Recorder {
	return &Recorder{source: source, barRepo: barRepo, log: log}
}

// Backfill tops up the cache for every symbol over [start, end].
func (r *Recorder) Backfill(ctx context.Context, symbols []string, start, end time.Time) error {
	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return err
		}

		fetchStart := start
		latest, err := r.barRepo.LatestDate(symbol)
		if err != nil {
			return fmt.Errorf("reading cache for %s: %w", symbol, err)
		}
		if !latest.IsZero() && latest.After(fetchStart) {
			fetchStart = latest.AddDate(0, 0, 1)
		}
		if !fetchStart.Before(end) {
			r.log.Debug().Str("symbol", symbol).Msg("cache already current")
			continue
		}

		bars, err := r.source.FetchDailyBars(ctx, symbol, fetchStart, end)
		if err != nil {
			return fmt.Errorf("fetching bars for %s: %w", symbol, err)
		}
		if err := r.barRepo.CreateBatch(bars); err != nil {
			return fmt.Errorf("caching bars for %s: %w", symbol, err)
		}
		r.log.Info().
			Str("symbol", symbol).
			Int("bars", len(bars)).
			Str("from", fetchStart.Format("2006-01-02")).
			Msg("cache updated")
	}
	return nil
}
