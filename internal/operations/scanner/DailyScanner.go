package scanner

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/signhoff/7-ETF-Strategies/internal/models"
	"github.com/signhoff/7-ETF-Strategies/internal/services/indicators"
	"github.com/signhoff/7-ETF-Strategies/internal/services/strategy"
)

const (
	StatusNoSignal  = "No Signal"
	StatusTriggered = "TRIGGERED"
	StatusHolding   = "HOLDING"
	StatusExit      = "EXIT SIGNAL"
	StatusScaleIn   = "SCALE-IN"
)

// ScanRow is the scanner's verdict for one (ticker, strategy) on the most
// recent bar: the signal if any, plus the open-position summary.
type ScanRow struct {
	Date         time.Time
	Symbol       string
	StrategyID   models.StrategyID
	CurrentPrice float64
	Status       string
	Signal       *models.Signal
	SizeFraction float64
	KeyIndicator string
	Position     *models.Position
}

// DailyScanner checks the whole universe against every enabled strategy using
// only the latest bar, carrying the live portfolio state so holding pairs are
// checked for exits and scale-ins instead of fresh entries.
type DailyScanner struct {
	indicatorEngine *indicators.Engine
	strategyManager *strategy.StrategyManager
	log             zerolog.Logger
}

func NewDailyScanner(indicatorEngine *indicators.Engine, strategyManager *strategy.StrategyManager, log zerolog.Logger) *DailyScanner {
	return &DailyScanner{
		indicatorEngine: indicatorEngine,
		strategyManager: strategyManager,
		log:             log,
	}
}

// PairKey is the composite portfolio key for one (ticker, strategy).
func PairKey(symbol string, id models.StrategyID) string {
	return symbol + "_" + string(id)
}

// Scan produces one row per (ticker, strategy), sorted by ticker then
// strategy. Symbols without enough history for the trend filter are skipped
// with a warning.
func (s *DailyScanner) Scan(barsBySymbol map[string][]models.Bar, portfolio map[string]*models.Position) ([]ScanRow, error) {
	symbols := make([]string, 0, len(barsBySymbol))
	for symbol := range barsBySymbol {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	var rows []ScanRow
	for _, symbol := range symbols {
		bars := barsBySymbol[symbol]
		if err := models.ValidateBars(bars); err != nil {
			return nil, err
		}
		if len(bars) < s.indicatorEngine.TrendWindow() {
			s.log.Warn().
				Str("symbol", symbol).
				Int("bars", len(bars)).
				Msg("insufficient history for trend filter, skipping")
			continue
		}
		snaps := s.indicatorEngine.Compute(bars)
		latest := snaps[len(snaps)-1]

		for _, ev := range s.strategyManager.All() {
			pos := portfolio[PairKey(symbol, ev.ID())]
			if pos == nil {
				pos = &models.Position{Ticker: symbol, StrategyID: ev.ID()}
			}

			row := ScanRow{
				Date:         latest.Date,
				Symbol:       symbol,
				StrategyID:   ev.ID(),
				CurrentPrice: latest.Close,
				Status:       StatusNoSignal,
				KeyIndicator: keyIndicator(ev.ID(), latest),
			}

			sig := ev.Evaluate(bars, snaps, pos)
			row.Signal = sig
			if sig != nil && sig.Kind != models.SignalExit {
				row.SizeFraction = ev.SizeFraction(sig.TrancheIndex)
			}
			if pos.IsOpen() {
				open := *pos
				row.Position = &open
				row.Status = StatusHolding
				if sig != nil {
					switch sig.Kind {
					case models.SignalExit:
						row.Status = StatusExit
					case models.SignalScaleIn:
						row.Status = StatusScaleIn
					}
				}
			} else if sig != nil && sig.Kind == models.SignalEntry {
				row.Status = StatusTriggered
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func keyIndicator(id models.StrategyID, snap indicators.Snapshot) string {
	switch id {
	case models.StrategyRSI2575:
		return fmt.Sprintf("RSI_4: %.2f", snap.RSI4)
	case models.StrategyR3, models.StrategyRSI106, models.StrategyTPS:
		return fmt.Sprintf("RSI_2: %.2f", snap.RSI2)
	case models.StrategyPercentB:
		return fmt.Sprintf("%%b: %.2f", snap.PercentB)
	default:
		return fmt.Sprintf("SMA_5: %.2f", snap.SMA5)
	}
}
