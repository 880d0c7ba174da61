package position

import (
	"github.com/rs/zerolog"

	"github.com/signhoff/7-ETF-Strategies/internal/models"
	"github.com/signhoff/7-ETF-Strategies/internal/services/strategy"
)

// Manager applies signals to a position: Flat -> Open(k tranches, side) -> Flat.
// Signals that cannot apply (scale-in past capacity, entry against an open
// side) are discarded, not errors.
type Manager struct {
	log zerolog.Logger
}

func NewManager(log zerolog.Logger) *Manager {
	return &Manager{log: log}
}

// Apply mutates pos according to the signal, filling at the bar's close.
// On exit it returns the closed trade with realized P&L; otherwise nil.
func (m *Manager) Apply(pos *models.Position, ev strategy.Evaluator, sig *models.Signal, bar models.Bar) *models.Trade {
	if sig == nil {
		return nil
	}

	switch sig.Kind {
	case models.SignalExit:
		if !pos.IsOpen() || pos.Side != sig.Side {
			return nil
		}
		trade := models.NewTrade(pos, bar.Date, bar.Close)
		pos.Tranches = nil
		pos.Side = ""
		m.log.Debug().
			Str("symbol", bar.Symbol).
			Str("strategy", string(pos.StrategyID)).
			Float64("pnl", trade.RealizedPnL).
			Msg("position closed")
		return &trade

	case models.SignalEntry:
		if pos.IsOpen() {
			// No reversal without an explicit exit first.
			return nil
		}
		pos.Side = sig.Side
		pos.Tranches = append(pos.Tranches, models.Tranche{
			EntryDate:    bar.Date,
			EntryPrice:   bar.Close,
			SizeFraction: ev.SizeFraction(0),
		})

	case models.SignalScaleIn:
		if !pos.IsOpen() || pos.Side != sig.Side {
			return nil
		}
		if len(pos.Tranches) >= ev.MaxTranches() {
			return nil
		}
		fraction := ev.SizeFraction(len(pos.Tranches))
		if pos.TotalFraction()+fraction > 1.0+1e-9 {
			return nil
		}
		pos.Tranches = append(pos.Tranches, models.Tranche{
			EntryDate:    bar.Date,
			EntryPrice:   bar.Close,
			SizeFraction: fraction,
		})
	}
	return nil
}
