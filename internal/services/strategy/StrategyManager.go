package strategy

import (
	"fmt"

	"github.com/signhoff/7-ETF-Strategies/config"
	"github.com/signhoff/7-ETF-Strategies/internal/models"
)

// StrategyManager owns the seven rule sets, built once from config with any
// per-strategy overrides applied.
type StrategyManager struct {
	evaluators map[models.StrategyID]Evaluator
	order      []models.StrategyID
}

func NewStrategyManager(tc *config.TradingConfig) *StrategyManager {
	m := &StrategyManager{
		evaluators: make(map[models.StrategyID]Evaluator),
	}
	for _, id := range models.AllStrategies() {
		params := tc.Params(id)
		if params.Disabled {
			continue
		}
		m.register(build(id, params))
	}
	return m
}

func build(id models.StrategyID, params config.StrategyParams) Evaluator {
	switch id {
	case models.StrategyThreeDayHL:
		return NewThreeDayHLStrategy(params)
	case models.StrategyRSI2575:
		return NewRSI2575Strategy(params)
	case models.StrategyR3:
		return NewR3Strategy(params)
	case models.StrategyPercentB:
		return NewPercentBStrategy(params)
	case models.StrategyMDDMDU:
		return NewMDDMDUStrategy(params)
	case models.StrategyRSI106:
		return NewRSI106Strategy(params)
	case models.StrategyTPS:
		return NewTPSStrategy(params)
	}
	return nil
}

func (m *StrategyManager) register(e Evaluator) {
	if e == nil {
		return
	}
	m.evaluators[e.ID()] = e
	m.order = append(m.order, e.ID())
}

// Evaluator looks up one strategy by id.
func (m *StrategyManager) Evaluator(id models.StrategyID) (Evaluator, error) {
	e, ok := m.evaluators[id]
	if !ok {
		return nil, fmt.Errorf("strategy %q is not registered", id)
	}
	return e, nil
}

// All returns the enabled evaluators in stable registration order.
func (m *StrategyManager) All() []Evaluator {
	out := make([]Evaluator, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.evaluators[id])
	}
	return out
}
