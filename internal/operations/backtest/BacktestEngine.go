package backtest

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/signhoff/7-ETF-Strategies/internal/models"
	"github.com/signhoff/7-ETF-Strategies/internal/services/indicators"
	"github.com/signhoff/7-ETF-Strategies/internal/services/position"
	"github.com/signhoff/7-ETF-Strategies/internal/services/strategy"
)

// Engine drives bars through the indicator engine, the strategy evaluators and
// the position manager, one (ticker, strategy) pair at a time. Pairs share no
// mutable state and run on independent workers.
type Engine struct {
	indicatorEngine *indicators.Engine
	strategyManager *strategy.StrategyManager
	positionManager *position.Manager
	config          Config
	log             zerolog.Logger
}

func NewEngine(
	indicatorEngine *indicators.Engine,
	strategyManager *strategy.StrategyManager,
	positionManager *position.Manager,
	config Config,
	log zerolog.Logger,
) *Engine {
	if config.Workers <= 0 {
		config.Workers = 1
	}
	return &Engine{
		indicatorEngine: indicatorEngine,
		strategyManager: strategyManager,
		positionManager: positionManager,
		config:          config,
		log:             log,
	}
}

// Run backtests every enabled strategy against every symbol's bar series.
// Results are merged sorted by (ticker, strategy).
func (e *Engine) Run(ctx context.Context, barsBySymbol map[string][]models.Bar) (*Results, error) {
	symbols := make([]string, 0, len(barsBySymbol))
	for symbol := range barsBySymbol {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	// Validate and compute snapshots once per symbol; the slices are
	// read-only from here on.
	snapsBySymbol := make(map[string][]indicators.Snapshot, len(symbols))
	for _, symbol := range symbols {
		bars := barsBySymbol[symbol]
		if err := models.ValidateBars(bars); err != nil {
			return nil, err
		}
		for _, idx := range models.FindGaps(bars, e.config.MaxGapDays) {
			e.log.Warn().
				Str("symbol", symbol).
				Str("date", bars[idx].Date.Format("2006-01-02")).
				Msg("date gap exceeds configured maximum, continuing")
		}
		if len(bars) > 0 && len(bars) < e.indicatorEngine.TrendWindow() {
			e.log.Debug().
				Str("symbol", symbol).
				Int("bars", len(bars)).
				Msg("series shorter than trend filter warm-up, entries will be gated")
		}
		snapsBySymbol[symbol] = e.indicatorEngine.Compute(bars)
	}

	type job struct {
		symbol    string
		evaluator strategy.Evaluator
	}
	jobs := make(chan job)
	var (
		mu      sync.Mutex
		pairs   []PairResult
		runErr  error
		wg      sync.WaitGroup
	)

	for w := 0; w < e.config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				result, err := e.RunPair(ctx, j.symbol, j.evaluator, barsBySymbol[j.symbol], snapsBySymbol[j.symbol])
				mu.Lock()
				if err != nil {
					if runErr == nil {
						runErr = fmt.Errorf("backtest %s/%s: %w", j.symbol, j.evaluator.ID(), err)
					}
				} else {
					pairs = append(pairs, *result)
				}
				mu.Unlock()
			}
		}()
	}

	for _, symbol := range symbols {
		for _, ev := range e.strategyManager.All() {
			jobs <- job{symbol: symbol, evaluator: ev}
		}
	}
	close(jobs)
	wg.Wait()

	if runErr != nil {
		return nil, runErr
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Ticker != pairs[j].Ticker {
			return pairs[i].Ticker < pairs[j].Ticker
		}
		return pairs[i].StrategyID < pairs[j].StrategyID
	})
	return &Results{Pairs: pairs}, nil
}

// RunPair replays one symbol's bars through one strategy in ascending date
// order. The evaluator only ever sees history up to and including the current
// bar; fills are always at the current bar's close.
func (e *Engine) RunPair(
	ctx context.Context,
	ticker string,
	ev strategy.Evaluator,
	bars []models.Bar,
	snaps []indicators.Snapshot,
) (*PairResult, error) {
	result := &PairResult{
		Ticker:     ticker,
		StrategyID: ev.ID(),
	}
	pos := &models.Position{Ticker: ticker, StrategyID: ev.ID()}

	realized := 0.0
	peak := e.config.InitialEquity
	result.EquityCurve = make([]EquityPoint, 0, len(bars))

	for i := range bars {
		// Cancellation is safe at bar granularity.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sig := ev.Evaluate(bars[:i+1], snaps[:i+1], pos)
		if trade := e.positionManager.Apply(pos, ev, sig, bars[i]); trade != nil {
			realized += trade.RealizedPnL
			result.Trades = append(result.Trades, *trade)
		}

		equity := e.config.InitialEquity + realized + pos.UnrealizedPnL(bars[i].Close)
		if equity > peak {
			peak = equity
		}
		result.EquityCurve = append(result.EquityCurve, EquityPoint{
			Date:     bars[i].Date,
			Equity:   equity,
			Drawdown: peak - equity,
		})
	}

	// A position still open at the end is reported, not force-closed.
	if pos.IsOpen() {
		open := *pos
		result.OpenPosition = &open
	}

	e.summarize(result)
	return result, nil
}

func (e *Engine) summarize(r *PairResult) {
	r.TotalTrades = len(r.Trades)
	totalPnL := 0.0
	for _, trade := range r.Trades {
		if trade.RealizedPnL > 0 {
			r.WinningTrades++
		} else {
			r.LosingTrades++
		}
		totalPnL += trade.RealizedPnL
	}
	if r.TotalTrades > 0 {
		r.WinRate = float64(r.WinningTrades) / float64(r.TotalTrades)
		r.AveragePnL = totalPnL / float64(r.TotalTrades)
	}

	maxDrawdown := 0.0
	for _, point := range r.EquityCurve {
		if point.Drawdown > maxDrawdown {
			maxDrawdown = point.Drawdown
		}
	}
	r.MaxDrawdown = maxDrawdown
	if len(r.EquityCurve) > 0 {
		r.FinalEquity = r.EquityCurve[len(r.EquityCurve)-1].Equity
	} else {
		r.FinalEquity = e.config.InitialEquity
	}
	r.SharpeRatio = sharpeRatio(r.EquityCurve)
}

// sharpeRatio annualizes mean/stddev of daily equity returns over 252 trading
// days.
func sharpeRatio(curve []EquityPoint) float64 {
	if len(curve) < 2 {
		return 0
	}
	returns := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Equity
		if prev == 0 {
			continue
		}
		returns = append(returns, (curve[i].Equity-prev)/prev)
	}
	if len(returns) < 2 {
		return 0
	}

	avg := 0.0
	for _, r := range returns {
		avg += r
	}
	avg /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		variance += (r - avg) * (r - avg)
	}
	variance /= float64(len(returns) - 1)
	stdDev := math.Sqrt(variance)
	if stdDev == 0 {
		return 0
	}
	return (avg * 252) / (stdDev * math.Sqrt(252))
}
