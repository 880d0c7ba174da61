package backtest

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/signhoff/7-ETF-Strategies/config"
	"github.com/signhoff/7-ETF-Strategies/internal/models"
	"github.com/signhoff/7-ETF-Strategies/internal/services/indicators"
	"github.com/signhoff/7-ETF-Strategies/internal/services/position"
	"github.com/signhoff/7-ETF-Strategies/internal/services/strategy"
)

func dailyBars(symbol string, closes ...float64) []models.Bar {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, len(closes))
	for i, c := range closes {
		bars[i] = models.Bar{
			Symbol: symbol,
			Date:   base.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

// onlyRSI106 disables everything except the RSI 10/6 rules so the fixture
// series drives exactly one strategy.
func onlyRSI106() *config.TradingConfig {
	params := make(map[models.StrategyID]config.StrategyParams)
	for _, id := range models.AllStrategies() {
		if id != models.StrategyRSI106 {
			params[id] = config.StrategyParams{Disabled: true}
		}
	}
	return &config.TradingConfig{Strategies: params}
}

func newTestEngine(cfg Config) *Engine {
	return NewEngine(
		indicators.NewEngine(5),
		strategy.NewStrategyManager(onlyRSI106()),
		position.NewManager(zerolog.Nop()),
		cfg,
		zerolog.Nop(),
	)
}

// rsi106Closes rises long enough to warm up a 5-bar trend filter, dips two
// days so RSI2 pins at 0, then recovers through the 5-day SMA. That is one
// full round trip: entry at 13.6, exit at 14.2.
var rsi106Closes = []float64{10, 11, 12, 13, 14, 13.8, 13.6, 14.2}

func TestRunSingleRoundTrip(t *testing.T) {
	engine := newTestEngine(Config{InitialEquity: 25000, MaxGapDays: 7, Workers: 2})

	results, err := engine.Run(context.Background(), map[string][]models.Bar{
		"SPY": dailyBars("SPY", rsi106Closes...),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results.Pairs) != 1 {
		t.Fatalf("pairs = %d, want 1", len(results.Pairs))
	}

	pair := results.Pairs[0]
	if pair.Ticker != "SPY" || pair.StrategyID != models.StrategyRSI106 {
		t.Fatalf("pair = %s/%s", pair.Ticker, pair.StrategyID)
	}
	if pair.TotalTrades != 1 {
		t.Fatalf("TotalTrades = %d, want 1", pair.TotalTrades)
	}

	trade := pair.Trades[0]
	if trade.Side != models.SideLong {
		t.Fatalf("trade side = %s, want long", trade.Side)
	}
	// One half-size unit: 0.5 * (14.2 - 13.6).
	if math.Abs(trade.RealizedPnL-0.3) > 1e-9 {
		t.Fatalf("RealizedPnL = %v, want 0.3", trade.RealizedPnL)
	}

	if len(pair.EquityCurve) != len(rsi106Closes) {
		t.Fatalf("equity curve length = %d, want %d", len(pair.EquityCurve), len(rsi106Closes))
	}
	if math.Abs(pair.FinalEquity-25000.3) > 1e-9 {
		t.Fatalf("FinalEquity = %v, want 25000.3", pair.FinalEquity)
	}
	if pair.WinRate != 1 {
		t.Fatalf("WinRate = %v, want 1", pair.WinRate)
	}
	if pair.OpenPosition != nil {
		t.Fatalf("OpenPosition = %+v, want nil after the exit", pair.OpenPosition)
	}
}

func TestRunNoEntriesDuringWarmup(t *testing.T) {
	engine := newTestEngine(Config{InitialEquity: 25000, Workers: 1})

	// Deep dips right away, but the trend filter never warms up.
	results, err := engine.Run(context.Background(), map[string][]models.Bar{
		"SPY": dailyBars("SPY", 10, 9, 8),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	pair := results.Pairs[0]
	if pair.TotalTrades != 0 || pair.OpenPosition != nil {
		t.Fatalf("got trades=%d open=%+v, want quiet warm-up", pair.TotalTrades, pair.OpenPosition)
	}
	if pair.FinalEquity != 25000 {
		t.Fatalf("FinalEquity = %v, want untouched equity", pair.FinalEquity)
	}
}

func TestRunSortsPairs(t *testing.T) {
	engine := newTestEngine(Config{InitialEquity: 25000, Workers: 4})

	results, err := engine.Run(context.Background(), map[string][]models.Bar{
		"SPY": dailyBars("SPY", rsi106Closes...),
		"QQQ": dailyBars("QQQ", rsi106Closes...),
		"IWM": dailyBars("IWM", rsi106Closes...),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results.Pairs) != 3 {
		t.Fatalf("pairs = %d, want 3", len(results.Pairs))
	}
	want := []string{"IWM", "QQQ", "SPY"}
	for i, symbol := range want {
		if results.Pairs[i].Ticker != symbol {
			t.Fatalf("Pairs[%d].Ticker = %s, want %s", i, results.Pairs[i].Ticker, symbol)
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	barsBySymbol := map[string][]models.Bar{
		"SPY": dailyBars("SPY", rsi106Closes...),
		"QQQ": dailyBars("QQQ", rsi106Closes...),
	}

	first, err := newTestEngine(Config{InitialEquity: 25000, Workers: 4}).Run(context.Background(), barsBySymbol)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := newTestEngine(Config{InitialEquity: 25000, Workers: 1}).Run(context.Background(), barsBySymbol)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(first.Pairs) != len(second.Pairs) {
		t.Fatalf("pair counts differ: %d vs %d", len(first.Pairs), len(second.Pairs))
	}
	for i := range first.Pairs {
		a, b := first.Pairs[i], second.Pairs[i]
		if a.Ticker != b.Ticker || a.StrategyID != b.StrategyID {
			t.Fatalf("pair order differs at %d: %s/%s vs %s/%s", i, a.Ticker, a.StrategyID, b.Ticker, b.StrategyID)
		}
		if a.TotalTrades != b.TotalTrades || a.FinalEquity != b.FinalEquity {
			t.Fatalf("pair %s/%s differs between runs", a.Ticker, a.StrategyID)
		}
	}
}

func TestRunRejectsBadBars(t *testing.T) {
	engine := newTestEngine(Config{InitialEquity: 25000, Workers: 1})

	bars := dailyBars("SPY", 10, 11, 12)
	bars[1].Close = -1
	_, err := engine.Run(context.Background(), map[string][]models.Bar{"SPY": bars})
	if !errors.Is(err, models.ErrBarValidation) {
		t.Fatalf("err = %v, want bar validation failure", err)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	engine := newTestEngine(Config{InitialEquity: 25000, Workers: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := engine.Run(ctx, map[string][]models.Bar{
		"SPY": dailyBars("SPY", rsi106Closes...),
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestSharpeRatioDegenerateCurves(t *testing.T) {
	if got := sharpeRatio(nil); got != 0 {
		t.Fatalf("sharpeRatio(nil) = %v, want 0", got)
	}

	flat := []EquityPoint{{Equity: 100}, {Equity: 100}, {Equity: 100}}
	if got := sharpeRatio(flat); got != 0 {
		t.Fatalf("sharpeRatio(flat) = %v, want 0 for zero variance", got)
	}
}
