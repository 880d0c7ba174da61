package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/signhoff/7-ETF-Strategies/internal/models"
)

const (
	DefaultTrendFilterWindow = 200
	DefaultMaxGapDays        = 7
	DefaultInitialEquity     = 25000.0
)

// Load reads infrastructure settings from the environment. A .env file is
// loaded when present; otherwise the process environment is used as-is.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Exchange: ExchangeConfig{
			APIKey:    os.Getenv("BINANCE_API_KEY"),
			SecretKey: os.Getenv("BINANCE_SECRET_KEY"),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "sqlite"),
			Path:     getEnv("DB_PATH", "data/etf.db"),
			Host:     os.Getenv("DB_HOST"),
			Port:     EnvtoInt(os.Getenv("DB_PORT")),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_NAME"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if cfg.Database.Driver != "sqlite" && cfg.Database.Driver != "postgres" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
	return cfg, nil
}

// LoadTrading reads the trading configuration YAML and applies defaults.
func LoadTrading(path string) (*TradingConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading trading config: %w", err)
	}
	var tc TradingConfig
	if err := yaml.Unmarshal(raw, &tc); err != nil {
		return nil, fmt.Errorf("parsing trading config: %w", err)
	}
	tc.applyDefaults()
	if err := tc.Validate(); err != nil {
		return nil, err
	}
	return &tc, nil
}

func (tc *TradingConfig) applyDefaults() {
	if tc.TrendFilterWindow == 0 {
		tc.TrendFilterWindow = DefaultTrendFilterWindow
	}
	if tc.MaxGapDays == 0 {
		tc.MaxGapDays = DefaultMaxGapDays
	}
	if tc.InitialEquity == 0 {
		tc.InitialEquity = DefaultInitialEquity
	}
	if tc.RiskFraction == 0 {
		tc.RiskFraction = 1.0
	}
	if tc.Workers <= 0 {
		tc.Workers = 4
	}
	if len(tc.Universe) == 0 {
		tc.Universe = []string{"SPY", "QQQ", "IWM"}
	}
}

func (tc *TradingConfig) Validate() error {
	if tc.TrendFilterWindow < 2 {
		return fmt.Errorf("trend_filter_window must be at least 2, got %d", tc.TrendFilterWindow)
	}
	if tc.RiskFraction < 0 || tc.RiskFraction > 1 {
		return fmt.Errorf("risk_fraction %v out of [0,1]", tc.RiskFraction)
	}
	for id, params := range tc.Strategies {
		if !knownStrategy(id) {
			return fmt.Errorf("unknown strategy %q in config", id)
		}
		if params.MaxTranches < 0 {
			return fmt.Errorf("strategy %s: max_tranches cannot be negative", id)
		}
		total := 0.0
		for _, f := range params.SizeFractions {
			if f <= 0 || f > 1 {
				return fmt.Errorf("strategy %s: size fraction %v out of (0,1]", id, f)
			}
			total += f
		}
		if total > 1.0+1e-9 {
			return fmt.Errorf("strategy %s: size fractions sum to %v, exceeds 1.0", id, total)
		}
	}
	return nil
}

// Notional converts a position size fraction into a currency amount using the
// configured portfolio value and per-unit risk fraction.
func (tc *TradingConfig) Notional(sizeFraction float64) float64 {
	return tc.InitialEquity * tc.RiskFraction * sizeFraction
}

// Params returns the overrides for one strategy, zero-valued when absent.
func (tc *TradingConfig) Params(id models.StrategyID) StrategyParams {
	if tc == nil || tc.Strategies == nil {
		return StrategyParams{}
	}
	return tc.Strategies[id]
}

func knownStrategy(id models.StrategyID) bool {
	for _, known := range models.AllStrategies() {
		if id == known {
			return true
		}
	}
	return false
}

// helper env(string) to int
func EnvtoInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
