package config

import "github.com/signhoff/7-ETF-Strategies/internal/models"

type Config struct {
	Exchange ExchangeConfig
	Database DatabaseConfig
	LogLevel string
}

type ExchangeConfig struct {
	APIKey    string
	SecretKey string
}

type DatabaseConfig struct {
	Driver   string // "sqlite" or "postgres"
	Path     string // sqlite file location
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// TradingConfig is the YAML-backed trading configuration: the ETF universe,
// per-strategy threshold overrides and the risk parameters.
type TradingConfig struct {
	Universe          []string                             `yaml:"universe"`
	TrendFilterWindow int                                  `yaml:"trend_filter_window"`
	MaxGapDays        int                                  `yaml:"max_gap_days"`
	InitialEquity     float64                              `yaml:"initial_equity"`
	RiskFraction      float64                              `yaml:"risk_fraction"`
	Workers           int                                  `yaml:"workers"`
	Strategies        map[models.StrategyID]StrategyParams `yaml:"strategies"`
}

// StrategyParams overrides the book defaults for a single strategy. Absent
// fields keep their defaults.
type StrategyParams struct {
	Disabled      bool               `yaml:"disabled"`
	Thresholds    map[string]float64 `yaml:"thresholds"`
	MaxTranches   int                `yaml:"max_tranches"`
	SizeFractions []float64          `yaml:"size_fractions"`
}
