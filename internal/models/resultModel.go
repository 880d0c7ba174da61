package models

import "time"

// BacktestRun is the persisted summary of one (ticker, strategy) backtest.
type BacktestRun struct {
	ID          uint       `gorm:"primaryKey"`
	Symbol      string     `gorm:"index;not null"`
	StrategyID  StrategyID `gorm:"index;not null;column:strategy_id"`
	StartDate   time.Time  `gorm:"not null"`
	EndDate     time.Time  `gorm:"not null"`
	TotalTrades int
	WinRate     float64 `gorm:"type:decimal(20,8)"`
	AveragePnL  float64 `gorm:"type:decimal(20,8)"`
	MaxDrawdown float64 `gorm:"type:decimal(20,8)"`
	FinalEquity float64 `gorm:"type:decimal(20,8)"`
	SharpeRatio float64 `gorm:"type:decimal(20,8)"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName sets the table name for BacktestRun model
func (BacktestRun) TableName() string {
	return "backtest_runs"
}
