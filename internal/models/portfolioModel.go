package models

import "time"

// PortfolioEntry is the persisted state of one live (ticker, strategy) position,
// read by the daily scanner to decide between entry, scale-in and exit checks.
type PortfolioEntry struct {
	ID              uint       `gorm:"primaryKey"`
	Symbol          string     `gorm:"uniqueIndex:idx_portfolio_pair;not null"`
	StrategyID      StrategyID `gorm:"uniqueIndex:idx_portfolio_pair;not null;column:strategy_id"`
	Side            string     `gorm:"not null"`
	EntryDate       time.Time  `gorm:"not null"`
	FirstEntryPrice float64    `gorm:"type:decimal(20,8);not null"`
	LastEntryPrice  float64    `gorm:"type:decimal(20,8);not null"`
	TranchesFilled  int        `gorm:"not null"`
	TotalFraction   float64    `gorm:"type:decimal(20,8);not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName sets the table name for PortfolioEntry model
func (PortfolioEntry) TableName() string {
	return "portfolio"
}

// ToPosition rebuilds a minimal Position for strategy evaluation. Only the
// tranche count, side and entry prices matter to the rule sets; intermediate
// tranche prices are not reconstructed.
func (e *PortfolioEntry) ToPosition() *Position {
	pos := &Position{
		Ticker:     e.Symbol,
		StrategyID: e.StrategyID,
		Side:       e.Side,
	}
	if e.TranchesFilled <= 0 {
		return pos
	}
	per := e.TotalFraction / float64(e.TranchesFilled)
	for i := 0; i < e.TranchesFilled; i++ {
		price := e.LastEntryPrice
		if i == 0 {
			price = e.FirstEntryPrice
		}
		pos.Tranches = append(pos.Tranches, Tranche{
			EntryDate:    e.EntryDate,
			EntryPrice:   price,
			SizeFraction: per,
		})
	}
	return pos
}
