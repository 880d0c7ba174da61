package models

import (
	"strconv"
	"strings"
	"time"
)

// Trade is one closed position: every tranche entered and the single exit that
// flattened them. Entry legs are kept as semicolon-joined columns so the record
// stays one row per round trip.
type Trade struct {
	ID          uint       `gorm:"primaryKey"`
	Symbol      string     `gorm:"index;not null"`
	StrategyID  StrategyID `gorm:"index;not null;column:strategy_id"`
	Side        string     `gorm:"not null"`
	EntryDates  string     `gorm:"not null"`
	EntryPrices string     `gorm:"not null"`
	Fractions   string     `gorm:"not null"`
	ExitDate    time.Time  `gorm:"index;not null"`
	ExitPrice   float64    `gorm:"type:decimal(20,8);not null"`
	RealizedPnL float64    `gorm:"type:decimal(20,8)"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName sets the table name for Trade model
func (Trade) TableName() string {
	return "trades"
}

const tradeDateLayout = "2006-01-02"

// NewTrade builds the closed-trade record for a position exiting at the given
// bar close. RealizedPnL sums fraction-weighted price moves across tranches.
func NewTrade(pos *Position, exitDate time.Time, exitPrice float64) Trade {
	sign := SideSign(pos.Side)
	dates := make([]string, 0, len(pos.Tranches))
	prices := make([]string, 0, len(pos.Tranches))
	fractions := make([]string, 0, len(pos.Tranches))
	pnl := 0.0
	for _, t := range pos.Tranches {
		dates = append(dates, t.EntryDate.Format(tradeDateLayout))
		prices = append(prices, strconv.FormatFloat(t.EntryPrice, 'f', -1, 64))
		fractions = append(fractions, strconv.FormatFloat(t.SizeFraction, 'f', -1, 64))
		pnl += t.SizeFraction * (exitPrice - t.EntryPrice) * sign
	}
	return Trade{
		Symbol:      pos.Ticker,
		StrategyID:  pos.StrategyID,
		Side:        pos.Side,
		EntryDates:  strings.Join(dates, ";"),
		EntryPrices: strings.Join(prices, ";"),
		Fractions:   strings.Join(fractions, ";"),
		ExitDate:    exitDate,
		ExitPrice:   exitPrice,
		RealizedPnL: pnl,
	}
}

// EntryPriceList decodes the per-tranche entry prices.
func (t *Trade) EntryPriceList() []float64 {
	parts := strings.Split(t.EntryPrices, ";")
	prices := make([]float64, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			continue
		}
		prices = append(prices, f)
	}
	return prices
}

// EntryDateList decodes the per-tranche entry dates.
func (t *Trade) EntryDateList() []time.Time {
	parts := strings.Split(t.EntryDates, ";")
	dates := make([]time.Time, 0, len(parts))
	for _, p := range parts {
		d, err := time.Parse(tradeDateLayout, p)
		if err != nil {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}
