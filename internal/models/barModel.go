package models

import (
	"errors"
	"fmt"
	"time"
)

// Bar is one daily OHLCV candle for a ticker. Unique per (symbol, date).
type Bar struct {
	ID     uint      `gorm:"primaryKey"`
	Symbol string    `gorm:"uniqueIndex:idx_bar_symbol_date;not null"`
	Date   time.Time `gorm:"uniqueIndex:idx_bar_symbol_date;not null"`
	Open   float64   `gorm:"type:decimal(20,8)"`
	High   float64   `gorm:"type:decimal(20,8)"`
	Low    float64   `gorm:"type:decimal(20,8)"`
	Close  float64   `gorm:"type:decimal(20,8)"`
	Volume int64
}

// TableName sets the table name for Bar model
func (Bar) TableName() string {
	return "bars"
}

// ErrBarValidation marks data-quality failures in an input bar series.
var ErrBarValidation = errors.New("bar validation failed")

// ValidateBars checks a series before it is published to evaluators: prices must be
// positive, dates strictly ascending with no duplicates. The series is not repaired.
func ValidateBars(bars []Bar) error {
	for i := range bars {
		b := &bars[i]
		if b.Close <= 0 || b.Open <= 0 || b.High <= 0 || b.Low <= 0 {
			return fmt.Errorf("%w: %s non-positive price on %s",
				ErrBarValidation, b.Symbol, b.Date.Format("2006-01-02"))
		}
		if b.Volume < 0 {
			return fmt.Errorf("%w: %s negative volume on %s",
				ErrBarValidation, b.Symbol, b.Date.Format("2006-01-02"))
		}
		if i > 0 {
			prev := bars[i-1].Date
			if !b.Date.After(prev) {
				return fmt.Errorf("%w: %s dates not strictly ascending at %s",
					ErrBarValidation, b.Symbol, b.Date.Format("2006-01-02"))
			}
		}
	}
	return nil
}

// FindGaps returns the indices where more than maxGapDays calendar days elapsed
// since the prior bar. Gaps are a data-quality warning, not an error; the
// simulation treats them as elapsed time.
func FindGaps(bars []Bar, maxGapDays int) []int {
	if maxGapDays <= 0 {
		return nil
	}
	var gaps []int
	for i := 1; i < len(bars); i++ {
		elapsed := bars[i].Date.Sub(bars[i-1].Date)
		if elapsed > time.Duration(maxGapDays)*24*time.Hour {
			gaps = append(gaps, i)
		}
	}
	return gaps
}
