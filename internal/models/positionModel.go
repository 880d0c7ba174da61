package models

import "time"

// Tranche is one scaled-in unit of a position.
type Tranche struct {
	EntryDate    time.Time
	EntryPrice   float64
	SizeFraction float64
}

// Position tracks the open tranches for one (ticker, strategy) pair.
// Side is fixed for the life of an open position. An empty tranche list
// means the position is flat.
type Position struct {
	Ticker     string
	StrategyID StrategyID
	Side       string
	Tranches   []Tranche
}

func (p *Position) IsOpen() bool {
	return p != nil && len(p.Tranches) > 0
}

// TotalFraction is the sum of open tranche size fractions. Never exceeds 1.0.
func (p *Position) TotalFraction() float64 {
	total := 0.0
	for _, t := range p.Tranches {
		total += t.SizeFraction
	}
	return total
}

// FirstEntryPrice returns the entry price of tranche 0, or 0 if flat.
func (p *Position) FirstEntryPrice() float64 {
	if !p.IsOpen() {
		return 0
	}
	return p.Tranches[0].EntryPrice
}

// LastEntryPrice returns the entry price of the most recent tranche, or 0 if flat.
func (p *Position) LastEntryPrice() float64 {
	if !p.IsOpen() {
		return 0
	}
	return p.Tranches[len(p.Tranches)-1].EntryPrice
}

// AverageCost is the size-weighted mean of tranche entry prices.
func (p *Position) AverageCost() float64 {
	total := p.TotalFraction()
	if total == 0 {
		return 0
	}
	weighted := 0.0
	for _, t := range p.Tranches {
		weighted += t.SizeFraction * t.EntryPrice
	}
	return weighted / total
}

// UnrealizedPnL marks all open tranches against the given close.
func (p *Position) UnrealizedPnL(close float64) float64 {
	if !p.IsOpen() {
		return 0
	}
	sign := SideSign(p.Side)
	pnl := 0.0
	for _, t := range p.Tranches {
		pnl += t.SizeFraction * (close - t.EntryPrice) * sign
	}
	return pnl
}
