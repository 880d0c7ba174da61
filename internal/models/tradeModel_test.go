package models

import (
	"math"
	"testing"
	"time"
)

func TestNewTradeLong(t *testing.T) {
	day := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	pos := &Position{
		Ticker:     "SPY",
		StrategyID: StrategyTPS,
		Side:       SideLong,
		Tranches: []Tranche{
			{EntryDate: day, EntryPrice: 100, SizeFraction: 0.10},
			{EntryDate: day.AddDate(0, 0, 1), EntryPrice: 98, SizeFraction: 0.20},
			{EntryDate: day.AddDate(0, 0, 2), EntryPrice: 96, SizeFraction: 0.30},
		},
	}

	trade := NewTrade(pos, day.AddDate(0, 0, 5), 103)

	// 0.10*3 + 0.20*5 + 0.30*7 = 3.4
	if math.Abs(trade.RealizedPnL-3.4) > 1e-9 {
		t.Fatalf("RealizedPnL = %v, want 3.4", trade.RealizedPnL)
	}
	if trade.Symbol != "SPY" || trade.StrategyID != StrategyTPS || trade.Side != SideLong {
		t.Fatalf("trade header = %s/%s/%s", trade.Symbol, trade.StrategyID, trade.Side)
	}

	prices := trade.EntryPriceList()
	if len(prices) != 3 || prices[0] != 100 || prices[2] != 96 {
		t.Fatalf("EntryPriceList() = %v", prices)
	}
	dates := trade.EntryDateList()
	if len(dates) != 3 || !dates[1].Equal(day.AddDate(0, 0, 1)) {
		t.Fatalf("EntryDateList() = %v", dates)
	}
}

func TestNewTradeShortLoss(t *testing.T) {
	day := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	pos := &Position{
		Ticker:     "QQQ",
		StrategyID: StrategyRSI2575,
		Side:       SideShort,
		Tranches: []Tranche{
			{EntryDate: day, EntryPrice: 100, SizeFraction: 0.5},
		},
	}

	trade := NewTrade(pos, day.AddDate(0, 0, 3), 104)

	// Shorts lose when price rises: 0.5*(100-104) = -2.
	if math.Abs(trade.RealizedPnL-(-2)) > 1e-9 {
		t.Fatalf("RealizedPnL = %v, want -2", trade.RealizedPnL)
	}
}

func TestPositionAccounting(t *testing.T) {
	pos := &Position{
		Ticker: "SPY",
		Side:   SideLong,
		Tranches: []Tranche{
			{EntryPrice: 100, SizeFraction: 0.10},
			{EntryPrice: 90, SizeFraction: 0.30},
		},
	}

	if math.Abs(pos.TotalFraction()-0.40) > 1e-9 {
		t.Fatalf("TotalFraction() = %v, want 0.40", pos.TotalFraction())
	}
	if pos.FirstEntryPrice() != 100 || pos.LastEntryPrice() != 90 {
		t.Fatalf("entry prices = %v/%v", pos.FirstEntryPrice(), pos.LastEntryPrice())
	}

	// (0.10*100 + 0.30*90) / 0.40 = 92.5
	if math.Abs(pos.AverageCost()-92.5) > 1e-9 {
		t.Fatalf("AverageCost() = %v, want 92.5", pos.AverageCost())
	}

	// 0.10*(95-100) + 0.30*(95-90) = 1.0
	if math.Abs(pos.UnrealizedPnL(95)-1.0) > 1e-9 {
		t.Fatalf("UnrealizedPnL(95) = %v, want 1.0", pos.UnrealizedPnL(95))
	}
}

func TestPositionFlat(t *testing.T) {
	var nilPos *Position
	if nilPos.IsOpen() {
		t.Fatal("nil position reads open")
	}

	flat := &Position{Ticker: "SPY"}
	if flat.IsOpen() {
		t.Fatal("flat position reads open")
	}
	if flat.FirstEntryPrice() != 0 || flat.LastEntryPrice() != 0 || flat.AverageCost() != 0 {
		t.Fatal("flat position reports entry prices")
	}
	if flat.UnrealizedPnL(100) != 0 {
		t.Fatal("flat position reports unrealized P&L")
	}
}

func TestSideSign(t *testing.T) {
	if SideSign(SideLong) != 1 {
		t.Fatal("long sign != +1")
	}
	if SideSign(SideShort) != -1 {
		t.Fatal("short sign != -1")
	}
}
