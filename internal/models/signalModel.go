package models

// StrategyID identifies one of the seven rule sets.
type StrategyID string

const (
	StrategyThreeDayHL StrategyID = "3_day_hl"
	StrategyRSI2575    StrategyID = "rsi_25_75"
	StrategyR3         StrategyID = "r3"
	StrategyPercentB   StrategyID = "percent_b"
	StrategyMDDMDU     StrategyID = "mdd_mdu"
	StrategyRSI106     StrategyID = "rsi_10_6_90_94"
	StrategyTPS        StrategyID = "tps"
)

// AllStrategies lists every strategy in stable report order.
func AllStrategies() []StrategyID {
	return []StrategyID{
		StrategyThreeDayHL,
		StrategyRSI2575,
		StrategyR3,
		StrategyPercentB,
		StrategyMDDMDU,
		StrategyRSI106,
		StrategyTPS,
	}
}

const (
	SideLong  = "long"
	SideShort = "short"
)

// SideSign returns +1 for long, -1 for short.
func SideSign(side string) float64 {
	if side == SideShort {
		return -1
	}
	return 1
}

const (
	SignalEntry   = "entry"
	SignalScaleIn = "scale_in"
	SignalExit    = "exit"
)

// Signal is the single action a strategy may emit for one bar.
// TrancheIndex is 0-based and only meaningful for entry/scale_in.
type Signal struct {
	Side         string
	Kind         string
	TrancheIndex int
	Reason       string
}
