package indicators

import "math"

type RSIService struct{}

func NewRSIService() *RSIService {
	return &RSIService{}
}

// Calculate computes the RSI from simple averages of gains and losses over the
// trailing period. The value at index i needs period+1 closes, so the first
// valid index is period. A zero average loss reads as RSI 100.
func (s *RSIService) Calculate(prices []float64, period int) (values []float64, firstValid int) {
	values = make([]float64, len(prices))
	if period <= 0 || len(prices) < period+1 {
		return values, len(prices)
	}

	gains := make([]float64, len(prices))
	losses := make([]float64, len(prices))
	for i := 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = math.Abs(change)
		}
	}

	gainSum := 0.0
	lossSum := 0.0
	for i := 1; i < len(prices); i++ {
		gainSum += gains[i]
		lossSum += losses[i]
		if i > period {
			gainSum -= gains[i-period]
			lossSum -= losses[i-period]
		}
		if i < period {
			continue
		}
		avgLoss := lossSum / float64(period)
		if avgLoss == 0 {
			values[i] = 100
			continue
		}
		rs := (gainSum / float64(period)) / avgLoss
		values[i] = 100 - (100 / (1 + rs))
	}
	return values, period
}
