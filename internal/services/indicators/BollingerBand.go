package indicators

import "math"

type BBandsService struct{}

func NewBBandsService() *BBandsService {
	return &BBandsService{}
}

// CalculatePercentB computes Bollinger %b: the position of each close within
// bands at the period SMA plus/minus deviations standard deviations. Entries
// before warm-up, and entries where the bands collapse to zero width, are
// reported invalid rather than infinite.
func (s *BBandsService) CalculatePercentB(prices []float64, period int, deviations float64) (values []float64, valid []bool) {
	values = make([]float64, len(prices))
	valid = make([]bool, len(prices))
	if period <= 0 || len(prices) < period {
		return values, valid
	}

	for i := period - 1; i < len(prices); i++ {
		subset := prices[i-period+1 : i+1]

		sum := 0.0
		for _, price := range subset {
			sum += price
		}
		sma := sum / float64(period)

		squareSum := 0.0
		for _, price := range subset {
			diff := price - sma
			squareSum += diff * diff
		}
		stdDev := math.Sqrt(squareSum / float64(period))

		upper := sma + (deviations * stdDev)
		lower := sma - (deviations * stdDev)
		width := upper - lower
		if width == 0 {
			continue
		}
		values[i] = (prices[i] - lower) / width
		valid[i] = true
	}
	return values, valid
}
