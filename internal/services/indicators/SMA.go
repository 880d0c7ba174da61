package indicators

type SMAService struct{}

func NewSMAService() *SMAService {
	return &SMAService{}
}

// Calculate computes the simple moving average over the trailing period closes.
// Entries before the returned first valid index are undefined.
func (s *SMAService) Calculate(prices []float64, period int) (values []float64, firstValid int) {
	values = make([]float64, len(prices))
	if period <= 0 || len(prices) < period {
		return values, len(prices)
	}

	sum := 0.0
	for i, price := range prices {
		sum += price
		if i >= period {
			sum -= prices[i-period]
		}
		if i >= period-1 {
			values[i] = sum / float64(period)
		}
	}
	return values, period - 1
}
