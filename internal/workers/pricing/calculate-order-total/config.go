// internal/workers/pricing/calculate-order-total/config.go
package calculateordertotal

import (
	"math"
	"time"

	"leasing-workers/internal/pricing"
)

type Config struct {
	Timeout time.Duration
	Coupons map[string]float64

	// Per-month rent adjustment when the unit does not publish a rent for
	// the requested term: markup below 12 months, markdown above.
	ShortTermSlope float64
	LongTermSlope  float64
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
		Coupons: pricing.DefaultCoupons,
	}
}

// rentCurve builds the fallback term-pricing strategy from the configured
// slopes, or hands back the shipped curve when none are set.
func (c *Config) rentCurve() pricing.RentCurve {
	short, long := c.ShortTermSlope, c.LongTermSlope
	if short == 0 && long == 0 {
		return pricing.DefaultRentCurve
	}
	return func(baseRent float64, months int) float64 {
		switch {
		case months == 12 || months <= 0:
			return baseRent
		case months < 12:
			return math.Round(baseRent * (1 + float64(12-months)*short))
		default:
			return math.Round(baseRent * (1 - float64(months-12)*long))
		}
	}
}
