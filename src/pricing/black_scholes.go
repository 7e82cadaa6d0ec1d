package pricing

import (
	"math"

	"github.com/zzprice/optionrisk/src/utils"
)

const (
	impvGuess         = 0.3
	impvMaxIterations = 50
	impvTolerance     = 1e-5
)

// BlackScholes prices European options on a spot underlying. Theta is
// reported per calendar day and vega per volatility point.
type BlackScholes struct{}

func (m *BlackScholes) d1(s, k, r, t, v float64) float64 {
	return (math.Log(s/k) + (0.5*v*v+r)*t) / (v * math.Sqrt(t))
}

func (m *BlackScholes) CalculatePrice(s, k, r, t, v float64, cp int) float64 {
	// expired or vol-less options collapse to intrinsic value
	if t <= 0 || v <= 0 {
		return math.Max(0, float64(cp)*(s-k))
	}

	d1 := m.d1(s, k, r, t, v)
	d2 := d1 - v*math.Sqrt(t)
	fcp := float64(cp)

	return fcp * (s*normCDF(fcp*d1) - k*math.Exp(-r*t)*normCDF(fcp*d2))
}

func (m *BlackScholes) CalculateGreeks(s, k, r, t, v float64, cp int) (price, delta, gamma, theta, vega float64) {
	price = m.CalculatePrice(s, k, r, t, v, cp)
	if t <= 0 || v <= 0 {
		return price, 0, 0, 0, 0
	}

	d1 := m.d1(s, k, r, t, v)
	d2 := d1 - v*math.Sqrt(t)
	fcp := float64(cp)

	delta = fcp * normCDF(fcp*d1)
	gamma = normPDF(d1) / (s * v * math.Sqrt(t))
	theta = (-s*normPDF(d1)*v/(2*math.Sqrt(t)) - fcp*r*k*math.Exp(-r*t)*normCDF(fcp*d2)) / utils.AnnualDays
	vega = s * normPDF(d1) * math.Sqrt(t) / 100

	return price, delta, gamma, theta, vega
}

func (m *BlackScholes) CalculateImpv(price, s, k, r, t float64, cp int) float64 {
	if price <= 0 || s <= 0 || t <= 0 {
		return 0
	}

	// the quote must exceed discounted intrinsic value, otherwise no
	// volatility reproduces it
	meet := false
	if cp == 1 && price > s-k*math.Exp(-r*t) {
		meet = true
	} else if cp == -1 && price > k*math.Exp(-r*t)-s {
		meet = true
	}

	if !meet {
		return 0
	}

	v := impvGuess
	for i := 0; i < impvMaxIterations; i++ {
		p := m.CalculatePrice(s, k, r, t, v, cp)

		vega := s * normPDF(m.d1(s, k, r, t, v)) * math.Sqrt(t)
		if vega == 0 {
			break
		}

		dx := (price - p) / vega
		if math.Abs(dx) < impvTolerance {
			break
		}

		v += dx
	}

	if v <= 0 {
		return 0
	}

	return math.Round(v*1e4) / 1e4
}
