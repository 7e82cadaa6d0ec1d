package pricing

import (
	"math"

	"github.com/zzprice/optionrisk/src/utils"
)

// Black76 prices European options on a forward or futures underlying.
type Black76 struct{}

func (m *Black76) d1(f, k, t, v float64) float64 {
	return (math.Log(f/k) + 0.5*v*v*t) / (v * math.Sqrt(t))
}

func (m *Black76) CalculatePrice(f, k, r, t, v float64, cp int) float64 {
	if t <= 0 || v <= 0 {
		return math.Max(0, float64(cp)*(f-k))
	}

	d1 := m.d1(f, k, t, v)
	d2 := d1 - v*math.Sqrt(t)
	fcp := float64(cp)

	return fcp * (f*normCDF(fcp*d1) - k*normCDF(fcp*d2)) * math.Exp(-r*t)
}

func (m *Black76) CalculateGreeks(f, k, r, t, v float64, cp int) (price, delta, gamma, theta, vega float64) {
	price = m.CalculatePrice(f, k, r, t, v, cp)
	if t <= 0 || v <= 0 {
		return price, 0, 0, 0, 0
	}

	d1 := m.d1(f, k, t, v)
	d2 := d1 - v*math.Sqrt(t)
	fcp := float64(cp)
	discount := math.Exp(-r * t)

	delta = fcp * discount * normCDF(fcp*d1)
	gamma = discount * normPDF(d1) / (f * v * math.Sqrt(t))
	theta = (-f*discount*normPDF(d1)*v/(2*math.Sqrt(t)) +
		fcp*r*f*discount*normCDF(fcp*d1) -
		fcp*r*k*discount*normCDF(fcp*d2)) / utils.AnnualDays
	vega = f * discount * normPDF(d1) * math.Sqrt(t) / 100

	return price, delta, gamma, theta, vega
}

func (m *Black76) CalculateImpv(price, f, k, r, t float64, cp int) float64 {
	if price <= 0 || f <= 0 || t <= 0 {
		return 0
	}

	discount := math.Exp(-r * t)

	meet := false
	if cp == 1 && price > (f-k)*discount {
		meet = true
	} else if cp == -1 && price > (k-f)*discount {
		meet = true
	}

	if !meet {
		return 0
	}

	v := impvGuess
	for i := 0; i < impvMaxIterations; i++ {
		p := m.CalculatePrice(f, k, r, t, v, cp)

		vega := f * discount * normPDF(m.d1(f, k, t, v)) * math.Sqrt(t)
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
