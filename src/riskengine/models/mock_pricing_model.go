package models

// MockPricingModel returns canned values so derived fields can be asserted
// exactly. ImpvFn, when set, overrides the flat Impv to make bid and ask
// solves distinguishable.
type MockPricingModel struct {
	Impv  float64
	Price float64
	Delta float64
	Gamma float64
	Theta float64
	Vega  float64

	ImpvFn func(optionPrice float64) float64

	ImpvCalls   int
	GreeksCalls int

	LastImpvUnderlying   float64
	LastGreeksUnderlying float64
}

func NewMockPricingModel() *MockPricingModel {
	return &MockPricingModel{
		Impv:  0.25,
		Price: 5.0,
		Delta: 0.5,
		Gamma: 0.1,
		Theta: -0.05,
		Vega:  0.2,
	}
}

func (m *MockPricingModel) CalculatePrice(s, k, r, t, v float64, cp int) float64 {
	return m.Price
}

func (m *MockPricingModel) CalculateGreeks(s, k, r, t, v float64, cp int) (float64, float64, float64, float64, float64) {
	m.GreeksCalls++
	m.LastGreeksUnderlying = s

	return m.Price, m.Delta, m.Gamma, m.Theta, m.Vega
}

func (m *MockPricingModel) CalculateImpv(price, s, k, r, t float64, cp int) float64 {
	m.ImpvCalls++
	m.LastImpvUnderlying = s

	if m.ImpvFn != nil {
		return m.ImpvFn(price)
	}

	return m.Impv
}
