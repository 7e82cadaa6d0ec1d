package models

// PricingModel is the pricing capability bound to every option of a chain at
// activation: a price function, a Greeks function and an implied-volatility
// solver. optionSign is +1 for a call and -1 for a put. Options hold no
// model until one is bound; invoking a computation unbound is a
// configuration error, not a data condition.
type PricingModel interface {
	CalculatePrice(underlyingPrice, strikePrice, interestRate, timeToExpiry, volatility float64, optionSign int) float64
	CalculateGreeks(underlyingPrice, strikePrice, interestRate, timeToExpiry, volatility float64, optionSign int) (price, delta, gamma, theta, vega float64)
	CalculateImpv(optionPrice, underlyingPrice, strikePrice, interestRate, timeToExpiry float64, optionSign int) float64
}
