package pricing

import "fmt"

// Model prices a single option and inverts market prices into implied
// volatility. optionSign is +1 for a call and -1 for a put. Implementations
// are stateless and safe to share across options.
type Model interface {
	CalculatePrice(underlyingPrice, strikePrice, interestRate, timeToExpiry, volatility float64, optionSign int) float64
	CalculateGreeks(underlyingPrice, strikePrice, interestRate, timeToExpiry, volatility float64, optionSign int) (price, delta, gamma, theta, vega float64)
	CalculateImpv(optionPrice, underlyingPrice, strikePrice, interestRate, timeToExpiry float64, optionSign int) float64
}

const (
	ModelBlackScholes = "black_scholes"
	ModelBlack76      = "black_76"
	ModelBinomialTree = "binomial_tree"
)

func Get(name string) (Model, error) {
	switch name {
	case ModelBlackScholes:
		return &BlackScholes{}, nil
	case ModelBlack76:
		return &Black76{}, nil
	case ModelBinomialTree:
		return NewBinomialTree(DefaultTreeSteps), nil
	default:
		return nil, fmt.Errorf("pricing.Get: unknown model %q", name)
	}
}
