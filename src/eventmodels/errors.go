package eventmodels

import "fmt"

var (
	ErrSymbolNotSet          = fmt.Errorf("symbol not set")
	ErrExchangeNotSet        = fmt.Errorf("exchange not set")
	ErrInvalidMultiplier     = fmt.Errorf("contract multiplier must be positive")
	ErrInvalidStrike         = fmt.Errorf("option strike must be positive")
	ErrUnderlyingNotSet      = fmt.Errorf("option underlying not set")
	ErrExpiryNotSet          = fmt.Errorf("option expiry not set")
	ErrInvalidQuotePrice     = fmt.Errorf("quote prices must be positive")
	ErrInvalidTradeSide      = fmt.Errorf("invalid trade side")
	ErrInvalidPositionEffect = fmt.Errorf("invalid position effect")
	ErrInvalidFillVolume     = fmt.Errorf("fill volume must be positive")
	ErrNegativeQuantity      = fmt.Errorf("position quantities cannot be negative")
)
