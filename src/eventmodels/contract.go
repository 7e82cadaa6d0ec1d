package eventmodels

import (
	"fmt"
	"time"
)

type Product string

const (
	ProductOption     Product = "option"
	ProductUnderlying Product = "underlying"
)

// Contract carries the static terms of a listed instrument as delivered by
// reference data. The option fields are zero for non-option products.
type Contract struct {
	Symbol     string   `json:"symbol"`
	Exchange   Exchange `json:"exchange"`
	Product    Product  `json:"product"`
	TickSize   float64  `json:"tickSize"`
	MinVolume  float64  `json:"minVolume"`
	Multiplier float64  `json:"multiplier"`

	OptionStrike     float64    `json:"optionStrike,omitempty"`
	OptionRank       string     `json:"optionRank,omitempty"`
	OptionType       OptionType `json:"optionType,omitempty"`
	OptionExpiry     time.Time  `json:"optionExpiry,omitempty"`
	OptionUnderlying string     `json:"optionUnderlying,omitempty"`
}

func (c *Contract) InstrumentSymbol() InstrumentSymbol {
	return NewInstrumentSymbol(c.Symbol, c.Exchange)
}

// ChainSymbol is the grouping key an option joins on registration: the
// underlying root plus the venue, e.g. "IO2104.CFFEX".
func (c *Contract) ChainSymbol() string {
	return fmt.Sprintf("%s.%s", c.OptionUnderlying, c.Exchange)
}

func (c *Contract) IsOption() bool {
	return c.Product == ProductOption
}

func (c *Contract) Validate() error {
	if c.Symbol == "" {
		return ErrSymbolNotSet
	}

	if c.Exchange == "" {
		return ErrExchangeNotSet
	}

	if c.Multiplier <= 0 {
		return ErrInvalidMultiplier
	}

	if c.Product == ProductOption {
		if err := c.OptionType.Validate(); err != nil {
			return err
		}

		if c.OptionStrike <= 0 {
			return ErrInvalidStrike
		}

		if c.OptionUnderlying == "" {
			return ErrUnderlyingNotSet
		}

		if c.OptionExpiry.IsZero() {
			return ErrExpiryNotSet
		}
	}

	return nil
}
