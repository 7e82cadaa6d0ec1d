package models

import (
	"github.com/zzprice/optionrisk/src/eventmodels"
)

// Underlying is an Instrument that carries option chains. Its delta is a
// simplified dollar proxy rather than a modelled Greek: multiplier times
// mid price over 100.
type Underlying struct {
	Instrument

	TheoDelta float64 `json:"theoDelta"`
	PosDelta  float64 `json:"posDelta"`

	Chains map[string]*Chain `json:"-"`
}

func NewUnderlying(contract *eventmodels.Contract) *Underlying {
	return &Underlying{
		Instrument: newInstrument(contract),
		Chains:     make(map[string]*Chain),
	}
}

func (u *Underlying) AddChain(chain *Chain) {
	u.Chains[chain.ChainSymbol] = chain
}

// UpdateQuote refreshes the proxy delta, fans the new price out to every
// member chain, then rescales its own position delta.
func (u *Underlying) UpdateQuote(quote *eventmodels.QuoteTick) error {
	u.Instrument.UpdateQuote(quote)
	u.TheoDelta = u.Multiplier * u.MidPrice / 100

	for _, chain := range u.Chains {
		if err := chain.UpdateUnderlyingQuote(); err != nil {
			return err
		}
	}

	u.CalculatePosGreeks()

	return nil
}

func (u *Underlying) UpdateFill(fill *eventmodels.Fill) {
	u.Instrument.UpdateFill(fill)
	u.CalculatePosGreeks()
}

func (u *Underlying) CalculatePosGreeks() {
	u.PosDelta = u.TheoDelta * u.NetPos
}
