package models

import (
	"github.com/zzprice/optionrisk/src/eventmodels"
)

// Instrument carries the quote and position bookkeeping shared by options
// and underlyings. Mid price zero means no quote has arrived yet.
type Instrument struct {
	Symbol      string                       `json:"symbol"`
	Exchange    eventmodels.Exchange         `json:"exchange"`
	VenueSymbol eventmodels.InstrumentSymbol `json:"venueSymbol"`

	TickSize   float64 `json:"tickSize"`
	MinVolume  float64 `json:"minVolume"`
	Multiplier float64 `json:"multiplier"`

	LongPos  float64 `json:"longPos"`
	ShortPos float64 `json:"shortPos"`
	NetPos   float64 `json:"netPos"`

	MidPrice float64                `json:"midPrice"`
	Quote    *eventmodels.QuoteTick `json:"quote,omitempty"`

	Portfolio *Portfolio `json:"-"`
}

func newInstrument(contract *eventmodels.Contract) Instrument {
	return Instrument{
		Symbol:      contract.Symbol,
		Exchange:    contract.Exchange,
		VenueSymbol: contract.InstrumentSymbol(),
		TickSize:    contract.TickSize,
		MinVolume:   contract.MinVolume,
		Multiplier:  contract.Multiplier,
	}
}

func (i *Instrument) CalculateNetPos() {
	i.NetPos = i.LongPos - i.ShortPos
}

// UpdateQuote replaces the stored snapshot and refreshes the mid price.
// Malformed quotes are dropped and prior state retained.
func (i *Instrument) UpdateQuote(quote *eventmodels.QuoteTick) {
	if quote == nil || quote.Validate() != nil {
		return
	}

	i.Quote = quote
	i.MidPrice = quote.MidPrice()
}

// UpdateFill applies the open/close-by-direction rule: a buy opens long or
// unwinds short, a sell opens short or unwinds long.
func (i *Instrument) UpdateFill(fill *eventmodels.Fill) {
	if fill == nil || fill.Validate() != nil {
		return
	}

	switch {
	case fill.Side == eventmodels.TradeSideBuy && fill.Effect == eventmodels.PositionEffectOpen:
		i.LongPos += fill.Volume
	case fill.Side == eventmodels.TradeSideBuy && fill.Effect == eventmodels.PositionEffectClose:
		i.ShortPos -= fill.Volume
	case fill.Side == eventmodels.TradeSideSell && fill.Effect == eventmodels.PositionEffectOpen:
		i.ShortPos += fill.Volume
	case fill.Side == eventmodels.TradeSideSell && fill.Effect == eventmodels.PositionEffectClose:
		i.LongPos -= fill.Volume
	}

	i.CalculateNetPos()
}

// SetPositionSnapshot overwrites the gross position from a reconciliation
// source, bypassing fill deltas.
func (i *Instrument) SetPositionSnapshot(snapshot *eventmodels.PositionSnapshot) {
	if snapshot == nil || snapshot.Validate() != nil {
		return
	}

	i.LongPos = snapshot.LongQty
	i.ShortPos = snapshot.ShortQty
	i.CalculateNetPos()
}

func (i *Instrument) SetPortfolio(portfolio *Portfolio) {
	i.Portfolio = portfolio
}
