package models

import (
	"fmt"
	"time"

	"github.com/zzprice/optionrisk/src/eventmodels"
	"github.com/zzprice/optionrisk/src/utils"
)

// Option is an Instrument with a strike, an expiry and the derived
// volatility and Greek state. Its chain and underlying references are set
// during registration and activation; the pricing model is bound last.
type Option struct {
	Instrument

	StrikePrice  float64                `json:"strikePrice"`
	Rank         string                 `json:"rank"`
	OptionType   eventmodels.OptionType `json:"optionType"`
	Expiry       time.Time              `json:"expiry"`
	DaysToExpiry int                    `json:"daysToExpiry"`
	TimeToExpiry float64                `json:"timeToExpiry"`
	InterestRate float64                `json:"interestRate"`

	Chain                *Chain      `json:"-"`
	Underlying           *Underlying `json:"-"`
	UnderlyingAdjustment float64     `json:"underlyingAdjustment"`

	Model PricingModel `json:"-"`

	BidImpv     float64 `json:"bidImpv"`
	AskImpv     float64 `json:"askImpv"`
	MidImpv     float64 `json:"midImpv"`
	PricingImpv float64 `json:"pricingImpv"`

	TheoPrice float64 `json:"theoPrice"`
	TheoDelta float64 `json:"theoDelta"`
	TheoGamma float64 `json:"theoGamma"`
	TheoTheta float64 `json:"theoTheta"`
	TheoVega  float64 `json:"theoVega"`

	PosValue float64 `json:"posValue"`
	PosDelta float64 `json:"posDelta"`
	PosGamma float64 `json:"posGamma"`
	PosTheta float64 `json:"posTheta"`
	PosVega  float64 `json:"posVega"`
}

func NewOption(contract *eventmodels.Contract) *Option {
	now := time.Now().UTC()

	return &Option{
		Instrument:   newInstrument(contract),
		StrikePrice:  contract.OptionStrike,
		Rank:         contract.OptionRank,
		OptionType:   contract.OptionType,
		Expiry:       contract.OptionExpiry,
		DaysToExpiry: utils.DaysToExpiry(contract.OptionExpiry, now),
		TimeToExpiry: utils.TimeToExpiry(contract.OptionExpiry, now),
	}
}

// CalculateOptionImpv solves bid and ask implied volatilities independently
// from the current quote against the adjusted underlying price. Skips while
// the option quote or the underlying mid price is missing.
func (o *Option) CalculateOptionImpv() error {
	if o.Quote == nil || o.Underlying == nil || o.Underlying.MidPrice == 0 {
		return nil
	}

	if o.Model == nil {
		return fmt.Errorf("Option.CalculateOptionImpv: %s: %w", o.VenueSymbol, ErrPricingModelNotBound)
	}

	underlyingPrice := o.Underlying.MidPrice + o.UnderlyingAdjustment
	cp := o.OptionType.Sign()

	o.AskImpv = o.Model.CalculateImpv(o.Quote.AskPrice, underlyingPrice, o.StrikePrice, o.InterestRate, o.TimeToExpiry, cp)
	o.BidImpv = o.Model.CalculateImpv(o.Quote.BidPrice, underlyingPrice, o.StrikePrice, o.InterestRate, o.TimeToExpiry, cp)
	o.MidImpv = (o.AskImpv + o.BidImpv) / 2
	o.PricingImpv = o.MidImpv

	return nil
}

// CalculateTheoGreeks refreshes the theoretical price and the
// multiplier-scaled Greeks. Skips while the underlying mid price or the
// pricing implied volatility is unavailable.
func (o *Option) CalculateTheoGreeks() error {
	if o.Underlying == nil || o.Underlying.MidPrice == 0 || o.PricingImpv == 0 {
		return nil
	}

	if o.Model == nil {
		return fmt.Errorf("Option.CalculateTheoGreeks: %s: %w", o.VenueSymbol, ErrPricingModelNotBound)
	}

	underlyingPrice := o.Underlying.MidPrice + o.UnderlyingAdjustment

	price, delta, gamma, theta, vega := o.Model.CalculateGreeks(underlyingPrice, o.StrikePrice, o.InterestRate, o.TimeToExpiry, o.PricingImpv, o.OptionType.Sign())

	o.TheoPrice = price
	o.TheoDelta = delta * o.Multiplier
	o.TheoGamma = gamma * o.Multiplier
	o.TheoTheta = theta * o.Multiplier
	o.TheoVega = vega * o.Multiplier

	return nil
}

// CalculatePosGreeks scales the theoretical Greeks by the net position. The
// Greeks already carry the contract multiplier; value picks it up here.
func (o *Option) CalculatePosGreeks() {
	o.PosValue = o.TheoPrice * o.Multiplier * o.NetPos
	o.PosDelta = o.TheoDelta * o.NetPos
	o.PosGamma = o.TheoGamma * o.NetPos
	o.PosTheta = o.TheoTheta * o.NetPos
	o.PosVega = o.TheoVega * o.NetPos
}

// UpdateQuote refreshes implied volatilities but not theoretical Greeks:
// those move with the underlying price, not the option's own quote, and are
// refreshed by ReceiveUnderlyingPrice.
func (o *Option) UpdateQuote(quote *eventmodels.QuoteTick) error {
	o.Instrument.UpdateQuote(quote)

	return o.CalculateOptionImpv()
}

func (o *Option) UpdateFill(fill *eventmodels.Fill) {
	o.Instrument.UpdateFill(fill)
	o.CalculatePosGreeks()
}

// ReceiveUnderlyingPrice stores the chain's current synthetic adjustment and
// re-runs the implied volatility, theoretical Greek and position Greek
// recomputes in that order. This is the sole path that refreshes
// theoretical Greeks.
func (o *Option) ReceiveUnderlyingPrice(adjustment float64) error {
	o.UnderlyingAdjustment = adjustment

	if err := o.CalculateOptionImpv(); err != nil {
		return err
	}

	if err := o.CalculateTheoGreeks(); err != nil {
		return err
	}

	o.CalculatePosGreeks()

	return nil
}

func (o *Option) SetChain(chain *Chain) {
	o.Chain = chain
}

func (o *Option) SetUnderlying(underlying *Underlying) {
	o.Underlying = underlying
}

func (o *Option) SetInterestRate(rate float64) {
	o.InterestRate = rate
}

func (o *Option) SetPricingModel(model PricingModel) {
	o.Model = model
}
