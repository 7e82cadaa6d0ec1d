package models

import (
	"fmt"
	"math"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/zzprice/optionrisk/src/eventmodels"
)

// Chain groups the options sharing one underlying root and expiry. Calls
// and puts are laddered by rank so the two legs at a strike can be paired
// for put-call parity.
type Chain struct {
	ChainSymbol string `json:"chainSymbol"`

	PositionAggregates

	Underlying *Underlying `json:"-"`
	Portfolio  *Portfolio  `json:"-"`

	Options map[eventmodels.InstrumentSymbol]*Option `json:"-"`
	Calls   map[string]*Option                       `json:"-"`
	Puts    map[string]*Option                       `json:"-"`

	Ranks []string `json:"ranks"`

	AtmPrice             float64 `json:"atmPrice"`
	AtmRank              string  `json:"atmRank"`
	UnderlyingAdjustment float64 `json:"underlyingAdjustment"`
	DaysToExpiry         int     `json:"daysToExpiry"`
}

func NewChain(chainSymbol string) *Chain {
	return &Chain{
		ChainSymbol: chainSymbol,
		Options:     make(map[eventmodels.InstrumentSymbol]*Option),
		Calls:       make(map[string]*Option),
		Puts:        make(map[string]*Option),
	}
}

// AddOption inserts the option into the full set and the call or put ladder
// keyed by rank. Options of one chain are assumed to share an expiry; a
// mismatch is logged and the latest value wins.
func (c *Chain) AddOption(option *Option) {
	c.Options[option.VenueSymbol] = option

	if option.OptionType == eventmodels.Call {
		c.Calls[option.Rank] = option
	} else {
		c.Puts[option.Rank] = option
	}

	option.SetChain(c)

	found := false
	for _, rank := range c.Ranks {
		if rank == option.Rank {
			found = true
			break
		}
	}

	if !found {
		c.Ranks = append(c.Ranks, option.Rank)
		sort.Strings(c.Ranks)
	}

	if len(c.Options) > 1 && c.DaysToExpiry != option.DaysToExpiry {
		log.Warnf("Chain.AddOption: %s expires in %d days, chain %s previously recorded %d", option.VenueSymbol, option.DaysToExpiry, c.ChainSymbol, c.DaysToExpiry)
	}

	c.DaysToExpiry = option.DaysToExpiry
}

func (c *Chain) UpdateQuote(quote *eventmodels.QuoteTick) error {
	option, found := c.Options[quote.Symbol]
	if !found {
		return fmt.Errorf("Chain.UpdateQuote: %s: %w", quote.Symbol, ErrOptionNotFound)
	}

	return option.UpdateQuote(quote)
}

// UpdateFill keeps the aggregates current without an O(chain) rescan:
// remove the option's old contribution, apply the fill, re-add the new one.
func (c *Chain) UpdateFill(fill *eventmodels.Fill) error {
	option, found := c.Options[fill.Symbol]
	if !found {
		return fmt.Errorf("Chain.UpdateFill: %s: %w", fill.Symbol, ErrOptionNotFound)
	}

	c.Subtract(option)
	option.UpdateFill(fill)
	c.Add(option)
	c.CalculateNetPos()

	return nil
}

// UpdateUnderlyingQuote pushes the current adjustment into every member
// option and then rebuilds the aggregates from scratch, since every
// option's contribution changed at once.
func (c *Chain) UpdateUnderlyingQuote() error {
	for _, option := range c.Options {
		if err := option.ReceiveUnderlyingPrice(c.UnderlyingAdjustment); err != nil {
			return err
		}
	}

	c.CalculatePosGreeks()

	return nil
}

func (c *Chain) CalculatePosGreeks() {
	c.Reset()

	for _, option := range c.Options {
		c.Add(option)
	}

	c.CalculateNetPos()
}

// CalculateAtmPrice picks the call strike nearest the underlying mid price
// and records it with its rank. The first minimal distance in ascending
// rank order wins; later equal distances do not replace it. Stale state is
// retained when the underlying has no mid price or the chain has no calls.
func (c *Chain) CalculateAtmPrice() {
	if c.Underlying == nil || c.Underlying.MidPrice == 0 || len(c.Calls) == 0 {
		return
	}

	underlyingPrice := c.Underlying.MidPrice

	atmFound := false
	atmDistance := 0.0
	atmPrice := 0.0
	atmRank := ""

	for _, rank := range c.Ranks {
		call, found := c.Calls[rank]
		if !found {
			continue
		}

		distance := math.Abs(underlyingPrice - call.StrikePrice)
		if !atmFound || distance < atmDistance {
			atmFound = true
			atmDistance = distance
			atmPrice = call.StrikePrice
			atmRank = rank
		}
	}

	if !atmFound {
		return
	}

	c.AtmPrice = atmPrice
	c.AtmRank = atmRank
}

// CalculateUnderlyingAdjustment backs a synthetic forward out of the
// at-the-money call/put pair via put-call parity and stores its difference
// to the underlying's own mid price. Every member option applies that
// adjustment before solving volatilities and Greeks, compensating for a
// stale or mismatched underlying quote.
func (c *Chain) CalculateUnderlyingAdjustment() {
	if c.Underlying == nil || c.Underlying.MidPrice == 0 || c.AtmPrice == 0 {
		return
	}

	atmCall, foundCall := c.Calls[c.AtmRank]
	atmPut, foundPut := c.Puts[c.AtmRank]
	if !foundCall || !foundPut {
		return
	}

	if atmCall.MidPrice == 0 || atmPut.MidPrice == 0 {
		return
	}

	syntheticPrice := atmCall.MidPrice - atmPut.MidPrice + c.AtmPrice

	c.UnderlyingAdjustment = syntheticPrice - c.Underlying.MidPrice
}

func (c *Chain) SetUnderlying(underlying *Underlying) {
	underlying.AddChain(c)
	c.Underlying = underlying

	for _, option := range c.Options {
		option.SetUnderlying(underlying)
	}
}

func (c *Chain) SetInterestRate(rate float64) {
	for _, option := range c.Options {
		option.SetInterestRate(rate)
	}
}

func (c *Chain) SetPricingModel(model PricingModel) {
	for _, option := range c.Options {
		option.SetPricingModel(model)
	}
}

func (c *Chain) SetPortfolio(portfolio *Portfolio) {
	c.Portfolio = portfolio

	for _, option := range c.Options {
		option.SetPortfolio(portfolio)
	}
}
