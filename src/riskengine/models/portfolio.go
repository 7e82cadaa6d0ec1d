package models

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/zzprice/optionrisk/src/eventmodels"
)

// Portfolio is the aggregation root and sole owner of its instruments. It
// keeps two registries per kind: a master registry holding everything ever
// registered, and an active registry holding the subset promoted once its
// underlying became known. Only active instruments receive market events.
type Portfolio struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`

	PositionAggregates

	Options     map[eventmodels.InstrumentSymbol]*Option     `json:"-"`
	Chains      map[string]*Chain                            `json:"-"`
	Underlyings map[eventmodels.InstrumentSymbol]*Underlying `json:"-"`

	masterOptions map[eventmodels.InstrumentSymbol]*Option
	masterChains  map[string]*Chain
}

func NewPortfolio(name string) *Portfolio {
	return &Portfolio{
		ID:            uuid.New(),
		Name:          name,
		Options:       make(map[eventmodels.InstrumentSymbol]*Option),
		Chains:        make(map[string]*Chain),
		Underlyings:   make(map[eventmodels.InstrumentSymbol]*Underlying),
		masterOptions: make(map[eventmodels.InstrumentSymbol]*Option),
		masterChains:  make(map[string]*Chain),
	}
}

// GetChain returns the master chain for the symbol, creating and wiring it
// on first reference.
func (p *Portfolio) GetChain(chainSymbol string) *Chain {
	chain, found := p.masterChains[chainSymbol]
	if !found {
		chain = NewChain(chainSymbol)
		chain.SetPortfolio(p)
		p.masterChains[chainSymbol] = chain
	}

	return chain
}

// AddOption registers an option contract into the master registries and
// buckets it into its lazily-created master chain. The option receives no
// market events until its chain is activated.
func (p *Portfolio) AddOption(contract *eventmodels.Contract) (*Option, error) {
	if err := contract.Validate(); err != nil {
		return nil, fmt.Errorf("Portfolio.AddOption: %s: %w", contract.Symbol, err)
	}

	if !contract.IsOption() {
		return nil, fmt.Errorf("Portfolio.AddOption: %s: %w", contract.Symbol, ErrNotAnOption)
	}

	option := NewOption(contract)
	option.SetPortfolio(p)

	p.masterOptions[option.VenueSymbol] = option

	chain := p.GetChain(contract.ChainSymbol())
	chain.AddOption(option)

	return option, nil
}

// ActivateChain links a chain to its underlying, creating the Underlying on
// first reference, and promotes the chain and all its options into the
// active registries. Idempotent: re-activation re-links the same objects.
func (p *Portfolio) ActivateChain(chainSymbol string, underlyingContract *eventmodels.Contract) (*Underlying, error) {
	if err := underlyingContract.Validate(); err != nil {
		return nil, fmt.Errorf("Portfolio.ActivateChain: %s: %w", chainSymbol, err)
	}

	underlyingSymbol := underlyingContract.InstrumentSymbol()

	underlying, found := p.Underlyings[underlyingSymbol]
	if !found {
		underlying = NewUnderlying(underlyingContract)
		underlying.SetPortfolio(p)
		p.Underlyings[underlyingSymbol] = underlying
	}

	chain := p.GetChain(chainSymbol)
	chain.SetUnderlying(underlying)

	p.Chains[chainSymbol] = chain

	for _, option := range chain.Options {
		p.Options[option.VenueSymbol] = option
	}

	return underlying, nil
}

// UpdateQuote routes a quote to the owning active instrument and refreshes
// the portfolio aggregates. Unknown symbols are routing misses, not errors:
// universes load incrementally and a chain may see events before it
// activates.
func (p *Portfolio) UpdateQuote(quote *eventmodels.QuoteTick) error {
	if option, found := p.Options[quote.Symbol]; found {
		if err := option.Chain.UpdateQuote(quote); err != nil {
			return err
		}

		p.CalculatePosGreeks()

		return nil
	}

	if underlying, found := p.Underlyings[quote.Symbol]; found {
		if err := underlying.UpdateQuote(quote); err != nil {
			return err
		}

		p.CalculatePosGreeks()

		return nil
	}

	return nil
}

// UpdateFill routes a fill the same way UpdateQuote routes quotes.
func (p *Portfolio) UpdateFill(fill *eventmodels.Fill) error {
	if option, found := p.Options[fill.Symbol]; found {
		if err := option.Chain.UpdateFill(fill); err != nil {
			return err
		}

		p.CalculatePosGreeks()

		return nil
	}

	if underlying, found := p.Underlyings[fill.Symbol]; found {
		underlying.UpdateFill(fill)
		p.CalculatePosGreeks()

		return nil
	}

	return nil
}

// SetPositionSnapshot overwrites an active instrument's gross position from
// a reconciliation snapshot, rescales its position Greeks against the
// already-current theoretical Greeks, and re-aggregates so chain and
// portfolio sums stay consistent with their members.
func (p *Portfolio) SetPositionSnapshot(snapshot *eventmodels.PositionSnapshot) {
	if option, found := p.Options[snapshot.Symbol]; found {
		option.SetPositionSnapshot(snapshot)
		option.CalculatePosGreeks()
		option.Chain.CalculatePosGreeks()
		p.CalculatePosGreeks()

		return
	}

	if underlying, found := p.Underlyings[snapshot.Symbol]; found {
		underlying.SetPositionSnapshot(snapshot)
		underlying.CalculatePosGreeks()
		p.CalculatePosGreeks()
	}
}

// CalculatePosGreeks rebuilds the portfolio aggregates from the active
// chains and adds each underlying's delta contribution on top. Underlyings
// carry delta exposure independent of any chain; their other figures do not
// enter the portfolio sums.
func (p *Portfolio) CalculatePosGreeks() {
	p.Reset()

	for _, underlying := range p.Underlyings {
		p.PosDelta += underlying.PosDelta
	}

	for _, chain := range p.Chains {
		p.Accumulate(&chain.PositionAggregates)
	}

	p.CalculateNetPos()
}

func (p *Portfolio) SetInterestRate(rate float64) {
	for _, chain := range p.Chains {
		chain.SetInterestRate(rate)
	}
}

func (p *Portfolio) SetPricingModel(model PricingModel) {
	for _, chain := range p.Chains {
		chain.SetPricingModel(model)
	}
}

// CalculateAtmPrice refreshes the at-the-money selection on every active
// chain. Callers drive this on a periodic cadence rather than per tick:
// the selection moves slowly relative to quote frequency.
func (p *Portfolio) CalculateAtmPrice() {
	for _, chain := range p.Chains {
		chain.CalculateAtmPrice()
	}
}

func (p *Portfolio) MasterOption(symbol eventmodels.InstrumentSymbol) (*Option, bool) {
	option, found := p.masterOptions[symbol]

	return option, found
}

func (p *Portfolio) MasterChain(chainSymbol string) (*Chain, bool) {
	chain, found := p.masterChains[chainSymbol]

	return chain, found
}

func (p *Portfolio) MasterOptionCount() int {
	return len(p.masterOptions)
}

func (p *Portfolio) MasterChainCount() int {
	return len(p.masterChains)
}
