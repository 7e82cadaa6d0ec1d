package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zzprice/optionrisk/src/eventmodels"
)

func requireAggregatesEqual(t *testing.T, want, got PositionAggregates) {
	t.Helper()

	require.InDelta(t, want.LongPos, got.LongPos, 1e-9)
	require.InDelta(t, want.ShortPos, got.ShortPos, 1e-9)
	require.InDelta(t, want.NetPos, got.NetPos, 1e-9)
	require.InDelta(t, want.PosValue, got.PosValue, 1e-9)
	require.InDelta(t, want.PosDelta, got.PosDelta, 1e-9)
	require.InDelta(t, want.PosGamma, got.PosGamma, 1e-9)
	require.InDelta(t, want.PosTheta, got.PosTheta, 1e-9)
	require.InDelta(t, want.PosVega, got.PosVega, 1e-9)
}

// rescanAggregates recomputes chain sums from scratch, for comparison against
// the incrementally maintained ones.
func rescanAggregates(chain *Chain) PositionAggregates {
	var out PositionAggregates
	for _, option := range chain.Options {
		out.Add(option)
	}
	out.CalculateNetPos()

	return out
}

func newTestOptionContract(symbol string, strike float64, optionType eventmodels.OptionType, rank string) *eventmodels.Contract {
	return &eventmodels.Contract{
		Symbol:           symbol,
		Exchange:         "CFFEX",
		Product:          eventmodels.ProductOption,
		TickSize:         0.2,
		MinVolume:        1,
		Multiplier:       100,
		OptionStrike:     strike,
		OptionRank:       rank,
		OptionType:       optionType,
		OptionExpiry:     time.Now().UTC().AddDate(0, 1, 0),
		OptionUnderlying: "IO2104",
	}
}

func newTestUnderlyingContract(symbol string) *eventmodels.Contract {
	return &eventmodels.Contract{
		Symbol:     symbol,
		Exchange:   "CFFEX",
		Product:    eventmodels.ProductUnderlying,
		TickSize:   0.2,
		MinVolume:  1,
		Multiplier: 300,
	}
}

// newTestChain builds an activated chain with paired calls and puts at the
// given strikes, a quoted underlying and a bound mock model.
func newTestChain(strikes []float64, underlyingMid float64) (*Portfolio, *Chain, *Underlying, *MockPricingModel) {
	portfolio := NewPortfolio("test-book")

	var chainSymbol string
	for i, strike := range strikes {
		rank := rankForStrike(strike)
		call := newTestOptionContract(callSymbol(i), strike, eventmodels.Call, rank)
		put := newTestOptionContract(putSymbol(i), strike, eventmodels.Put, rank)
		chainSymbol = call.ChainSymbol()

		if _, err := portfolio.AddOption(call); err != nil {
			panic(err)
		}

		if _, err := portfolio.AddOption(put); err != nil {
			panic(err)
		}
	}

	underlying, err := portfolio.ActivateChain(chainSymbol, newTestUnderlyingContract("IO2104"))
	if err != nil {
		panic(err)
	}

	mock := NewMockPricingModel()
	portfolio.SetPricingModel(mock)
	portfolio.SetInterestRate(0.03)

	chain := portfolio.Chains[chainSymbol]

	if underlyingMid > 0 {
		quote := eventmodels.NewQuoteTick(underlying.VenueSymbol, underlyingMid, underlyingMid, time.Now().UTC())
		if err := underlying.UpdateQuote(quote); err != nil {
			panic(err)
		}
	}

	return portfolio, chain, underlying, mock
}

// newWiredOption wires a single option to an underlying and a mock model
// without going through a chain, for tests that target option math directly.
func newWiredOption(underlyingMid float64) (*Option, *Underlying, *MockPricingModel) {
	option := NewOption(newTestOptionContract("IO2104-C-4000", 100, eventmodels.Call, rankForStrike(100)))
	underlying := NewUnderlying(newTestUnderlyingContract("IO2104"))
	option.SetUnderlying(underlying)

	mock := NewMockPricingModel()
	option.SetPricingModel(mock)

	if underlyingMid > 0 {
		quote := eventmodels.NewQuoteTick(underlying.VenueSymbol, underlyingMid, underlyingMid, time.Now().UTC())
		if err := underlying.UpdateQuote(quote); err != nil {
			panic(err)
		}
	}

	return option, underlying, mock
}

func rankForStrike(strike float64) string {
	return fmt.Sprintf("%08d", int(strike*1000))
}

func callSymbol(i int) string {
	return fmt.Sprintf("IO2104-C-%d", i)
}

func putSymbol(i int) string {
	return fmt.Sprintf("IO2104-P-%d", i)
}
