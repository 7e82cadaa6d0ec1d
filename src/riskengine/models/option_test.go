package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zzprice/optionrisk/src/eventmodels"
)

func TestNewOption(t *testing.T) {
	contract := newTestOptionContract("IO2104-C-4000", 100, eventmodels.Call, rankForStrike(100))
	option := NewOption(contract)

	require.Equal(t, 100.0, option.StrikePrice)
	require.Equal(t, rankForStrike(100), option.Rank)
	require.Equal(t, eventmodels.Call, option.OptionType)
	require.Equal(t, 100.0, option.Multiplier)
	require.Greater(t, option.DaysToExpiry, 0)
	require.Greater(t, option.TimeToExpiry, 0.0)
}

func TestOptionCalculateImpv(t *testing.T) {
	now := time.Date(2021, 4, 12, 9, 30, 0, 0, time.UTC)

	t.Run("skips without an option quote", func(t *testing.T) {
		option, _, mock := newWiredOption(100)

		require.NoError(t, option.CalculateOptionImpv())
		require.Equal(t, 0, mock.ImpvCalls)
		require.Equal(t, 0.0, option.MidImpv)
	})

	t.Run("skips without an underlying mid price", func(t *testing.T) {
		option, _, mock := newWiredOption(0)

		err := option.UpdateQuote(eventmodels.NewQuoteTick(option.VenueSymbol, 4, 6, now))

		require.NoError(t, err)
		require.Equal(t, 0, mock.ImpvCalls)
		require.Equal(t, 0.0, option.MidImpv)
		require.InDelta(t, 5.0, option.MidPrice, 1e-9)
	})

	t.Run("solves ask and bid independently and averages the mid", func(t *testing.T) {
		option, _, mock := newWiredOption(100)
		mock.ImpvFn = func(optionPrice float64) float64 { return optionPrice / 20 }

		err := option.UpdateQuote(eventmodels.NewQuoteTick(option.VenueSymbol, 4, 6, now))

		require.NoError(t, err)
		require.Equal(t, 2, mock.ImpvCalls)
		require.InDelta(t, 0.3, option.AskImpv, 1e-9)
		require.InDelta(t, 0.2, option.BidImpv, 1e-9)
		require.InDelta(t, 0.25, option.MidImpv, 1e-9)
		require.InDelta(t, 0.25, option.PricingImpv, 1e-9)
	})

	t.Run("solves against the adjusted underlying price", func(t *testing.T) {
		option, _, mock := newWiredOption(100)

		require.NoError(t, option.UpdateQuote(eventmodels.NewQuoteTick(option.VenueSymbol, 4, 6, now)))
		require.NoError(t, option.ReceiveUnderlyingPrice(2.5))

		require.InDelta(t, 102.5, mock.LastImpvUnderlying, 1e-9)
		require.InDelta(t, 102.5, mock.LastGreeksUnderlying, 1e-9)
	})

	t.Run("errors when no pricing model is bound", func(t *testing.T) {
		option, _, _ := newWiredOption(100)
		option.SetPricingModel(nil)

		err := option.UpdateQuote(eventmodels.NewQuoteTick(option.VenueSymbol, 4, 6, now))

		require.ErrorIs(t, err, ErrPricingModelNotBound)
	})
}

func TestOptionTheoGreeks(t *testing.T) {
	now := time.Date(2021, 4, 12, 9, 30, 0, 0, time.UTC)

	t.Run("scales greeks by the multiplier but not the price", func(t *testing.T) {
		option, _, _ := newWiredOption(100)

		require.NoError(t, option.UpdateQuote(eventmodels.NewQuoteTick(option.VenueSymbol, 4, 6, now)))
		require.NoError(t, option.ReceiveUnderlyingPrice(0))

		require.InDelta(t, 5.0, option.TheoPrice, 1e-9)
		require.InDelta(t, 50.0, option.TheoDelta, 1e-9)
		require.InDelta(t, 10.0, option.TheoGamma, 1e-9)
		require.InDelta(t, -5.0, option.TheoTheta, 1e-9)
		require.InDelta(t, 20.0, option.TheoVega, 1e-9)
	})

	t.Run("skips while no pricing impv has been solved", func(t *testing.T) {
		option, _, mock := newWiredOption(100)

		require.NoError(t, option.ReceiveUnderlyingPrice(0))

		require.Equal(t, 0, mock.GreeksCalls)
		require.Equal(t, 0.0, option.TheoDelta)
	})

	t.Run("own quote updates do not refresh theo greeks", func(t *testing.T) {
		option, _, mock := newWiredOption(100)

		require.NoError(t, option.UpdateQuote(eventmodels.NewQuoteTick(option.VenueSymbol, 4, 6, now)))
		require.NoError(t, option.ReceiveUnderlyingPrice(0))
		require.Equal(t, 1, mock.GreeksCalls)

		mock.Delta = 0.9
		require.NoError(t, option.UpdateQuote(eventmodels.NewQuoteTick(option.VenueSymbol, 4.2, 6.2, now.Add(time.Second))))

		require.Equal(t, 1, mock.GreeksCalls)
		require.InDelta(t, 50.0, option.TheoDelta, 1e-9)
	})
}

func TestOptionPosGreeks(t *testing.T) {
	now := time.Date(2021, 4, 12, 9, 30, 0, 0, time.UTC)

	t.Run("scales theo greeks by the net position", func(t *testing.T) {
		option, _, _ := newWiredOption(100)

		require.NoError(t, option.UpdateQuote(eventmodels.NewQuoteTick(option.VenueSymbol, 4, 6, now)))
		require.NoError(t, option.ReceiveUnderlyingPrice(0))

		option.UpdateFill(eventmodels.NewFill(option.VenueSymbol, eventmodels.TradeSideBuy, eventmodels.PositionEffectOpen, 5.0, 2, now))

		require.Equal(t, 2.0, option.NetPos)
		require.InDelta(t, 1000.0, option.PosValue, 1e-9)
		require.InDelta(t, 100.0, option.PosDelta, 1e-9)
		require.InDelta(t, 20.0, option.PosGamma, 1e-9)
		require.InDelta(t, -10.0, option.PosTheta, 1e-9)
		require.InDelta(t, 40.0, option.PosVega, 1e-9)
	})

	t.Run("a short net position flips the sign", func(t *testing.T) {
		option, _, _ := newWiredOption(100)

		require.NoError(t, option.UpdateQuote(eventmodels.NewQuoteTick(option.VenueSymbol, 4, 6, now)))
		require.NoError(t, option.ReceiveUnderlyingPrice(0))

		option.UpdateFill(eventmodels.NewFill(option.VenueSymbol, eventmodels.TradeSideSell, eventmodels.PositionEffectOpen, 5.0, 3, now))

		require.Equal(t, -3.0, option.NetPos)
		require.InDelta(t, -1500.0, option.PosValue, 1e-9)
		require.InDelta(t, -150.0, option.PosDelta, 1e-9)
	})
}
