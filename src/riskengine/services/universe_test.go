package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zzprice/optionrisk/src/eventmodels"
	pubsub "github.com/zzprice/optionrisk/src/eventpubsub"
	"github.com/zzprice/optionrisk/src/riskengine/models"
)

func TestLoadUniverse(t *testing.T) {
	t.Run("registers every valid contract", func(t *testing.T) {
		pubsub.Init()

		portfolio := models.NewPortfolio("test-book")
		svc := NewRiskService(&sync.WaitGroup{}, portfolio, time.Hour)

		contracts := testContracts()
		require.Equal(t, len(contracts), svc.LoadUniverse(contracts))
		require.Equal(t, len(contracts), portfolio.MasterOptionCount())
		require.Equal(t, 1, portfolio.MasterChainCount())
		require.Empty(t, portfolio.Options)
	})

	t.Run("skips bad contracts and loads the rest", func(t *testing.T) {
		pubsub.Init()

		portfolio := models.NewPortfolio("test-book")
		svc := NewRiskService(&sync.WaitGroup{}, portfolio, time.Hour)

		bad := testOptionContract(110, eventmodels.Call)
		bad.Multiplier = 0

		contracts := append(testContracts(), bad)
		require.Equal(t, len(contracts)-1, svc.LoadUniverse(contracts))
		require.Equal(t, len(contracts)-1, portfolio.MasterOptionCount())
	})
}

func TestActivate(t *testing.T) {
	t.Run("binds the model and rate to every option in the chain", func(t *testing.T) {
		pubsub.Init()

		portfolio := models.NewPortfolio("test-book")
		svc := NewRiskService(&sync.WaitGroup{}, portfolio, time.Hour)
		svc.LoadUniverse(testContracts())

		mock := models.NewMockPricingModel()
		underlying, err := svc.Activate(testChainSymbol, testUnderlyingContract(), mock, 0.04)
		require.NoError(t, err)
		require.Equal(t, underlyingSymbol(), underlying.VenueSymbol)

		require.Len(t, portfolio.Options, len(testContracts()))
		for _, option := range portfolio.Options {
			require.Equal(t, mock, option.Model)
			require.InDelta(t, 0.04, option.InterestRate, 1e-9)
		}
	})

	t.Run("rejects a bad underlying contract", func(t *testing.T) {
		pubsub.Init()

		portfolio := models.NewPortfolio("test-book")
		svc := NewRiskService(&sync.WaitGroup{}, portfolio, time.Hour)
		svc.LoadUniverse(testContracts())

		bad := testUnderlyingContract()
		bad.Multiplier = -1

		_, err := svc.Activate(testChainSymbol, bad, models.NewMockPricingModel(), 0.03)
		require.Error(t, err)
	})
}

func TestActivateFromConfig(t *testing.T) {
	pubsub.Init()

	portfolio := models.NewPortfolio("test-book")
	svc := NewRiskService(&sync.WaitGroup{}, portfolio, time.Hour)
	svc.LoadUniverse(testContracts())

	config := &eventmodels.RiskConfigYAML{
		Portfolio:    "test-book",
		PricingModel: "black_scholes",
		InterestRate: 0.05,
		Chains: []eventmodels.ChainYAML{
			{
				ChainSymbol: testChainSymbol,
				Underlying: eventmodels.UnderlyingYAML{
					Symbol:     "IO2104",
					Exchange:   "CFFEX",
					TickSize:   0.2,
					MinVolume:  1,
					Multiplier: 300,
				},
			},
		},
	}

	require.NoError(t, svc.ActivateFromConfig(config, models.NewMockPricingModel()))

	require.Len(t, portfolio.Chains, 1)
	require.Len(t, portfolio.Underlyings, 1)

	for _, option := range portfolio.Options {
		require.InDelta(t, 0.05, option.InterestRate, 1e-9)
	}
}
