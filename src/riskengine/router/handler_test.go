package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/zzprice/optionrisk/src/eventmodels"
	pubsub "github.com/zzprice/optionrisk/src/eventpubsub"
	"github.com/zzprice/optionrisk/src/riskengine/models"
	"github.com/zzprice/optionrisk/src/riskengine/services"
)

const testChainSymbol = "IO2104.CFFEX"

func testOptionContract(strike float64, optionType eventmodels.OptionType) *eventmodels.Contract {
	side := "C"
	if optionType == eventmodels.Put {
		side = "P"
	}

	return &eventmodels.Contract{
		Symbol:           fmt.Sprintf("IO2104-%s-%v", side, strike),
		Exchange:         "CFFEX",
		Product:          eventmodels.ProductOption,
		TickSize:         0.2,
		MinVolume:        1,
		Multiplier:       100,
		OptionStrike:     strike,
		OptionRank:       fmt.Sprintf("%08d", int(strike*1000)),
		OptionType:       optionType,
		OptionExpiry:     time.Now().UTC().AddDate(0, 1, 0),
		OptionUnderlying: "IO2104",
	}
}

func testUnderlyingContract() *eventmodels.Contract {
	return &eventmodels.Contract{
		Symbol:     "IO2104",
		Exchange:   "CFFEX",
		Product:    eventmodels.ProductUnderlying,
		TickSize:   0.2,
		MinVolume:  1,
		Multiplier: 300,
	}
}

func callSymbol(strike float64) eventmodels.InstrumentSymbol {
	return eventmodels.NewInstrumentSymbol(fmt.Sprintf("IO2104-C-%v", strike), "CFFEX")
}

func underlyingSymbol() eventmodels.InstrumentSymbol {
	return eventmodels.NewInstrumentSymbol("IO2104", "CFFEX")
}

// newTestRouter starts a service over a quoted three-strike book and mounts
// the handlers under /risk. The teardown stops the service.
func newTestRouter(t *testing.T) (*mux.Router, func()) {
	t.Helper()

	pubsub.Init()

	portfolio := models.NewPortfolio("test-book")
	wg := &sync.WaitGroup{}
	svc := services.NewRiskService(wg, portfolio, time.Hour)

	var contracts []*eventmodels.Contract
	for _, strike := range []float64{95, 100, 105} {
		contracts = append(contracts,
			testOptionContract(strike, eventmodels.Call),
			testOptionContract(strike, eventmodels.Put),
		)
	}

	require.Equal(t, len(contracts), svc.LoadUniverse(contracts))

	_, err := svc.Activate(testChainSymbol, testUnderlyingContract(), models.NewMockPricingModel(), 0.03)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, svc.Start(ctx))

	now := time.Now().UTC()
	pubsub.Publish("test", pubsub.NewQuoteEvent, eventmodels.NewQuoteTick(underlyingSymbol(), 100, 100, now))
	pubsub.Publish("test", pubsub.NewQuoteEvent, eventmodels.NewQuoteTick(callSymbol(100), 4.0, 6.0, now))
	pubsub.Publish("test", pubsub.NewQuoteEvent, eventmodels.NewQuoteTick(underlyingSymbol(), 100, 100, now))
	pubsub.Publish("test", pubsub.NewFillEvent, eventmodels.NewFill(callSymbol(100), eventmodels.TradeSideBuy, eventmodels.PositionEffectOpen, 5.0, 2, now))

	router := mux.NewRouter()
	SetupHandler(router.PathPrefix("/risk").Subrouter(), svc)

	return router, func() {
		cancel()
		wg.Wait()
	}
}

func doRequest(t *testing.T, router *mux.Router, method string, target string) *httptest.ResponseRecorder {
	t.Helper()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(method, target, nil))

	return rr
}

func TestHandlePortfolio(t *testing.T) {
	router, teardown := newTestRouter(t)
	defer teardown()

	t.Run("returns the portfolio snapshot", func(t *testing.T) {
		rr := doRequest(t, router, "GET", "/risk/portfolio")
		require.Equal(t, 200, rr.Code)

		var portfolio eventmodels.PortfolioRiskDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &portfolio))
		require.Equal(t, "test-book", portfolio.Name)
		require.InDelta(t, 2.0, portfolio.Position.NetPos, 1e-9)
		require.Len(t, portfolio.Chains, 1)
		require.Len(t, portfolio.Underlyings, 1)
	})

	t.Run("rejects other methods", func(t *testing.T) {
		rr := doRequest(t, router, "POST", "/risk/portfolio")
		require.Equal(t, 404, rr.Code)
	})
}

func TestHandleChains(t *testing.T) {
	router, teardown := newTestRouter(t)
	defer teardown()

	rr := doRequest(t, router, "GET", "/risk/chains")
	require.Equal(t, 200, rr.Code)

	var response struct {
		Chains []*eventmodels.ChainRiskDTO `json:"chains"`
	}

	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	require.Len(t, response.Chains, 1)
	require.Equal(t, testChainSymbol, response.Chains[0].ChainSymbol)
	require.Empty(t, response.Chains[0].Options)
}

func TestHandleChain(t *testing.T) {
	router, teardown := newTestRouter(t)
	defer teardown()

	t.Run("returns the chain with its options", func(t *testing.T) {
		rr := doRequest(t, router, "GET", "/risk/chains/IO2104.CFFEX")
		require.Equal(t, 200, rr.Code)

		var chain eventmodels.ChainRiskDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &chain))
		require.Equal(t, testChainSymbol, chain.ChainSymbol)
		require.Len(t, chain.Options, 6)
	})

	t.Run("unknown chain is not found", func(t *testing.T) {
		rr := doRequest(t, router, "GET", "/risk/chains/ZZ9999.CFFEX")
		require.Equal(t, 404, rr.Code)
	})
}

func TestHandleOption(t *testing.T) {
	router, teardown := newTestRouter(t)
	defer teardown()

	t.Run("returns the option risk row", func(t *testing.T) {
		rr := doRequest(t, router, "GET", "/risk/options/IO2104-C-100.CFFEX")
		require.Equal(t, 200, rr.Code)

		var option eventmodels.OptionRiskDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &option))
		require.Equal(t, callSymbol(100), option.Symbol)
		require.InDelta(t, 5.0, option.MidPrice, 1e-9)
		require.InDelta(t, 2.0, option.Position.NetPos, 1e-9)
	})

	t.Run("unknown option is not found", func(t *testing.T) {
		rr := doRequest(t, router, "GET", "/risk/options/UNKNOWN.CFFEX")
		require.Equal(t, 404, rr.Code)
	})
}

func TestHandleIVStats(t *testing.T) {
	router, teardown := newTestRouter(t)
	defer teardown()

	t.Run("summarizes the chain's solved impvs", func(t *testing.T) {
		rr := doRequest(t, router, "GET", "/risk/iv?symbol=IO2104.CFFEX")
		require.Equal(t, 200, rr.Code)

		var summary eventmodels.ChainIVStatsDTO
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
		require.Equal(t, 1, summary.Count)
		require.InDelta(t, 0.25, summary.Mean, 1e-9)
	})

	t.Run("missing symbol is a bad request", func(t *testing.T) {
		rr := doRequest(t, router, "GET", "/risk/iv")
		require.Equal(t, 400, rr.Code)
	})

	t.Run("unknown chain is not found", func(t *testing.T) {
		rr := doRequest(t, router, "GET", "/risk/iv?symbol=ZZ9999.CFFEX")
		require.Equal(t, 404, rr.Code)
	})
}
