package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zzprice/optionrisk/src/eventmodels"
	pubsub "github.com/zzprice/optionrisk/src/eventpubsub"
	"github.com/zzprice/optionrisk/src/riskengine/models"
)

const testChainSymbol = "IO2104.CFFEX"

func testRank(strike float64) string {
	return fmt.Sprintf("%08d", int(strike*1000))
}

func callSymbol(strike float64) eventmodels.InstrumentSymbol {
	return eventmodels.NewInstrumentSymbol(fmt.Sprintf("IO2104-C-%v", strike), "CFFEX")
}

func putSymbol(strike float64) eventmodels.InstrumentSymbol {
	return eventmodels.NewInstrumentSymbol(fmt.Sprintf("IO2104-P-%v", strike), "CFFEX")
}

func underlyingSymbol() eventmodels.InstrumentSymbol {
	return eventmodels.NewInstrumentSymbol("IO2104", "CFFEX")
}

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
		OptionRank:       testRank(strike),
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

func testContracts() []*eventmodels.Contract {
	var contracts []*eventmodels.Contract
	for _, strike := range []float64{95, 100, 105} {
		contracts = append(contracts,
			testOptionContract(strike, eventmodels.Call),
			testOptionContract(strike, eventmodels.Put),
		)
	}

	return contracts
}

// newTestService loads a three-strike universe, activates its chain against
// a mock model and optionally feeds an underlying quote. The bus is reset,
// so collectors must subscribe after this returns.
func newTestService(t *testing.T, underlyingMid float64) (*RiskService, *models.Portfolio, *models.MockPricingModel) {
	t.Helper()

	pubsub.Init()

	portfolio := models.NewPortfolio("test-book")
	svc := NewRiskService(&sync.WaitGroup{}, portfolio, time.Hour)

	contracts := testContracts()
	require.Equal(t, len(contracts), svc.LoadUniverse(contracts))

	mock := models.NewMockPricingModel()
	_, err := svc.Activate(testChainSymbol, testUnderlyingContract(), mock, 0.03)
	require.NoError(t, err)

	if underlyingMid > 0 {
		svc.handleQuote(eventmodels.NewQuoteTick(underlyingSymbol(), underlyingMid, underlyingMid, time.Now().UTC()))
	}

	return svc, portfolio, mock
}
