package refdata

import (
	"context"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	log "github.com/sirupsen/logrus"

	"github.com/zzprice/optionrisk/src/eventmodels"
)

// defaultOptionTickSize is used when the reference feed does not carry one.
const defaultOptionTickSize = 0.01

type PolygonContractFetcher struct {
	Client *polygon.Client
}

// FetchOptionContracts pulls the listed contracts for one underlying and maps
// them into the engine's contract terms.
func (f *PolygonContractFetcher) FetchOptionContracts(ctx context.Context, underlying string, exchange eventmodels.Exchange, multiplier float64) ([]*eventmodels.Contract, error) {
	log.Debugf("fetching polygon option contracts for underlying %s", underlying)

	params := models.ListOptionsContractsParams{}.
		WithUnderlyingTicker(models.EQ, underlying).
		WithExpired(false).
		WithOrder(models.Asc).
		WithLimit(1000)

	iter := f.Client.ListOptionsContracts(ctx, params)

	var contracts []*eventmodels.Contract
	for iter.Next() {
		item := iter.Item()

		optionType := eventmodels.Call
		if item.ContractType == "put" {
			optionType = eventmodels.Put
		}

		contractMultiplier := multiplier
		if item.SharesPerContract > 0 {
			contractMultiplier = item.SharesPerContract
		}

		contracts = append(contracts, &eventmodels.Contract{
			Symbol:           item.Ticker,
			Exchange:         exchange,
			Product:          eventmodels.ProductOption,
			TickSize:         defaultOptionTickSize,
			MinVolume:        1,
			Multiplier:       contractMultiplier,
			OptionStrike:     item.StrikePrice,
			OptionRank:       RankFromStrike(item.StrikePrice),
			OptionType:       optionType,
			OptionExpiry:     time.Time(item.ExpirationDate),
			OptionUnderlying: underlying,
		})
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("PolygonContractFetcher.FetchOptionContracts: %s: %w", underlying, err)
	}

	log.Infof("PolygonContractFetcher: fetched %d contracts for %s", len(contracts), underlying)

	return contracts, nil
}

func NewPolygonContractFetcher(apiKey string) *PolygonContractFetcher {
	return &PolygonContractFetcher{
		Client: polygon.New(apiKey),
	}
}
