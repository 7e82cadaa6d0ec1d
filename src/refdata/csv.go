package refdata

import (
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/zzprice/optionrisk/src/eventmodels"
)

const expiryLayout = "2006-01-02"

// ContractRow is one line of a contract universe CSV. Underlying rows leave
// the option columns blank.
type ContractRow struct {
	Symbol     string  `csv:"symbol"`
	Exchange   string  `csv:"exchange"`
	Product    string  `csv:"product"`
	TickSize   float64 `csv:"tick_size"`
	MinVolume  float64 `csv:"min_volume"`
	Multiplier float64 `csv:"multiplier"`
	Strike     float64 `csv:"strike"`
	Rank       string  `csv:"rank"`
	OptionType string  `csv:"option_type"`
	Expiry     string  `csv:"expiry"`
	Underlying string  `csv:"underlying"`
}

func (r *ContractRow) ToContract() (*eventmodels.Contract, error) {
	contract := &eventmodels.Contract{
		Symbol:     r.Symbol,
		Exchange:   eventmodels.NewExchange(r.Exchange),
		Product:    eventmodels.Product(r.Product),
		TickSize:   r.TickSize,
		MinVolume:  r.MinVolume,
		Multiplier: r.Multiplier,
	}

	if contract.Product == eventmodels.ProductOption {
		expiry, err := time.Parse(expiryLayout, r.Expiry)
		if err != nil {
			return nil, fmt.Errorf("ContractRow.ToContract: %s: failed to parse expiry: %w", r.Symbol, err)
		}

		contract.OptionStrike = r.Strike
		contract.OptionType = eventmodels.OptionType(r.OptionType)
		contract.OptionExpiry = expiry
		contract.OptionUnderlying = r.Underlying

		contract.OptionRank = r.Rank
		if contract.OptionRank == "" {
			contract.OptionRank = RankFromStrike(r.Strike)
		}
	}

	return contract, nil
}

// RankFromStrike pads the strike to a fixed width so that string ordering
// matches numeric strike order.
func RankFromStrike(strike float64) string {
	return fmt.Sprintf("%08d", int(strike*1000))
}

func LoadContractsCSV(path string) ([]*eventmodels.Contract, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadContractsCSV: failed to open %s: %w", path, err)
	}
	defer f.Close()

	var rows []*ContractRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("LoadContractsCSV: failed to parse %s: %w", path, err)
	}

	var contracts []*eventmodels.Contract
	for _, row := range rows {
		contract, convErr := row.ToContract()
		if convErr != nil {
			return nil, convErr
		}

		contracts = append(contracts, contract)
	}

	log.Infof("LoadContractsCSV: loaded %d contracts from %s", len(contracts), path)

	return contracts, nil
}
