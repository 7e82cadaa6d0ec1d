package refdata

import (
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/zzprice/optionrisk/src/eventmodels"
)

// QuoteRow is one line of a recorded quote CSV.
type QuoteRow struct {
	Symbol    string  `csv:"symbol"`
	Bid       float64 `csv:"bid"`
	Ask       float64 `csv:"ask"`
	Timestamp string  `csv:"timestamp"`
}

// FillRow is one line of a recorded execution CSV.
type FillRow struct {
	Symbol    string  `csv:"symbol"`
	Side      string  `csv:"side"`
	Effect    string  `csv:"effect"`
	Price     float64 `csv:"price"`
	Volume    float64 `csv:"volume"`
	Timestamp string  `csv:"timestamp"`
}

func (r *QuoteRow) ToQuoteTick() (*eventmodels.QuoteTick, error) {
	ts, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("QuoteRow.ToQuoteTick: %s: failed to parse timestamp: %w", r.Symbol, err)
	}

	return eventmodels.NewQuoteTick(eventmodels.InstrumentSymbol(r.Symbol), r.Bid, r.Ask, ts), nil
}

func (r *FillRow) ToFill() (*eventmodels.Fill, error) {
	ts, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("FillRow.ToFill: %s: failed to parse timestamp: %w", r.Symbol, err)
	}

	fill := eventmodels.NewFill(eventmodels.InstrumentSymbol(r.Symbol), eventmodels.TradeSide(r.Side), eventmodels.PositionEffect(r.Effect), r.Price, r.Volume, ts)
	if err := fill.Validate(); err != nil {
		return nil, fmt.Errorf("FillRow.ToFill: %s: %w", r.Symbol, err)
	}

	return fill, nil
}

func LoadQuotesCSV(path string) ([]*eventmodels.QuoteTick, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadQuotesCSV: failed to open %s: %w", path, err)
	}
	defer f.Close()

	var rows []*QuoteRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("LoadQuotesCSV: failed to parse %s: %w", path, err)
	}

	var quotes []*eventmodels.QuoteTick
	for _, row := range rows {
		quote, convErr := row.ToQuoteTick()
		if convErr != nil {
			return nil, convErr
		}

		quotes = append(quotes, quote)
	}

	log.Infof("LoadQuotesCSV: loaded %d quotes from %s", len(quotes), path)

	return quotes, nil
}

func LoadFillsCSV(path string) ([]*eventmodels.Fill, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadFillsCSV: failed to open %s: %w", path, err)
	}
	defer f.Close()

	var rows []*FillRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("LoadFillsCSV: failed to parse %s: %w", path, err)
	}

	var fills []*eventmodels.Fill
	for _, row := range rows {
		fill, convErr := row.ToFill()
		if convErr != nil {
			return nil, convErr
		}

		fills = append(fills, fill)
	}

	log.Infof("LoadFillsCSV: loaded %d fills from %s", len(fills), path)

	return fills, nil
}
