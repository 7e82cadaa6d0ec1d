package eventmodels

import (
	"math"
	"time"
)

// QuoteTick is a top-of-book snapshot for a single instrument. Sizes are not
// carried: the engine only consumes best bid and best ask prices.
type QuoteTick struct {
	Symbol    InstrumentSymbol `json:"symbol"`
	BidPrice  float64          `json:"bidPrice"`
	AskPrice  float64          `json:"askPrice"`
	Timestamp time.Time        `json:"timestamp"`
}

func NewQuoteTick(symbol InstrumentSymbol, bidPrice float64, askPrice float64, timestamp time.Time) *QuoteTick {
	return &QuoteTick{
		Symbol:    symbol,
		BidPrice:  bidPrice,
		AskPrice:  askPrice,
		Timestamp: timestamp,
	}
}

func (q *QuoteTick) Validate() error {
	if q.Symbol == "" {
		return ErrSymbolNotSet
	}

	if q.BidPrice <= 0 || math.IsNaN(q.BidPrice) || math.IsInf(q.BidPrice, 0) {
		return ErrInvalidQuotePrice
	}

	if q.AskPrice <= 0 || math.IsNaN(q.AskPrice) || math.IsInf(q.AskPrice, 0) {
		return ErrInvalidQuotePrice
	}

	return nil
}

func (q *QuoteTick) MidPrice() float64 {
	return (q.BidPrice + q.AskPrice) / 2
}
