package eventmodels

import "time"

// PositionSnapshot restates an instrument's gross position from an external
// reconciliation source, bypassing fill-by-fill deltas.
type PositionSnapshot struct {
	Symbol    InstrumentSymbol `json:"symbol"`
	LongQty   float64          `json:"longQty"`
	ShortQty  float64          `json:"shortQty"`
	Timestamp time.Time        `json:"timestamp"`
}

func NewPositionSnapshot(symbol InstrumentSymbol, longQty float64, shortQty float64, timestamp time.Time) *PositionSnapshot {
	return &PositionSnapshot{
		Symbol:    symbol,
		LongQty:   longQty,
		ShortQty:  shortQty,
		Timestamp: timestamp,
	}
}

func (p *PositionSnapshot) Validate() error {
	if p.Symbol == "" {
		return ErrSymbolNotSet
	}

	if p.LongQty < 0 || p.ShortQty < 0 {
		return ErrNegativeQuantity
	}

	return nil
}
