package eventmodels

import "fmt"

// InstrumentSymbol is the venue-qualified identifier "SYMBOL.EXCHANGE" under
// which quotes, fills and position snapshots are addressed.
type InstrumentSymbol string

func NewInstrumentSymbol(symbol string, exchange Exchange) InstrumentSymbol {
	return InstrumentSymbol(fmt.Sprintf("%s.%s", symbol, exchange))
}

func (s InstrumentSymbol) String() string {
	return string(s)
}
