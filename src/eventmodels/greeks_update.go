package eventmodels

import "time"

// GreeksUpdate is published after the engine finishes a recomputation pass,
// carrying the refreshed portfolio aggregates and the symbol that triggered
// the pass.
type GreeksUpdate struct {
	Portfolio string           `json:"portfolio"`
	Symbol    InstrumentSymbol `json:"symbol"`
	LongPos   float64          `json:"longPos"`
	ShortPos  float64          `json:"shortPos"`
	NetPos    float64          `json:"netPos"`
	PosValue  float64          `json:"posValue"`
	PosDelta  float64          `json:"posDelta"`
	PosGamma  float64          `json:"posGamma"`
	PosTheta  float64          `json:"posTheta"`
	PosVega   float64          `json:"posVega"`
	Timestamp time.Time        `json:"timestamp"`
}
