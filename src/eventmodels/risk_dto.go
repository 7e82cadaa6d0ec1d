package eventmodels

import (
	"time"

	"github.com/google/uuid"
)

// Read-model shapes served by the risk display API. Snapshots are copies:
// mutating a DTO never touches engine state.

type PositionGreeksDTO struct {
	LongPos  float64 `json:"longPos"`
	ShortPos float64 `json:"shortPos"`
	NetPos   float64 `json:"netPos"`
	PosValue float64 `json:"posValue"`
	PosDelta float64 `json:"posDelta"`
	PosGamma float64 `json:"posGamma"`
	PosTheta float64 `json:"posTheta"`
	PosVega  float64 `json:"posVega"`
}

type OptionRiskDTO struct {
	Symbol       InstrumentSymbol  `json:"symbol"`
	ChainSymbol  string            `json:"chainSymbol"`
	OptionType   OptionType        `json:"optionType"`
	Strike       float64           `json:"strike"`
	Rank         string            `json:"rank"`
	Expiry       time.Time         `json:"expiry"`
	DaysToExpiry int               `json:"daysToExpiry"`
	MidPrice     float64           `json:"midPrice"`
	BidImpv      float64           `json:"bidImpv"`
	AskImpv      float64           `json:"askImpv"`
	MidImpv      float64           `json:"midImpv"`
	PricingImpv  float64           `json:"pricingImpv"`
	TheoPrice    float64           `json:"theoPrice"`
	TheoDelta    float64           `json:"theoDelta"`
	TheoGamma    float64           `json:"theoGamma"`
	TheoTheta    float64           `json:"theoTheta"`
	TheoVega     float64           `json:"theoVega"`
	Position     PositionGreeksDTO `json:"position"`
}

type UnderlyingRiskDTO struct {
	Symbol    InstrumentSymbol `json:"symbol"`
	MidPrice  float64          `json:"midPrice"`
	TheoDelta float64          `json:"theoDelta"`
	PosDelta  float64          `json:"posDelta"`
	LongPos   float64          `json:"longPos"`
	ShortPos  float64          `json:"shortPos"`
	NetPos    float64          `json:"netPos"`
}

type ChainRiskDTO struct {
	ChainSymbol          string            `json:"chainSymbol"`
	UnderlyingSymbol     InstrumentSymbol  `json:"underlyingSymbol"`
	DaysToExpiry         int               `json:"daysToExpiry"`
	AtmPrice             float64           `json:"atmPrice"`
	AtmRank              string            `json:"atmRank"`
	UnderlyingAdjustment float64           `json:"underlyingAdjustment"`
	Position             PositionGreeksDTO `json:"position"`
	Options              []*OptionRiskDTO  `json:"options,omitempty"`
}

type PortfolioRiskDTO struct {
	ID          uuid.UUID            `json:"id"`
	Name        string               `json:"name"`
	Position    PositionGreeksDTO    `json:"position"`
	Chains      []*ChainRiskDTO      `json:"chains"`
	Underlyings []*UnderlyingRiskDTO `json:"underlyings"`
}

// ChainIVStatsDTO summarizes the distribution of mid implied volatilities
// across one chain's quoted options.
type ChainIVStatsDTO struct {
	ChainSymbol string  `json:"chainSymbol"`
	Count       int     `json:"count"`
	Mean        float64 `json:"mean"`
	StdDev      float64 `json:"stdDev"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
}
