package models

// PositionAggregates accumulates position figures over a set of options.
// Only options with a non-zero net position contribute, so the incremental
// fill path and a full rescan land on the same sums.
type PositionAggregates struct {
	LongPos  float64 `json:"longPos"`
	ShortPos float64 `json:"shortPos"`
	NetPos   float64 `json:"netPos"`
	PosValue float64 `json:"posValue"`
	PosDelta float64 `json:"posDelta"`
	PosGamma float64 `json:"posGamma"`
	PosTheta float64 `json:"posTheta"`
	PosVega  float64 `json:"posVega"`
}

func (a *PositionAggregates) Reset() {
	*a = PositionAggregates{}
}

func (a *PositionAggregates) Add(option *Option) {
	if option.NetPos == 0 {
		return
	}

	a.LongPos += option.LongPos
	a.ShortPos += option.ShortPos
	a.PosValue += option.PosValue
	a.PosDelta += option.PosDelta
	a.PosGamma += option.PosGamma
	a.PosTheta += option.PosTheta
	a.PosVega += option.PosVega
}

func (a *PositionAggregates) Subtract(option *Option) {
	if option.NetPos == 0 {
		return
	}

	a.LongPos -= option.LongPos
	a.ShortPos -= option.ShortPos
	a.PosValue -= option.PosValue
	a.PosDelta -= option.PosDelta
	a.PosGamma -= option.PosGamma
	a.PosTheta -= option.PosTheta
	a.PosVega -= option.PosVega
}

// Accumulate folds another aggregate into this one. Net position is not
// summed; call CalculateNetPos after the final contribution.
func (a *PositionAggregates) Accumulate(src *PositionAggregates) {
	a.LongPos += src.LongPos
	a.ShortPos += src.ShortPos
	a.PosValue += src.PosValue
	a.PosDelta += src.PosDelta
	a.PosGamma += src.PosGamma
	a.PosTheta += src.PosTheta
	a.PosVega += src.PosVega
}

func (a *PositionAggregates) CalculateNetPos() {
	a.NetPos = a.LongPos - a.ShortPos
}
