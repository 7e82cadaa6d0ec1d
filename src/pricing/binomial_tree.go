package pricing

import (
	"math"

	"github.com/zzprice/optionrisk/src/utils"
)

const DefaultTreeSteps = 15

// BinomialTree prices American options on a forward underlying with a
// Cox-Ross-Rubinstein lattice. More steps trade speed for accuracy; the
// default is enough for risk display purposes.
type BinomialTree struct {
	Steps int
}

func NewBinomialTree(steps int) *BinomialTree {
	if steps < 2 {
		steps = DefaultTreeSteps
	}

	return &BinomialTree{Steps: steps}
}

// generateTree builds the underlying and option value lattices.
// tree[i][j] holds the node reached by i up-moves within j steps.
func (m *BinomialTree) generateTree(f, k, r, t, v float64, cp int) ([][]float64, [][]float64) {
	n := m.Steps
	dt := t / float64(n)
	u := math.Exp(v * math.Sqrt(dt))
	d := 1 / u

	// a forward carries no drift, so the risk-neutral up probability is
	// (1-d)/(u-d); discounting happens per step
	p := (1 - d) / (u - d)
	discount := 1 / (1 + r*dt)
	p1 := p * discount
	p2 := (1 - p) * discount

	underlyingTree := make([][]float64, n+1)
	optionTree := make([][]float64, n+1)
	for i := range underlyingTree {
		underlyingTree[i] = make([]float64, n+1)
		optionTree[i] = make([]float64, n+1)
	}

	for j := 0; j <= n; j++ {
		for i := 0; i <= j; i++ {
			underlyingTree[i][j] = f * math.Pow(u, float64(i)) * math.Pow(d, float64(j-i))
		}
	}

	fcp := float64(cp)
	for i := 0; i <= n; i++ {
		optionTree[i][n] = math.Max(0, fcp*(underlyingTree[i][n]-k))
	}

	for j := n - 1; j >= 0; j-- {
		for i := 0; i <= j; i++ {
			continuation := p1*optionTree[i+1][j+1] + p2*optionTree[i][j+1]
			exercise := fcp * (underlyingTree[i][j] - k)
			optionTree[i][j] = math.Max(continuation, exercise)
		}
	}

	return underlyingTree, optionTree
}

func (m *BinomialTree) CalculatePrice(f, k, r, t, v float64, cp int) float64 {
	if t <= 0 || v <= 0 {
		return math.Max(0, float64(cp)*(f-k))
	}

	_, optionTree := m.generateTree(f, k, r, t, v, cp)

	return optionTree[0][0]
}

func (m *BinomialTree) CalculateGreeks(f, k, r, t, v float64, cp int) (price, delta, gamma, theta, vega float64) {
	if t <= 0 || v <= 0 {
		return math.Max(0, float64(cp)*(f-k)), 0, 0, 0, 0
	}

	dt := t / float64(m.Steps)
	underlyingTree, optionTree := m.generateTree(f, k, r, t, v, cp)

	price = optionTree[0][0]
	delta = (optionTree[1][1] - optionTree[0][1]) / (underlyingTree[1][1] - underlyingTree[0][1])

	deltaUp := (optionTree[2][2] - optionTree[1][2]) / (underlyingTree[2][2] - underlyingTree[1][2])
	deltaDown := (optionTree[1][2] - optionTree[0][2]) / (underlyingTree[1][2] - underlyingTree[0][2])
	gamma = (deltaUp - deltaDown) / (0.5 * (underlyingTree[2][2] - underlyingTree[0][2]))

	// the up-down node two steps in sits at the root's underlying level
	theta = (optionTree[1][2] - price) / (2 * dt * utils.AnnualDays)

	vega = m.CalculatePrice(f, k, r, t, v+0.01, cp) - price

	return price, delta, gamma, theta, vega
}

func (m *BinomialTree) CalculateImpv(price, f, k, r, t float64, cp int) float64 {
	if price <= 0 || f <= 0 || t <= 0 {
		return 0
	}

	// an American option quoted at or below intrinsic value carries no time
	// value to solve for
	if price <= math.Max(0, float64(cp)*(f-k)) {
		return 0
	}

	v := impvGuess
	for i := 0; i < impvMaxIterations; i++ {
		p := m.CalculatePrice(f, k, r, t, v, cp)

		vega := (m.CalculatePrice(f, k, r, t, v+0.01, cp) - p) / 0.01
		if vega == 0 {
			break
		}

		dx := (price - p) / vega
		if math.Abs(dx) < impvTolerance {
			break
		}

		v += dx
	}

	if v <= 0 {
		return 0
	}

	return math.Round(v*1e4) / 1e4
}
