package services

import (
	"github.com/montanaflynn/stats"

	"github.com/zzprice/optionrisk/src/eventmodels"
)

// ChainIVStats summarizes the mid implied volatilities across one active
// chain. Options without a solved impv are excluded from the sample.
func (s *RiskService) ChainIVStats(chainSymbol string) (*eventmodels.ChainIVStatsDTO, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chain, found := s.portfolio.Chains[chainSymbol]
	if !found {
		return nil, false
	}

	var impvs []float64
	for _, option := range chain.Options {
		if option.MidImpv > 0 {
			impvs = append(impvs, option.MidImpv)
		}
	}

	out := &eventmodels.ChainIVStatsDTO{
		ChainSymbol: chainSymbol,
		Count:       len(impvs),
	}

	if len(impvs) == 0 {
		return out, true
	}

	if mean, err := stats.Mean(impvs); err == nil {
		out.Mean = mean
	}

	if stdDev, err := stats.StandardDeviation(impvs); err == nil {
		out.StdDev = stdDev
	}

	if minImpv, err := stats.Min(impvs); err == nil {
		out.Min = minImpv
	}

	if maxImpv, err := stats.Max(impvs); err == nil {
		out.Max = maxImpv
	}

	return out, true
}
