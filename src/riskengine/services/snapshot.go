package services

import (
	"sort"

	"github.com/zzprice/optionrisk/src/eventmodels"
	"github.com/zzprice/optionrisk/src/riskengine/models"
)

// Read-side accessors. Every snapshot is a copy built under the service
// mutex; callers can hold one across requests without freezing the engine.

func (s *RiskService) PortfolioSnapshot() *eventmodels.PortfolioRiskDTO {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := &eventmodels.PortfolioRiskDTO{
		ID:       s.portfolio.ID,
		Name:     s.portfolio.Name,
		Position: aggregatesDTO(&s.portfolio.PositionAggregates),
		Chains:   s.chainSnapshotsLocked(false),
	}

	for _, underlying := range s.portfolio.Underlyings {
		out.Underlyings = append(out.Underlyings, underlyingDTO(underlying))
	}

	sort.Slice(out.Underlyings, func(i, j int) bool {
		return out.Underlyings[i].Symbol < out.Underlyings[j].Symbol
	})

	return out
}

func (s *RiskService) ChainSnapshots() []*eventmodels.ChainRiskDTO {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.chainSnapshotsLocked(false)
}

func (s *RiskService) ChainSnapshot(chainSymbol string) (*eventmodels.ChainRiskDTO, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chain, found := s.portfolio.Chains[chainSymbol]
	if !found {
		return nil, false
	}

	return chainDTO(chain, true), true
}

func (s *RiskService) OptionSnapshot(symbol eventmodels.InstrumentSymbol) (*eventmodels.OptionRiskDTO, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	option, found := s.portfolio.Options[symbol]
	if !found {
		return nil, false
	}

	return optionDTO(option), true
}

func (s *RiskService) chainSnapshotsLocked(includeOptions bool) []*eventmodels.ChainRiskDTO {
	var out []*eventmodels.ChainRiskDTO
	for _, chain := range s.portfolio.Chains {
		out = append(out, chainDTO(chain, includeOptions))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ChainSymbol < out[j].ChainSymbol
	})

	return out
}

func chainDTO(chain *models.Chain, includeOptions bool) *eventmodels.ChainRiskDTO {
	out := &eventmodels.ChainRiskDTO{
		ChainSymbol:          chain.ChainSymbol,
		DaysToExpiry:         chain.DaysToExpiry,
		AtmPrice:             chain.AtmPrice,
		AtmRank:              chain.AtmRank,
		UnderlyingAdjustment: chain.UnderlyingAdjustment,
		Position:             aggregatesDTO(&chain.PositionAggregates),
	}

	if chain.Underlying != nil {
		out.UnderlyingSymbol = chain.Underlying.VenueSymbol
	}

	if includeOptions {
		for _, option := range chain.Options {
			out.Options = append(out.Options, optionDTO(option))
		}

		sort.Slice(out.Options, func(i, j int) bool {
			if out.Options[i].Rank != out.Options[j].Rank {
				return out.Options[i].Rank < out.Options[j].Rank
			}

			return out.Options[i].OptionType < out.Options[j].OptionType
		})
	}

	return out
}

func optionDTO(option *models.Option) *eventmodels.OptionRiskDTO {
	return &eventmodels.OptionRiskDTO{
		Symbol:       option.VenueSymbol,
		ChainSymbol:  chainSymbolOf(option),
		OptionType:   option.OptionType,
		Strike:       option.StrikePrice,
		Rank:         option.Rank,
		Expiry:       option.Expiry,
		DaysToExpiry: option.DaysToExpiry,
		MidPrice:     option.MidPrice,
		BidImpv:      option.BidImpv,
		AskImpv:      option.AskImpv,
		MidImpv:      option.MidImpv,
		PricingImpv:  option.PricingImpv,
		TheoPrice:    option.TheoPrice,
		TheoDelta:    option.TheoDelta,
		TheoGamma:    option.TheoGamma,
		TheoTheta:    option.TheoTheta,
		TheoVega:     option.TheoVega,
		Position: eventmodels.PositionGreeksDTO{
			LongPos:  option.LongPos,
			ShortPos: option.ShortPos,
			NetPos:   option.NetPos,
			PosValue: option.PosValue,
			PosDelta: option.PosDelta,
			PosGamma: option.PosGamma,
			PosTheta: option.PosTheta,
			PosVega:  option.PosVega,
		},
	}
}

func underlyingDTO(underlying *models.Underlying) *eventmodels.UnderlyingRiskDTO {
	return &eventmodels.UnderlyingRiskDTO{
		Symbol:    underlying.VenueSymbol,
		MidPrice:  underlying.MidPrice,
		TheoDelta: underlying.TheoDelta,
		PosDelta:  underlying.PosDelta,
		LongPos:   underlying.LongPos,
		ShortPos:  underlying.ShortPos,
		NetPos:    underlying.NetPos,
	}
}

func aggregatesDTO(a *models.PositionAggregates) eventmodels.PositionGreeksDTO {
	return eventmodels.PositionGreeksDTO{
		LongPos:  a.LongPos,
		ShortPos: a.ShortPos,
		NetPos:   a.NetPos,
		PosValue: a.PosValue,
		PosDelta: a.PosDelta,
		PosGamma: a.PosGamma,
		PosTheta: a.PosTheta,
		PosVega:  a.PosVega,
	}
}

func chainSymbolOf(option *models.Option) string {
	if option.Chain == nil {
		return ""
	}

	return option.Chain.ChainSymbol
}
