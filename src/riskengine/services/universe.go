package services

import (
	"fmt"

	"github.com/kataras/go-events"
	log "github.com/sirupsen/logrus"

	"github.com/zzprice/optionrisk/src/eventmodels"
	"github.com/zzprice/optionrisk/src/riskengine/models"
)

// LoadUniverse registers option contracts into the portfolio's master
// registries. Bad contracts are logged and skipped; the rest of the universe
// still loads.
func (s *RiskService) LoadUniverse(contracts []*eventmodels.Contract) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	loaded := 0
	for _, contract := range contracts {
		if _, err := s.portfolio.AddOption(contract); err != nil {
			log.Warnf("RiskService.LoadUniverse: skipping %s: %v", contract.Symbol, err)
			continue
		}

		loaded++
	}

	log.Infof("RiskService.LoadUniverse: registered %d options across %d chains", loaded, s.portfolio.MasterChainCount())
	events.Emit(EventUniverseLoaded, s.portfolio.Name, loaded)

	return loaded
}

// Activate links a chain to its underlying and binds the pricing model and
// interest rate to every option in it. Options stay inert until this runs.
func (s *RiskService) Activate(chainSymbol string, underlyingContract *eventmodels.Contract, model models.PricingModel, interestRate float64) (*models.Underlying, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	underlying, err := s.portfolio.ActivateChain(chainSymbol, underlyingContract)
	if err != nil {
		return nil, fmt.Errorf("RiskService.Activate: %s: %w", chainSymbol, err)
	}

	chain := s.portfolio.Chains[chainSymbol]
	chain.SetPricingModel(model)
	chain.SetInterestRate(interestRate)

	log.Infof("RiskService.Activate: chain %s activated against %s", chainSymbol, underlying.VenueSymbol)
	events.Emit(EventChainActivated, chainSymbol, underlying.VenueSymbol)

	return underlying, nil
}

// ActivateFromConfig activates every chain the config names against its
// underlying definition.
func (s *RiskService) ActivateFromConfig(config *eventmodels.RiskConfigYAML, model models.PricingModel) error {
	for _, chainConfig := range config.Chains {
		underlyingContract := chainConfig.Underlying.ToContract()

		if _, err := s.Activate(chainConfig.ChainSymbol, underlyingContract, model, config.InterestRate); err != nil {
			return err
		}
	}

	return nil
}
