package services

import (
	"context"
	"sync"
	"time"

	"github.com/kataras/go-events"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"github.com/zzprice/optionrisk/src/eventmodels"
	pubsub "github.com/zzprice/optionrisk/src/eventpubsub"
	"github.com/zzprice/optionrisk/src/riskengine/models"
)

const defaultAtmRefreshInterval = 10 * time.Second

var tracer = otel.Tracer("optionrisk/riskengine/services")

// RiskService owns a portfolio and serializes every market event into it.
// The engine core is single-threaded; the service mutex is the only gate
// between bus callbacks, the periodic refresh loop and read-side snapshots.
type RiskService struct {
	wg *sync.WaitGroup
	mu sync.Mutex

	portfolio       *models.Portfolio
	refreshInterval time.Duration
}

func (s *RiskService) handleQuote(quote *eventmodels.QuoteTick) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.portfolio.UpdateQuote(quote); err != nil {
		pubsub.PublishError("RiskService.handleQuote", err)
		return
	}

	s.publishGreeks(quote.Symbol)
}

func (s *RiskService) handleFill(fill *eventmodels.Fill) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.portfolio.UpdateFill(fill); err != nil {
		pubsub.PublishError("RiskService.handleFill", err)
		return
	}

	s.publishGreeks(fill.Symbol)
}

func (s *RiskService) handleSnapshot(snapshot *eventmodels.PositionSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.portfolio.SetPositionSnapshot(snapshot)
	s.publishGreeks(snapshot.Symbol)
}

// publishGreeks emits the refreshed portfolio aggregates. Routing misses
// publish nothing: the book did not change.
func (s *RiskService) publishGreeks(symbol eventmodels.InstrumentSymbol) {
	if _, found := s.portfolio.Options[symbol]; !found {
		if _, found := s.portfolio.Underlyings[symbol]; !found {
			return
		}
	}

	update := &eventmodels.GreeksUpdate{
		Portfolio: s.portfolio.Name,
		Symbol:    symbol,
		LongPos:   s.portfolio.LongPos,
		ShortPos:  s.portfolio.ShortPos,
		NetPos:    s.portfolio.NetPos,
		PosValue:  s.portfolio.PosValue,
		PosDelta:  s.portfolio.PosDelta,
		PosGamma:  s.portfolio.PosGamma,
		PosTheta:  s.portfolio.PosTheta,
		PosVega:   s.portfolio.PosVega,
		Timestamp: time.Now().UTC(),
	}

	pubsub.Publish("RiskService", pubsub.GreeksUpdatedEvent, update)
}

// RefreshAtm re-selects each active chain's at-the-money strike and
// recomputes the synthetic underlying adjustment. Runs on the periodic
// cadence, not per tick: the selection moves slowly relative to quotes.
func (s *RiskService) RefreshAtm(ctx context.Context) {
	_, span := tracer.Start(ctx, "RiskService.RefreshAtm")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.portfolio.CalculateAtmPrice()

	for _, chain := range s.portfolio.Chains {
		chain.CalculateUnderlyingAdjustment()
	}

	pubsub.Publish("RiskService", pubsub.AtmRefreshedEvent, s.chainSnapshotsLocked(false))
}

func (s *RiskService) Start(ctx context.Context) error {
	if err := pubsub.Subscribe("RiskService", pubsub.NewQuoteEvent, s.handleQuote); err != nil {
		return err
	}

	if err := pubsub.Subscribe("RiskService", pubsub.NewFillEvent, s.handleFill); err != nil {
		return err
	}

	if err := pubsub.Subscribe("RiskService", pubsub.PositionSnapshotEvent, s.handleSnapshot); err != nil {
		return err
	}

	s.wg.Add(1)

	timer := time.NewTicker(s.refreshInterval)

	go func() {
		defer s.wg.Done()
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("stopping RiskService consumer")
				events.Emit(EventRiskServiceStopped, s.portfolio.Name)
				return
			case <-timer.C:
				s.RefreshAtm(ctx)
			}
		}
	}()

	events.Emit(EventRiskServiceStarted, s.portfolio.Name)

	return nil
}

func NewRiskService(wg *sync.WaitGroup, portfolio *models.Portfolio, refreshInterval time.Duration) *RiskService {
	if refreshInterval <= 0 {
		refreshInterval = defaultAtmRefreshInterval
	}

	return &RiskService{
		wg:              wg,
		portfolio:       portfolio,
		refreshInterval: refreshInterval,
	}
}
