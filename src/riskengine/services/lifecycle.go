package services

import (
	"github.com/kataras/go-events"
)

// Process-level lifecycle notifications ride the global emitter rather than
// the market-data bus, so monitoring hooks can attach without touching
// engine topics.
const (
	EventRiskServiceStarted = events.EventName("RiskServiceStarted")
	EventRiskServiceStopped = events.EventName("RiskServiceStopped")
	EventUniverseLoaded     = events.EventName("UniverseLoaded")
	EventChainActivated     = events.EventName("ChainActivated")
)
