package eventpubsub

import (
	"github.com/zzprice/optionrisk/src/eventmodels"
)

const (
	NewQuoteEvent         = eventmodels.EventName("NewQuoteEvent")
	NewFillEvent          = eventmodels.EventName("NewFillEvent")
	PositionSnapshotEvent = eventmodels.EventName("PositionSnapshotEvent")
	GreeksUpdatedEvent    = eventmodels.EventName("GreeksUpdatedEvent")
	AtmRefreshedEvent     = eventmodels.EventName("AtmRefreshedEvent")
	Error                 = eventmodels.EventName("DefaultError")
)
