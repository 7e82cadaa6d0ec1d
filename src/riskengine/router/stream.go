package router

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/zzprice/optionrisk/src/eventmodels"
	pubsub "github.com/zzprice/optionrisk/src/eventpubsub"
)

const (
	streamBufferSize   = 64
	streamWriteTimeout = 10 * time.Second
	streamPongTimeout  = 60 * time.Second
	streamPingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleStream upgrades the request and forwards greeks updates until the
// peer disconnects.
func handleStream(w http.ResponseWriter, r *http.Request) {
	stream := make(chan *eventmodels.GreeksUpdate, streamBufferSize)

	onGreeks := func(update *eventmodels.GreeksUpdate) {
		select {
		case stream <- update:
		default:
			// slow consumer: drop the update rather than stall the bus
		}
	}

	if err := pubsub.SubscribeAsync("router.handleStream", pubsub.GreeksUpdatedEvent, onGreeks); err != nil {
		setErrorResponse("handleStream: failed to subscribe", 500, err, w)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("handleStream: upgrade: %v", err)

		if unsubErr := pubsub.Unsubscribe("router.handleStream", pubsub.GreeksUpdatedEvent, onGreeks); unsubErr != nil {
			log.Errorf("handleStream: unsubscribe: %v", unsubErr)
		}

		return
	}

	done := make(chan struct{})

	// the reader only watches for the peer closing and keeps the pong
	// deadline fresh
	go func() {
		defer close(done)

		conn.SetReadLimit(512)
		conn.SetReadDeadline(time.Now().UTC().Add(streamPongTimeout))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().UTC().Add(streamPongTimeout))
		})

		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	go func() {
		ticker := time.NewTicker(streamPingInterval)

		defer ticker.Stop()
		defer conn.Close()

		defer func() {
			if unsubErr := pubsub.Unsubscribe("router.handleStream", pubsub.GreeksUpdatedEvent, onGreeks); unsubErr != nil {
				log.Errorf("handleStream: unsubscribe: %v", unsubErr)
			}
		}()

		for {
			select {
			case <-done:
				return
			case update := <-stream:
				conn.SetWriteDeadline(time.Now().UTC().Add(streamWriteTimeout))

				if writeErr := conn.WriteJSON(update); writeErr != nil {
					log.Errorf("handleStream: write: %v", writeErr)
					return
				}
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().UTC().Add(streamWriteTimeout))

				if pingErr := conn.WriteMessage(websocket.PingMessage, nil); pingErr != nil {
					return
				}
			}
		}
	}()
}
