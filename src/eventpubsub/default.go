package eventpubsub

import (
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"

	"github.com/zzprice/optionrisk/src/eventmodels"
)

var bus EventBus.Bus

func Init() {
	bus = EventBus.New()
}

func Publish(publisherName string, topic eventmodels.EventName, event interface{}) {
	log.Debugf("[%v] Published to topic %s", publisherName, topic)

	bus.Publish(string(topic), event)
}

func PublishError(publisherName string, err error) {
	log.Errorf("[%v] %v", publisherName, err)

	bus.Publish(string(Error), err)
}

// Subscribe registers a synchronous handler. Handlers on one topic run in
// publish order; the engine relies on that for per-symbol sequencing.
func Subscribe(subscriberName string, topic eventmodels.EventName, callbackFn interface{}) error {
	if err := bus.Subscribe(string(topic), callbackFn); err != nil {
		return err
	}

	log.Infof("[%v] Subscribed to topic %s", subscriberName, topic)
	return nil
}

// SubscribeAsync registers a handler that runs on its own goroutine, for
// consumers that tolerate reordering, such as display streams.
func SubscribeAsync(subscriberName string, topic eventmodels.EventName, callbackFn interface{}) error {
	if err := bus.SubscribeAsync(string(topic), callbackFn, false); err != nil {
		return err
	}

	log.Infof("[%v] Subscribed async to topic %s", subscriberName, topic)
	return nil
}

func Unsubscribe(subscriberName string, topic eventmodels.EventName, callbackFn interface{}) error {
	if err := bus.Unsubscribe(string(topic), callbackFn); err != nil {
		return err
	}

	log.Infof("[%v] Unsubscribed from topic %s", subscriberName, topic)
	return nil
}

// WaitAsync blocks until all async handlers have drained.
func WaitAsync() {
	bus.WaitAsync()
}
