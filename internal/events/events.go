package events

import (
	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"
)

// Topics for catalog change and auth notifications. Subscribers are expected
// to react with a full reload rather than patching caches in place.
const (
	TopicProductsChanged   = "store.products.changed"
	TopicCategoriesChanged = "store.categories.changed"
	TopicAuthChanged       = "session.auth.changed"
)

var bus = EventBus.New()

// Bus returns the process-wide event bus.
func Bus() EventBus.Bus {
	return bus
}

// PublishProductsChanged notifies subscribers that product rows changed.
func PublishProductsChanged() {
	zap.L().Debug("publish event", zap.String("topic", TopicProductsChanged))
	bus.Publish(TopicProductsChanged)
}

// PublishCategoriesChanged notifies subscribers that category rows changed.
func PublishCategoriesChanged() {
	zap.L().Debug("publish event", zap.String("topic", TopicCategoriesChanged))
	bus.Publish(TopicCategoriesChanged)
}

// PublishAuthChanged notifies subscribers that the signed-in operator changed.
func PublishAuthChanged(username string) {
	zap.L().Debug("publish event", zap.String("topic", TopicAuthChanged), zap.String("username", username))
	bus.Publish(TopicAuthChanged, username)
}

// Subscribe registers fn for topic, logging instead of failing on a bad handler.
func Subscribe(topic string, fn interface{}) {
	if err := bus.Subscribe(topic, fn); err != nil {
		zap.L().Error("event subscribe failed", zap.String("topic", topic), zap.Error(err))
	}
}

// Unsubscribe removes fn from topic.
func Unsubscribe(topic string, fn interface{}) {
	_ = bus.Unsubscribe(topic, fn)
}
