package consumer

import (
	"context"
	"encoding/json"
	"log"

	"github.com/Eursukkul/event-service/internal/cache"
	"github.com/Eursukkul/event-service/internal/service"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RevalidationConsumer drops cached views named by change notices.
type RevalidationConsumer struct {
	views cache.ViewCache
}

func NewRevalidationConsumer(views cache.ViewCache) *RevalidationConsumer {
	return &RevalidationConsumer{views: views}
}

// Start listens for change notices until the delivery channel closes.
func (rc *RevalidationConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			rc.handleMessage(msg)
		}
		log.Println("[RevalidationConsumer] channel closed, stopping consumer")
	}()
}

func (rc *RevalidationConsumer) handleMessage(msg amqp.Delivery) {
	var notice service.ChangeNotice
	if err := json.Unmarshal(msg.Body, &notice); err != nil {
		log.Printf("[RevalidationConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	if err := rc.Apply(context.Background(), notice); err != nil {
		log.Printf("[RevalidationConsumer] failed to invalidate %v for %s: %v", notice.Paths, notice.ID, err)
		msg.Nack(false, true) // requeue
		return
	}

	log.Printf("[RevalidationConsumer] %s: invalidated %v", msg.RoutingKey, notice.Paths)
	msg.Ack(false)
}

// Apply invalidates every path in the notice.
func (rc *RevalidationConsumer) Apply(ctx context.Context, notice service.ChangeNotice) error {
	if len(notice.Paths) == 0 {
		return nil
	}
	return rc.views.Invalidate(ctx, notice.Paths...)
}

// Notify applies the notice in-process. It stands in for the broker when
// RABBITMQ_URL is unset so writes still revalidate cached views.
func (rc *RevalidationConsumer) Notify(ctx context.Context, routingKey string, notice service.ChangeNotice) error {
	return rc.Apply(ctx, notice)
}
