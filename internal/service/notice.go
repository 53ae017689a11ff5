package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// Routing keys for change notices on the events exchange.
const (
	RouteEventCreated = "event.created"
	RouteEventUpdated = "event.updated"
	RouteOrderCreated = "order.created"
)

// ChangeNotice announces a write and the view paths it makes stale.
type ChangeNotice struct {
	ID    string   `json:"id"`
	Paths []string `json:"paths,omitempty"`
}

// Notifier delivers change notices.
type Notifier interface {
	Notify(ctx context.Context, routingKey string, notice ChangeNotice) error
}

// Broker publishes an encoded message under a routing key.
// *rabbitmq.Publisher implements it.
type Broker interface {
	Publish(ctx context.Context, routingKey, messageID string, body []byte) error
}

type brokerNotifier struct {
	broker Broker
}

// NewBrokerNotifier sends notices as JSON through a message broker.
func NewBrokerNotifier(broker Broker) Notifier {
	return &brokerNotifier{broker: broker}
}

func (n *brokerNotifier) Notify(ctx context.Context, routingKey string, notice ChangeNotice) error {
	body, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("encode notice: %w", err)
	}
	return n.broker.Publish(ctx, routingKey, notice.ID, body)
}

func notify(ctx context.Context, n Notifier, routingKey string, notice ChangeNotice) {
	if n == nil {
		return
	}
	// The write is already committed; a caller hanging up must not drop the notice.
	if err := n.Notify(context.WithoutCancel(ctx), routingKey, notice); err != nil {
		log.Printf("[Notify] failed to publish %s for %s: %v", routingKey, notice.ID, err)
	}
}

func uniquePaths(paths ...string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
