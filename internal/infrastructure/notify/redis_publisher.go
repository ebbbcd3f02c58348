package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/rdcosta-dev/paysplit-go/internal/domain/event"
	"github.com/rdcosta-dev/paysplit-go/internal/infra/logging"
)

// RedisPublisher fans lifecycle notifications out over redis pub/sub for
// off-process consumers (transaction-history display, UI backends).
type RedisPublisher struct {
	Client  *redis.Client
	Channel string
	Logger  logging.Logger
}

type message struct {
	Type    event.Type `json:"type"`
	Payload any        `json:"payload"`
}

func (p *RedisPublisher) Handle(evt event.Event) error {
	b, err := json.Marshal(message{Type: evt.Type, Payload: evt.Payload})
	if err != nil {
		return err
	}

	if err := p.Client.Publish(context.Background(), p.Channel, b).Err(); err != nil {
		p.Logger.Error("publishing notification to redis", map[string]any{
			"channel":    p.Channel,
			"event-type": string(evt.Type),
			"error":      err.Error(),
		})
		return err
	}

	return nil
}
