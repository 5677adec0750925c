package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/rice-crc/daastapi/internal/domain"
)

type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

// Publish broadcasts a catalog lifecycle event on the shared channel.
func (s *SignalService) Publish(ctx context.Context, event domain.Event) error {

	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, domain.EventChannel, jsonstr).Err()
	if err != nil {
		return err
	}

	return nil
}

// Realtime forwards published events to output, filtered by the document
// key prefixes most recently received on input. It returns when the
// context is cancelled or input is closed.
func (s *SignalService) Realtime(ctx context.Context, input <-chan []string, output chan<- domain.Event) {
	pubsub := s.rdb.Subscribe(ctx, domain.EventChannel)
	defer pubsub.Close()
	messages := pubsub.Channel()

	var prefixes []string
	for {
		select {
		case <-ctx.Done():
			return
		case next, ok := <-input:
			if !ok {
				return
			}
			prefixes = next
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var event domain.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.ErrorContext(
					ctx, "Failed to decode catalog event",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				continue
			}
			if !matchesPrefix(prefixes, event.DocumentKey) {
				continue
			}
			select {
			case output <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}

func matchesPrefix(prefixes []string, key string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}
