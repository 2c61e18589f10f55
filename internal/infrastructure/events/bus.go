package events

import (
	"context"
	"fmt"

	domainevents "github.com/rafabene/crewup-backend/internal/domain/events"
	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/infrastructure/config"
)

// Bus é um barramento de eventos com publicação e consumo
type Bus interface {
	ports.EventPublisher
	Subscribe(handler ports.EventHandler)
	Run(ctx context.Context) error
	Close() error
}

// dispatch entrega o evento a todos os handlers e retorna o primeiro erro
func dispatch(ctx context.Context, handlers []ports.EventHandler, event domainevents.Event) error {
	var first error
	for _, h := range handlers {
		if err := h.Handle(ctx, event); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewBus cria o barramento configurado em EVENTS_DRIVER (memory ou redis)
func NewBus(ctx context.Context, cfg config.EventsConfig, log ports.Logger) (Bus, error) {
	switch cfg.Driver {
	case "redis":
		client, err := NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return NewRedisBus(client, RedisOptions{
			Stream:        cfg.Stream,
			Group:         cfg.Group,
			Consumer:      cfg.Consumer,
			ClaimIdle:     cfg.ClaimIdle,
			MaxDeliveries: cfg.MaxDeliveries,
		}, log), nil
	case "memory", "":
		return NewMemoryBus(0, log), nil
	}
	return nil, fmt.Errorf("unknown events driver %q", cfg.Driver)
}
