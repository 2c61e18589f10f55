package events

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	domainevents "github.com/rafabene/crewup-backend/internal/domain/events"
	"github.com/rafabene/crewup-backend/internal/domain/ports"
)

// ErrQueueFull indica que o buffer do barramento em memória está cheio
var ErrQueueFull = errors.New("event queue full")

// MemoryBus entrega eventos dentro do processo por um canal com buffer
type MemoryBus struct {
	queue    chan domainevents.Event
	log      ports.Logger
	mu       sync.RWMutex
	handlers []ports.EventHandler
	once     sync.Once
}

// NewMemoryBus cria um barramento em memória
func NewMemoryBus(buffer int, log ports.Logger) *MemoryBus {
	if buffer < 1 {
		buffer = 256
	}
	return &MemoryBus{
		queue: make(chan domainevents.Event, buffer),
		log:   log,
	}
}

func (b *MemoryBus) Subscribe(handler ports.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, handler)
}

// Publish não bloqueia: com o buffer cheio o evento é descartado com erro
func (b *MemoryBus) Publish(_ context.Context, event domainevents.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	select {
	case b.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run consome a fila até o contexto ser cancelado
func (b *MemoryBus) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-b.queue:
			if !ok {
				return nil
			}
			b.handle(ctx, event)
		}
	}
}

func (b *MemoryBus) handle(ctx context.Context, event domainevents.Event) {
	b.mu.RLock()
	handlers := append([]ports.EventHandler(nil), b.handlers...)
	b.mu.RUnlock()

	if err := dispatch(ctx, handlers, event); err != nil {
		b.log.Error("failed to handle event",
			"event_id", event.ID,
			"type", string(event.Type),
			"error", err,
		)
	}
}

func (b *MemoryBus) Close() error {
	b.once.Do(func() { close(b.queue) })
	return nil
}
