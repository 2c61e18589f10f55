package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/redis/go-redis/v9"

	domainevents "github.com/rafabene/crewup-backend/internal/domain/events"
	"github.com/rafabene/crewup-backend/internal/domain/ports"
)

// RedisOptions configura o barramento sobre Redis Streams
type RedisOptions struct {
	Stream   string
	Group    string
	Consumer string
	Batch    int64
	Block    time.Duration
	// ClaimIdle é a espera mínima antes de reprocessar uma mensagem pendente
	ClaimIdle time.Duration
	// MaxDeliveries limita as entregas de uma mensagem; ao exceder, ela é descartada
	MaxDeliveries int64
}

// RedisBus publica com XADD e consome via consumer group (XREADGROUP + XACK).
// Mensagens cujo handler falha ficam pendentes no grupo e são retomadas com
// XAUTOCLAIM depois de ClaimIdle, até MaxDeliveries entregas.
type RedisBus struct {
	client   *redis.Client
	opts     RedisOptions
	log      ports.Logger
	mu       sync.RWMutex
	handlers []ports.EventHandler
}

// NewRedisClient cria o cliente a partir de uma URL redis:// e testa a conexão
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// NewRedisBus cria o barramento; o grupo é criado sob demanda em Run/Poll
func NewRedisBus(client *redis.Client, opts RedisOptions, log ports.Logger) *RedisBus {
	if opts.Batch < 1 {
		opts.Batch = 16
	}
	if opts.Block <= 0 {
		opts.Block = 2 * time.Second
	}
	if opts.ClaimIdle <= 0 {
		opts.ClaimIdle = 30 * time.Second
	}
	if opts.MaxDeliveries < 1 {
		opts.MaxDeliveries = 5
	}
	return &RedisBus{client: client, opts: opts, log: log}
}

func (b *RedisBus) Subscribe(handler ports.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, handler)
}

func (b *RedisBus) Publish(ctx context.Context, event domainevents.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	return b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: b.opts.Stream,
		Values: encode(event),
	}).Err()
}

// EnsureGroup cria o consumer group (e o stream) se ainda não existir
func (b *RedisBus) EnsureGroup(ctx context.Context) error {
	err := b.client.XGroupCreateMkStream(ctx, b.opts.Stream, b.opts.Group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

// Run consome o stream até o contexto ser cancelado
func (b *RedisBus) Run(ctx context.Context) error {
	if err := b.EnsureGroup(ctx); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		if ctx.Err() != nil {
			return nil
		}
		if _, err := b.Poll(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			b.log.Error("failed to read event stream", "stream", b.opts.Stream, "error", err)
			time.Sleep(time.Second)
		}
	}
}

// Poll retoma as mensagens pendentes vencidas e lê um lote novo do stream.
// Retorna quantas mensagens foram confirmadas.
func (b *RedisBus) Poll(ctx context.Context) (int, error) {
	b.mu.RLock()
	handlers := append([]ports.EventHandler(nil), b.handlers...)
	b.mu.RUnlock()

	acked, err := b.reclaim(ctx, handlers)
	if err != nil {
		return acked, err
	}

	streams, err := b.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    b.opts.Group,
		Consumer: b.opts.Consumer,
		Streams:  []string{b.opts.Stream, ">"},
		Count:    b.opts.Batch,
		Block:    b.opts.Block,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return acked, nil
		}
		return acked, err
	}

	for _, stream := range streams {
		for _, msg := range stream.Messages {
			ok, err := b.handle(ctx, handlers, msg)
			if err != nil {
				return acked, err
			}
			if ok {
				acked++
			}
		}
	}

	return acked, nil
}

// reclaim assume as mensagens pendentes há mais de ClaimIdle (de qualquer consumidor)
func (b *RedisBus) reclaim(ctx context.Context, handlers []ports.EventHandler) (int, error) {
	messages, _, err := b.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   b.opts.Stream,
		Group:    b.opts.Group,
		Consumer: b.opts.Consumer,
		MinIdle:  b.opts.ClaimIdle,
		Start:    "0-0",
		Count:    b.opts.Batch,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to claim pending events: %w", err)
	}

	acked := 0
	for _, msg := range messages {
		exhausted, err := b.exhausted(ctx, msg.ID)
		if err != nil {
			return acked, err
		}
		if exhausted {
			b.log.Error("dropping event after max deliveries",
				"message_id", msg.ID,
				"max_deliveries", b.opts.MaxDeliveries,
			)
			if err := b.client.XAck(ctx, b.opts.Stream, b.opts.Group, msg.ID).Err(); err != nil {
				return acked, err
			}
			continue
		}

		ok, err := b.handle(ctx, handlers, msg)
		if err != nil {
			return acked, err
		}
		if ok {
			acked++
		}
	}
	return acked, nil
}

// exhausted informa se a mensagem já passou de MaxDeliveries entregas
func (b *RedisBus) exhausted(ctx context.Context, id string) (bool, error) {
	pending, err := b.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: b.opts.Stream,
		Group:  b.opts.Group,
		Start:  id,
		End:    id,
		Count:  1,
	}).Result()
	if err != nil {
		return false, err
	}
	return len(pending) == 1 && pending[0].RetryCount > b.opts.MaxDeliveries, nil
}

// handle despacha uma mensagem e confirma em caso de sucesso.
// Eventos malformados são confirmados e descartados; falhas do handler ficam pendentes.
func (b *RedisBus) handle(ctx context.Context, handlers []ports.EventHandler, msg redis.XMessage) (bool, error) {
	event, err := decode(msg.Values)
	if err != nil {
		b.log.Error("discarding malformed event", "message_id", msg.ID, "error", err)
		return false, b.client.XAck(ctx, b.opts.Stream, b.opts.Group, msg.ID).Err()
	}

	if err := dispatch(ctx, handlers, event); err != nil {
		b.log.Error("failed to handle event",
			"message_id", msg.ID,
			"event_id", event.ID,
			"type", string(event.Type),
			"error", err,
		)
		return false, nil
	}

	if err := b.client.XAck(ctx, b.opts.Stream, b.opts.Group, msg.ID).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (b *RedisBus) Close() error {
	return b.client.Close()
}

func encode(event domainevents.Event) map[string]any {
	return map[string]any{
		"id":             event.ID,
		"type":           string(event.Type),
		"post_id":        event.PostID,
		"application_id": event.ApplicationID,
		"applicant_id":   event.ApplicantID,
		"author_id":      event.AuthorID,
		"role":           event.Role,
		"occurred_at":    event.OccurredAt.UTC().Format(time.RFC3339Nano),
	}
}

// decode converte os valores planos do stream em Event
func decode(values map[string]any) (domainevents.Event, error) {
	var event domainevents.Event

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		WeaklyTypedInput: true,
		Result:           &event,
	})
	if err != nil {
		return event, err
	}

	if err := decoder.Decode(values); err != nil {
		return event, err
	}
	if event.Type == "" {
		return event, errors.New("event type is required")
	}

	return event, nil
}
