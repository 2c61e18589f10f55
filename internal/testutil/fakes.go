package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rafabene/crewup-backend/internal/domain/events"
)

// Clock é um relógio controlável
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock cria um relógio parado no instante informado
func NewClock(now time.Time) *Clock {
	return &Clock{now: now.UTC()}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set move o relógio para t
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t.UTC()
}

// Advance avança o relógio
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Publisher grava os eventos publicados
type Publisher struct {
	mu     sync.Mutex
	events []events.Event
	Err    error
}

func (p *Publisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.events = append(p.events, event)
	return nil
}

// Events retorna uma cópia dos eventos publicados
func (p *Publisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

// Types retorna apenas os tipos, na ordem de publicação
func (p *Publisher) Types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]events.Type, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}
	return types
}

// Broadcast é uma mensagem capturada pelo Broadcaster
type Broadcast struct {
	Topic   string
	Payload any
}

// Broadcaster grava as mensagens em tempo real
type Broadcaster struct {
	mu       sync.Mutex
	messages []Broadcast
}

func (b *Broadcaster) Broadcast(topic string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, Broadcast{Topic: topic, Payload: payload})
}

// Topics retorna os tópicos na ordem de envio
func (b *Broadcaster) Topics() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	topics := make([]string, 0, len(b.messages))
	for _, m := range b.messages {
		topics = append(topics, m.Topic)
	}
	return topics
}

// Hasher é um PasswordHasher trivial para testes rápidos
type Hasher struct{}

func (Hasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (Hasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errMismatch
	}
	return nil
}

var errMismatch = errors.New("password mismatch")
