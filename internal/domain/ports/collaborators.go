package ports

import (
	"context"
	"io"
	"time"

	"github.com/rafabene/crewup-backend/internal/domain/events"
)

// Clock fornece o instante atual (injetável em testes)
type Clock interface {
	Now() time.Time
}

// ClockFunc adapta uma função para Clock
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock usa o relógio do sistema em UTC
var SystemClock Clock = ClockFunc(func() time.Time { return time.Now().UTC() })

// EventPublisher entrega eventos ao barramento de saída sem aguardar consumo
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// EventHandler consome eventos do barramento
type EventHandler interface {
	Handle(ctx context.Context, event events.Event) error
}

// Broadcaster envia payloads em tempo real para os clientes inscritos em um tópico
type Broadcaster interface {
	Broadcast(topic string, payload any)
}

// PasswordHasher gera e compara hashes de senha
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// Principal é a identidade resolvida pelo colaborador de autenticação
type Principal struct {
	UserID string
	Email  string
	Name   string
}

// TokenIssuer emite e valida tokens de acesso
type TokenIssuer interface {
	Issue(principal Principal) (string, time.Time, error)
	Verify(token string) (*Principal, error)
}

// OAuthIdentity é a identidade retornada por um provedor OAuth
type OAuthIdentity struct {
	Provider string
	Subject  string
	Email    string
	Name     string
}

// ImageStorage persiste imagens enviadas (avatares)
type ImageStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// Translator resolve mensagens persistidas (ex.: texto de notificações) no idioma padrão
type Translator interface {
	Translate(key string, params map[string]any) string
}

// Sanitizer limpa conteúdo enviado por usuários
type Sanitizer interface {
	RichText(input string) string
	PlainText(input string) string
}
