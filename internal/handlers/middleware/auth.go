package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/crewup-backend/internal/domain/errors"
)

const (
	// UserContextKey guarda o usuário autenticado no contexto do Gin
	UserContextKey = "current_user"
	// UserIDContextKey guarda apenas o ID do usuário autenticado
	UserIDContextKey = "current_user_id"
)

// Authenticator resolve um bearer token no usuário ativo correspondente
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entities.User, error)
}

// ErrorResponder escreve a resposta de erro; recebido de fora para evitar ciclo com dto
type ErrorResponder func(c *gin.Context, err error)

// Auth exige um bearer token válido.
// O token pode vir do header Authorization ou do query param access_token (websocket).
func Auth(authenticator Authenticator, respond ErrorResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			respond(c, domainerrors.ErrUnauthorized)
			c.Abort()
			return
		}

		user, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			respond(c, err)
			c.Abort()
			return
		}

		c.Set(UserContextKey, user)
		c.Set(UserIDContextKey, user.ID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			return ""
		}
		return strings.TrimSpace(token)
	}
	return c.Query("access_token")
}

// CurrentUser retorna o usuário autenticado (nil fora de rotas protegidas)
func CurrentUser(c *gin.Context) *entities.User {
	value, exists := c.Get(UserContextKey)
	if !exists {
		return nil
	}
	user, _ := value.(*entities.User)
	return user
}

// CurrentUserID retorna o ID do usuário autenticado
func CurrentUserID(c *gin.Context) string {
	return c.GetString(UserIDContextKey)
}
