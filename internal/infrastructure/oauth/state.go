package oauth

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const (
	sessionName = "crewup_oauth"
	stateKey    = "state"
	stateMaxAge = 10 * 60
)

// ErrInvalidState indica state ausente, expirado ou divergente
var ErrInvalidState = errors.New("invalid oauth state")

// StateStore guarda o state do fluxo OAuth em um cookie assinado
type StateStore struct {
	store *sessions.CookieStore
}

// NewStateStore cria o store de state; secure controla o atributo Secure do cookie
func NewStateStore(secret string, secure bool) *StateStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   stateMaxAge,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &StateStore{store: store}
}

// Issue gera um state aleatório e o grava no cookie
func (s *StateStore) Issue(w http.ResponseWriter, r *http.Request) (string, error) {
	key := securecookie.GenerateRandomKey(32)
	if key == nil {
		return "", errors.New("failed to generate oauth state")
	}
	state := base64.RawURLEncoding.EncodeToString(key)

	session, err := s.store.Get(r, sessionName)
	if err != nil {
		// Cookie antigo/inválido: seguir com sessão nova
		session, _ = s.store.New(r, sessionName)
	}
	session.Values[stateKey] = state

	if err := session.Save(r, w); err != nil {
		return "", err
	}
	return state, nil
}

// Validate compara o state recebido com o do cookie e o consome
func (s *StateStore) Validate(w http.ResponseWriter, r *http.Request, state string) error {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return ErrInvalidState
	}

	expected, _ := session.Values[stateKey].(string)
	if expected == "" || state == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(state)) != 1 {
		return ErrInvalidState
	}

	delete(session.Values, stateKey)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
