package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	"github.com/rafabene/crewup-backend/internal/infrastructure/config"
)

func TestParsers(t *testing.T) {
	t.Run("google", func(t *testing.T) {
		id, err := parseGoogle([]byte(`{"id":"g-1","email":"ana@example.com","name":"Ana"}`))
		require.NoError(t, err)
		assert.Equal(t, "g-1", id.Subject)
		assert.Equal(t, "ana@example.com", id.Email)
	})

	t.Run("github usa login quando não há nome", func(t *testing.T) {
		id, err := parseGitHub([]byte(`{"id":42,"login":"ana-dev","email":null}`))
		require.NoError(t, err)
		assert.Equal(t, "42", id.Subject)
		assert.Equal(t, "ana-dev", id.Name)
	})

	t.Run("kakao", func(t *testing.T) {
		id, err := parseKakao([]byte(`{"id":7,"kakao_account":{"email":"k@example.com","profile":{"nickname":"민지"}}}`))
		require.NoError(t, err)
		assert.Equal(t, "7", id.Subject)
		assert.Equal(t, "민지", id.Name)
	})
}

func TestProviderExchange(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"Bearer"}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":"g-1","email":"ana@example.com","name":"Ana"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	provider := &Provider{
		Name: entities.OAuthProviderGoogle,
		Config: &oauth2.Config{
			ClientID:     "client",
			ClientSecret: "secret",
			Endpoint: oauth2.Endpoint{
				AuthURL:   server.URL + "/auth",
				TokenURL:  server.URL + "/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		UserInfoURL: server.URL + "/userinfo",
		parse:       parseGoogle,
	}

	identity, err := provider.Exchange(context.Background(), "code")
	require.NoError(t, err)
	assert.Equal(t, "google", identity.Provider)
	assert.Equal(t, "g-1", identity.Subject)
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry(config.OAuthConfig{
		GoogleClientID:     "id",
		GoogleClientSecret: "secret",
		KakaoClientID:      "kid",
		RedirectBaseURL:    "http://localhost:8080",
	})

	google, ok := registry.Get("google")
	require.True(t, ok)
	assert.Equal(t, "http://localhost:8080/api/v1/auth/oauth/google/callback", google.Config.RedirectURL)

	_, ok = registry.Get("kakao")
	assert.False(t, ok, "provedor sem secret não deve ser registrado")

	_, ok = registry.Get("github")
	assert.False(t, ok)
}

func TestStateStore(t *testing.T) {
	store := NewStateStore("0123456789abcdef0123456789abcdef", false)

	issueRec := httptest.NewRecorder()
	state, err := store.Issue(issueRec, httptest.NewRequest(http.MethodGet, "/login", nil))
	require.NoError(t, err)
	require.NotEmpty(t, state)

	cookies := issueRec.Result().Cookies()
	require.NotEmpty(t, cookies)

	callback := func(value string) error {
		req := httptest.NewRequest(http.MethodGet, "/callback", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		return store.Validate(httptest.NewRecorder(), req, value)
	}

	t.Run("state divergente é rejeitado", func(t *testing.T) {
		assert.ErrorIs(t, callback("outro"), ErrInvalidState)
	})

	t.Run("state correto é aceito", func(t *testing.T) {
		assert.NoError(t, callback(state))
	})

	t.Run("sem cookie é rejeitado", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/callback", nil)
		assert.ErrorIs(t, store.Validate(httptest.NewRecorder(), req, state), ErrInvalidState)
	})
}
