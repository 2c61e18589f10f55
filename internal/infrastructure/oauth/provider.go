package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/kakao"

	"github.com/rafabene/crewup-backend/internal/domain/entities"
	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/infrastructure/config"
)

// Provider encapsula a configuração OAuth2 e a leitura do userinfo de um provedor
type Provider struct {
	Name        entities.OAuthProvider
	Config      *oauth2.Config
	UserInfoURL string
	parse       func(body []byte) (ports.OAuthIdentity, error)
}

// AuthCodeURL retorna a URL de consentimento com o state informado
func (p *Provider) AuthCodeURL(state string) string {
	return p.Config.AuthCodeURL(state)
}

// Exchange troca o code por token e busca a identidade do usuário
func (p *Provider) Exchange(ctx context.Context, code string) (*ports.OAuthIdentity, error) {
	token, err := p.Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange OAuth code: %w", err)
	}

	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get(p.UserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read user info: %w", err)
	}

	identity, err := p.parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	if identity.Subject == "" {
		return nil, fmt.Errorf("user info without subject")
	}

	identity.Provider = string(p.Name)
	return &identity, nil
}

// Registry contém os provedores configurados
type Registry struct {
	providers map[entities.OAuthProvider]*Provider
}

// NewRegistry registra apenas os provedores com client id e secret
func NewRegistry(cfg config.OAuthConfig) *Registry {
	r := &Registry{providers: make(map[entities.OAuthProvider]*Provider)}

	callback := func(name entities.OAuthProvider) string {
		return cfg.RedirectBaseURL + "/api/v1/auth/oauth/" + string(name) + "/callback"
	}

	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		r.Register(&Provider{
			Name: entities.OAuthProviderGoogle,
			Config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				RedirectURL:  callback(entities.OAuthProviderGoogle),
				Scopes: []string{
					"openid",
					"https://www.googleapis.com/auth/userinfo.email",
					"https://www.googleapis.com/auth/userinfo.profile",
				},
				Endpoint: google.Endpoint,
			},
			UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
			parse:       parseGoogle,
		})
	}

	if cfg.GitHubClientID != "" && cfg.GitHubClientSecret != "" {
		r.Register(&Provider{
			Name: entities.OAuthProviderGitHub,
			Config: &oauth2.Config{
				ClientID:     cfg.GitHubClientID,
				ClientSecret: cfg.GitHubClientSecret,
				RedirectURL:  callback(entities.OAuthProviderGitHub),
				Scopes:       []string{"read:user", "user:email"},
				Endpoint:     github.Endpoint,
			},
			UserInfoURL: "https://api.github.com/user",
			parse:       parseGitHub,
		})
	}

	if cfg.KakaoClientID != "" && cfg.KakaoClientSecret != "" {
		r.Register(&Provider{
			Name: entities.OAuthProviderKakao,
			Config: &oauth2.Config{
				ClientID:     cfg.KakaoClientID,
				ClientSecret: cfg.KakaoClientSecret,
				RedirectURL:  callback(entities.OAuthProviderKakao),
				Scopes:       []string{"account_email", "profile_nickname"},
				Endpoint:     kakao.Endpoint,
			},
			UserInfoURL: "https://kapi.kakao.com/v2/user/me",
			parse:       parseKakao,
		})
	}

	return r
}

// Register adiciona ou substitui um provedor
func (r *Registry) Register(p *Provider) {
	r.providers[p.Name] = p
}

// Get retorna o provedor configurado
func (r *Registry) Get(name string) (*Provider, bool) {
	p, ok := r.providers[entities.OAuthProvider(name)]
	return p, ok
}

type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func parseGoogle(body []byte) (ports.OAuthIdentity, error) {
	var info googleUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return ports.OAuthIdentity{}, err
	}
	return ports.OAuthIdentity{Subject: info.ID, Email: info.Email, Name: info.Name}, nil
}

type githubUserInfo struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func parseGitHub(body []byte) (ports.OAuthIdentity, error) {
	var info githubUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return ports.OAuthIdentity{}, err
	}
	name := info.Name
	if name == "" {
		name = info.Login
	}
	subject := ""
	if info.ID != 0 {
		subject = strconv.FormatInt(info.ID, 10)
	}
	return ports.OAuthIdentity{Subject: subject, Email: info.Email, Name: name}, nil
}

type kakaoUserInfo struct {
	ID           int64 `json:"id"`
	KakaoAccount struct {
		Email   string `json:"email"`
		Profile struct {
			Nickname string `json:"nickname"`
		} `json:"profile"`
	} `json:"kakao_account"`
}

func parseKakao(body []byte) (ports.OAuthIdentity, error) {
	var info kakaoUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return ports.OAuthIdentity{}, err
	}
	subject := ""
	if info.ID != 0 {
		subject = strconv.FormatInt(info.ID, 10)
	}
	return ports.OAuthIdentity{
		Subject: subject,
		Email:   info.KakaoAccount.Email,
		Name:    info.KakaoAccount.Profile.Nickname,
	}, nil
}
