package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config contém todas as configurações da aplicação
type Config struct {
	Env      string
	Server   ServerConfig
	Database DatabaseConfig
	Events   EventsConfig
	JWT      JWTConfig
	OAuth    OAuthConfig
	Session  SessionConfig
	Storage  StorageConfig
	Logging  LoggingConfig
	CORS     CORSConfig
	I18n     I18nConfig
}

type ServerConfig struct {
	Port    string
	Host    string
	BaseURL string // URL base da API para construir URIs RFC 7807
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	MinConns    int
	MaxIdleTime int
	Debug       bool
	AutoMigrate bool
}

// EventsConfig escolhe o barramento de eventos (memory ou redis)
type EventsConfig struct {
	Driver   string
	RedisURL string
	Stream   string
	Group    string
	Consumer string
	// ClaimIdle é o tempo que uma mensagem não confirmada espera antes de ser reprocessada
	ClaimIdle     time.Duration
	MaxDeliveries int64
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
	Issuer       string
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GitHubClientID     string
	GitHubClientSecret string
	KakaoClientID      string
	KakaoClientSecret  string
	RedirectBaseURL    string // {base}/api/v1/auth/oauth/{provider}/callback
}

type SessionConfig struct {
	Secret string
	Secure bool
}

// StorageConfig configura o bucket S3 de avatares
type StorageConfig struct {
	Bucket        string
	Region        string
	Endpoint      string // opcional (MinIO/LocalStack)
	PublicBaseURL string
}

type LoggingConfig struct {
	Level string
}

type CORSConfig struct {
	AllowedOrigins string
}

type I18nConfig struct {
	DefaultLanguage string
}

// Load carrega as configurações do ambiente; o arquivo .env é opcional
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	accessExpiry, err := time.ParseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRY: %w", err)
	}

	config := &Config{
		Env: v.GetString("ENV"),
		Server: ServerConfig{
			Port:    v.GetString("PORT"),
			Host:    v.GetString("HOST"),
			BaseURL: v.GetString("API_BASE_URL"),
		},
		Database: DatabaseConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASS"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSL_MODE"),
			MaxConns:    v.GetInt("DB_MAX_CONNS"),
			MinConns:    v.GetInt("DB_MIN_CONNS"),
			MaxIdleTime: v.GetInt("DB_MAX_IDLE_TIME"),
			Debug:       v.GetBool("DB_DEBUG"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Events: EventsConfig{
			Driver:        strings.ToLower(v.GetString("EVENTS_DRIVER")),
			RedisURL:      v.GetString("REDIS_URL"),
			Stream:        v.GetString("EVENTS_STREAM"),
			Group:         v.GetString("EVENTS_GROUP"),
			Consumer:      v.GetString("EVENTS_CONSUMER"),
			ClaimIdle:     v.GetDuration("EVENTS_CLAIM_IDLE"),
			MaxDeliveries: v.GetInt64("EVENTS_MAX_DELIVERIES"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
			Issuer:       v.GetString("JWT_ISSUER"),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
			GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
			GitHubClientID:     v.GetString("GITHUB_CLIENT_ID"),
			GitHubClientSecret: v.GetString("GITHUB_CLIENT_SECRET"),
			KakaoClientID:      v.GetString("KAKAO_CLIENT_ID"),
			KakaoClientSecret:  v.GetString("KAKAO_CLIENT_SECRET"),
			RedirectBaseURL:    v.GetString("OAUTH_REDIRECT_BASE_URL"),
		},
		Session: SessionConfig{
			Secret: v.GetString("SESSION_SECRET"),
			Secure: v.GetBool("SESSION_SECURE"),
		},
		Storage: StorageConfig{
			Bucket:        v.GetString("S3_BUCKET"),
			Region:        v.GetString("S3_REGION"),
			Endpoint:      v.GetString("S3_ENDPOINT"),
			PublicBaseURL: v.GetString("S3_PUBLIC_BASE_URL"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
		},
		I18n: I18nConfig{
			DefaultLanguage: v.GetString("I18N_DEFAULT_LANGUAGE"),
		},
	}

	// O cookie de state do OAuth reaproveita o segredo do JWT quando não há um próprio
	if config.Session.Secret == "" {
		config.Session.Secret = config.JWT.Secret
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("API_BASE_URL", "http://localhost:8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "crewup")
	v.SetDefault("DB_NAME", "crewup")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("DB_MAX_IDLE_TIME", 300)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("EVENTS_DRIVER", "memory")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("EVENTS_STREAM", "crewup:events")
	v.SetDefault("EVENTS_GROUP", "crewup-api")
	v.SetDefault("EVENTS_CONSUMER", "api-1")
	v.SetDefault("EVENTS_CLAIM_IDLE", "30s")
	v.SetDefault("EVENTS_MAX_DELIVERIES", 5)
	v.SetDefault("JWT_ACCESS_EXPIRY", "24h")
	v.SetDefault("JWT_ISSUER", "crewup")
	v.SetDefault("S3_REGION", "ap-northeast-2")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("I18N_DEFAULT_LANGUAGE", "en")
}

// Validate verifica os campos obrigatórios
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Events.Driver != "memory" && c.Events.Driver != "redis" {
		return fmt.Errorf("invalid EVENTS_DRIVER %q (memory|redis)", c.Events.Driver)
	}
	return nil
}

// IsProduction indica se a aplicação roda em produção
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Origins retorna a lista de origens CORS
func (c *CORSConfig) Origins() []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// DSN retorna a connection string do PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}
