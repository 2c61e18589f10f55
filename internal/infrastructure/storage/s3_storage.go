package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/rafabene/crewup-backend/internal/domain/ports"
	"github.com/rafabene/crewup-backend/internal/infrastructure/config"
)

// ErrStorageDisabled indica que nenhum bucket foi configurado
var ErrStorageDisabled = errors.New("image storage is not configured")

// objectPutter é o subconjunto do cliente S3 usado pelo store
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3ImageStorage implementa ports.ImageStorage sobre um bucket S3
type S3ImageStorage struct {
	client        objectPutter
	bucket        string
	publicBaseURL string
}

// NewS3ImageStorage carrega as credenciais AWS do ambiente e cria o cliente
func NewS3ImageStorage(ctx context.Context, cfg config.StorageConfig) (ports.ImageStorage, error) {
	if cfg.Bucket == "" {
		return DisabledStorage{}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicBaseURL := cfg.PublicBaseURL
	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return newS3ImageStorage(client, cfg.Bucket, publicBaseURL), nil
}

func newS3ImageStorage(client objectPutter, bucket, publicBaseURL string) *S3ImageStorage {
	return &S3ImageStorage{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

// Upload grava o objeto e retorna a URL pública
func (s *S3ImageStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return s.publicBaseURL + "/" + key, nil
}

// DisabledStorage rejeita uploads quando S3 não está configurado
type DisabledStorage struct{}

func (DisabledStorage) Upload(context.Context, string, string, io.Reader) (string, error) {
	return "", ErrStorageDisabled
}
