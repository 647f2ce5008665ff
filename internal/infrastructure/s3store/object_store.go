package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/jhoicas/catalog-api/internal/application/ports"
)

var _ ports.ObjectStore = (*ObjectStore)(nil)

// Config opciones del backend S3.
type Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string // vacío = cadena de credenciales por defecto de AWS
	SecretAccessKey string
	Endpoint        string // opcional, para servicios compatibles con S3 (URL completa)
	UsePathStyle    bool
	PublicBaseURL   string // opcional: CDN delante del bucket
	PublicACL       bool   // subir con ACL public-read (desactivar si el bucket tiene ACLs deshabilitadas)
}

// ObjectStore adaptador de ports.ObjectStore sobre aws-sdk-go-v2 con el uploader de s3/manager.
type ObjectStore struct {
	uploader *manager.Uploader
	cfg      Config
}

// New construye el cliente S3. No hace llamadas de red.
func New(ctx context.Context, cfg Config) (*ObjectStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3: bucket requerido")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3: cargar config AWS: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.UsePathStyle
		}
	})
	return &ObjectStore{uploader: manager.NewUploader(client), cfg: cfg}, nil
}

// Upload sube data y devuelve la URL pública del objeto.
func (s *ObjectStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}
	if s.cfg.PublicACL {
		input.ACL = types.ObjectCannedACLPublicRead
	}
	if _, err := s.uploader.Upload(ctx, input); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("s3: put %s: %s: %w", key, apiErr.ErrorCode(), err)
		}
		return "", fmt.Errorf("s3: put %s: %w", key, err)
	}
	return PublicURL(s.cfg, key)
}

// PublicURL resuelve la URL pública de key según la configuración:
// PublicBaseURL > endpoint propio (path-style) > host virtual de AWS.
func PublicURL(cfg Config, key string) (string, error) {
	var (
		u   string
		err error
	)
	switch {
	case cfg.PublicBaseURL != "":
		u, err = url.JoinPath(cfg.PublicBaseURL, key)
	case cfg.Endpoint != "":
		u, err = url.JoinPath(cfg.Endpoint, cfg.Bucket, key)
	default:
		region := cfg.Region
		if region == "" {
			region = "us-east-1"
		}
		host := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, region)
		u, err = url.JoinPath(host, strings.TrimPrefix(key, "/"))
	}
	if err != nil {
		return "", fmt.Errorf("s3: url pública: %w", err)
	}
	return u, nil
}
