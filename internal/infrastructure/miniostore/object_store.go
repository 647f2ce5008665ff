package miniostore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path"

	"github.com/jhoicas/catalog-api/internal/application/ports"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var _ ports.ObjectStore = (*ObjectStore)(nil)

// Config conexión a MinIO (o cualquier servicio compatible con S3 que acepte bucket policies).
type Config struct {
	Endpoint      string // host:puerto, sin esquema
	AccessKey     string
	SecretKey     string
	Bucket        string
	Region        string
	UseSSL        bool
	PublicBaseURL string // opcional: CDN o proxy que apunta a la raíz del bucket
	Prefix        string // prefijo que se publica como lectura anónima
}

// ObjectStore adaptador de ports.ObjectStore sobre minio-go.
type ObjectStore struct {
	client  *minio.Client
	bucket  string
	baseURL string // raíz pública del bucket
}

// New conecta, crea el bucket si no existe y aplica una policy de lectura pública sobre Prefix.
func New(ctx context.Context, cfg Config) (*ObjectStore, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("minio: endpoint requerido")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("minio: bucket requerido")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: crear cliente: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio: verificar bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("minio: crear bucket: %w", err)
		}
	}

	policy, err := publicReadPolicy(cfg.Bucket, cfg.Prefix)
	if err != nil {
		return nil, err
	}
	if err := client.SetBucketPolicy(ctx, cfg.Bucket, policy); err != nil {
		return nil, fmt.Errorf("minio: aplicar policy pública: %w", err)
	}

	return &ObjectStore{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL(cfg),
	}, nil
}

// Upload sube data con el content type recibido y devuelve la URL pública del objeto.
func (s *ObjectStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("minio: put %s: %w", key, err)
	}
	return publicURL(s.baseURL, key)
}

// baseURL raíz pública del bucket: PublicBaseURL tal cual o, sin él, <scheme>://<endpoint>/<bucket> (path-style).
func baseURL(cfg Config) string {
	if cfg.PublicBaseURL != "" {
		return cfg.PublicBaseURL
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + path.Join(cfg.Endpoint, cfg.Bucket)
}

// publicURL devuelve <base>/<key>.
func publicURL(base, key string) (string, error) {
	u, err := url.JoinPath(base, key)
	if err != nil {
		return "", fmt.Errorf("minio: url pública: %w", err)
	}
	return u, nil
}

type policyStatement struct {
	Effect    string              `json:"Effect"`
	Principal map[string][]string `json:"Principal"`
	Action    []string            `json:"Action"`
	Resource  []string            `json:"Resource"`
}

type bucketPolicy struct {
	Version   string            `json:"Version"`
	Statement []policyStatement `json:"Statement"`
}

// publicReadPolicy permite s3:GetObject anónimo sobre bucket/prefix/*.
func publicReadPolicy(bucket, prefix string) (string, error) {
	resource := "arn:aws:s3:::" + path.Join(bucket, prefix, "*")
	p := bucketPolicy{
		Version: "2012-10-17",
		Statement: []policyStatement{{
			Effect:    "Allow",
			Principal: map[string][]string{"AWS": {"*"}},
			Action:    []string{"s3:GetObject"},
			Resource:  []string{resource},
		}},
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("minio: policy: %w", err)
	}
	return string(raw), nil
}
