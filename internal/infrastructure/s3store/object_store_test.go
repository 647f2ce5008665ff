package s3store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/infrastructure/s3store"
)

func TestNew_BucketRequerido(t *testing.T) {
	_, err := s3store.New(context.Background(), s3store.Config{Region: "us-east-1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket")
}

func TestNew_CredencialesEstaticasSinRed(t *testing.T) {
	store, err := s3store.New(context.Background(), s3store.Config{
		Bucket:          "catalog",
		AccessKeyID:     "AKIA",
		SecretAccessKey: "secret",
		Endpoint:        "http://localhost:9000",
		UsePathStyle:    true,
	})

	require.NoError(t, err)
	assert.NotNil(t, store)
}

func TestPublicURL(t *testing.T) {
	cases := []struct {
		name string
		cfg  s3store.Config
		want string
	}{
		{
			name: "host virtual de AWS",
			cfg:  s3store.Config{Bucket: "catalog", Region: "sa-east-1"},
			want: "https://catalog.s3.sa-east-1.amazonaws.com/uploads/products/a.png",
		},
		{
			name: "región por defecto",
			cfg:  s3store.Config{Bucket: "catalog"},
			want: "https://catalog.s3.us-east-1.amazonaws.com/uploads/products/a.png",
		},
		{
			name: "endpoint propio path-style",
			cfg:  s3store.Config{Bucket: "catalog", Endpoint: "http://localhost:9000"},
			want: "http://localhost:9000/catalog/uploads/products/a.png",
		},
		{
			name: "CDN tiene prioridad",
			cfg:  s3store.Config{Bucket: "catalog", Endpoint: "http://localhost:9000", PublicBaseURL: "https://cdn.example.com/img"},
			want: "https://cdn.example.com/img/uploads/products/a.png",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s3store.PublicURL(tc.cfg, "uploads/products/a.png")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
