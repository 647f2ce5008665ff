package main

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/jhoicas/catalog-api/internal/application/ports"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
	"github.com/jhoicas/catalog-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalog-api/internal/infrastructure/miniostore"
	"github.com/jhoicas/catalog-api/internal/infrastructure/postgres"
	"github.com/jhoicas/catalog-api/internal/infrastructure/redisstore"
	"github.com/jhoicas/catalog-api/internal/infrastructure/s3store"
	"github.com/jhoicas/catalog-api/pkg/config"
)

// docStore repositorios del driver elegido y su cierre.
type docStore struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	close      func()
}

func newDocStore(ctx context.Context, cfg *config.Config) (*docStore, error) {
	switch cfg.DocStore.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if cfg.DB.AutoSchema {
			if err := postgres.EnsureSchema(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &docStore{
			categories: postgres.NewCategoryRepository(pool),
			products:   postgres.NewProductRepository(pool),
			close:      pool.Close,
		}, nil
	case config.DriverRedis:
		client, err := redisstore.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return &docStore{
			categories: redisstore.NewCategoryRepository(client, cfg.Redis.Prefix),
			products:   redisstore.NewProductRepository(client, cfg.Redis.Prefix),
			close:      func() { _ = client.Close() },
		}, nil
	case config.DriverMemory:
		return &docStore{
			categories: memory.NewCategoryRepository(),
			products:   memory.NewProductRepository(),
			close:      func() {},
		}, nil
	}
	return nil, fmt.Errorf("docstore driver no soportado: %s", cfg.DocStore.Driver)
}

// objectStore almacén de imágenes; blobs solo se define cuando la app sirve los blobs ella misma.
type objectStore struct {
	store ports.ObjectStore
	blobs ports.BlobReader
}

func newObjectStore(ctx context.Context, cfg *config.Config) (*objectStore, error) {
	sc := cfg.Storage
	switch sc.Driver {
	case config.DriverMinIO:
		store, err := miniostore.New(ctx, miniostore.Config{
			Endpoint:      sc.Endpoint,
			AccessKey:     sc.AccessKey,
			SecretKey:     sc.SecretKey,
			Bucket:        sc.Bucket,
			Region:        sc.Region,
			UseSSL:        sc.UseSSL,
			PublicBaseURL: sc.PublicBaseURL,
			Prefix:        sc.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return &objectStore{store: store}, nil
	case config.DriverS3:
		endpoint := sc.Endpoint
		if endpoint != "" && !strings.Contains(endpoint, "://") {
			scheme := "http://"
			if sc.UseSSL {
				scheme = "https://"
			}
			endpoint = scheme + endpoint
		}
		store, err := s3store.New(ctx, s3store.Config{
			Region:          sc.Region,
			Bucket:          sc.Bucket,
			AccessKeyID:     sc.AccessKey,
			SecretAccessKey: sc.SecretKey,
			Endpoint:        endpoint,
			UsePathStyle:    sc.UsePathStyle,
			PublicBaseURL:   sc.PublicBaseURL,
			PublicACL:       sc.PublicACL,
		})
		if err != nil {
			return nil, err
		}
		return &objectStore{store: store}, nil
	case config.DriverMemory:
		base := sc.PublicBaseURL
		if base == "" {
			host := cfg.HTTP.Host
			if host == "" || host == "0.0.0.0" {
				host = "localhost"
			}
			base = "http://" + net.JoinHostPort(host, strconv.Itoa(cfg.HTTP.Port)) + "/media"
		}
		store := memory.NewObjectStore(base)
		return &objectStore{store: store, blobs: store}, nil
	}
	return nil, fmt.Errorf("storage driver no soportado: %s", sc.Driver)
}
