package redisstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalog-api/pkg/config"
	"github.com/redis/go-redis/v9"
)

// NewClient crea el cliente Redis y verifica la conexión con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// keys arma los nombres de clave bajo un prefijo común.
type keys struct {
	prefix string
}

func (k keys) category(id string) string { return k.prefix + ":category:" + id }
func (k keys) categories() string        { return k.prefix + ":categories" }
func (k keys) product(id string) string  { return k.prefix + ":product:" + id }
func (k keys) products() string          { return k.prefix + ":products" }

func (k keys) productsByCategory(categoryID string) string {
	return k.prefix + ":products:category:" + categoryID
}
