// Package cache guarda en Redis las páginas de la consulta de stock.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/stock-almacenes/internal/application/dto"
	"github.com/jhoicas/stock-almacenes/internal/application/inventory"
	"github.com/jhoicas/stock-almacenes/pkg/logger"
)

var _ inventory.StockCache = (*RedisStockCache)(nil)

const genKey = "stock:gen"

// RedisStockCache invalida por generación: cada escritura incrementa stock:gen y las claves
// de la generación anterior expiran solas por TTL.
type RedisStockCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// NewRedisStockCache construye la caché. Cualquier fallo de Redis se trata como miss.
func NewRedisStockCache(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *RedisStockCache {
	return &RedisStockCache{rdb: rdb, ttl: ttl, log: log.Component("cache")}
}

func (c *RedisStockCache) Generation(ctx context.Context) (string, bool) {
	gen, err := c.rdb.Get(ctx, genKey).Result()
	if errors.Is(err, redis.Nil) {
		return "0", true
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("redis generación")
		return "", false
	}
	return gen, true
}

func (c *RedisStockCache) GetPage(ctx context.Context, gen, key string) (*dto.StockPageResponse, bool) {
	raw, err := c.rdb.Get(ctx, pageKey(gen, key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Msg("redis get")
		}
		return nil, false
	}
	var page dto.StockPageResponse
	if err := json.Unmarshal(raw, &page); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("página en caché corrupta")
		return nil, false
	}
	return &page, true
}

func (c *RedisStockCache) SetPage(ctx context.Context, gen, key string, page *dto.StockPageResponse) {
	raw, err := json.Marshal(page)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, pageKey(gen, key), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("redis set")
	}
}

func (c *RedisStockCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Incr(ctx, genKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("redis incr")
	}
}

func pageKey(gen, key string) string {
	return "stock:page:" + gen + ":" + key
}

// Ping verifica la conexión al arrancar.
func Ping(ctx context.Context, rdb *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return rdb.Ping(ctx).Err()
}
