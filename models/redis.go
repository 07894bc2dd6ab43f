package models

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheNamespace prefixes every key the storefront writes so a shared Redis
// can be flushed per service.
const CacheNamespace = "storefront"

const redisPingTimeout = 3 * time.Second

var RedisClient *redis.Client

type RedisOptions struct {
	URL      string
	Addr     string
	Password string
}

// InitRedis connects the shared cache client. With nothing configured, or
// when the server does not answer, RedisClient stays nil and callers skip
// caching.
func InitRedis(ctx context.Context, opts RedisOptions) {
	var opt *redis.Options
	switch {
	case opts.URL != "":
		parsed, err := redis.ParseURL(opts.URL)
		if err != nil {
			log.Printf("Invalid REDIS_URL, running without cache: %v", err)
			return
		}
		opt = parsed
	case opts.Addr != "":
		opt = &redis.Options{Addr: opts.Addr, Password: opts.Password}
	default:
		log.Println("Redis not configured, running without cache")
		return
	}

	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("Redis unreachable at %s, running without cache: %v", opt.Addr, err)
		client.Close()
		return
	}

	RedisClient = client
	log.Printf("Redis connected (%s)", opt.Addr)
}

// CacheKey joins parts under CacheNamespace, e.g. storefront:catalog:products.
func CacheKey(parts ...string) string {
	return CacheNamespace + ":" + strings.Join(parts, ":")
}

func CloseRedis() {
	if RedisClient != nil {
		RedisClient.Close()
		RedisClient = nil
	}
}
