package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get and TTL when the key is absent or expired.
var ErrMiss = errors.New("cache: key not found")

// Redis is a JSON-encoding cache backed by a Redis server.
type Redis struct {
	client *redis.Client
	prefix string
}

type Options struct {
	Address  string
	Password string
	DB       int
	Prefix   string
}

type Option func(*Options)

func WithAddress(addr string) Option {
	return func(o *Options) {
		o.Address = addr
	}
}

func WithPassword(pass string) Option {
	return func(o *Options) {
		o.Password = pass
	}
}

func WithDB(db int) Option {
	return func(o *Options) {
		o.DB = db
	}
}

// WithPrefix namespaces every key written by this client.
func WithPrefix(prefix string) Option {
	return func(o *Options) {
		o.Prefix = prefix
	}
}

// NewRedis connects to Redis and verifies the connection with PING.
func NewRedis(ctx context.Context, opts ...Option) (*Redis, error) {
	options := &Options{
		Address: "localhost:6379",
		Prefix:  "pitchvalidation:",
	}

	for _, opt := range opts {
		opt(options)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     options.Address,
		Password: options.Password,
		DB:       options.DB,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", options.Address, err)
	}

	return &Redis{client: client, prefix: options.Prefix}, nil
}

func (c *Redis) key(k string) string {
	return c.prefix + k
}

func (c *Redis) Get(ctx context.Context, key string, dest any) error {
	val, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(val, dest)
}

func (c *Redis) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(key), data, expiration).Err()
}

// TTL reports the remaining lifetime of key. Zero means no expiry.
func (c *Redis) TTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := c.client.TTL(ctx, c.key(key)).Result()
	if err != nil {
		return 0, err
	}
	switch ttl {
	case -2:
		return 0, ErrMiss
	case -1:
		return 0, nil
	}
	return ttl, nil
}

func (c *Redis) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Redis) Close() error {
	return c.client.Close()
}
