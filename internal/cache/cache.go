package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client оборачивает redis.Client и ведет себя как промах кеша при любой
// недоступности Redis. Нулевой *Client тоже допустим: кеш просто выключен.
type Client struct {
	client *redis.Client
}

func New(addr, password string, db int) *Client {
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

func (c *Client) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return errors.New("кеш отключен")
	}
	return c.client.Ping(ctx).Err()
}

func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}

// Get возвращает значение или nil при промахе и недоступности Redis.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if !c.Enabled() {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, nil
	}
	return res, nil
}

func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	_ = c.client.Set(ctx, key, value, ttl).Err()
	return nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	if !c.Enabled() {
		return nil
	}
	_ = c.client.Del(ctx, key).Err()
	return nil
}

// GetJSON декодирует значение в dst и возвращает false при промахе.
func (c *Client) GetJSON(ctx context.Context, key string, dst interface{}) bool {
	raw, _ := c.Get(ctx, key)
	if raw == nil {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func (c *Client) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.Set(ctx, key, raw, ttl)
}

// Generation возвращает текущее поколение пространства имен. Ключи строятся
// с номером поколения, поэтому Bump делает все старые ключи недостижимыми.
func (c *Client) Generation(ctx context.Context, namespace string) int64 {
	if !c.Enabled() {
		return 0
	}
	gen, err := c.client.Get(ctx, generationKey(namespace)).Int64()
	if err != nil {
		return 0
	}
	return gen
}

func (c *Client) Bump(ctx context.Context, namespace string) {
	if !c.Enabled() {
		return
	}
	_ = c.client.Incr(ctx, generationKey(namespace)).Err()
}

func generationKey(namespace string) string {
	return namespace + ":gen"
}

// Key собирает ключ вида namespace:gen:part1:part2.
func Key(namespace string, generation int64, parts ...string) string {
	key := fmt.Sprintf("%s:%d", namespace, generation)
	for _, p := range parts {
		key += ":" + p
	}
	return key
}
