package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/thurahtetaung/universal-yoga/config"
)

// ErrPendingNotFound means the key is unknown, already taken or expired.
var ErrPendingNotFound = errors.New("pending entry not found")

// Client wraps go-redis. It holds pending course-edit decisions and the
// sync rate-limit counters.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects and pings.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Pending decisions ──

const pendingPrefix = "course_edit:pending:"

// SavePending stores data under token. ttl <= 0 keeps it until taken.
func (c *Client) SavePending(ctx context.Context, token string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return c.rdb.Set(ctx, pendingPrefix+token, data, ttl).Err()
}

// TakePending reads and removes the entry in one step, so a token resolves
// at most once.
func (c *Client) TakePending(ctx context.Context, token string) ([]byte, error) {
	data, err := c.rdb.GetDel(ctx, pendingPrefix+token).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrPendingNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// ── Rate limiting ──

// CheckRateLimit counts a hit against key in a fixed window and reports
// whether the caller is still within limit.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= int64(limit), nil
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
