package notify

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const alertKeyPrefix = "promowatch:alert:"

// NewRedisClient parses url, applies conservative timeouts and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.DialTimeout = 5 * time.Second

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// AlertLog remembers which alerts were already sent. A nil AlertLog lets
// every alert through.
type AlertLog struct {
	Client *redis.Client
	TTL    time.Duration
}

func alertKey(productID uint64, flag string) string {
	sum := sha1.Sum([]byte(flag))
	return fmt.Sprintf("%s%d:%s", alertKeyPrefix, productID, hex.EncodeToString(sum[:]))
}

// Claim reports whether the alert is new and marks it as sent.
func (a *AlertLog) Claim(ctx context.Context, productID uint64, flag string) (bool, error) {
	if a == nil || a.Client == nil {
		return true, nil
	}
	return a.Client.SetNX(ctx, alertKey(productID, flag), time.Now().UTC().Format(time.RFC3339), a.TTL).Result()
}

// Release forgets a claimed alert so the next run retries it.
func (a *AlertLog) Release(ctx context.Context, productID uint64, flag string) error {
	if a == nil || a.Client == nil {
		return nil
	}
	return a.Client.Del(ctx, alertKey(productID, flag)).Err()
}
