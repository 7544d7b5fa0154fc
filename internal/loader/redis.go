package loader

import (
	"context"
	"fmt"

	apperrors "github.com/Adithya-Monish-Kumar-K/abstract-ranker/pkg/errors"
	pkgredis "github.com/Adithya-Monish-Kumar-K/abstract-ranker/pkg/redis"
	"github.com/Adithya-Monish-Kumar-K/abstract-ranker/pkg/resilience"
)

// KeyGetter is the subset of pkg/redis.Client used by RedisSource.
type KeyGetter interface {
	Get(ctx context.Context, key string) (string, error)
}

// RedisSource reads abstracts stored under Prefix+id. Transient errors are
// retried; a missing key fails at once.
type RedisSource struct {
	client KeyGetter
	prefix string
	retry  resilience.RetryConfig
}

func NewRedisSource(client KeyGetter, prefix string, retry resilience.RetryConfig) *RedisSource {
	return &RedisSource{client: client, prefix: prefix, retry: retry}
}

func (s *RedisSource) Load(ctx context.Context, id string) (string, error) {
	key := s.prefix + id
	var text string
	err := resilience.Retry(ctx, "redis get "+key, s.retry, func() error {
		v, err := s.client.Get(ctx, key)
		if err != nil {
			if pkgredis.IsNilError(err) {
				return resilience.Permanent(fmt.Errorf("key %s not found", key))
			}
			return err
		}
		text = v
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrDocumentLoad, err)
	}
	return text, nil
}
