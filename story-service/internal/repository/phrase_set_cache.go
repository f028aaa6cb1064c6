package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storyteller-server/shared/interfaces"
)

var _ interfaces.PhraseSetRepository = (*cachedPhraseSetRepository)(nil)

// cachedPhraseSetRepository puts a Redis cache in front of the phrase set
// store. Phrase sets change rarely but are read on every generation, so a
// short TTL keeps reads off Postgres while still picking up newly published
// versions within minutes.
type cachedPhraseSetRepository struct {
	inner  interfaces.PhraseSetRepository
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedPhraseSetRepository wraps a PhraseSetRepository with a Redis cache.
func NewCachedPhraseSetRepository(inner interfaces.PhraseSetRepository, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) interfaces.PhraseSetRepository {
	return &cachedPhraseSetRepository{
		inner:  inner,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.Named("PhraseSetCache"),
	}
}

func phraseSetKey(kind string) string {
	return fmt.Sprintf("safety:phrase_set:%s", kind)
}

// GetLatest serves from Redis when possible, falling through to the inner
// repository on miss or cache failure. Cache errors are logged and ignored;
// the store of record always wins.
func (r *cachedPhraseSetRepository) GetLatest(ctx context.Context, kind string) (*interfaces.PhraseSet, error) {
	key := phraseSetKey(kind)

	raw, err := r.rdb.Get(ctx, key).Bytes()
	if err == nil {
		set := &interfaces.PhraseSet{}
		if unmarshalErr := json.Unmarshal(raw, set); unmarshalErr == nil {
			return set, nil
		}
		r.logger.Warn("Corrupt phrase set cache entry, refetching", zap.String("key", key))
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("Phrase set cache read failed", zap.Error(err), zap.String("key", key))
	}

	set, err := r.inner.GetLatest(ctx, kind)
	if err != nil {
		return nil, err
	}

	if raw, marshalErr := json.Marshal(set); marshalErr == nil {
		if setErr := r.rdb.Set(ctx, key, raw, r.ttl).Err(); setErr != nil {
			r.logger.Warn("Phrase set cache write failed", zap.Error(setErr), zap.String("key", key))
		}
	}
	return set, nil
}
