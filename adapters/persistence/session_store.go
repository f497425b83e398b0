package persistence

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/colleaguesnet/colleagues-bot/internal/domain/session"
	"github.com/colleaguesnet/colleagues-bot/pkg/apperror"
)

const (
	quotaTTL   = 48 * time.Hour
	skippedTTL = time.Hour
)

// consumeQuotaScript is a check-and-increment with a cap, so two concurrent
// requests cannot both take the last slot of the day.
var consumeQuotaScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
if current >= tonumber(ARGV[1]) then
	return 0
end
redis.call('INCR', KEYS[1])
redis.call('EXPIRE', KEYS[1], ARGV[2])
return 1
`)

type redisSessionStore struct {
	rdb *redis.Client
	now func() time.Time
}

func NewRedisSessionStore(rdb *redis.Client) session.Store {
	return &redisSessionStore{rdb: rdb, now: time.Now}
}

// NewRedisSessionStoreWithClock is used by tests to control the calendar day.
func NewRedisSessionStoreWithClock(rdb *redis.Client, now func() time.Time) session.Store {
	return &redisSessionStore{rdb: rdb, now: now}
}

// The key carries the calendar date, so the counter resets at midnight
// without an explicit rollover step.
func (s *redisSessionStore) quotaKey(userID int64) string {
	return fmt.Sprintf("quota:%d:%s", userID, s.now().Format("2006-01-02"))
}

func skippedKey(userID int64) string {
	return fmt.Sprintf("search:skipped:%d", userID)
}

func (s *redisSessionStore) ConsumeQuota(ctx context.Context, userID int64, limit int) (bool, error) {
	res, err := consumeQuotaScript.Run(ctx, s.rdb,
		[]string{s.quotaKey(userID)},
		limit, int(quotaTTL.Seconds()),
	).Int()
	if err != nil {
		return false, apperror.NewInternal("failed to consume connection quota", err)
	}
	return res == 1, nil
}

func (s *redisSessionStore) ResetSkipped(ctx context.Context, userID int64) error {
	if err := s.rdb.Del(ctx, skippedKey(userID)).Err(); err != nil {
		return apperror.NewInternal("failed to reset skip list", err)
	}
	return nil
}

func (s *redisSessionStore) AddSkipped(ctx context.Context, userID, skippedID int64) error {
	key := skippedKey(userID)
	pipe := s.rdb.TxPipeline()
	pipe.SAdd(ctx, key, skippedID)
	pipe.Expire(ctx, key, skippedTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperror.NewInternal("failed to record skipped profile", err)
	}
	return nil
}

func (s *redisSessionStore) ListSkipped(ctx context.Context, userID int64) ([]int64, error) {
	members, err := s.rdb.SMembers(ctx, skippedKey(userID)).Result()
	if err != nil {
		return nil, apperror.NewInternal("failed to read skip list", err)
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
