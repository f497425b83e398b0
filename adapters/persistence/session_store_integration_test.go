package persistence

import (
	"context"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/colleaguesnet/colleagues-bot/internal/domain/session"
)

type SessionStoreIntegrationTestSuite struct {
	suite.Suite
	rdb            *goredis.Client
	redisContainer *tcredis.RedisContainer
	clock          *testClock
	store          session.Store
}

// testClock lets a test move the calendar day without sleeping.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (s *SessionStoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	redisContainer, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		s.T().Fatalf("Failed to start redis container: %s", err)
	}
	s.redisContainer = redisContainer

	uri, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		s.T().Fatalf("Failed to get redis connection string: %s", err)
	}

	opts, err := goredis.ParseURL(uri)
	if err != nil {
		s.T().Fatalf("Failed to parse redis URL: %s", err)
	}
	s.rdb = goredis.NewClient(opts)

	s.clock = &testClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	s.store = NewRedisSessionStoreWithClock(s.rdb, s.clock.Now)
}

func (s *SessionStoreIntegrationTestSuite) TearDownSuite() {
	if s.rdb != nil {
		s.rdb.Close()
	}
	if s.redisContainer != nil {
		if err := s.redisContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate redis container: %s", err)
		}
	}
}

func (s *SessionStoreIntegrationTestSuite) SetupTest() {
	s.Require().NoError(s.rdb.FlushAll(context.Background()).Err())
}

func TestSessionStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(SessionStoreIntegrationTestSuite))
}

func (s *SessionStoreIntegrationTestSuite) Test_ConsumeQuota_StopsAtLimit() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := s.store.ConsumeQuota(ctx, 1, 3)
		s.NoError(err)
		s.True(ok, "slot %d should be granted", i+1)
	}

	ok, err := s.store.ConsumeQuota(ctx, 1, 3)
	s.NoError(err)
	s.False(ok)

	// a rejected attempt must not have bumped the counter
	val, err := s.rdb.Get(ctx, "quota:1:2025-06-01").Int()
	s.NoError(err)
	s.Equal(3, val)
}

func (s *SessionStoreIntegrationTestSuite) Test_ConsumeQuota_ConcurrentCallersNeverOversell() {
	ctx := context.Background()
	const limit = 3
	const callers = 20

	var wg sync.WaitGroup
	granted := make(chan struct{}, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.store.ConsumeQuota(ctx, 7, limit)
			s.NoError(err)
			if ok {
				granted <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(granted)

	s.Equal(limit, len(granted))
}

func (s *SessionStoreIntegrationTestSuite) Test_ConsumeQuota_ResetsOnNextDay() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := s.store.ConsumeQuota(ctx, 1, 3)
		s.NoError(err)
		s.True(ok)
	}
	ok, err := s.store.ConsumeQuota(ctx, 1, 3)
	s.NoError(err)
	s.False(ok)

	s.clock.Advance(24 * time.Hour)

	ok, err = s.store.ConsumeQuota(ctx, 1, 3)
	s.NoError(err)
	s.True(ok)
}

func (s *SessionStoreIntegrationTestSuite) Test_ConsumeQuota_CountersArePerUser() {
	ctx := context.Background()

	ok, err := s.store.ConsumeQuota(ctx, 1, 1)
	s.NoError(err)
	s.True(ok)

	ok, err = s.store.ConsumeQuota(ctx, 1, 1)
	s.NoError(err)
	s.False(ok)

	ok, err = s.store.ConsumeQuota(ctx, 2, 1)
	s.NoError(err)
	s.True(ok)
}

func (s *SessionStoreIntegrationTestSuite) Test_SkipList_AddListReset() {
	ctx := context.Background()

	s.NoError(s.store.AddSkipped(ctx, 1, 10))
	s.NoError(s.store.AddSkipped(ctx, 1, 11))
	s.NoError(s.store.AddSkipped(ctx, 1, 10))

	ids, err := s.store.ListSkipped(ctx, 1)
	s.NoError(err)
	s.ElementsMatch([]int64{10, 11}, ids)

	s.NoError(s.store.ResetSkipped(ctx, 1))

	ids, err = s.store.ListSkipped(ctx, 1)
	s.NoError(err)
	s.Empty(ids)
}
