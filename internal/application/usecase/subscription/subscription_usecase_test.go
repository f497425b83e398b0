package subscription

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colleaguesnet/colleagues-bot/internal/domain/profile"
	"github.com/colleaguesnet/colleagues-bot/pkg/apperror"
	"github.com/colleaguesnet/colleagues-bot/pkg/logger"
)

type fakeProfileRepo struct {
	profiles map[int64]*profile.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[int64]*profile.Profile)}
}

func (r *fakeProfileRepo) GetByID(_ context.Context, userID int64) (*profile.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, apperror.NewNotFound("profile", fmt.Sprintf("%d", userID))
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, p *profile.Profile) error {
	existing, ok := r.profiles[p.UserID]
	cp := *p
	if ok {
		cp.IsPremium = existing.IsPremium
		cp.SubscriptionEnd = existing.SubscriptionEnd
	}
	r.profiles[p.UserID] = &cp
	return nil
}

func (r *fakeProfileRepo) SetPremium(_ context.Context, userID int64, until *time.Time) error {
	p, ok := r.profiles[userID]
	if !ok {
		return apperror.NewNotFound("profile", fmt.Sprintf("%d", userID))
	}
	p.IsPremium = until != nil
	p.SubscriptionEnd = until
	return nil
}

func (r *fakeProfileRepo) ListPremiumIDs(_ context.Context) ([]int64, error) {
	var ids []int64
	for id, p := range r.profiles {
		if p.IsPremium {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *fakeProfileRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.profiles)), nil
}

func (r *fakeProfileRepo) CountPremium(_ context.Context) (int64, error) {
	ids, _ := r.ListPremiumIDs(context.Background())
	return int64(len(ids)), nil
}

type recordedEvent struct {
	eventType string
	userID    int64
	until     *time.Time
}

type fakePublisher struct {
	subscriptionEvents []recordedEvent
}

func (p *fakePublisher) PublishConnectionEvent(_ context.Context, _ string, _, _ int64) {}

func (p *fakePublisher) PublishSubscriptionEvent(_ context.Context, eventType string, userID int64, until *time.Time) {
	p.subscriptionEvents = append(p.subscriptionEvents, recordedEvent{eventType, userID, until})
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestActivate_SetsThirtyDayExpiry(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProfileRepo()
	repo.profiles[1] = &profile.Profile{UserID: 1, Name: "Анна"}
	pub := &fakePublisher{}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	uc := NewUseCase(repo, pub, logger.NewNop(), 30).WithClock(fixedClock(now))

	until, err := uc.Activate(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, now.Add(30*24*time.Hour), until)
	assert.True(t, repo.profiles[1].IsPremium)

	require.Len(t, pub.subscriptionEvents, 1)
	assert.Equal(t, "subscription.activated", pub.subscriptionEvents[0].eventType)
}

func TestActivate_OverwritesRemainingTime(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProfileRepo()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// 20 days already remaining; a repeat purchase must not stack on top.
	old := now.Add(20 * 24 * time.Hour)
	repo.profiles[1] = &profile.Profile{UserID: 1, IsPremium: true, SubscriptionEnd: &old}

	uc := NewUseCase(repo, &fakePublisher{}, logger.NewNop(), 30).WithClock(fixedClock(now))

	until, err := uc.Activate(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, now.Add(30*24*time.Hour), until)
}

func TestIsActive(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name    string
		stored  *profile.Profile
		want    bool
		demoted bool
	}{
		{
			name:   "no profile",
			stored: nil,
			want:   false,
		},
		{
			name:   "never subscribed",
			stored: &profile.Profile{UserID: 1},
			want:   false,
		},
		{
			name:   "active subscription",
			stored: &profile.Profile{UserID: 1, IsPremium: true, SubscriptionEnd: &future},
			want:   true,
		},
		{
			name:    "expired subscription is demoted on read",
			stored:  &profile.Profile{UserID: 1, IsPremium: true, SubscriptionEnd: &past},
			want:    false,
			demoted: true,
		},
		{
			name:    "premium flag without expiry is demoted",
			stored:  &profile.Profile{UserID: 1, IsPremium: true},
			want:    false,
			demoted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeProfileRepo()
			if tt.stored != nil {
				repo.profiles[1] = tt.stored
			}
			pub := &fakePublisher{}
			uc := NewUseCase(repo, pub, logger.NewNop(), 30).WithClock(fixedClock(now))

			active, err := uc.IsActive(context.Background(), 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, active)

			if tt.demoted {
				assert.False(t, repo.profiles[1].IsPremium)
				assert.Nil(t, repo.profiles[1].SubscriptionEnd)
				require.Len(t, pub.subscriptionEvents, 1)
				assert.Equal(t, "subscription.expired", pub.subscriptionEvents[0].eventType)
			} else {
				assert.Empty(t, pub.subscriptionEvents)
			}
		})
	}
}

func TestSweep_DemotesOnlyExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(10 * 24 * time.Hour)
	past := now.Add(-time.Hour)

	repo := newFakeProfileRepo()
	repo.profiles[1] = &profile.Profile{UserID: 1, IsPremium: true, SubscriptionEnd: &future}
	repo.profiles[2] = &profile.Profile{UserID: 2, IsPremium: true, SubscriptionEnd: &past}
	repo.profiles[3] = &profile.Profile{UserID: 3}

	uc := NewUseCase(repo, &fakePublisher{}, logger.NewNop(), 30).WithClock(fixedClock(now))

	require.NoError(t, uc.Sweep(ctx))

	assert.True(t, repo.profiles[1].IsPremium)
	assert.False(t, repo.profiles[2].IsPremium)
	assert.False(t, repo.profiles[3].IsPremium)
}
