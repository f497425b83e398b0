package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/colleaguesnet/colleagues-bot/internal/domain/connection"
	"github.com/colleaguesnet/colleagues-bot/internal/domain/match"
	"github.com/colleaguesnet/colleagues-bot/internal/domain/profile"
	"github.com/colleaguesnet/colleagues-bot/pkg/logger"
)

type ConnectionRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	testLogger  logger.Logger
	connRepo    connection.Repository
	profileRepo profile.Repository
	matchRepo   match.Repository
}

func (s *ConnectionRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.testLogger = logger.NewNop()
	s.connRepo = NewPostgresConnectionRepo(s.dbPool, s.testLogger)
	s.profileRepo = NewPostgresProfileRepo(s.dbPool, s.testLogger)
	s.matchRepo = NewPostgresMatchRepo(s.dbPool, s.testLogger)
}

func (s *ConnectionRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func (s *ConnectionRepoIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	_, err := s.dbPool.Exec(ctx, `TRUNCATE connections, works, profiles`)
	s.Require().NoError(err)
}

func TestConnectionRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(ConnectionRepoIntegrationTestSuite))
}

func (s *ConnectionRepoIntegrationTestSuite) seedProfile(userID int64, name, profession string) {
	username := "user_" + name
	p := &profile.Profile{
		UserID:     userID,
		Name:       name,
		Profession: profession,
		Skills:     "Go",
		Bio:        "bio",
		Username:   &username,
	}
	s.Require().NoError(s.profileRepo.Upsert(context.Background(), p))
}

func (s *ConnectionRepoIntegrationTestSuite) Test_Create_DuplicatePendingSuppressed() {
	ctx := context.Background()
	s.seedProfile(1, "Anna", "Designer")
	s.seedProfile(2, "Boris", "Developer")

	created, err := s.connRepo.Create(ctx, 1, 2)
	s.NoError(err)
	s.True(created)

	created, err = s.connRepo.Create(ctx, 1, 2)
	s.NoError(err)
	s.False(created)

	// reverse direction is a distinct request
	created, err = s.connRepo.Create(ctx, 2, 1)
	s.NoError(err)
	s.True(created)
}

func (s *ConnectionRepoIntegrationTestSuite) Test_Accept_FlipsPendingOnly() {
	ctx := context.Background()
	s.seedProfile(1, "Anna", "Designer")
	s.seedProfile(2, "Boris", "Developer")

	_, err := s.connRepo.Create(ctx, 1, 2)
	s.Require().NoError(err)

	// accepting the wrong direction touches nothing
	s.NoError(s.connRepo.Accept(ctx, 2, 1))
	peers, err := s.connRepo.ListAccepted(ctx, 1)
	s.NoError(err)
	s.Empty(peers)

	s.NoError(s.connRepo.Accept(ctx, 1, 2))

	peers, err = s.connRepo.ListAccepted(ctx, 1)
	s.NoError(err)
	s.Require().Len(peers, 1)
	s.Equal(int64(2), peers[0].UserID)
	s.Equal("Boris", peers[0].Name)

	// the link is symmetric once accepted
	peers, err = s.connRepo.ListAccepted(ctx, 2)
	s.NoError(err)
	s.Require().Len(peers, 1)
	s.Equal(int64(1), peers[0].UserID)

	count, err := s.connRepo.CountAccepted(ctx)
	s.NoError(err)
	s.Equal(int64(1), count)
}

func (s *ConnectionRepoIntegrationTestSuite) Test_Decline_DeletesRow() {
	ctx := context.Background()
	s.seedProfile(1, "Anna", "Designer")
	s.seedProfile(2, "Boris", "Developer")

	_, err := s.connRepo.Create(ctx, 1, 2)
	s.Require().NoError(err)

	s.NoError(s.connRepo.Decline(ctx, 1, 2))

	exists, err := s.connRepo.ExistsBetween(ctx, 1, 2)
	s.NoError(err)
	s.False(exists)

	// the pair can be requested again after a decline
	created, err := s.connRepo.Create(ctx, 1, 2)
	s.NoError(err)
	s.True(created)
}

func (s *ConnectionRepoIntegrationTestSuite) Test_NextCandidate_ExcludesConnectedAndSkipped() {
	ctx := context.Background()
	s.seedProfile(1, "Anna", "Designer")
	s.seedProfile(2, "Boris", "Developer")
	s.seedProfile(3, "Vera", "Analyst")

	// 1 and 2 have an open request between them
	_, err := s.connRepo.Create(ctx, 1, 2)
	s.Require().NoError(err)

	p, err := s.matchRepo.NextCandidate(ctx, 1, nil)
	s.NoError(err)
	s.Equal(int64(3), p.UserID)

	// excluding the only remaining candidate exhausts the pool
	_, err = s.matchRepo.NextCandidate(ctx, 1, []int64{3})
	s.Error(err)
}

func (s *ConnectionRepoIntegrationTestSuite) Test_Upsert_PreservesPremiumColumns() {
	ctx := context.Background()
	s.seedProfile(1, "Anna", "Designer")

	until := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	s.Require().NoError(s.profileRepo.SetPremium(ctx, 1, &until))

	s.seedProfile(1, "Anna", "Product Designer")

	got, err := s.profileRepo.GetByID(ctx, 1)
	s.NoError(err)
	s.Equal("Product Designer", got.Profession)
	s.True(got.IsPremium)
	s.Require().NotNil(got.SubscriptionEnd)
	s.WithinDuration(until, *got.SubscriptionEnd, time.Second)
}
