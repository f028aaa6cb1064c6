package repository_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/docker/docker/client"

	"storyteller-server/shared/interfaces"
	"storyteller-server/shared/models"
	"storyteller-server/story-service/internal/repository"
)

// RepositoryIntegrationSuite runs the ledger and phrase set repositories
// against a real PostgreSQL instance.
type RepositoryIntegrationSuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *postgres.PostgresContainer
	pgPool      *pgxpool.Pool
	logger      *zap.Logger

	subs    interfaces.SubscriptionRepository
	phrases interfaces.PhraseSetRepository
}

func (s *RepositoryIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	s.logger, err = zap.NewDevelopment()
	require.NoError(s.T(), err, "Failed to create logger for tests")

	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start postgres container")

	pgConnStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get postgres connection string")

	s.pgPool, err = pgxpool.New(s.ctx, pgConnStr)
	require.NoError(s.T(), err, "Failed to connect to test postgres")

	require.NoError(s.T(), s.runMigrations(pgConnStr), "Failed to run migrations")

	s.subs = repository.NewPgSubscriptionRepository(s.pgPool, s.logger)
	s.phrases = repository.NewPgPhraseSetRepository(s.pgPool, s.logger)
}

func (s *RepositoryIntegrationSuite) TearDownSuite() {
	if s.pgPool != nil {
		s.pgPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Error("Failed to terminate postgres container", zap.Error(err))
		}
	}
}

func (s *RepositoryIntegrationSuite) SetupTest() {
	_, err := s.pgPool.Exec(s.ctx, "TRUNCATE TABLE subscriptions, safety_phrase_sets")
	require.NoError(s.T(), err, "Failed to truncate tables")
}

func (s *RepositoryIntegrationSuite) runMigrations(dbURL string) error {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return fmt.Errorf("could not get caller information")
	}
	migrationsPath := filepath.Join(filepath.Dir(filename), "..", "..", "..", "shared", "database", "migrations")

	fsys := os.DirFS(migrationsPath)
	sourceDriver, err := iofs.New(fsys, ".")
	if err != nil {
		return fmt.Errorf("failed to create iofs source driver: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, dbURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance with iofs: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func TestRepositoryIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	cli, err := client.NewClientWithOpts(client.FromEnv)
	if err != nil {
		t.Fatalf("Docker client init error: %v. Ensure Docker is running and accessible.", err)
	}
	if _, err := cli.Ping(context.Background()); err != nil {
		t.Fatalf("Docker daemon is not running or accessible: %v", err)
	}
	cli.Close()

	suite.Run(t, new(RepositoryIntegrationSuite))
}

func (s *RepositoryIntegrationSuite) TestLoadOrCreate_CreatesFreeRow() {
	t := s.T()
	userID := uuid.New()

	sub, err := s.subs.LoadOrCreate(s.ctx, userID)
	require.NoError(t, err)
	require.Equal(t, userID, sub.UserID)
	require.Equal(t, models.TierFree, sub.Tier)
	require.Equal(t, 0, sub.StoriesUsedThisMonth)
	require.Equal(t, 0, sub.VoiceStoriesUsedThisMonth)

	// Second call returns the same row instead of recreating it.
	_, err = s.pgPool.Exec(s.ctx, `UPDATE subscriptions SET tier = 'premium', stories_used_this_month = 5 WHERE user_id = $1`, userID)
	require.NoError(t, err)

	again, err := s.subs.LoadOrCreate(s.ctx, userID)
	require.NoError(t, err)
	require.Equal(t, models.TierPremium, again.Tier)
	require.Equal(t, 5, again.StoriesUsedThisMonth)
}

func (s *RepositoryIntegrationSuite) TestCommitIncrement_Success() {
	t := s.T()
	userID := uuid.New()

	_, err := s.subs.LoadOrCreate(s.ctx, userID)
	require.NoError(t, err)

	require.NoError(t, s.subs.CommitIncrement(s.ctx, userID, models.UsageFieldStories, 0))
	require.NoError(t, s.subs.CommitIncrement(s.ctx, userID, models.UsageFieldStories, 1))

	sub, err := s.subs.LoadOrCreate(s.ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 2, sub.StoriesUsedThisMonth)
	require.Equal(t, 0, sub.VoiceStoriesUsedThisMonth)
}

func (s *RepositoryIntegrationSuite) TestCommitIncrement_ConflictOnStaleObservation() {
	t := s.T()
	userID := uuid.New()

	_, err := s.subs.LoadOrCreate(s.ctx, userID)
	require.NoError(t, err)

	// A concurrent request already committed; our observation of 0 is stale.
	require.NoError(t, s.subs.CommitIncrement(s.ctx, userID, models.UsageFieldStories, 0))

	err = s.subs.CommitIncrement(s.ctx, userID, models.UsageFieldStories, 0)
	require.ErrorIs(t, err, models.ErrUsageConflict)

	sub, err := s.subs.LoadOrCreate(s.ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 1, sub.StoriesUsedThisMonth, "conflicting commit must not change the counter")
}

func (s *RepositoryIntegrationSuite) TestCommitIncrement_MissingRow() {
	err := s.subs.CommitIncrement(s.ctx, uuid.New(), models.UsageFieldVoiceStories, 0)
	require.ErrorIs(s.T(), err, models.ErrSubscriptionNotFound)
}

func (s *RepositoryIntegrationSuite) TestResetIfNewCycle() {
	t := s.T()
	userID := uuid.New()

	sub, err := s.subs.LoadOrCreate(s.ctx, userID)
	require.NoError(t, err)

	// Same calendar month: nothing changes.
	same, err := s.subs.ResetIfNewCycle(s.ctx, sub)
	require.NoError(t, err)
	require.Equal(t, sub.CycleResetDate.Unix(), same.CycleResetDate.Unix())

	// Push the stored reset date into a previous month with live usage.
	_, err = s.pgPool.Exec(s.ctx, `UPDATE subscriptions
		SET stories_used_this_month = 3, voice_stories_used_this_month = 2,
		    cycle_reset_date = now() - interval '45 days'
		WHERE user_id = $1`, userID)
	require.NoError(t, err)

	stale, err := s.subs.LoadOrCreate(s.ctx, userID)
	require.NoError(t, err)

	fresh, err := s.subs.ResetIfNewCycle(s.ctx, stale)
	require.NoError(t, err)
	require.Equal(t, 0, fresh.StoriesUsedThisMonth)
	require.Equal(t, 0, fresh.VoiceStoriesUsedThisMonth)
	require.True(t, fresh.CycleResetDate.After(stale.CycleResetDate))
}

func (s *RepositoryIntegrationSuite) TestPhraseSets_GetLatest() {
	t := s.T()

	_, err := s.phrases.GetLatest(s.ctx, interfaces.PhraseSetProtectedIP)
	require.ErrorIs(t, err, models.ErrNotFound)

	_, err = s.pgPool.Exec(s.ctx, `INSERT INTO safety_phrase_sets (kind, version, phrases) VALUES
		($1, 1, ARRAY['old phrase']),
		($1, 2, ARRAY['captain nimbus', 'glimmerwood'])`, interfaces.PhraseSetProtectedIP)
	require.NoError(t, err)

	set, err := s.phrases.GetLatest(s.ctx, interfaces.PhraseSetProtectedIP)
	require.NoError(t, err)
	require.Equal(t, 2, set.Version)
	require.Equal(t, []string{"captain nimbus", "glimmerwood"}, set.Phrases)
}
