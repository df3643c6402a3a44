package postgres

import (
	"context"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/maxviazov/feedback-service/internal/repository"
	"github.com/maxviazov/feedback-service/internal/repository/contract"
)

var (
	pool   *pgxpool.Pool
	skippy bool
)

func TestMain(m *testing.M) {
	if os.Getenv("CONTRACT_TESTS") != "1" {
		// contract tests need Docker; enable them explicitly
		skippy = true
		os.Exit(m.Run())
	}
	os.Exit(runWithContainer(m))
}

func runWithContainer(m *testing.M) int {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("feedback_test"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Println("[contract] start postgres container:", err)
		return 1
	}
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			fmt.Println("[contract] terminate container:", err)
		}
	}()

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Println("[contract] connection string:", err)
		return 1
	}
	pool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Println("[contract] pgxpool new error:", err)
		return 1
	}
	defer pool.Close()

	if err := Migrate(ctx, pool, zerolog.New(io.Discard)); err != nil {
		fmt.Println("[contract] migrate:", err)
		return 1
	}
	return m.Run()
}

func skipIfNeeded(t *testing.T) {
	if skippy {
		t.Skip("contract tests skipped; set CONTRACT_TESTS=1 with Docker available")
	}
}

func truncateAll(t *testing.T) {
	t.Helper()
	if _, err := pool.Exec(context.Background(), "TRUNCATE TABLE feedback"); err != nil {
		t.Fatalf("truncate failed: %v", err)
	}
}

func makeFeedbackRepo(t *testing.T) (repository.FeedbackRepository, func()) {
	skipIfNeeded(t)
	truncateAll(t)
	return NewFeedbackRepository(pool), func() { truncateAll(t) }
}

func makePinger(t *testing.T) (repository.Pinger, func()) {
	skipIfNeeded(t)
	return NewPinger(pool), func() {}
}

func TestFeedbackRepository_PostgresContract(t *testing.T) {
	contract.RunFeedbackRepositoryContract(t, makeFeedbackRepo)
}

func TestPinger_PostgresContract(t *testing.T) {
	contract.RunPingerContract(t, makePinger)
}

func TestMigrate_Idempotent(t *testing.T) {
	skipIfNeeded(t)
	if err := Migrate(context.Background(), pool, zerolog.New(io.Discard)); err != nil {
		t.Fatalf("second migrate run: %v", err)
	}
}

func TestNilPoolGuards(t *testing.T) {
	repo := NewFeedbackRepository(nil)
	if _, err := repo.Count(context.Background()); err == nil {
		t.Fatal("expected error for nil pool")
	}
	if err := NewPinger(nil).Ping(context.Background()); err == nil {
		t.Fatal("expected error for nil pool")
	}
	if err := Migrate(context.Background(), nil, zerolog.New(io.Discard)); err == nil {
		t.Fatal("expected error for nil pool")
	}
}
