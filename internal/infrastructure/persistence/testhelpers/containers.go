// Package testhelpers starts throwaway Postgres and Redis containers for
// integration tests.
package testhelpers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
	"time"

	"github.com/DanielPopoola/checkout-tokenization/internal/config"
	"github.com/DanielPopoola/checkout-tokenization/internal/infrastructure/persistence/postgres"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type TestDatabase struct {
	Container testcontainers.Container
	DB        *postgres.DB
	Config    *config.DatabaseConfig
}

// SetupTestDatabase skips under -short since it needs a docker daemon.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "checkout",
				"POSTGRES_PASSWORD": "checkout",
				"POSTGRES_DB":       "checkout_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dbConfig := &config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "checkout",
		Password:        "checkout",
		Name:            "checkout_test",
		SSLMode:         "disable",
		MaxOpenConns:    5,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 10 * time.Minute,
	}

	db, err := postgres.Connect(ctx, dbConfig, quietLogger())
	require.NoError(t, err)
	require.NoError(t, runMigrations(ctx, db))

	return &TestDatabase{Container: container, DB: db, Config: dbConfig}
}

func (td *TestDatabase) Cleanup(t *testing.T) {
	td.DB.Close()
	require.NoError(t, td.Container.Terminate(context.Background()))
}

func (td *TestDatabase) CleanTables(t *testing.T) {
	_, err := td.DB.Pool.Exec(context.Background(), "TRUNCATE TABLE kv_entries, analytics_events")
	require.NoError(t, err)
}

type TestRedis struct {
	Container testcontainers.Container
	Client    *goredis.Client
}

func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	cfg := config.RedisConfig{Addr: fmt.Sprintf("%s:%s", host, port.Port())}
	client := goredis.NewClient(cfg.Options())
	require.NoError(t, client.Ping(ctx).Err())

	return &TestRedis{Container: container, Client: client}
}

func (tr *TestRedis) Cleanup(t *testing.T) {
	require.NoError(t, tr.Client.Close())
	require.NoError(t, tr.Container.Terminate(context.Background()))
}

func (tr *TestRedis) Flush(t *testing.T) {
	require.NoError(t, tr.Client.FlushDB(context.Background()).Err())
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func projectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filename
	for range 5 {
		dir = filepath.Dir(dir)
	}
	return dir
}

// runMigrations applies every *.up.sql file in name order.
func runMigrations(ctx context.Context, db *postgres.DB) error {
	files, err := filepath.Glob(filepath.Join(projectRoot(), "db", "migrations", "*.up.sql"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no migrations found under %s", projectRoot())
	}
	sort.Strings(files)

	for _, path := range files {
		migrationSQL, err := os.ReadFile(path) //nolint:gosec // test helper, controlled path
		if err != nil {
			return fmt.Errorf("read migration %s: %w", path, err)
		}
		if _, err := db.Pool.Exec(ctx, string(migrationSQL)); err != nil {
			return fmt.Errorf("execute migration %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}
