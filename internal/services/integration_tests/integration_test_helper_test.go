package integration_tests

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"jobboard/internal/database"
	"jobboard/internal/filestore"
	"jobboard/internal/logging"
	"jobboard/internal/models"
	"jobboard/internal/storage/postgres"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var testDB *sql.DB
var testRedisClient *redis.Client

// getTestClients connects to the test database named by TEST_DATABASE_URL and
// applies the migrations. Tests are skipped when it is not set.
func getTestClients(t *testing.T) (*sql.DB, *redis.Client) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL environment variable not set")
	}

	if testDB == nil {
		db, err := sql.Open("pgx", dsn)
		require.NoError(t, err, "Failed to open test database")
		testDB = db
		runMigrations(t)
	}

	// --- Redis Setup ---
	if testRedisClient == nil {
		redisAddr := os.Getenv("TEST_REDIS_URL")
		if redisAddr == "" {
			log.Println("WARN: TEST_REDIS_URL not set. Redis-dependent tests will be skipped.")
		} else {
			rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
			ctxRedis, cancelRedis := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancelRedis()
			if err := rdb.Ping(ctxRedis).Err(); err != nil {
				log.Printf("WARN: Failed to connect to test Redis at %s: %v. Redis-dependent tests will be skipped.", redisAddr, err)
			} else {
				testRedisClient = rdb
			}
		}
	}
	return testDB, testRedisClient
}

// runMigrations applies the embedded goose migrations.
func runMigrations(t *testing.T) {
	t.Helper()
	require.NoError(t, database.Migrate(context.Background(), testDB))
}

// cleanupTables truncates the given tables for test isolation.
func cleanupTables(ctx context.Context, t *testing.T, db *sql.DB, tables ...string) {
	t.Helper()
	if len(tables) == 0 {
		return
	}
	_, err := db.ExecContext(ctx, "TRUNCATE TABLE "+strings.Join(tables, ", ")+" RESTART IDENTITY CASCADE")
	require.NoError(t, err, "Failed to truncate %s", strings.Join(tables, ", "))
}

// cleanupRedis flushes the test Redis database. Use with caution!
func cleanupRedis(t *testing.T, client *redis.Client) {
	t.Helper()
	if client == nil {
		return
	}
	require.NoError(t, client.FlushDB(context.Background()).Err(), "Failed to flush test Redis database")
}

// setupStore returns a clean Postgres-backed store.
func setupStore(t *testing.T) (context.Context, *postgres.Store) {
	t.Helper()
	db, _ := getTestClients(t)
	ctx := context.Background()
	cleanupTables(ctx, t, db, "notifications", "applications", "jobs", "users")
	return ctx, postgres.NewStore(db)
}

func newLocalFiles(t *testing.T) filestore.Store {
	t.Helper()
	files, err := filestore.NewLocal(t.TempDir())
	require.NoError(t, err)
	return files
}

// createTestUser inserts an active user directly through the repository.
func createTestUser(t *testing.T, ctx context.Context, store *postgres.Store, username string, role models.Role) *models.User {
	t.Helper()
	u, err := store.Users().Create(ctx, &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
	})
	require.NoError(t, err, "Failed to create test user %s", username)
	return u
}

var nop = logging.Nop()
