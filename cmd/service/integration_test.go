//go:build integration

// cmd/service/integration_test.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github-trending-api/internal/database"
	"github-trending-api/internal/github"
	"github-trending-api/internal/model"
	"github-trending-api/internal/repos"
	"github-trending-api/internal/store"
	"github-trending-api/internal/syncer"
)

func setupTestDatabase(ctx context.Context, t *testing.T) (*pgxpool.Pool, func()) {
	// Start a postgres container
	pgContainer, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("test-db"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	// Get the connection string
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Run migrations
	require.NoError(t, runMigrations("file://../../migrations", connStr))

	// Create a connection pool
	dbpool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	// Teardown function to be called by the test
	teardown := func() {
		dbpool.Close()
		err := pgContainer.Terminate(ctx)
		require.NoError(t, err)
	}

	return dbpool, teardown
}

func TestSyncAndRead_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	dbpool, teardown := setupTestDatabase(ctx, t)
	defer teardown()

	// Setup a mock GitHub API server
	var stars atomic.Int32
	stars.Store(300)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search/repositories":
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, `{"total_count": 3, "items": [
				{"id": 1, "name": "a", "full_name": "org/a", "stargazers_count": %d, "html_url": "https://github.com/org/a", "language": "Go"},
				{"id": 2, "name": "b", "full_name": "org/b", "stargazers_count": 200, "html_url": "https://github.com/org/b"},
				{"id": 3, "name": "c", "full_name": "org/c", "stargazers_count": 100, "html_url": "https://github.com/org/c", "description": "third"}
			]}`, stars.Load())
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	server := httptest.NewServer(handler)
	defer server.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ghClient, err := github.NewClient(server.URL, "", logger)
	require.NoError(t, err)

	// Wire the REAL database pool with the mock GitHub client
	repoStore := store.New(database.New(dbpool), logger)
	appSyncer, err := syncer.NewSyncer(repoStore, ghClient, logger, time.Hour, false)
	require.NoError(t, err)
	defer appSyncer.Stop()
	svc := repos.NewService(repoStore, ghClient, logger)

	// --- ACT ---
	n, err := appSyncer.Force()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	stars.Store(50)
	_, err = appSyncer.Force()
	require.NoError(t, err)

	// --- ASSERT ---
	dbQuerier := database.New(dbpool)
	count, err := dbQuerier.CountRepositories(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	page, err := svc.List(ctx, model.PageRequest{Page: 1, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "org/b", page.Data[0].FullName) // Order is by stars DESC
	assert.Equal(t, "org/c", page.Data[1].FullName)
	assert.Equal(t, 2, *page.Pagination.NextPage)

	byName, err := svc.Get(ctx, model.FullName("org/a"))
	require.NoError(t, err)
	assert.Equal(t, 50, byName.Stars, "last sync wins")
	require.NotNil(t, byName.Language)
	assert.Equal(t, "Go", *byName.Language)

	byID, err := svc.Get(ctx, model.NumericID(1))
	require.NoError(t, err)
	assert.Equal(t, byName, byID)
}
