//go:build integration
// +build integration

package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/krishkalaria12/blogly/config"
	"github.com/krishkalaria12/blogly/database"
	"github.com/krishkalaria12/blogly/models"
	"github.com/krishkalaria12/blogly/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgres starts a throwaway PostgreSQL container and returns its DSN.
func setupPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("blogly_test"),
		postgres.WithUsername("blogly"),
		postgres.WithPassword("blogly"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}
	return connStr
}

func TestPostgresCascadeDelete(t *testing.T) {
	cfg := &config.Config{
		DBDriver:        config.DriverPostgres,
		DatabaseURL:     setupPostgres(t),
		DBLogLevel:      "warn",
		MaxIdleConns:    2,
		MaxOpenConns:    4,
		ConnMaxLifetime: time.Minute,
	}

	db, err := database.Connect(cfg, nil)
	require.NoError(t, err)
	defer database.Close(db)

	require.NoError(t, database.Reset(db))

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db)

	user := &models.User{FirstName: "test1_first", LastName: "test1_last"}
	require.NoError(t, users.Create(ctx, user))
	require.NoError(t, users.Create(ctx, &models.User{FirstName: "test2_first", LastName: "test2_last"}))

	var postIDs []uint
	for _, title := range []string{"a", "b", "c"} {
		p := &models.Post{Title: title, Content: title, UserID: user.ID}
		require.NoError(t, posts.Create(ctx, p))
		postIDs = append(postIDs, p.ID)
	}

	err = posts.Create(ctx, &models.Post{Title: "orphan", Content: "orphan", UserID: 424242})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	deleted, err := users.DeleteCascade(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "test1_first test1_last", deleted.FullName())

	for _, id := range postIDs {
		_, err := posts.Get(ctx, id)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	}

	count, err := users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
