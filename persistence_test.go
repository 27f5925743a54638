package shop_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/goliatone/go-shop"
	"github.com/goliatone/go-shop/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func TestNewPersistence_AppliesMigrations(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	users, err := db.NewSelect().Model((*shop.User)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, users)

	clients, err := db.NewSelect().Model((*shop.Client)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, clients)
}

func TestNewPersistence_IsRerunnable(t *testing.T) {
	ctx := context.Background()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	cfg := config.Default().GetPersistence()

	db, err := shop.NewPersistence(ctx, cfg, sqldb, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// Startup runs migrations unconditionally; applying them against an
	// already-migrated database must not fail.
	_, err = shop.NewPersistence(ctx, cfg, sqldb, nil)
	require.NoError(t, err)
}
