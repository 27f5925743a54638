package shop_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-shop"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repository "github.com/goliatone/go-repository-bun"
)

func seedClient(t *testing.T, repo shop.Clients, email string) *shop.Client {
	t.Helper()

	record, err := repo.Create(context.Background(), &shop.Client{
		FirstName: "Petra",
		LastName:  "Example",
		Email:     email,
		Phone:     "+12025550123",
		Address:   "1 Main St",
		City:      "Springfield",
		Country:   "US",
	})
	require.NoError(t, err)
	require.NotNil(t, record)

	return record
}

func TestClients_CreateAssignsID(t *testing.T) {
	repo := shop.NewClientsRepository(setupTestDB(t))

	record := seedClient(t, repo, "petra@example.com")
	assert.NotEqual(t, uuid.Nil, record.ID)
}

func TestClients_List(t *testing.T) {
	repo := shop.NewClientsRepository(setupTestDB(t))
	ctx := context.Background()

	records, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	seedClient(t, repo, "a@example.com")
	seedClient(t, repo, "b@example.com")

	records, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestClients_GetByID(t *testing.T) {
	repo := shop.NewClientsRepository(setupTestDB(t))
	ctx := context.Background()

	created := seedClient(t, repo, "petra@example.com")

	found, err := repo.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.Email, found.Email)

	_, err = repo.GetByID(ctx, uuid.NewString())
	require.Error(t, err)
	assert.True(t, repository.IsRecordNotFound(err))
}

func TestClients_Update(t *testing.T) {
	repo := shop.NewClientsRepository(setupTestDB(t))
	ctx := context.Background()

	created := seedClient(t, repo, "petra@example.com")

	created.City = "Shelbyville"
	updated, err := repo.Update(ctx, created, repository.UpdateByID(created.ID.String()))
	require.NoError(t, err)
	assert.Equal(t, "Shelbyville", updated.City)
}

func TestClients_DeleteByID(t *testing.T) {
	repo := shop.NewClientsRepository(setupTestDB(t))
	ctx := context.Background()

	created := seedClient(t, repo, "petra@example.com")

	require.NoError(t, repo.DeleteByID(ctx, created.ID))

	err := repo.DeleteByID(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, repository.IsRecordNotFound(err))
}
