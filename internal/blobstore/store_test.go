package blobstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/marinedeck/maritime-api/internal/models"
	"github.com/marinedeck/maritime-api/internal/repository"
)

func TestStoreSeedsWhenBlobAbsent(t *testing.T) {
	store := New(NewMemoryStorage())
	repos := NewRepositories(store)

	user, err := repos.Users.GetByID(context.Background(), "user-admin-1")
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, user.Role)
}

func TestStoreSeedsWhenBlobCorrupt(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Save([]byte("{not json at all")))

	repos := NewRepositories(New(storage))

	user, err := repos.Users.GetByID(context.Background(), "user-admin-1")
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, user.Role)
}

func TestStoreSeedsWhenBlobFailsSchema(t *testing.T) {
	storage := NewMemoryStorage()
	// valid JSON but missing every required entity array
	require.NoError(t, storage.Save([]byte(`{"users": "nope"}`)))

	repos := NewRepositories(New(storage))

	user, err := repos.Users.GetByID(context.Background(), "user-admin-1")
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, user.Role)
}

func TestStoreWritesSurviveReload(t *testing.T) {
	storage := NewMemoryStorage()
	repos := NewRepositories(New(storage, WithSeed(func() State { return State{} })))
	ctx := context.Background()

	created := time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)
	user := models.User{
		UserID:       "user-1",
		Name:         "Arjun Nair",
		Email:        "arjun@sea.test",
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMye.IjZAgcfl7p92ldGxad68LJZdL17lhW",
		Role:         models.RoleStudent,
		Phone:        "+91-9800000001",
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	require.NoError(t, repos.Users.Create(ctx, &user))

	// a second store over the same backend sees the saved blob, not the seed,
	// and every field survives the round trip, the password hash included
	reloaded := NewRepositories(New(storage, WithSeed(func() State { return State{} })))
	got, err := reloaded.Users.GetByID(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, user, got)
	require.NotEmpty(t, got.PasswordHash)
}

func TestStoreFailedUpdateLeavesBlobUntouched(t *testing.T) {
	repos := NewRepositories(New(NewMemoryStorage(), WithSeed(func() State {
		return State{
			Users: []models.User{{UserID: "user-1", Email: "arjun@sea.test", Role: models.RoleStudent}},
		}
	})))
	ctx := context.Background()

	dup := models.User{UserID: "user-2", Email: "ARJUN@sea.test", Role: models.RoleStudent}
	require.ErrorIs(t, repos.Users.Create(ctx, &dup), repository.ErrDuplicateEmail)

	users, err := repos.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestFileStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	repos := NewRepositories(New(NewFileStorage(path), WithSeed(func() State { return State{} })))
	ctx := context.Background()

	created := time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)
	user := models.User{
		UserID:       "user-1",
		Name:         "Arjun Nair",
		Email:        "arjun@sea.test",
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMye.IjZAgcfl7p92ldGxad68LJZdL17lhW",
		Role:         models.RoleStudent,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	require.NoError(t, repos.Users.Create(ctx, &user))

	reloaded := NewRepositories(New(NewFileStorage(path), WithSeed(func() State { return State{} })))
	got, err := reloaded.Users.GetByID(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, user, got)
}

func TestSeedStateIsSchemaValid(t *testing.T) {
	storage := NewMemoryStorage()
	store := New(storage)
	require.NoError(t, store.save(SeedState()))

	repos := NewRepositories(New(storage, WithSeed(func() State { return State{} })))
	user, err := repos.Users.GetByID(context.Background(), "user-admin-1")
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, user.Role)
}
