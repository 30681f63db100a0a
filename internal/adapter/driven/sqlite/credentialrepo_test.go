package sqlite

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/leadbot/internal/domain/port/driven"
)

func TestCredentialRepo_UpsertAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCredentialRepo(db, testKey())
	ctx := context.Background()

	created, err := repo.Upsert(ctx, "user-1", "tok_abc123", "https://api.example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", created.Identity)
	assert.Equal(t, "tok_abc123", created.Token)
	assert.Equal(t, "https://api.example.com", created.BaseURL)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "tok_abc123", got.Token)
	assert.Equal(t, "https://api.example.com", got.BaseURL)
}

func TestCredentialRepo_GetMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCredentialRepo(db, testKey())

	_, err := repo.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, driven.ErrCredentialNotFound)
}

func TestCredentialRepo_TokenEncryptedAtRest(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCredentialRepo(db, testKey())
	ctx := context.Background()

	_, err := repo.Upsert(ctx, "user-1", "tok_secret", "https://api.example.com")
	require.NoError(t, err)

	var stored string
	err = db.Reader.QueryRowContext(ctx, `SELECT token FROM credentials WHERE identity = ?`, "user-1").Scan(&stored)
	require.NoError(t, err)
	assert.NotEqual(t, "tok_secret", stored)
	assert.NotContains(t, stored, "tok_secret")
}

func TestCredentialRepo_UpsertReplacesAndKeepsCreatedAt(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCredentialRepo(db, testKey())
	ctx := context.Background()

	first, err := repo.Upsert(ctx, "user-1", "tok_old", "https://old.example.com")
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, "user-1", "tok_new", "https://new.example.com")
	require.NoError(t, err)

	assert.Equal(t, "tok_new", second.Token)
	assert.Equal(t, "https://new.example.com", second.BaseURL)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
}

func TestCredentialRepo_UpdateBaseURL(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCredentialRepo(db, testKey())
	ctx := context.Background()

	_, err := repo.Upsert(ctx, "user-1", "tok_abc", "https://old.example.com")
	require.NoError(t, err)

	err = repo.UpdateBaseURL(ctx, "user-1", "https://new.example.com")
	require.NoError(t, err)

	got, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "https://new.example.com", got.BaseURL)
	assert.Equal(t, "tok_abc", got.Token, "token must survive a base url change")
}

func TestCredentialRepo_UpdateBaseURLMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCredentialRepo(db, testKey())

	err := repo.UpdateBaseURL(context.Background(), "nobody", "https://new.example.com")
	assert.ErrorIs(t, err, driven.ErrCredentialNotFound)
}

func TestCredentialRepo_Touch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCredentialRepo(db, testKey())
	ctx := context.Background()

	_, err := repo.Upsert(ctx, "user-1", "tok_abc", "https://api.example.com")
	require.NoError(t, err)

	require.NoError(t, repo.Touch(ctx, "user-1"))

	// Touching a missing identity is not an error; the caller treats the
	// whole operation as best-effort.
	assert.NoError(t, repo.Touch(ctx, "nobody"))
}

func TestCredentialRepo_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCredentialRepo(db, testKey())
	ctx := context.Background()

	_, err := repo.Upsert(ctx, "user-1", "tok_abc", "https://api.example.com")
	require.NoError(t, err)

	n, err := repo.Delete(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.Get(ctx, "user-1")
	assert.ErrorIs(t, err, driven.ErrCredentialNotFound)

	n, err = repo.Delete(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n, "second delete reports nothing removed")
}

func TestCredentialRepo_IdentityIsolation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCredentialRepo(db, testKey())
	ctx := context.Background()

	_, err := repo.Upsert(ctx, "user-a", "tok_a", "https://a.example.com")
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, "user-b", "tok_b", "https://b.example.com")
	require.NoError(t, err)

	n, err := repo.Delete(ctx, "user-a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.Get(ctx, "user-b")
	require.NoError(t, err)
	assert.Equal(t, "tok_b", got.Token)
}

func TestCredentialRepo_ConcurrentUpserts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCredentialRepo(db, testKey())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Upsert(ctx, "user-1", "tok_concurrent", "https://api.example.com")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "tok_concurrent", got.Token)
}

func TestCredentialRepo_NoEncryptionKey(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCredentialRepo(db, nil)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, "user-1", "tok_abc", "https://api.example.com")
	assert.ErrorIs(t, err, driven.ErrEncryptionKeyNotSet)

	_, err = repo.Get(ctx, "user-1")
	assert.ErrorIs(t, err, driven.ErrEncryptionKeyNotSet)
}
