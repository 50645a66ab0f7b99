package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/akiba-auth/internal/models"
)

func testUser(email string) models.User {
	return models.User{
		Firstname:    "Jane",
		Lastname:     "Doe",
		Email:        email,
		PasswordHash: "$2a$10$hashedpasswordplaceholder",
	}
}

func TestStorage_CreateUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	before := time.Now().UTC()
	got, err := storage.CreateUser(context.Background(), testUser("jane@x.com"))
	require.NoError(t, err)

	_, err = uuid.Parse(got.UUID)
	require.NoError(t, err, "generated id must be a uuid")
	assert.Equal(t, "Jane", got.Firstname)
	assert.Equal(t, "Doe", got.Lastname)
	assert.Equal(t, "jane@x.com", got.Email)
	assert.WithinDuration(t, before, got.RegisteredAt, 5*time.Second)
	assert.Equal(t, time.UTC, got.RegisteredAt.Location())

	assert.Equal(t, 1, NewTestVerification(storage).CountUsersByEmail(t, "jane@x.com"))
}

func TestStorage_CreateUser_Duplicate(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	_, err := storage.CreateUser(context.Background(), testUser("jane@x.com"))
	require.NoError(t, err)

	got, err := storage.CreateUser(context.Background(), testUser("jane@x.com"))
	require.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Nil(t, got)
	assert.Equal(t, 1, NewTestVerification(storage).CountUsersByEmail(t, "jane@x.com"))
}

func TestStorage_CreateUser_ConcurrentSameEmail(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	const callers = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successes  int
		duplicates int
	)
	start := make(chan struct{})
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := storage.CreateUser(context.Background(), testUser("race@x.com"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case assert.ErrorIs(t, err, ErrDuplicateEmail):
				duplicates++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, callers-1, duplicates)
	assert.Equal(t, 1, NewTestVerification(storage).CountUsersByEmail(t, "race@x.com"))
}

func TestStorage_GetUserByEmail(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	created, err := storage.CreateUser(context.Background(), testUser("jane@x.com"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		email   string
		want    *models.User
		wantErr error
	}{
		{
			name:  "existing user",
			email: "jane@x.com",
			want:  created,
		},
		{
			name:    "unknown email",
			email:   "nobody@x.com",
			wantErr: ErrUserNotFound,
		},
		{
			name:    "lookup is exact match",
			email:   "JANE@x.com",
			wantErr: ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := storage.GetUserByEmail(context.Background(), tt.email)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.UUID, got.UUID)
			assert.Equal(t, tt.want.Email, got.Email)
			assert.Equal(t, tt.want.PasswordHash, got.PasswordHash)
			assert.True(t, tt.want.RegisteredAt.Equal(got.RegisteredAt))
		})
	}
}

func TestStorage_CanceledContext(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := storage.CreateUser(ctx, testUser("jane@x.com"))
	require.ErrorIs(t, err, context.Canceled)

	_, err = storage.GetUserByEmail(ctx, "jane@x.com")
	require.ErrorIs(t, err, context.Canceled)
}

func TestCheckDatabaseReady(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	require.NoError(t, CheckDatabaseReady(context.Background(), storage))
}
