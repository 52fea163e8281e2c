package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/kamelin22/user-api/internal/userapi/domain"
	"github.com/kamelin22/user-api/internal/userapi/store"
	"github.com/kamelin22/user-api/internal/userapi/store/drivers/sqlite"
	"github.com/kamelin22/user-api/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func createUser(t *testing.T, s *sqlite.Store, username string) domain.User {
	t.Helper()

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestUsersRepo(t *testing.T) {
	t.Parallel()

	t.Run("create and fetch roundtrip", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t)
		ctx := context.Background()

		created := createUser(t, s, "alice")

		byName, err := s.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, created.ID, byName.ID)
		require.Equal(t, created.PasswordHash, byName.PasswordHash)
		require.False(t, byName.CreatedAt.IsZero())

		byID, err := s.Users().GetUserByID(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, "alice", byID.Username)
	})

	t.Run("missing user maps to ErrNotFound", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t)

		_, err := s.Users().GetUserByUsername(context.Background(), "nobody")
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Users().GetUserByID(context.Background(), "missing-id")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("concurrent inserts of one username keep a single row", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t)
		ctx := context.Background()

		const workers = 8
		errs := make(chan error, workers)
		var wg sync.WaitGroup
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- s.Users().CreateUser(ctx, domain.User{
					ID:           idx.New().String(),
					Username:     "alice",
					PasswordHash: "hash",
				})
			}()
		}
		wg.Wait()
		close(errs)

		var inserted int
		for err := range errs {
			if err == nil {
				inserted++
				continue
			}
			require.ErrorIs(t, err, store.ErrAlreadyExists)
		}
		require.Equal(t, 1, inserted)

		_, err := s.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
	})

	t.Run("duplicate username maps to ErrAlreadyExists", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t)
		ctx := context.Background()

		createUser(t, s, "alice")

		err := s.Users().CreateUser(ctx, domain.User{
			ID:           idx.New().String(),
			Username:     "alice",
			PasswordHash: "other",
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)

		// The failed insert must not have touched the original row.
		u, err := s.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotEqual(t, "other", u.PasswordHash)
	})
}

func TestFavouritesRepo(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	u := createUser(t, s, "alice")

	items, err := s.Favourites().ListFavourites(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, items)

	require.NoError(t, s.Favourites().AddFavourite(ctx, u.ID, "tt0111161"))
	require.NoError(t, s.Favourites().AddFavourite(ctx, u.ID, "tt0068646"))

	// Adding the same item twice is a no-op.
	require.NoError(t, s.Favourites().AddFavourite(ctx, u.ID, "tt0111161"))

	items, err = s.Favourites().ListFavourites(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Contains(t, items, "tt0111161")
	require.Contains(t, items, "tt0068646")

	require.NoError(t, s.Favourites().RemoveFavourite(ctx, u.ID, "tt0111161"))
	require.NoError(t, s.Favourites().RemoveFavourite(ctx, u.ID, "never-added"))

	items, err = s.Favourites().ListFavourites(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"tt0068646"}, items)
}

func TestHistoryRepo(t *testing.T) {
	t.Parallel()

	t.Run("entries come back newest first", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t)
		ctx := context.Background()
		u := createUser(t, s, "alice")

		for i := range 3 {
			require.NoError(t, s.History().AddHistory(ctx, domain.HistoryEntry{
				ID:     idx.New().String(),
				UserID: u.ID,
				Query:  fmt.Sprintf("query-%d", i),
			}))
		}

		entries, err := s.History().ListHistory(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		require.Equal(t, "query-2", entries[0].Query)
		require.Equal(t, "query-0", entries[2].Query)
	})

	t.Run("retains only the most recent entries", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t)
		ctx := context.Background()
		u := createUser(t, s, "alice")

		for i := range store.HistoryLimit + 10 {
			require.NoError(t, s.History().AddHistory(ctx, domain.HistoryEntry{
				ID:     idx.New().String(),
				UserID: u.ID,
				Query:  fmt.Sprintf("query-%d", i),
			}))
		}

		entries, err := s.History().ListHistory(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, entries, store.HistoryLimit)
		require.Equal(t, fmt.Sprintf("query-%d", store.HistoryLimit+9), entries[0].Query)
		require.Equal(t, "query-10", entries[len(entries)-1].Query)
	})

	t.Run("remove enforces ownership", func(t *testing.T) {
		t.Parallel()
		s := newTestStore(t)
		ctx := context.Background()
		alice := createUser(t, s, "alice")
		bob := createUser(t, s, "bob")

		entry := domain.HistoryEntry{ID: idx.New().String(), UserID: alice.ID, Query: "secret"}
		require.NoError(t, s.History().AddHistory(ctx, entry))

		require.ErrorIs(t, s.History().RemoveHistory(ctx, bob.ID, entry.ID), store.ErrNotFound)
		require.NoError(t, s.History().RemoveHistory(ctx, alice.ID, entry.ID))
		require.ErrorIs(t, s.History().RemoveHistory(ctx, alice.ID, entry.ID), store.ErrNotFound)
	})
}
