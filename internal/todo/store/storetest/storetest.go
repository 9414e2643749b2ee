// Package storetest holds the behavioural contract every store driver must
// satisfy. Driver packages call Run from their own tests.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/internal/todo/store"
	"github.com/stretchr/testify/require"
)

// Factory returns a freshly migrated, empty store. It should register its own cleanup.
type Factory func(t *testing.T) store.Store

// Run executes the conformance suite against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("AuthTokens", func(t *testing.T) { testAuthTokens(t, newStore(t)) })
	t.Run("Tasks", func(t *testing.T) { testTasks(t, newStore(t)) })
	t.Run("TaskOwnership", func(t *testing.T) { testTaskOwnership(t, newStore(t)) })
	t.Run("WithTx", func(t *testing.T) { testWithTx(t, newStore(t)) })
}

func testUsers(t *testing.T, st store.Store) {
	ctx := context.Background()

	u, err := st.Users().CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.Equal(t, "alice", u.Username)

	byID, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.ID, byID.ID)
	require.Equal(t, "hash", byID.PasswordHash)
	require.WithinDuration(t, u.CreatedAt, byID.CreatedAt, time.Second)

	byName, err := st.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, byName.ID)

	_, err = st.Users().CreateUser(ctx, "alice", "other")
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = st.Users().GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Users().GetUserByUsername(ctx, "bob")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testAuthTokens(t *testing.T, st store.Store) {
	ctx := context.Background()

	u, err := st.Users().CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)

	tok := domain.AuthToken{TokenHash: "fp-1", UserID: u.ID, CreatedAt: time.Now()}
	require.NoError(t, st.AuthTokens().CreateAuthToken(ctx, tok))

	// A user may hold several live tokens.
	require.NoError(t, st.AuthTokens().CreateAuthToken(ctx,
		domain.AuthToken{TokenHash: "fp-2", UserID: u.ID, CreatedAt: time.Now()}))

	got, err := st.AuthTokens().GetAuthTokenByHash(ctx, "fp-1")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.UserID)
	require.Equal(t, "fp-1", got.TokenHash)
	require.Empty(t, got.Value, "raw token values are never stored")

	err = st.AuthTokens().CreateAuthToken(ctx, tok)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	err = st.AuthTokens().CreateAuthToken(ctx,
		domain.AuthToken{TokenHash: "fp-3", UserID: "no-such-user", CreatedAt: time.Now()})
	require.ErrorIs(t, err, store.ErrNotFound, "tokens must reference an existing user")

	require.NoError(t, st.AuthTokens().DeleteAuthToken(ctx, "fp-1"))
	_, err = st.AuthTokens().GetAuthTokenByHash(ctx, "fp-1")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, st.AuthTokens().DeleteAuthToken(ctx, "fp-1"), "deleting twice is fine")

	_, err = st.AuthTokens().GetAuthTokenByHash(ctx, "fp-2")
	require.NoError(t, err, "other tokens of the user survive")
}

func testTasks(t *testing.T, st store.Store) {
	ctx := context.Background()

	u, err := st.Users().CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)

	empty, err := st.Tasks().ListTasksByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, empty)

	descs := []string{"buy milk", "walk dog", "file taxes"}
	var created []domain.Task
	for _, d := range descs {
		task, err := st.Tasks().CreateTask(ctx, u.ID, d)
		require.NoError(t, err)
		require.False(t, task.IsComplete)
		created = append(created, task)
	}

	listed, err := st.Tasks().ListTasksByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	for i, task := range listed {
		require.Equal(t, created[i].ID, task.ID, "tasks come back in insertion order")
		require.Equal(t, descs[i], task.Description)
		require.False(t, task.IsComplete)
	}

	ok, err := st.Tasks().CompleteTask(ctx, u.ID, created[1].ID)
	require.NoError(t, err)
	require.True(t, ok)

	listed, err = st.Tasks().ListTasksByUser(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, listed[1].IsComplete)
	require.False(t, listed[0].IsComplete)

	n, err := st.Tasks().DeleteCompletedTasks(ctx, u.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	n, err = st.Tasks().DeleteCompletedTasks(ctx, u.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, n, "purging again deletes nothing")

	listed, err = st.Tasks().ListTasksByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	_, err = st.Tasks().CreateTask(ctx, "no-such-user", "orphan")
	require.ErrorIs(t, err, store.ErrNotFound, "tasks must reference an existing user")
}

func testTaskOwnership(t *testing.T, st store.Store) {
	ctx := context.Background()

	alice, err := st.Users().CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)
	bob, err := st.Users().CreateUser(ctx, "bob", "hash")
	require.NoError(t, err)

	task, err := st.Tasks().CreateTask(ctx, alice.ID, "alice's task")
	require.NoError(t, err)

	ok, err := st.Tasks().CompleteTask(ctx, bob.ID, task.ID)
	require.NoError(t, err)
	require.False(t, ok, "a user cannot complete someone else's task")

	bobs, err := st.Tasks().ListTasksByUser(ctx, bob.ID)
	require.NoError(t, err)
	require.Empty(t, bobs)

	alices, err := st.Tasks().ListTasksByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, alices, 1)
	require.False(t, alices[0].IsComplete)

	_, err = st.Tasks().CompleteTask(ctx, alice.ID, task.ID)
	require.NoError(t, err)

	n, err := st.Tasks().DeleteCompletedTasks(ctx, bob.ID)
	require.NoError(t, err)
	require.Zero(t, n, "purging only touches the caller's tasks")
}

func testWithTx(t *testing.T, st store.Store) {
	ctx := context.Background()
	boom := errors.New("boom")

	err := st.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().CreateUser(ctx, "ghost", "hash"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = st.Users().GetUserByUsername(ctx, "ghost")
	require.ErrorIs(t, err, store.ErrNotFound, "rolled back writes are not visible")

	err = st.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().CreateUser(ctx, "carol", "hash")
		if err != nil {
			return err
		}
		return tx.AuthTokens().CreateAuthToken(ctx,
			domain.AuthToken{TokenHash: "fp-carol", UserID: u.ID, CreatedAt: time.Now()})
	})
	require.NoError(t, err)

	carol, err := st.Users().GetUserByUsername(ctx, "carol")
	require.NoError(t, err)
	tok, err := st.AuthTokens().GetAuthTokenByHash(ctx, "fp-carol")
	require.NoError(t, err)
	require.Equal(t, carol.ID, tok.UserID)

	require.NoError(t, st.Ping(ctx))
}
