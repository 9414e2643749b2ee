package todo_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/todo/pkg/todosdk"
	"github.com/stretchr/testify/require"
)

func TestTodoFlow(t *testing.T) {
	baseURL := setupTodoContainer(t)
	client := todosdk.NewSDKClient(baseURL)
	ctx := context.Background()

	t.Run("health", func(t *testing.T) {
		live, err := client.GetLiveness(ctx)
		require.NoError(t, err)
		require.Equal(t, "ok", live.Status)

		ready, err := client.GetReadiness(ctx)
		require.NoError(t, err)
		require.Equal(t, "ok", ready.Checks.Database)
	})

	t.Run("register, add, complete, purge, logout", func(t *testing.T) {
		alice, err := client.Register(ctx, "alice", "pw1", "pw1")
		require.NoError(t, err)

		page, err := alice.Home(ctx)
		require.NoError(t, err)
		require.Equal(t, "alice's tasks", page.Heading)

		page, err = alice.AddTask(ctx, "buy milk")
		require.NoError(t, err)
		require.Len(t, page.Tasks, 1)
		require.Equal(t, "buy milk", page.Tasks[0].Description)

		page, err = alice.CompleteTask(ctx, page.Tasks[0].ID)
		require.NoError(t, err)
		require.True(t, page.Tasks[0].Complete)

		page, err = alice.RemoveCompletedTasks(ctx)
		require.NoError(t, err)
		require.Empty(t, page.Tasks)

		require.NoError(t, alice.Logout(ctx))
		_, err = alice.Home(ctx)
		require.ErrorIs(t, err, todosdk.ErrNotSignedIn)
	})

	t.Run("tasks stay with their owner", func(t *testing.T) {
		bob, err := client.Register(ctx, "bob", "pw2", "pw2")
		require.NoError(t, err)
		_, err = bob.AddTask(ctx, "bob's chore")
		require.NoError(t, err)

		alice, err := client.Login(ctx, "alice", "pw1")
		require.NoError(t, err)
		page, err := alice.Home(ctx)
		require.NoError(t, err)
		require.Empty(t, page.Tasks)
	})

	t.Run("bad credentials", func(t *testing.T) {
		_, err := client.Login(ctx, "alice", "wrong")

		var formErr *todosdk.FormError
		require.ErrorAs(t, err, &formErr)
		require.Equal(t, http.StatusUnauthorized, formErr.StatusCode)
		require.Equal(t, "username or password incorrect", formErr.Message)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		_, err := client.Register(ctx, "bob", "pw3", "pw3")

		var formErr *todosdk.FormError
		require.ErrorAs(t, err, &formErr)
		require.Equal(t, http.StatusConflict, formErr.StatusCode)
	})
}
