package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/internal/todo/store"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return &Store{db: db}, mock
}

func TestCreateUserDuplicate(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+users`).
		WithArgs(sqlmock.AnyArg(), "alice", "hash", sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: codeUniqueViolation})

	_, err := st.Users().CreateUser(context.Background(), "alice", "hash")
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestCreateTaskUnknownUser(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+tasks.*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*FALSE,\s*\$4\)`).
		WithArgs(sqlmock.AnyArg(), "ghost", "haunt", sqlmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: codeForeignKeyViolation})

	_, err := st.Tasks().CreateTask(context.Background(), "ghost", "haunt")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetUserNotFound(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(`(?s)^SELECT .* FROM users WHERE username = \$1`).
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	_, err := st.Users().GetUserByUsername(context.Background(), "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestOtherDriverErrorsPassThrough(t *testing.T) {
	st, mock := newMockStore(t)
	boom := errors.New("db down")

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+authtokens`).
		WillReturnError(boom)

	err := st.AuthTokens().CreateAuthToken(context.Background(),
		domain.AuthToken{TokenHash: "fp", UserID: "u1", CreatedAt: time.Now()})
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, store.ErrNotFound)
	require.NotErrorIs(t, err, store.ErrAlreadyExists)
}

func TestCompleteTaskChecksOwner(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(`(?s)^UPDATE tasks SET is_complete = TRUE WHERE user_id = \$1 AND task_id = \$2`).
		WithArgs("bob", "t1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := st.Tasks().CompleteTask(context.Background(), "bob", "t1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestListAndPurge(t *testing.T) {
	st, mock := newMockStore(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"task_id", "user_id", "task_desc", "is_complete", "created_at"}).
		AddRow("01A", "u1", "buy milk", true, now).
		AddRow("01B", "u1", "walk dog", false, now)
	mock.ExpectQuery(`(?s)^SELECT .* FROM tasks\s+WHERE user_id = \$1\s+ORDER BY task_id`).
		WithArgs("u1").
		WillReturnRows(rows)

	mock.ExpectExec(`(?s)^DELETE FROM tasks WHERE user_id = \$1 AND is_complete`).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	tasks, err := st.Tasks().ListTasksByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Equal(t, "buy milk", tasks[0].Description)
	require.True(t, tasks[0].IsComplete)

	n, err := st.Tasks().DeleteCompletedTasks(context.Background(), "u1")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestWithTxRollsBack(t *testing.T) {
	st, mock := newMockStore(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+users`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := st.WithTx(context.Background(), func(tx store.Tx) error {
		if _, err := tx.Users().CreateUser(context.Background(), "alice", "hash"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
}

func TestWithTxCommits(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+users`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+authtokens`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := st.WithTx(context.Background(), func(tx store.Tx) error {
		u, err := tx.Users().CreateUser(context.Background(), "alice", "hash")
		if err != nil {
			return err
		}
		return tx.AuthTokens().CreateAuthToken(context.Background(),
			domain.AuthToken{TokenHash: "fp", UserID: u.ID, CreatedAt: time.Now()})
	})
	require.NoError(t, err)
}
