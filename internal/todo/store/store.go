package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Sub-repositories hang off it as methods so a transaction
// scoped Store hands out repositories bound to that transaction, and nobody
// can start a transaction inside one by accident.
type Store interface {
	Users() Users
	AuthTokens() AuthTokens
	Tasks() Tasks

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Inside fn only
	// the repositories of tx may be used.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying connection pool.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user, generating its id. Returns
	// ErrAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, username, passwordHash string) (domain.User, error)

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
}

type AuthTokens interface {
	// CreateAuthToken stores a token fingerprint for a user. The user must exist.
	CreateAuthToken(ctx context.Context, t domain.AuthToken) error

	// GetAuthTokenByHash returns the token record by its fingerprint.
	GetAuthTokenByHash(ctx context.Context, hash string) (domain.AuthToken, error)

	// DeleteAuthToken removes a token record. Deleting an unknown token is not an error.
	DeleteAuthToken(ctx context.Context, hash string) error
}

type Tasks interface {
	// CreateTask inserts an incomplete task for userID, generating its id.
	CreateTask(ctx context.Context, userID, description string) (domain.Task, error)

	// ListTasksByUser returns the user's tasks in insertion order.
	ListTasksByUser(ctx context.Context, userID string) ([]domain.Task, error)

	// CompleteTask flags a task complete. Only a row matching both ids is
	// touched; the bool reports whether one was.
	CompleteTask(ctx context.Context, userID, taskID string) (bool, error)

	// DeleteCompletedTasks removes every completed task of userID and
	// returns how many rows went.
	DeleteCompletedTasks(ctx context.Context, userID string) (int64, error)
}
