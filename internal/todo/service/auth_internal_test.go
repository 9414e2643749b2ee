package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aussiebroadwan/todo/internal/todo/store/drivers/sqlite"
	"github.com/aussiebroadwan/todo/pkg/cryptox"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterHashFailureIsWrapped(t *testing.T) {
	boom := errors.New("entropy exhausted")
	prev := hashPassword
	hashPassword = func(string, int) (string, error) { return "", boom }
	t.Cleanup(func() { hashPassword = prev })

	auth := &AuthService{}
	_, _, err := auth.Register(context.Background(), "alice", "pw1", "pw1")
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, ErrValidation)
	require.NotErrorIs(t, err, ErrStore)
	require.NotEqual(t, boom.Error(), err.Error(), "the cause is wrapped, not returned bare")
}

func TestLoginComparesEvenForUnknownUsers(t *testing.T) {
	ctx := context.Background()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	var hashes []string
	prev := verifyPassword
	verifyPassword = func(password, hash string) error {
		hashes = append(hashes, hash)
		return cryptox.VerifyPassword(password, hash)
	}
	t.Cleanup(func() { verifyPassword = prev })

	auth := &AuthService{Store: st, HashCost: bcrypt.MinCost}
	_, _, err = auth.Register(ctx, "alice", "pw1", "pw1")
	require.NoError(t, err)

	_, err = auth.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Login(ctx, "mallory", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = auth.Login(ctx, "trudy", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	require.Len(t, hashes, 3, "every failed login runs one bcrypt compare")

	cost, err := bcrypt.Cost([]byte(hashes[1]))
	require.NoError(t, err, "unknown users are compared against a real bcrypt hash")
	require.Equal(t, bcrypt.MinCost, cost, "at the same cost as stored passwords")
	require.Equal(t, hashes[1], hashes[2], "the throwaway hash is computed once")
}
