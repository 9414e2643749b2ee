package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/internal/todo/store"
	"github.com/aussiebroadwan/todo/pkg/cryptox"
	"github.com/aussiebroadwan/todo/pkg/slogx"
)

// Swapped out in tests.
var (
	hashPassword   = cryptox.HashPassword
	verifyPassword = cryptox.VerifyPassword
)

type AuthService struct {
	Store store.Store

	// HashCost is the bcrypt work factor. Zero means cryptox.DefaultCost.
	HashCost int

	dummyOnce sync.Once
	dummyHash string
}

// Register creates an account and signs it in.
//
// Returns:
//   - (User, AuthToken, nil) on success; the token carries its raw Value for the cookie
//   - ErrMissingFields when any field is blank
//   - ErrPasswordMismatch when password and confirmPassword differ
//   - ErrDuplicateUsername when the username is taken
//   - ErrStore on any other persistence failure
//
// The user row and its first token are written in one transaction, so a
// failure leaves neither behind.
func (s *AuthService) Register(ctx context.Context, username, password, confirmPassword string) (domain.User, domain.AuthToken, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" || confirmPassword == "" {
		return domain.User{}, domain.AuthToken{}, ErrMissingFields
	}
	if password != confirmPassword {
		return domain.User{}, domain.AuthToken{}, ErrPasswordMismatch
	}

	hash, err := hashPassword(password, s.cost())
	if err != nil {
		if errors.Is(err, cryptox.ErrPasswordTooLong) {
			return domain.User{}, domain.AuthToken{}, ErrPasswordTooLong
		}
		log.Error("register: hash password failed", slog.Any("error", err))
		return domain.User{}, domain.AuthToken{}, fmt.Errorf("register: %w", err)
	}

	var (
		user  domain.User
		token domain.AuthToken
	)
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		user, err = tx.Users().CreateUser(ctx, username, hash)
		if err != nil {
			return err
		}
		token, err = issueToken(ctx, tx, user.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("register: username taken", slog.String("username", username))
			return domain.User{}, domain.AuthToken{}, ErrDuplicateUsername
		}
		log.Error("register: store failure", slog.Any("error", err))
		return domain.User{}, domain.AuthToken{}, storeErr(err)
	}

	log.Info("user registered", slog.String("user_id", user.ID))
	return user, token, nil
}

// Login checks credentials and mints a brand-new token. Earlier tokens of
// the user stay valid.
//
// An unknown username and a wrong password both return ErrInvalidCredentials
// so callers cannot probe which usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.AuthToken, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.AuthToken{}, ErrMissingFields
	}

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Pay for a compare anyway so timing does not reveal the miss.
			_ = verifyPassword(password, s.timingHash())
			log.Warn("login: unknown username")
			return domain.AuthToken{}, ErrInvalidCredentials
		}
		log.Error("login: user lookup failed", slog.Any("error", err))
		return domain.AuthToken{}, storeErr(err)
	}

	if err := verifyPassword(password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Error("login: stored hash unusable", slog.String("user_id", user.ID), slog.Any("error", err))
		}
		return domain.AuthToken{}, ErrInvalidCredentials
	}

	token, err := issueToken(ctx, s.Store, user.ID)
	if err != nil {
		log.Error("login: issue token failed", slog.Any("error", err))
		return domain.AuthToken{}, storeErr(err)
	}

	log.Info("user logged in", slog.String("user_id", user.ID))
	return token, nil
}

// Logout forgets the server-side record of token. Unknown or empty tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.Store.AuthTokens().DeleteAuthToken(ctx, cryptox.FingerprintToken(token)); err != nil {
		slogx.FromContext(ctx).Error("logout: delete token failed", slog.Any("error", err))
		return storeErr(err)
	}
	return nil
}

func (s *AuthService) cost() int {
	if s.HashCost == 0 {
		return cryptox.DefaultCost
	}
	return s.HashCost
}

// timingHash returns a throwaway hash at the configured cost, so a login for
// an unknown username does the same bcrypt work as a wrong password.
func (s *AuthService) timingHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = hashPassword("no-such-user", s.cost())
	})
	return s.dummyHash
}

// issueToken mints a token for userID and persists its fingerprint through st.
func issueToken(ctx context.Context, st store.Store, userID string) (domain.AuthToken, error) {
	value, err := cryptox.NewSessionToken()
	if err != nil {
		return domain.AuthToken{}, err
	}

	token := domain.AuthToken{
		Value:     value,
		TokenHash: cryptox.FingerprintToken(value),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := st.AuthTokens().CreateAuthToken(ctx, token); err != nil {
		return domain.AuthToken{}, err
	}
	return token, nil
}
