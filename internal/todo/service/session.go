package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/internal/todo/store"
	"github.com/aussiebroadwan/todo/pkg/cryptox"
	"github.com/aussiebroadwan/todo/pkg/slogx"
)

type SessionService struct {
	Store store.Store
}

// Resolve maps a session token to its user. It returns nil, never an error,
// when the token is empty, unknown, or points at a user that no longer
// exists; store failures are logged and treated the same way. Resolve is
// read-only.
func (s *SessionService) Resolve(ctx context.Context, token string) *domain.User {
	if token == "" {
		return nil
	}
	log := slogx.FromContext(ctx)

	rec, err := s.Store.AuthTokens().GetAuthTokenByHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("session: token lookup failed", slog.Any("error", err))
		}
		return nil
	}

	user, err := s.Store.Users().GetUserByID(ctx, rec.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("session: token references missing user", slog.String("user_id", rec.UserID))
		} else {
			log.Error("session: user lookup failed", slog.Any("error", err))
		}
		return nil
	}

	return &user
}
