package sqlite

import (
	"context"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
)

type authTokensRepo struct {
	db dbtx
}

func (r *authTokensRepo) CreateAuthToken(ctx context.Context, t domain.AuthToken) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO authtokens (token, user_id, created_at) VALUES (?, ?, ?)`,
		t.TokenHash, t.UserID, t.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *authTokensRepo) GetAuthTokenByHash(ctx context.Context, hash string) (domain.AuthToken, error) {
	var t domain.AuthToken
	err := r.db.QueryRowContext(ctx,
		`SELECT token, user_id, created_at FROM authtokens WHERE token = ?`, hash,
	).Scan(&t.TokenHash, &t.UserID, &t.CreatedAt)
	if err != nil {
		return domain.AuthToken{}, mapNotFound(err)
	}
	return t, nil
}

func (r *authTokensRepo) DeleteAuthToken(ctx context.Context, hash string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM authtokens WHERE token = ?`, hash)
	return err
}
