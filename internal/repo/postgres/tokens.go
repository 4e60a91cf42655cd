package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/merrickb/recipebox/internal/domain/user"
)

var ErrTokenNotFound = errors.New("token not found")

type AuthTokenRow struct {
	ID        string
	UserID    string
	TokenHash string
	CreatedAt time.Time
	RevokedAt *time.Time
}

type AuthTokensRepo struct {
	pool *pgxpool.Pool
}

func NewAuthTokensRepo(pool *pgxpool.Pool) *AuthTokensRepo {
	return &AuthTokensRepo{pool: pool}
}

func (r *AuthTokensRepo) Create(ctx context.Context, row AuthTokenRow) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO auth_tokens (id, user_id, token_hash, created_at, revoked_at)
		VALUES ($1,$2,$3,$4,$5)
		`,
		row.ID, row.UserID, row.TokenHash, row.CreatedAt, row.RevokedAt,
	)
	return err
}

// Resolve maps a token fingerprint back to its account in one round trip.
// Revoked tokens and inactive accounts fail the same way as unknown tokens.
func (r *AuthTokensRepo) Resolve(ctx context.Context, tokenHash string) (user.User, error) {
	var u user.User

	err := r.pool.QueryRow(ctx, `
		SELECT u.id, u.email, u.password_hash, u.name, u.is_staff, u.is_superuser, u.is_active, u.created_at, u.updated_at
		FROM auth_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.token_hash = $1
		  AND t.revoked_at IS NULL
		  AND u.is_active
	`, tokenHash).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.IsStaff,
		&u.IsSuperuser,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, ErrTokenNotFound
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *AuthTokensRepo) Revoke(ctx context.Context, tokenHash string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE auth_tokens
		SET revoked_at = NOW()
		WHERE token_hash = $1 AND revoked_at IS NULL
	`, tokenHash)

	return err
}
