package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/merrickb/recipebox/internal/domain/user"
)

const userColumns = `id, email, password_hash, name, is_staff, is_superuser, is_active, created_at, updated_at`

type UsersRepo struct {
	pool *pgxpool.Pool
}

func NewUsersRepo(pool *pgxpool.Pool) *UsersRepo {
	return &UsersRepo{pool: pool}
}

// Create registers a regular account. The email domain is normalized at
// write time so lookups can rely on the stored form.
func (r *UsersRepo) Create(ctx context.Context, email, passwordHash, name string) (user.User, error) {
	return r.create(ctx, email, passwordHash, name, false, false)
}

// CreateSuperuser is Create plus the staff and superuser flags.
func (r *UsersRepo) CreateSuperuser(ctx context.Context, email, passwordHash string) (user.User, error) {
	return r.create(ctx, email, passwordHash, "", true, true)
}

func (r *UsersRepo) create(ctx context.Context, email, passwordHash, name string, isStaff, isSuperuser bool) (user.User, error) {
	if email == "" {
		return user.User{}, user.ErrEmailRequired
	}

	u := user.User{
		ID:           uuid.NewString(),
		Email:        user.NormalizeEmail(email),
		PasswordHash: passwordHash,
		Name:         name,
		IsStaff:      isStaff,
		IsSuperuser:  isSuperuser,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO users(id, email, password_hash, name, is_staff, is_superuser, is_active, created_at, updated_at)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.IsStaff, u.IsSuperuser, u.IsActive, u.CreatedAt, u.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError

		// 23505: the unique index on email
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrEmailAlreadyUsed
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getWhere(ctx, "email = $1", email)
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.getWhere(ctx, "id = $1", id)
}

func (r *UsersRepo) getWhere(ctx context.Context, cond string, arg any) (user.User, error) {
	var u user.User

	err := r.pool.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE `+cond,
		arg,
	).Scan(
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
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

// UpdateProfile applies only the supplied fields.
func (r *UsersRepo) UpdateProfile(ctx context.Context, id string, req user.UpdateProfileRequest) (user.User, error) {
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{id}

	argsPosition := 2

	if req.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argsPosition))
		args = append(args, *req.Name)
		argsPosition++
	}

	if req.PasswordHash != nil {
		sets = append(sets, fmt.Sprintf("password_hash = $%d", argsPosition))
		args = append(args, *req.PasswordHash)
		argsPosition++
	}

	var u user.User

	query := `UPDATE users SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 RETURNING ` + userColumns

	err := r.pool.QueryRow(ctx, query, args...).Scan(
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
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}
