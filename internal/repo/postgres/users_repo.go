package postgres

import (
	"context"
	"errors"

	"github.com/deepakpotluri/jobPortal-Backend/internal/domain/user"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UsersRepo struct {
	pool *pgxpool.Pool
}

func NewUsersRepo(pool *pgxpool.Pool) *UsersRepo {
	return &UsersRepo{pool: pool}
}

func (r *UsersRepo) Create(ctx context.Context, u user.User) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO users (id, email, password_hash, role, company_name, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		u.ID, u.Email, u.PasswordHash, u.Role, u.CompanyName, u.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 = unique_violation on the email column
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrEmailTaken
		}

		return err
	}

	return nil
}

func (r *UsersRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var dummy string

	err := r.pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&dummy)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.pool.QueryRow(
		ctx,
		`SELECT id, email, password_hash, role, company_name, created_at
		 FROM users
		 WHERE email = $1`,
		email,
	).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CompanyName,
		&u.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

// GetProfile resolves a user by id without ever selecting the password hash;
// the exclusion happens at the query level, not at serialization.
func (r *UsersRepo) GetProfile(ctx context.Context, id string) (user.User, error) {
	var u user.User

	err := r.pool.QueryRow(
		ctx,
		`SELECT id, email, role, company_name, created_at
		 FROM users
		 WHERE id = $1`,
		id,
	).Scan(
		&u.ID,
		&u.Email,
		&u.Role,
		&u.CompanyName,
		&u.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}
	return u, nil
}
