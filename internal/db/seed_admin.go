package db

import (
	"context"
	"errors"
	"time"

	"github.com/deepakpotluri/jobPortal-Backend/internal/config"
	"github.com/deepakpotluri/jobPortal-Backend/internal/domain/user"
	"github.com/deepakpotluri/jobPortal-Backend/internal/security"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureAdminUser seeds an admin account from the environment so a fresh
// deployment has at least one identity that can pass the employer gate.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var dummy string

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, cfg.AdminEmail).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	u := user.User{
		ID:           uuid.NewString(),
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         user.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, role, company_name, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		u.ID, u.Email, u.PasswordHash, u.Role, u.CompanyName, u.CreatedAt,
	)

	return err
}
