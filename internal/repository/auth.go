// Package repository provides persistence implementations for credentials and documents.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/docstore/internal/models"
)

// PostgresAuthRepository implements credential persistence using a PostgreSQL database.
type PostgresAuthRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAuthRepository creates a new PostgresAuthRepository with the given database connection.
// db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgresAuthRepository(db *sql.DB) *PostgresAuthRepository {
	return &PostgresAuthRepository{DB: db}
}

// Load returns every stored username with its password hash.
func (r *PostgresAuthRepository) Load(ctx context.Context) (map[string]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT login, password_hash FROM users`)
	if err != nil {
		return nil, fmt.Errorf("load users: %w: %w", models.ErrStorage, err)
	}
	defer rows.Close()

	users := make(map[string]string)
	for rows.Next() {
		var login, hash string
		if err := rows.Scan(&login, &hash); err != nil {
			return nil, fmt.Errorf("scan: %w: %w", models.ErrStorage, err)
		}
		users[login] = hash
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w: %w", models.ErrStorage, err)
	}
	return users, nil
}

// PasswordHash returns the stored hash for login. The boolean is false when
// no such user exists.
func (r *PostgresAuthRepository) PasswordHash(ctx context.Context, login string) (string, bool, error) {
	var hash string
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT password_hash FROM users WHERE login = $1`,
		login,
	).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup user: %w: %w", models.ErrStorage, err)
	}
	return hash, true, nil
}

// RegisterUser inserts a new user with the given password hash.
// The ON CONFLICT DO NOTHING clause leaves an existing row untouched, in
// which case models.ErrUsernameTaken is returned.
func (r *PostgresAuthRepository) RegisterUser(ctx context.Context, login, passwordHash string) error {
	res, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO users (login, password_hash) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		login, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w: %w", models.ErrStorage, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w: %w", models.ErrStorage, err)
	}
	if n == 0 {
		return models.ErrUsernameTaken
	}
	return nil
}
