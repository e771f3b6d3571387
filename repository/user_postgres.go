package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"team-portal/models"
)

//go:embed schema.sql
var schemaSQL string

const uniqueViolation = "23505"

// EnsureSchema creates the tables used by the Postgres store if they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// PostgresUserRepository is the SQL variant of the credential store.
type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, username, full_name, password, role, is_online, last_seen`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		u        models.User
		lastSeen sql.NullTime
	)
	if err := row.Scan(&u.ID, &u.Username, &u.FullName, &u.PasswordHash, &u.Role, &u.IsOnline, &lastSeen); err != nil {
		return models.User{}, err
	}
	if lastSeen.Valid {
		t := lastSeen.Time
		u.LastSeen = &t
	}
	return u, nil
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	id := uuid.NewString()
	query := `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		id, user.Username, user.FullName, user.PasswordHash, user.Role, user.IsOnline, user.LastSeen)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = id
	return nil
}

func (r *PostgresUserRepository) findOne(ctx context.Context, where string, arg any) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where
	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, `id = $1`, id)
}

func (r *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, `username = $1`, username)
}

func (r *PostgresUserRepository) ExistsWithRole(ctx context.Context, role string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE role = $1)`, role).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check role: %w", err)
	}
	return exists, nil
}

func (r *PostgresUserRepository) List(ctx context.Context, role string) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	var args []any
	if role != "" {
		query += ` WHERE role = $1`
		args = append(args, role)
	}
	query += ` ORDER BY username`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r *PostgresUserRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) SetPresence(ctx context.Context, id string, online bool, at time.Time) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	err := r.execOne(ctx, `UPDATE users SET is_online = $1, last_seen = $2 WHERE id = $3`, online, at, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("update presence: %w", err)
	}
	return err
}

func (r *PostgresUserRepository) MarkStaleOffline(ctx context.Context, role string, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_online = FALSE WHERE role = $1 AND is_online = TRUE AND last_seen < $2`,
		role, cutoff)
	if err != nil {
		return 0, fmt.Errorf("demote stale users: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("demote stale users: %w", err)
	}
	return n, nil
}

func (r *PostgresUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	err := r.execOne(ctx, `UPDATE users SET password = $1 WHERE id = $2`, passwordHash, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("update password: %w", err)
	}
	return err
}

func (r *PostgresUserRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	err := r.execOne(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete user: %w", err)
	}
	return err
}

func (r *PostgresUserRepository) Stats(ctx context.Context) (models.UserStats, error) {
	var stats models.UserStats
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_online) FROM users`).
		Scan(&stats.Total, &stats.Online)
	if err != nil {
		return models.UserStats{}, fmt.Errorf("user stats: %w", err)
	}
	return stats, nil
}
