package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VaibhavKVerma/Natours/internal/application/ports"
	"github.com/VaibhavKVerma/Natours/internal/domain"
)

const (
	baseColumns = `id, name, email, role, password_changed_at,
		COALESCE(reset_token_hash, ''), reset_token_expires_at, active, created_at, updated_at`

	insertUserSQL = `INSERT INTO users
		(id, name, email, role, password_hash, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	updateProfileSQL = `UPDATE users SET name = $1, email = $2, updated_at = NOW()
		WHERE id = $3 AND active`

	updatePasswordSQL = `UPDATE users
		SET password_hash = $1, password_changed_at = $2,
			reset_token_hash = NULL, reset_token_expires_at = NULL, updated_at = NOW()
		WHERE id = $3`

	setResetTokenSQL = `UPDATE users
		SET reset_token_hash = $1, reset_token_expires_at = $2, updated_at = NOW()
		WHERE id = $3`

	clearResetTokenSQL = `UPDATE users
		SET reset_token_hash = NULL, reset_token_expires_at = NULL, updated_at = NOW()
		WHERE id = $1`

	deactivateSQL = `UPDATE users SET active = FALSE, updated_at = NOW()
		WHERE id = $1`
)

// UserRepository implements ports.UserRepository on PostgreSQL. Reads exclude
// the password hash unless the caller opts in with ports.WithPassword.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func selectColumns(o ports.ReadOptions) string {
	if o.IncludePassword {
		return baseColumns + `, password_hash`
	}
	return baseColumns
}

func (r *UserRepository) scanUser(row pgx.Row, includePassword bool) (*domain.User, error) {
	var u domain.User
	dest := []any{
		&u.ID.UUID, &u.Name, &u.Email, &u.Role, &u.PasswordChangedAt,
		&u.ResetTokenHash, &u.ResetTokenExpiresAt, &u.Active, &u.CreatedAt, &u.UpdatedAt,
	}
	if includePassword {
		dest = append(dest, &u.PasswordHash)
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.pool.Exec(ctx, insertUserSQL,
		user.ID.UUID, user.Name, user.Email, string(user.Role),
		user.PasswordHash, user.Active, user.CreatedAt, user.UpdatedAt)
	return err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string, opts ...ports.ReadOption) (*domain.User, error) {
	o := ports.ApplyReadOptions(opts)
	sql := `SELECT ` + selectColumns(o) + ` FROM users WHERE email = $1 AND active`
	return r.scanUser(r.pool.QueryRow(ctx, sql, email), o.IncludePassword)
}

func (r *UserRepository) GetByID(ctx context.Context, id domain.UserID, opts ...ports.ReadOption) (*domain.User, error) {
	o := ports.ApplyReadOptions(opts)
	sql := `SELECT ` + selectColumns(o) + ` FROM users WHERE id = $1 AND active`
	return r.scanUser(r.pool.QueryRow(ctx, sql, id.UUID), o.IncludePassword)
}

func (r *UserRepository) GetByResetTokenHash(ctx context.Context, tokenHash string) (*domain.User, error) {
	sql := `SELECT ` + baseColumns + ` FROM users
		WHERE reset_token_hash = $1 AND reset_token_expires_at > NOW() AND active`
	return r.scanUser(r.pool.QueryRow(ctx, sql, tokenHash), false)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id domain.UserID, name, email string) (*domain.User, error) {
	if _, err := r.pool.Exec(ctx, updateProfileSQL, name, email, id.UUID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id domain.UserID, passwordHash string, changedAt time.Time) error {
	_, err := r.pool.Exec(ctx, updatePasswordSQL, passwordHash, changedAt, id.UUID)
	return err
}

func (r *UserRepository) SetResetToken(ctx context.Context, id domain.UserID, tokenHash string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, setResetTokenSQL, tokenHash, expiresAt, id.UUID)
	return err
}

func (r *UserRepository) ClearResetToken(ctx context.Context, id domain.UserID) error {
	_, err := r.pool.Exec(ctx, clearResetTokenSQL, id.UUID)
	return err
}

func (r *UserRepository) Deactivate(ctx context.Context, id domain.UserID) error {
	_, err := r.pool.Exec(ctx, deactivateSQL, id.UUID)
	return err
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	sql := `SELECT ` + baseColumns + ` FROM users WHERE active
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, sql, int32(limit), int32(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []*domain.User
	for rows.Next() {
		u, err := r.scanUser(rows, false)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Ensure UserRepository implements ports.UserRepository.
var _ ports.UserRepository = (*UserRepository)(nil)
