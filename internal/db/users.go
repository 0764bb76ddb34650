package db

import (
	"context"

	"github.com/dailywrite/backend/internal/model"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, login_id, email, password_hash, nickname, role, phone_number, coupon, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.LoginID,
		&user.Email,
		&user.PasswordHash,
		&user.Nickname,
		&user.Role,
		&user.PhoneNumber,
		&user.Coupon,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (db *Postgres) CreateUser(ctx context.Context, u model.NewUser) (*model.User, error) {
	query := `
		INSERT INTO users (login_id, email, password_hash, nickname, phone_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + userColumns
	return scanUser(db.Pool.QueryRow(ctx, query, u.LoginID, u.Email, u.PasswordHash, u.Nickname, u.PhoneNumber))
}

func (db *Postgres) GetUserByLoginID(ctx context.Context, loginID string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE login_id = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, loginID))
}

func (db *Postgres) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, userID))
}

func (db *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return scanUser(db.Pool.QueryRow(ctx, query, email))
}

// UpdatePasswordHash - 아이디와 이메일이 모두 일치하는 행만 변경. 변경된 행이 없으면 false
func (db *Postgres) UpdatePasswordHash(ctx context.Context, loginID, email, passwordHash string) (bool, error) {
	query := `
		UPDATE users
		SET password_hash = $3, updated_at = NOW()
		WHERE login_id = $1 AND lower(email) = lower($2)
	`
	tag, err := db.Pool.Exec(ctx, query, loginID, email, passwordHash)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
