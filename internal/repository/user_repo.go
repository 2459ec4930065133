package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"zkpark/internal/db"
)

// ErrEmailTaken is returned by CreateUser when the email already has a row.
var ErrEmailTaken = errors.New("email already registered")

const uniqueViolation = "23505"

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*db.User, error)
	CreateUser(ctx context.Context, email, password string, age int) error
	UpdateWalletAddr(ctx context.Context, email string, walletAddr *string) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// GetByEmail returns nil, nil when no row matches.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*db.User, error) {
	var user db.User
	err := r.db.QueryRowContext(ctx, `SELECT email_id, pwd, age, wallet_addr FROM "user" WHERE email_id = $1`, email).
		Scan(&user.Email, &user.PasswordHash, &user.Age, &user.WalletAddr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user %s: %w", email, err)
	}
	return &user, nil
}

func (r *userRepository) CreateUser(ctx context.Context, email, password string, age int) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO "user" (email_id, pwd, age) VALUES ($1, $2, $3)`, email, string(hashedPassword), age)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrEmailTaken
		}
		return fmt.Errorf("error saving user details: %w", err)
	}
	return nil
}

// UpdateWalletAddr stores walletAddr as given; nil clears the column.
func (r *userRepository) UpdateWalletAddr(ctx context.Context, email string, walletAddr *string) error {
	var value sql.NullString
	if walletAddr != nil {
		value = sql.NullString{String: *walletAddr, Valid: true}
	}
	res, err := r.db.ExecContext(ctx, `UPDATE "user" SET wallet_addr = $1 WHERE email_id = $2`, value, email)
	if err != nil {
		return fmt.Errorf("error updating wallet address: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("user %s not found: %w", email, sql.ErrNoRows)
	}
	return nil
}
