package pgx

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lborres/bantay"
)

// uniqueViolation is the PostgreSQL error code raised when an INSERT hits
// a UNIQUE constraint.
const uniqueViolation = "23505"

const userColumns = `id, username, email, password_hash, is_verified, otp_enabled, COALESCE(otp_secret, ''), otp_verified, created_at, updated_at`

func (a *Adapter) CreateUser(user *bantay.User) error {
	ctx := context.Background()

	query := `INSERT INTO public.users (username, email, password_hash, is_verified, otp_enabled, otp_secret, otp_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := a.pool.QueryRow(ctx, query,
		user.Username, user.Email, user.PasswordHash,
		user.IsVerified, user.OTPEnabled, user.OTPSecret, user.OTPVerified,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return bantay.ErrDuplicateAccount
		}
		return err
	}
	return nil
}

func (a *Adapter) GetUserByID(id string) (*bantay.User, error) {
	q := `SELECT ` + userColumns + ` FROM public.users WHERE id = $1`
	return a.scanUser(a.pool.QueryRow(context.Background(), q, id))
}

func (a *Adapter) GetUserByUsername(username string) (*bantay.User, error) {
	q := `SELECT ` + userColumns + ` FROM public.users WHERE username = $1`
	return a.scanUser(a.pool.QueryRow(context.Background(), q, username))
}

func (a *Adapter) GetUserByUsernameOrEmail(username, email string) (*bantay.User, error) {
	q := `SELECT ` + userColumns + ` FROM public.users WHERE username = $1 OR email = $2 LIMIT 1`
	return a.scanUser(a.pool.QueryRow(context.Background(), q, username, email))
}

func (a *Adapter) SetUserOTPSecret(id, secret string) error {
	q := `UPDATE public.users SET otp_secret = $2, updated_at = now() WHERE id = $1`
	return a.execUserUpdate(q, id, secret)
}

func (a *Adapter) MarkUserVerified(id string) error {
	q := `UPDATE public.users SET is_verified = TRUE, otp_verified = TRUE, updated_at = now() WHERE id = $1`
	return a.execUserUpdate(q, id)
}

func (a *Adapter) SetUserTwoFactor(id string, enabled bool) error {
	q := `UPDATE public.users SET otp_enabled = $2, updated_at = now() WHERE id = $1`
	return a.execUserUpdate(q, id, enabled)
}

func (a *Adapter) scanUser(row pgx.Row) (*bantay.User, error) {
	user := &bantay.User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.IsVerified, &user.OTPEnabled, &user.OTPSecret, &user.OTPVerified,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, bantay.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (a *Adapter) execUserUpdate(query, id string, args ...any) error {
	tag, err := a.pool.Exec(context.Background(), query, append([]any{id}, args...)...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return bantay.ErrUserNotFound
	}
	return nil
}
