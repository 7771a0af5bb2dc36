package pgx

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/lborres/bantay"
)

const sessionColumns = `id, user_id, token, refresh_token, expires_at, created_at`

func (a *Adapter) CreateSession(session *bantay.Session) error {
	ctx := context.Background()

	query := `INSERT INTO public.sessions (id, user_id, token, refresh_token, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := a.pool.Exec(ctx, query,
		session.ID, session.UserID, session.Token, session.RefreshToken,
		session.ExpiresAt, session.CreatedAt,
	)
	return err
}

func (a *Adapter) GetSessionByID(id string) (*bantay.Session, error) {
	q := `SELECT ` + sessionColumns + ` FROM public.sessions WHERE id = $1`

	session := &bantay.Session{}
	err := a.pool.QueryRow(context.Background(), q, id).Scan(
		&session.ID, &session.UserID, &session.Token, &session.RefreshToken,
		&session.ExpiresAt, &session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, bantay.ErrInvalidToken
		}
		return nil, err
	}
	return session, nil
}

func (a *Adapter) GetUserSessions(userID string) ([]*bantay.Session, error) {
	q := `SELECT ` + sessionColumns + ` FROM public.sessions WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := a.pool.Query(context.Background(), q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*bantay.Session
	for rows.Next() {
		session := &bantay.Session{}
		if err := rows.Scan(
			&session.ID, &session.UserID, &session.Token, &session.RefreshToken,
			&session.ExpiresAt, &session.CreatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// DeleteExpiredSessions sweeps rows whose refresh token lifetime has
// passed. The engine never calls this; run it from a maintenance job.
func (a *Adapter) DeleteExpiredSessions() (int, error) {
	tag, err := a.pool.Exec(context.Background(), `DELETE FROM public.sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
