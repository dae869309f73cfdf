package account

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	platformdb "dayflow/internal/platform/db"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) Create(ctx context.Context, email, passwordHash, role string) (Account, error) {
	var acct Account
	err := s.DB.QueryRow(ctx, `
    INSERT INTO accounts (email, password_hash, role, verified)
    VALUES ($1, $2, $3, false)
    RETURNING id, email, password_hash, role, verified, created_at
  `, email, passwordHash, role).Scan(&acct.ID, &acct.Email, &acct.PasswordHash, &acct.Role, &acct.Verified, &acct.CreatedAt)
	if err != nil {
		if platformdb.IsUniqueViolation(err) {
			return Account{}, ErrDuplicateEmail
		}
		return Account{}, err
	}
	return acct, nil
}

func (s *Store) Delete(ctx context.Context, accountID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM accounts WHERE id = $1", accountID)
	return err
}

func (s *Store) FindByEmail(ctx context.Context, email string) (Account, error) {
	var acct Account
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, password_hash, role, verified, created_at
    FROM accounts
    WHERE lower(email) = lower($1)
  `, email).Scan(&acct.ID, &acct.Email, &acct.PasswordHash, &acct.Role, &acct.Verified, &acct.CreatedAt)
	if err != nil {
		if platformdb.IsNoRows(err) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	return acct, nil
}

func (s *Store) FindByID(ctx context.Context, accountID string) (Account, error) {
	var acct Account
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, password_hash, role, verified, created_at
    FROM accounts
    WHERE id = $1
  `, accountID).Scan(&acct.ID, &acct.Email, &acct.PasswordHash, &acct.Role, &acct.Verified, &acct.CreatedAt)
	if err != nil {
		if platformdb.IsNoRows(err) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	return acct, nil
}

func (s *Store) CreateVerificationToken(ctx context.Context, accountID, token string, expires time.Time) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO email_verification_tokens (token, account_id, expires_at)
    VALUES ($1, $2, $3)
  `, token, accountID, expires)
	return err
}

func (s *Store) VerificationTokenAccount(ctx context.Context, token string) (string, time.Time, error) {
	var accountID string
	var expires time.Time
	err := s.DB.QueryRow(ctx, `
    SELECT account_id, expires_at
    FROM email_verification_tokens
    WHERE token = $1
  `, token).Scan(&accountID, &expires)
	if err != nil {
		if platformdb.IsNoRows(err) {
			return "", time.Time{}, ErrTokenInvalid
		}
		return "", time.Time{}, err
	}
	return accountID, expires, nil
}

func (s *Store) DeleteVerificationToken(ctx context.Context, token string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM email_verification_tokens WHERE token = $1", token)
	return err
}

func (s *Store) MarkVerified(ctx context.Context, accountID string) error {
	_, err := s.DB.Exec(ctx, "UPDATE accounts SET verified = true WHERE id = $1", accountID)
	return err
}
