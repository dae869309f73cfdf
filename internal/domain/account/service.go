package account

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"dayflow/internal/domain/auth"
	"dayflow/internal/domain/employee"
	"dayflow/internal/platform/email"
)

const (
	defaultDepartment    = "General"
	defaultPosition      = "Employee"
	verificationTokenTTL = 24 * time.Hour
)

type Service struct {
	store     *Store
	employees *employee.Store
	mailer    email.Mailer
	emailFrom string
}

func NewService(store *Store, employees *employee.Store, mailer email.Mailer, emailFrom string) *Service {
	return &Service{store: store, employees: employees, mailer: mailer, emailFrom: emailFrom}
}

// Signup creates the account and its employee profile as a two-step saga:
// if the profile insert fails the freshly created account is deleted again,
// so a duplicate-email retry never observes a half-created registration.
func (s *Service) Signup(ctx context.Context, in SignupInput) (Account, employee.Profile, error) {
	normalized := NormalizeEmail(in.Email)

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return Account{}, employee.Profile{}, fmt.Errorf("hash password: %w", err)
	}

	acct, err := s.store.Create(ctx, normalized, hash, auth.RoleEmployee)
	if err != nil {
		return Account{}, employee.Profile{}, err
	}

	profile, err := s.employees.Create(ctx, employee.CreateInput{
		AccountID:  acct.ID,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      normalized,
		Phone:      in.Phone,
		Department: defaultDepartment,
		Position:   defaultPosition,
		Salary:     0,
		HireDate:   in.HireDate,
	})
	if err != nil {
		if delErr := s.store.Delete(ctx, acct.ID); delErr != nil {
			slog.Error("signup compensating delete failed", "accountId", acct.ID, "err", delErr)
		}
		return Account{}, employee.Profile{}, fmt.Errorf("create profile: %w", err)
	}

	s.sendVerificationMail(ctx, acct)

	return acct, profile, nil
}

func (s *Service) sendVerificationMail(ctx context.Context, acct Account) {
	token, err := generateToken()
	if err != nil {
		slog.Warn("verification token generation failed", "accountId", acct.ID, "err", err)
		return
	}
	if err := s.store.CreateVerificationToken(ctx, acct.ID, token, time.Now().Add(verificationTokenTTL)); err != nil {
		slog.Warn("verification token insert failed", "accountId", acct.ID, "err", err)
		return
	}
	subject, body := email.VerificationMessage(token)
	if err := s.mailer.Send(ctx, s.emailFrom, acct.Email, subject, body); err != nil {
		slog.Warn("verification mail send failed", "accountId", acct.ID, "err", err)
	}
}

// Authenticate fails with the same error for an unknown email and a wrong
// password so responses cannot be used to enumerate accounts.
func (s *Service) Authenticate(ctx context.Context, emailAddr, password string) (Account, error) {
	acct, err := s.store.FindByEmail(ctx, emailAddr)
	if err != nil {
		if err == ErrNotFound {
			return Account{}, ErrInvalidCredentials
		}
		return Account{}, err
	}
	if err := auth.CheckPassword(acct.PasswordHash, password); err != nil {
		return Account{}, ErrInvalidCredentials
	}
	return acct, nil
}

func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	accountID, expires, err := s.store.VerificationTokenAccount(ctx, token)
	if err != nil {
		return err
	}
	if time.Now().After(expires) {
		if delErr := s.store.DeleteVerificationToken(ctx, token); delErr != nil {
			slog.Warn("expired verification token delete failed", "err", delErr)
		}
		return ErrTokenInvalid
	}
	if err := s.store.MarkVerified(ctx, accountID); err != nil {
		return err
	}
	if err := s.store.DeleteVerificationToken(ctx, token); err != nil {
		slog.Warn("verification token delete failed", "err", err)
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, accountID string) (Account, error) {
	return s.store.FindByID(ctx, accountID)
}

func generateToken() (string, error) {
	buff := make([]byte, 32)
	if _, err := rand.Read(buff); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buff), nil
}
