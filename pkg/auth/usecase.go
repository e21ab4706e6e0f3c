package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"

	"github.com/taskhub/backend/pkg/logging"
)

// UseCase describes registration, authentication and account lifecycle
// behavior. Credential issuance is left to the TokenStrategy selected by
// the transport layer.
type UseCase interface {
	Register(ctx context.Context, email, password string) (User, error)
	Login(ctx context.Context, email, password string) (User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	RequestVerification(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, token string) (User, error)
	UpdateProfile(ctx context.Context, user User, patch ProfilePatch) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
}

// ProfilePatch carries the optional self-service profile changes. Nil
// fields keep their prior value.
type ProfilePatch struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// ErrValidation marks malformed input rejected before any storage write.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

type identityService struct {
	repos     Repositories
	tx        TxRunner
	notifier  TokenNotifier
	log       logging.Logger
	resetTTL  time.Duration
	verifyTTL time.Duration
}

// NewIdentityService returns the default implementation of UseCase.
func NewIdentityService(repos Repositories, tx TxRunner, notifier TokenNotifier, log logging.Logger, resetTTL, verifyTTL time.Duration) UseCase {
	return &identityService{
		repos:     repos,
		tx:        tx,
		notifier:  notifier,
		log:       log,
		resetTTL:  resetTTL,
		verifyTTL: verifyTTL,
	}
}

func validateEmail(email string) error {
	if err := validation.Validate(email, validation.Required, validation.Length(6, 100), is.Email); err != nil {
		return ErrValidation("email: " + err.Error())
	}
	return nil
}

func validatePassword(password string) error {
	// 72 bytes is the bcrypt input limit
	if err := validation.Validate(password, validation.Required, validation.Length(8, 72)); err != nil {
		return ErrValidation("password: " + err.Error())
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *identityService) Register(ctx context.Context, email, password string) (User, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return User{}, err
	}
	if err := validatePassword(password); err != nil {
		return User{}, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return User{}, err
	}

	now := time.Now().UTC()
	user, err := s.repos.Users().Create(ctx, User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return User{}, err
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

func (s *identityService) Login(ctx context.Context, email, password string) (User, error) {
	user, err := s.repos.Users().GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// burn a comparison so unknown email costs the same
			CheckPassword(password, dummyHash)
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return User{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return User{}, ErrAccountInactive
	}

	return user, nil
}

func (s *identityService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repos.Users().GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// respond identically for unknown emails
			s.log.Debug(ctx, "password reset for unknown email")
			return nil
		}
		return err
	}
	if !user.IsActive {
		return nil
	}

	raw, err := s.mintActionToken(ctx, user.ID, PurposePasswordReset, s.resetTTL)
	if err != nil {
		return err
	}

	s.notifier.PasswordResetToken(ctx, user.Email, raw)
	return nil
}

func (s *identityService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	err = s.tx.InTx(ctx, func(r Repositories) error {
		userID, err := r.ActionTokens().Consume(ctx, hashToken(token), PurposePasswordReset)
		if err != nil {
			return err
		}
		user, err := r.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
		_, err = r.Users().Update(ctx, user)
		return err
	})
	if err != nil {
		return err
	}

	s.log.Info(ctx, "password reset completed")
	return nil
}

func (s *identityService) RequestVerification(ctx context.Context, email string) error {
	user, err := s.repos.Users().GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	if !user.IsActive || user.IsVerified {
		return nil
	}

	raw, err := s.mintActionToken(ctx, user.ID, PurposeVerify, s.verifyTTL)
	if err != nil {
		return err
	}

	s.notifier.VerificationToken(ctx, user.Email, raw)
	return nil
}

func (s *identityService) VerifyEmail(ctx context.Context, token string) (User, error) {
	var verified User
	err := s.tx.InTx(ctx, func(r Repositories) error {
		userID, err := r.ActionTokens().Consume(ctx, hashToken(token), PurposeVerify)
		if err != nil {
			return err
		}
		user, err := r.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		user.IsVerified = true
		verified, err = r.Users().Update(ctx, user)
		return err
	})
	if err != nil {
		return User{}, err
	}

	s.log.Info(ctx, "email verified", "user_id", verified.ID)
	return verified, nil
}

func (s *identityService) UpdateProfile(ctx context.Context, user User, patch ProfilePatch) (User, error) {
	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		if err := validateEmail(email); err != nil {
			return User{}, err
		}
		user.Email = email
	}
	if patch.Password != nil {
		if err := validatePassword(*patch.Password); err != nil {
			return User{}, err
		}
		hash, err := HashPassword(*patch.Password)
		if err != nil {
			return User{}, err
		}
		user.PasswordHash = hash
	}

	return s.repos.Users().Update(ctx, user)
}

func (s *identityService) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	return s.repos.Users().GetByID(ctx, id)
}

// mintActionToken stores a hashed single-use token and returns the raw value.
func (s *identityService) mintActionToken(ctx context.Context, userID uuid.UUID, purpose string, ttl time.Duration) (string, error) {
	raw, err := randomToken()
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	err = s.repos.ActionTokens().Create(ctx, ActionToken{
		ID:        uuid.New(),
		UserID:    userID,
		Purpose:   purpose,
		TokenHash: hashToken(raw),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	})
	if err != nil {
		return "", err
	}

	return raw, nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
