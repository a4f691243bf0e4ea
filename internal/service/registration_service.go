package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Keavors/MyFanBoard/internal/domain/entity"
	"github.com/Keavors/MyFanBoard/internal/domain/repository"
	apperrors "github.com/Keavors/MyFanBoard/internal/pkg/errors"
)

// RegistrationService drives the registration flow: an email comes in, an
// inactive account and a registration code are created atomically, and the
// account is activated once the code comes back.
type RegistrationService struct {
	txManager   repository.TxManager
	userRepo    repository.UserRepository
	pendingRepo repository.PendingVerificationRepository
	emailSender EmailSender
	pendingTTL  time.Duration
}

func NewRegistrationService(
	txManager repository.TxManager,
	userRepo repository.UserRepository,
	pendingRepo repository.PendingVerificationRepository,
	emailSender EmailSender,
	pendingTTL time.Duration,
) (*RegistrationService, error) {
	if txManager == nil {
		return nil, fmt.Errorf("TxManager is required for RegistrationService")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for RegistrationService")
	}
	if pendingRepo == nil {
		return nil, fmt.Errorf("PendingVerificationRepository is required for RegistrationService")
	}
	if emailSender == nil {
		return nil, fmt.Errorf("EmailSender is required for RegistrationService")
	}
	if pendingTTL <= 0 {
		pendingTTL = 15 * time.Minute
	}
	return &RegistrationService{
		txManager:   txManager,
		userRepo:    userRepo,
		pendingRepo: pendingRepo,
		emailSender: emailSender,
		pendingTTL:  pendingTTL,
	}, nil
}

// SubmitEmail starts the flow. On success the returned session ID identifies
// the pending verification. A non-nil *DeliveryError alongside a session ID
// means the account and code were committed but the email did not go out.
func (s *RegistrationService) SubmitEmail(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return "", fmt.Errorf("%w: a valid email is required", apperrors.ErrValidation)
	}

	// The unique index on users.email backs this check up against races.
	_, err := s.userRepo.GetByEmail(email)
	if err == nil {
		return "", ErrDuplicateEmail
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return "", fmt.Errorf("failed to check email existence: %w", err)
	}

	// The pending marker goes in first: if the transaction below fails, the
	// marker points at nothing and expires on its own, whereas a committed
	// account without a marker would strand the user.
	sessionID := uuid.NewString()
	if err := s.pendingRepo.Set(ctx, repository.PendingFlowRegistration, sessionID, email, s.pendingTTL); err != nil {
		return "", fmt.Errorf("failed to store pending verification: %w", err)
	}

	var code *entity.OneTimeCode
	err = s.txManager.Do(ctx, func(r *repository.Repositories) error {
		now := time.Now()

		user := &entity.User{
			Username: entity.UsernameFromEmail(email),
			Email:    email,
			IsActive: false,
		}
		if err := r.Users.Create(user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		// Profile creation is an invariant of account creation, it rides the
		// same transaction.
		if err := r.Profiles.Create(&entity.UserProfile{UserID: user.ID, NewsletterSubscribed: true}); err != nil {
			return fmt.Errorf("failed to create user profile: %w", err)
		}

		var cErr error
		code, cErr = entity.NewOneTimeCode(user.ID, entity.CodeKindRegistration, now)
		if cErr != nil {
			return cErr
		}
		if err := r.Codes.Create(code); err != nil {
			return fmt.Errorf("failed to create registration code: %w", err)
		}
		return nil
	})
	if err != nil {
		if clearErr := s.pendingRepo.Clear(ctx, repository.PendingFlowRegistration, sessionID); clearErr != nil {
			log.Printf("[RegistrationService] failed to clear pending marker after rollback: %v", clearErr)
		}
		return "", err
	}

	// Post-commit notification: a delivery failure is reported, never rolled
	// back. The code stays valid, the user can ask for a resend.
	if err := s.emailSender.SendOneTimeCode(ctx, email, entity.CodeKindRegistration, code.Code); err != nil {
		log.Printf("[RegistrationService] registration code saved but email to %s failed: %v", email, err)
		return sessionID, &DeliveryError{Email: email, Err: err}
	}

	return sessionID, nil
}

// VerifyCode completes the flow: consumes the code and activates the account
// atomically, then clears the pending marker.
func (s *RegistrationService) VerifyCode(ctx context.Context, sessionID, code string) error {
	if sessionID == "" {
		return ErrMissingSession
	}

	email, err := s.pendingRepo.Get(ctx, repository.PendingFlowRegistration, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return ErrMissingSession
		}
		return fmt.Errorf("failed to read pending verification: %w", err)
	}

	err = s.txManager.Do(ctx, func(r *repository.Repositories) error {
		now := time.Now()

		otc, err := r.Codes.FindValid(email, code, entity.CodeKindRegistration, now)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return ErrInvalidOrExpiredCode
			}
			return err
		}

		// Conditional flip: a concurrent verification of the same code loses
		// here and reports the same invalid-code error.
		if err := r.Codes.MarkUsed(otc.ID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return ErrInvalidOrExpiredCode
			}
			return err
		}

		if err := r.Users.Activate(otc.UserID); err != nil {
			return fmt.Errorf("failed to activate user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.pendingRepo.Clear(ctx, repository.PendingFlowRegistration, sessionID); err != nil {
		// The marker expires on its own; a stale one only allows a redundant
		// retry that will find no valid code.
		log.Printf("[RegistrationService] failed to clear pending marker for %s: %v", email, err)
	}

	log.Printf("[RegistrationService] account %s verified and activated", email)
	return nil
}

// normalizeEmail приводит email к каноничному виду для сравнения
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
