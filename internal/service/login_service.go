package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Keavors/MyFanBoard/internal/domain/entity"
	"github.com/Keavors/MyFanBoard/internal/domain/repository"
	apperrors "github.com/Keavors/MyFanBoard/internal/pkg/errors"
	"github.com/Keavors/MyFanBoard/pkg/auth"
)

// LoginService drives the passwordless login flow: a fresh code is issued
// for an active account (superseding older login codes), and a verified code
// turns into an authenticated session via the JWT service.
type LoginService struct {
	txManager   repository.TxManager
	userRepo    repository.UserRepository
	pendingRepo repository.PendingVerificationRepository
	emailSender EmailSender
	jwtService  *auth.JWTService
	pendingTTL  time.Duration
}

func NewLoginService(
	txManager repository.TxManager,
	userRepo repository.UserRepository,
	pendingRepo repository.PendingVerificationRepository,
	emailSender EmailSender,
	jwtService *auth.JWTService,
	pendingTTL time.Duration,
) (*LoginService, error) {
	if txManager == nil {
		return nil, fmt.Errorf("TxManager is required for LoginService")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for LoginService")
	}
	if pendingRepo == nil {
		return nil, fmt.Errorf("PendingVerificationRepository is required for LoginService")
	}
	if emailSender == nil {
		return nil, fmt.Errorf("EmailSender is required for LoginService")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("JWTService is required for LoginService")
	}
	if pendingTTL <= 0 {
		pendingTTL = 15 * time.Minute
	}
	return &LoginService{
		txManager:   txManager,
		userRepo:    userRepo,
		pendingRepo: pendingRepo,
		emailSender: emailSender,
		jwtService:  jwtService,
		pendingTTL:  pendingTTL,
	}, nil
}

// RequestCode issues a fresh login code for an active account. Every code of
// the login kind that was still valid is invalidated in the same transaction,
// so after commit at most one login code per account can be consumed.
func (s *LoginService) RequestCode(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", fmt.Errorf("%w: a valid email is required", apperrors.ErrValidation)
	}

	sessionID := uuid.NewString()
	if err := s.pendingRepo.Set(ctx, repository.PendingFlowLogin, sessionID, email, s.pendingTTL); err != nil {
		return "", fmt.Errorf("failed to store pending verification: %w", err)
	}

	var code *entity.OneTimeCode
	err := s.txManager.Do(ctx, func(r *repository.Repositories) error {
		now := time.Now()

		// Row lock serializes concurrent invalidate+issue pairs per account.
		user, err := r.Users.GetByEmailForUpdate(email)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return ErrAccountNotFoundOrInactive
			}
			return err
		}
		if !user.IsActive {
			return ErrAccountNotFoundOrInactive
		}

		if err := r.Codes.InvalidateOutstanding(user.ID, entity.CodeKindLogin, now); err != nil {
			return err
		}

		var cErr error
		code, cErr = entity.NewOneTimeCode(user.ID, entity.CodeKindLogin, now)
		if cErr != nil {
			return cErr
		}
		if err := r.Codes.Create(code); err != nil {
			return fmt.Errorf("failed to create login code: %w", err)
		}
		return nil
	})
	if err != nil {
		if clearErr := s.pendingRepo.Clear(ctx, repository.PendingFlowLogin, sessionID); clearErr != nil {
			log.Printf("[LoginService] failed to clear pending marker after rollback: %v", clearErr)
		}
		return "", err
	}

	if err := s.emailSender.SendOneTimeCode(ctx, email, entity.CodeKindLogin, code.Code); err != nil {
		log.Printf("[LoginService] login code saved but email to %s failed: %v", email, err)
		return sessionID, &DeliveryError{Email: email, Err: err}
	}

	return sessionID, nil
}

// VerifyCode consumes the login code and establishes a session. Returns the
// authenticated user and a signed access token.
func (s *LoginService) VerifyCode(ctx context.Context, sessionID, code string) (*entity.User, string, error) {
	if sessionID == "" {
		return nil, "", ErrMissingSession
	}

	email, err := s.pendingRepo.Get(ctx, repository.PendingFlowLogin, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", ErrMissingSession
		}
		return nil, "", fmt.Errorf("failed to read pending verification: %w", err)
	}

	var user *entity.User
	err = s.txManager.Do(ctx, func(r *repository.Repositories) error {
		now := time.Now()

		otc, err := r.Codes.FindValid(email, code, entity.CodeKindLogin, now)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return ErrInvalidOrExpiredCode
			}
			return err
		}

		if err := r.Codes.MarkUsed(otc.ID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return ErrInvalidOrExpiredCode
			}
			return err
		}

		user, err = r.Users.GetByID(otc.UserID)
		if err != nil {
			return fmt.Errorf("failed to load user for session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to establish session: %w", err)
	}

	if err := s.pendingRepo.Clear(ctx, repository.PendingFlowLogin, sessionID); err != nil {
		log.Printf("[LoginService] failed to clear pending marker for %s: %v", email, err)
	}

	log.Printf("[LoginService] user ID=%d (%s) logged in", user.ID, user.Email)
	return user, token, nil
}
