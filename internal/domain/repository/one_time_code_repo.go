package repository

import (
	"time"

	"github.com/Keavors/MyFanBoard/internal/domain/entity"
)

// OneTimeCodeRepository persists one-time codes.
//
// Create is a pure insert: it never touches previously issued codes.
// Superseding old codes is the caller's job via InvalidateOutstanding, so the
// invalidate+issue pair can run inside one transaction.
type OneTimeCodeRepository interface {
	Create(code *entity.OneTimeCode) error

	// InvalidateOutstanding marks every still-valid code of the given kind for
	// the user as used without consuming it. Codes of other kinds and other
	// users are untouched.
	InvalidateOutstanding(userID uint, kind string, now time.Time) error

	// FindValid returns the most recently created unused, unexpired code that
	// matches the user email, exact code string and kind. A miss is
	// apperrors.ErrNotFound regardless of whether the code never existed, was
	// expired or was already used.
	FindValid(email, code, kind string, now time.Time) (*entity.OneTimeCode, error)

	// MarkUsed consumes the code. The update is conditional on used=false;
	// if another request consumed the code first, apperrors.ErrNotFound is
	// returned.
	MarkUsed(id uint) error
}
