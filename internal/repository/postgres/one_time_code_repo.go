package postgres

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Keavors/MyFanBoard/internal/domain/entity"
	apperrors "github.com/Keavors/MyFanBoard/internal/pkg/errors"
)

// OneTimeCodeRepo implements repository.OneTimeCodeRepository on PostgreSQL.
type OneTimeCodeRepo struct {
	db *gorm.DB
}

func NewOneTimeCodeRepo(db *gorm.DB) *OneTimeCodeRepo {
	return &OneTimeCodeRepo{db: db}
}

func (r *OneTimeCodeRepo) Create(code *entity.OneTimeCode) error {
	return r.db.Create(code).Error
}

// InvalidateOutstanding marks every still-valid code of the given kind as used.
// Expired and already-used codes are left alone, they stay in the audit trail
// exactly as they were.
func (r *OneTimeCodeRepo) InvalidateOutstanding(userID uint, kind string, now time.Time) error {
	err := r.db.Model(&entity.OneTimeCode{}).
		Where("user_id = ? AND kind = ? AND used = ? AND expires_at > ?", userID, kind, false, now).
		Update("used", true).Error
	if err != nil {
		return fmt.Errorf("failed to invalidate outstanding codes: %w", err)
	}
	return nil
}

// FindValid looks up the newest matching unused, unexpired code of the given
// kind by user email and exact code string.
func (r *OneTimeCodeRepo) FindValid(email, code, kind string, now time.Time) (*entity.OneTimeCode, error) {
	var otc entity.OneTimeCode
	err := r.db.
		Joins("JOIN users ON users.id = one_time_codes.user_id").
		Where("users.email = ? AND one_time_codes.code = ? AND one_time_codes.kind = ?", email, code, kind).
		Where("one_time_codes.used = ? AND one_time_codes.expires_at > ?", false, now).
		Order("one_time_codes.created_at DESC").
		First(&otc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find valid code: %w", err)
	}
	return &otc, nil
}

// MarkUsed consumes the code. The WHERE used=false condition makes the flip a
// compare-and-swap: of two concurrent verifications of the same code exactly
// one sees RowsAffected==1.
func (r *OneTimeCodeRepo) MarkUsed(id uint) error {
	res := r.db.Model(&entity.OneTimeCode{}).
		Where("id = ? AND used = ?", id, false).
		Update("used", true)
	if res.Error != nil {
		return fmt.Errorf("failed to mark code used: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
