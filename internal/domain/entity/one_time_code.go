package entity

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Code kinds. A code of one kind never satisfies a lookup for another kind.
const (
	CodeKindRegistration  = "registration"
	CodeKindLogin         = "login"
	CodeKindPasswordReset = "password_reset"
)

// OneTimeCodeTTL is the fixed lifetime of every issued code.
const OneTimeCodeTTL = 10 * time.Minute

// OneTimeCode stores a single-use numeric code for email confirmation flows.
// Codes are never deleted; consumed and superseded codes stay as an audit trail.
type OneTimeCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Code      string    `gorm:"size:6;not null" json:"-"`
	Kind      string    `gorm:"size:20;not null;index" json:"kind"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	Used      bool      `gorm:"not null;default:false" json:"used"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (OneTimeCode) TableName() string {
	return "one_time_codes"
}

// IsValid reports whether the code can still be consumed.
func (c *OneTimeCode) IsValid(now time.Time) bool {
	return !c.Used && c.ExpiresAt.After(now)
}

// NewOneTimeCode builds an unsaved code with a fresh random value and the
// fixed TTL counted from now.
func NewOneTimeCode(userID uint, kind string, now time.Time) (*OneTimeCode, error) {
	code, err := GenerateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate one-time code: %w", err)
	}
	return &OneTimeCode{
		UserID:    userID,
		Code:      code,
		Kind:      kind,
		ExpiresAt: now.Add(OneTimeCodeTTL),
		CreatedAt: now,
	}, nil
}

// GenerateCode produces a uniformly random 6-digit string. Collisions between
// users or over time are allowed, uniqueness is not a property of the code.
func GenerateCode() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
