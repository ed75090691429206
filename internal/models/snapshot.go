package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionSnapshot is the only persisted projection of SessionState: the user
// identity and the authenticated flag survive a restart, nothing else does.
// Tokens live in the token store, not here.
type SessionSnapshot struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key             string    `gorm:"uniqueIndex;not null"`
	IsAuthenticated bool      `gorm:"not null"`
	UserID          string
	Email           string
	DisplayName     string
	IsFirstLogin    bool
	TwoFactorAuth   bool
	OtpMethod       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (s *SessionSnapshot) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// ToUser rebuilds the in-memory user from the snapshot. Tokens are left
// empty; the caller mirrors them in from the token store.
func (s *SessionSnapshot) ToUser() *User {
	if s.UserID == "" {
		return nil
	}
	return &User{
		ID:            s.UserID,
		Email:         s.Email,
		DisplayName:   s.DisplayName,
		IsFirstLogin:  s.IsFirstLogin,
		TwoFactorAuth: s.TwoFactorAuth,
		OtpMethod:     OtpMethod(s.OtpMethod),
	}
}
