package models

import "time"

// Session is a persisted dashboard login. The backend bearer token is stored
// sealed; see session.Store.
type Session struct {
	Base
	UserID      string    `gorm:"not null;index" json:"user_id"`
	Profile     string    `gorm:"type:text;not null" json:"-"`
	SealedToken []byte    `gorm:"not null" json:"-"`
	ExpiresAt   time.Time `gorm:"not null;index" json:"expires_at"`
	LastSeenAt  time.Time `json:"last_seen_at"`
}
