package model

import (
	"time"
)

// User is the persisted account record. Email uniqueness is enforced by the
// store; the auth core only ever creates users and reads them back.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TokenPair is the result of a successful auth event. Tokens are never
// persisted; only the refresh token's fingerprint lives in the fast store.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
	UserID       uint
}
