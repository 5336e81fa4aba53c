package models

import (
	"time"
)

// Free ride token kinds
const (
	FreeRideKindSocialShare = "social_share"
	FreeRideKindRide        = "ride"
)

// FreeRideToken is a single-use credential entitling its holder to one
// zero-cost ride fare. Active starts true and flips to false exactly once at
// redemption; it is never set back and tokens are never deleted.
type FreeRideToken struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Token       string    `gorm:"uniqueIndex;not null" json:"token"`
	Kind        string    `json:"kind"`
	Active      bool      `json:"active" gorm:"default:true"`
	UserID      uint      `json:"user_id" gorm:"index"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
