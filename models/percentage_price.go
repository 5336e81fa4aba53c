package models

import (
	"gorm.io/gorm"
)

// Fallback titles used when no participant-specific rate is configured
const (
	DefaultDriverRate   = "default_driver"
	DefaultSchoolRate   = "default_school"
	DefaultCarOwnerRate = "default_car_owner"
	DefaultTransferRate = "default_transfer"
)

// PercentagePrice configures what fraction of a fare (or transfer) goes to a
// given role. Title is either one of the default_* names or a participant
// email acting as an override for that participant.
type PercentagePrice struct {
	gorm.Model
	Title       string  `gorm:"uniqueIndex;not null" json:"title"`
	Rate        float64 `json:"rate"`
	Description string  `json:"description"`
}
