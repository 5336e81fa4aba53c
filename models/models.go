package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleStudent  = "student"
	RoleDriver   = "driver"
	RoleCarOwner = "car_owner"
	RoleSchool   = "school"
	RolePlatform = "platform"
	RoleAdmin    = "admin"
)

// User represents a rider, driver, car owner or the platform account itself
type User struct {
	gorm.Model
	Email                   string  `gorm:"uniqueIndex;not null" json:"email"`
	Password                string  `json:"-"`
	FirstName               string  `json:"first_name"`
	LastName                string  `json:"last_name"`
	Mobile                  string  `json:"mobile"`
	ProfileImage            string  `json:"profile_image"`
	Role                    string  `json:"role" gorm:"default:'student'"`
	SchoolID                *uint   `json:"school_id"`
	School                  *School `json:"school,omitempty" gorm:"foreignKey:SchoolID"`
	AuthorizationCode       string  `json:"-" gorm:"default:null"`
	AuthorizationCodeStatus bool    `json:"authorization_code_status" gorm:"default:false"`
	NumberOfRides           int     `json:"number_of_rides" gorm:"default:0"`
	ResetPassword           bool    `json:"-" gorm:"default:false"`
	Wallet                  Wallet  `json:"wallet,omitempty" gorm:"foreignKey:UserID"`
}

// School is a participating campus; it holds its own wallet for fare shares
type School struct {
	gorm.Model
	Name          string `gorm:"uniqueIndex;not null" json:"name"`
	Alias         string `json:"alias"`
	Email         string `gorm:"uniqueIndex;not null" json:"email"`
	Password      string `json:"-"`
	AccountNumber string `json:"-"`
	BankName      string `json:"-"`
	Mobile        string `json:"mobile"`
	Wallet        Wallet `json:"wallet,omitempty" gorm:"foreignKey:SchoolID"`
}

// DriverInfo holds the vehicle and payout record for a driver user.
// Trip matching is handled outside this service; only the profile lives here.
type DriverInfo struct {
	gorm.Model
	UserID            uint   `json:"user_id" gorm:"uniqueIndex"`
	CarModel          string `json:"car_model"`
	PlateNumber       string `json:"plate_number"`
	CarSlots          int    `json:"car_slots"`
	AvailableCarSlots int    `json:"available_car_slots"`
	AdminConfirmed    bool   `json:"admin_confirmed" gorm:"default:false"`
	BankName          string `json:"-"`
	AccountNumber     string `json:"-"`
	NumberOfRides     int    `json:"number_of_rides" gorm:"default:0"`
}

// PasswordReset stores a temporary password issued by the forgot-password
// flow. Valid for 24 hours and usable once.
type PasswordReset struct {
	gorm.Model
	UserID       uint   `json:"user_id"`
	TempPassword string `json:"-"`
	Used         bool   `json:"used" gorm:"default:false"`
}

// Notification is a human-readable message emitted alongside money movements
type Notification struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Message     string    `json:"message"`
	RecipientID uint      `json:"recipient_id"`
	SenderID    uint      `json:"sender_id"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
}
