package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Booking captures a traveler's selections against an experience. TotalPrice
// is always recomputed server-side from the experience's category formula.
type Booking struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	UUID         string `json:"uuid" gorm:"type:varchar(36);uniqueIndex"`
	ExperienceID uint   `json:"experienceID" gorm:"not null;index"`
	UserID       uint   `json:"userID" gorm:"not null;index"`
	HostID       uint   `json:"hostID" gorm:"not null;index"`

	BookingDate      time.Time `json:"bookingDate" gorm:"not null"`
	ParticipantCount int       `json:"participantCount" gorm:"not null"`
	// PackageTier applies to Photographer bookings: basic, standard, premium.
	PackageTier string `json:"packageTier" gorm:"type:varchar(16)"`
	// SelectedServices applies to Combo Guide bookings.
	SelectedServices datatypes.JSON `json:"selectedServices"`
	Notes            string         `json:"notes"`

	TotalPrice float64 `json:"totalPrice" gorm:"not null"`
	Currency   string  `json:"currency" gorm:"type:varchar(3);default:IDR"`

	Status string `json:"status" gorm:"type:varchar(16);default:confirmed;index"`
	IsRead bool   `json:"isRead" gorm:"default:false"` // host dashboard flag

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Experience Experience `json:"experience" gorm:"foreignKey:ExperienceID"`
	User       User       `json:"user" gorm:"foreignKey:UserID"`
}
