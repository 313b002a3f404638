package models

import (
	"time"

	"gorm.io/datatypes"
)

// Experience is a bookable listing offered by a host. Category drives the
// pricing formula (see services.CalculateTotal).
type Experience struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UUID   string `json:"uuid" gorm:"type:varchar(36);uniqueIndex"`
	HostID uint   `json:"hostID" gorm:"not null;index"`
	Host   User   `json:"host" gorm:"foreignKey:HostID"`

	Title       string `json:"title" gorm:"not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex;not null"`
	Category    string `json:"category" gorm:"type:varchar(32);index"` // "Local Guide", "Photographer", "Trip Planner", "Combo Guide"
	Description string `json:"description" gorm:"type:text"`

	CityID *uint `json:"cityID" gorm:"index"`
	City   *City `json:"city,omitempty" gorm:"foreignKey:CityID"`

	// Logistics
	Duration  int    `json:"duration"` // in minutes
	GroupSize int    `json:"groupSize"`
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "17:00"

	// BasePrice feeds the category formula; Currency is a display tag only.
	BasePrice float64 `json:"basePrice"`
	Currency  string  `json:"currency" gorm:"type:varchar(3);default:IDR"`

	// Category-specific offerings, e.g. package tiers for photographers or
	// the add-on services a combo guide can include.
	Services datatypes.JSON `json:"services"`

	CancellationPolicy string         `json:"cancellationPolicy"`
	Photos             datatypes.JSON `json:"photos" gorm:"type:jsonb"`

	Status          string `json:"status" gorm:"type:varchar(20);default:draft;index"`
	RejectionReason string `json:"rejectionReason,omitempty" gorm:"type:text"`
	IsActive        bool   `json:"isActive" gorm:"default:true;index"`

	ViewCount int `json:"viewCount" gorm:"default:0"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	PublishedAt *time.Time `json:"publishedAt"`

	Bookings []Booking `json:"bookings,omitempty" gorm:"foreignKey:ExperienceID"`
}
