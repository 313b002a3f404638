package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is the in-app feed entry surfaced to hosts and travelers:
// moderation outcomes, new bookings, cancellations.
type Notification struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"userID" gorm:"not null;index"`
	Type      string         `json:"type" gorm:"type:varchar(32);index"`
	Title     string         `json:"title"`
	Body      string         `json:"body" gorm:"type:text"`
	Data      datatypes.JSON `json:"data"`
	IsRead    bool           `json:"isRead" gorm:"default:false;index"`
	CreatedAt time.Time      `json:"createdAt"`
}
