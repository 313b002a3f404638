package models

import "time"

// FeaturedHost pins a host onto the landing page. Pure presentation entity,
// managed entirely from the admin dashboard.
type FeaturedHost struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	HostID       uint      `json:"hostID" gorm:"not null;index"`
	Host         User      `json:"host" gorm:"foreignKey:HostID"`
	Title        string    `json:"title"`
	Badge        string    `json:"badge"`
	DisplayOrder int       `json:"displayOrder" gorm:"default:0;index"`
	IsActive     bool      `json:"isActive" gorm:"default:true"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
