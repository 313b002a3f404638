package models

import (
	"time"

	"gorm.io/datatypes"
)

// Story is a host-authored travel article moving through the moderation
// lifecycle in services.Status before it shows up on the public site.
type Story struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	UUID     string `json:"uuid" gorm:"type:varchar(36);uniqueIndex"`
	AuthorID uint   `json:"authorID" gorm:"not null;index"`
	Author   User   `json:"author" gorm:"foreignKey:AuthorID"`

	Title      string `json:"title" gorm:"not null"`
	Slug       string `json:"slug" gorm:"uniqueIndex;not null"`
	Excerpt    string `json:"excerpt"`
	Content    string `json:"content" gorm:"type:text"`
	CoverImage string `json:"coverImage"`

	CityID *uint `json:"cityID" gorm:"index"`
	City   *City `json:"city,omitempty" gorm:"foreignKey:CityID"`

	Tags datatypes.JSON `json:"tags"`

	Status string `json:"status" gorm:"type:varchar(20);default:draft;index"`
	// Meaningful only while Status is rejected; cleared on any transition away.
	RejectionReason string `json:"rejectionReason,omitempty" gorm:"type:text"`
	IsActive        bool   `json:"isActive" gorm:"default:true;index"`

	ViewCount    int `json:"viewCount" gorm:"default:0"`
	LikeCount    int `json:"likeCount" gorm:"default:0"`
	CommentCount int `json:"commentCount" gorm:"default:0"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// StoryLike is a one-row-per-user marker; the composite unique index is the
// backstop against double likes racing past the toggle check.
type StoryLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StoryID   uint      `json:"storyID" gorm:"not null;uniqueIndex:idx_story_user_like"`
	UserID    uint      `json:"userID" gorm:"not null;uniqueIndex:idx_story_user_like"`
	CreatedAt time.Time `json:"createdAt"`
}

type StoryComment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StoryID   uint      `json:"storyID" gorm:"not null;index"`
	UserID    uint      `json:"userID" gorm:"not null;index"`
	User      User      `json:"user" gorm:"foreignKey:UserID"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
