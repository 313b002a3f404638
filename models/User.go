package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Roles ordered roughly by privilege. Travelers book, hosts publish,
// the admin roles moderate.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleModerator  = "moderator"
	RoleFinance    = "finance"
	RoleMarketing  = "marketing"
	RoleHost       = "host"
	RoleTraveler   = "traveler"
)

type User struct {
	gorm.Model
	FirstName           string         `json:"firstName"`
	LastName            string         `json:"lastName"`
	Email               string         `json:"email" gorm:"uniqueIndex"`
	Password            string         `json:"-"`
	SocialLogin         bool           `json:"socialLogin"`
	SocialProvider      string         `json:"socialProvider"`
	AvatarURL           string         `json:"avatarURL"`
	Bio                 string         `json:"bio"`
	CityID              *uint          `json:"cityID"`
	City                *City          `json:"city,omitempty" gorm:"foreignKey:CityID"`
	Languages           datatypes.JSON `json:"languages"`
	SavedStories        datatypes.JSON `json:"savedStories"`
	AllowsNotifications *bool          `json:"allowsNotifications"`
	// IsTrusted lets a host publish stories without a review pass.
	IsTrusted bool   `json:"isTrusted" gorm:"default:false"`
	Role      string `json:"role" gorm:"type:varchar(20);default:traveler;index"`
}

// IsModerationRole reports whether the role may run moderation actions.
func IsModerationRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

// Custom JSON marshaling so datatypes.JSON columns render as arrays
func (u *User) MarshalJSON() ([]byte, error) {
	type Alias User
	aux := &struct {
		Languages    []string `json:"languages,omitempty"`
		SavedStories []int    `json:"savedStories,omitempty"`
		*Alias
	}{
		Languages:    []string{},
		SavedStories: []int{},
		Alias:        (*Alias)(u),
	}

	if u.Languages != nil {
		var languages []string
		if err := json.Unmarshal(u.Languages, &languages); err == nil {
			aux.Languages = languages
		}
	}

	if u.SavedStories != nil {
		var saved []int
		if err := json.Unmarshal(u.SavedStories, &saved); err == nil {
			aux.SavedStories = saved
		}
	}

	return json.Marshal(aux)
}
