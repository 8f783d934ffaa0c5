package models

import (
	"time"
)

// User is a household member. Users are seeded once and only used for
// authentication and for labeling contributions in shared analytics.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Username    string    `json:"username" gorm:"unique;not null"`
	Password    string    `json:"-" gorm:"not null"` // bcrypt hash, never serialized
	DisplayName string    `json:"display_name" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

// PublicUser is the identity shape exposed over the API and embedded in tokens.
type PublicUser struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// Public strips the credential fields.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, DisplayName: u.DisplayName}
}
