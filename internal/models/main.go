// Package models defines the core data structures for users and cards.
package models

import (
	"slices"
	"time"
)

// Profile defaults applied at signup when the caller omits a field.
const (
	DefaultName   = "Жак-Ив Кусто"
	DefaultAbout  = "Исследователь"
	DefaultAvatar = "https://pictures.s3.yandex.net/resources/jacques-cousteau_1604399756.png"
)

// User represents an application user.
type User struct {
	// ID is the store-assigned identifier.
	ID string `json:"_id"`
	// Name is the display name.
	Name string `json:"name"`
	// About is a short self description.
	About string `json:"about"`
	// Avatar is the URL of the profile picture.
	Avatar string `json:"avatar"`
	// Email is unique across all users.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the password. It is never serialized.
	PasswordHash string `json:"-"`
}

// Card is a photo card published by a user.
type Card struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	Owner     string    `json:"owner"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

// HasLike reports whether userID is among the card's likes.
func (c *Card) HasLike(userID string) bool {
	return slices.Contains(c.Likes, userID)
}
