package models

import "time"

type User struct {
	ID            uint      `json:"id" bson:"id"`
	Username      string    `json:"username" bson:"username"`
	Password      string    `json:"-" bson:"password"` // bcrypt hash, hidden from JSON responses
	FirstName     string    `json:"firstName" bson:"firstName"`
	LastName      string    `json:"lastName" bson:"lastName"`
	Email         string    `json:"email" bson:"email"`
	ProfileImage  string    `json:"profileImage,omitempty" bson:"profileImage,omitempty"`
	Role          string    `json:"role" bson:"role"` // "user" | "admin"
	OAuthProvider string    `json:"oauthProvider,omitempty" bson:"oauthProvider,omitempty"`
	OAuthID       string    `json:"oauthId,omitempty" bson:"oauthId,omitempty"`
	LastLogin     time.Time `json:"lastLogin,omitempty" bson:"lastLogin,omitempty"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}
