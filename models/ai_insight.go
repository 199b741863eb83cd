package models

import "time"

// AiInsight is a system-generated observation about a user's recent data.
// IsRead flips once, one way.
type AiInsight struct {
	ID          uint      `json:"id" bson:"id"`
	UserID      uint      `json:"userId" bson:"userId"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Category    string    `json:"category" bson:"category"` // "sleep" | "activity" | "heart" | ...
	Action      string    `json:"action,omitempty" bson:"action,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	IsRead      bool      `json:"isRead" bson:"isRead"`
}
