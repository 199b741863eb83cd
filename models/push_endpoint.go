package models

import "time"

// PushEndpoint is a registered phone for SNS notifications (distinct from
// WearableDevice, which is a health tracker).
type PushEndpoint struct {
	ID          uint      `json:"id" bson:"id"`
	UserID      uint      `json:"userId" bson:"userId"`
	Platform    string    `json:"platform" bson:"platform"` // "android" | "ios"
	TokenHash   string    `json:"-" bson:"tokenHash"`
	EndpointARN string    `json:"-" bson:"endpointArn"`
	Enabled     bool      `json:"enabled" bson:"enabled"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}
