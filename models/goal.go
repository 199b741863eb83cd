package models

import "time"

// Goal tracks progress toward a target. Current only moves through the
// progress-update operation.
type Goal struct {
	ID        uint      `json:"id" bson:"id"`
	UserID    uint      `json:"userId" bson:"userId"`
	Title     string    `json:"title" bson:"title"`
	Target    float64   `json:"target" bson:"target"`
	Current   float64   `json:"current" bson:"current"`
	Unit      string    `json:"unit" bson:"unit"`
	Category  string    `json:"category" bson:"category"`
	StartDate time.Time `json:"startDate" bson:"startDate"`
	EndDate   time.Time `json:"endDate,omitempty" bson:"endDate,omitempty"`
}
