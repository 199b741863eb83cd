package models

type Reminder struct {
	ID          uint   `json:"id" bson:"id"`
	UserID      uint   `json:"userId" bson:"userId"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Time        string `json:"time" bson:"time"`           // "08:00"
	Frequency   string `json:"frequency" bson:"frequency"` // "daily" | "weekly" | "once"
	Category    string `json:"category" bson:"category"`   // "medication" | "hydration" | "exercise" | ...
	Color       string `json:"color,omitempty" bson:"color,omitempty"`
	IsCompleted bool   `json:"isCompleted" bson:"isCompleted"`
}
