package models

import "time"

// HealthConsultation is one symptom-analysis exchange. The free-text fields
// are sealed at rest and decrypted on every read path; the record is
// immutable once created.
type HealthConsultation struct {
	ID              uint           `json:"id" bson:"id"`
	UserID          uint           `json:"userId" bson:"userId"`
	Symptoms        EncryptedField `json:"symptoms" bson:"symptoms"`
	Analysis        EncryptedField `json:"analysis" bson:"analysis"`
	Recommendations EncryptedField `json:"recommendations" bson:"recommendations"`
	Severity        string         `json:"severity" bson:"severity"` // "low" | "medium" | "high"
	CreatedAt       time.Time      `json:"createdAt" bson:"createdAt"`
	WasDecrypted    bool           `json:"wasDecrypted,omitempty" bson:"-"`
}
