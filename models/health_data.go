package models

import "time"

// HealthDataRecord is one day of vitals for a user. HealthMetrics is an opaque
// JSON blob holding device- and goal-specific measurements; it is sealed at
// rest and handed to callers decrypted. WasDecrypted marks records whose
// metrics were opened on the read path; it is never persisted.
type HealthDataRecord struct {
	ID            uint           `json:"id" bson:"id"`
	UserID        uint           `json:"userId" bson:"userId"`
	Date          time.Time      `json:"date" bson:"date"`
	Steps         int            `json:"steps" bson:"steps"`
	ActiveMinutes int            `json:"activeMinutes" bson:"activeMinutes"`
	Calories      int            `json:"calories" bson:"calories"`
	SleepHours    float64        `json:"sleepHours" bson:"sleepHours"`
	SleepQuality  int            `json:"sleepQuality" bson:"sleepQuality"` // 0-100
	HeartRate     int            `json:"heartRate" bson:"heartRate"`       // resting bpm
	HealthScore   int            `json:"healthScore" bson:"healthScore"`   // 0-100
	StressLevel   int            `json:"stressLevel" bson:"stressLevel"`   // 0-100
	HealthMetrics EncryptedField `json:"healthMetrics" bson:"healthMetrics"`
	WasDecrypted  bool           `json:"wasDecrypted,omitempty" bson:"-"`
}
