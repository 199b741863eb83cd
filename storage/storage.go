package storage

import (
	"context"
	"errors"

	"github.com/manjiriciklum/WellnessSage-sub000/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrValidation is returned for malformed create/update input. Wrapped
	// errors carry the detail for the 400 response.
	ErrValidation = errors.New("validation failed")
)

// Resource types used in audit entries. Only health data and consultations
// are HIPAA-sensitive; the rest are audited by the access middleware alone.
const (
	ResourceHealthData   = "healthData"
	ResourceConsultation = "healthConsultation"
)

// Storage is the capability every route handler persists through. Both the
// Mongo-backed primary and the in-memory fallback implement it with
// identical semantics, so callers never learn which backend served them.
type Storage interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id uint, user *models.User) (*models.User, error)

	GetHealthDataByUserID(ctx context.Context, userID uint) ([]models.HealthDataRecord, error)
	GetHealthData(ctx context.Context, id uint) (*models.HealthDataRecord, error)
	GetLatestHealthData(ctx context.Context, userID uint) (*models.HealthDataRecord, error)
	CreateHealthData(ctx context.Context, rec *models.HealthDataRecord) (*models.HealthDataRecord, error)
	DeleteHealthData(ctx context.Context, id uint) error

	GetWearableDevicesByUserID(ctx context.Context, userID uint) ([]models.WearableDevice, error)
	GetWearableDevice(ctx context.Context, id uint) (*models.WearableDevice, error)
	CreateWearableDevice(ctx context.Context, device *models.WearableDevice) (*models.WearableDevice, error)
	ConnectWearableDevice(ctx context.Context, id uint) (*models.WearableDevice, error)
	DisconnectWearableDevice(ctx context.Context, id uint) (*models.WearableDevice, error)
	UpdateDeviceLastSynced(ctx context.Context, id uint) (*models.WearableDevice, error)

	GetRemindersByUserID(ctx context.Context, userID uint) ([]models.Reminder, error)
	CreateReminder(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error)
	CompleteReminder(ctx context.Context, id uint) (*models.Reminder, error)

	GetGoalsByUserID(ctx context.Context, userID uint) ([]models.Goal, error)
	GetGoal(ctx context.Context, id uint) (*models.Goal, error)
	CreateGoal(ctx context.Context, goal *models.Goal) (*models.Goal, error)
	UpdateGoalProgress(ctx context.Context, id uint, current float64) (*models.Goal, error)

	GetAiInsightsByUserID(ctx context.Context, userID uint) ([]models.AiInsight, error)
	CreateAiInsight(ctx context.Context, insight *models.AiInsight) (*models.AiInsight, error)
	MarkInsightRead(ctx context.Context, id uint) (*models.AiInsight, error)

	GetHealthConsultationsByUserID(ctx context.Context, userID uint) ([]models.HealthConsultation, error)
	CreateHealthConsultation(ctx context.Context, consultation *models.HealthConsultation) (*models.HealthConsultation, error)

	GetDoctors(ctx context.Context) ([]models.Doctor, error)
	GetDoctor(ctx context.Context, id uint) (*models.Doctor, error)
	FindDoctors(ctx context.Context, specialty, location string) ([]models.Doctor, error)

	GetPushEndpointsByUserID(ctx context.Context, userID uint) ([]models.PushEndpoint, error)
	UpsertPushEndpoint(ctx context.Context, endpoint *models.PushEndpoint) (*models.PushEndpoint, error)
}

// mergeUser applies the non-empty profile fields of in on top of existing.
// Both backends update users through this so partial updates behave the same.
func mergeUser(existing models.User, in *models.User) models.User {
	if in.FirstName != "" {
		existing.FirstName = in.FirstName
	}
	if in.LastName != "" {
		existing.LastName = in.LastName
	}
	if in.Email != "" {
		existing.Email = in.Email
	}
	if in.ProfileImage != "" {
		existing.ProfileImage = in.ProfileImage
	}
	if in.Password != "" {
		existing.Password = in.Password
	}
	if !in.LastLogin.IsZero() {
		existing.LastLogin = in.LastLogin
	}
	return existing
}
