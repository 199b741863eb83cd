package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/manjiriciklum/WellnessSage-sub000/audit"
	"github.com/manjiriciklum/WellnessSage-sub000/crypto"
	"github.com/manjiriciklum/WellnessSage-sub000/models"
)

// Primary is a backend that can report its own reachability.
type Primary interface {
	Storage
	Connected(ctx context.Context) bool
}

// Status is the operational snapshot served by /api/system/db-status.
type Status struct {
	MongoStatus        string    `json:"mongoStatus"` // "connected" | "disconnected" | "not_configured"
	PrimaryConfigured  bool      `json:"primaryConfigured"`
	CurrentStorageType string    `json:"currentStorageType"` // "mongodb" | "memory"
	AuditWriteFailures int64     `json:"auditWriteFailures"`
	Timestamp          time.Time `json:"timestamp"`
}

// Provider is the storage capability handed to controllers. It re-evaluates
// primary connectivity on every call (the connection can drop between
// requests, so a cached verdict would go stale), seals sensitive fields
// exactly once before any backend executes the write, and records the HIPAA
// audit event for health data and consultations no matter which backend
// serves the call.
type Provider struct {
	mem     *MemStore
	primary Primary
	enc     *crypto.Encryptor
	auditor *audit.Logger
}

func NewProvider(mem *MemStore, primary Primary, enc *crypto.Encryptor, auditor *audit.Logger) *Provider {
	return &Provider{mem: mem, primary: primary, enc: enc, auditor: auditor}
}

func (p *Provider) backend(ctx context.Context) Storage {
	if p.primary != nil && p.primary.Connected(ctx) {
		return p.primary
	}
	return p.mem
}

// CurrentStatus reports which backend would serve the next call.
func (p *Provider) CurrentStatus(ctx context.Context) Status {
	st := Status{
		MongoStatus:        "not_configured",
		CurrentStorageType: "memory",
		Timestamp:          time.Now().UTC(),
	}
	if p.auditor != nil {
		st.AuditWriteFailures = p.auditor.WriteFailures()
	}
	if p.primary == nil {
		return st
	}
	st.PrimaryConfigured = true
	if p.primary.Connected(ctx) {
		st.MongoStatus = "connected"
		st.CurrentStorageType = "mongodb"
	} else {
		st.MongoStatus = "disconnected"
	}
	return st
}

func (p *Provider) logEvent(userID uint, action, resourceType string, resourceID uint, details map[string]any) {
	if p.auditor != nil {
		p.auditor.LogEvent(userID, action, resourceType, resourceID, details)
	}
}

// sealField encrypts a plain-variant field. Already sealed fields pass
// through so replayed envelopes are not double-encrypted.
func (p *Provider) sealField(f models.EncryptedField) (models.EncryptedField, error) {
	if f.Sealed() || f.Plain == "" {
		return f, nil
	}
	sealed, err := p.enc.Encrypt(f.Plain)
	if err != nil {
		return models.EncryptedField{}, fmt.Errorf("failed to seal sensitive field: %w", err)
	}
	return sealed, nil
}

// --- users ---

func (p *Provider) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return p.backend(ctx).GetUser(ctx, id)
}

func (p *Provider) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return p.backend(ctx).GetUserByUsername(ctx, username)
}

func (p *Provider) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	return p.backend(ctx).CreateUser(ctx, user)
}

func (p *Provider) UpdateUser(ctx context.Context, id uint, user *models.User) (*models.User, error) {
	return p.backend(ctx).UpdateUser(ctx, id, user)
}

// --- health data (HIPAA-sensitive: sealed centrally, audited directly) ---

func (p *Provider) GetHealthDataByUserID(ctx context.Context, userID uint) ([]models.HealthDataRecord, error) {
	recs, err := p.backend(ctx).GetHealthDataByUserID(ctx, userID)
	if err == nil {
		p.logEvent(userID, audit.ActionView, ResourceHealthData, 0, map[string]any{"count": len(recs)})
	}
	return recs, err
}

func (p *Provider) GetHealthData(ctx context.Context, id uint) (*models.HealthDataRecord, error) {
	rec, err := p.backend(ctx).GetHealthData(ctx, id)
	if err == nil {
		p.logEvent(rec.UserID, audit.ActionView, ResourceHealthData, rec.ID, nil)
	}
	return rec, err
}

func (p *Provider) GetLatestHealthData(ctx context.Context, userID uint) (*models.HealthDataRecord, error) {
	rec, err := p.backend(ctx).GetLatestHealthData(ctx, userID)
	if err == nil {
		p.logEvent(userID, audit.ActionView, ResourceHealthData, rec.ID, nil)
	}
	return rec, err
}

func (p *Provider) CreateHealthData(ctx context.Context, rec *models.HealthDataRecord) (*models.HealthDataRecord, error) {
	if err := validateHealthData(rec); err != nil {
		return nil, err
	}
	sealed, err := p.sealField(rec.HealthMetrics)
	if err != nil {
		return nil, err
	}
	toStore := *rec
	toStore.HealthMetrics = sealed
	created, err := p.backend(ctx).CreateHealthData(ctx, &toStore)
	if err == nil {
		p.logEvent(created.UserID, audit.ActionCreate, ResourceHealthData, created.ID, nil)
	}
	return created, err
}

func (p *Provider) DeleteHealthData(ctx context.Context, id uint) error {
	backend := p.backend(ctx)
	rec, err := backend.GetHealthData(ctx, id)
	if err != nil {
		return err
	}
	if err := backend.DeleteHealthData(ctx, id); err != nil {
		return err
	}
	p.logEvent(rec.UserID, audit.ActionDelete, ResourceHealthData, id, nil)
	return nil
}

// --- wearable devices ---

func (p *Provider) GetWearableDevicesByUserID(ctx context.Context, userID uint) ([]models.WearableDevice, error) {
	return p.backend(ctx).GetWearableDevicesByUserID(ctx, userID)
}

func (p *Provider) GetWearableDevice(ctx context.Context, id uint) (*models.WearableDevice, error) {
	return p.backend(ctx).GetWearableDevice(ctx, id)
}

func (p *Provider) CreateWearableDevice(ctx context.Context, device *models.WearableDevice) (*models.WearableDevice, error) {
	return p.backend(ctx).CreateWearableDevice(ctx, device)
}

func (p *Provider) ConnectWearableDevice(ctx context.Context, id uint) (*models.WearableDevice, error) {
	return p.backend(ctx).ConnectWearableDevice(ctx, id)
}

func (p *Provider) DisconnectWearableDevice(ctx context.Context, id uint) (*models.WearableDevice, error) {
	return p.backend(ctx).DisconnectWearableDevice(ctx, id)
}

func (p *Provider) UpdateDeviceLastSynced(ctx context.Context, id uint) (*models.WearableDevice, error) {
	return p.backend(ctx).UpdateDeviceLastSynced(ctx, id)
}

// --- reminders ---

func (p *Provider) GetRemindersByUserID(ctx context.Context, userID uint) ([]models.Reminder, error) {
	return p.backend(ctx).GetRemindersByUserID(ctx, userID)
}

func (p *Provider) CreateReminder(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	return p.backend(ctx).CreateReminder(ctx, reminder)
}

func (p *Provider) CompleteReminder(ctx context.Context, id uint) (*models.Reminder, error) {
	return p.backend(ctx).CompleteReminder(ctx, id)
}

// --- goals ---

func (p *Provider) GetGoalsByUserID(ctx context.Context, userID uint) ([]models.Goal, error) {
	return p.backend(ctx).GetGoalsByUserID(ctx, userID)
}

func (p *Provider) GetGoal(ctx context.Context, id uint) (*models.Goal, error) {
	return p.backend(ctx).GetGoal(ctx, id)
}

func (p *Provider) CreateGoal(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	return p.backend(ctx).CreateGoal(ctx, goal)
}

func (p *Provider) UpdateGoalProgress(ctx context.Context, id uint, current float64) (*models.Goal, error) {
	return p.backend(ctx).UpdateGoalProgress(ctx, id, current)
}

// --- ai insights ---

func (p *Provider) GetAiInsightsByUserID(ctx context.Context, userID uint) ([]models.AiInsight, error) {
	return p.backend(ctx).GetAiInsightsByUserID(ctx, userID)
}

func (p *Provider) CreateAiInsight(ctx context.Context, insight *models.AiInsight) (*models.AiInsight, error) {
	return p.backend(ctx).CreateAiInsight(ctx, insight)
}

func (p *Provider) MarkInsightRead(ctx context.Context, id uint) (*models.AiInsight, error) {
	return p.backend(ctx).MarkInsightRead(ctx, id)
}

// --- consultations (HIPAA-sensitive: sealed centrally, audited directly) ---

func (p *Provider) GetHealthConsultationsByUserID(ctx context.Context, userID uint) ([]models.HealthConsultation, error) {
	out, err := p.backend(ctx).GetHealthConsultationsByUserID(ctx, userID)
	if err == nil {
		p.logEvent(userID, audit.ActionView, ResourceConsultation, 0, map[string]any{"count": len(out)})
	}
	return out, err
}

func (p *Provider) CreateHealthConsultation(ctx context.Context, consultation *models.HealthConsultation) (*models.HealthConsultation, error) {
	if err := validateConsultation(consultation); err != nil {
		return nil, err
	}
	toStore := *consultation
	var err error
	if toStore.Symptoms, err = p.sealField(consultation.Symptoms); err != nil {
		return nil, err
	}
	if toStore.Analysis, err = p.sealField(consultation.Analysis); err != nil {
		return nil, err
	}
	if toStore.Recommendations, err = p.sealField(consultation.Recommendations); err != nil {
		return nil, err
	}
	created, err := p.backend(ctx).CreateHealthConsultation(ctx, &toStore)
	if err == nil {
		p.logEvent(created.UserID, audit.ActionCreate, ResourceConsultation, created.ID, map[string]any{"severity": created.Severity})
	}
	return created, err
}

// --- doctors ---

func (p *Provider) GetDoctors(ctx context.Context) ([]models.Doctor, error) {
	return p.backend(ctx).GetDoctors(ctx)
}

func (p *Provider) GetDoctor(ctx context.Context, id uint) (*models.Doctor, error) {
	return p.backend(ctx).GetDoctor(ctx, id)
}

func (p *Provider) FindDoctors(ctx context.Context, specialty, location string) ([]models.Doctor, error) {
	return p.backend(ctx).FindDoctors(ctx, specialty, location)
}

// --- push endpoints ---

func (p *Provider) GetPushEndpointsByUserID(ctx context.Context, userID uint) ([]models.PushEndpoint, error) {
	return p.backend(ctx).GetPushEndpointsByUserID(ctx, userID)
}

func (p *Provider) UpsertPushEndpoint(ctx context.Context, endpoint *models.PushEndpoint) (*models.PushEndpoint, error) {
	return p.backend(ctx).UpsertPushEndpoint(ctx, endpoint)
}
