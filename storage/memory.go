package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/manjiriciklum/WellnessSage-sub000/crypto"
	"github.com/manjiriciklum/WellnessSage-sub000/models"
)

// MemStore is the always-available fallback backend: one map per entity,
// keyed by an auto-incrementing id that is never reused, even after deletes.
// A single mutex serializes operations; individual calls are atomic but
// there are no cross-operation transactions.
type MemStore struct {
	mu  sync.Mutex
	enc *crypto.Encryptor

	users         map[uint]models.User
	healthData    map[uint]models.HealthDataRecord
	devices       map[uint]models.WearableDevice
	reminders     map[uint]models.Reminder
	goals         map[uint]models.Goal
	insights      map[uint]models.AiInsight
	consultations map[uint]models.HealthConsultation
	doctors       map[uint]models.Doctor
	pushEndpoints map[uint]models.PushEndpoint

	counters map[string]uint
}

// NewMemStore builds an empty store and seeds it with demo data.
func NewMemStore(enc *crypto.Encryptor) *MemStore {
	s := &MemStore{
		enc:           enc,
		users:         make(map[uint]models.User),
		healthData:    make(map[uint]models.HealthDataRecord),
		devices:       make(map[uint]models.WearableDevice),
		reminders:     make(map[uint]models.Reminder),
		goals:         make(map[uint]models.Goal),
		insights:      make(map[uint]models.AiInsight),
		consultations: make(map[uint]models.HealthConsultation),
		doctors:       make(map[uint]models.Doctor),
		pushEndpoints: make(map[uint]models.PushEndpoint),
		counters:      make(map[string]uint),
	}
	s.seed()
	return s
}

// nextID allocates the next id for an entity type. Callers must hold mu.
func (s *MemStore) nextID(entity string) uint {
	s.counters[entity]++
	return s.counters[entity]
}

// --- users ---

func (s *MemStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := validateUser(user); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return nil, fmt.Errorf("%w: username %q is taken", ErrValidation, user.Username)
		}
	}
	created := *user
	created.ID = s.nextID("users")
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now()
	}
	if created.Role == "" {
		created.Role = "user"
	}
	s.users[created.ID] = created
	return &created, nil
}

// UpdateUser replaces mutable profile fields. Username, password hash and id
// stay as stored unless explicitly set on the incoming value.
func (s *MemStore) UpdateUser(ctx context.Context, id uint, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	updated := mergeUser(existing, user)
	s.users[id] = updated
	return &updated, nil
}

// --- health data ---

func (s *MemStore) GetHealthDataByUserID(ctx context.Context, userID uint) ([]models.HealthDataRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.HealthDataRecord, 0)
	for _, rec := range s.healthData {
		if rec.UserID == userID {
			out = append(out, decryptHealthRecord(s.enc, rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (s *MemStore) GetHealthData(ctx context.Context, id uint) (*models.HealthDataRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.healthData[id]
	if !ok {
		return nil, ErrNotFound
	}
	opened := decryptHealthRecord(s.enc, rec)
	return &opened, nil
}

func (s *MemStore) GetLatestHealthData(ctx context.Context, userID uint) (*models.HealthDataRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *models.HealthDataRecord
	for id := range s.healthData {
		rec := s.healthData[id]
		if rec.UserID != userID {
			continue
		}
		if latest == nil || rec.Date.After(latest.Date) {
			r := rec
			latest = &r
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	opened := decryptHealthRecord(s.enc, *latest)
	return &opened, nil
}

func (s *MemStore) CreateHealthData(ctx context.Context, rec *models.HealthDataRecord) (*models.HealthDataRecord, error) {
	if err := validateHealthData(rec); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	created := *rec
	created.ID = s.nextID("healthData")
	if created.Date.IsZero() {
		created.Date = time.Now()
	}
	created.WasDecrypted = false
	s.healthData[created.ID] = created
	return &created, nil
}

func (s *MemStore) DeleteHealthData(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.healthData[id]; !ok {
		return ErrNotFound
	}
	delete(s.healthData, id)
	return nil
}

// --- wearable devices ---

// cloneDevice copies the struct together with its maps, so callers mutating
// a returned device cannot write through to stored state.
func cloneDevice(d models.WearableDevice) models.WearableDevice {
	if d.Capabilities != nil {
		caps := make(map[string]bool, len(d.Capabilities))
		for k, v := range d.Capabilities {
			caps[k] = v
		}
		d.Capabilities = caps
	}
	if d.ConnectionSettings != nil {
		settings := make(map[string]string, len(d.ConnectionSettings))
		for k, v := range d.ConnectionSettings {
			settings[k] = v
		}
		d.ConnectionSettings = settings
	}
	return d
}

func (s *MemStore) GetWearableDevicesByUserID(ctx context.Context, userID uint) ([]models.WearableDevice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.WearableDevice, 0)
	for _, d := range s.devices {
		if d.UserID == userID {
			out = append(out, cloneDevice(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) GetWearableDevice(ctx context.Context, id uint) (*models.WearableDevice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.devices[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneDevice(d)
	return &out, nil
}

func (s *MemStore) CreateWearableDevice(ctx context.Context, device *models.WearableDevice) (*models.WearableDevice, error) {
	if err := validateDevice(device); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	created := cloneDevice(*device)
	created.ID = s.nextID("devices")
	if created.Capabilities == nil {
		created.Capabilities = make(map[string]bool)
	}
	s.devices[created.ID] = created
	out := cloneDevice(created)
	return &out, nil
}

func (s *MemStore) ConnectWearableDevice(ctx context.Context, id uint) (*models.WearableDevice, error) {
	return s.setDeviceConnected(id, true)
}

func (s *MemStore) DisconnectWearableDevice(ctx context.Context, id uint) (*models.WearableDevice, error) {
	return s.setDeviceConnected(id, false)
}

func (s *MemStore) setDeviceConnected(id uint, connected bool) (*models.WearableDevice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.devices[id]
	if !ok {
		return nil, ErrNotFound
	}
	d.IsConnected = connected
	d.LastSynced = time.Now()
	s.devices[id] = d
	out := cloneDevice(d)
	return &out, nil
}

func (s *MemStore) UpdateDeviceLastSynced(ctx context.Context, id uint) (*models.WearableDevice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.devices[id]
	if !ok {
		return nil, ErrNotFound
	}
	d.LastSynced = time.Now()
	s.devices[id] = d
	out := cloneDevice(d)
	return &out, nil
}

// --- reminders ---

func (s *MemStore) GetRemindersByUserID(ctx context.Context, userID uint) ([]models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Reminder, 0)
	for _, r := range s.reminders {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) CreateReminder(ctx context.Context, reminder *models.Reminder) (*models.Reminder, error) {
	if err := validateReminder(reminder); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	created := *reminder
	created.ID = s.nextID("reminders")
	created.IsCompleted = false
	s.reminders[created.ID] = created
	return &created, nil
}

// CompleteReminder is one-way and idempotent: completing an already
// completed reminder leaves it completed.
func (s *MemStore) CompleteReminder(ctx context.Context, id uint) (*models.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reminders[id]
	if !ok {
		return nil, ErrNotFound
	}
	r.IsCompleted = true
	s.reminders[id] = r
	return &r, nil
}

// --- goals ---

func (s *MemStore) GetGoalsByUserID(ctx context.Context, userID uint) ([]models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Goal, 0)
	for _, g := range s.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) GetGoal(ctx context.Context, id uint) (*models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.goals[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &g, nil
}

func (s *MemStore) CreateGoal(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	if err := validateGoal(goal); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	created := *goal
	created.ID = s.nextID("goals")
	if created.StartDate.IsZero() {
		created.StartDate = time.Now()
	}
	s.goals[created.ID] = created
	return &created, nil
}

func (s *MemStore) UpdateGoalProgress(ctx context.Context, id uint, current float64) (*models.Goal, error) {
	if err := validateGoalProgress(current); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.goals[id]
	if !ok {
		return nil, ErrNotFound
	}
	g.Current = current
	s.goals[id] = g
	return &g, nil
}

// --- ai insights ---

func (s *MemStore) GetAiInsightsByUserID(ctx context.Context, userID uint) ([]models.AiInsight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AiInsight, 0)
	for _, in := range s.insights {
		if in.UserID == userID {
			out = append(out, in)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemStore) CreateAiInsight(ctx context.Context, insight *models.AiInsight) (*models.AiInsight, error) {
	if err := validateInsight(insight); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	created := *insight
	created.ID = s.nextID("insights")
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now()
	}
	created.IsRead = false
	s.insights[created.ID] = created
	return &created, nil
}

// MarkInsightRead is one-way and idempotent.
func (s *MemStore) MarkInsightRead(ctx context.Context, id uint) (*models.AiInsight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	in, ok := s.insights[id]
	if !ok {
		return nil, ErrNotFound
	}
	in.IsRead = true
	s.insights[id] = in
	return &in, nil
}

// --- consultations ---

func (s *MemStore) GetHealthConsultationsByUserID(ctx context.Context, userID uint) ([]models.HealthConsultation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.HealthConsultation, 0)
	for _, c := range s.consultations {
		if c.UserID == userID {
			out = append(out, decryptConsultation(s.enc, c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemStore) CreateHealthConsultation(ctx context.Context, consultation *models.HealthConsultation) (*models.HealthConsultation, error) {
	if err := validateConsultation(consultation); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	created := *consultation
	created.ID = s.nextID("consultations")
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now()
	}
	created.WasDecrypted = false
	s.consultations[created.ID] = created
	return &created, nil
}

// --- doctors ---

func (s *MemStore) GetDoctors(ctx context.Context) ([]models.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Doctor, 0, len(s.doctors))
	for _, d := range s.doctors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) GetDoctor(ctx context.Context, id uint) (*models.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.doctors[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (s *MemStore) FindDoctors(ctx context.Context, specialty, location string) ([]models.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Doctor, 0)
	for _, d := range s.doctors {
		if specialty != "" && !strings.Contains(strings.ToLower(d.Specialty), strings.ToLower(specialty)) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(d.Location), strings.ToLower(location)) {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- push endpoints ---

func (s *MemStore) GetPushEndpointsByUserID(ctx context.Context, userID uint) ([]models.PushEndpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PushEndpoint, 0)
	for _, e := range s.pushEndpoints {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) UpsertPushEndpoint(ctx context.Context, endpoint *models.PushEndpoint) (*models.PushEndpoint, error) {
	if err := validatePushEndpoint(endpoint); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.pushEndpoints {
		if existing.UserID == endpoint.UserID && existing.TokenHash == endpoint.TokenHash {
			existing.EndpointARN = endpoint.EndpointARN
			existing.Platform = endpoint.Platform
			existing.Enabled = endpoint.Enabled
			existing.UpdatedAt = time.Now()
			s.pushEndpoints[id] = existing
			return &existing, nil
		}
	}
	created := *endpoint
	created.ID = s.nextID("pushEndpoints")
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	s.pushEndpoints[created.ID] = created
	return &created, nil
}
