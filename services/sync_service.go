package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/manjiriciklum/WellnessSage-sub000/models"
	"github.com/manjiriciklum/WellnessSage-sub000/storage"
)

// SyncService stands in for real device telemetry ingestion: it synthesizes
// a plausible health record from a connected wearable, populating only the
// fields the device's capability map allows, and stamps lastSynced.
type SyncService struct {
	store storage.Storage
	mu    sync.Mutex
	rng   *rand.Rand
}

func NewSyncService(store storage.Storage) *SyncService {
	return &SyncService{
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SyncDevice reads telemetry from the device and persists it as a new
// health record. Disconnected devices cannot sync.
func (s *SyncService) SyncDevice(ctx context.Context, deviceID uint) (*models.HealthDataRecord, error) {
	device, err := s.store.GetWearableDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if !device.IsConnected {
		return nil, fmt.Errorf("%w: device %q is not connected", storage.ErrValidation, device.DeviceName)
	}

	rec := s.synthesize(device)
	created, err := s.store.CreateHealthData(ctx, rec)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.UpdateDeviceLastSynced(ctx, deviceID); err != nil {
		return nil, err
	}
	return created, nil
}

// synthesize builds one record gated on the device's capabilities: a field
// is populated only when the device can actually measure it.
func (s *SyncService) synthesize(device *models.WearableDevice) *models.HealthDataRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := &models.HealthDataRecord{
		UserID: device.UserID,
		Date:   time.Now(),
	}
	metrics := map[string]any{
		"source":   device.DeviceName,
		"deviceId": device.ID,
	}

	if device.Capabilities["steps"] {
		rec.Steps = 2000 + s.rng.Intn(15001) // 2000-17000
		rec.ActiveMinutes = rec.Steps / 150
		rec.Calories = 1500 + rec.Steps/10
	}
	if device.Capabilities["heartRate"] {
		rec.HeartRate = 60 + s.rng.Intn(41) // 60-100 bpm
		metrics["heartRateMin"] = rec.HeartRate - 5 - s.rng.Intn(6)
		metrics["heartRateMax"] = rec.HeartRate + 40 + s.rng.Intn(21)
	}
	if device.Capabilities["sleep"] {
		rec.SleepHours = round1(5 + s.rng.Float64()*4) // 5-9h
		metrics["deepSleepHours"] = round1(rec.SleepHours * (0.15 + s.rng.Float64()*0.10))
		metrics["remSleepHours"] = round1(rec.SleepHours * (0.20 + s.rng.Float64()*0.05))
		rec.SleepQuality = 50 + s.rng.Intn(46)
	}
	if device.Capabilities["bloodOxygen"] {
		metrics["bloodOxygen"] = 96 + s.rng.Intn(4) // 96-99%
	}
	if device.Capabilities["bodyTemperature"] {
		metrics["bodyTemperature"] = round1(35.7 + s.rng.Float64()*2.4) // 35.7-38.1
	}

	raw, err := json.Marshal(metrics)
	if err == nil {
		rec.HealthMetrics = models.PlainField(string(raw))
	}
	return rec
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
