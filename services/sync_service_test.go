package services

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manjiriciklum/WellnessSage-sub000/crypto"
	"github.com/manjiriciklum/WellnessSage-sub000/models"
	"github.com/manjiriciklum/WellnessSage-sub000/storage"
)

func newTestStore(t *testing.T) *storage.MemStore {
	t.Helper()
	enc, err := crypto.New(bytes.Repeat([]byte{0x2a}, 32))
	require.NoError(t, err)
	return storage.NewMemStore(enc)
}

func createDevice(t *testing.T, store *storage.MemStore, caps map[string]bool, connected bool) *models.WearableDevice {
	t.Helper()
	device, err := store.CreateWearableDevice(context.Background(), &models.WearableDevice{
		UserID:       42,
		DeviceName:   "Test Tracker",
		DeviceType:   "fitness_band",
		Capabilities: caps,
		IsConnected:  connected,
	})
	require.NoError(t, err)
	return device
}

func TestSyncPopulatesOnlyCapableFields(t *testing.T) {
	store := newTestStore(t)
	svc := NewSyncService(store)
	ctx := context.Background()

	device := createDevice(t, store, map[string]bool{"steps": true, "heartRate": true}, true)

	rec, err := svc.SyncDevice(ctx, device.ID)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, rec.Steps, 2000)
	assert.LessOrEqual(t, rec.Steps, 17000)
	assert.GreaterOrEqual(t, rec.HeartRate, 60)
	assert.LessOrEqual(t, rec.HeartRate, 100)

	// no sleep capability, so the sleep fields stay zero
	assert.Zero(t, rec.SleepHours)
	assert.Zero(t, rec.SleepQuality)

	var metrics map[string]any
	require.NoError(t, json.Unmarshal([]byte(rec.HealthMetrics.Plain), &metrics))
	assert.Contains(t, metrics, "heartRateMin")
	assert.Contains(t, metrics, "heartRateMax")
	assert.NotContains(t, metrics, "bloodOxygen")
	assert.NotContains(t, metrics, "deepSleepHours")
	assert.Equal(t, "Test Tracker", metrics["source"])
}

func TestSyncSleepOnlyDevice(t *testing.T) {
	store := newTestStore(t)
	svc := NewSyncService(store)
	ctx := context.Background()

	device := createDevice(t, store, map[string]bool{"sleep": true, "bloodOxygen": true}, true)

	rec, err := svc.SyncDevice(ctx, device.ID)
	require.NoError(t, err)

	assert.Zero(t, rec.Steps)
	assert.Zero(t, rec.HeartRate)
	assert.GreaterOrEqual(t, rec.SleepHours, 5.0)
	assert.LessOrEqual(t, rec.SleepHours, 9.0)

	var metrics map[string]any
	require.NoError(t, json.Unmarshal([]byte(rec.HealthMetrics.Plain), &metrics))
	spo2, ok := metrics["bloodOxygen"].(float64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, spo2, 96.0)
	assert.LessOrEqual(t, spo2, 99.0)
}

func TestSyncStampsLastSynced(t *testing.T) {
	store := newTestStore(t)
	svc := NewSyncService(store)
	ctx := context.Background()

	device := createDevice(t, store, map[string]bool{"steps": true}, true)
	require.True(t, device.LastSynced.IsZero())

	_, err := svc.SyncDevice(ctx, device.ID)
	require.NoError(t, err)

	after, err := store.GetWearableDevice(ctx, device.ID)
	require.NoError(t, err)
	assert.False(t, after.LastSynced.IsZero())
}

func TestSyncDisconnectedDeviceFails(t *testing.T) {
	store := newTestStore(t)
	svc := NewSyncService(store)
	ctx := context.Background()

	device := createDevice(t, store, map[string]bool{"steps": true}, false)

	before, err := store.GetHealthDataByUserID(ctx, 42)
	require.NoError(t, err)

	_, err = svc.SyncDevice(ctx, device.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrValidation)

	after, err := store.GetHealthDataByUserID(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, after, len(before), "failed sync must not write a record")
}

func TestSyncUnknownDevice(t *testing.T) {
	store := newTestStore(t)
	svc := NewSyncService(store)

	_, err := svc.SyncDevice(context.Background(), 9999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
