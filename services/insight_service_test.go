package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manjiriciklum/WellnessSage-sub000/models"
	"github.com/manjiriciklum/WellnessSage-sub000/storage"
)

func seedWeek(t *testing.T, store *storage.MemStore, userID uint, steps int, sleep float64, hr int) {
	t.Helper()
	for i := 6; i >= 0; i-- {
		_, err := store.CreateHealthData(context.Background(), &models.HealthDataRecord{
			UserID:     userID,
			Date:       time.Now().AddDate(0, 0, -i),
			Steps:      steps,
			SleepHours: sleep,
			HeartRate:  hr,
		})
		require.NoError(t, err)
	}
}

func TestGenerateInsightsForSedentaryShortSleeper(t *testing.T) {
	store := newTestStore(t)
	svc := NewInsightService(store, nil, nil)
	ctx := context.Background()

	seedWeek(t, store, 42, 4000, 5.5, 82)

	created, err := svc.GenerateForUser(ctx, 42)
	require.NoError(t, err)
	require.Len(t, created, 3)

	categories := make(map[string]bool)
	for _, in := range created {
		categories[in.Category] = true
		assert.NotZero(t, in.ID)
		assert.False(t, in.IsRead)
	}
	assert.True(t, categories["sleep"])
	assert.True(t, categories["activity"])
	assert.True(t, categories["heart"])

	stored, err := store.GetAiInsightsByUserID(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestGenerateInsightsHealthyWeekProducesNone(t *testing.T) {
	store := newTestStore(t)
	svc := NewInsightService(store, nil, nil)

	seedWeek(t, store, 42, 12000, 8.0, 62)

	created, err := svc.GenerateForUser(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestGenerateInsightsNoData(t *testing.T) {
	store := newTestStore(t)
	svc := NewInsightService(store, nil, nil)

	created, err := svc.GenerateForUser(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, created)
}
