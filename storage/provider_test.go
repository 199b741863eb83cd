package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manjiriciklum/WellnessSage-sub000/audit"
	"github.com/manjiriciklum/WellnessSage-sub000/models"
)

// flakyPrimary wraps a MemStore as a stand-in primary whose reachability the
// test controls. When reachable it serves from its own data set, so tests
// can tell which backend answered.
type flakyPrimary struct {
	*MemStore
	reachable bool
}

func (f *flakyPrimary) Connected(ctx context.Context) bool { return f.reachable }

func newTestProvider(t *testing.T, reachable bool) (*Provider, *flakyPrimary, *MemStore, *audit.Logger) {
	t.Helper()
	enc := testEncryptor(t)
	mem := NewMemStore(enc)
	primary := &flakyPrimary{MemStore: NewMemStore(enc), reachable: reachable}
	auditor, err := audit.New(t.TempDir())
	require.NoError(t, err)
	return NewProvider(mem, primary, enc, auditor), primary, mem, auditor
}

func auditLines(t *testing.T, auditor *audit.Logger) []map[string]any {
	t.Helper()
	path := filepath.Join(auditor.Dir(), fmt.Sprintf("audit-%s.log", time.Now().UTC().Format("2006-01-02")))
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	defer f.Close()
	var out []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		out = append(out, entry)
	}
	return out
}

func TestFallbackTransparency(t *testing.T) {
	// Every operation must succeed with the same result shape whether the
	// primary is reachable or not.
	for _, reachable := range []bool{true, false} {
		name := "primary_unreachable"
		if reachable {
			name = "primary_reachable"
		}
		t.Run(name, func(t *testing.T) {
			p, _, _, _ := newTestProvider(t, reachable)
			ctx := context.Background()

			user, err := p.GetUserByUsername(ctx, "demo")
			require.NoError(t, err)

			recs, err := p.GetHealthDataByUserID(ctx, user.ID)
			require.NoError(t, err)
			assert.NotEmpty(t, recs)

			created, err := p.CreateHealthData(ctx, &models.HealthDataRecord{
				UserID:        user.ID,
				Steps:         8000,
				HealthMetrics: models.PlainField(`{"stepsGoal":10000}`),
			})
			require.NoError(t, err)
			assert.NotZero(t, created.ID)

			goal, err := p.CreateGoal(ctx, &models.Goal{UserID: user.ID, Title: "walk", Target: 10, Unit: "km"})
			require.NoError(t, err)
			updated, err := p.UpdateGoalProgress(ctx, goal.ID, 4)
			require.NoError(t, err)
			assert.EqualValues(t, 4, updated.Current)

			reminder, err := p.CreateReminder(ctx, &models.Reminder{UserID: user.ID, Title: "water", Time: "10:00", Frequency: "daily"})
			require.NoError(t, err)
			done, err := p.CompleteReminder(ctx, reminder.ID)
			require.NoError(t, err)
			assert.True(t, done.IsCompleted)

			doctors, err := p.GetDoctors(ctx)
			require.NoError(t, err)
			assert.Len(t, doctors, 3)

			require.NoError(t, p.DeleteHealthData(ctx, created.ID))
		})
	}
}

func TestProviderRoutesToPrimaryWhenConnected(t *testing.T) {
	p, primary, mem, _ := newTestProvider(t, true)
	ctx := context.Background()

	user, err := p.GetUserByUsername(ctx, "demo")
	require.NoError(t, err)

	created, err := p.CreateGoal(ctx, &models.Goal{UserID: user.ID, Title: "primary only", Target: 1, Unit: "x"})
	require.NoError(t, err)

	// The write landed on the primary, not the fallback.
	_, err = primary.MemStore.GetGoal(ctx, created.ID)
	assert.NoError(t, err)
	got, err := mem.GetGoal(ctx, created.ID)
	if err == nil {
		assert.NotEqual(t, "primary only", got.Title)
	}
}

func TestProviderReEvaluatesConnectivityPerCall(t *testing.T) {
	p, primary, mem, _ := newTestProvider(t, true)
	ctx := context.Background()

	st := p.CurrentStatus(ctx)
	assert.Equal(t, "connected", st.MongoStatus)
	assert.Equal(t, "mongodb", st.CurrentStorageType)
	assert.True(t, st.PrimaryConfigured)

	primary.reachable = false
	st = p.CurrentStatus(ctx)
	assert.Equal(t, "disconnected", st.MongoStatus)
	assert.Equal(t, "memory", st.CurrentStorageType)

	// Calls after the drop land on the fallback.
	created, err := p.CreateGoal(ctx, &models.Goal{UserID: 1, Title: "after drop", Target: 1, Unit: "x"})
	require.NoError(t, err)
	_, err = mem.GetGoal(ctx, created.ID)
	assert.NoError(t, err)
}

func TestStatusWithoutPrimary(t *testing.T) {
	enc := testEncryptor(t)
	p := NewProvider(NewMemStore(enc), nil, enc, nil)
	st := p.CurrentStatus(context.Background())
	assert.Equal(t, "not_configured", st.MongoStatus)
	assert.False(t, st.PrimaryConfigured)
	assert.Equal(t, "memory", st.CurrentStorageType)
	assert.False(t, st.Timestamp.IsZero())
}

func TestAuditCompletenessForHealthData(t *testing.T) {
	p, _, _, auditor := newTestProvider(t, false)
	ctx := context.Background()

	created, err := p.CreateHealthData(ctx, &models.HealthDataRecord{UserID: 1, Steps: 5000})
	require.NoError(t, err)
	require.NoError(t, p.DeleteHealthData(ctx, created.ID))

	var creates, deletes int
	for _, line := range auditLines(t, auditor) {
		if line["resourceType"] != "healthData" {
			continue
		}
		switch line["action"] {
		case "create":
			creates++
			assert.EqualValues(t, created.ID, line["resourceId"])
		case "delete":
			deletes++
			assert.EqualValues(t, created.ID, line["resourceId"])
		}
	}
	assert.Equal(t, 1, creates, "exactly one create audit entry")
	assert.Equal(t, 1, deletes, "exactly one delete audit entry")
}

func TestProviderSealsBeforeWriteOnEitherBackend(t *testing.T) {
	for _, reachable := range []bool{true, false} {
		p, primary, mem, _ := newTestProvider(t, reachable)
		ctx := context.Background()

		created, err := p.CreateHealthConsultation(ctx, &models.HealthConsultation{
			UserID:   1,
			Symptoms: models.PlainField("persistent headache"),
			Severity: "low",
		})
		require.NoError(t, err)

		target := mem
		if reachable {
			target = primary.MemStore
		}
		stored := target.consultations[created.ID]
		assert.True(t, stored.Symptoms.IsEncrypted, "symptoms must be sealed at rest (reachable=%v)", reachable)
		assert.NotContains(t, stored.Symptoms.Data, "headache")

		// And the read path opens them again.
		list, err := p.GetHealthConsultationsByUserID(ctx, 1)
		require.NoError(t, err)
		var found bool
		for _, c := range list {
			if c.ID == created.ID {
				found = true
				assert.Equal(t, "persistent headache", c.Symptoms.Plain)
				assert.True(t, c.WasDecrypted)
			}
		}
		assert.True(t, found)
	}
}

func TestProviderDoesNotDoubleSeal(t *testing.T) {
	p, _, mem, _ := newTestProvider(t, false)
	ctx := context.Background()
	enc := mem.enc

	sealed, err := enc.Encrypt("already sealed")
	require.NoError(t, err)
	created, err := p.CreateHealthConsultation(ctx, &models.HealthConsultation{
		UserID:   1,
		Symptoms: sealed,
		Severity: "low",
	})
	require.NoError(t, err)

	stored := mem.consultations[created.ID]
	assert.Equal(t, sealed.Data, stored.Symptoms.Data, "an envelope must pass through unchanged")
}
