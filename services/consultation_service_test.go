package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manjiriciklum/WellnessSage-sub000/storage"
)

func TestAnalyzeSymptomsPersistsConsultation(t *testing.T) {
	store := newTestStore(t)
	svc := NewConsultationService(store, nil)
	ctx := context.Background()

	c, err := svc.AnalyzeSymptoms(ctx, 42, "mild headache after long screen time")
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.Equal(t, "low", c.Severity)
	assert.NotEmpty(t, c.Analysis.Plain)
	assert.NotEmpty(t, c.Recommendations.Plain)

	history, err := svc.History(ctx, 42)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, c.ID, history[0].ID)
}

func TestAnalyzeSymptomsSeverity(t *testing.T) {
	cases := []struct {
		symptoms string
		want     string
	}{
		{"slight runny nose", "low"},
		{"fever since yesterday and feeling dizzy", "medium"},
		{"sudden chest pain and shortness of breath", "high"},
	}
	for _, tc := range cases {
		_, _, severity, err := RuleBasedAnalyzer(tc.symptoms)
		require.NoError(t, err)
		assert.Equal(t, tc.want, severity, tc.symptoms)
	}
}

func TestAnalyzeSymptomsRejectsEmptyInput(t *testing.T) {
	svc := NewConsultationService(newTestStore(t), nil)

	_, err := svc.AnalyzeSymptoms(context.Background(), 42, "   ")
	assert.ErrorIs(t, err, storage.ErrValidation)
}

func TestAnalyzeSymptomsCustomAnalyzer(t *testing.T) {
	store := newTestStore(t)
	svc := NewConsultationService(store, func(symptoms string) (string, string, string, error) {
		return "custom analysis", "custom advice", "medium", nil
	})

	c, err := svc.AnalyzeSymptoms(context.Background(), 42, "anything")
	require.NoError(t, err)
	assert.Equal(t, "custom analysis", c.Analysis.Plain)
	assert.Equal(t, "medium", c.Severity)
}

func TestAnalyzeSymptomsAnalyzerFailure(t *testing.T) {
	store := newTestStore(t)
	boom := errors.New("model unavailable")
	svc := NewConsultationService(store, func(string) (string, string, string, error) {
		return "", "", "", boom
	})

	_, err := svc.AnalyzeSymptoms(context.Background(), 42, "anything")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	history, err := store.GetHealthConsultationsByUserID(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, history, "failed analysis must not be persisted")
}
