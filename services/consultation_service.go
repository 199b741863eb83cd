package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/manjiriciklum/WellnessSage-sub000/models"
	"github.com/manjiriciklum/WellnessSage-sub000/storage"
)

// Analyzer turns a symptom description into analysis text, recommendations
// and a severity rating. The real deployment plugs an LLM-backed analyzer
// in here; the default is a rule-based heuristic.
type Analyzer func(symptoms string) (analysis, recommendations, severity string, err error)

// ConsultationService runs the symptom-analysis flow and persists the
// exchange. Sensitive text is sealed by the storage provider on write.
type ConsultationService struct {
	store   storage.Storage
	analyze Analyzer
}

func NewConsultationService(store storage.Storage, analyze Analyzer) *ConsultationService {
	if analyze == nil {
		analyze = RuleBasedAnalyzer
	}
	return &ConsultationService{store: store, analyze: analyze}
}

func (s *ConsultationService) AnalyzeSymptoms(ctx context.Context, userID uint, symptoms string) (*models.HealthConsultation, error) {
	if strings.TrimSpace(symptoms) == "" {
		return nil, fmt.Errorf("%w: symptoms text is required", storage.ErrValidation)
	}
	analysis, recommendations, severity, err := s.analyze(symptoms)
	if err != nil {
		return nil, fmt.Errorf("symptom analysis failed: %w", err)
	}
	return s.store.CreateHealthConsultation(ctx, &models.HealthConsultation{
		UserID:          userID,
		Symptoms:        models.PlainField(symptoms),
		Analysis:        models.PlainField(analysis),
		Recommendations: models.PlainField(recommendations),
		Severity:        severity,
	})
}

func (s *ConsultationService) History(ctx context.Context, userID uint) ([]models.HealthConsultation, error) {
	return s.store.GetHealthConsultationsByUserID(ctx, userID)
}

var urgentKeywords = []string{"chest pain", "shortness of breath", "fainted", "severe", "numbness", "bleeding"}
var moderateKeywords = []string{"fever", "vomiting", "dizzy", "migraine", "persistent"}

// RuleBasedAnalyzer is the built-in keyword heuristic.
func RuleBasedAnalyzer(symptoms string) (string, string, string, error) {
	lower := strings.ToLower(symptoms)
	severity := "low"
	for _, kw := range moderateKeywords {
		if strings.Contains(lower, kw) {
			severity = "medium"
			break
		}
	}
	for _, kw := range urgentKeywords {
		if strings.Contains(lower, kw) {
			severity = "high"
			break
		}
	}

	var analysis, recommendations string
	switch severity {
	case "high":
		analysis = "The symptoms described include warning signs that should be evaluated promptly."
		recommendations = "Seek medical attention as soon as possible. If symptoms are acute, contact emergency services."
	case "medium":
		analysis = "The symptoms described are consistent with a condition that usually resolves but should be monitored."
		recommendations = "Rest, stay hydrated, and consult a doctor if symptoms persist beyond a few days or worsen."
	default:
		analysis = "The symptoms described appear mild and are commonly self-limiting."
		recommendations = "Monitor how you feel over the next days and keep up regular sleep and hydration."
	}
	return analysis, recommendations, severity, nil
}
