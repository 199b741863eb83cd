package services

import (
	"context"

	"github.com/manjiriciklum/WellnessSage-sub000/models"
	"github.com/manjiriciklum/WellnessSage-sub000/storage"
)

// InsightService derives coaching insights from a user's recent records and
// notifies the dashboard and mobile apps about new ones.
type InsightService struct {
	store storage.Storage
	hub   *RealtimeHub
	push  *PushService
}

func NewInsightService(store storage.Storage, hub *RealtimeHub, push *PushService) *InsightService {
	return &InsightService{store: store, hub: hub, push: push}
}

const insightWindow = 7 // days of records to look back over

// GenerateForUser inspects the user's recent health records and persists an
// insight per trend it finds. Generation is additive; existing insights are
// left alone.
func (s *InsightService) GenerateForUser(ctx context.Context, userID uint) ([]models.AiInsight, error) {
	records, err := s.store.GetHealthDataByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	// records arrive newest first
	if len(records) > insightWindow {
		records = records[:insightWindow]
	}
	if len(records) == 0 {
		return nil, nil
	}

	var created []models.AiInsight
	for _, candidate := range deriveInsights(userID, records) {
		insight, err := s.store.CreateAiInsight(ctx, &candidate)
		if err != nil {
			return created, err
		}
		created = append(created, *insight)
		s.notify(ctx, insight)
	}
	return created, nil
}

func (s *InsightService) notify(ctx context.Context, insight *models.AiInsight) {
	if s.hub != nil {
		s.hub.Broadcast(insight.UserID, "insight.created", insight)
	}
	if s.push != nil {
		s.push.PushToUser(ctx, insight.UserID, insight.Title, insight.Description, map[string]string{
			"category": insight.Category,
		})
	}
}

func deriveInsights(userID uint, records []models.HealthDataRecord) []models.AiInsight {
	var sumSteps, sumHR int
	var sumSleep float64
	hrSamples := 0
	for _, r := range records {
		sumSteps += r.Steps
		sumSleep += r.SleepHours
		if r.HeartRate > 0 {
			sumHR += r.HeartRate
			hrSamples++
		}
	}
	n := len(records)
	avgSteps := sumSteps / n
	avgSleep := sumSleep / float64(n)

	var out []models.AiInsight
	if avgSleep > 0 && avgSleep < 7 {
		out = append(out, models.AiInsight{
			UserID:      userID,
			Title:       "Sleep below target",
			Description: "You averaged under 7 hours of sleep this week. Consistent short sleep raises stress and recovery time.",
			Category:    "sleep",
			Action:      "Try moving your bedtime 30 minutes earlier for the next three nights.",
		})
	}
	if avgSteps > 0 && avgSteps < 8000 {
		out = append(out, models.AiInsight{
			UserID:      userID,
			Title:       "Activity dipped this week",
			Description: "Your daily steps averaged below 8,000. A short daily walk would close most of the gap.",
			Category:    "activity",
			Action:      "Add a 20 minute walk after lunch.",
		})
	}
	if hrSamples > 0 && sumHR/hrSamples > 75 {
		out = append(out, models.AiInsight{
			UserID:      userID,
			Title:       "Resting heart rate trending high",
			Description: "Your average resting heart rate was above 75 bpm over the past week. Stress, caffeine and poor sleep are common causes.",
			Category:    "heart",
			Action:      "If the trend continues for another week, consider discussing it with your doctor.",
		})
	}
	return out
}
