package storage

import (
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/manjiriciklum/WellnessSage-sub000/models"
)

// seed loads the demo data set the dashboard expects on a fresh process:
// one user, three doctors, five devices, three reminders, three goals,
// three insights and eight days of health records (today plus a week of
// history with randomized vitals in realistic ranges).
func (s *MemStore) seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("storage: failed to hash demo password: %v", err)
		hash = []byte{}
	}
	user := models.User{
		ID:        s.nextID("users"),
		Username:  "demo",
		Password:  string(hash),
		FirstName: "Demo",
		LastName:  "User",
		Email:     "demo@wellnesssage.app",
		Role:      "user",
		CreatedAt: time.Now(),
	}
	s.users[user.ID] = user

	for _, d := range []models.Doctor{
		{FirstName: "Sarah", LastName: "Chen", Specialty: "Cardiology", Practice: "Bayview Heart Clinic", Location: "San Francisco, CA", Rating: 4.8, ReviewCount: 124},
		{FirstName: "James", LastName: "Okafor", Specialty: "General Practice", Practice: "Mission Family Health", Location: "San Francisco, CA", Rating: 4.6, ReviewCount: 89},
		{FirstName: "Priya", LastName: "Nair", Specialty: "Sleep Medicine", Practice: "Restwell Sleep Center", Location: "Oakland, CA", Rating: 4.9, ReviewCount: 203},
	} {
		d.ID = s.nextID("doctors")
		s.doctors[d.ID] = d
	}

	yesterday := time.Now().Add(-24 * time.Hour)
	for _, d := range []models.WearableDevice{
		{DeviceName: "Morning Run Watch", DeviceType: "smartwatch", Manufacturer: "Garmin", Model: "Forerunner 255", BatteryLevel: 82, IsConnected: true, LastSynced: yesterday,
			Capabilities: map[string]bool{"heartRate": true, "steps": true, "sleep": true, "bloodOxygen": true}},
		{DeviceName: "Everyday Band", DeviceType: "fitness_band", Manufacturer: "Fitbit", Model: "Charge 6", BatteryLevel: 64, IsConnected: true, LastSynced: yesterday,
			Capabilities: map[string]bool{"heartRate": true, "steps": true, "sleep": true}},
		{DeviceName: "Sleep Ring", DeviceType: "ring", Manufacturer: "Oura", Model: "Gen3", BatteryLevel: 45, IsConnected: false,
			Capabilities: map[string]bool{"heartRate": true, "sleep": true, "bodyTemperature": true}},
		{DeviceName: "Smart Scale", DeviceType: "scale", Manufacturer: "Withings", Model: "Body+", BatteryLevel: 90, IsConnected: false,
			Capabilities: map[string]bool{"weight": true}},
		{DeviceName: "Chest Strap", DeviceType: "heart_monitor", Manufacturer: "Polar", Model: "H10", BatteryLevel: 71, IsConnected: false,
			Capabilities: map[string]bool{"heartRate": true}},
	} {
		d.UserID = user.ID
		d.ID = s.nextID("devices")
		s.devices[d.ID] = d
	}

	for _, r := range []models.Reminder{
		{Title: "Morning medication", Description: "Take with breakfast", Time: "08:00", Frequency: "daily", Category: "medication", Color: "#4f46e5"},
		{Title: "Drink water", Description: "At least one glass", Time: "12:00", Frequency: "daily", Category: "hydration", Color: "#0ea5e9"},
		{Title: "Evening walk", Description: "20 minutes around the block", Time: "18:30", Frequency: "daily", Category: "exercise", Color: "#22c55e"},
	} {
		r.UserID = user.ID
		r.ID = s.nextID("reminders")
		s.reminders[r.ID] = r
	}

	for _, g := range []models.Goal{
		{Title: "Daily steps", Target: 10000, Current: 7500, Unit: "steps", Category: "activity"},
		{Title: "Sleep 8 hours", Target: 8, Current: 6.5, Unit: "hours", Category: "sleep"},
		{Title: "Lose weight", Target: 5, Current: 1.5, Unit: "kg", Category: "weight"},
	} {
		g.UserID = user.ID
		g.StartDate = time.Now().AddDate(0, 0, -14)
		g.EndDate = time.Now().AddDate(0, 1, 0)
		g.ID = s.nextID("goals")
		s.goals[g.ID] = g
	}

	for _, in := range []models.AiInsight{
		{Title: "Sleep is trending down", Description: "You averaged under 7 hours this week.", Category: "sleep", Action: "Try an earlier wind-down tonight."},
		{Title: "Strong step streak", Description: "You hit your step goal 5 of the last 7 days.", Category: "activity", Action: "Keep the evening walks going."},
		{Title: "Resting heart rate stable", Description: "Your resting heart rate stayed in a healthy range.", Category: "heart"},
	} {
		in.UserID = user.ID
		in.CreatedAt = time.Now()
		in.ID = s.nextID("insights")
		s.insights[in.ID] = in
	}

	// Eight days of vitals, newest first is handled by the read path.
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for daysAgo := 7; daysAgo >= 0; daysAgo-- {
		rec := models.HealthDataRecord{
			UserID:        user.ID,
			Date:          time.Now().AddDate(0, 0, -daysAgo),
			Steps:         7000 + rng.Intn(4001),
			ActiveMinutes: 30 + rng.Intn(61),
			Calories:      1800 + rng.Intn(701),
			SleepHours:    6 + rng.Float64()*3,
			SleepQuality:  60 + rng.Intn(36),
			HeartRate:     65 + rng.Intn(16),
			HealthScore:   70 + rng.Intn(26),
			StressLevel:   20 + rng.Intn(41),
		}
		metrics := map[string]any{
			"stepsGoal":   10000,
			"sleepGoal":   8,
			"hydrationMl": 1500 + rng.Intn(1001),
		}
		sealed, err := s.enc.EncryptJSON(metrics)
		if err != nil {
			log.Printf("storage: failed to seal seeded health metrics: %v", err)
		} else {
			rec.HealthMetrics = sealed
		}
		rec.ID = s.nextID("healthData")
		s.healthData[rec.ID] = rec
	}
}
