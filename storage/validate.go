package storage

import (
	"fmt"

	"github.com/manjiriciklum/WellnessSage-sub000/models"
)

// Create input checks shared by both backends so a request is accepted or
// rejected the same way regardless of which backend is active.

func validateUser(u *models.User) error {
	if u.Username == "" {
		return fmt.Errorf("%w: username is required", ErrValidation)
	}
	return nil
}

func validateHealthData(rec *models.HealthDataRecord) error {
	if rec.UserID == 0 {
		return fmt.Errorf("%w: userId is required", ErrValidation)
	}
	return nil
}

func validateDevice(d *models.WearableDevice) error {
	if d.UserID == 0 {
		return fmt.Errorf("%w: userId is required", ErrValidation)
	}
	if d.DeviceName == "" || d.DeviceType == "" {
		return fmt.Errorf("%w: deviceName and deviceType are required", ErrValidation)
	}
	return nil
}

func validateReminder(r *models.Reminder) error {
	if r.UserID == 0 {
		return fmt.Errorf("%w: userId is required", ErrValidation)
	}
	if r.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	return nil
}

func validateGoal(g *models.Goal) error {
	if g.UserID == 0 {
		return fmt.Errorf("%w: userId is required", ErrValidation)
	}
	if g.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	return nil
}

func validateGoalProgress(current float64) error {
	if current < 0 {
		return fmt.Errorf("%w: current must not be negative", ErrValidation)
	}
	return nil
}

func validateInsight(in *models.AiInsight) error {
	if in.UserID == 0 {
		return fmt.Errorf("%w: userId is required", ErrValidation)
	}
	return nil
}

func validateConsultation(c *models.HealthConsultation) error {
	if c.UserID == 0 {
		return fmt.Errorf("%w: userId is required", ErrValidation)
	}
	return nil
}

func validatePushEndpoint(e *models.PushEndpoint) error {
	if e.UserID == 0 {
		return fmt.Errorf("%w: userId is required", ErrValidation)
	}
	return nil
}
