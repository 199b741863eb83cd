package models

import "time"

// WearableDevice is a registered tracker/watch/ring. IsConnected and
// LastSynced only move through the connect/disconnect/sync operations.
type WearableDevice struct {
	ID                 uint              `json:"id" bson:"id"`
	UserID             uint              `json:"userId" bson:"userId"`
	DeviceName         string            `json:"deviceName" bson:"deviceName"`
	DeviceType         string            `json:"deviceType" bson:"deviceType"` // "smartwatch" | "fitness_band" | "ring" | ...
	Model              string            `json:"model,omitempty" bson:"model,omitempty"`
	Manufacturer       string            `json:"manufacturer,omitempty" bson:"manufacturer,omitempty"`
	SerialNumber       string            `json:"serialNumber,omitempty" bson:"serialNumber,omitempty"`
	FirmwareVersion    string            `json:"firmwareVersion,omitempty" bson:"firmwareVersion,omitempty"`
	BatteryLevel       int               `json:"batteryLevel" bson:"batteryLevel"`
	IsConnected        bool              `json:"isConnected" bson:"isConnected"`
	LastSynced         time.Time         `json:"lastSynced,omitempty" bson:"lastSynced,omitempty"`
	Capabilities       map[string]bool   `json:"capabilities" bson:"capabilities"`
	ConnectionSettings map[string]string `json:"connectionSettings,omitempty" bson:"connectionSettings,omitempty"`
}
