package models

import "time"

// TelemetryUpdate is a partial device report. Pointer fields distinguish
// "absent" from an explicit zero: nil keeps the stored value, a pointer
// to 0 overwrites it.
type TelemetryUpdate struct {
	DeviceID      string               `json:"deviceId"`
	Battery       *int                 `json:"battery"`
	Location      *LocationUpdate      `json:"location"`
	Activity      *ActivityUpdate      `json:"activity"`
	Accelerometer *AccelerometerUpdate `json:"accelerometer"`
}

type LocationUpdate struct {
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	Accuracy *float64 `json:"accuracy"`
	Speed    *float64 `json:"speed"`
}

type ActivityUpdate struct {
	Type     string   `json:"type"` // empty keeps the stored type
	Steps    *int     `json:"steps"`
	Calories *float64 `json:"calories"`
}

type AccelerometerUpdate struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
	Z *float64 `json:"z"`
}

// AppTelemetry is the flattened projection broadcast to viewer apps.
type AppTelemetry struct {
	DeviceID        string    `json:"deviceId"`
	Timestamp       time.Time `json:"timestamp"`
	Lat             float64   `json:"lat"`
	Lon             float64   `json:"lon"`
	AccuracyMeters  float64   `json:"accuracyMeters"`
	Speed           float64   `json:"speed"`
	Alt             float64   `json:"alt"`
	BatteryPercent  int       `json:"batteryPercent"`
	SignalDbm       int       `json:"signalDbm"`
	MotionState     string    `json:"motionState"`
	FirmwareVersion string    `json:"firmwareVersion"`
}
