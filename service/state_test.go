package service

import (
	"testing"

	"pendantrelay/models"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestApplyTelemetryMarksOnline(t *testing.T) {
	store := NewStateStore()

	if store.Read().Online {
		t.Fatal("device should start offline")
	}

	snap := store.ApplyTelemetry(models.TelemetryUpdate{})
	if !snap.Online {
		t.Error("device should be online after any telemetry")
	}
	if snap.LastSeen.IsZero() {
		t.Error("lastSeen should be stamped")
	}
}

func TestApplyTelemetryPartialMerge(t *testing.T) {
	store := NewStateStore()

	store.ApplyTelemetry(models.TelemetryUpdate{
		Battery: intPtr(85),
		Location: &models.LocationUpdate{
			Lat:      floatPtr(37.774851),
			Lng:      floatPtr(-122.419388),
			Accuracy: floatPtr(10.5),
			Speed:    floatPtr(2.3),
		},
		Activity: &models.ActivityUpdate{
			Type:     models.ActivityWalk,
			Steps:    intPtr(1500),
			Calories: floatPtr(75),
		},
		Accelerometer: &models.AccelerometerUpdate{
			X: floatPtr(0.12),
			Y: floatPtr(-0.05),
			Z: floatPtr(0.98),
		},
	})

	// A later update carrying only the activity type must not disturb
	// the other activity fields, the location, or the battery.
	snap := store.ApplyTelemetry(models.TelemetryUpdate{
		Activity: &models.ActivityUpdate{Type: models.ActivityRun},
	})

	if snap.Activity.Type != models.ActivityRun {
		t.Errorf("activity type = %q, want RUN", snap.Activity.Type)
	}
	if snap.Activity.Steps != 1500 {
		t.Errorf("steps = %d, want prior value 1500", snap.Activity.Steps)
	}
	if snap.Activity.Calories != 75 {
		t.Errorf("calories = %v, want prior value 75", snap.Activity.Calories)
	}
	if snap.Battery != 85 {
		t.Errorf("battery = %d, want prior value 85", snap.Battery)
	}
	if snap.Location.Latitude != 37.774851 {
		t.Errorf("latitude = %v, want prior value", snap.Location.Latitude)
	}
	if snap.Accelerometer.Z != 0.98 {
		t.Errorf("accelerometer z = %v, want prior value", snap.Accelerometer.Z)
	}
}

func TestApplyTelemetryExplicitZeroWins(t *testing.T) {
	store := NewStateStore()

	store.ApplyTelemetry(models.TelemetryUpdate{
		Location: &models.LocationUpdate{Speed: floatPtr(2.3)},
		Activity: &models.ActivityUpdate{Steps: intPtr(1500)},
	})

	// An explicit 0 is a carried field, not an absent one.
	snap := store.ApplyTelemetry(models.TelemetryUpdate{
		Location: &models.LocationUpdate{Speed: floatPtr(0)},
		Activity: &models.ActivityUpdate{Steps: intPtr(0)},
	})

	if snap.Location.Speed != 0 {
		t.Errorf("speed = %v, want explicit 0 applied", snap.Location.Speed)
	}
	if snap.Activity.Steps != 0 {
		t.Errorf("steps = %d, want explicit 0 applied", snap.Activity.Steps)
	}
}

func TestApplyPanicBuildsAlert(t *testing.T) {
	store := NewStateStore()
	store.ApplyTelemetry(models.TelemetryUpdate{
		Location: &models.LocationUpdate{Lat: floatPtr(1), Lng: floatPtr(2)},
	})

	alert := store.ApplyPanic("2024-01-01T00:00:00Z")

	if alert.ID == "" {
		t.Error("alert id should be generated")
	}
	if alert.Type != "panic" {
		t.Errorf("alert type = %q, want panic", alert.Type)
	}
	if alert.Timestamp != "2024-01-01T00:00:00Z" {
		t.Errorf("timestamp = %q, want request timestamp", alert.Timestamp)
	}
	if alert.Handled {
		t.Error("alert must be created unhandled")
	}
	if alert.Location.Latitude != 1 || alert.Location.Longitude != 2 {
		t.Errorf("alert location = %+v, want current snapshot location", alert.Location)
	}
	if !store.Read().PanicPressed {
		t.Error("panicPressed should be latched")
	}

	// The panic path must not disturb telemetry.
	if store.Read().Location.Latitude != 1 {
		t.Error("panic must not alter location")
	}

	other := store.ApplyPanic("")
	if other.ID == alert.ID {
		t.Error("alert ids must be unique per ingestion")
	}
	if other.Timestamp == "" {
		t.Error("missing request timestamp should default to ingestion time")
	}
}

func TestApplyCameraUpdate(t *testing.T) {
	store := NewStateStore()

	if store.Read().Camera != nil {
		t.Fatal("camera state should be absent before the first frame")
	}

	store.ApplyCameraUpdate(models.CameraFrame{
		FrameNumber: 3,
		Width:       160,
		Height:      120,
		Format:      "grayscale-1bit",
		ImageData:   "AAAA",
	})

	snap := store.Read()
	if snap.Camera == nil {
		t.Fatal("camera state should be set")
	}
	if snap.Camera.FrameNumber != 3 || snap.Camera.LatestFrame != "AAAA" {
		t.Errorf("camera state = %+v", snap.Camera)
	}

	// Read hands out copies; mutating one must not leak into the store.
	snap.Camera.FrameNumber = 99
	if store.Read().Camera.FrameNumber != 3 {
		t.Error("external mutation leaked into the store")
	}
}
