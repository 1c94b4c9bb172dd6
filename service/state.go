package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"pendantrelay/config"
	"pendantrelay/models"
)

// StateStore owns the single mutable DeviceSnapshot. All mutation goes
// through the Apply* methods; Read hands out copies so callers can never
// touch the stored struct.
type StateStore struct {
	mu       sync.RWMutex
	snapshot models.DeviceSnapshot
}

func NewStateStore() *StateStore {
	return &StateStore{
		snapshot: models.DeviceSnapshot{
			ID:       config.DeviceID,
			Name:     config.DeviceName,
			Online:   false,
			LastSeen: time.Now(),
			Battery:  75,
			Location: models.Location{
				Latitude:  14.5995, // indoor-testing default, no GPS fix yet
				Longitude: 120.9842,
				Accuracy:  90.0,
				Speed:     0.0,
			},
			Activity: models.Activity{
				Type:     models.ActivityRest,
				Steps:    0,
				Calories: 0,
			},
		},
	}
}

// ApplyTelemetry merges a partial update into the snapshot and marks the
// device online. Only fields carried by the update overwrite stored
// values; an explicit zero is a carried field and wins. Returns the
// merged snapshot so the caller can build the app projection without a
// second read.
func (s *StateStore) ApplyTelemetry(update models.TelemetryUpdate) models.DeviceSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Online = true
	s.snapshot.LastSeen = time.Now()

	if loc := update.Location; loc != nil {
		if loc.Lat != nil {
			s.snapshot.Location.Latitude = *loc.Lat
		}
		if loc.Lng != nil {
			s.snapshot.Location.Longitude = *loc.Lng
		}
		if loc.Accuracy != nil {
			s.snapshot.Location.Accuracy = *loc.Accuracy
		}
		if loc.Speed != nil {
			s.snapshot.Location.Speed = *loc.Speed
		}
	}

	if act := update.Activity; act != nil {
		if act.Type != "" {
			s.snapshot.Activity.Type = act.Type
		}
		if act.Steps != nil {
			s.snapshot.Activity.Steps = *act.Steps
		}
		if act.Calories != nil {
			s.snapshot.Activity.Calories = *act.Calories
		}
	}

	if acc := update.Accelerometer; acc != nil {
		if acc.X != nil {
			s.snapshot.Accelerometer.X = *acc.X
		}
		if acc.Y != nil {
			s.snapshot.Accelerometer.Y = *acc.Y
		}
		if acc.Z != nil {
			s.snapshot.Accelerometer.Z = *acc.Z
		}
	}

	if update.Battery != nil {
		s.snapshot.Battery = *update.Battery
	}

	return s.copyLocked()
}

// ApplyPanic latches the panic flag and builds the alert to broadcast.
// The alert carries the stored location, not anything from the request.
func (s *StateStore) ApplyPanic(timestamp string) models.AlertEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.PanicPressed = true

	if timestamp == "" {
		timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	return models.AlertEvent{
		ID:        "alert-" + uuid.NewString(),
		DeviceID:  s.snapshot.ID,
		Type:      "panic",
		Timestamp: timestamp,
		Location:  s.snapshot.Location,
		Handled:   false,
	}
}

// ApplyCameraUpdate records the newest frame's metadata and payload on
// the snapshot.
func (s *StateStore) ApplyCameraUpdate(frame models.CameraFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Camera = &models.CameraState{
		LatestFrame: frame.ImageData,
		FrameNumber: frame.FrameNumber,
		Width:       frame.Width,
		Height:      frame.Height,
		Format:      frame.Format,
		LastUpdate:  frame.Timestamp,
	}
}

// Read returns a copy of the current snapshot.
func (s *StateStore) Read() models.DeviceSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyLocked()
}

func (s *StateStore) copyLocked() models.DeviceSnapshot {
	snap := s.snapshot
	if s.snapshot.Camera != nil {
		camera := *s.snapshot.Camera
		snap.Camera = &camera
	}
	return snap
}
