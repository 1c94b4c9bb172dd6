package models

import "time"

// Activity types reported by the pendant firmware
const (
	ActivityRest = "REST"
	ActivityWalk = "WALK"
	ActivityRun  = "RUN"
)

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  float64 `json:"accuracy"`
	Speed     float64 `json:"speed"`
}

type Activity struct {
	Type     string  `json:"type"` // REST, WALK, RUN
	Steps    int     `json:"steps"`
	Calories float64 `json:"calories"`
}

type Accelerometer struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type CameraState struct {
	LatestFrame string    `json:"latestFrame"` // base64 payload of the newest frame
	FrameNumber int       `json:"frameNumber"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Format      string    `json:"format"`
	LastUpdate  time.Time `json:"lastUpdate"`
}

// DeviceSnapshot is the single current view of the pendant. Exactly one
// instance exists per process; it is mutated in place by the ingestion
// path and read by the app-facing endpoints.
type DeviceSnapshot struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Online        bool          `json:"online"`
	LastSeen      time.Time     `json:"lastSeen"`
	Battery       int           `json:"battery"`
	Location      Location      `json:"location"`
	Activity      Activity      `json:"activity"`
	Accelerometer Accelerometer `json:"accelerometer"`
	PanicPressed  bool          `json:"panicPressed"`
	Camera        *CameraState  `json:"camera,omitempty"`
}
