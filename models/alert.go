package models

// PanicRequest is the panic-button report from the pendant. The location
// field is accepted but the alert always carries the stored snapshot
// location, which the telemetry path keeps current.
type PanicRequest struct {
	DeviceID  string          `json:"deviceId"`
	Timestamp string          `json:"timestamp"`
	Location  *LocationUpdate `json:"location"`
}

// AlertEvent is broadcast to viewers on panic. It is never stored;
// delivery is at-most-once to the viewers connected at ingestion time.
type AlertEvent struct {
	ID        string   `json:"id"`
	DeviceID  string   `json:"deviceId"`
	Type      string   `json:"type"`
	Timestamp string   `json:"timestamp"`
	Location  Location `json:"location"`
	Handled   bool     `json:"handled"`
}

// AudioRequest is a viewer-recorded clip to forward to the pendant.
type AudioRequest struct {
	Audio     string `json:"audio"`
	DeviceID  string `json:"deviceId"`
	Timestamp string `json:"timestamp"`
}

// AudioPayload is the audio/play message pushed over the device-control
// channel.
type AudioPayload struct {
	Audio     string `json:"audio"`
	Timestamp string `json:"timestamp"`
	DeviceID  string `json:"deviceId"`
}
