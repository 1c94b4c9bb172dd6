package models

import "time"

type IngestResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type PanicResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ProcessingTime int64  `json:"processingTime"` // milliseconds
}

type ImageResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	FrameNumber    int    `json:"frameNumber"`
	BufferedFrames int    `json:"bufferedFrames"`
}

// AudioResponse carries the business-level relay outcome. The transport
// status is 200 even when Success is false; connectedArduinos is the
// key the mobile app already parses.
type AudioResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	ConnectedDevices int    `json:"connectedArduinos"`
}

type FramesResponse struct {
	Frames      []CameraFrame `json:"frames"`
	TotalFrames int           `json:"totalFrames"`
	FPS         int           `json:"fps"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
