package models

import "time"

// ImageUpload is the raw camera report from the pendant. FrameNumber,
// Width and Height default when absent (see service.FrameBuffer).
type ImageUpload struct {
	DeviceID    string `json:"deviceId"`
	FrameNumber *int   `json:"frameNumber"`
	Width       *int   `json:"width"`
	Height      *int   `json:"height"`
	Format      string `json:"format"`
	ImageData   string `json:"imageData"` // opaque base64 blob
}

// CameraFrame is a buffered, display-ready frame.
type CameraFrame struct {
	DeviceID    string    `json:"deviceId"`
	FrameNumber int       `json:"frameNumber"`
	Timestamp   time.Time `json:"timestamp"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Format      string    `json:"format"`
	ImageData   string    `json:"imageData"`
	ImageURL    string    `json:"imageUrl"` // data: URI for direct browser display
}
