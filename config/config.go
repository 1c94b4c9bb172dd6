package config

import (
	"os"
	"time"
)

const (
	// Fixed device identity (single-pendant deployment)
	DeviceID   = "pendant-1"
	DeviceName = "Smart Pendant"

	// Server configuration
	DefaultPort = "3000"

	// Camera frame buffer
	MaxFrames     = 10
	DefaultWidth  = 160
	DefaultHeight = 120
	DefaultFormat = "grayscale-1bit"

	// Telemetry placeholders until the firmware reports real values
	DefaultAltitude  = 10.0
	DefaultSignalDbm = -70
	FirmwareVersion  = "1.0.0"

	// WebSocket timing
	WriteWait  = 10 * time.Second
	PongWait   = 60 * time.Second
	PingPeriod = (PongWait * 9) / 10
)

// Port returns the listen port, honoring the PORT environment variable.
func Port() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return DefaultPort
}
