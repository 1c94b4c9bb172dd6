package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"pendantrelay/config"
	"pendantrelay/models"
	"pendantrelay/service"
)

// Topics broadcast to viewer connections.
var (
	topicTelemetry = "devices/" + config.DeviceID + "/telemetry"
	topicAlert     = "devices/" + config.DeviceID + "/alert"
	topicCamera    = "devices/" + config.DeviceID + "/camera"
)

// PostTelemetry applies a partial device report and pushes the app
// projection to viewers. There is no failure path: a malformed body is
// treated as an empty update and still marks the device online.
func PostTelemetry(c *gin.Context, state *service.StateStore, hub *WebSocketHub, log zerolog.Logger) {
	var update models.TelemetryUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		log.Warn().Err(err).Msg("unreadable telemetry body, applying empty update")
	}

	snap := state.ApplyTelemetry(update)
	log.Info().Str("deviceId", snap.ID).Int("battery", snap.Battery).Msg("telemetry received")

	deviceID := update.DeviceID
	if deviceID == "" {
		deviceID = config.DeviceID
	}

	projection := models.AppTelemetry{
		DeviceID:        deviceID,
		Timestamp:       snap.LastSeen,
		Lat:             snap.Location.Latitude,
		Lon:             snap.Location.Longitude,
		AccuracyMeters:  snap.Location.Accuracy,
		Speed:           snap.Location.Speed,
		Alt:             config.DefaultAltitude,
		BatteryPercent:  snap.Battery,
		SignalDbm:       config.DefaultSignalDbm,
		MotionState:     strings.ToLower(snap.Activity.Type),
		FirmwareVersion: config.FirmwareVersion,
	}
	hub.BroadcastToViewers(topicTelemetry, projection)

	c.JSON(http.StatusOK, models.IngestResponse{Success: true, Message: "Telemetry received"})
}

// PostPanic latches the panic flag and broadcasts the alert to viewers
// before the response is written. Delivery is at-most-once: viewers
// connecting later never see this alert.
func PostPanic(c *gin.Context, state *service.StateStore, hub *WebSocketHub, log zerolog.Logger) {
	start := time.Now()

	var req models.PanicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("unreadable panic body, using ingestion time")
	}

	alert := state.ApplyPanic(req.Timestamp)
	log.Info().Str("alertId", alert.ID).Str("timestamp", alert.Timestamp).Msg("panic button pressed")

	sent := hub.BroadcastToViewers(topicAlert, alert)
	log.Info().Int("viewers", sent).Msg("panic alert broadcast")

	c.JSON(http.StatusOK, models.PanicResponse{
		Success:        true,
		Message:        "Panic alert sent",
		ProcessingTime: time.Since(start).Milliseconds(),
	})
}

// PostImage buffers a camera frame, updates the snapshot's camera state
// and pushes the frame to viewers.
func PostImage(c *gin.Context, state *service.StateStore, frames *service.FrameBuffer, hub *WebSocketHub, log zerolog.Logger) {
	var upload models.ImageUpload
	if err := c.ShouldBindJSON(&upload); err != nil {
		log.Warn().Err(err).Msg("unreadable image body, using frame defaults")
	}

	frame := frames.BuildFrame(upload)
	frames.Push(frame)
	state.ApplyCameraUpdate(frame)

	log.Info().Int("frameNumber", frame.FrameNumber).Str("format", frame.Format).Msg("camera frame received")
	hub.BroadcastToViewers(topicCamera, frame)

	c.JSON(http.StatusOK, models.ImageResponse{
		Success:        true,
		Message:        "Frame received",
		FrameNumber:    frame.FrameNumber,
		BufferedFrames: frames.Len(),
	})
}

// GetLatestFrame returns the newest buffered frame, or 404 when nothing
// has been ingested yet.
func GetLatestFrame(c *gin.Context, frames *service.FrameBuffer) {
	frame, ok := frames.Latest()
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "No frames available"})
		return
	}
	c.JSON(http.StatusOK, frame)
}

// GetFrames returns the full buffered sequence, oldest first.
func GetFrames(c *gin.Context, frames *service.FrameBuffer) {
	c.JSON(http.StatusOK, models.FramesResponse{
		Frames:      frames.All(),
		TotalFrames: frames.Len(),
		FPS:         frames.FPS(),
	})
}

// PostAudio relays a viewer recording to the pendant's control channel.
// Relay failures are business outcomes inside a 200, never transport
// errors; only a missing payload is a client error.
func PostAudio(c *gin.Context, relay *service.AudioRelay) {
	var req models.AudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: service.ErrNoAudio.Error()})
		return
	}

	outcome, err := relay.Relay(req)
	if err != nil {
		if errors.Is(err, service.ErrNoAudio) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.AudioResponse{
		Success:          outcome.Delivered,
		Message:          outcome.Message,
		ConnectedDevices: outcome.Recipients,
	})
}

// GetDevices lists the device inventory, which is always the single
// pendant.
func GetDevices(c *gin.Context, state *service.StateStore) {
	c.JSON(http.StatusOK, []models.DeviceSnapshot{state.Read()})
}

// GetDevice returns the snapshot. The :deviceId parameter is accepted
// but ignored; there is no per-id lookup in a single-pendant deployment.
func GetDevice(c *gin.Context, state *service.StateStore) {
	c.JSON(http.StatusOK, state.Read())
}

// Health reports liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "OK",
		Timestamp: time.Now(),
	})
}
