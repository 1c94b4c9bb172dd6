package service

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"pendantrelay/config"
	"pendantrelay/models"
)

// Broadcaster fans a {topic,payload} message out to one of the two
// connection sets. Implemented by api.WebSocketHub; declared here to
// avoid an import cycle.
type Broadcaster interface {
	BroadcastToViewers(topic string, payload interface{}) int
	BroadcastToDevice(topic string, payload interface{}) int
	DeviceControlCount() int
}

// TopicAudioPlay is the device-control topic audio clips are pushed on.
const TopicAudioPlay = "audio/play"

// ErrNoAudio means the request carried no audio payload. This is the
// only client-error case; everything downstream is a business outcome.
var ErrNoAudio = errors.New("no audio data provided")

// RelayOutcome is the business-level result of a relay attempt. The
// transport response is 200 either way.
type RelayOutcome struct {
	Delivered  bool
	Recipients int
	Message    string
}

// AudioRelay forwards viewer-recorded audio to the pendant's control
// channel, best effort.
type AudioRelay struct {
	hub Broadcaster
	log zerolog.Logger
}

func NewAudioRelay(hub Broadcaster, log zerolog.Logger) *AudioRelay {
	return &AudioRelay{hub: hub, log: log}
}

// Relay pushes the clip to every open device-control connection. A
// pendant that is offline or not ready yields a failed outcome, not an
// error.
func (r *AudioRelay) Relay(req models.AudioRequest) (RelayOutcome, error) {
	if req.Audio == "" {
		return RelayOutcome{}, ErrNoAudio
	}

	r.log.Info().
		Int("audioBytes", len(req.Audio)).
		Str("timestamp", req.Timestamp).
		Msg("audio recording received")

	if r.hub.DeviceControlCount() == 0 {
		r.log.Warn().Msg("no device-control connection, audio dropped")
		return RelayOutcome{
			Delivered:  false,
			Recipients: 0,
			Message:    "No device connected. Please connect the pendant control channel.",
		}, nil
	}

	deviceID := req.DeviceID
	if deviceID == "" {
		deviceID = config.DeviceID
	}

	sent := r.hub.BroadcastToDevice(TopicAudioPlay, models.AudioPayload{
		Audio:     req.Audio,
		Timestamp: req.Timestamp,
		DeviceID:  deviceID,
	})

	if sent == 0 {
		r.log.Warn().Msg("device-control connection registered but not ready")
		return RelayOutcome{
			Delivered:  false,
			Recipients: r.hub.DeviceControlCount(),
			Message:    "Device connected but channel not ready",
		}, nil
	}

	r.log.Info().Int("recipients", sent).Msg("audio relayed to device")
	return RelayOutcome{
		Delivered:  true,
		Recipients: sent,
		Message:    fmt.Sprintf("Audio sent to %d device connection(s)", sent),
	}, nil
}
