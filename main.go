package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"pendantrelay/api"
	"pendantrelay/config"
	"pendantrelay/service"
)

// setupLogging configures console logging; LOG_LEVEL overrides the
// default info level.
func setupLogging() zerolog.Logger {
	level := zerolog.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
}

func main() {
	logger := setupLogging()
	logger.Info().Msg("starting smart pendant backend")

	state := service.NewStateStore()
	frames := service.NewFrameBuffer(config.MaxFrames)

	hub := api.NewWebSocketHub(state, logger)
	go hub.Run()

	relay := service.NewAudioRelay(hub, logger)

	router := gin.Default()
	api.SetupRoutes(router, state, frames, relay, hub, logger)

	port := config.Port()
	logger.Info().
		Str("httpAddr", "http://0.0.0.0:"+port).
		Str("viewerWS", "ws://0.0.0.0:"+port+"/ws").
		Str("deviceWS", "ws://0.0.0.0:"+port+"/ws/device").
		Msg("listening on all interfaces")

	if err := router.Run("0.0.0.0:" + port); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
