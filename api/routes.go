package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"pendantrelay/service"
)

func SetupRoutes(router *gin.Engine, state *service.StateStore, frames *service.FrameBuffer, relay *service.AudioRelay, hub *WebSocketHub, log zerolog.Logger) {
	// Enable CORS
	router.Use(CORSMiddleware())

	// Health check
	router.GET("/health", Health)

	// API routes
	api := router.Group("/api")
	{
		// Device ingestion (pendant → backend)
		api.POST("/telemetry", func(c *gin.Context) {
			PostTelemetry(c, state, hub, log)
		})
		api.POST("/panic", func(c *gin.Context) {
			PostPanic(c, state, hub, log)
		})
		api.POST("/image", func(c *gin.Context) {
			PostImage(c, state, frames, hub, log)
		})

		// Camera playback
		camera := api.Group("/camera")
		{
			camera.GET("/latest", func(c *gin.Context) {
				GetLatestFrame(c, frames)
			})
			camera.GET("/frames", func(c *gin.Context) {
				GetFrames(c, frames)
			})
		}

		// Viewer → pendant audio relay
		api.POST("/audio/send", func(c *gin.Context) {
			PostAudio(c, relay)
		})

		// Viewer-facing device state
		devices := api.Group("/devices")
		{
			devices.GET("", func(c *gin.Context) {
				GetDevices(c, state)
			})
			devices.GET("/:deviceId", func(c *gin.Context) {
				GetDevice(c, state)
			})
			devices.GET("/:deviceId/telemetry", func(c *gin.Context) {
				GetDevice(c, state)
			})
		}
	}

	// WebSocket routes: viewers on /ws, the pendant's control channel on
	// /ws/device
	router.GET("/ws", func(c *gin.Context) {
		HandleViewerWebSocket(hub, c)
	})
	router.GET("/ws/device", func(c *gin.Context) {
		HandleDeviceWebSocket(hub, c)
	})
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
