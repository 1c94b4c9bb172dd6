package service

import (
	"sync"
	"time"

	"pendantrelay/config"
	"pendantrelay/models"
)

// FrameBuffer keeps the most recent camera frames in arrival order,
// evicting the oldest once capacity is reached.
type FrameBuffer struct {
	mu       sync.RWMutex
	frames   []models.CameraFrame
	capacity int
}

func NewFrameBuffer(capacity int) *FrameBuffer {
	if capacity <= 0 {
		capacity = config.MaxFrames
	}
	return &FrameBuffer{
		frames:   make([]models.CameraFrame, 0, capacity),
		capacity: capacity,
	}
}

// BuildFrame fills in defaults for an uploaded image and stamps the
// ingestion time. An absent frameNumber defaults to the current buffer
// length.
func (b *FrameBuffer) BuildFrame(upload models.ImageUpload) models.CameraFrame {
	b.mu.RLock()
	buffered := len(b.frames)
	b.mu.RUnlock()

	frame := models.CameraFrame{
		DeviceID:    upload.DeviceID,
		FrameNumber: buffered,
		Timestamp:   time.Now(),
		Width:       config.DefaultWidth,
		Height:      config.DefaultHeight,
		Format:      upload.Format,
		ImageData:   upload.ImageData,
		ImageURL:    "data:image/jpeg;base64," + upload.ImageData,
	}
	if frame.DeviceID == "" {
		frame.DeviceID = config.DeviceID
	}
	if upload.FrameNumber != nil {
		frame.FrameNumber = *upload.FrameNumber
	}
	if upload.Width != nil {
		frame.Width = *upload.Width
	}
	if upload.Height != nil {
		frame.Height = *upload.Height
	}
	if frame.Format == "" {
		frame.Format = config.DefaultFormat
	}
	return frame
}

// Push appends a frame, evicting the oldest when over capacity.
func (b *FrameBuffer) Push(frame models.CameraFrame) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.frames = append(b.frames, frame)
	if len(b.frames) > b.capacity {
		b.frames = b.frames[1:]
	}
}

// Latest returns the most recently pushed frame, or false when empty.
func (b *FrameBuffer) Latest() (models.CameraFrame, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.frames) == 0 {
		return models.CameraFrame{}, false
	}
	return b.frames[len(b.frames)-1], true
}

// All returns a copy of the buffered frames, oldest first.
func (b *FrameBuffer) All() []models.CameraFrame {
	b.mu.RLock()
	defer b.mu.RUnlock()

	frames := make([]models.CameraFrame, len(b.frames))
	copy(frames, b.frames)
	return frames
}

func (b *FrameBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.frames)
}

// FPS reports a nominal 2 once at least two frames are buffered. The
// OV7670 uploads are too irregular for real timing math to mean much.
func (b *FrameBuffer) FPS() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.frames) > 1 {
		return 2
	}
	return 0
}
