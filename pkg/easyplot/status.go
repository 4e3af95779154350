package easyplot

import "time"

// Status represents the current state of a Plot instance.
type Status struct {
	// Running indicates if the instance is currently active.
	Running bool
	// StartTime is when the instance was last started (zero if never started).
	StartTime time.Time
	// Reloads counts scene reloads since the instance was created.
	Reloads uint64
	// Primitives is the number of primitives in the current scene.
	Primitives int
	// LastError is the most recent error encountered (nil if none).
	LastError error
	// SceneSource describes where the scene came from.
	SceneSource string
}

// ErrorHandler is a callback for runtime errors.
// It is called asynchronously when errors occur during operation.
// Do not block in the handler; perform only quick, non-blocking operations.
type ErrorHandler func(err error)

// EventHandler is a callback for lifecycle events.
// It is called asynchronously; do not block in the handler.
type EventHandler func(event Event)

// Event represents a lifecycle event.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Message   string
}

// EventType enumerates lifecycle event types.
type EventType int

const (
	// EventStarted is emitted when the instance starts successfully.
	EventStarted EventType = iota
	// EventStopped is emitted when the instance stops, including when the
	// user closes the window.
	EventStopped
	// EventSceneReloaded is emitted when the scene is reloaded.
	EventSceneReloaded
	// EventError is emitted when a recoverable error occurs.
	EventError
)

// String returns a human-readable representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventStarted:
		return "started"
	case EventStopped:
		return "stopped"
	case EventSceneReloaded:
		return "scene_reloaded"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}
