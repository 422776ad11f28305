package service

// Broadcaster pushes real-time events to a session's WebSocket connection.
// Implemented by ws.Hub; services treat it as optional.
type Broadcaster interface {
	BroadcastToSession(sessionID string, msgType string, payload interface{})
}
