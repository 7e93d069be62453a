// Package websocket provides WebSocket transport for the bot colony
// simulation.
//
// The websocket package implements:
//   - Session-aware WebSocket connections
//   - Snapshot broadcasting after processed turns
//   - Connection lifecycle management
//   - Message routing and delivery
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine pair that manages reading, writing, and cleanup. All session
// bookkeeping happens inside the hub's Run loop.
//
// Message Protocol:
//
// Messages are JSON-encoded:
//   - {session_id, event: "snapshot", snapshot: {...}} after each turn
//   - {session_id, event: <custom>, data: {...}} for custom broadcasts
//
// Clients do not send game commands over the socket; turns are submitted via
// the REST API, and the socket is a one-way state feed.
//
// Session Integration:
//
// WebSocket connections are session-aware. Clients specify their session ID
// via query parameter (?session=abc1) when establishing the connection.
// Snapshots are broadcast only to clients watching the same session.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run()
//
//	// after a processed turn
//	hub.BroadcastSnapshot(sessionID, snapshot)
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple clients can connect, disconnect, and receive broadcasts
// simultaneously without blocking each other.
package websocket
