// Package websocket provides WebSocket transport for the Black Box game.
//
// The websocket package implements:
//   - Real-time state push to connected clients
//   - Session-aware WebSocket connections
//   - Automatic state broadcasting after rays, guesses, and resets
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Messages are JSON-encoded. State updates carry the player view of the
// game state under the "state_update" event; ray results, score changes,
// and game endings arrive as separate events:
//
//	{"session_id": "abc1", "event": "state_update", "game_state": {...}}
//	{"session_id": "abc1", "event": "ray_result", "data": {...}}
//
// Hidden atom positions are never sent while the board is in play.
//
// Session Integration:
//
// WebSocket connections are session-aware. Clients specify their session ID
// via query parameter (?session=abc1) when establishing the connection.
// State updates are broadcast only to clients connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after a game mutation
//	hub.BroadcastToSession(sessionID, state)
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple clients can connect, disconnect, and receive messages
// simultaneously without blocking each other.
package websocket
