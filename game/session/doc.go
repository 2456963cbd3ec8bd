// Package session provides game session lifecycle management for the Black
// Box game.
//
// The session package handles:
//   - Creating, looking up and deleting sessions by ID
//   - Expiring sessions that have not been accessed recently
//   - Persisting sessions to JSON files and restoring them on startup
//
// Sessions hold the full server-side game state, hidden atoms included;
// redaction for player-facing responses happens in the service layer.
package session
