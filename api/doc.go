// Package api provides HTTP REST API handlers for the Black Box game server.
//
// The api package implements:
//   - RESTful endpoints for game operations
//   - Session management endpoints
//   - Configuration listing and creation
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session (body: {config_id, manual})
//   - GET /api/sessions - List all sessions (sort, order, limit query params)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Get the player view of the board
//   - POST /api/sessions/{id}/rays - Fire a ray (body: {x, y, direction})
//   - GET /api/sessions/{id}/rays - Ray history with pagination
//   - POST /api/sessions/{id}/guesses - Toggle an atom guess (body: {x, y})
//   - POST /api/sessions/{id}/guesses/finalize - Score the staged guesses
//   - POST /api/sessions/{id}/atoms - Place an atom during manual setup
//   - POST /api/sessions/{id}/start - Start play on a manually set up board
//   - POST /api/sessions/{id}/reset - Reset the board with fresh atoms
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - GET /api/configs/{name} - Get a specific configuration
//   - POST /api/configs - Save a new configuration
//
// Other:
//   - GET /api/health - Health check
//   - GET /ws?session={id} - WebSocket upgrade for live state updates
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Game state returned by these
// endpoints is always the player view: atom positions are omitted while
// the board is in the active phase.
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes. Player
// mistakes (bad entry cell, guess on a revealed atom) come back as 400,
// operations against a finished game or the wrong phase as 409:
//
//	{
//	  "error": "error message"
//	}
package api
