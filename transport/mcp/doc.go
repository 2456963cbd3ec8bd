// Package mcp provides Model Context Protocol server implementation for the Black Box game.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for game operations
//   - Session-aware command execution
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_state: Get the player view of the board with a text rendering
//   - fire_ray: Fire a ray from a boundary cell into the box
//   - toggle_guess: Stage or unstage an atom guess
//   - finalize_guesses: Score all staged guesses
//   - ray_history: Retrieve ray history with pagination
//   - place_atom: Place an atom during manual two-player setup
//   - start_game: Start play on a manually set up board
//   - reset_game: Reset the board with a fresh random layout
//   - create_session: Create new game session with config selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_configs: List available game configurations
//   - game_instructions: Get the full rules and deduction strategy
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint mounted at /mcp on the game server
//
// Architecture:
//
// The MCP layer is a thin client over the REST API. Every tool call is
// translated to an HTTP request against the game server, so the MCP
// surface and the REST surface never diverge. Because the REST API only
// ever returns the player view, hidden atom positions cannot leak
// through this layer either.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Autonomously play the deduction game
//   - Develop and test ray strategies
//   - Cross-reference ray results and stage guesses
//   - Manage multiple game sessions
package mcp
