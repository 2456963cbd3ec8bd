// Package service provides the game service layer for the Black Box game.
//
// The service package sits between the transports (REST API, WebSocket, MCP)
// and the core engine. It owns session lookup, concurrency control and
// persistence triggers, and translates engine results into transport-neutral
// result types with game events.
//
// All state returned to callers goes through the engine's PlayerView so atom
// positions stay hidden while a board is being played.
package service
