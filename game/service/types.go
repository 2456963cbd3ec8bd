package service

import (
	"time"

	"github.com/blackbox-arcade/blackbox/game/engine"
)

// SessionInfo provides information about a game session. GameState is the
// player view: atom positions are hidden while the board is in play.
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// RayResult contains the result of firing a ray
type RayResult struct {
	Ray       *engine.RayRecord `json:"ray"`
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message"`
	Events    []GameEvent       `json:"events,omitempty"`
}

// GuessResult contains the result of a guess operation. Active is set for
// toggles; Round is set when a batch of guesses has been finalized.
type GuessResult struct {
	Active    bool               `json:"active"`
	Guesses   []engine.Position  `json:"guesses"`
	Round     *engine.GuessRound `json:"round,omitempty"`
	GameState *engine.GameState  `json:"game_state"`
	Message   string             `json:"message"`
	Events    []GameEvent        `json:"events,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string           `json:"type"` // "ray_fired", "guess_toggled", "guesses_finalized", "score_changed", "atom_placed", "game_started", "game_ended", "reset"
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Position  *engine.Position `json:"position,omitempty"`
}

// HistoryOptions configures ray history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated ray history
type HistoryResponse struct {
	Rays        []engine.RayRecord `json:"rays"`
	TotalRays   int                `json:"total_rays"`
	Page        int                `json:"page"`
	PageSize    int                `json:"page_size"`
	TotalPages  int                `json:"total_pages"`
	HasNext     bool               `json:"has_next"`
	HasPrevious bool               `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename     string `json:"filename"`
	ConfigID     string `json:"config_id"` // The identifier to use for session creation
	Name         string `json:"name"`      // Display name
	Description  string `json:"description"`
	Difficulty   string `json:"difficulty"`
	GridSize     int    `json:"grid_size"`
	MinAtoms     int    `json:"min_atoms"`
	MaxAtoms     int    `json:"max_atoms"`
	InitialScore int    `json:"initial_score"`
}
