package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/blackbox-arcade/blackbox/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	// Fallback: return as-is or "default"
	if configName == "" {
		return "default"
	}
	return configName
}

// sessionInfo builds the player-facing view of a session.
func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState().PlayerView(),
		GameConfig:     sess.Config,
	}
}

// CreateSession creates a new game session. With manual set the session
// starts in the setup phase and waits for atoms to be placed.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string, manual bool) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load configuration
	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let the session manager generate the ID
	session, err := s.sessions.Create("", config, manual)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Prefer the input configName if provided, otherwise look up the
	// config_id by display name
	configID := configName
	return s.sessionInfo(session, configID), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return s.sessionInfo(session, ""), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, ""))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// FireRay fires a ray from a boundary cell for a session
func (s *gameServiceImpl) FireRay(ctx context.Context, sessionID string, entry engine.Position, direction string) (*RayResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	dir, ok := engine.ParseDirection(direction)
	if !ok {
		return nil, fmt.Errorf("%w: unknown direction '%s'", engine.ErrInvalidEntry, direction)
	}

	scoreBefore := sess.Engine.GetScore()
	record, err := sess.Engine.FireRay(entry, dir)
	if err != nil && record == nil {
		return nil, err
	}

	state := sess.Engine.GetState()
	result := &RayResult{
		Ray:       record,
		GameState: state.PlayerView(),
		Message:   state.Message,
		Events:    s.rayEvents(sess, record, scoreBefore),
	}

	// A simulation cycle still produced a recorded ray; surface it in the
	// message but do not fail the call.
	if err != nil {
		result.Message = fmt.Sprintf("%s (%v)", state.Message, err)
		log.Warn().Str("session_id", sessionID).Err(err).Msg("ray simulation reported a cycle")
	}

	s.persist(sessionID, "ray")

	return result, nil
}

// ToggleGuess stages or unstages an atom guess for a session
func (s *gameServiceImpl) ToggleGuess(ctx context.Context, sessionID string, pos engine.Position) (*GuessResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	active, err := sess.Engine.ToggleGuess(pos)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.GetState()
	verb := "staged"
	if !active {
		verb = "removed"
	}
	result := &GuessResult{
		Active:    active,
		Guesses:   state.Guesses,
		GameState: state.PlayerView(),
		Message:   fmt.Sprintf("Guess at (%d,%d) %s", pos.X, pos.Y, verb),
		Events: []GameEvent{{
			Type:      "guess_toggled",
			Message:   fmt.Sprintf("Guess at (%d,%d) %s", pos.X, pos.Y, verb),
			Timestamp: time.Now(),
			Position:  &pos,
		}},
	}

	s.persist(sessionID, "guess toggle")

	return result, nil
}

// FinalizeGuesses scores the staged guesses for a session
func (s *gameServiceImpl) FinalizeGuesses(ctx context.Context, sessionID string) (*GuessResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	scoreBefore := sess.Engine.GetScore()
	round, err := sess.Engine.FinalizeGuesses()
	if err != nil {
		return nil, err
	}

	state := sess.Engine.GetState()
	result := &GuessResult{
		Guesses:   state.Guesses,
		Round:     round,
		GameState: state.PlayerView(),
		Message:   state.Message,
		Events:    s.roundEvents(sess, round, scoreBefore),
	}

	s.persist(sessionID, "guess finalize")

	return result, nil
}

// PlaceAtom hides an atom during manual setup
func (s *gameServiceImpl) PlaceAtom(ctx context.Context, sessionID string, pos engine.Position) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	if err := sess.Engine.PlaceAtom(pos); err != nil {
		return nil, err
	}

	s.persist(sessionID, "atom placement")

	return sess.Engine.GetState().PlayerView(), nil
}

// StartGame activates a manually set up board
func (s *gameServiceImpl) StartGame(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	if err := sess.Engine.Start(); err != nil {
		return nil, err
	}

	s.persist(sessionID, "start")

	return sess.Engine.GetState().PlayerView(), nil
}

// Reset starts a fresh board for a session
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state := sess.Engine.Reset()

	s.persist(sessionID, "reset")

	return state.PlayerView(), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState().PlayerView(), nil
}

// GetRayHistory returns paginated ray history
func (s *gameServiceImpl) GetRayHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetRayHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	// Calculate pagination
	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	// Get the slice of rays
	var rays []engine.RayRecord
	if opts.Order == "desc" {
		// Reverse order (most recent first)
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			rays = append(rays, history[i])
		}
	} else {
		// Normal chronological order
		if start < total {
			rays = history[start:end]
		}
	}

	// Ensure rays is not nil
	if rays == nil {
		rays = []engine.RayRecord{}
	}

	return &HistoryResponse{
		Rays:        rays,
		TotalRays:   total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// persist saves a session after a mutation, logging failures without
// surfacing them to the player.
func (s *gameServiceImpl) persist(sessionID, operation string) {
	if err := s.sessions.Save(sessionID); err != nil {
		log.Warn().
			Str("session_id", sessionID).
			Str("operation", operation).
			Err(err).
			Msg("failed to persist session")
	}
}

// rayEvents generates events from a fired ray
func (s *gameServiceImpl) rayEvents(sess *Session, record *engine.RayRecord, scoreBefore int) []GameEvent {
	state := sess.Engine.GetState()
	events := []GameEvent{{
		Type:      "ray_fired",
		Message:   fmt.Sprintf("Ray %d from (%d,%d) heading %s: %s", record.Number, record.Entry.X, record.Entry.Y, record.Direction, record.Outcome),
		Timestamp: time.Now(),
		Position:  &record.Entry,
	}}

	if state.Score != scoreBefore {
		events = append(events, GameEvent{
			Type:      "score_changed",
			Message:   fmt.Sprintf("Score changed from %d to %d", scoreBefore, state.Score),
			Timestamp: time.Now(),
		})
	}

	events = append(events, s.endEvents(state)...)
	return events
}

// roundEvents generates events from a finalized guess round
func (s *gameServiceImpl) roundEvents(sess *Session, round *engine.GuessRound, scoreBefore int) []GameEvent {
	state := sess.Engine.GetState()
	events := []GameEvent{{
		Type:      "guesses_finalized",
		Message:   fmt.Sprintf("Round %d: %d correct, %d incorrect", round.Number, len(round.Correct), len(round.Incorrect)),
		Timestamp: time.Now(),
	}}

	if state.Score != scoreBefore {
		events = append(events, GameEvent{
			Type:      "score_changed",
			Message:   fmt.Sprintf("Score changed from %d to %d", scoreBefore, state.Score),
			Timestamp: time.Now(),
		})
	}

	events = append(events, s.endEvents(state)...)
	return events
}

// endEvents emits the game_ended event when a state has just finished.
func (s *gameServiceImpl) endEvents(state *engine.GameState) []GameEvent {
	if !state.GameOver {
		return nil
	}
	return []GameEvent{{
		Type:      "game_ended",
		Message:   state.Message,
		Timestamp: time.Now(),
	}}
}
