package engine

import (
	"errors"
	"testing"
)

func createTestConfig() *GameConfig {
	config := &GameConfig{
		Name:                  "Engine Test Config",
		Description:           "Configuration for engine tests",
		Difficulty:            "custom",
		GridSize:              8,
		MinAtoms:              2,
		MaxAtoms:              3,
		InitialScore:          25,
		RayCost:               1,
		CorrectGuessBonus:     10,
		IncorrectGuessPenalty: 5,
	}
	config.Messages.Welcome = "Welcome to the test box!"
	config.Messages.SetupPlaceAtoms = "Place your atoms."
	config.Messages.RayFired = "Ray result: %s"
	config.Messages.GuessToggled = "Guess updated"
	config.Messages.GuessesFinalized = "Guesses checked: %d of %d correct"
	config.Messages.Victory = "Victory with %d points!"
	config.Messages.OutOfPoints = "Out of points!"
	config.Messages.ScoreStatus = "Score: %d"
	return config
}

func createTestEngine(t *testing.T, atoms ...Position) *GameEngine {
	t.Helper()
	engine, err := NewEngineWithAtoms(createTestConfig(), atoms)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return engine
}

func TestNewEngine(t *testing.T) {
	config := createTestConfig()
	engine, err := NewEngine(config)
	if err != nil {
		t.Fatalf("Failed to create new engine: %v", err)
	}

	state := engine.GetState()
	if state.Score != config.InitialScore {
		t.Errorf("Expected initial score %d, got %d", config.InitialScore, state.Score)
	}
	if state.Phase != PhaseActive {
		t.Errorf("Expected phase %s, got %s", PhaseActive, state.Phase)
	}
	if state.AtomCount < config.MinAtoms || state.AtomCount > config.MaxAtoms {
		t.Errorf("Atom count %d outside configured range [%d,%d]", state.AtomCount, config.MinAtoms, config.MaxAtoms)
	}
	if len(state.Atoms) != state.AtomCount {
		t.Errorf("Expected %d placed atoms, got %d", state.AtomCount, len(state.Atoms))
	}
	if engine.IsGameOver() {
		t.Error("Expected game not to be over initially")
	}
	if engine.IsVictory() {
		t.Error("Expected game not to be victory initially")
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	config := createTestConfig()
	config.Name = "" // Make config invalid

	_, err := NewEngine(config)
	if err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestNewEngineWithDefaults(t *testing.T) {
	engine := NewEngineWithDefaults()
	if engine == nil {
		t.Fatal("Expected engine to be non-nil")
	}

	if engine.GetScore() <= 0 {
		t.Error("Expected positive starting score")
	}
	if engine.GetPhase() != PhaseActive {
		t.Errorf("Expected phase %s, got %s", PhaseActive, engine.GetPhase())
	}
}

func TestNewEngineWithAtoms_RejectsBadLayout(t *testing.T) {
	_, err := NewEngineWithAtoms(createTestConfig(), []Position{{3, 3}, {3, 3}})
	if !errors.Is(err, ErrDuplicateAtom) {
		t.Errorf("Expected ErrDuplicateAtom, got %v", err)
	}

	_, err = NewEngineWithAtoms(createTestConfig(), []Position{{-1, 3}})
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
}

func TestEngine_FireRay(t *testing.T) {
	engine := createTestEngine(t, Position{3, 3}, Position{6, 6})

	record, err := engine.FireRay(Position{3, -1}, DirDown)
	if err != nil {
		t.Fatalf("FireRay failed: %v", err)
	}

	if record.Outcome != Hit {
		t.Errorf("Expected outcome %s, got %s", Hit, record.Outcome)
	}
	if record.Number != 1 {
		t.Errorf("Expected ray number 1, got %d", record.Number)
	}
	if engine.GetScore() != 24 {
		t.Errorf("Expected score 24 after one ray, got %d", engine.GetScore())
	}
	if record.ScoreAfter != 24 {
		t.Errorf("Expected recorded score 24, got %d", record.ScoreAfter)
	}

	// Same entry again is allowed and costs again
	record, err = engine.FireRay(Position{3, -1}, DirDown)
	if err != nil {
		t.Fatalf("Repeated FireRay failed: %v", err)
	}
	if record.Number != 2 {
		t.Errorf("Expected ray number 2, got %d", record.Number)
	}
	if engine.GetScore() != 23 {
		t.Errorf("Expected score 23 after two rays, got %d", engine.GetScore())
	}
	if len(engine.GetRayHistory()) != 2 {
		t.Errorf("Expected 2 rays in history, got %d", len(engine.GetRayHistory()))
	}
}

func TestEngine_FireRay_InvalidEntries(t *testing.T) {
	engine := createTestEngine(t, Position{3, 3})
	startScore := engine.GetScore()

	tests := []struct {
		name  string
		entry Position
		dir   Direction
	}{
		{"corner", Position{-1, -1}, DirRight},
		{"interior", Position{3, 3}, DirDown},
		{"far outside", Position{-5, 3}, DirRight},
		{"outward direction", Position{-1, 3}, DirLeft},
		{"parallel direction", Position{-1, 3}, DirUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.FireRay(tt.entry, tt.dir)
			if !errors.Is(err, ErrInvalidEntry) {
				t.Errorf("Expected ErrInvalidEntry, got %v", err)
			}
		})
	}

	if engine.GetScore() != startScore {
		t.Errorf("Rejected rays must not cost points: score %d, want %d", engine.GetScore(), startScore)
	}
	if len(engine.GetRayHistory()) != 0 {
		t.Errorf("Rejected rays must not be recorded, got %d records", len(engine.GetRayHistory()))
	}
}

func TestEngine_ToggleGuess(t *testing.T) {
	engine := createTestEngine(t, Position{3, 3}, Position{5, 5})

	active, err := engine.ToggleGuess(Position{2, 2})
	if err != nil {
		t.Fatalf("ToggleGuess failed: %v", err)
	}
	if !active {
		t.Error("Expected guess to be active after first toggle")
	}
	if engine.GetScore() != 25 {
		t.Errorf("Toggling a guess must not change the score, got %d", engine.GetScore())
	}

	active, err = engine.ToggleGuess(Position{2, 2})
	if err != nil {
		t.Fatalf("Second toggle failed: %v", err)
	}
	if active {
		t.Error("Expected guess to be inactive after second toggle")
	}
	if len(engine.GetState().Guesses) != 0 {
		t.Errorf("Expected empty guess set, got %v", engine.GetState().Guesses)
	}

	_, err = engine.ToggleGuess(Position{-1, 2})
	if !errors.Is(err, ErrInvalidGuess) {
		t.Errorf("Expected ErrInvalidGuess for boundary cell, got %v", err)
	}
	_, err = engine.ToggleGuess(Position{8, 8})
	if !errors.Is(err, ErrInvalidGuess) {
		t.Errorf("Expected ErrInvalidGuess outside grid, got %v", err)
	}
}

func TestEngine_FinalizeGuesses(t *testing.T) {
	engine := createTestEngine(t, Position{3, 3}, Position{5, 5})

	if _, err := engine.ToggleGuess(Position{3, 3}); err != nil {
		t.Fatalf("ToggleGuess failed: %v", err)
	}
	if _, err := engine.ToggleGuess(Position{2, 2}); err != nil {
		t.Fatalf("ToggleGuess failed: %v", err)
	}

	round, err := engine.FinalizeGuesses()
	if err != nil {
		t.Fatalf("FinalizeGuesses failed: %v", err)
	}

	if len(round.Correct) != 1 || round.Correct[0] != (Position{3, 3}) {
		t.Errorf("Expected one correct guess at (3,3), got %v", round.Correct)
	}
	if len(round.Incorrect) != 1 || round.Incorrect[0] != (Position{2, 2}) {
		t.Errorf("Expected one incorrect guess at (2,2), got %v", round.Incorrect)
	}
	if round.ScoreDelta != 5 {
		t.Errorf("Expected score delta +5, got %d", round.ScoreDelta)
	}
	if engine.GetScore() != 30 {
		t.Errorf("Expected score 30, got %d", engine.GetScore())
	}

	state := engine.GetState()
	if len(state.Guesses) != 0 {
		t.Errorf("Expected guesses cleared after finalize, got %v", state.Guesses)
	}
	if !containsPosition(state.Revealed, Position{3, 3}) {
		t.Error("Expected (3,3) to be revealed")
	}
	if len(state.GuessRounds) != 1 {
		t.Errorf("Expected 1 recorded round, got %d", len(state.GuessRounds))
	}

	// A revealed atom cannot be guessed or credited again
	_, err = engine.ToggleGuess(Position{3, 3})
	if !errors.Is(err, ErrInvalidGuess) {
		t.Errorf("Expected ErrInvalidGuess for revealed atom, got %v", err)
	}
}

func TestEngine_FinalizeGuesses_Empty(t *testing.T) {
	engine := createTestEngine(t, Position{3, 3})

	_, err := engine.FinalizeGuesses()
	if !errors.Is(err, ErrInvalidGuess) {
		t.Errorf("Expected ErrInvalidGuess with no staged guesses, got %v", err)
	}
}

func TestEngine_Victory(t *testing.T) {
	engine := createTestEngine(t, Position{3, 3}, Position{5, 5})

	for _, atom := range []Position{{3, 3}, {5, 5}} {
		if _, err := engine.ToggleGuess(atom); err != nil {
			t.Fatalf("ToggleGuess failed: %v", err)
		}
	}
	if _, err := engine.FinalizeGuesses(); err != nil {
		t.Fatalf("FinalizeGuesses failed: %v", err)
	}

	if !engine.IsGameOver() {
		t.Error("Expected game over after finding every atom")
	}
	if !engine.IsVictory() {
		t.Error("Expected victory")
	}
	if engine.GetPhase() != PhaseFinished {
		t.Errorf("Expected phase %s, got %s", PhaseFinished, engine.GetPhase())
	}

	// No further play once finished
	if _, err := engine.FireRay(Position{-1, 3}, DirRight); !errors.Is(err, ErrGameOver) {
		t.Errorf("Expected ErrGameOver, got %v", err)
	}
	if _, err := engine.ToggleGuess(Position{2, 2}); !errors.Is(err, ErrGameOver) {
		t.Errorf("Expected ErrGameOver, got %v", err)
	}
}

func TestEngine_LossOnScoreExhausted(t *testing.T) {
	config := createTestConfig()
	config.InitialScore = 2
	engine, err := NewEngineWithAtoms(config, []Position{{3, 3}})
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	if _, err := engine.FireRay(Position{-1, 0}, DirRight); err != nil {
		t.Fatalf("FireRay failed: %v", err)
	}
	if engine.IsGameOver() {
		t.Fatal("Game should survive with 1 point left")
	}

	if _, err := engine.FireRay(Position{-1, 1}, DirRight); err != nil {
		t.Fatalf("FireRay failed: %v", err)
	}

	if !engine.IsGameOver() {
		t.Error("Expected game over at score 0")
	}
	if engine.IsVictory() {
		t.Error("Expected loss, not victory")
	}
}

func TestEngine_LossBeatsVictoryInSameRound(t *testing.T) {
	config := createTestConfig()
	config.InitialScore = 5
	config.MinAtoms = 1
	config.MaxAtoms = 1
	engine, err := NewEngineWithAtoms(config, []Position{{3, 3}})
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	// One correct (+10) and three wrong (-15) guesses drain the score to
	// zero in the same round that reveals the last atom.
	for _, pos := range []Position{{3, 3}, {1, 1}, {1, 2}, {1, 3}} {
		if _, err := engine.ToggleGuess(pos); err != nil {
			t.Fatalf("ToggleGuess failed: %v", err)
		}
	}
	if _, err := engine.FinalizeGuesses(); err != nil {
		t.Fatalf("FinalizeGuesses failed: %v", err)
	}

	if !engine.IsGameOver() {
		t.Fatal("Expected game over")
	}
	if engine.IsVictory() {
		t.Error("Score exhaustion must take precedence over finding the last atom")
	}
}

func TestEngine_Reset(t *testing.T) {
	engine := createTestEngine(t, Position{3, 3}, Position{5, 5})

	if _, err := engine.FireRay(Position{-1, 0}, DirRight); err != nil {
		t.Fatalf("FireRay failed: %v", err)
	}
	if _, err := engine.FireRay(Position{-1, 1}, DirRight); err != nil {
		t.Fatalf("FireRay failed: %v", err)
	}

	state := engine.Reset()

	if state.Score != engine.GetConfig().InitialScore {
		t.Errorf("Expected score reset to %d, got %d", engine.GetConfig().InitialScore, state.Score)
	}
	if len(state.Rays) != 0 {
		t.Errorf("Expected per-board rays cleared, got %d", len(state.Rays))
	}
	if state.TotalRays != 2 {
		t.Errorf("Expected cumulative total of 2 rays, got %d", state.TotalRays)
	}
	if state.GameOver {
		t.Error("Expected fresh board not to be over")
	}

	record, err := engine.FireRay(Position{-1, 2}, DirRight)
	if err != nil {
		t.Fatalf("FireRay after reset failed: %v", err)
	}
	if record.Number != 3 {
		t.Errorf("Expected ray numbering to continue at 3, got %d", record.Number)
	}
}

func TestEngine_ManualSetup(t *testing.T) {
	config := createTestConfig()
	config.MinAtoms = 2
	config.MaxAtoms = 2
	engine, err := NewManualEngine(config)
	if err != nil {
		t.Fatalf("Failed to create manual engine: %v", err)
	}

	if engine.GetPhase() != PhaseSetup {
		t.Fatalf("Expected phase %s, got %s", PhaseSetup, engine.GetPhase())
	}

	// No play before the board is started
	if _, err := engine.FireRay(Position{-1, 2}, DirRight); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Expected ErrWrongPhase firing during setup, got %v", err)
	}
	if err := engine.Start(); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Expected ErrWrongPhase starting with no atoms, got %v", err)
	}

	if err := engine.PlaceAtom(Position{2, 2}); err != nil {
		t.Fatalf("PlaceAtom failed: %v", err)
	}
	if err := engine.PlaceAtom(Position{5, 5}); err != nil {
		t.Fatalf("PlaceAtom failed: %v", err)
	}

	if err := engine.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if engine.GetPhase() != PhaseActive {
		t.Errorf("Expected phase %s after start, got %s", PhaseActive, engine.GetPhase())
	}

	// Placement is locked once active
	if err := engine.PlaceAtom(Position{6, 6}); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Expected ErrWrongPhase placing after start, got %v", err)
	}

	record, err := engine.FireRay(Position{2, -1}, DirDown)
	if err != nil {
		t.Fatalf("FireRay failed: %v", err)
	}
	if record.Outcome != Hit {
		t.Errorf("Expected a hit on the manually placed atom, got %s", record.Outcome)
	}
}

func TestEngine_SetState(t *testing.T) {
	engine := createTestEngine(t, Position{3, 3})

	if err := engine.SetState(nil); err == nil {
		t.Error("Expected error for nil state")
	}

	saved := engine.GetState()
	fresh := createTestEngine(t, Position{4, 4})
	if err := fresh.SetState(saved); err != nil {
		t.Fatalf("SetState failed: %v", err)
	}
	if fresh.GetState() != saved {
		t.Error("Expected restored state to be installed")
	}
}

func TestGameState_PlayerView(t *testing.T) {
	engine := createTestEngine(t, Position{3, 3}, Position{5, 5})

	view := engine.GetState().PlayerView()
	if view.Atoms != nil {
		t.Errorf("Atoms must stay hidden while the game runs, got %v", view.Atoms)
	}
	if view.GridSize != 8 || view.Score != 25 {
		t.Error("PlayerView must keep the non-secret fields")
	}

	for _, atom := range []Position{{3, 3}, {5, 5}} {
		if _, err := engine.ToggleGuess(atom); err != nil {
			t.Fatalf("ToggleGuess failed: %v", err)
		}
	}
	if _, err := engine.FinalizeGuesses(); err != nil {
		t.Fatalf("FinalizeGuesses failed: %v", err)
	}

	view = engine.GetState().PlayerView()
	if len(view.Atoms) != 2 {
		t.Errorf("Atoms must be visible once the game is over, got %v", view.Atoms)
	}
}

func TestEngine_ObserverReceivesTrace(t *testing.T) {
	engine := createTestEngine(t, Position{3, 3})

	steps := 0
	engine.SetObserver(func(step TraceStep) {
		steps++
	})

	if _, err := engine.FireRay(Position{3, -1}, DirDown); err != nil {
		t.Fatalf("FireRay failed: %v", err)
	}
	if steps == 0 {
		t.Error("Expected observer to receive trace steps")
	}
}
