package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsGameOver() bool
	IsVictory() bool
	GetScore() int
	GetPhase() Phase

	// Play operations
	FireRay(entry Position, dir Direction) (*RayRecord, error)
	ToggleGuess(pos Position) (bool, error)
	FinalizeGuesses() (*GuessRound, error)

	// Manual board setup
	PlaceAtom(pos Position) error
	Start() error

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error

	// History
	GetRayHistory() []RayRecord
	GetLastRay() *RayRecord

	// Observability
	SetObserver(observer TraceObserver)
}

// GameEngine implements the Engine interface
type GameEngine struct {
	state    *GameState
	config   *GameConfig
	observer TraceObserver
	rng      *rand.Rand
}

// NewEngine creates a new game engine with the provided configuration,
// hiding a random number of atoms at random cells. The board starts active.
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	engine := &GameEngine{
		config: config,
		rng:    newRNG(),
	}
	engine.state = engine.newBoardState()

	return engine, nil
}

// NewManualEngine creates an engine in the setup phase with an empty board.
// Atoms are placed with PlaceAtom and the game begins once Start is called
// with the configured count placed. This supports the variant where a second
// player hides the atoms.
func NewManualEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	engine := &GameEngine{
		config: config,
		rng:    newRNG(),
	}
	count := engine.rollAtomCount()
	engine.state = initGameState(config, nil, count, PhaseSetup)
	engine.state.Message = config.Messages.SetupPlaceAtoms

	return engine, nil
}

// NewEngineWithAtoms creates an active engine with a fixed atom layout.
// Used by tests and persistence restore paths that need determinism.
func NewEngineWithAtoms(config *GameConfig, atoms []Position) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	board := NewBoard(config.GridSize)
	for _, atom := range atoms {
		if err := board.PlaceAtom(atom); err != nil {
			return nil, err
		}
	}

	engine := &GameEngine{
		config: config,
		rng:    newRNG(),
	}
	engine.state = initGameState(config, board.Atoms, len(atoms), PhaseActive)

	return engine, nil
}

// NewEngineWithDefaults creates a new game engine with the classic default
// configuration.
func NewEngineWithDefaults() *GameEngine {
	engine := &GameEngine{
		config: DefaultGameConfig(),
		rng:    newRNG(),
	}
	engine.state = engine.newBoardState()
	return engine
}

// newRNG seeds a private random source. Each engine keeps its own so
// concurrent sessions never contend on the global source.
func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// rollAtomCount picks the atom count uniformly within the configured range.
func (e *GameEngine) rollAtomCount() int {
	return e.config.MinAtoms + e.rng.Intn(e.config.MaxAtoms-e.config.MinAtoms+1)
}

// newBoardState builds a fresh active state with random atoms.
func (e *GameEngine) newBoardState() *GameState {
	count := e.rollAtomCount()
	atoms := RandomAtoms(e.config.GridSize, count, e.rng)
	return initGameState(e.config, atoms, count, PhaseActive)
}

// board returns the geometric view of the current state.
func (e *GameEngine) board() *Board {
	return &Board{Size: e.state.GridSize, Atoms: e.state.Atoms}
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState sets the game state (used for persistence loading)
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if state.GridSize < MinGridSize {
		return fmt.Errorf("state grid_size %d below minimum %d", state.GridSize, MinGridSize)
	}
	e.state = state
	return nil
}

// Reset starts a fresh board with new random atoms. Cumulative ray totals
// survive the reset; the per-board ray list and guess rounds do not.
func (e *GameEngine) Reset() *GameState {
	prevTotal := e.state.TotalRays

	e.state = e.newBoardState()
	e.state.TotalRays = prevTotal

	return e.state
}

// IsGameOver returns whether the game is over
func (e *GameEngine) IsGameOver() bool {
	return e.state.GameOver
}

// IsVictory returns whether the player has won
func (e *GameEngine) IsVictory() bool {
	return e.state.Victory
}

// GetScore returns the current score
func (e *GameEngine) GetScore() int {
	return e.state.Score
}

// GetPhase returns the current board lifecycle phase
func (e *GameEngine) GetPhase() Phase {
	return e.state.Phase
}

// SetObserver installs a callback notified on every ray simulation step.
func (e *GameEngine) SetObserver(observer TraceObserver) {
	e.observer = observer
}

// PlaceAtom hides an atom at pos during manual setup.
func (e *GameEngine) PlaceAtom(pos Position) error {
	if e.state.Phase != PhaseSetup {
		return fmt.Errorf("%w: atoms can only be placed during setup", ErrWrongPhase)
	}

	board := e.board()
	if err := board.PlaceAtom(pos); err != nil {
		return err
	}
	e.state.Atoms = board.Atoms
	return nil
}

// Start activates a manually set up board once the configured number of
// atoms has been placed.
func (e *GameEngine) Start() error {
	if e.state.Phase != PhaseSetup {
		return fmt.Errorf("%w: board already started", ErrWrongPhase)
	}
	if len(e.state.Atoms) != e.state.AtomCount {
		return fmt.Errorf("%w: %d of %d atoms placed", ErrWrongPhase, len(e.state.Atoms), e.state.AtomCount)
	}

	e.state.Phase = PhaseActive
	e.state.Message = e.config.Messages.Welcome
	return nil
}

// FireRay charges the ray cost, traces a ray from the boundary entry cell
// and records the result. The cost is charged whether or not the ray finds
// anything. Firing the same entry twice is allowed and costs again.
func (e *GameEngine) FireRay(entry Position, dir Direction) (*RayRecord, error) {
	if e.state.GameOver {
		return nil, ErrGameOver
	}
	if e.state.Phase != PhaseActive {
		return nil, fmt.Errorf("%w: rays require an active board", ErrWrongPhase)
	}

	board := e.board()
	inward, ok := board.EntryDirection(entry)
	if !ok {
		return nil, fmt.Errorf("%w: (%d,%d) is not a boundary cell", ErrInvalidEntry, entry.X, entry.Y)
	}
	if dir != inward {
		return nil, fmt.Errorf("%w: direction %s does not point into the grid from (%d,%d)", ErrInvalidEntry, dir, entry.X, entry.Y)
	}

	e.state.Score -= e.config.RayCost

	record, traceErr := board.TraceRay(entry, dir, e.observer)
	record.Number = e.state.TotalRays + 1
	record.ScoreAfter = e.state.Score
	record.Timestamp = time.Now().Unix()

	e.state.Rays = append(e.state.Rays, *record)
	e.state.TotalRays++
	e.state.Message = fmt.Sprintf(e.config.Messages.RayFired, record.Outcome)

	e.checkTermination()

	return record, traceErr
}

// ToggleGuess stages or unstages a guess at an interior cell and returns
// whether the guess is active afterwards. Guesses carry no score change
// until finalized. Cells already revealed as atoms cannot be guessed again.
func (e *GameEngine) ToggleGuess(pos Position) (bool, error) {
	if e.state.GameOver {
		return false, ErrGameOver
	}
	if e.state.Phase != PhaseActive {
		return false, fmt.Errorf("%w: guesses require an active board", ErrWrongPhase)
	}

	board := e.board()
	if !board.IsInterior(pos) {
		return false, fmt.Errorf("%w: (%d,%d) is not an interior cell", ErrInvalidGuess, pos.X, pos.Y)
	}
	if containsPosition(e.state.Revealed, pos) {
		return false, fmt.Errorf("%w: atom at (%d,%d) already revealed", ErrInvalidGuess, pos.X, pos.Y)
	}

	if containsPosition(e.state.Guesses, pos) {
		e.state.Guesses = removePosition(e.state.Guesses, pos)
		return false, nil
	}

	if len(e.state.Guesses) >= MaxGuessesPerRound {
		return false, fmt.Errorf("%w: at most %d guesses per round", ErrInvalidGuess, MaxGuessesPerRound)
	}
	e.state.Guesses = append(e.state.Guesses, pos)
	return true, nil
}

// FinalizeGuesses scores the staged guesses. Each atom earns the bonus at
// most once per game; every wrong guess costs the penalty. The staged set is
// cleared afterwards whatever the result.
func (e *GameEngine) FinalizeGuesses() (*GuessRound, error) {
	if e.state.GameOver {
		return nil, ErrGameOver
	}
	if e.state.Phase != PhaseActive {
		return nil, fmt.Errorf("%w: guesses require an active board", ErrWrongPhase)
	}
	if len(e.state.Guesses) == 0 {
		return nil, fmt.Errorf("%w: no guesses staged", ErrInvalidGuess)
	}

	board := e.board()
	round := &GuessRound{
		Number:    len(e.state.GuessRounds) + 1,
		Timestamp: time.Now().Unix(),
	}

	for _, guess := range e.state.Guesses {
		if board.AtomAt(guess) && !containsPosition(e.state.Revealed, guess) {
			round.Correct = append(round.Correct, guess)
			round.ScoreDelta += e.config.CorrectGuessBonus
			e.state.Revealed = append(e.state.Revealed, guess)
		} else {
			round.Incorrect = append(round.Incorrect, guess)
			round.ScoreDelta -= e.config.IncorrectGuessPenalty
		}
	}

	e.state.Score += round.ScoreDelta
	e.state.Guesses = nil
	e.state.GuessRounds = append(e.state.GuessRounds, *round)
	e.state.Message = fmt.Sprintf(e.config.Messages.GuessesFinalized, len(round.Correct), len(round.Correct)+len(round.Incorrect))

	e.checkTermination()

	return round, nil
}

// checkTermination ends the game when the score runs out or every atom has
// been found. The score check runs first: finding the last atom while the
// score is at or below zero is still a loss.
func (e *GameEngine) checkTermination() {
	if e.state.GameOver {
		return
	}

	if e.state.Score <= 0 {
		e.state.GameOver = true
		e.state.Victory = false
		e.state.Phase = PhaseFinished
		e.state.Message = e.config.Messages.OutOfPoints
		return
	}

	if e.state.AtomCount > 0 && len(e.state.Revealed) == e.state.AtomCount {
		e.state.GameOver = true
		e.state.Victory = true
		e.state.Phase = PhaseFinished
		e.state.Message = fmt.Sprintf(e.config.Messages.Victory, e.state.Score)
	}
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and starts a fresh board
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}

	e.config = config
	e.state = e.newBoardState()
	return nil
}

// GetRayHistory returns the rays fired on the current board
func (e *GameEngine) GetRayHistory() []RayRecord {
	return e.state.Rays
}

// GetLastRay returns the last ray fired, or nil if none
func (e *GameEngine) GetLastRay() *RayRecord {
	if len(e.state.Rays) == 0 {
		return nil
	}
	return &e.state.Rays[len(e.state.Rays)-1]
}
