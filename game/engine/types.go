package engine

import "errors"

// Direction represents one of the four ray travel directions.
type Direction string

const (
	DirUp    Direction = "up"
	DirDown  Direction = "down"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

// Corner labels where an atom sits relative to a ray's current cell.
type Corner string

const (
	TopLeft     Corner = "top_left"
	TopRight    Corner = "top_right"
	BottomLeft  Corner = "bottom_left"
	BottomRight Corner = "bottom_right"
)

// Outcome classifies how a fired ray ended.
type Outcome string

const (
	// Hit means the ray was absorbed by an atom. No exit position.
	Hit Outcome = "hit"
	// Deflected means the ray bent at least once and left the grid.
	Deflected Outcome = "deflected"
	// DoubleDeflected means two or more atoms turned the ray straight back;
	// it exits where it entered.
	DoubleDeflected Outcome = "double_deflected"
	// Exit means the ray crossed the grid untouched.
	Exit Outcome = "exit"
)

// Phase tracks the lifecycle of a single board.
type Phase string

const (
	PhaseSetup    Phase = "setup"
	PhaseActive   Phase = "active"
	PhaseFinished Phase = "finished"
)

const (
	// Validation constants
	MinGridSize  = 4
	MaxGridSize  = 24
	MinAtomCount = 1

	// Default scoring, matching the classic rules
	DefaultInitialScore = 25
	DefaultRayCost      = 1
	DefaultGuessBonus   = 10
	DefaultGuessPenalty = 5

	MaxGuessesPerRound = 50
)

// Sentinel errors for game rule violations.
var (
	ErrOutOfBounds     = errors.New("position out of bounds")
	ErrDuplicateAtom   = errors.New("atom already placed at position")
	ErrInvalidEntry    = errors.New("invalid ray entry")
	ErrInvalidGuess    = errors.New("invalid guess position")
	ErrSimulationCycle = errors.New("ray simulation cycle detected")
	ErrGameOver        = errors.New("game is over")
	ErrWrongPhase      = errors.New("operation not allowed in current phase")
)

// Position represents x,y coordinates. Interior cells are [0,size) on both
// axes; the boundary ring sits one step outside on exactly one axis. Y grows
// downward.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Delta returns the unit step for the direction. Zero for unknown values.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	}
	return d
}

// ParseDirection converts a string into a Direction, rejecting unknown values.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case DirUp, DirDown, DirLeft, DirRight:
		return Direction(s), true
	}
	return "", false
}

// AdjacentAtom is an atom diagonally adjacent to a ray's current cell,
// labeled with the corner it occupies relative to that cell.
type AdjacentAtom struct {
	Position Position `json:"position"`
	Corner   Corner   `json:"corner"`
}

// RayRecord captures a single fired ray and its full traced path.
type RayRecord struct {
	Number      int        `json:"number"`
	Entry       Position   `json:"entry"`
	Direction   Direction  `json:"direction"`
	Outcome     Outcome    `json:"outcome"`
	Exit        *Position  `json:"exit,omitempty"`
	Deflections int        `json:"deflections"`
	Path        []Position `json:"path"`
	ScoreAfter  int        `json:"score_after"`
	Timestamp   int64      `json:"timestamp"`
}

// GuessRound records one finalized batch of guesses.
type GuessRound struct {
	Number     int        `json:"number"`
	Correct    []Position `json:"correct"`
	Incorrect  []Position `json:"incorrect"`
	ScoreDelta int        `json:"score_delta"`
	Timestamp  int64      `json:"timestamp"`
}

// GameConfig represents a difficulty configuration from JSON.
type GameConfig struct {
	Name                  string `json:"name"`
	Description           string `json:"description"`
	Difficulty            string `json:"difficulty"`
	GridSize              int    `json:"grid_size"`
	MinAtoms              int    `json:"min_atoms"`
	MaxAtoms              int    `json:"max_atoms"`
	InitialScore          int    `json:"initial_score"`
	RayCost               int    `json:"ray_cost"`
	CorrectGuessBonus     int    `json:"correct_guess_bonus"`
	IncorrectGuessPenalty int    `json:"incorrect_guess_penalty"`
	Messages              struct {
		Welcome          string `json:"welcome"`
		SetupPlaceAtoms  string `json:"setup_place_atoms"`
		RayFired         string `json:"ray_fired"`
		GuessToggled     string `json:"guess_toggled"`
		GuessesFinalized string `json:"guesses_finalized"`
		Victory          string `json:"victory"`
		OutOfPoints      string `json:"out_of_points"`
		ScoreStatus      string `json:"score_status"`
	} `json:"messages"`
}

// GameState represents the complete game state. Atoms holds the hidden
// solution; callers serving players must use PlayerView so positions stay
// secret until the game is over.
type GameState struct {
	GridSize    int          `json:"grid_size"`
	Phase       Phase        `json:"phase"`
	Score       int          `json:"score"`
	AtomCount   int          `json:"atom_count"`
	Atoms       []Position   `json:"atoms,omitempty"`
	Revealed    []Position   `json:"revealed"`
	Guesses     []Position   `json:"guesses"`
	Rays        []RayRecord  `json:"rays"`
	GuessRounds []GuessRound `json:"guess_rounds"`
	Message     string       `json:"message"`
	GameOver    bool         `json:"game_over"`
	Victory     bool         `json:"victory"`
	ConfigName  string       `json:"config_name"`

	// TotalRays counts rays fired across resets. Rays holds only the
	// current board's records and is cleared on reset.
	TotalRays int `json:"total_rays"`
}

// PlayerView returns a copy safe to show the player: atom positions are
// stripped while play is in progress. During setup the hider is the one
// looking at the board, and once the game is over the solution is public.
// Revealed atoms are always visible through the Revealed list since the
// player has already been credited for them.
func (s *GameState) PlayerView() *GameState {
	view := *s
	if s.Phase == PhaseActive {
		view.Atoms = nil
	}
	return &view
}

// containsPosition reports whether pos appears in the slice.
func containsPosition(positions []Position, pos Position) bool {
	for _, p := range positions {
		if p == pos {
			return true
		}
	}
	return false
}

// removePosition returns the slice with the first occurrence of pos removed.
func removePosition(positions []Position, pos Position) []Position {
	for i, p := range positions {
		if p == pos {
			return append(positions[:i], positions[i+1:]...)
		}
	}
	return positions
}
