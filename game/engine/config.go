package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateGameConfig validates a game configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	// Validate difficulty label
	switch config.Difficulty {
	case "easy", "medium", "hard", "custom":
	default:
		return fmt.Errorf("config validation: difficulty must be easy, medium, hard or custom, got '%s'", config.Difficulty)
	}

	// Validate grid size
	if config.GridSize < MinGridSize || config.GridSize > MaxGridSize {
		return fmt.Errorf("config validation: grid_size must be between %d and %d, got %d", MinGridSize, MaxGridSize, config.GridSize)
	}

	// Validate atom range. Random placement keeps a one-cell margin, so the
	// inner band caps how many atoms fit.
	innerCapacity := (config.GridSize - 2) * (config.GridSize - 2)
	if config.MinAtoms < MinAtomCount {
		return fmt.Errorf("config validation: min_atoms must be at least %d, got %d", MinAtomCount, config.MinAtoms)
	}
	if config.MaxAtoms < config.MinAtoms {
		return fmt.Errorf("config validation: max_atoms (%d) cannot be below min_atoms (%d)", config.MaxAtoms, config.MinAtoms)
	}
	if config.MaxAtoms > innerCapacity {
		return fmt.Errorf("config validation: max_atoms (%d) exceeds the %d placeable cells of a %dx%d grid",
			config.MaxAtoms, innerCapacity, config.GridSize, config.GridSize)
	}

	// Validate scoring
	if config.InitialScore <= 0 {
		return fmt.Errorf("config validation: initial_score must be positive, got %d", config.InitialScore)
	}
	if config.RayCost < 0 {
		return fmt.Errorf("config validation: ray_cost cannot be negative, got %d", config.RayCost)
	}
	if config.CorrectGuessBonus < 0 {
		return fmt.Errorf("config validation: correct_guess_bonus cannot be negative, got %d", config.CorrectGuessBonus)
	}
	if config.IncorrectGuessPenalty < 0 {
		return fmt.Errorf("config validation: incorrect_guess_penalty cannot be negative, got %d", config.IncorrectGuessPenalty)
	}

	// Validate messages
	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.Victory == "" {
		return fmt.Errorf("config validation: messages.victory is required")
	}
	if config.Messages.OutOfPoints == "" {
		return fmt.Errorf("config validation: messages.out_of_points is required")
	}

	// Validate format strings
	if !strings.Contains(config.Messages.Victory, "%d") {
		return fmt.Errorf("config validation: messages.victory must contain %%d for the final score")
	}
	if config.Messages.RayFired != "" && !strings.Contains(config.Messages.RayFired, "%s") {
		return fmt.Errorf("config validation: messages.ray_fired must contain %%s for the outcome")
	}
	if config.Messages.ScoreStatus != "" && !strings.Contains(config.Messages.ScoreStatus, "%d") {
		return fmt.Errorf("config validation: messages.score_status must contain %%d for the score")
	}

	return nil
}

// LoadGameConfig loads a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		// If filename starts with "configs/", replace with CONFIG_DIR
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Validate the loaded configuration
	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigByName loads a game configuration by name from the configs directory
func LoadConfigByName(configName string) (*GameConfig, error) {
	// Add .json extension if not present
	if !strings.HasSuffix(configName, ".json") {
		configName = configName + ".json"
	}

	configPath := filepath.Join("configs", configName)
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		configPath = filepath.Join(configDir, configName)
	}

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file '%s' not found", configName)
	}

	// Load and parse the config
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %v", configName, err)
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %v", configName, err)
	}

	// Validate the config
	if err := ValidateGameConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config '%s': %v", configName, err)
	}

	return &config, nil
}

// DefaultGameConfig returns the classic 8x8 rules used when no configuration
// is provided.
func DefaultGameConfig() *GameConfig {
	config := &GameConfig{
		Name:                  "Classic",
		Description:           "Classic Black Box on an 8x8 grid",
		Difficulty:            "custom",
		GridSize:              8,
		MinAtoms:              4,
		MaxAtoms:              5,
		InitialScore:          DefaultInitialScore,
		RayCost:               DefaultRayCost,
		CorrectGuessBonus:     DefaultGuessBonus,
		IncorrectGuessPenalty: DefaultGuessPenalty,
	}
	config.Messages.Welcome = "Welcome to Black Box! Fire rays from the edges to find the hidden atoms."
	config.Messages.SetupPlaceAtoms = "Place your atoms, then start the game."
	config.Messages.RayFired = "Ray result: %s"
	config.Messages.GuessToggled = "Guess updated"
	config.Messages.GuessesFinalized = "Guesses checked: %d of %d correct"
	config.Messages.Victory = "Victory! All atoms found with %d points left!"
	config.Messages.OutOfPoints = "Out of points! Game Over!"
	config.Messages.ScoreStatus = "Score: %d"
	return config
}

// initGameState creates a new game state for the provided configuration,
// atom layout and starting phase.
func initGameState(config *GameConfig, atoms []Position, atomCount int, phase Phase) *GameState {
	return &GameState{
		GridSize:    config.GridSize,
		Phase:       phase,
		Score:       config.InitialScore,
		AtomCount:   atomCount,
		Atoms:       atoms,
		Revealed:    []Position{},
		Guesses:     []Position{},
		Rays:        []RayRecord{},
		GuessRounds: []GuessRound{},
		Message:     config.Messages.Welcome,
		GameOver:    false,
		Victory:     false,
		ConfigName:  config.Name,
		TotalRays:   0,
	}
}

// InitGameStateFromConfig creates a new active game state using the provided
// configuration, hiding atoms at random. A nil config uses the defaults.
func InitGameStateFromConfig(config *GameConfig) *GameState {
	if config == nil {
		config = DefaultGameConfig()
	}

	engine := &GameEngine{config: config}
	engine.rng = newRNG()
	return engine.newBoardState()
}
