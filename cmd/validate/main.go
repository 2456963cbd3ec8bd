// Command validate provides a small CLI that validates game configuration JSON
// files in a configs directory. It checks:
//   - JSON structure and required fields
//   - Grid size within engine limits
//   - Atom range against the placeable inner band of the grid
//   - Scoring values (initial score, ray cost, guess bonus and penalty)
//   - Required message keys and their format verbs
//   - Playability: the ray budget must allow a reasonable number of probes
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blackbox-arcade/blackbox/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file.
// Structural checks are delegated to the engine; playability heuristics
// are layered on top.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	// Playability checks on top of structural validation
	playability := validatePlayability(&config)
	result.Errors = append(result.Errors, playability.Errors...)
	if !playability.Valid {
		result.Valid = false
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Difficulty: %s", config.Difficulty))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d (%d boundary entries)", config.GridSize, config.GridSize, 4*config.GridSize))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Atoms: %d-%d", config.MinAtoms, config.MaxAtoms))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Scoring: start %d, ray -%d, correct +%d, wrong -%d",
			config.InitialScore, config.RayCost, config.CorrectGuessBonus, config.IncorrectGuessPenalty))
	}

	return result
}

// validatePlayability checks that the scoring parameters leave the player
// enough room to actually solve the board. A config where the score runs out
// before the player can probe each atom even once is unwinnable in practice.
func validatePlayability(config *engine.GameConfig) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	if config.RayCost > 0 {
		rayBudget := config.InitialScore / config.RayCost
		if rayBudget < config.GridSize {
			result.Valid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("Playability failure: ray budget %d is below grid size %d, the board cannot be probed", rayBudget, config.GridSize))
		} else {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Ray budget: %d rays before running out of points", rayBudget))
		}
	} else {
		result.Errors = append(result.Errors, "✓ Ray budget: unlimited (ray_cost is 0)")
	}

	if config.IncorrectGuessPenalty > 0 {
		margin := config.InitialScore / config.IncorrectGuessPenalty
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Wrong-guess margin: %d misses from a full score", margin))
	}

	return result
}

// main scans the configs directory for *.json files and validates each one,
// printing a concise report and exiting with non-zero status if any are
// invalid. The directory defaults to "configs" and can be overridden by a
// positional argument or the CONFIG_DIR environment variable.
func main() {
	configDir := "configs"
	if envDir := os.Getenv("CONFIG_DIR"); envDir != "" {
		configDir = envDir
	}
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	if len(files) == 0 {
		fmt.Printf("No config files found in %s\n", configDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
