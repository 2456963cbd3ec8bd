// Command analyze prints quick, human-readable heuristics about game
// configuration files. For each config it simulates sample boards, fires
// every boundary ray, and summarizes the outcome distribution, which shows
// how informative a board of that density tends to be. It also flags
// configs whose boards are likely too sparse or too dense to be fun.
package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/blackbox-arcade/blackbox/game/engine"
)

// sampleBoardsPerConfig balances runtime against stable percentages.
const sampleBoardsPerConfig = 20

// rayStart pairs a boundary entry cell with its inward direction.
type rayStart struct {
	Entry     engine.Position
	Direction engine.Direction
}

// OutcomeStats aggregates ray outcomes across one or more boards.
type OutcomeStats struct {
	Total       int
	Counts      map[engine.Outcome]int
	Deflections int
	Cycles      int
}

// Rate returns the share of rays that ended with the given outcome.
func (s *OutcomeStats) Rate(outcome engine.Outcome) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Counts[outcome]) / float64(s.Total)
}

// boundaryEntries returns every valid ray start for a grid of the given
// size: each non-corner ring cell paired with the direction pointing into
// the grid.
func boundaryEntries(size int) []rayStart {
	board := engine.NewBoard(size)
	var starts []rayStart

	for i := 0; i < size; i++ {
		candidates := []engine.Position{
			{X: i, Y: -1},   // top edge, firing down
			{X: i, Y: size}, // bottom edge, firing up
			{X: -1, Y: i},   // left edge, firing right
			{X: size, Y: i}, // right edge, firing left
		}
		for _, pos := range candidates {
			if dir, ok := board.EntryDirection(pos); ok {
				starts = append(starts, rayStart{Entry: pos, Direction: dir})
			}
		}
	}

	return starts
}

// fireAllRays traces every boundary ray on the board and accumulates the
// outcomes into stats.
func fireAllRays(board *engine.Board, size int, stats *OutcomeStats) {
	for _, start := range boundaryEntries(size) {
		record, err := board.TraceRay(start.Entry, start.Direction, nil)
		if err != nil {
			stats.Cycles++
		}
		stats.Total++
		stats.Counts[record.Outcome]++
		stats.Deflections += record.Deflections
	}
}

// sampleOutcomes builds boards at the config's atom density and fires every
// boundary ray on each, returning the aggregated outcome distribution.
func sampleOutcomes(config *engine.GameConfig, samples int, rng *rand.Rand) *OutcomeStats {
	stats := &OutcomeStats{Counts: make(map[engine.Outcome]int)}

	for i := 0; i < samples; i++ {
		count := config.MinAtoms
		if config.MaxAtoms > config.MinAtoms {
			count += rng.Intn(config.MaxAtoms - config.MinAtoms + 1)
		}

		board := engine.NewBoard(config.GridSize)
		for _, atom := range engine.RandomAtoms(config.GridSize, count, rng) {
			if err := board.PlaceAtom(atom); err != nil {
				continue
			}
		}

		fireAllRays(board, config.GridSize, stats)
	}

	return stats
}

func analyzeConfig(path string, rng *rand.Rand) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		fmt.Printf("Skipping invalid config: %v\n", err)
		return
	}

	fmt.Printf("Name: %s (%s)\n", config.Name, config.Difficulty)
	fmt.Printf("Grid: %dx%d, %d boundary entries\n", config.GridSize, config.GridSize, 4*config.GridSize)
	fmt.Printf("Atoms: %d-%d\n", config.MinAtoms, config.MaxAtoms)
	if config.RayCost > 0 {
		fmt.Printf("Ray budget: %d rays from a starting score of %d\n", config.InitialScore/config.RayCost, config.InitialScore)
	} else {
		fmt.Printf("Ray budget: unlimited (starting score %d)\n", config.InitialScore)
	}

	stats := sampleOutcomes(&config, sampleBoardsPerConfig, rng)

	fmt.Printf("Ray outcomes over %d sampled boards (%d rays):\n", sampleBoardsPerConfig, stats.Total)
	fmt.Printf("  hit:              %5.1f%%\n", stats.Rate(engine.Hit)*100)
	fmt.Printf("  deflected:        %5.1f%%\n", stats.Rate(engine.Deflected)*100)
	fmt.Printf("  double deflected: %5.1f%%\n", stats.Rate(engine.DoubleDeflected)*100)
	fmt.Printf("  clean exit:       %5.1f%%\n", stats.Rate(engine.Exit)*100)
	if stats.Total > 0 {
		fmt.Printf("  avg deflections per ray: %.2f\n", float64(stats.Deflections)/float64(stats.Total))
	}
	if stats.Cycles > 0 {
		fmt.Printf("⚠️  WARNING: %d simulation cycles detected\n", stats.Cycles)
	}

	exitRate := stats.Rate(engine.Exit)
	hitRate := stats.Rate(engine.Hit)
	switch {
	case exitRate > 0.8:
		fmt.Printf("⚠️  WARNING: %.0f%% of rays exit untouched; boards this sparse give little information\n", exitRate*100)
	case hitRate > 0.5:
		fmt.Printf("⚠️  WARNING: %.0f%% of rays hit an atom; boards this dense are easy to brute force\n", hitRate*100)
	default:
		fmt.Printf("✅ Outcome mix looks balanced\n")
	}
}

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

	rng := rand.New(rand.NewSource(1))
	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		analyzeConfig(file, rng)
	}
}
