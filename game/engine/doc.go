// Package engine provides the core game logic for the Black Box deduction game.
//
// The engine package implements the game mechanics including:
//   - Grid and boundary coordinate model with atom placement
//   - Ray simulation (hits, deflections, detours, exits)
//   - Score tracking, guess rounds and win/loss conditions
//   - Game state management and persistence
//   - Configuration loading and validation
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState represents the current game state,
// while GameConfig defines the difficulty rules loaded from JSON files.
// Board is the pure geometric view used by the ray simulator.
//
// Usage:
//
//	config, err := engine.LoadConfigByName("medium")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Fire a ray from the left edge of row 2
//	record, err := gameEngine.FireRay(engine.Position{X: -1, Y: 2}, engine.DirRight)
//	state := gameEngine.GetState()
//
// Game Rules:
//
// A number of atoms are hidden on the interior grid. The player fires rays
// from the boundary ring; each ray is absorbed by a direct hit, deflected 90
// degrees by a single diagonally adjacent atom, or turned straight back by
// two or more. Rays cost points, correct atom guesses earn points, wrong
// guesses lose points. The game ends in victory when every atom has been
// found, or in defeat when the score runs out.
package engine
