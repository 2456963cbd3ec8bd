// Package config provides configuration management for the Black Box game.
//
// The config package handles:
//   - Loading difficulty configurations from JSON files
//   - Configuration validation and verification
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - Grid size and the hidden atom count range
//   - Scoring parameters (initial score, ray cost, guess bonus and penalty)
//   - Game messages for various events
//
// Available Configurations:
//
// The package ships with the standard difficulty tiers:
//   - easy: 6x6 grid hiding 3 to 4 atoms
//   - medium: 8x8 grid hiding 4 to 5 atoms
//   - hard: 10x10 grid hiding 5 to 6 atoms
//   - classic: the traditional 8x8 rules
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	gameConfig, err := manager.LoadConfig("easy")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
package config
