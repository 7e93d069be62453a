// Package config provides configuration management for the bot colony
// simulation.
//
// The config package handles:
//   - Loading game configurations from JSON and YAML files
//   - Configuration validation and verification
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations are stored as .json, .yaml, or .yml files in the
// configs directory. YAML files use the same field names as the JSON wire
// format. Each configuration defines:
//   - Map dimensions
//   - Economy parameters (seedling maturity time, bot and deck costs)
//   - Victory conditions per resource type
//   - The initial asset placement (uniform, empty, or an explicit list)
//   - Controllers with starting resources and pre-programmed bots
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	gameConfig, err := manager.LoadConfig("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
//
// Validation:
//
// All configurations are validated with engine.ValidateGameConfig before they
// are cached or saved: map bounds, cost and maturity ranges, resource and
// asset names, bot positions, and deck card specs.
package config
