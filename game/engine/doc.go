// Package engine implements the Bot Colony simulation: a turn-based
// colony-survival game on a 2D grid.
//
// The engine package implements the game mechanics including:
//   - The spatial grid of cells holding bots and assets
//   - Deck-driven bot actions (MOVE, HARVEST, PLANT) with collision
//     destruction and cyclic deck rotation
//   - The resource economy (MINERAL, BIOMASS, ENERGY) and asset maturation
//   - The turn/time state machine: hour budgets, day rollover, controller
//     orders, elimination, and victory conditions
//   - The append-only event log and the snapshot read boundary
//
// Core Types:
//
// The Engine interface defines the contract for hosting layers, implemented
// by GameEngine. GameConfig defines the map, costs, victory conditions, and
// initial state loaded from JSON (or YAML via the config manager). Snapshot
// is the complete, mutation-free read-out consumed by presentation layers.
//
// Usage:
//
//	config, err := engine.LoadGameConfig("configs/classic.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	game, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	points := 2
//	report := game.ProcessTurn([]engine.Order{{
//		ControllerID: 0,
//		Action:       engine.TakeBotActions,
//		Parameters:   engine.OrderParameters{EnergyPoints: &points},
//	}})
//	snap := game.Snapshot()
//
// Game Rules:
//
// Each controller spends a shared hour budget per day to let bots act,
// reprogram decks, or build new bots. Bots execute the head card of their
// rotating deck; moving onto an occupied cell destroys every bot involved.
// Harvested assets convert to resources; planted seedlings mature at day
// boundaries. A controller whose ENERGY reaches zero is eliminated; the
// first controller to meet every victory threshold wins.
//
// Concurrency:
//
// A GameEngine is single-threaded mutable state with no internal locking.
// Hosts must serialize ProcessTurn calls per engine instance; the service
// layer in this repository does exactly that.
package engine
