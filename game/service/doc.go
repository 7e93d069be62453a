// Package service provides the business logic layer for the bot colony
// simulation.
//
// The service package implements:
//   - Multi-session simulation management
//   - Configuration management and loading
//   - Turn processing with per-order failure reporting
//   - Session lifecycle management
//   - Event log reads
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the simulation engine, providing session isolation, configuration management,
// and business logic orchestration. Each session maintains its own engine
// instance with independent state. ProcessTurn calls are serialized service-wide
// because the engine is not safe for concurrent use.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	// Create a new session
//	sessionInfo, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Submit a turn
//	result, err := gameService.ProcessTurn(ctx, sessionInfo.ID, orders)
//
// Session Management:
//
// Sessions are identified by unique IDs and maintain independent game state.
// Multiple sessions can run concurrently with different configurations.
// Sessions track creation time and last access time for cleanup and debugging.
package service
