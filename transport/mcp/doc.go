// Package mcp provides a Model Context Protocol interface for the colony
// simulation.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for simulation operations
//   - Thin HTTP proxying to the REST API
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_state: Get the current snapshot with an ASCII grid rendering
//   - process_turn: Submit a batch of controller orders
//   - event_log: Retrieve the simulation event log
//   - describe_cell: Inspect one grid cell's assets, countdowns, and bots
//   - create_session: Create new session with config selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_configs: List available configurations
//   - game_instructions: Full rules and strategy reference
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// Architecture:
//
// The client holds no game state. Every tool call is translated into a REST
// call against the API server, and the JSON responses are reformatted into
// text an agent can read at a glance. Running the MCP interface against a
// remote deployment only requires its base URL.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Autonomously run colonies
//   - Program bot decks and test strategies
//   - Analyze snapshots and the event log
//   - Manage multiple simulation sessions
package mcp
