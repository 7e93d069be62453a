// Package api provides HTTP REST API handlers for the colony simulation.
//
// The api package implements:
//   - RESTful endpoints for turn submission and state inspection
//   - Session management endpoints
//   - Configuration listing, retrieval, and upload
//   - WebSocket upgrade handling for the live state feed
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session (optional config_id in body)
//   - GET /api/sessions - List all sessions (sort, order, limit query params)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Remove a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Full snapshot of the simulation
//   - POST /api/sessions/{id}/turn - Submit a batch of controller orders
//   - GET /api/sessions/{id}/events - Event log, newest-first tail via ?limit=
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - GET /api/configs/{name} - Get a configuration by ID
//   - POST /api/configs - Save a new configuration
//
// Request/Response Format:
//
// All endpoints accept and return JSON. A turn is submitted as:
//
//	{
//	  "orders": [
//	    {"controller_id": 0, "action_type": "TAKE_BOT_ACTIONS",
//	     "parameters": {"energy_points": 3}},
//	    {"controller_id": 0, "action_type": "CREATE_BOT", "parameters": {}}
//	  ]
//	}
//
// The response carries the turn report (clock, status, per-order failures)
// and the post-turn snapshot. Order failures do not fail the request; they
// are listed in report.failures with the index of the offending order.
//
// Usage:
//
//	server := api.NewServer(gameService, hub, logger)
//	http.ListenAndServe(":8080", server)
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
