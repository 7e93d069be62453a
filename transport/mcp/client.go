package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/crashsite/botcolony/game/engine"
	"github.com/crashsite/botcolony/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Bot Colony Simulation",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Bot Colony Simulation - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Run a colony of bots on a shared grid. Bots follow preprogrammed decks of
cards (MOVE/HARVEST/PLANT) when you spend energy points on them. Accumulate
resources until your stockpile meets every victory condition.

AVAILABLE TOOLS:
- game_state: Get the current simulation snapshot with an ASCII grid
- process_turn: Submit a batch of controller orders - requires intent explanation
- event_log: View the simulation event log
- create_session: Create new simulation session
- get_session: Get session details
- list_sessions: List all active sessions
- list_configs: List available configurations
- game_instructions: Get comprehensive rules and strategy notes
- describe_cell: Get detailed info about a specific grid cell (assets, bots, countdowns)

NOTE: The 'intent' parameter on process_turn serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new simulation session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the config to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active simulation sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current simulation state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "process_turn",
		Description: "Submit a batch of controller orders as one simulation turn. Each order is {controller_id, action_type, parameters}. Action types: TAKE_BOT_ACTIONS (parameters.energy_points), MODIFY_DECK (parameters.bot_id plus cards or removed_ids), CREATE_BOT (no parameters).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"orders": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
					},
					"description": "Array of controller orders, applied in sequence",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this turn (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "orders"},
		},
	}, c.handleProcessTurn)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "event_log",
		Description: "Get the event log for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Return only the newest N events",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleEventLog)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available simulation configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive simulation rules and strategy notes",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Get detailed information about a specific cell in the grid: assets with amounts, seedling countdowns, and bots present.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate (column) of the cell to describe (0-based)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate (row) of the cell to describe (0-based)",
				},
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handleDescribeCell)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n", session.ID, session.ConfigName)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Config: %s, Created: %s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var snapshot engine.Snapshot
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &snapshot)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSnapshot(&snapshot)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleProcessTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	// The orders payload is forwarded verbatim; the server validates it
	body := map[string]interface{}{
		"orders": args["orders"],
	}

	var result service.TurnResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/turn", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatTurnResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleEventLog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	path := fmt.Sprintf("/api/sessions/%s/events", sessionID)
	if limit, ok := args["limit"].(float64); ok {
		path += fmt.Sprintf("?limit=%d", int(limit))
	}

	var events service.EventsResponse
	err := c.apiCall("GET", path, nil, &events)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatEvents(&events)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Grid: %dx%d, Controllers: %d\n\n",
			config.Name, config.ConfigID, config.Description,
			config.MapWidth, config.MapHeight, config.Controllers)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Bot Colony Simulation - Complete Instructions

GAME OBJECTIVE:
Program bots with decks of action cards and spend energy to run them. Grow
your stockpile of MINERAL, BIOMASS, and ENERGY until every victory condition
is met. The clock runs in hours; most orders cost hours as well as resources.

SIMULATION MECHANICS:
• Turn: submit a batch of controller orders; each order is validated, priced,
  and applied in sequence. A failed order is skipped, later orders still run.
• TAKE_BOT_ACTIONS: spend N energy points; each point makes one randomly
  chosen bot play its next deck card. Costs 1 hour per point. Funding is
  checked against your total resources, but the deduction comes out of
  ENERGY, which can go negative.
• MODIFY_DECK: append cards to a bot's deck or remove cards by index.
  Costs BIOMASS (charged once per order) and 1 hour.
• CREATE_BOT: build a new bot with an empty deck at your starting position.
  Cost is split proportionally across all three resources. Costs 6 hours.
• Maturation: seedlings planted by PLANT cards count down and turn into
  harvestable deposits.
• Collision: a bot moving into a cell occupied by another bot destroys BOTH.
• Elimination: a controller whose total resources reach zero or below is
  removed from the simulation along with all its bots.

CARD TYPES:
• MOVE <NORTH|SOUTH|EAST|WEST>: step one cell; leaving the grid destroys the bot
• HARVEST <ORE|PLANT|COAL>: collect one unit from a matching deposit on the
  bot's cell (ORE yields MINERAL, PLANT yields BIOMASS, COAL yields ENERGY)
• PLANT <ORE|PLANT|COAL>: pay one unit of the matching resource to place a
  seedling on the bot's cell

GRID LEGEND (game_state output, one character per cell):
• B - bot (a digit instead of B when a single controller's bot, showing its owner)
• O - ORE deposit
• P - PLANT deposit
• C - COAL deposit
• o / p / c - growing seedling of the matching type
• . - empty cell

AI AGENTS - STRATEGY NOTES:
• Decks loop: a bot plays its cards round-robin, so design repeating patterns
  (move out, harvest, move back, plant).
• Energy points pick bots at random. With multiple bots, issue enough points
  for every bot to make progress.
• Watch the hour budget: TAKE_BOT_ACTIONS costs an hour per point and days
  roll over. An order that does not fit in the current day is rejected.
• ENERGY can go negative from TAKE_BOT_ACTIONS deductions. If your total
  stockpile hits zero you are eliminated, so keep harvesting COAL.
• Plant before you harvest a deposit dry: deposits are finite, seedlings are
  the only way to renew them.
• Use describe_cell when the single-character grid is ambiguous; cells can
  hold several assets and bots at once.

ORDER FORMAT (process_turn):
{
  "orders": [
    {"controller_id": 0, "action_type": "TAKE_BOT_ACTIONS",
     "parameters": {"energy_points": 3}},
    {"controller_id": 0, "action_type": "MODIFY_DECK",
     "parameters": {"bot_id": 1, "cards": [
       {"action_type": "MOVE", "parameter": "NORTH"},
       {"action_type": "HARVEST", "parameter": "ORE"}]}},
    {"controller_id": 0, "action_type": "CREATE_BOT", "parameters": {}}
  ]
}

VICTORY CONDITIONS:
- Defined per configuration as minimum resource totals
- Every listed resource threshold must be met simultaneously
- The simulation stops accepting orders once a victor is declared

SESSION MANAGEMENT:
- Multiple simulation sessions can run simultaneously
- Each session has a unique 8-character ID
- Sessions maintain independent state and configuration
- Use session-specific tools for multi-game management

Remember: the deck is the program and energy points are the CPU time. Write
decks that survive being executed at random, and never let ENERGY run dry!`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	x := int(args["x"].(float64))
	y := int(args["y"].(float64))

	var snapshot engine.Snapshot
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &snapshot)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if x < 0 || x >= snapshot.MapSize.Width || y < 0 || y >= snapshot.MapSize.Height {
		return mcp.NewToolResultError(fmt.Sprintf("Coordinates (%d, %d) are out of bounds. Grid size is %dx%d",
			x, y, snapshot.MapSize.Width, snapshot.MapSize.Height)), nil
	}

	cell := snapshot.Map[y][x]

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Cell at position (%d, %d):\n", x, y))
	b.WriteString(fmt.Sprintf("Display character: %s\n", cellChar(&cell)))

	if len(cell.Assets) == 0 {
		b.WriteString("Assets: none\n")
	} else {
		b.WriteString("Assets:\n")
		for _, asset := range cell.Assets {
			if asset.MaturityTime != nil {
				b.WriteString(fmt.Sprintf("- %s (matures in %d days)\n", asset.Type, *asset.MaturityTime))
			} else {
				b.WriteString(fmt.Sprintf("- %s x%d\n", asset.Type, asset.Amount))
			}
		}
	}

	if len(cell.Bots) == 0 {
		b.WriteString("Bots: none\n")
	} else {
		b.WriteString("Bots:\n")
		for _, bot := range cell.Bots {
			b.WriteString(fmt.Sprintf("- controller %d\n", bot.ControllerID))
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatSnapshot(session.Snapshot))
}

func formatSnapshot(snapshot *engine.Snapshot) string {
	if snapshot == nil {
		return "No simulation state available"
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("Day %d, Hour %d/%d | Status: %s\n",
		snapshot.Day, snapshot.Hour, snapshot.HoursPerDay, snapshot.State))

	if len(snapshot.Victors) > 0 {
		result.WriteString(fmt.Sprintf("Victors: %v\n", snapshot.Victors))
	}

	result.WriteString("\nVictory conditions:")
	for resource, amount := range snapshot.VictoryConditions {
		result.WriteString(fmt.Sprintf(" %s>=%d", resource, amount))
	}
	result.WriteString("\n")

	for _, controller := range snapshot.Controllers {
		result.WriteString(fmt.Sprintf("\nController %d: MINERAL=%d BIOMASS=%d ENERGY=%d, %d bot(s)\n",
			controller.ID,
			controller.Resources["MINERAL"],
			controller.Resources["BIOMASS"],
			controller.Resources["ENERGY"],
			len(controller.Bots)))
		for i, bot := range controller.Bots {
			labels := make([]string, 0, len(bot.Deck))
			for _, card := range bot.Deck {
				labels = append(labels, card.Label)
			}
			deck := strings.Join(labels, " ")
			if deck == "" {
				deck = "(empty deck)"
			}
			result.WriteString(fmt.Sprintf("  bot %d at (%d,%d): %s\n",
				i, bot.Position.X, bot.Position.Y, deck))
		}
	}

	result.WriteString("\nGrid:\n")
	for y := 0; y < snapshot.MapSize.Height; y++ {
		for x := 0; x < snapshot.MapSize.Width; x++ {
			cell := snapshot.Map[y][x]
			result.WriteString(cellChar(&cell))
		}
		result.WriteString("\n")
	}

	return result.String()
}

// cellChar picks a single display character for a cell. Bots win over
// assets; a bot cell shows the owning controller's ID when unambiguous.
func cellChar(cell *engine.CellSnapshot) string {
	if len(cell.Bots) > 0 {
		owner := cell.Bots[0].ControllerID
		for _, bot := range cell.Bots[1:] {
			if bot.ControllerID != owner {
				return "B"
			}
		}
		if owner >= 0 && owner <= 9 {
			return fmt.Sprintf("%d", owner)
		}
		return "B"
	}
	if len(cell.Assets) == 0 {
		return "."
	}
	switch engine.AssetType(cell.Assets[0].Type) {
	case engine.AssetOre:
		return "O"
	case engine.AssetPlant:
		return "P"
	case engine.AssetCoal:
		return "C"
	case engine.AssetOreSeedling:
		return "o"
	case engine.AssetPlantSeedling:
		return "p"
	case engine.AssetCoalSeedling:
		return "c"
	}
	return "?"
}

func formatTurnResult(result *service.TurnResult) string {
	var b strings.Builder

	report := result.Report
	if report != nil {
		b.WriteString(fmt.Sprintf("Turn processed. Day %d, Hour %d | Status: %s\n",
			report.Day, report.Hour, report.Status))
		if len(report.Victors) > 0 {
			b.WriteString(fmt.Sprintf("Victors: %v\n", report.Victors))
		}
		if len(report.Eliminated) > 0 {
			b.WriteString(fmt.Sprintf("Eliminated: %v\n", report.Eliminated))
		}
		if len(report.Failures) > 0 {
			b.WriteString("\nFailed orders:\n")
			for _, failure := range report.Failures {
				b.WriteString(fmt.Sprintf("- %s\n", failure.Error()))
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(formatSnapshot(result.Snapshot))
	return b.String()
}

func formatEvents(events *service.EventsResponse) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Event Log (%d of %d events):\n\n", len(events.Events), events.Total))
	for _, event := range events.Events {
		b.WriteString(fmt.Sprintf("[day %d hour %d] %s\n", event.Day, event.Hour, event.Message))
	}
	return b.String()
}
