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

	"github.com/blackbox-arcade/blackbox/game/engine"
	"github.com/blackbox-arcade/blackbox/game/service"
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
		"Black Box",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Black Box - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Atoms are hidden inside a grid. Fire rays from the boundary and deduce
the atom positions from how the rays hit, deflect, or exit. Mark your
guesses and finalize them to score. Find every atom before your score
runs out.

AVAILABLE TOOLS:
- game_state: Get the current board as seen by the player
- fire_ray: Fire a ray from a boundary cell - requires intent explanation
- toggle_guess: Stage or unstage an atom guess at a grid cell
- finalize_guesses: Score all staged guesses at once
- ray_history: View past rays with pagination
- place_atom: Place an atom during manual two-player setup
- start_game: Start play on a manually set up board
- reset_game: Reset the board with a fresh random layout
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- list_configs: List available configurations
- game_instructions: Get comprehensive game instructions and rules

NOTE: The 'intent' parameter on fire_ray serves as rubber duck debugging - explain your deduction!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the config to use (optional)",
				},
				"manual": map[string]interface{}{
					"type":        "boolean",
					"description": "Start in manual setup so a hider can place atoms by hand",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
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
		Description: "Get the current game state as the player sees it (hidden atoms are not shown)",
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
		Name:        "fire_ray",
		Description: "Fire a ray into the box from a boundary cell. Entry cells sit on the ring around the grid: x or y is -1 or grid_size (corners excluded). The direction must point into the grid.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate of the boundary entry cell",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate of the boundary entry cell",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction the ray travels into the grid",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of what this ray is meant to reveal (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "x", "y", "direction"},
		},
	}, c.handleFireRay)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "toggle_guess",
		Description: "Stage or unstage an atom guess at an interior grid cell. Staged guesses are scored together by finalize_guesses.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate of the cell to guess",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate of the cell to guess",
				},
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handleToggleGuess)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "finalize_guesses",
		Description: "Score all staged guesses: correct guesses reveal atoms and earn points, wrong ones cost points",
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
	}, c.handleFinalizeGuesses)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "ray_history",
		Description: "Get ray history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleRayHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "place_atom",
		Description: "Place an atom on a session created with manual setup. Only valid before start_game.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate of the atom",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate of the atom",
				},
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handlePlaceAtom)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "start_game",
		Description: "Start play on a manually set up board, hiding the placed atoms",
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
	}, c.handleStartGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the board with a fresh random atom layout",
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
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
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
	manual, _ := args["manual"].(bool)

	body := map[string]interface{}{}
	if configID != "" {
		body["config_id"] = configID
	}
	if manual {
		body["manual"] = true
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.ID, session.ConfigName, formatGameState(session.GameState))
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

	var state engine.GameState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatGameState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleFireRay(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	x, _ := args["x"].(float64)
	y, _ := args["y"].(float64)
	direction, _ := args["direction"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"x":         int(x),
		"y":         int(y),
		"direction": direction,
	}

	var result service.RayResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/rays", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatRayResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleToggleGuess(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	x, _ := args["x"].(float64)
	y, _ := args["y"].(float64)

	body := map[string]interface{}{
		"x": int(x),
		"y": int(y),
	}

	var result service.GuessResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/guesses", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state := "staged"
	if !result.Active {
		state = "removed"
	}
	response := fmt.Sprintf("Guess at (%d,%d) %s. Staged guesses: %d\n\n%s",
		int(x), int(y), state, len(result.Guesses), formatGameState(result.GameState))
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleFinalizeGuesses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var result service.GuessResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/guesses/finalize", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatGuessRound(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleRayHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/rays%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatHistory(&history)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handlePlaceAtom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	x, _ := args["x"].(float64)
	y, _ := args["y"].(float64)

	body := map[string]interface{}{
		"x": int(x),
		"y": int(y),
	}

	var state engine.GameState
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/atoms", sessionID), body, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := fmt.Sprintf("Atom placed at (%d,%d). Atoms on the board: %d\n\n%s",
		int(x), int(y), len(state.Atoms), formatGameState(&state))
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/start", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
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
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Grid: %dx%d, Atoms: %d-%d, Starting score: %d\n\n",
			config.Name, config.ConfigID, config.Description,
			config.GridSize, config.GridSize,
			config.MinAtoms, config.MaxAtoms, config.InitialScore)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Black Box - Complete Instructions

GAME OBJECTIVE:
Atoms are hidden at secret positions inside a square grid. Fire rays
from the boundary and deduce every atom position from how the rays
behave. Find all atoms before your score runs out.

COORDINATES:
The interior is a grid_size x grid_size grid, (0,0) top-left, y grows
downward. Rays enter from boundary cells on the ring just outside the
grid: x or y equals -1 or grid_size. Corners of the ring are not valid
entry cells. The direction must point into the grid (for example, a
ray entering at x=-1 must travel "right").

RAY PHYSICS:
• Hit: the ray runs straight into an atom and is absorbed. No exit.
• Deflection: an atom diagonally adjacent to the ray's path bends it
  90 degrees away from the atom. A ray can deflect many times before
  it leaves the box.
• Double deflection: two atoms flank the ray's path at once (or an
  atom sits diagonally ahead at the very first cell inside the box).
  The ray bounces straight back out where it entered.
• Exit: the ray leaves the box at some boundary cell. The exit
  position is reported.

Only the entry point, the outcome, and the exit point are revealed.
What happened inside the box is for you to deduce.

SCORING:
• Each ray costs points (typically 1).
• Finalizing a correct guess reveals the atom and earns a bonus
  (typically 10). Each atom pays out once.
• Each wrong finalized guess costs a penalty (typically 5).
• Victory: all atoms revealed while your score is above zero.
• Defeat: score reaches zero.

GUESSING:
Stage guesses with toggle_guess (toggle again to unstage), then score
the whole batch with finalize_guesses. Guesses on already revealed
atoms are rejected. Staged guesses clear after every finalize.

BOARD DISPLAY LEGEND:
• . - unknown interior cell
• ? - staged guess
• O - revealed atom (found by you)
• A - atom (visible only during manual setup and after the game ends)
• Digits on the ring mark where rays entered and exited

DEDUCTION STRATEGY:
1. Fire rays along edge rows and columns first: a straight exit proves
   a whole lane has no atoms adjacent to it.
2. A ray that bounces straight back out signals an atom diagonally
   ahead near the entry, or a flanked lane.
3. Cross-reference deflected exits: each deflection pins an atom to a
   diagonal of some cell on the path.
4. Guess only when at least two rays agree; wrong guesses are costly.
5. Watch your score. Every ray spends points, so prefer rays that can
   split multiple hypotheses at once.

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Sessions maintain independent state and configuration
- Manual sessions let a second player hide the atoms by hand:
  create_session(manual=true), place_atom repeatedly, then start_game

CONFIGURATION OPTIONS:
- Easy configs: small grids, few atoms
- Medium configs: the classic 8x8 setup
- Hard configs: large grids with more atoms and tighter scoring

Good luck peering into the black box!`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

// formatGameState renders the player view of the board as text. The ring
// around the grid shows ray numbers at their entry and exit cells.
func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("Phase: %s | Score: %d | Rays fired: %d | Atoms: %d (found %d)\n\n",
		state.Phase, state.Score, state.TotalRays, state.AtomCount, len(state.Revealed)))

	result.WriteString(formatBoard(state))

	if len(state.Guesses) > 0 {
		result.WriteString("\nStaged guesses:")
		for _, g := range state.Guesses {
			result.WriteString(fmt.Sprintf(" (%d,%d)", g.X, g.Y))
		}
		result.WriteString("\n")
	}

	if len(state.Rays) > 0 {
		result.WriteString("\nRecent rays:\n")
		rays := state.Rays
		if len(rays) > 5 {
			rays = rays[len(rays)-5:]
		}
		for _, ray := range rays {
			result.WriteString(formatRayLine(&ray))
		}
	}

	if state.GameOver {
		if state.Victory {
			result.WriteString("\nVICTORY!")
		} else {
			result.WriteString("\nGAME OVER")
		}
	}

	if state.Message != "" {
		result.WriteString(fmt.Sprintf("\nMessage: %s", state.Message))
	}

	return result.String()
}

// formatBoard draws the grid with its boundary ring. Interior cells show
// guesses, revealed atoms, and (when visible) hidden atoms; ring cells
// show the numbers of the rays that entered or exited there.
func formatBoard(state *engine.GameState) string {
	size := state.GridSize
	if size <= 0 {
		return ""
	}

	// One extra row/column on each side for the boundary ring.
	cells := make([][]string, size+2)
	for i := range cells {
		cells[i] = make([]string, size+2)
		for j := range cells[i] {
			cells[i][j] = " "
		}
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			cells[y+1][x+1] = "."
		}
	}

	for _, g := range state.Guesses {
		cells[g.Y+1][g.X+1] = "?"
	}
	for _, r := range state.Revealed {
		cells[r.Y+1][r.X+1] = "O"
	}
	// Atoms are present only during setup and after the game ends.
	for _, a := range state.Atoms {
		cells[a.Y+1][a.X+1] = "A"
	}

	markRing := func(pos engine.Position, label string) {
		rx, ry := pos.X+1, pos.Y+1
		if ry >= 0 && ry < len(cells) && rx >= 0 && rx < len(cells[ry]) {
			cells[ry][rx] = label
		}
	}

	for _, ray := range state.Rays {
		label := fmt.Sprintf("%d", ray.Number%10)
		markRing(ray.Entry, label)
		if ray.Exit != nil {
			markRing(*ray.Exit, label)
		}
	}

	var b strings.Builder
	for _, row := range cells {
		b.WriteString(strings.Join(row, " "))
		b.WriteString("\n")
	}
	return b.String()
}

func formatRayLine(ray *engine.RayRecord) string {
	line := fmt.Sprintf("#%d (%d,%d) %s -> %s",
		ray.Number, ray.Entry.X, ray.Entry.Y, ray.Direction, ray.Outcome)
	if ray.Exit != nil {
		line += fmt.Sprintf(" at (%d,%d)", ray.Exit.X, ray.Exit.Y)
	}
	if ray.Deflections > 0 {
		line += fmt.Sprintf(" [%d deflections]", ray.Deflections)
	}
	return line + "\n"
}

func formatRayResult(result *service.RayResult) string {
	var b strings.Builder

	ray := result.Ray
	b.WriteString(fmt.Sprintf("Ray #%d fired from (%d,%d) heading %s\n",
		ray.Number, ray.Entry.X, ray.Entry.Y, ray.Direction))

	switch ray.Outcome {
	case engine.Hit:
		b.WriteString("Outcome: HIT - the ray was absorbed by an atom\n")
	case engine.DoubleDeflected:
		b.WriteString(fmt.Sprintf("Outcome: DOUBLE DEFLECTION - the ray bounced straight back out at (%d,%d)\n",
			ray.Exit.X, ray.Exit.Y))
	case engine.Deflected:
		b.WriteString(fmt.Sprintf("Outcome: DEFLECTED %d time(s), exited at (%d,%d)\n",
			ray.Deflections, ray.Exit.X, ray.Exit.Y))
	default:
		b.WriteString(fmt.Sprintf("Outcome: EXIT - straight through, exited at (%d,%d)\n",
			ray.Exit.X, ray.Exit.Y))
	}

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatGuessRound(result *service.GuessResult) string {
	var b strings.Builder

	if result.Round != nil {
		round := result.Round
		b.WriteString(fmt.Sprintf("Guess round #%d scored: %d correct, %d wrong (score %+d)\n",
			round.Number, len(round.Correct), len(round.Incorrect), round.ScoreDelta))
		for _, pos := range round.Correct {
			b.WriteString(fmt.Sprintf("  ✓ atom found at (%d,%d)\n", pos.X, pos.Y))
		}
		for _, pos := range round.Incorrect {
			b.WriteString(fmt.Sprintf("  ✗ no atom at (%d,%d)\n", pos.X, pos.Y))
		}
	}

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Ray History (Page %d/%d) - Total rays: %d\n\n",
		history.Page, history.TotalPages, history.TotalRays)

	for _, ray := range history.Rays {
		result += formatRayLine(&ray)
	}

	return result
}
