// Command autopilot plays a bot colony session over the REST API. It drives a
// single controller toward the victory conditions with a simple policy: build
// a new bot whenever the balance comfortably covers the cost, otherwise spend
// energy on bot actions. It is meant for soak testing a running server and for
// watching a scenario play out without a human in the loop.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

type Snapshot struct {
	Day         int                  `json:"day"`
	Hour        int                  `json:"hour"`
	HoursPerDay int                  `json:"hours_per_day"`
	State       string               `json:"state"`
	Victors     []int                `json:"victors"`
	Costs       map[string]int       `json:"costs"`
	HourCosts   map[string]int       `json:"hour_costs"`
	Controllers []ControllerSnapshot `json:"controllers"`
}

type ControllerSnapshot struct {
	ID        int            `json:"id"`
	Resources map[string]int `json:"resources"`
	Bots      []BotSnapshot  `json:"bots"`
}

type BotSnapshot struct {
	Position struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"position"`
}

// controller returns the snapshot entry for id, or nil once the controller
// has been eliminated
func (s *Snapshot) controller(id int) *ControllerSnapshot {
	for i := range s.Controllers {
		if s.Controllers[i].ID == id {
			return &s.Controllers[i]
		}
	}
	return nil
}

func (c *ControllerSnapshot) total() int {
	sum := 0
	for _, amount := range c.Resources {
		sum += amount
	}
	return sum
}

type SessionResponse struct {
	ID         string    `json:"id"`
	ConfigName string    `json:"config_name"`
	Snapshot   *Snapshot `json:"snapshot"`
}

type Order struct {
	ControllerID int             `json:"controller_id"`
	Action       string          `json:"action_type"`
	Parameters   OrderParameters `json:"parameters"`
}

type OrderParameters struct {
	EnergyPoints *int `json:"energy_points,omitempty"`
}

type OrderFailure struct {
	Index        int    `json:"index"`
	ControllerID int    `json:"controller_id"`
	ActionType   string `json:"action_type"`
	Reason       string `json:"reason"`
}

type TurnReport struct {
	Day        int            `json:"day"`
	Hour       int            `json:"hour"`
	Status     string         `json:"status"`
	Victors    []int          `json:"victors"`
	Eliminated []int          `json:"eliminated"`
	Failures   []OrderFailure `json:"failures"`
}

type TurnResponse struct {
	SessionID string      `json:"session_id"`
	Report    *TurnReport `json:"report"`
	Snapshot  *Snapshot   `json:"snapshot"`
}

type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateSession(configID string) (*Snapshot, error) {
	var reqBody []byte
	var err error

	if configID != "" {
		reqBody, err = json.Marshal(map[string]string{"config_id": configID})
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	resp, err := c.client.Post(c.baseURL+"/api/sessions", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create session failed: %s - %s", resp.Status, string(body))
	}

	var session SessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("parse session response: %w", err)
	}

	c.sessionID = session.ID
	return session.Snapshot, nil
}

func (c *Client) GetState() (*Snapshot, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/state", c.baseURL, c.sessionID)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get state failed: %s - %s", resp.Status, string(body))
	}

	var snapshot Snapshot
	if err := json.Unmarshal(body, &snapshot); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}

	return &snapshot, nil
}

func (c *Client) SubmitTurn(orders []Order) (*TurnResponse, error) {
	reqBody, err := json.Marshal(map[string]interface{}{"orders": orders})
	if err != nil {
		return nil, fmt.Errorf("marshal turn: %w", err)
	}

	url := fmt.Sprintf("%s/api/sessions/%s/turn", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("submit turn: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("submit turn failed: %s - %s", resp.Status, string(body))
	}

	var turn TurnResponse
	if err := json.Unmarshal(body, &turn); err != nil {
		return nil, fmt.Errorf("parse turn response: %w", err)
	}

	return &turn, nil
}

// nextOrder is the whole policy: expand the fleet while the balance covers the
// bot cost with room to spare, otherwise run the decks. Spends are clamped to
// the balance and to the day's remaining hours, since an order that does not
// fit the clock is rejected without advancing it.
func nextOrder(controller *ControllerSnapshot, snapshot *Snapshot, energy, maxBots int) Order {
	remaining := snapshot.HoursPerDay - snapshot.Hour

	newBotCost := snapshot.Costs["new_bot"]
	if newBotCost > 0 && len(controller.Bots) < maxBots &&
		remaining >= snapshot.HourCosts["new_bot"] &&
		controller.total() >= newBotCost+energy*2 {
		return Order{ControllerID: controller.ID, Action: "CREATE_BOT"}
	}

	spend := energy
	if total := controller.total(); total < spend {
		spend = total
	}
	if remaining > 0 && spend > remaining {
		spend = remaining
	}
	return Order{
		ControllerID: controller.ID,
		Action:       "TAKE_BOT_ACTIONS",
		Parameters:   OrderParameters{EnergyPoints: &spend},
	}
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	configID := flag.String("config", "", "Game configuration id (empty for the server default)")
	continueSession := flag.String("continue", "", "Resume playing an existing session by ID")
	controllerID := flag.Int("controller", 0, "Controller to play")
	energy := flag.Int("energy", 3, "Energy points to spend per turn")
	maxBots := flag.Int("max-bots", 4, "Stop building bots at this fleet size")
	maxTurns := flag.Int("max-turns", 1000, "Maximum turns before giving up")
	delayMs := flag.Int("delay", 0, "Delay between turns in milliseconds (0 = no delay)")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	log.Printf("Connecting to game server at %s", *serverURL)
	client := NewClient(*serverURL)

	var snapshot *Snapshot
	var err error

	if *continueSession != "" {
		client.sessionID = *continueSession
		log.Printf("Resuming session: %s", client.sessionID)
		snapshot, err = client.GetState()
		if err != nil {
			log.Fatalf("Failed to resume session: %v", err)
		}
	} else {
		snapshot, err = client.CreateSession(*configID)
		if err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
		log.Printf("Session created: %s", client.sessionID)
	}

	controller := snapshot.controller(*controllerID)
	if controller == nil {
		log.Fatalf("Controller %d is not in the game", *controllerID)
	}
	log.Printf("Playing controller %d: %d bot(s), %d total resources",
		controller.ID, len(controller.Bots), controller.total())

	turnCount := 0
	for snapshot.State == "active" && turnCount < *maxTurns {
		controller = snapshot.controller(*controllerID)
		if controller == nil {
			log.Printf("❌ Controller %d was eliminated after %d turns", *controllerID, turnCount)
			log.Printf("Session: %s", client.sessionID)
			os.Exit(1)
		}

		order := nextOrder(controller, snapshot, *energy, *maxBots)
		turn, err := client.SubmitTurn([]Order{order})
		if err != nil {
			log.Fatalf("Turn failed: %v", err)
		}
		turnCount++
		snapshot = turn.Snapshot

		for _, failure := range turn.Report.Failures {
			if *verbose {
				log.Printf("Order rejected: %s", failure.Reason)
			}
		}

		if *verbose && turnCount%10 == 0 {
			log.Printf("Turn %d: day %d hour %d, %d bot(s), %d total resources",
				turnCount, snapshot.Day, snapshot.Hour, len(controller.Bots), controller.total())
		}

		if *delayMs > 0 {
			time.Sleep(time.Duration(*delayMs) * time.Millisecond)
		}
	}

	log.Printf("Session: %s", client.sessionID)
	for _, victor := range snapshot.Victors {
		if victor == *controllerID {
			log.Printf("🎉 VICTORY! Controller %d won after %d turns", *controllerID, turnCount)
			os.Exit(0)
		}
	}

	if snapshot.State != "active" {
		log.Printf("Game over after %d turns: %s, victors %v", turnCount, snapshot.State, snapshot.Victors)
		os.Exit(1)
	}
	log.Printf("❌ No victory after %d turns", turnCount)
	os.Exit(1)
}
