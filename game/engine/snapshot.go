package engine

import "sort"

// MapSize is the grid dimensions in a snapshot
type MapSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CardSnapshot is a deck entry in a snapshot, with its compact display label
type CardSnapshot struct {
	ActionType string `json:"action_type"`
	Parameter  string `json:"parameter"`
	Label      string `json:"label"`
}

// BotSnapshot is one bot in a controller's snapshot entry
type BotSnapshot struct {
	Position Position       `json:"position"`
	Deck     []CardSnapshot `json:"deck"`
}

// ControllerSnapshot is one controller's full state in a snapshot
type ControllerSnapshot struct {
	ID        int            `json:"id"`
	Resources map[string]int `json:"resources"`
	Bots      []BotSnapshot  `json:"bots"`
}

// AssetSnapshot is one asset entry on a cell. MaturityTime is null for
// mature assets.
type AssetSnapshot struct {
	Type         string `json:"type"`
	Amount       int    `json:"amount"`
	MaturityTime *int   `json:"maturity_time"`
}

// CellBotSnapshot identifies a bot occupying a cell
type CellBotSnapshot struct {
	ControllerID int      `json:"controller_id"`
	Position     Position `json:"position"`
}

// CellSnapshot is one grid cell in a snapshot
type CellSnapshot struct {
	Position Position          `json:"position"`
	Assets   []AssetSnapshot   `json:"assets"`
	Bots     []CellBotSnapshot `json:"bots"`
}

// Snapshot is the engine's complete read boundary for presentation layers:
// derivable purely from current state, with no hidden mutation.
type Snapshot struct {
	Day               int                  `json:"day"`
	Hour              int                  `json:"hour"`
	HoursPerDay       int                  `json:"hours_per_day"`
	MapSize           MapSize              `json:"map_size"`
	Costs             map[string]int       `json:"costs"`
	HourCosts         map[string]int       `json:"hour_costs"`
	VictoryConditions map[string]int       `json:"victory_conditions"`
	Controllers       []ControllerSnapshot `json:"controllers"`
	State             GameStatus           `json:"state"`
	Victors           []int                `json:"victors"`
	Map               [][]CellSnapshot     `json:"map"`
	EventLog          []Event              `json:"event_log"`
}

// Snapshot builds the full read-out of the game's current state
func (e *GameEngine) Snapshot() *Snapshot {
	snap := &Snapshot{
		Day:         e.day,
		Hour:        e.hour,
		HoursPerDay: e.hoursPerDay,
		MapSize:     MapSize{Width: e.grid.Width(), Height: e.grid.Height()},
		Costs: map[string]int{
			"new_bot":     e.newBotCost,
			"modify_deck": e.modifyDeckCost,
		},
		HourCosts: map[string]int{
			"bot_action":  HourCostBotAction,
			"modify_deck": HourCostModifyDeck,
			"new_bot":     HourCostCreateBot,
		},
		VictoryConditions: make(map[string]int, len(e.victoryConditions)),
		State:             e.status,
		Victors:           e.Victors(),
		EventLog:          e.events.All(),
	}

	for rt, amount := range e.victoryConditions {
		snap.VictoryConditions[string(rt)] = amount
	}

	for _, controller := range e.controllers {
		cs := ControllerSnapshot{
			ID:        controller.ID,
			Resources: make(map[string]int, len(controller.Resources)),
			Bots:      make([]BotSnapshot, 0, len(controller.Bots)),
		}
		for rt, amount := range controller.Resources {
			cs.Resources[string(rt)] = amount
		}
		for _, bot := range controller.Bots {
			bs := BotSnapshot{
				Position: bot.Position,
				Deck:     make([]CardSnapshot, 0, len(bot.Deck)),
			}
			for _, card := range bot.Deck {
				bs.Deck = append(bs.Deck, CardSnapshot{
					ActionType: string(card.Action),
					Parameter:  card.Parameter(),
					Label:      card.Label(),
				})
			}
			cs.Bots = append(cs.Bots, bs)
		}
		snap.Controllers = append(snap.Controllers, cs)
	}

	snap.Map = make([][]CellSnapshot, e.grid.Height())
	for y := 0; y < e.grid.Height(); y++ {
		row := make([]CellSnapshot, e.grid.Width())
		for x := 0; x < e.grid.Width(); x++ {
			cell := e.grid.CellAt(x, y)
			cs := CellSnapshot{
				Position: Position{X: x, Y: y},
				Assets:   make([]AssetSnapshot, 0, len(cell.Assets)),
				Bots:     make([]CellBotSnapshot, 0, len(cell.Bots)),
			}
			for _, asset := range cell.Assets {
				as := AssetSnapshot{Type: string(asset.Type), Amount: asset.Amount}
				if asset.MaturityTime != nil {
					mt := *asset.MaturityTime
					as.MaturityTime = &mt
				}
				cs.Assets = append(cs.Assets, as)
			}
			for bot := range cell.Bots {
				cs.Bots = append(cs.Bots, CellBotSnapshot{
					ControllerID: bot.ControllerID,
					Position:     bot.Position,
				})
			}
			// Cell bot sets are unordered; sort for stable output
			sort.Slice(cs.Bots, func(i, j int) bool {
				return cs.Bots[i].ControllerID < cs.Bots[j].ControllerID
			})
			row[x] = cs
		}
		snap.Map[y] = row
	}

	return snap
}
