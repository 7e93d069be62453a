package engine

import (
	"encoding/json"
	"fmt"
)

// Direction represents a movement direction for a MOVE card
type Direction string

const (
	North           Direction = "NORTH"
	South           Direction = "SOUTH"
	East            Direction = "EAST"
	West            Direction = "WEST"
	RandomDirection Direction = "RANDOM"
)

// ActionType represents the kind of action a card performs
type ActionType string

const (
	ActionMove    ActionType = "MOVE"
	ActionHarvest ActionType = "HARVEST"
	ActionPlant   ActionType = "PLANT"
)

// AssetType represents a harvestable deposit or a seedling on a cell
type AssetType string

const (
	AssetOre           AssetType = "ORE"
	AssetPlant         AssetType = "PLANT"
	AssetCoal          AssetType = "COAL"
	AssetOreSeedling   AssetType = "ORE_SEEDLING"
	AssetPlantSeedling AssetType = "PLANT_SEEDLING"
	AssetCoalSeedling  AssetType = "COAL_SEEDLING"
)

// ResourceType represents a resource in a controller's balance
type ResourceType string

const (
	ResourceMineral ResourceType = "MINERAL"
	ResourceBiomass ResourceType = "BIOMASS"
	ResourceEnergy  ResourceType = "ENERGY"
)

// ControllerActionType represents an order a controller can issue during a turn
type ControllerActionType string

const (
	TakeBotActions ControllerActionType = "TAKE_BOT_ACTIONS"
	ModifyDeck     ControllerActionType = "MODIFY_DECK"
	CreateBot      ControllerActionType = "CREATE_BOT"
)

// Validation and cost constants
const (
	MinMapSize      = 5
	MaxMapSize      = 1000
	MinMaturityTime = 1
	MaxMaturityTime = 100
	MinCost         = 1
	MaxCost         = 1000
	MinHoursPerDay  = 1
	MaxHoursPerDay  = 48

	DefaultHoursPerDay = 24

	// Hour costs per controller order
	HourCostBotAction  = 1
	HourCostModifyDeck = 1
	HourCostCreateBot  = 6

	// Amount range for uniformly generated assets
	UniformAmountMin = 1
	UniformAmountMax = 5
)

// GameStatus is the engine's top-level state tag
type GameStatus string

const (
	StatusActive  GameStatus = "active"
	StatusVictory GameStatus = "victory"
)

// cardinalDirections are the concrete directions a RANDOM move resolves to
var cardinalDirections = [4]Direction{North, South, East, West}

// directionVectors maps each cardinal direction to its grid offset.
// North decreases Y, matching the screen-oriented grid layout.
var directionVectors = map[Direction]Position{
	North: {X: 0, Y: -1},
	South: {X: 0, Y: 1},
	East:  {X: 1, Y: 0},
	West:  {X: -1, Y: 0},
}

// assetToResource maps a mature asset type to the resource it yields when harvested
var assetToResource = map[AssetType]ResourceType{
	AssetOre:   ResourceMineral,
	AssetPlant: ResourceBiomass,
	AssetCoal:  ResourceEnergy,
}

// assetToSeedling maps a mature asset type to the seedling planted for it
var assetToSeedling = map[AssetType]AssetType{
	AssetOre:   AssetOreSeedling,
	AssetPlant: AssetPlantSeedling,
	AssetCoal:  AssetCoalSeedling,
}

// seedlingToAsset maps a seedling type to the mature asset it becomes
var seedlingToAsset = map[AssetType]AssetType{
	AssetOreSeedling:   AssetOre,
	AssetPlantSeedling: AssetPlant,
	AssetCoalSeedling:  AssetCoal,
}

// resourceTypes lists all resource types in a stable order
var resourceTypes = [3]ResourceType{ResourceMineral, ResourceBiomass, ResourceEnergy}

// Position represents x,y grid coordinates
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the position offset by the given vector
func (p Position) Add(v Position) Position {
	return Position{X: p.X + v.X, Y: p.Y + v.Y}
}

// Card is an immutable deck entry. Exactly one of Direction or Asset is set,
// depending on Action. Cards compare by value.
type Card struct {
	Action    ActionType
	Direction Direction
	Asset     AssetType
}

// MoveCard builds a MOVE card for the given direction
func MoveCard(dir Direction) Card {
	return Card{Action: ActionMove, Direction: dir}
}

// HarvestCard builds a HARVEST card for the given mature asset type
func HarvestCard(asset AssetType) Card {
	return Card{Action: ActionHarvest, Asset: asset}
}

// PlantCard builds a PLANT card for the given mature asset type
func PlantCard(asset AssetType) Card {
	return Card{Action: ActionPlant, Asset: asset}
}

// Parameter returns the card's parameter as its wire name
func (c Card) Parameter() string {
	if c.Action == ActionMove {
		return string(c.Direction)
	}
	return string(c.Asset)
}

// Label returns the compact display form of the card: M? for a random move,
// otherwise the action initial plus the parameter initial (MN, HO, PC, ...).
func (c Card) Label() string {
	switch c.Action {
	case ActionMove:
		if c.Direction == RandomDirection {
			return "M?"
		}
		return "M" + string(c.Direction[0])
	case ActionHarvest:
		return "H" + string(c.Asset[0])
	case ActionPlant:
		return "P" + string(c.Asset[0])
	}
	return "?"
}

// cardJSON is the wire form of a Card
type cardJSON struct {
	ActionType string `json:"action_type"`
	Parameter  string `json:"parameter"`
}

// MarshalJSON encodes the card as {action_type, parameter}
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{ActionType: string(c.Action), Parameter: c.Parameter()})
}

// UnmarshalJSON decodes a card from {action_type, parameter}
func (c *Card) UnmarshalJSON(data []byte) error {
	var raw cardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	card, err := ParseCard(CardSpec{ActionType: raw.ActionType, Parameter: raw.Parameter})
	if err != nil {
		return err
	}
	*c = card
	return nil
}

// CardSpec is the untyped {action_type, parameter} pair used in configs and orders
type CardSpec struct {
	ActionType string `json:"action_type"`
	Parameter  string `json:"parameter"`
}

// ParseCard validates a card spec and builds the typed card.
// MOVE takes a direction; HARVEST and PLANT take one of the mature asset types.
func ParseCard(spec CardSpec) (Card, error) {
	switch ActionType(spec.ActionType) {
	case ActionMove:
		dir := Direction(spec.Parameter)
		switch dir {
		case North, South, East, West, RandomDirection:
			return MoveCard(dir), nil
		}
		return Card{}, fmt.Errorf("invalid direction %q for MOVE card", spec.Parameter)
	case ActionHarvest:
		asset := AssetType(spec.Parameter)
		if _, ok := assetToResource[asset]; !ok {
			return Card{}, fmt.Errorf("invalid asset type %q for HARVEST card", spec.Parameter)
		}
		return HarvestCard(asset), nil
	case ActionPlant:
		asset := AssetType(spec.Parameter)
		if _, ok := assetToSeedling[asset]; !ok {
			return Card{}, fmt.Errorf("invalid asset type %q for PLANT card", spec.Parameter)
		}
		return PlantCard(asset), nil
	}
	return Card{}, fmt.Errorf("invalid card action type %q", spec.ActionType)
}

// Asset is a deposit on a cell. MaturityTime nil means mature (harvestable);
// non-nil means a seedling counting down in days.
type Asset struct {
	Type         AssetType `json:"type"`
	Amount       int       `json:"amount"`
	MaturityTime *int      `json:"maturity_time"`
}

// IsSeedling reports whether the asset is still maturing
func (a *Asset) IsSeedling() bool {
	return a.MaturityTime != nil
}

// Bot is an autonomous grid agent executing a rotating deck of cards
type Bot struct {
	Position     Position
	Deck         []Card
	ControllerID int
}

// HeadCard returns the card at the top of the deck, if any
func (b *Bot) HeadCard() (Card, bool) {
	if len(b.Deck) == 0 {
		return Card{}, false
	}
	return b.Deck[0], true
}

// RotateDeck moves the head card to the tail. Rotation happens after every
// executed action, successful or not.
func (b *Bot) RotateDeck() {
	if len(b.Deck) < 2 {
		return
	}
	head := b.Deck[0]
	copy(b.Deck, b.Deck[1:])
	b.Deck[len(b.Deck)-1] = head
}

// Cell is a single grid square holding an identity-keyed set of bots and an
// ordered list of assets. Cells are owned by the Grid and mutated only by the
// action interpreter and the maturation pass.
type Cell struct {
	Assets []*Asset
	Bots   map[*Bot]struct{}
}

// HasSeedling reports whether any asset on the cell is still maturing
func (c *Cell) HasSeedling() bool {
	for _, a := range c.Assets {
		if a.IsSeedling() {
			return true
		}
	}
	return false
}

// findMatureAsset returns the index of the first mature asset of the given
// type, or -1 if none exists
func (c *Cell) findMatureAsset(t AssetType) int {
	for i, a := range c.Assets {
		if a.Type == t && !a.IsSeedling() {
			return i
		}
	}
	return -1
}

// Controller is a player: it owns bots, a resource balance, and the position
// where newly built bots appear
type Controller struct {
	ID               int
	Bots             []*Bot
	Resources        map[ResourceType]int
	StartingPosition Position
}

// newController builds a controller with a zeroed resource balance
func newController(id int) *Controller {
	return &Controller{
		ID: id,
		Resources: map[ResourceType]int{
			ResourceMineral: 0,
			ResourceBiomass: 0,
			ResourceEnergy:  0,
		},
	}
}

// TotalResources returns the sum of the controller's resource balances
func (c *Controller) TotalResources() int {
	total := 0
	for _, amount := range c.Resources {
		total += amount
	}
	return total
}

// deductProportional removes amount from the balance, split across resource
// types in proportion to their share of the total. Each per-type deduction is
// floored, so the sum deducted can come in under amount; that rounding slack
// is part of the economy.
func (c *Controller) deductProportional(amount int) {
	total := c.TotalResources()
	if total <= 0 {
		return
	}
	for _, rt := range resourceTypes {
		c.Resources[rt] -= amount * c.Resources[rt] / total
	}
}

// removeBot drops the bot from the controller's list by identity
func (c *Controller) removeBot(bot *Bot) {
	kept := c.Bots[:0]
	for _, b := range c.Bots {
		if b != bot {
			kept = append(kept, b)
		}
	}
	c.Bots = kept
}

// Order is a single controller instruction submitted to ProcessTurn
type Order struct {
	ControllerID int                  `json:"controller_id"`
	Action       ControllerActionType `json:"action_type"`
	Parameters   OrderParameters      `json:"parameters"`
}

// OrderParameters is the keyed parameter bag of an order. Which fields are
// required depends on the action type:
//   - TAKE_BOT_ACTIONS: EnergyPoints
//   - MODIFY_DECK: BotID plus exactly one of Cards or RemovedIDs
//   - CREATE_BOT: none
type OrderParameters struct {
	EnergyPoints *int       `json:"energy_points,omitempty"`
	BotID        *int       `json:"bot_id,omitempty"`
	Cards        []CardSpec `json:"cards,omitempty"`
	RemovedIDs   []int      `json:"removed_ids,omitempty"`
}
