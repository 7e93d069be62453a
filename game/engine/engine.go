package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Engine provides the simulation's boundary to hosting layers. The engine is
// single-threaded: callers must serialize ProcessTurn invocations.
type Engine interface {
	// Turn processing
	ProcessTurn(orders []Order) *TurnReport

	// State reads
	Snapshot() *Snapshot
	Status() GameStatus
	Day() int
	Hour() int
	Victors() []int

	// Event log reads
	Events() []Event
	EventsTail(n int) []Event

	// Configuration
	Config() *GameConfig
}

// GameEngine implements the Engine interface: the grid, the economy, the
// turn/time state machine, and the event log for one game instance.
type GameEngine struct {
	config *GameConfig

	grid        *Grid
	controllers []*Controller

	day         int
	hour        int
	hoursPerDay int

	seedlingMaturityTime int
	newBotCost           int
	modifyDeckCost       int
	victoryConditions    map[ResourceType]int

	status  GameStatus
	victors []int

	events EventLog
	rng    *rand.Rand
}

// NewEngine creates a game engine from a validated configuration, seeding
// randomness from the clock
func NewEngine(config *GameConfig) (*GameEngine, error) {
	return NewEngineWithRand(config, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewEngineWithRand creates a game engine with an injected randomness source,
// for deterministic simulations and tests
func NewEngineWithRand(config *GameConfig, rng *rand.Rand) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	e := &GameEngine{
		config:               config,
		grid:                 NewGrid(config.MapWidth, config.MapHeight),
		hoursPerDay:          config.hoursPerDayOrDefault(),
		seedlingMaturityTime: config.SeedlingMaturityTime,
		newBotCost:           config.NewBotCost,
		modifyDeckCost:       config.ModifyDeckCost,
		victoryConditions:    make(map[ResourceType]int, len(config.VictoryConditions)),
		status:               StatusActive,
		rng:                  rng,
	}

	for name, amount := range config.VictoryConditions {
		rt, err := parseResourceType(name)
		if err != nil {
			return nil, fmt.Errorf("config validation: victory_conditions: %w", err)
		}
		e.victoryConditions[rt] = amount
	}

	if err := e.setupInitialState(config); err != nil {
		return nil, err
	}

	return e, nil
}

// setupInitialState creates controllers and their bots, then places the
// initial assets according to the configured mode
func (e *GameEngine) setupInitialState(config *GameConfig) error {
	for _, cc := range config.Controllers {
		controller := newController(len(e.controllers))
		e.controllers = append(e.controllers, controller)

		for name, amount := range cc.Resources {
			rt, err := parseResourceType(name)
			if err != nil {
				return fmt.Errorf("config validation: controllers[%d].resources: %w", controller.ID, err)
			}
			controller.Resources[rt] = amount
		}

		for _, bc := range cc.Bots {
			pos := Position{X: bc.X, Y: bc.Y}
			deck := make([]Card, 0, len(bc.Deck))
			for _, spec := range bc.Deck {
				card, err := ParseCard(spec)
				if err != nil {
					return fmt.Errorf("config validation: controllers[%d] deck: %w", controller.ID, err)
				}
				deck = append(deck, card)
			}

			bot := &Bot{Position: pos, Deck: deck, ControllerID: controller.ID}
			controller.Bots = append(controller.Bots, bot)
			e.grid.CellAtPos(pos).Bots[bot] = struct{}{}
		}

		// New bots built during play appear where the controller's first
		// configured bot started.
		if len(controller.Bots) > 0 {
			controller.StartingPosition = controller.Bots[0].Position
		}
	}

	switch config.InitialState.Mode {
	case InitialStateUniform:
		distribution := make(map[AssetType]int, len(config.AssetDistribution))
		for name, count := range config.AssetDistribution {
			at, err := parseAssetType(name)
			if err != nil {
				return fmt.Errorf("config validation: asset_distribution: %w", err)
			}
			distribution[at] = count
		}
		e.generateUniformAssets(distribution)
	case InitialStateEmpty:
	case InitialStateExplicit:
		for _, placed := range config.InitialState.Assets {
			at, err := parseAssetType(placed.Type)
			if err != nil {
				return fmt.Errorf("config validation: initial_state: %w", err)
			}
			asset := &Asset{Type: at, Amount: placed.Amount}
			if _, isSeedling := seedlingToAsset[at]; isSeedling {
				mt := e.seedlingMaturityTime
				asset.MaturityTime = &mt
			}
			cell := e.grid.CellAt(placed.X, placed.Y)
			cell.Assets = append(cell.Assets, asset)
		}
	}

	return nil
}

// generateUniformAssets scatters the configured asset counts across distinct
// random cells. A cell receives at most one generated asset; amounts are
// drawn uniformly from [UniformAmountMin, UniformAmountMax].
func (e *GameEngine) generateUniformAssets(distribution map[AssetType]int) {
	available := make([]Position, 0, e.grid.Width()*e.grid.Height())
	for x := 0; x < e.grid.Width(); x++ {
		for y := 0; y < e.grid.Height(); y++ {
			available = append(available, Position{X: x, Y: y})
		}
	}

	// Iterate types in stable order so a seeded rng gives reproducible maps
	for _, at := range []AssetType{AssetOre, AssetPlant, AssetCoal, AssetOreSeedling, AssetPlantSeedling, AssetCoalSeedling} {
		count, ok := distribution[at]
		if !ok {
			continue
		}
		if count > len(available) {
			count = len(available)
		}

		for i := 0; i < count; i++ {
			j := e.rng.Intn(len(available))
			pos := available[j]
			available[j] = available[len(available)-1]
			available = available[:len(available)-1]

			asset := &Asset{
				Type:   at,
				Amount: UniformAmountMin + e.rng.Intn(UniformAmountMax-UniformAmountMin+1),
			}
			if _, isSeedling := seedlingToAsset[at]; isSeedling {
				mt := e.seedlingMaturityTime
				asset.MaturityTime = &mt
			}
			cell := e.grid.CellAtPos(pos)
			cell.Assets = append(cell.Assets, asset)
		}
	}
}

// Status returns the engine's state tag
func (e *GameEngine) Status() GameStatus { return e.status }

// Day returns the current day counter
func (e *GameEngine) Day() int { return e.day }

// Hour returns the current hour within the day
func (e *GameEngine) Hour() int { return e.hour }

// HoursPerDay returns the configured day length
func (e *GameEngine) HoursPerDay() int { return e.hoursPerDay }

// Victors returns the ids of controllers that have met the victory conditions
func (e *GameEngine) Victors() []int {
	out := make([]int, len(e.victors))
	copy(out, e.victors)
	return out
}

// Events returns a copy of the full event log
func (e *GameEngine) Events() []Event {
	return e.events.All()
}

// EventsTail returns a copy of the most recent n event log entries
func (e *GameEngine) EventsTail(n int) []Event {
	return e.events.Tail(n)
}

// Config returns the configuration the engine was built from
func (e *GameEngine) Config() *GameConfig {
	return e.config
}

// Grid exposes the spatial grid for tests and read-only inspection
func (e *GameEngine) Grid() *Grid {
	return e.grid
}

// Controllers exposes the live controller list for tests and read-only
// inspection. Eliminated controllers are absent.
func (e *GameEngine) Controllers() []*Controller {
	return e.controllers
}

// controllerByID resolves a controller id against the live list. Ids are
// stable across eliminations, so lookup is by id value, not list index.
func (e *GameEngine) controllerByID(id int) (*Controller, bool) {
	for _, c := range e.controllers {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// logEventf appends a formatted event stamped with the current day and hour
func (e *GameEngine) logEventf(format string, args ...interface{}) {
	e.events.Append(e.day, e.hour, fmt.Sprintf(format, args...))
}
