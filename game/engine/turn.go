package engine

import (
	"fmt"
	"sort"
)

// TurnReport summarizes the outcome of one ProcessTurn call
type TurnReport struct {
	Day        int           `json:"day"`
	Hour       int           `json:"hour"`
	Status     GameStatus    `json:"status"`
	Victors    []int         `json:"victors,omitempty"`
	Eliminated []int         `json:"eliminated,omitempty"`
	Failures   []*OrderError `json:"failures,omitempty"`
}

// ProcessTurn runs one simulation turn: every order in batch order, the
// maturation pass, the elimination sweep, and the victory check. A failed
// order is reported in the result and skipped; orders before it stay applied.
// The caller must serialize invocations and stop issuing turns once the
// status is no longer active.
func (e *GameEngine) ProcessTurn(orders []Order) *TurnReport {
	report := &TurnReport{}

	for i, order := range orders {
		if err := e.processOrder(order); err != nil {
			report.Failures = append(report.Failures, &OrderError{
				Index:        i,
				ControllerID: order.ControllerID,
				Action:       order.Action,
				Err:          err,
			})
		}
	}

	// Seedlings advance once per turn call, on top of the day-rollover pass
	// inside advanceTime. Orderless turns therefore still age seedlings.
	e.matureSeedlings()

	// Rollover bookkeeping; advanceTime normally resets the hour itself
	if e.hour >= e.hoursPerDay {
		e.hour = 0
		e.day++
	}

	report.Eliminated = e.sweepEliminations()
	e.checkVictory()

	report.Day = e.day
	report.Hour = e.hour
	report.Status = e.status
	report.Victors = e.Victors()
	return report
}

// processOrder validates, prices, and applies a single controller order.
// Preconditions are checked before the clock advances, so a failed order
// leaves neither resources nor time mutated.
func (e *GameEngine) processOrder(order Order) error {
	if e.status != StatusActive {
		return ErrGameFinished
	}

	controller, ok := e.controllerByID(order.ControllerID)
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidController, order.ControllerID)
	}

	switch order.Action {
	case TakeBotActions:
		return e.orderTakeBotActions(controller, order.Parameters)
	case ModifyDeck:
		return e.orderModifyDeck(controller, order.Parameters)
	case CreateBot:
		return e.orderCreateBot(controller)
	}
	return fmt.Errorf("%w: %q", ErrInvalidAction, order.Action)
}

// orderTakeBotActions spends energy points on randomly chosen bot actions.
// Each point executes the head card of one of the controller's bots, picked
// uniformly with replacement. The cost is funded against the controller's
// total balance but deducted from ENERGY alone, which may push ENERGY
// negative and into the elimination sweep.
func (e *GameEngine) orderTakeBotActions(controller *Controller, params OrderParameters) error {
	if params.EnergyPoints == nil {
		return fmt.Errorf("%w: energy_points is required for %s", ErrInvalidOrder, TakeBotActions)
	}
	points := *params.EnergyPoints
	if points <= 0 {
		return fmt.Errorf("%w: energy_points must be positive, got %d", ErrInvalidOrder, points)
	}
	if points > controller.TotalResources() {
		return fmt.Errorf("%w: %d energy points requested, %d total resources available",
			ErrInsufficientResources, points, controller.TotalResources())
	}

	if !e.advanceTime(points * HourCostBotAction) {
		return fmt.Errorf("%w: %s needs %d hours", ErrInsufficientTime, TakeBotActions, points*HourCostBotAction)
	}

	controller.Resources[ResourceEnergy] -= points

	for i := 0; i < points; i++ {
		if len(controller.Bots) == 0 {
			break
		}
		bot := controller.Bots[e.rng.Intn(len(controller.Bots))]
		card, ok := bot.HeadCard()
		if !ok {
			continue
		}
		e.executeCard(bot, card)
		// The moving bot may have been destroyed in a collision; its deck
		// still rotates, matching one-rotation-per-executed-action.
		bot.RotateDeck()
	}

	e.logEventf("Controller %d performed %s", controller.ID, TakeBotActions)
	return nil
}

// orderModifyDeck reprograms one bot's deck: either remove a set of card
// indices or append new cards, never both in one call. The biomass cost is
// charged once per call.
func (e *GameEngine) orderModifyDeck(controller *Controller, params OrderParameters) error {
	if params.BotID == nil {
		return fmt.Errorf("%w: bot_id is required for %s", ErrInvalidOrder, ModifyDeck)
	}
	botID := *params.BotID
	if botID < 0 || botID >= len(controller.Bots) {
		return fmt.Errorf("%w: %d", ErrInvalidBot, botID)
	}
	bot := controller.Bots[botID]

	hasCards := len(params.Cards) > 0
	hasRemovals := len(params.RemovedIDs) > 0
	if hasCards == hasRemovals {
		return fmt.Errorf("%w: exactly one of cards or removed_ids is required for %s", ErrInvalidOrder, ModifyDeck)
	}

	if controller.Resources[ResourceBiomass] < e.modifyDeckCost {
		return fmt.Errorf("%w: modifying a deck costs %d biomass, %d available",
			ErrInsufficientResources, e.modifyDeckCost, controller.Resources[ResourceBiomass])
	}

	// Validate the whole plan before charging or mutating anything
	var added []Card
	for _, spec := range params.Cards {
		card, err := ParseCard(spec)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidOrder, err)
		}
		added = append(added, card)
	}
	seen := make(map[int]struct{}, len(params.RemovedIDs))
	for _, idx := range params.RemovedIDs {
		if idx < 0 || idx >= len(bot.Deck) {
			return fmt.Errorf("%w: %d", ErrInvalidDeckIndex, idx)
		}
		if _, dup := seen[idx]; dup {
			return fmt.Errorf("%w: duplicate index %d", ErrInvalidDeckIndex, idx)
		}
		seen[idx] = struct{}{}
	}

	if !e.advanceTime(HourCostModifyDeck) {
		return fmt.Errorf("%w: %s needs %d hour", ErrInsufficientTime, ModifyDeck, HourCostModifyDeck)
	}

	controller.Resources[ResourceBiomass] -= e.modifyDeckCost

	if hasRemovals {
		// Descending order so earlier removals don't shift later indices
		removed := make([]int, len(params.RemovedIDs))
		copy(removed, params.RemovedIDs)
		sort.Sort(sort.Reverse(sort.IntSlice(removed)))
		for _, idx := range removed {
			bot.Deck = append(bot.Deck[:idx], bot.Deck[idx+1:]...)
		}
	} else {
		bot.Deck = append(bot.Deck, added...)
	}

	e.logEventf("Controller %d performed %s", controller.ID, ModifyDeck)
	return nil
}

// orderCreateBot builds a new bot with an empty deck at the controller's
// starting position, funding it proportionally across all resource types
func (e *GameEngine) orderCreateBot(controller *Controller) error {
	if controller.TotalResources() < e.newBotCost {
		return fmt.Errorf("%w: creating a bot costs %d, %d total resources available",
			ErrInsufficientResources, e.newBotCost, controller.TotalResources())
	}

	if !e.advanceTime(HourCostCreateBot) {
		return fmt.Errorf("%w: %s needs %d hours", ErrInsufficientTime, CreateBot, HourCostCreateBot)
	}

	controller.deductProportional(e.newBotCost)

	bot := &Bot{Position: controller.StartingPosition, ControllerID: controller.ID}
	controller.Bots = append(controller.Bots, bot)
	e.grid.CellAtPos(bot.Position).Bots[bot] = struct{}{}

	e.logEventf("Controller %d performed %s", controller.ID, CreateBot)
	return nil
}

// advanceTime moves the clock forward by the given hours. It reports false,
// without mutation, when the delta would exceed the current day's remaining
// hours. Crossing the day boundary resets the hour, increments the day, and
// runs the maturation pass.
func (e *GameEngine) advanceTime(hours int) bool {
	if e.hour+hours > e.hoursPerDay {
		return false
	}
	e.hour += hours
	if e.hour >= e.hoursPerDay {
		e.hour = 0
		e.day++
		e.matureSeedlings()
	}
	return true
}

// sweepEliminations removes every controller whose ENERGY has reached zero or
// below, destroying all of its bots. Returns the eliminated controller ids.
func (e *GameEngine) sweepEliminations() []int {
	var eliminated []int

	remaining := e.controllers[:0]
	for _, controller := range e.controllers {
		if controller.Resources[ResourceEnergy] > 0 {
			remaining = append(remaining, controller)
			continue
		}

		e.logEventf("Controller %d has no energy left and is eliminated", controller.ID)
		bots := make([]*Bot, len(controller.Bots))
		copy(bots, controller.Bots)
		for _, bot := range bots {
			e.destroyBot(bot)
		}
		eliminated = append(eliminated, controller.ID)
	}
	e.controllers = remaining

	return eliminated
}

// checkVictory marks the game won by every controller whose balances meet
// all victory-condition thresholds simultaneously. The check is idempotent:
// a controller appears in the victors list once.
func (e *GameEngine) checkVictory() {
	for _, controller := range e.controllers {
		met := true
		for rt, required := range e.victoryConditions {
			if controller.Resources[rt] < required {
				met = false
				break
			}
		}
		if !met {
			continue
		}

		e.status = StatusVictory
		if !containsInt(e.victors, controller.ID) {
			e.victors = append(e.victors, controller.ID)
			e.logEventf("Controller %d has met the victory conditions", controller.ID)
		}
	}
}

// containsInt reports whether values includes v
func containsInt(values []int, v int) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
