package engine

// executeCard runs a single card for a bot. Soft gameplay failures (blocked
// move, empty harvest, occupied plant) return false; they are logged no-ops,
// never errors. Deck rotation is the caller's responsibility.
func (e *GameEngine) executeCard(bot *Bot, card Card) bool {
	switch card.Action {
	case ActionMove:
		return e.executeMove(bot, card.Direction)
	case ActionHarvest:
		return e.executeHarvest(bot, card.Asset)
	case ActionPlant:
		return e.executePlant(bot, card.Asset)
	}
	return false
}

// executeMove moves the bot one cell. RANDOM resolves to a uniformly chosen
// cardinal direction at execution time. Moving out of bounds is rejected in
// place; moving onto any occupied cell destroys the mover and every occupant,
// with no survivor.
func (e *GameEngine) executeMove(bot *Bot, dir Direction) bool {
	if dir == RandomDirection {
		dir = cardinalDirections[e.rng.Intn(len(cardinalDirections))]
	}

	oldPos := bot.Position
	newPos := oldPos.Add(directionVectors[dir])
	e.logEventf("Controller %d bot moves %s from (%d, %d) to (%d, %d)",
		bot.ControllerID, dir, oldPos.X, oldPos.Y, newPos.X, newPos.Y)

	if !e.grid.IsValid(newPos) {
		e.logEventf("Controller %d bot blocked at (%d, %d): (%d, %d) is out of bounds",
			bot.ControllerID, oldPos.X, oldPos.Y, newPos.X, newPos.Y)
		return false
	}

	oldCell := e.grid.CellAtPos(oldPos)
	newCell := e.grid.CellAtPos(newPos)

	if len(newCell.Bots) > 0 {
		e.logEventf("Collision detected at (%d, %d)", newPos.X, newPos.Y)

		victims := make([]*Bot, 0, len(newCell.Bots)+1)
		victims = append(victims, bot)
		for occupant := range newCell.Bots {
			victims = append(victims, occupant)
		}

		delete(oldCell.Bots, bot)
		for occupant := range newCell.Bots {
			delete(newCell.Bots, occupant)
		}

		for _, victim := range victims {
			if owner, ok := e.controllerByID(victim.ControllerID); ok {
				owner.removeBot(victim)
			}
			e.logEventf("Controller %d bot destroyed at (%d, %d)",
				victim.ControllerID, victim.Position.X, victim.Position.Y)
		}
		return true
	}

	delete(oldCell.Bots, bot)
	bot.Position = newPos
	newCell.Bots[bot] = struct{}{}
	return true
}

// executeHarvest converts the first mature asset of the requested type on the
// bot's cell into the mapped resource for the bot's controller
func (e *GameEngine) executeHarvest(bot *Bot, assetType AssetType) bool {
	cell := e.grid.CellAtPos(bot.Position)

	i := cell.findMatureAsset(assetType)
	if i < 0 {
		e.logEventf("Controller %d bot failed to harvest %s at (%d, %d)",
			bot.ControllerID, assetType, bot.Position.X, bot.Position.Y)
		return false
	}

	asset := cell.Assets[i]
	if owner, ok := e.controllerByID(bot.ControllerID); ok {
		owner.Resources[assetToResource[assetType]] += asset.Amount
	}
	cell.Assets = append(cell.Assets[:i], cell.Assets[i+1:]...)

	e.logEventf("Controller %d bot harvested %d %s at (%d, %d)",
		bot.ControllerID, asset.Amount, assetType, bot.Position.X, bot.Position.Y)
	return true
}

// executePlant places a seedling of the corresponding seedling type on the
// bot's cell. At most one seedling may occupy a cell at a time.
func (e *GameEngine) executePlant(bot *Bot, assetType AssetType) bool {
	cell := e.grid.CellAtPos(bot.Position)

	if cell.HasSeedling() {
		e.logEventf("Controller %d bot failed to plant %s (seedling exists) at (%d, %d)",
			bot.ControllerID, assetType, bot.Position.X, bot.Position.Y)
		return false
	}

	mt := e.seedlingMaturityTime
	cell.Assets = append(cell.Assets, &Asset{
		Type:         assetToSeedling[assetType],
		Amount:       1,
		MaturityTime: &mt,
	})
	e.logEventf("Controller %d bot planted %s seedling at (%d, %d)",
		bot.ControllerID, assetType, bot.Position.X, bot.Position.Y)
	return true
}

// destroyBot removes a bot from the grid and from its controller's list
func (e *GameEngine) destroyBot(bot *Bot) {
	if owner, ok := e.controllerByID(bot.ControllerID); ok {
		owner.removeBot(bot)
	}
	delete(e.grid.CellAtPos(bot.Position).Bots, bot)
	e.logEventf("Controller %d bot destroyed at (%d, %d)",
		bot.ControllerID, bot.Position.X, bot.Position.Y)
}
