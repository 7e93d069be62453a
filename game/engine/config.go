package engine

import (
	"encoding/json"
	"fmt"
	"os"
)

// Initial-state modes for asset placement at setup
const (
	InitialStateUniform  = "uniform"
	InitialStateEmpty    = "empty"
	InitialStateExplicit = "explicit"
)

// PlacedAsset is one explicitly placed asset in a config's initial state
type PlacedAsset struct {
	Type   string `json:"type"`
	Amount int    `json:"amount"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// InitialState describes how assets are placed at setup. On the wire it is
// either the literal "uniform", the literal "empty", or a list of placed
// assets (mode "explicit").
type InitialState struct {
	Mode   string
	Assets []PlacedAsset
}

// UnmarshalJSON accepts either a mode string or an explicit asset list
func (s *InitialState) UnmarshalJSON(data []byte) error {
	var mode string
	if err := json.Unmarshal(data, &mode); err == nil {
		s.Mode = mode
		s.Assets = nil
		return nil
	}
	var assets []PlacedAsset
	if err := json.Unmarshal(data, &assets); err != nil {
		return fmt.Errorf("initial_state must be %q, %q, or a list of placed assets", InitialStateUniform, InitialStateEmpty)
	}
	s.Mode = InitialStateExplicit
	s.Assets = assets
	return nil
}

// MarshalJSON writes the same wire forms UnmarshalJSON accepts
func (s InitialState) MarshalJSON() ([]byte, error) {
	if s.Mode == InitialStateExplicit {
		return json.Marshal(s.Assets)
	}
	return json.Marshal(s.Mode)
}

// BotConfig declares one initial bot: a position and a deck of card specs
type BotConfig struct {
	X    int        `json:"x"`
	Y    int        `json:"y"`
	Deck []CardSpec `json:"deck"`
}

// ControllerConfig declares one controller's starting resources and bots
type ControllerConfig struct {
	Resources map[string]int `json:"resources"`
	Bots      []BotConfig    `json:"bots"`
}

// GameConfig is the full game configuration consumed at construction
type GameConfig struct {
	Name                 string             `json:"name"`
	Description          string             `json:"description,omitempty"`
	MapWidth             int                `json:"map_width"`
	MapHeight            int                `json:"map_height"`
	SeedlingMaturityTime int                `json:"seedling_maturity_time"`
	NewBotCost           int                `json:"new_bot_cost"`
	ModifyDeckCost       int                `json:"modify_deck_cost"`
	HoursPerDay          int                `json:"hours_per_day,omitempty"`
	VictoryConditions    map[string]int     `json:"victory_conditions"`
	InitialState         InitialState       `json:"initial_state"`
	AssetDistribution    map[string]int     `json:"asset_distribution,omitempty"`
	Controllers          []ControllerConfig `json:"controllers"`
}

// boundsCheck validates an integer config field against inclusive bounds
func boundsCheck(field string, value, min, max int) error {
	if value < min || value > max {
		return fmt.Errorf("config validation: %s must be between %d and %d, got %d", field, min, max, value)
	}
	return nil
}

// ValidateGameConfig validates a game configuration for correctness.
// hours_per_day is optional and defaults to DefaultHoursPerDay when zero.
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is required")
	}
	if err := boundsCheck("map_width", config.MapWidth, MinMapSize, MaxMapSize); err != nil {
		return err
	}
	if err := boundsCheck("map_height", config.MapHeight, MinMapSize, MaxMapSize); err != nil {
		return err
	}
	if err := boundsCheck("seedling_maturity_time", config.SeedlingMaturityTime, MinMaturityTime, MaxMaturityTime); err != nil {
		return err
	}
	if err := boundsCheck("new_bot_cost", config.NewBotCost, MinCost, MaxCost); err != nil {
		return err
	}
	if err := boundsCheck("modify_deck_cost", config.ModifyDeckCost, MinCost, MaxCost); err != nil {
		return err
	}
	if config.HoursPerDay != 0 {
		if err := boundsCheck("hours_per_day", config.HoursPerDay, MinHoursPerDay, MaxHoursPerDay); err != nil {
			return err
		}
	}

	if len(config.VictoryConditions) == 0 {
		return fmt.Errorf("config validation: victory_conditions is required")
	}
	for name, amount := range config.VictoryConditions {
		if _, err := parseResourceType(name); err != nil {
			return fmt.Errorf("config validation: victory_conditions: %w", err)
		}
		if amount <= 0 {
			return fmt.Errorf("config validation: victory_conditions[%s] must be positive, got %d", name, amount)
		}
	}

	switch config.InitialState.Mode {
	case InitialStateUniform:
		if len(config.AssetDistribution) == 0 {
			return fmt.Errorf("config validation: asset_distribution is required when initial_state is %q", InitialStateUniform)
		}
		for name, count := range config.AssetDistribution {
			if _, err := parseAssetType(name); err != nil {
				return fmt.Errorf("config validation: asset_distribution: %w", err)
			}
			if count < 0 {
				return fmt.Errorf("config validation: asset_distribution[%s] must be non-negative, got %d", name, count)
			}
		}
	case InitialStateEmpty:
	case InitialStateExplicit:
		for i, placed := range config.InitialState.Assets {
			if _, err := parseAssetType(placed.Type); err != nil {
				return fmt.Errorf("config validation: initial_state[%d]: %w", i, err)
			}
			if placed.Amount <= 0 {
				return fmt.Errorf("config validation: initial_state[%d]: amount must be positive, got %d", i, placed.Amount)
			}
			if placed.X < 0 || placed.X >= config.MapWidth || placed.Y < 0 || placed.Y >= config.MapHeight {
				return fmt.Errorf("config validation: initial_state[%d]: position (%d, %d) is outside the %dx%d map",
					i, placed.X, placed.Y, config.MapWidth, config.MapHeight)
			}
		}
	default:
		return fmt.Errorf("config validation: initial_state must be %q, %q, or a list of placed assets",
			InitialStateUniform, InitialStateEmpty)
	}

	for ci, cc := range config.Controllers {
		for name := range cc.Resources {
			if _, err := parseResourceType(name); err != nil {
				return fmt.Errorf("config validation: controllers[%d].resources: %w", ci, err)
			}
		}
		for bi, bc := range cc.Bots {
			if bc.X < 0 || bc.X >= config.MapWidth || bc.Y < 0 || bc.Y >= config.MapHeight {
				return fmt.Errorf("config validation: controllers[%d].bots[%d]: position (%d, %d) is outside the %dx%d map",
					ci, bi, bc.X, bc.Y, config.MapWidth, config.MapHeight)
			}
			for di, spec := range bc.Deck {
				if _, err := ParseCard(spec); err != nil {
					return fmt.Errorf("config validation: controllers[%d].bots[%d].deck[%d]: %w", ci, bi, di, err)
				}
			}
		}
	}

	return nil
}

// LoadGameConfig loads and validates a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, err)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// hoursPerDayOrDefault resolves the optional hours_per_day field
func (c *GameConfig) hoursPerDayOrDefault() int {
	if c.HoursPerDay == 0 {
		return DefaultHoursPerDay
	}
	return c.HoursPerDay
}

// parseResourceType validates a resource name from config or orders
func parseResourceType(name string) (ResourceType, error) {
	switch ResourceType(name) {
	case ResourceMineral, ResourceBiomass, ResourceEnergy:
		return ResourceType(name), nil
	}
	return "", fmt.Errorf("unknown resource type %q", name)
}

// parseAssetType validates an asset name from config
func parseAssetType(name string) (AssetType, error) {
	switch AssetType(name) {
	case AssetOre, AssetPlant, AssetCoal, AssetOreSeedling, AssetPlantSeedling, AssetCoalSeedling:
		return AssetType(name), nil
	}
	return "", fmt.Errorf("unknown asset type %q", name)
}
