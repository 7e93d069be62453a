package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/crashsite/botcolony/game/engine"
)

func createValidConfig() *engine.GameConfig {
	return &engine.GameConfig{
		Name:                 "Test Config",
		Description:          "Test configuration",
		MapWidth:             5,
		MapHeight:            5,
		SeedlingMaturityTime: 5,
		NewBotCost:           20,
		ModifyDeckCost:       2,
		VictoryConditions:    map[string]int{"BIOMASS": 20},
		InitialState:         engine.InitialState{Mode: engine.InitialStateEmpty},
		Controllers: []engine.ControllerConfig{
			{
				Resources: map[string]int{"MINERAL": 10, "BIOMASS": 10, "ENERGY": 10},
				Bots: []engine.BotConfig{
					{X: 2, Y: 2, Deck: []engine.CardSpec{{ActionType: "MOVE", Parameter: "NORTH"}}},
				},
			},
		},
	}
}

func writeConfigFile(t *testing.T, dir, name string, config *engine.GameConfig) {
	t.Helper()

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	filename := name
	if filepath.Ext(filename) == "" {
		filename = name + ".json"
	}

	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("valid directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfigFile(t, dir, "classic", createValidConfig())

		manager, err := NewManager(dir)
		if err != nil {
			t.Fatalf("Failed to create manager: %v", err)
		}
		if manager == nil {
			t.Error("Expected manager to be non-nil")
		}
	})

	t.Run("non-existent directory", func(t *testing.T) {
		_, err := NewManager("/non/existent/path")
		if err == nil {
			t.Error("Expected error for non-existent directory")
		}
	})

	t.Run("empty directory falls back to built-in default", func(t *testing.T) {
		manager, err := NewManager(t.TempDir())
		if err != nil {
			t.Fatalf("NewManager should succeed without config files: %v", err)
		}

		defaultConfig := manager.GetDefault()
		if defaultConfig == nil {
			t.Fatal("Expected default config to be available")
		}
		if err := engine.ValidateGameConfig(defaultConfig); err != nil {
			t.Errorf("Built-in default must be valid: %v", err)
		}
	})
}

func TestManager_LoadConfig(t *testing.T) {
	dir := t.TempDir()

	classic := createValidConfig()
	classic.Name = "Classic"
	writeConfigFile(t, dir, "classic", classic)

	duel := createValidConfig()
	duel.Name = "Duel"
	duel.MapWidth = 7
	writeConfigFile(t, dir, "duel", duel)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("load existing config", func(t *testing.T) {
		config, err := manager.LoadConfig("duel")
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if config.Name != "Duel" {
			t.Errorf("Expected config name 'Duel', got '%s'", config.Name)
		}
		if config.MapWidth != 7 {
			t.Errorf("Expected map width 7, got %d", config.MapWidth)
		}
	})

	t.Run("load with .json extension", func(t *testing.T) {
		config, err := manager.LoadConfig("duel.json")
		if err != nil {
			t.Fatalf("Failed to load config with extension: %v", err)
		}
		if config.Name != "Duel" {
			t.Errorf("Expected config name 'Duel', got '%s'", config.Name)
		}
	})

	t.Run("load from cache", func(t *testing.T) {
		config1, _ := manager.LoadConfig("duel")
		config2, err := manager.LoadConfig("duel")
		if err != nil {
			t.Fatalf("Failed to load config from cache: %v", err)
		}
		if config1 != config2 {
			t.Error("Expected config to be loaded from cache")
		}
	})

	t.Run("load non-existent config", func(t *testing.T) {
		_, err := manager.LoadConfig("non-existent")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("load invalid config", func(t *testing.T) {
		invalidData := []byte(`{"name": "Broken", "map_width": 2}`)
		if err := os.WriteFile(filepath.Join(dir, "invalid.json"), invalidData, 0644); err != nil {
			t.Fatal(err)
		}

		_, err := manager.LoadConfig("invalid")
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("load malformed JSON", func(t *testing.T) {
		malformedData := []byte(`{"name": "Malformed", invalid json}`)
		if err := os.WriteFile(filepath.Join(dir, "malformed.json"), malformedData, 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := manager.LoadConfig("malformed"); err == nil {
			t.Error("Expected error for malformed JSON")
		}
	})
}

func TestManager_LoadYAMLConfig(t *testing.T) {
	dir := t.TempDir()

	raw := `name: Frontier
description: YAML colony
map_width: 6
map_height: 6
seedling_maturity_time: 4
new_bot_cost: 25
modify_deck_cost: 3
victory_conditions:
  ENERGY: 40
initial_state: uniform
asset_distribution:
  COAL: 3
controllers:
  - resources:
      MINERAL: 5
      BIOMASS: 5
      ENERGY: 15
    bots:
      - x: 3
        y: 3
        deck:
          - action_type: MOVE
            parameter: RANDOM
          - action_type: HARVEST
            parameter: COAL
`
	if err := os.WriteFile(filepath.Join(dir, "frontier.yaml"), []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	config, err := manager.LoadConfig("frontier")
	if err != nil {
		t.Fatalf("Failed to load YAML config: %v", err)
	}
	if config.Name != "Frontier" {
		t.Errorf("Expected name 'Frontier', got '%s'", config.Name)
	}
	if config.VictoryConditions["ENERGY"] != 40 {
		t.Errorf("Unexpected victory conditions: %v", config.VictoryConditions)
	}
	if config.InitialState.Mode != engine.InitialStateUniform {
		t.Errorf("Expected uniform initial state, got %q", config.InitialState.Mode)
	}
	deck := config.Controllers[0].Bots[0].Deck
	if len(deck) != 2 || deck[1] != (engine.CardSpec{ActionType: "HARVEST", Parameter: "COAL"}) {
		t.Errorf("Unexpected deck from YAML: %v", deck)
	}

	// Extension-qualified lookup works too
	if _, err := manager.LoadConfig("frontier.yaml"); err != nil {
		t.Errorf("Failed to load by filename: %v", err)
	}
}

func TestManager_GetDefault(t *testing.T) {
	dir := t.TempDir()

	classic := createValidConfig()
	classic.Name = "Classic Colony"
	writeConfigFile(t, dir, "classic", classic)

	other := createValidConfig()
	other.Name = "Other"
	writeConfigFile(t, dir, "other", other)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	config := manager.GetDefault()
	if config == nil {
		t.Fatal("Expected default config to be non-nil")
	}
	if config.Name != "Classic Colony" {
		t.Errorf("Expected classic to be the default, got '%s'", config.Name)
	}

	if err := manager.SetDefault("other"); err != nil {
		t.Fatalf("SetDefault failed: %v", err)
	}
	if got := manager.GetDefault().Name; got != "Other" {
		t.Errorf("Expected default 'Other', got '%s'", got)
	}
}

func TestManager_ListConfigs(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"classic", "duel", "frontier"} {
		config := createValidConfig()
		config.Name = name
		writeConfigFile(t, dir, name, config)
	}

	// Non-config files are ignored
	os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("readme"), 0644)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	configList, err := manager.ListConfigs()
	if err != nil {
		t.Fatalf("Failed to list configs: %v", err)
	}
	if len(configList) != 3 {
		t.Fatalf("Expected 3 configs, got %d", len(configList))
	}

	found := make(map[string]bool)
	for _, info := range configList {
		if info.MapWidth != 5 || info.MapHeight != 5 || info.Controllers != 1 {
			t.Errorf("Unexpected config info: %+v", info)
		}
		found[info.ConfigID] = true
	}
	for _, name := range []string{"classic", "duel", "frontier"} {
		if !found[name] {
			t.Errorf("Config '%s' not found in list", name)
		}
	}
}

func TestManager_SaveConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "classic", createValidConfig())

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	t.Run("save and reload JSON", func(t *testing.T) {
		config := createValidConfig()
		config.Name = "Saved"
		if err := manager.SaveConfig("saved", config); err != nil {
			t.Fatalf("SaveConfig failed: %v", err)
		}

		loaded, err := manager.LoadConfig("saved")
		if err != nil {
			t.Fatalf("Failed to load saved config: %v", err)
		}
		if loaded.Name != "Saved" {
			t.Errorf("Expected name 'Saved', got '%s'", loaded.Name)
		}
	})

	t.Run("save and reload YAML", func(t *testing.T) {
		config := createValidConfig()
		config.Name = "Saved YAML"
		if err := manager.SaveConfig("saved.yaml", config); err != nil {
			t.Fatalf("SaveConfig failed: %v", err)
		}

		if err := manager.RefreshCache(); err != nil {
			t.Fatalf("RefreshCache failed: %v", err)
		}
		loaded, err := manager.LoadConfig("saved.yaml")
		if err != nil {
			t.Fatalf("Failed to load saved YAML config: %v", err)
		}
		if loaded.Name != "Saved YAML" {
			t.Errorf("Expected name 'Saved YAML', got '%s'", loaded.Name)
		}
	})

	t.Run("reject invalid config", func(t *testing.T) {
		config := createValidConfig()
		config.VictoryConditions = nil
		if err := manager.SaveConfig("broken", config); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestManager_RefreshCache(t *testing.T) {
	dir := t.TempDir()

	classic := createValidConfig()
	classic.Description = "first revision"
	writeConfigFile(t, dir, "classic", classic)

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	// Populate the cache, then change the file behind the manager's back
	if _, err := manager.LoadConfig("classic"); err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	classic.Description = "second revision"
	writeConfigFile(t, dir, "classic", classic)

	if cached, _ := manager.LoadConfig("classic"); cached.Description != "first revision" {
		t.Fatalf("Expected the cached revision before refresh, got %q", cached.Description)
	}

	// Must return; refresh reloads the default through the same lock it holds
	if err := manager.RefreshCache(); err != nil {
		t.Fatalf("RefreshCache failed: %v", err)
	}

	reloaded, err := manager.LoadConfig("classic")
	if err != nil {
		t.Fatalf("Failed to load config after refresh: %v", err)
	}
	if reloaded.Description != "second revision" {
		t.Errorf("Expected reloaded revision after refresh, got %q", reloaded.Description)
	}
	if got := manager.GetDefault().Description; got != "second revision" {
		t.Errorf("Expected default to follow the refreshed classic, got %q", got)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	dir := t.TempDir()

	names := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	for _, name := range names {
		config := createValidConfig()
		config.Name = name
		writeConfigFile(t, dir, name, config)
	}

	manager, err := NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if _, err := manager.LoadConfig(names[id%len(names)]); err != nil {
				errs <- err
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error during concurrent access: %v", err)
	}
}
