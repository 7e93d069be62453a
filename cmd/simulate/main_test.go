package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/crashsite/botcolony/game/engine"
)

const testConfig = `{
	"name": "Simulation Test",
	"map_width": 5,
	"map_height": 5,
	"seedling_maturity_time": 3,
	"new_bot_cost": 20,
	"modify_deck_cost": 2,
	"victory_conditions": {"BIOMASS": 500},
	"initial_state": "uniform",
	"asset_distribution": {"ORE": 2, "PLANT": 2, "COAL": 2},
	"controllers": [
		{
			"resources": {"MINERAL": 10, "BIOMASS": 10, "ENERGY": 10},
			"bots": [
				{
					"x": 2, "y": 2,
					"deck": [
						{"action_type": "MOVE", "parameter": "NORTH"},
						{"action_type": "HARVEST", "parameter": "PLANT"}
					]
				}
			]
		}
	]
}`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.json")
	if err := os.WriteFile(path, []byte(testConfig), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestBuildTurnOrders(t *testing.T) {
	controllers := []*engine.Controller{
		{
			ID: 0,
			Resources: map[engine.ResourceType]int{
				engine.ResourceMineral: 10,
				engine.ResourceBiomass: 10,
				engine.ResourceEnergy:  10,
			},
		},
		{
			ID: 1,
			Resources: map[engine.ResourceType]int{
				engine.ResourceEnergy: 2,
			},
		},
		{
			ID:        2,
			Resources: map[engine.ResourceType]int{},
		},
	}

	orders := buildTurnOrders(controllers, 5)

	if len(orders) != 2 {
		t.Fatalf("Expected 2 orders, got %d", len(orders))
	}

	if orders[0].ControllerID != 0 || *orders[0].Parameters.EnergyPoints != 5 {
		t.Errorf("Expected controller 0 to spend 5 points, got controller %d spending %d",
			orders[0].ControllerID, *orders[0].Parameters.EnergyPoints)
	}

	// Controller 1 cannot fund 5 points; the spend clamps to its total
	if orders[1].ControllerID != 1 || *orders[1].Parameters.EnergyPoints != 2 {
		t.Errorf("Expected controller 1 to spend 2 points, got controller %d spending %d",
			orders[1].ControllerID, *orders[1].Parameters.EnergyPoints)
	}

	for _, order := range orders {
		if order.Action != engine.TakeBotActions {
			t.Errorf("Expected %s order, got %s", engine.TakeBotActions, order.Action)
		}
	}
}

func TestBuildTurnOrders_NoControllers(t *testing.T) {
	if orders := buildTurnOrders(nil, 3); len(orders) != 0 {
		t.Errorf("Expected no orders, got %d", len(orders))
	}
}

func TestRunSimulation(t *testing.T) {
	path := writeTestConfig(t)

	err := newCommand().Run(context.Background(), []string{
		"simulate", "--config", path, "--days", "3", "--seed", "42",
	})
	if err != nil {
		t.Fatalf("Expected simulation to finish, got error: %v", err)
	}
}

func TestRunSimulation_MissingConfig(t *testing.T) {
	err := newCommand().Run(context.Background(), []string{
		"simulate", "--config", "/non/existent/scenario.json",
	})
	if err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestRunSimulation_InvalidFlags(t *testing.T) {
	path := writeTestConfig(t)

	tests := []struct {
		name string
		args []string
	}{
		{"zero days", []string{"simulate", "--config", path, "--days=0"}},
		{"negative energy", []string{"simulate", "--config", path, "--energy=-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := newCommand().Run(context.Background(), tt.args); err == nil {
				t.Error("Expected error for invalid flag value")
			}
		})
	}
}
