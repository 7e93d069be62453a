package engine

import "testing"

func placeSeedling(e *GameEngine, pos Position, seedlingType AssetType, amount, countdown int) *Asset {
	asset := &Asset{Type: seedlingType, Amount: amount, MaturityTime: &countdown}
	cell := e.grid.CellAtPos(pos)
	cell.Assets = append(cell.Assets, asset)
	return asset
}

func TestMaturationDecrementsCountdown(t *testing.T) {
	e := newTestEngine(t, testConfig())
	seedling := placeSeedling(e, Position{X: 1, Y: 1}, AssetOreSeedling, 1, 3)

	e.matureSeedlings()

	if !seedling.IsSeedling() {
		t.Fatal("Seedling with remaining countdown should stay a seedling")
	}
	if *seedling.MaturityTime != 2 {
		t.Errorf("Expected countdown 2, got %d", *seedling.MaturityTime)
	}
}

func TestMaturationConvertsDueSeedling(t *testing.T) {
	tests := []struct {
		seedling AssetType
		mature   AssetType
	}{
		{AssetOreSeedling, AssetOre},
		{AssetPlantSeedling, AssetPlant},
		{AssetCoalSeedling, AssetCoal},
	}

	for _, tt := range tests {
		t.Run(string(tt.seedling), func(t *testing.T) {
			e := newTestEngine(t, testConfig())
			placeSeedling(e, Position{X: 1, Y: 1}, tt.seedling, 2, 1)

			e.matureSeedlings()

			assets := e.Grid().CellAt(1, 1).Assets
			if len(assets) != 1 {
				t.Fatalf("Expected one asset after maturation, got %d", len(assets))
			}
			if assets[0].Type != tt.mature {
				t.Errorf("Expected %s, got %s", tt.mature, assets[0].Type)
			}
			if assets[0].IsSeedling() {
				t.Error("Matured asset should report mature (nil countdown)")
			}
			if assets[0].Amount != 2 {
				t.Errorf("Expected amount 2 carried over, got %d", assets[0].Amount)
			}
		})
	}
}

func TestMaturationMergesIntoExistingStack(t *testing.T) {
	e := newTestEngine(t, testConfig())
	cell := e.Grid().CellAt(3, 3)
	cell.Assets = append(cell.Assets, &Asset{Type: AssetOre, Amount: 5})
	placeSeedling(e, Position{X: 3, Y: 3}, AssetOreSeedling, 2, 1)

	e.matureSeedlings()

	if len(cell.Assets) != 1 {
		t.Fatalf("Expected merged single stack, got %d assets", len(cell.Assets))
	}
	if cell.Assets[0].Type != AssetOre || cell.Assets[0].Amount != 7 {
		t.Errorf("Expected 7 ORE, got %d %s", cell.Assets[0].Amount, cell.Assets[0].Type)
	}
}

func TestMaturationKeepsOtherAssetTypesSeparate(t *testing.T) {
	e := newTestEngine(t, testConfig())
	cell := e.Grid().CellAt(3, 3)
	cell.Assets = append(cell.Assets, &Asset{Type: AssetCoal, Amount: 1})
	placeSeedling(e, Position{X: 3, Y: 3}, AssetPlantSeedling, 1, 1)

	e.matureSeedlings()

	if len(cell.Assets) != 2 {
		t.Fatalf("Expected two asset entries, got %d", len(cell.Assets))
	}
	if cell.Assets[0].Type != AssetCoal || cell.Assets[1].Type != AssetPlant {
		t.Errorf("Expected COAL then PLANT, got %s then %s", cell.Assets[0].Type, cell.Assets[1].Type)
	}
}

func TestMaturationRunsOnOrderlessTurn(t *testing.T) {
	e := newTestEngine(t, testConfig())
	placeSeedling(e, Position{X: 0, Y: 4}, AssetCoalSeedling, 3, 1)

	e.ProcessTurn(nil)

	assets := e.Grid().CellAt(0, 4).Assets
	if len(assets) != 1 || assets[0].Type != AssetCoal {
		t.Fatalf("Expected matured COAL after orderless turn, got %+v", assets)
	}
	if assets[0].IsSeedling() {
		t.Error("Expected nil countdown after maturation")
	}
	if assets[0].Amount != 3 {
		t.Errorf("Expected seed amount 3 preserved, got %d", assets[0].Amount)
	}
}

func TestMaturationTakesMultipleTurns(t *testing.T) {
	e := newTestEngine(t, testConfig())
	seedling := placeSeedling(e, Position{X: 0, Y: 0}, AssetOreSeedling, 1, 2)

	e.ProcessTurn(nil)
	if !seedling.IsSeedling() {
		t.Fatal("Seedling should survive the first turn")
	}

	e.ProcessTurn(nil)
	assets := e.Grid().CellAt(0, 0).Assets
	if len(assets) != 1 || assets[0].Type != AssetOre {
		t.Fatalf("Expected matured ORE after second turn, got %+v", assets)
	}
}

// Day rollover inside advanceTime runs its own maturation pass, on top of the
// end-of-turn pass, so a turn that crosses a day boundary ages seedlings twice.
func TestDayRolloverMaturesAgain(t *testing.T) {
	config := testConfig()
	config.HoursPerDay = 2
	e := newTestEngine(t, config)
	placeSeedling(e, Position{X: 0, Y: 0}, AssetOreSeedling, 1, 2)

	e.ProcessTurn([]Order{{
		ControllerID: 0,
		Action:       TakeBotActions,
		Parameters:   OrderParameters{EnergyPoints: intp(2)},
	}})

	assets := e.Grid().CellAt(0, 0).Assets
	if len(assets) != 1 || assets[0].Type != AssetOre {
		t.Fatalf("Expected seedling matured by rollover plus turn-end pass, got %+v", assets)
	}
	if e.Day() != 1 || e.Hour() != 0 {
		t.Errorf("Expected day 1 hour 0 after rollover, got day %d hour %d", e.Day(), e.Hour())
	}
}
