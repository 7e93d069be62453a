package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/crashsite/botcolony/game/engine"
	"github.com/crashsite/botcolony/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, config *engine.GameConfig) (*service.Session, error) {
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (m *MockSessionManager) GetOrCreate(id string, config *engine.GameConfig) (*service.Session, error) {
	if session, exists := m.sessions[id]; exists {
		return session, nil
	}
	return m.Create(id, config)
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return errors.New("session not found")
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.GameConfig
}

func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		configs: map[string]*engine.GameConfig{
			"classic": serviceTestConfig("classic"),
			"duel":    serviceTestConfig("duel"),
		},
	}
}

func serviceTestConfig(name string) *engine.GameConfig {
	return &engine.GameConfig{
		Name:                 name,
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

func (m *MockConfigManager) LoadConfig(name string) (*engine.GameConfig, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, errors.New("configuration not found")
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	result := make([]*service.ConfigInfo, 0, len(m.configs))
	for id, config := range m.configs {
		result = append(result, &service.ConfigInfo{
			Filename:    id + ".json",
			ConfigID:    id,
			Name:        config.Name,
			MapWidth:    config.MapWidth,
			MapHeight:   config.MapHeight,
			Controllers: len(config.Controllers),
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() *engine.GameConfig {
	return m.configs["classic"]
}

func (m *MockConfigManager) SaveConfig(name string, config *engine.GameConfig) error {
	m.configs[name] = config
	return nil
}

func newTestService() service.GameService {
	return service.NewGameService(NewMockSessionManager(), NewMockConfigManager())
}

func intp(v int) *int { return &v }

func TestCreateSession(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("with named config", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "duel")
		if err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		if info.ID == "" {
			t.Error("Expected a session ID")
		}
		if info.ConfigName != "duel" {
			t.Errorf("Expected config name 'duel', got '%s'", info.ConfigName)
		}
		if info.Snapshot == nil || info.Snapshot.MapSize.Width != 5 {
			t.Error("Expected an initial snapshot")
		}
	})

	t.Run("with default config", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "")
		if err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
		if info.ConfigName != "classic" {
			t.Errorf("Expected config name 'classic', got '%s'", info.ConfigName)
		}
	})

	t.Run("unknown config lists options", func(t *testing.T) {
		_, err := svc.CreateSession(ctx, "nope")
		if err == nil {
			t.Fatal("Expected error for unknown config")
		}
	})
}

func TestGetSession(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateSession(ctx, "classic")
	if err != nil {
		t.Fatal(err)
	}

	info, err := svc.GetSession(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if info.ID != created.ID {
		t.Errorf("Expected session %s, got %s", created.ID, info.ID)
	}

	if _, err := svc.GetSession(ctx, "missing"); err == nil {
		t.Error("Expected error for missing session")
	}
}

func TestListAndDeleteSessions(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, _ := svc.CreateSession(ctx, "classic")
	svc.CreateSession(ctx, "duel")

	sessions, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("Expected 2 sessions, got %d", len(sessions))
	}

	if err := svc.DeleteSession(ctx, first.ID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	sessions, _ = svc.ListSessions(ctx)
	if len(sessions) != 1 {
		t.Errorf("Expected 1 session after delete, got %d", len(sessions))
	}
}

func TestProcessTurn(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateSession(ctx, "classic")
	if err != nil {
		t.Fatal(err)
	}

	result, err := svc.ProcessTurn(ctx, created.ID, []engine.Order{{
		ControllerID: 0,
		Action:       engine.TakeBotActions,
		Parameters:   engine.OrderParameters{EnergyPoints: intp(2)},
	}})
	if err != nil {
		t.Fatalf("ProcessTurn failed: %v", err)
	}

	if len(result.Report.Failures) != 0 {
		t.Fatalf("Expected no failures, got %+v", result.Report.Failures)
	}
	if result.Report.Hour != 2 {
		t.Errorf("Expected hour 2, got %d", result.Report.Hour)
	}
	if result.Snapshot == nil || result.Snapshot.Hour != 2 {
		t.Error("Expected post-turn snapshot")
	}
	if got := result.Snapshot.Controllers[0].Resources["ENERGY"]; got != 8 {
		t.Errorf("Expected ENERGY 8 in snapshot, got %d", got)
	}

	if _, err := svc.ProcessTurn(ctx, "missing", nil); err == nil {
		t.Error("Expected error for missing session")
	}
}

func TestProcessTurnReportsOrderFailures(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, _ := svc.CreateSession(ctx, "classic")

	result, err := svc.ProcessTurn(ctx, created.ID, []engine.Order{
		{ControllerID: 9, Action: engine.CreateBot},
	})
	if err != nil {
		t.Fatalf("ProcessTurn failed: %v", err)
	}
	if len(result.Report.Failures) != 1 {
		t.Fatalf("Expected one failure, got %d", len(result.Report.Failures))
	}
	if !errors.Is(result.Report.Failures[0], engine.ErrInvalidController) {
		t.Errorf("Expected ErrInvalidController, got %v", result.Report.Failures[0])
	}
}

func TestGetSnapshot(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, _ := svc.CreateSession(ctx, "classic")

	snap, err := svc.GetSnapshot(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetSnapshot failed: %v", err)
	}
	if snap.Day != 0 || snap.Hour != 0 {
		t.Errorf("Unexpected clock in snapshot: day %d hour %d", snap.Day, snap.Hour)
	}
	if len(snap.Controllers) != 1 {
		t.Errorf("Expected 1 controller, got %d", len(snap.Controllers))
	}
}

func TestGetEvents(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, _ := svc.CreateSession(ctx, "classic")

	// Generate a few events
	for i := 0; i < 3; i++ {
		svc.ProcessTurn(ctx, created.ID, []engine.Order{{
			ControllerID: 0,
			Action:       engine.TakeBotActions,
			Parameters:   engine.OrderParameters{EnergyPoints: intp(1)},
		}})
	}

	all, err := svc.GetEvents(ctx, created.ID, 0)
	if err != nil {
		t.Fatalf("GetEvents failed: %v", err)
	}
	if all.Total < 3 || len(all.Events) != all.Total {
		t.Errorf("Expected the full log, got %d of %d", len(all.Events), all.Total)
	}

	tail, err := svc.GetEvents(ctx, created.ID, 2)
	if err != nil {
		t.Fatalf("GetEvents with limit failed: %v", err)
	}
	if len(tail.Events) != 2 {
		t.Errorf("Expected 2 events, got %d", len(tail.Events))
	}
	if tail.Total != all.Total {
		t.Errorf("Tail read should report the full total, got %d", tail.Total)
	}
}

func TestConfigOperations(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	configs, err := svc.ListConfigs(ctx)
	if err != nil {
		t.Fatalf("ListConfigs failed: %v", err)
	}
	if len(configs) != 2 {
		t.Errorf("Expected 2 configs, got %d", len(configs))
	}

	config, err := svc.LoadConfig(ctx, "classic")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Name != "classic" {
		t.Errorf("Expected config 'classic', got '%s'", config.Name)
	}

	custom := serviceTestConfig("custom")
	if err := svc.SaveConfig(ctx, "custom", custom); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	if _, err := svc.LoadConfig(ctx, "custom"); err != nil {
		t.Errorf("Saved config should be loadable: %v", err)
	}
}
