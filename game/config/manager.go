package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/crashsite/botcolony/game/engine"
	"github.com/crashsite/botcolony/game/service"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// configExtensions lists the recognized config file extensions in resolution order
var configExtensions = []string{".json", ".yaml", ".yml"}

// Manager handles game configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.GameConfig
	configs       map[string]*engine.GameConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.GameConfig),
	}

	m.mu.Lock()
	err := m.loadDefaultConfigLocked()
	m.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	return m, nil
}

// LoadConfig loads a configuration by name. The name may carry a .json, .yaml,
// or .yml extension; without one the extensions are tried in that order.
func (m *Manager) LoadConfig(name string) (*engine.GameConfig, error) {
	m.mu.RLock()
	if config, exists := m.configs[name]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadConfigLocked(name)
}

// loadConfigLocked is LoadConfig's cache-miss path. The caller must hold the
// write lock; the mutex is not reentrant, so internal callers that already
// hold it come here directly.
func (m *Manager) loadConfigLocked(name string) (*engine.GameConfig, error) {
	if config, exists := m.configs[name]; exists {
		return config, nil
	}

	configPath, err := m.resolvePath(name)
	if err != nil {
		return nil, err
	}

	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, err
	}

	m.configs[name] = config
	return config, nil
}

// resolvePath maps a config name to an existing file in the config directory
func (m *Manager) resolvePath(name string) (string, error) {
	if hasConfigExtension(name) {
		path := filepath.Join(m.configDir, name)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return "", ErrConfigNotFound
			}
			return "", fmt.Errorf("failed to stat config file: %w", err)
		}
		return path, nil
	}

	for _, ext := range configExtensions {
		path := filepath.Join(m.configDir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrConfigNotFound
}

// loadConfigFile reads, parses, and validates one config file. YAML files are
// re-encoded as JSON so both formats share the GameConfig wire forms.
func loadConfigFile(path string) (*engine.GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if ext := filepath.Ext(path); ext == ".yaml" || ext == ".yml" {
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// yamlToJSON converts a YAML document to its JSON encoding
func yamlToJSON(data []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// hasConfigExtension reports whether the name ends in a recognized extension
func hasConfigExtension(name string) bool {
	ext := filepath.Ext(name)
	for _, known := range configExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

// ListConfigs returns information about all available configurations
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listConfigsLocked()
}

// listConfigsLocked scans the config directory; the caller must hold the
// write lock since loading populates the cache
func (m *Manager) listConfigsLocked() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*service.ConfigInfo

	for _, entry := range entries {
		if entry.IsDir() || !hasConfigExtension(entry.Name()) {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))

		config, err := m.loadConfigLocked(name)
		if err != nil {
			// Skip invalid configs
			continue
		}

		configs = append(configs, &service.ConfigInfo{
			Filename:    entry.Name(),
			ConfigID:    name,
			Name:        config.Name,
			Description: config.Description,
			MapWidth:    config.MapWidth,
			MapHeight:   config.MapHeight,
			Controllers: len(config.Controllers),
		})
	}

	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.GameConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache reloads all cached configurations from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.configs = make(map[string]*engine.GameConfig)
	return m.loadDefaultConfigLocked()
}

// loadDefaultConfigLocked resolves the default configuration; the caller must
// hold the write lock. classic is preferred, then the first listed config,
// then the built-in fallback.
func (m *Manager) loadDefaultConfigLocked() error {
	config, err := m.loadConfigLocked("classic")
	if err != nil {
		configs, listErr := m.listConfigsLocked()
		if listErr != nil || len(configs) == 0 {
			m.defaultConfig = builtinDefaultConfig()
			return nil
		}

		config, err = m.loadConfigLocked(configs[0].ConfigID)
		if err != nil {
			m.defaultConfig = builtinDefaultConfig()
			return nil
		}
	}

	m.defaultConfig = config
	return nil
}

// SaveConfig saves a configuration to disk. Names carrying a .yaml or .yml
// extension are written as YAML, everything else as indented JSON.
func (m *Manager) SaveConfig(name string, config *engine.GameConfig) error {
	if err := engine.ValidateGameConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	filename := name
	if !hasConfigExtension(filename) {
		filename = name + ".json"
	}
	configPath := filepath.Join(m.configDir, filename)

	var data []byte
	var err error
	if ext := filepath.Ext(filename); ext == ".yaml" || ext == ".yml" {
		data, err = jsonShapedYAML(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[name] = config
	m.mu.Unlock()

	return nil
}

// jsonShapedYAML encodes the config as YAML with the JSON field names, by
// round-tripping through the JSON encoding
func jsonShapedYAML(config *engine.GameConfig) ([]byte, error) {
	jsonData, err := json.Marshal(config)
	if err != nil {
		return nil, err
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

// builtinDefaultConfig is the fallback game: a 5x5 map, a uniform scatter of
// deposits, and a single controller with one fully-programmed bot in the center
func builtinDefaultConfig() *engine.GameConfig {
	return &engine.GameConfig{
		Name:                 "default",
		Description:          "Default 5x5 colony with one controller",
		MapWidth:             5,
		MapHeight:            5,
		SeedlingMaturityTime: 5,
		NewBotCost:           20,
		ModifyDeckCost:       2,
		VictoryConditions:    map[string]int{"BIOMASS": 20},
		InitialState:         engine.InitialState{Mode: engine.InitialStateUniform},
		AssetDistribution: map[string]int{
			"ORE":   2,
			"PLANT": 2,
			"COAL":  2,
		},
		Controllers: []engine.ControllerConfig{
			{
				Resources: map[string]int{
					"MINERAL": 10,
					"BIOMASS": 10,
					"ENERGY":  10,
				},
				Bots: []engine.BotConfig{
					{
						X: 2,
						Y: 2,
						Deck: []engine.CardSpec{
							{ActionType: "MOVE", Parameter: "NORTH"},
							{ActionType: "MOVE", Parameter: "SOUTH"},
							{ActionType: "MOVE", Parameter: "EAST"},
							{ActionType: "MOVE", Parameter: "WEST"},
							{ActionType: "HARVEST", Parameter: "PLANT"},
							{ActionType: "PLANT", Parameter: "PLANT"},
							{ActionType: "HARVEST", Parameter: "ORE"},
							{ActionType: "HARVEST", Parameter: "COAL"},
						},
					},
				},
			},
		},
	}
}
