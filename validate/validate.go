// Command validate provides a small CLI that validates simulation
// configuration files in the ../configs directory. It checks:
//   - JSON/YAML structure and required fields
//   - Map bounds and explicitly placed assets
//   - Controller counts, resources, bot positions, and deck cards
//   - Victory condition resource names
//
// It accepts both .json and .yaml/.yml files and prints a concise report,
// exiting with non-zero status if any configuration is invalid.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/crashsite/botcolony/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration file. Structural
// and semantic checks are delegated to the engine validator; the rest of the
// function summarizes the scenario for the report.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	config, err := decodeConfig(filePath, data)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	if err := engine.ValidateGameConfig(config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	// Informational summary
	totalBots := 0
	for _, controller := range config.Controllers {
		totalBots += len(controller.Bots)
	}

	conditions := make([]string, 0, len(config.VictoryConditions))
	for resource, amount := range config.VictoryConditions {
		conditions = append(conditions, fmt.Sprintf("%s>=%d", resource, amount))
	}

	result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", config.MapWidth, config.MapHeight))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Controllers: %d (%d bots)", len(config.Controllers), totalBots))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Victory: %s", strings.Join(conditions, ", ")))
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Seedling maturity: %d days", config.SeedlingMaturityTime))

	return result
}

// decodeConfig parses the raw bytes based on the file extension. YAML goes
// through a JSON round trip so the same struct tags apply to both formats.
func decodeConfig(filePath string, data []byte) (*engine.GameConfig, error) {
	var config engine.GameConfig

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		var raw interface{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("Invalid YAML: %v", err)
		}
		jsonData, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("Invalid YAML structure: %v", err)
		}
		if err := json.Unmarshal(jsonData, &config); err != nil {
			return nil, fmt.Errorf("Invalid configuration: %v", err)
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("Invalid JSON: %v", err)
		}
	}

	return &config, nil
}

// main scans ../configs for config files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	var files []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(configDir, pattern))
		if err != nil {
			fmt.Printf("Error finding config files: %v\n", err)
			os.Exit(1)
		}
		files = append(files, matches...)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
