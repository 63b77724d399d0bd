package config

import (
	"encoding/json"
	"fmt"
)

// CurrentVersion is the current config schema version
const CurrentVersion = 1

// Migration represents a config migration function
type Migration struct {
	FromVersion int
	ToVersion   int
	Migrate     func(data map[string]interface{}) (map[string]interface{}, error)
}

// legacyMiscKeys maps the flat "misc" flags of unversioned configs to
// their place in the tasks section.
var legacyMiscKeys = map[string]string{
	"isAutoStartNextTask":   "autoStartNextTask",
	"isAutMarkParentAsDone": "autoMarkParentAsDone",
	"isAddToBottom":         "addToBottom",
}

// migrations is the list of migrations in order
var migrations = []Migration{
	// Migration 0 -> 1: "misc" flags move under "tasks", "storagePath"
	// moves to "storage.path"
	{
		FromVersion: 0,
		ToVersion:   1,
		Migrate: func(data map[string]interface{}) (map[string]interface{}, error) {
			if misc, ok := data["misc"].(map[string]interface{}); ok {
				tasks, _ := data["tasks"].(map[string]interface{})
				if tasks == nil {
					tasks = make(map[string]interface{})
				}
				for oldKey, newKey := range legacyMiscKeys {
					if v, ok := misc[oldKey]; ok {
						if _, exists := tasks[newKey]; !exists {
							tasks[newKey] = v
						}
					}
				}
				data["tasks"] = tasks
				delete(data, "misc")
			}

			if path, ok := data["storagePath"].(string); ok {
				storage, _ := data["storage"].(map[string]interface{})
				if storage == nil {
					storage = make(map[string]interface{})
				}
				if _, exists := storage["path"]; !exists {
					storage["path"] = path
				}
				data["storage"] = storage
				delete(data, "storagePath")
			}

			data["version"] = 1
			return data, nil
		},
	},
}

// ParseVersionedConfig parses config data with version migration support.
// Keys absent from data keep their DefaultConfig values.
func ParseVersionedConfig(data []byte) (*Config, error) {
	// First, parse as raw JSON to get version
	var rawConfig map[string]interface{}
	if err := json.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	// Detect version (0 if not present = legacy config)
	version := 0
	if v, ok := rawConfig["version"].(float64); ok {
		version = int(v)
	}

	// Check for future version
	if version > CurrentVersion {
		return nil, fmt.Errorf("config version %d is newer than supported version %d", version, CurrentVersion)
	}

	// Apply migrations if needed
	if version < CurrentVersion {
		var err error
		rawConfig, err = ApplyMigrations(rawConfig, version)
		if err != nil {
			return nil, fmt.Errorf("failed to migrate config: %w", err)
		}
	}

	// Re-marshal and unmarshal to get proper types
	migratedData, err := json.Marshal(rawConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal migrated config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(migratedData, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// ApplyMigrations applies all migrations from the given version to CurrentVersion
func ApplyMigrations(data map[string]interface{}, fromVersion int) (map[string]interface{}, error) {
	for _, migration := range migrations {
		if migration.FromVersion == fromVersion {
			var err error
			data, err = migration.Migrate(data)
			if err != nil {
				return nil, fmt.Errorf("migration %d -> %d failed: %w",
					migration.FromVersion, migration.ToVersion, err)
			}
			fromVersion = migration.ToVersion
		}
	}

	if fromVersion < CurrentVersion {
		return nil, fmt.Errorf("no migration path from version %d to %d", fromVersion, CurrentVersion)
	}

	return data, nil
}

// MarshalVersionedConfig serializes a config with version information
func MarshalVersionedConfig(cfg *Config) ([]byte, error) {
	cfgData, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}

	// Parse back as map so version sits beside the sections
	var cfgMap map[string]interface{}
	if err := json.Unmarshal(cfgData, &cfgMap); err != nil {
		return nil, err
	}
	cfgMap["version"] = CurrentVersion

	return json.MarshalIndent(cfgMap, "", "  ")
}
