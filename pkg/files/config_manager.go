package files

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/small-frappuccino/modcore/pkg/errutil"
	"github.com/small-frappuccino/modcore/pkg/log"
	"github.com/small-frappuccino/modcore/pkg/util"
)

// ConfigManager owns the settings file and guards it for concurrent access.
type ConfigManager struct {
	mu     sync.RWMutex
	path   string
	config *BotConfig
}

// NewConfigManager creates a manager bound to the default settings path.
func NewConfigManager() *ConfigManager {
	return NewConfigManagerWithPath(util.GetSettingsFilePath())
}

// NewConfigManagerWithPath creates a manager bound to an explicit path. Used
// by tests.
func NewConfigManagerWithPath(path string) *ConfigManager {
	return &ConfigManager{
		path:   path,
		config: &BotConfig{},
	}
}

// Path returns the settings file path this manager reads and writes.
func (cm *ConfigManager) Path() string {
	return cm.path
}

// EnsureConfigFiles creates the settings file with an empty configuration if
// it does not exist yet.
func (cm *ConfigManager) EnsureConfigFiles() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if _, err := os.Stat(cm.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat settings file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cm.path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	if err := cm.saveLocked(); err != nil {
		return err
	}
	log.ApplicationLogger().Info("created settings file", "path", cm.path)
	return nil
}

// LoadConfig reads the settings file into memory.
func (cm *ConfigManager) LoadConfig() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	data, err := os.ReadFile(cm.path)
	if err != nil {
		if os.IsNotExist(err) {
			cm.config = &BotConfig{}
			return nil
		}
		return fmt.Errorf("read settings file: %w", err)
	}

	cfg := &BotConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse settings file: %w", err)
	}
	cm.config = cfg
	return nil
}

// SaveConfig writes the in-memory configuration back to disk.
func (cm *ConfigManager) SaveConfig() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return errutil.HandleConfigError("save settings", cm.path, cm.saveLocked)
}

func (cm *ConfigManager) saveLocked() error {
	data, err := json.MarshalIndent(cm.config, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cm.path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	if err := os.WriteFile(cm.path, data, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

// GuildConfig returns the configuration for a guild, or nil when the guild
// has none.
func (cm *ConfigManager) GuildConfig(guildID string) *GuildConfig {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	for i := range cm.config.Guilds {
		if cm.config.Guilds[i].GuildID == guildID {
			out := cm.config.Guilds[i]
			return &out
		}
	}
	return nil
}

// AddGuildConfig inserts or replaces the configuration for a guild and
// persists the file.
func (cm *ConfigManager) AddGuildConfig(cfg GuildConfig) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	replaced := false
	for i := range cm.config.Guilds {
		if cm.config.Guilds[i].GuildID == cfg.GuildID {
			cm.config.Guilds[i] = cfg
			replaced = true
			break
		}
	}
	if !replaced {
		cm.config.Guilds = append(cm.config.Guilds, cfg)
	}
	return cm.saveLocked()
}

// GuildIDs returns the IDs of all configured guilds.
func (cm *ConfigManager) GuildIDs() []string {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	ids := make([]string, 0, len(cm.config.Guilds))
	for i := range cm.config.Guilds {
		ids = append(ids, cm.config.Guilds[i].GuildID)
	}
	return ids
}
