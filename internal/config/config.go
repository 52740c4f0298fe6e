// Package config provides configuration management for the datemark tool
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/photokit/datemark/pkg/watermark"
)

// AppConfig represents the application configuration
type AppConfig struct {
	FontSize int    `mapstructure:"font_size"`
	Color    string `mapstructure:"color"`
	Position string `mapstructure:"position"`
	Quality  int    `mapstructure:"quality"`
	LogLevel string `mapstructure:"log_level"`

	// Candidate font files tried in order
	SystemFontPaths []string `mapstructure:"system_font_paths"`
}

// Manager handles configuration loading and management
type Manager struct {
	config *AppConfig
	viper  *viper.Viper
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	v := viper.New()
	setDefaults(v)

	return &Manager{
		config: &AppConfig{},
		viper:  v,
	}
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("font_size", 36)
	v.SetDefault("color", "white")
	v.SetDefault("position", string(watermark.AnchorBottomRight))
	v.SetDefault("quality", 95)
	v.SetDefault("log_level", "info")
	v.SetDefault("system_font_paths", watermark.DefaultFontPaths())
}

// LoadConfig loads configuration from file and environment
func (m *Manager) LoadConfig(configFile string) error {
	if configFile != "" {
		m.viper.SetConfigFile(configFile)
	} else {
		m.viper.SetConfigName("datemark")
		m.viper.SetConfigType("yaml")
		m.viper.AddConfigPath(".")
		m.viper.AddConfigPath("$HOME/.config/datemark")
		m.viper.AddConfigPath("/etc/datemark")
	}

	m.viper.SetEnvPrefix("DATEMARK")
	m.viper.AutomaticEnv()

	if err := m.viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	if err := m.viper.Unmarshal(m.config); err != nil {
		return fmt.Errorf("unmarshaling config: %w", err)
	}

	return nil
}

// GetAppConfig returns the loaded application configuration
func (m *Manager) GetAppConfig() *AppConfig {
	return m.config
}

// CreateSpec builds a watermark spec from the configuration plus any CLI
// flag overrides. Invalid position or color values are rejected here, before
// any image is processed.
func (m *Manager) CreateSpec(overrides map[string]interface{}) (watermark.Spec, error) {
	for key, value := range overrides {
		m.viper.Set(key, value)
	}

	anchor, err := watermark.ParseAnchor(m.viper.GetString("position"))
	if err != nil {
		return watermark.Spec{}, err
	}

	colorName := m.viper.GetString("color")
	col, err := watermark.ParseColor(colorName)
	if err != nil {
		return watermark.Spec{}, err
	}

	spec := watermark.Spec{
		FontSize:  m.viper.GetInt("font_size"),
		Color:     col,
		ColorName: colorName,
		Anchor:    anchor,
		Quality:   m.viper.GetInt("quality"),
	}
	if err := spec.Validate(); err != nil {
		return watermark.Spec{}, err
	}

	return spec, nil
}

// FontPaths returns the configured candidate font files.
func (m *Manager) FontPaths() []string {
	return m.viper.GetStringSlice("system_font_paths")
}

// SaveConfig saves the current configuration to a file
func (m *Manager) SaveConfig(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return m.viper.WriteConfigAs(filename)
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./datemark.yaml"
	}
	return filepath.Join(homeDir, ".config", "datemark", "config.yaml")
}

// GenerateExampleConfig creates an example configuration file
func GenerateExampleConfig(filename string) error {
	manager := NewManager()

	// Set some example values
	manager.viper.Set("font_size", 48)
	manager.viper.Set("color", "#ffcc00")
	manager.viper.Set("position", string(watermark.AnchorBottomLeft))
	manager.viper.Set("quality", 90)

	return manager.SaveConfig(filename)
}
