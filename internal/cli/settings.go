package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. STYLEC_PRESET.
const EnvPrefix = "STYLEC"

// Settings are the CLI settings after layering defaults, the settings file,
// STYLEC_* environment variables and command line flags (later wins).
type Settings struct {
	Format  string `mapstructure:"format"`
	Verbose bool   `mapstructure:"verbose"`
	Preset  string `mapstructure:"preset"`
	DB      string `mapstructure:"db"`
	Hash    bool   `mapstructure:"hash"`
}

// LoadSettings resolves the settings for cmd. Flags of cmd, inherited ones
// included, are bound by name; a flag set on the command line beats the
// environment, which beats the settings file.
func LoadSettings(cmd *cobra.Command, settingsPath string) (*Settings, error) {
	v := viper.New()

	v.SetDefault("format", "text")
	v.SetDefault("verbose", false)
	v.SetDefault("preset", "")
	v.SetDefault("db", "")
	v.SetDefault("hash", false)

	if settingsPath != "" {
		v.SetConfigFile(settingsPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return &s, nil
}
