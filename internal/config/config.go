package config

import (
	"fmt"
	"time"

	"github.com/safarshare/safar/internal/common"
	"github.com/spf13/viper"
)

// Default values used when neither the config file nor the environment set a key.
const (
	DefaultDatabasePath = "$HOME/.local/share/safar/safar.db"
	DefaultResetDelay   = 3 * time.Second
	DefaultHideAfter    = 4 * time.Second
)

// CatalogKinds lists the catalog kinds that may be overridden with a YAML file.
var CatalogKinds = []string{"travelers", "carriers", "shoppers", "commutes"}

// Config is the typed view of the viper configuration.
type Config struct {
	CatalogFiles map[string]string
	DatabasePath string
	BackupDir    string
	LogLevel     string
	LogFormat    string
	ResetDelay   time.Duration
	HideAfter    time.Duration
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("backup.dir", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("wizard.reset_delay", DefaultResetDelay)
	v.SetDefault("notify.hide_after", DefaultHideAfter)
}

// Load reads the configuration from v, applying defaults and expanding paths.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.GetViper()
	}
	SetDefaults(v)

	cfg := &Config{
		DatabasePath: ExpandPath(v.GetString("database.path")),
		BackupDir:    ExpandPath(v.GetString("backup.dir")),
		LogLevel:     v.GetString("logging.level"),
		LogFormat:    v.GetString("logging.format"),
		ResetDelay:   v.GetDuration("wizard.reset_delay"),
		HideAfter:    v.GetDuration("notify.hide_after"),
		CatalogFiles: make(map[string]string),
	}

	for _, kind := range CatalogKinds {
		if path := v.GetString("catalog." + kind + "_file"); path != "" {
			cfg.CatalogFiles[kind] = ExpandPath(path)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("%w: database.path", common.ErrMissingConfig)
	}
	if _, err := common.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("%w: logging.format must be console or json, got %q", common.ErrInvalidConfig, c.LogFormat)
	}
	if c.ResetDelay < 0 {
		return fmt.Errorf("%w: wizard.reset_delay cannot be negative", common.ErrInvalidConfig)
	}
	if c.HideAfter < 0 {
		return fmt.Errorf("%w: notify.hide_after cannot be negative", common.ErrInvalidConfig)
	}
	return nil
}
