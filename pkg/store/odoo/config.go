package odoo

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the connection settings for one Odoo instance.
type Config struct {
	URL      string        `mapstructure:"url"`
	Database string        `mapstructure:"database"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// LoadConfig loads connection settings from the specified profile path.
func LoadConfig(profilePath string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(profilePath)
	v.SetDefault("timeout", 30*time.Second)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to parse odoo config: %w", err)
	}
	return config, config.Validate()
}

// Validate checks that the mandatory connection fields are present.
func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("odoo config: url is required")
	}
	if c.Database == "" {
		return fmt.Errorf("odoo config: database is required")
	}
	if c.Username == "" || c.Password == "" {
		return fmt.Errorf("odoo config: username and password are required")
	}
	return nil
}
