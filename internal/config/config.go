// Package config loads runtime settings from defaults, an optional config
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	gameconfig "github.com/tomz197/invaders/internal/loop/config"
)

// EnvPrefix namespaces environment variables that have no legacy name.
const EnvPrefix = "INVADERS"

// SSH holds settings for the SSH game server.
type SSH struct {
	Host        string `mapstructure:"host"`
	Port        string `mapstructure:"port"`
	HostKeyPath string `mapstructure:"hostKey"`
}

// Web holds settings for the landing page server.
type Web struct {
	Host        string `mapstructure:"host"`
	Port        string `mapstructure:"port"`
	DisplayHost string `mapstructure:"displayHost"` // Hostname shown in the ssh command
}

// Field is the logical play area size.
type Field struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

// Config is the full runtime configuration.
type Config struct {
	LogLevel string `mapstructure:"logLevel"`
	LogFile  string `mapstructure:"logFile"` // Local play only; empty discards logs
	Audio    bool   `mapstructure:"audio"`
	SSH      SSH    `mapstructure:"ssh"`
	Web      Web    `mapstructure:"web"`
	Field    Field  `mapstructure:"field"`
}

// Load reads configuration. file may be empty, in which case only defaults
// and the environment are used. A named file that does not exist is an error.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "")
	v.SetDefault("audio", true)

	v.SetDefault("ssh.host", "::")
	v.SetDefault("ssh.port", "2222")
	v.SetDefault("ssh.hostKey", "/app/keys/host_key")

	v.SetDefault("web.host", "0.0.0.0")
	v.SetDefault("web.port", "8080")
	v.SetDefault("web.displayHost", "localhost")

	v.SetDefault("field.width", gameconfig.FieldWidth)
	v.SetDefault("field.height", gameconfig.FieldHeight)
}

// bindLegacyEnv keeps the environment names the deployment already uses.
func bindLegacyEnv(v *viper.Viper) error {
	legacy := map[string]string{
		"logLevel":        EnvPrefix + "_LOG_LEVEL",
		"logFile":         EnvPrefix + "_LOG_FILE",
		"ssh.host":        "SSH_HOST",
		"ssh.port":        "SSH_PORT",
		"ssh.hostKey":     "SSH_HOST_KEY",
		"web.host":        "WEB_HOST",
		"web.port":        "WEB_PORT",
		"web.displayHost": "SSH_DISPLAY_HOST",
	}
	for key, env := range legacy {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("binding %s: %w", env, err)
		}
	}
	return nil
}

func (c *Config) validate() error {
	minWidth := gameconfig.EnemyColumns*(gameconfig.EnemyWidth+gameconfig.EnemySpacing) + gameconfig.EnemySpacing
	if c.Field.Width < minWidth {
		return fmt.Errorf("field width %.0f is too small, need at least %.0f", c.Field.Width, float64(minWidth))
	}
	if c.Field.Height < gameconfig.EnemyTop+gameconfig.MaxRows*gameconfig.EnemyRowPitch+gameconfig.BulletSpawnOffset {
		return errors.New("field height too small for the last wave")
	}
	return nil
}
