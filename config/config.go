// Package config loads and watches the service configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config represents the configuration implementation.
type Config struct {
	AppName string
	RunMode string
	Host    string
	Port    int
	Logger  *Logger
	Data    *Data
	Viper   *viper.Viper
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load loads the configuration from the given file. When path is empty,
// a config file named config.yaml is searched in the usual locations and
// built-in defaults apply if none is found.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/questlog")
		v.AddConfigPath("$HOME/.questlog")
		v.AddConfigPath(".")
		if ex, err := os.Executable(); err == nil {
			v.AddConfigPath(filepath.Dir(ex))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return fromViper(v), nil
}

// Watch watches the configuration file and invokes callback with the
// reloaded configuration when it changes.
func (c *Config) Watch(callback func(*Config)) {
	c.Viper.WatchConfig()
	c.Viper.OnConfigChange(func(_ fsnotify.Event) {
		callback(fromViper(c.Viper))
	})
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		AppName: v.GetString("app_name"),
		RunMode: v.GetString("run_mode"),
		Host:    v.GetString("server.host"),
		Port:    v.GetInt("server.port"),
		Logger:  getLoggerConfig(v),
		Data:    getDataConfig(v),
		Viper:   v,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "quest-service")
	v.SetDefault("run_mode", "release")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3001)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("data.database.master.driver", "sqlite3")
	v.SetDefault("data.database.master.source", "questlog.db")
	v.SetDefault("data.database.migrate", true)
}
