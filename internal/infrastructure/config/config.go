package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "warden/internal/shared/config"
)

type Config struct {
	Discord  sharedConfig.DiscordConfig  `mapstructure:"discord"`
	Database sharedConfig.DatabaseConfig `mapstructure:"database"`
	Logger   sharedConfig.LoggerConfig   `mapstructure:"logger"`
	Server   sharedConfig.ServerConfig   `mapstructure:"server"`
	Tickets  sharedConfig.TicketConfig   `mapstructure:"tickets"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")

	viper.SetEnvPrefix("WARDEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A config file is optional; everything can come from the environment.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration.
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func (c *Config) Validate() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("config: discord.token is required")
	}
	if c.Discord.GuildID == "" {
		return fmt.Errorf("config: discord.guild_id is required")
	}
	if c.Tickets.MaxPerUser <= 0 {
		return fmt.Errorf("config: tickets.max_per_user must be positive")
	}
	if c.Tickets.AutoCloseDays <= 0 {
		return fmt.Errorf("config: tickets.auto_close_days must be positive")
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("discord.prefix", ".")

	viper.SetDefault("database.path", "warden.db")

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	viper.SetDefault("server.enabled", true)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")

	viper.SetDefault("tickets.max_per_user", 3)
	viper.SetDefault("tickets.auto_close_days", 7)
	viper.SetDefault("tickets.sweep_interval_hours", 24)
}
