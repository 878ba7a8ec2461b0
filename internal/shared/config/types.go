package config

import "fmt"

// DiscordConfig holds the gateway token and the per-guild identifiers the bot
// operates with. Role and channel ids are Discord snowflakes kept as strings.
type DiscordConfig struct {
	Token   string `mapstructure:"token"`
	GuildID string `mapstructure:"guild_id"`
	Prefix  string `mapstructure:"prefix"`

	AdminRole   string `mapstructure:"admin_role"`
	ModRole     string `mapstructure:"mod_role"`
	SupportRole string `mapstructure:"support_role"`

	TicketCategory   string `mapstructure:"ticket_category"`
	ClosedCategory   string `mapstructure:"closed_category"`
	TicketLogChannel string `mapstructure:"ticket_log_channel"`
	ModLogChannel    string `mapstructure:"mod_log_channel"`
}

// StaffRoles returns the role ids allowed to act on tickets.
func (c DiscordConfig) StaffRoles() []string {
	return []string{c.SupportRole, c.ModRole, c.AdminRole}
}

// ElevatedRoles returns the role ids allowed to reopen tickets and moderate.
func (c DiscordConfig) ElevatedRoles() []string {
	return []string{c.ModRole, c.AdminRole}
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// ServerConfig configures the optional status HTTP endpoint.
type ServerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

func (c ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TicketConfig holds the ticket workflow limits.
type TicketConfig struct {
	MaxPerUser     int `mapstructure:"max_per_user"`
	AutoCloseDays  int `mapstructure:"auto_close_days"`
	SweepIntervalH int `mapstructure:"sweep_interval_hours"`
}
