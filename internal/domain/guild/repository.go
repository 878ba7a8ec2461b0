package guild

import "context"

// SettingsRepository persists per-guild settings as key/value rows.
type SettingsRepository interface {
	Get(ctx context.Context, guildID string) (*Settings, error)
	Upsert(ctx context.Context, s *Settings) error
}

// SettingsResolver yields the effective settings for a guild: stored values
// override the static configuration defaults.
type SettingsResolver interface {
	Resolve(ctx context.Context, guildID string) (*Settings, error)
}
