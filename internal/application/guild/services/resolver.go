// Package services hosts guild-level application services.
package services

import (
	"context"
	"fmt"

	"warden/internal/domain/guild"
	"warden/internal/shared/config"
)

// SettingsResolver merges stored per-guild settings over the static
// configuration. A guild with no stored row falls back entirely to config;
// stored rows win field by field.
type SettingsResolver struct {
	settingsRepo guild.SettingsRepository
	defaults     config.DiscordConfig
}

func NewSettingsResolver(settingsRepo guild.SettingsRepository, defaults config.DiscordConfig) *SettingsResolver {
	return &SettingsResolver{
		settingsRepo: settingsRepo,
		defaults:     defaults,
	}
}

func (r *SettingsResolver) Resolve(ctx context.Context, guildID string) (*guild.Settings, error) {
	stored, err := r.settingsRepo.Get(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guild settings: %w", err)
	}

	ticketCategory := r.defaults.TicketCategory
	closedCategory := r.defaults.ClosedCategory
	ticketLog := r.defaults.TicketLogChannel
	modLog := r.defaults.ModLogChannel
	mutedRole := ""

	if stored != nil {
		if v := stored.TicketCategory(); v != "" {
			ticketCategory = v
		}
		if v := stored.ClosedCategory(); v != "" {
			closedCategory = v
		}
		if v := stored.TicketLogChannel(); v != "" {
			ticketLog = v
		}
		if v := stored.ModLogChannel(); v != "" {
			modLog = v
		}
		mutedRole = stored.MutedRole()
	}

	return guild.ReconstructSettings(guildID, ticketCategory, closedCategory, ticketLog, modLog, mutedRole), nil
}
