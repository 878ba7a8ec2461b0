package usecases

import (
	"context"

	"warden/internal/domain/guild"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
)

type GetSettingsResult struct {
	GuildID          string
	TicketCategory   string
	ClosedCategory   string
	TicketLogChannel string
	ModLogChannel    string
	MutedRole        string
}

// GetSettingsUseCase returns the effective settings for a guild.
type GetSettingsUseCase struct {
	resolver guild.SettingsResolver
	logger   logger.Interface
}

func NewGetSettingsUseCase(resolver guild.SettingsResolver, logger logger.Interface) *GetSettingsUseCase {
	return &GetSettingsUseCase{resolver: resolver, logger: logger}
}

func (uc *GetSettingsUseCase) Execute(ctx context.Context, guildID string) (*GetSettingsResult, error) {
	if guildID == "" {
		return nil, errors.NewValidationError("guild id is required")
	}

	settings, err := uc.resolver.Resolve(ctx, guildID)
	if err != nil {
		uc.logger.Errorw("failed to resolve guild settings", "error", err, "guild_id", guildID)
		return nil, err
	}

	return &GetSettingsResult{
		GuildID:          settings.GuildID(),
		TicketCategory:   settings.TicketCategory(),
		ClosedCategory:   settings.ClosedCategory(),
		TicketLogChannel: settings.TicketLogChannel(),
		ModLogChannel:    settings.ModLogChannel(),
		MutedRole:        settings.MutedRole(),
	}, nil
}
