package usecases

import (
	"context"
	"fmt"

	"warden/internal/domain/guild"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
)

// UpdateSettingsCommand carries the fields to change. Empty fields are left
// untouched.
type UpdateSettingsCommand struct {
	GuildID          string
	TicketCategory   string
	ClosedCategory   string
	TicketLogChannel string
	ModLogChannel    string
	MutedRole        string
}

// UpdateSettingsUseCase persists per-guild overrides of the static
// configuration, set by the setup command.
type UpdateSettingsUseCase struct {
	settingsRepo guild.SettingsRepository
	logger       logger.Interface
}

func NewUpdateSettingsUseCase(settingsRepo guild.SettingsRepository, logger logger.Interface) *UpdateSettingsUseCase {
	return &UpdateSettingsUseCase{settingsRepo: settingsRepo, logger: logger}
}

func (uc *UpdateSettingsUseCase) Execute(ctx context.Context, cmd UpdateSettingsCommand) error {
	if cmd.GuildID == "" {
		return errors.NewValidationError("guild id is required")
	}

	settings, err := uc.settingsRepo.Get(ctx, cmd.GuildID)
	if err != nil {
		uc.logger.Errorw("failed to load guild settings", "error", err, "guild_id", cmd.GuildID)
		return fmt.Errorf("failed to load guild settings: %w", err)
	}
	if settings == nil {
		settings, err = guild.NewSettings(cmd.GuildID)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
	}

	if cmd.TicketCategory != "" {
		settings.SetTicketCategory(cmd.TicketCategory)
	}
	if cmd.ClosedCategory != "" {
		settings.SetClosedCategory(cmd.ClosedCategory)
	}
	if cmd.TicketLogChannel != "" {
		settings.SetTicketLogChannel(cmd.TicketLogChannel)
	}
	if cmd.ModLogChannel != "" {
		settings.SetModLogChannel(cmd.ModLogChannel)
	}
	if cmd.MutedRole != "" {
		settings.SetMutedRole(cmd.MutedRole)
	}

	if err := uc.settingsRepo.Upsert(ctx, settings); err != nil {
		uc.logger.Errorw("failed to persist guild settings", "error", err, "guild_id", cmd.GuildID)
		return fmt.Errorf("failed to save guild settings: %w", err)
	}

	uc.logger.Infow("guild settings updated", "guild_id", cmd.GuildID)
	return nil
}
