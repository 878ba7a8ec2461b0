package usecases

import (
	"context"

	"warden/internal/domain/guild"
	"warden/internal/domain/platform"
	"warden/internal/shared/logger"
)

// sendModLog posts a notice to the guild's moderation log channel when one is
// configured. Always best effort.
func sendModLog(
	ctx context.Context,
	gateway platform.Gateway,
	settings guild.SettingsResolver,
	log logger.Interface,
	guildID string,
	notice platform.Notice,
) {
	resolved, err := settings.Resolve(ctx, guildID)
	if err != nil {
		log.Warnw("failed to resolve guild settings for mod log", "error", err, "guild_id", guildID)
		return
	}
	logChannel := resolved.ModLogChannel()
	if logChannel == "" {
		return
	}

	if err := gateway.SendNotice(ctx, logChannel, notice); err != nil {
		log.Warnw("failed to send mod log notice", "error", err, "channel_id", logChannel)
	}
}
