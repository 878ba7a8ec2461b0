package usecases

import (
	"context"
	"fmt"
	"time"

	"warden/internal/domain/guild"
	"warden/internal/domain/moderation"
	"warden/internal/domain/platform"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
)

type UnmuteCommand struct {
	GuildID     string
	UserID      string
	ModeratorID string
}

// UnmuteUseCase removes the muted role and lifts any pending expiry. An
// unmute is logged to the moderation log but does not get a case row of its
// own.
type UnmuteUseCase struct {
	muteRepo moderation.MuteRepository
	gateway  platform.Gateway
	settings guild.SettingsResolver
	logger   logger.Interface
}

func NewUnmuteUseCase(
	muteRepo moderation.MuteRepository,
	gateway platform.Gateway,
	settings guild.SettingsResolver,
	logger logger.Interface,
) *UnmuteUseCase {
	return &UnmuteUseCase{
		muteRepo: muteRepo,
		gateway:  gateway,
		settings: settings,
		logger:   logger,
	}
}

func (uc *UnmuteUseCase) Execute(ctx context.Context, cmd UnmuteCommand) error {
	if cmd.UserID == "" {
		return errors.NewValidationError("user id is required")
	}
	if cmd.ModeratorID == "" {
		return errors.NewValidationError("moderator id is required")
	}

	settings, err := uc.settings.Resolve(ctx, cmd.GuildID)
	if err != nil {
		uc.logger.Errorw("failed to resolve guild settings", "error", err, "guild_id", cmd.GuildID)
		return fmt.Errorf("failed to resolve guild settings: %w", err)
	}
	mutedRole := settings.MutedRole()
	if mutedRole == "" {
		return errors.NewValidationError("no muted role is configured for this server")
	}

	hasRole, err := uc.gateway.MemberHasRole(ctx, cmd.GuildID, cmd.UserID, mutedRole)
	if err != nil {
		uc.logger.Errorw("failed to check muted role", "error", err, "user_id", cmd.UserID)
		return fmt.Errorf("failed to check muted role: %w", err)
	}
	if !hasRole {
		return errors.NewValidationError("that user is not muted")
	}

	if err := uc.gateway.RemoveRole(ctx, cmd.GuildID, cmd.UserID, mutedRole); err != nil {
		uc.logger.Errorw("failed to remove muted role", "error", err, "user_id", cmd.UserID)
		return fmt.Errorf("failed to remove muted role: %w", err)
	}

	// A manual unmute lifts the persisted expiry so the timer fires into a
	// no-op instead of double-removing the role.
	expiry, err := uc.muteRepo.FindActiveByUser(ctx, cmd.GuildID, cmd.UserID)
	if err != nil {
		uc.logger.Warnw("failed to look up pending mute expiry", "error", err, "user_id", cmd.UserID)
	} else if expiry != nil {
		expiry.Lift(time.Now())
		if err := uc.muteRepo.Update(ctx, expiry); err != nil {
			uc.logger.Warnw("failed to lift mute expiry", "error", err, "case_id", expiry.CaseID())
		}
	}

	sendModLog(ctx, uc.gateway, uc.settings, uc.logger, cmd.GuildID, platform.Notice{
		Kind:  platform.NoticeSuccess,
		Title: "Member Unmuted",
		Fields: []platform.NoticeField{
			{Name: "User", Value: fmt.Sprintf("<@%s>", cmd.UserID), Inline: true},
			{Name: "Moderator", Value: fmt.Sprintf("<@%s>", cmd.ModeratorID), Inline: true},
		},
	})

	uc.logger.Infow("user unmuted",
		"user_id", cmd.UserID,
		"moderator_id", cmd.ModeratorID,
	)

	return nil
}
