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

// ExpiryScheduler arms an in-process timer for a pending mute expiry. The
// persisted row is the source of truth; the timer is the fast path.
type ExpiryScheduler interface {
	Schedule(expiry *moderation.MuteExpiry)
}

// TransactionRunner wraps multi-row writes in a single transaction.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type MuteCommand struct {
	GuildID     string
	UserID      string
	ModeratorID string
	Duration    string
	Reason      string
}

type MuteResult struct {
	CaseID    string
	ExpiresAt time.Time
}

// MuteUseCase applies the shared muted role for a parsed duration. The role
// grant happens before the case row is written; the expiry row is persisted
// so a restart does not lose the pending unmute.
type MuteUseCase struct {
	caseRepo     moderation.CaseRepository
	muteRepo     moderation.MuteRepository
	idGen        moderation.CaseIDGenerator
	gateway      platform.Gateway
	settings     guild.SettingsResolver
	settingsRepo guild.SettingsRepository
	scheduler    ExpiryScheduler
	tx           TransactionRunner
	logger       logger.Interface
}

func NewMuteUseCase(
	caseRepo moderation.CaseRepository,
	muteRepo moderation.MuteRepository,
	idGen moderation.CaseIDGenerator,
	gateway platform.Gateway,
	settings guild.SettingsResolver,
	settingsRepo guild.SettingsRepository,
	scheduler ExpiryScheduler,
	tx TransactionRunner,
	logger logger.Interface,
) *MuteUseCase {
	return &MuteUseCase{
		caseRepo:     caseRepo,
		muteRepo:     muteRepo,
		idGen:        idGen,
		gateway:      gateway,
		settings:     settings,
		settingsRepo: settingsRepo,
		scheduler:    scheduler,
		tx:           tx,
		logger:       logger,
	}
}

func (uc *MuteUseCase) Execute(ctx context.Context, cmd MuteCommand) (*MuteResult, error) {
	if cmd.UserID == "" {
		return nil, errors.NewValidationError("user id is required")
	}
	if cmd.ModeratorID == "" {
		return nil, errors.NewValidationError("moderator id is required")
	}

	duration, err := moderation.ParseDuration(cmd.Duration)
	if err != nil {
		return nil, errors.NewInvalidDurationError(
			fmt.Sprintf("%q is not a valid duration, use <number><s|m|h|d> like 30m or 2h", cmd.Duration))
	}

	caseID, err := uc.idGen.Generate(ctx)
	if err != nil {
		uc.logger.Errorw("failed to generate case id", "error", err)
		return nil, fmt.Errorf("failed to generate case id: %w", err)
	}

	mutedRole, err := uc.ensureMutedRole(ctx, cmd.GuildID)
	if err != nil {
		return nil, err
	}

	if err := uc.gateway.AddRole(ctx, cmd.GuildID, cmd.UserID, mutedRole); err != nil {
		uc.logger.Errorw("failed to apply muted role", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to apply muted role: %w", err)
	}

	caseEntity, err := moderation.NewCase(caseID, cmd.UserID, cmd.ModeratorID, moderation.ActionMute, cmd.Reason, cmd.Duration)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	expiresAt := time.Now().Add(duration)
	expiry, err := moderation.NewMuteExpiry(caseID, cmd.GuildID, cmd.UserID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create mute expiry: %w", err)
	}

	// The case row and the expiry row commit together; a mute case without a
	// pending expiry would never be lifted.
	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.caseRepo.Save(txCtx, caseEntity); err != nil {
			return fmt.Errorf("failed to save case: %w", err)
		}
		if err := uc.muteRepo.Save(txCtx, expiry); err != nil {
			return fmt.Errorf("failed to save mute expiry: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to persist mute", "error", err, "case_id", caseID)
		return nil, err
	}
	uc.scheduler.Schedule(expiry)

	// The user may have DMs closed; delivery failure never blocks the mute.
	dm := platform.Notice{
		Kind:  platform.NoticeWarning,
		Title: "You have been muted",
		Body:  fmt.Sprintf("Duration: %s\nReason: %s", cmd.Duration, reasonOrDefault(cmd.Reason)),
	}
	if err := uc.gateway.SendDirectNotice(ctx, cmd.UserID, dm); err != nil {
		uc.logger.Debugw("failed to send mute DM", "error", err, "user_id", cmd.UserID)
	}

	sendModLog(ctx, uc.gateway, uc.settings, uc.logger, cmd.GuildID, platform.Notice{
		Kind:  platform.NoticeWarning,
		Title: "Member Muted",
		Fields: []platform.NoticeField{
			{Name: "Case", Value: caseID, Inline: true},
			{Name: "User", Value: fmt.Sprintf("<@%s>", cmd.UserID), Inline: true},
			{Name: "Moderator", Value: fmt.Sprintf("<@%s>", cmd.ModeratorID), Inline: true},
			{Name: "Duration", Value: cmd.Duration, Inline: true},
			{Name: "Reason", Value: reasonOrDefault(cmd.Reason), Inline: false},
		},
	})

	uc.logger.Infow("user muted",
		"case_id", caseID,
		"user_id", cmd.UserID,
		"moderator_id", cmd.ModeratorID,
		"expires_at", expiresAt,
	)

	return &MuteResult{CaseID: caseID, ExpiresAt: expiresAt}, nil
}

// ensureMutedRole returns the guild's muted role, creating and persisting it
// on first use. The role id lives in settings; the role is never looked up
// by display name.
func (uc *MuteUseCase) ensureMutedRole(ctx context.Context, guildID string) (string, error) {
	settings, err := uc.settings.Resolve(ctx, guildID)
	if err != nil {
		uc.logger.Errorw("failed to resolve guild settings", "error", err, "guild_id", guildID)
		return "", fmt.Errorf("failed to resolve guild settings: %w", err)
	}
	if role := settings.MutedRole(); role != "" {
		return role, nil
	}

	roleID, err := uc.gateway.CreateMutedRole(ctx, guildID)
	if err != nil {
		uc.logger.Errorw("failed to create muted role", "error", err, "guild_id", guildID)
		return "", fmt.Errorf("failed to create muted role: %w", err)
	}

	settings.SetMutedRole(roleID)
	if err := uc.settingsRepo.Upsert(ctx, settings); err != nil {
		uc.logger.Errorw("failed to persist muted role id", "error", err, "guild_id", guildID)
		return "", fmt.Errorf("failed to persist muted role id: %w", err)
	}

	uc.logger.Infow("muted role created", "guild_id", guildID, "role_id", roleID)
	return roleID, nil
}
