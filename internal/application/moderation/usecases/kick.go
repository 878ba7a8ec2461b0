package usecases

import (
	"context"
	"fmt"

	"warden/internal/domain/guild"
	"warden/internal/domain/moderation"
	"warden/internal/domain/platform"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
)

type KickCommand struct {
	GuildID     string
	UserID      string
	ModeratorID string
	Reason      string
}

type KickResult struct {
	CaseID string
}

// KickUseCase removes a member and records the case. The DM goes out before
// the kick since the user is unreachable afterwards.
type KickUseCase struct {
	caseRepo moderation.CaseRepository
	idGen    moderation.CaseIDGenerator
	gateway  platform.Gateway
	settings guild.SettingsResolver
	logger   logger.Interface
}

func NewKickUseCase(
	caseRepo moderation.CaseRepository,
	idGen moderation.CaseIDGenerator,
	gateway platform.Gateway,
	settings guild.SettingsResolver,
	logger logger.Interface,
) *KickUseCase {
	return &KickUseCase{
		caseRepo: caseRepo,
		idGen:    idGen,
		gateway:  gateway,
		settings: settings,
		logger:   logger,
	}
}

func (uc *KickUseCase) Execute(ctx context.Context, cmd KickCommand) (*KickResult, error) {
	if cmd.UserID == "" {
		return nil, errors.NewValidationError("user id is required")
	}
	if cmd.ModeratorID == "" {
		return nil, errors.NewValidationError("moderator id is required")
	}

	caseID, err := uc.idGen.Generate(ctx)
	if err != nil {
		uc.logger.Errorw("failed to generate case id", "error", err)
		return nil, fmt.Errorf("failed to generate case id: %w", err)
	}

	dm := platform.Notice{
		Kind:  platform.NoticeError,
		Title: "You have been kicked",
		Body:  fmt.Sprintf("Reason: %s", reasonOrDefault(cmd.Reason)),
	}
	if err := uc.gateway.SendDirectNotice(ctx, cmd.UserID, dm); err != nil {
		uc.logger.Debugw("failed to send kick DM", "error", err, "user_id", cmd.UserID)
	}

	if err := uc.gateway.KickMember(ctx, cmd.GuildID, cmd.UserID, cmd.Reason); err != nil {
		uc.logger.Errorw("failed to kick member", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to kick member: %w", err)
	}

	caseEntity, err := moderation.NewCase(caseID, cmd.UserID, cmd.ModeratorID, moderation.ActionKick, cmd.Reason, "")
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.caseRepo.Save(ctx, caseEntity); err != nil {
		uc.logger.Errorw("failed to persist kick case", "error", err, "case_id", caseID)
		return nil, fmt.Errorf("failed to save case: %w", err)
	}

	sendModLog(ctx, uc.gateway, uc.settings, uc.logger, cmd.GuildID, platform.Notice{
		Kind:  platform.NoticeError,
		Title: "Member Kicked",
		Fields: []platform.NoticeField{
			{Name: "Case", Value: caseID, Inline: true},
			{Name: "User", Value: fmt.Sprintf("<@%s>", cmd.UserID), Inline: true},
			{Name: "Moderator", Value: fmt.Sprintf("<@%s>", cmd.ModeratorID), Inline: true},
			{Name: "Reason", Value: reasonOrDefault(cmd.Reason), Inline: false},
		},
	})

	uc.logger.Infow("user kicked",
		"case_id", caseID,
		"user_id", cmd.UserID,
		"moderator_id", cmd.ModeratorID,
	)

	return &KickResult{CaseID: caseID}, nil
}
