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

type WarnCommand struct {
	GuildID     string
	UserID      string
	ModeratorID string
	Reason      string
}

type WarnResult struct {
	CaseID         string
	ActiveWarnings int
}

// WarnUseCase records a warning case and notifies the user. The DM is best
// effort; the case row is the action.
type WarnUseCase struct {
	caseRepo moderation.CaseRepository
	idGen    moderation.CaseIDGenerator
	gateway  platform.Gateway
	settings guild.SettingsResolver
	logger   logger.Interface
}

func NewWarnUseCase(
	caseRepo moderation.CaseRepository,
	idGen moderation.CaseIDGenerator,
	gateway platform.Gateway,
	settings guild.SettingsResolver,
	logger logger.Interface,
) *WarnUseCase {
	return &WarnUseCase{
		caseRepo: caseRepo,
		idGen:    idGen,
		gateway:  gateway,
		settings: settings,
		logger:   logger,
	}
}

func (uc *WarnUseCase) Execute(ctx context.Context, cmd WarnCommand) (*WarnResult, error) {
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

	caseEntity, err := moderation.NewCase(caseID, cmd.UserID, cmd.ModeratorID, moderation.ActionWarn, cmd.Reason, "")
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.caseRepo.Save(ctx, caseEntity); err != nil {
		uc.logger.Errorw("failed to persist warn case", "error", err, "case_id", caseID)
		return nil, fmt.Errorf("failed to save case: %w", err)
	}

	warnings, err := uc.caseRepo.ListActiveWarnings(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to count active warnings", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to count warnings: %w", err)
	}

	// The user may have DMs closed; delivery failure never blocks the warn.
	dm := platform.Notice{
		Kind:  platform.NoticeWarning,
		Title: "You have been warned",
		Body:  fmt.Sprintf("Reason: %s\nActive warnings: %d", reasonOrDefault(cmd.Reason), len(warnings)),
	}
	if err := uc.gateway.SendDirectNotice(ctx, cmd.UserID, dm); err != nil {
		uc.logger.Debugw("failed to send warn DM", "error", err, "user_id", cmd.UserID)
	}

	uc.emitModLog(ctx, cmd, caseID, len(warnings))

	uc.logger.Infow("user warned",
		"case_id", caseID,
		"user_id", cmd.UserID,
		"moderator_id", cmd.ModeratorID,
		"active_warnings", len(warnings),
	)

	return &WarnResult{CaseID: caseID, ActiveWarnings: len(warnings)}, nil
}

func (uc *WarnUseCase) emitModLog(ctx context.Context, cmd WarnCommand, caseID string, warnings int) {
	notice := platform.Notice{
		Kind:  platform.NoticeWarning,
		Title: "Member Warned",
		Fields: []platform.NoticeField{
			{Name: "Case", Value: caseID, Inline: true},
			{Name: "User", Value: fmt.Sprintf("<@%s>", cmd.UserID), Inline: true},
			{Name: "Moderator", Value: fmt.Sprintf("<@%s>", cmd.ModeratorID), Inline: true},
			{Name: "Reason", Value: reasonOrDefault(cmd.Reason), Inline: false},
			{Name: "Active Warnings", Value: fmt.Sprintf("%d", warnings), Inline: true},
		},
	}
	sendModLog(ctx, uc.gateway, uc.settings, uc.logger, cmd.GuildID, notice)
}

func reasonOrDefault(reason string) string {
	if reason == "" {
		return "no reason given"
	}
	return reason
}
