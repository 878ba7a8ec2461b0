package usecases

import (
	"context"
	"fmt"
	"time"

	"warden/internal/domain/moderation"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
)

type ListWarningsCommand struct {
	UserID string
}

type WarningItem struct {
	CaseID      string
	ModeratorID string
	Reason      string
	CreatedAt   time.Time
}

type ListWarningsResult struct {
	UserID   string
	Count    int
	Warnings []WarningItem
}

// ListWarningsUseCase returns the active warnings recorded against a user.
type ListWarningsUseCase struct {
	caseRepo moderation.CaseRepository
	logger   logger.Interface
}

func NewListWarningsUseCase(caseRepo moderation.CaseRepository, logger logger.Interface) *ListWarningsUseCase {
	return &ListWarningsUseCase{caseRepo: caseRepo, logger: logger}
}

func (uc *ListWarningsUseCase) Execute(ctx context.Context, cmd ListWarningsCommand) (*ListWarningsResult, error) {
	if cmd.UserID == "" {
		return nil, errors.NewValidationError("user id is required")
	}

	cases, err := uc.caseRepo.ListActiveWarnings(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to list warnings", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to list warnings: %w", err)
	}

	result := &ListWarningsResult{
		UserID:   cmd.UserID,
		Count:    len(cases),
		Warnings: make([]WarningItem, 0, len(cases)),
	}
	for _, c := range cases {
		result.Warnings = append(result.Warnings, WarningItem{
			CaseID:      c.CaseID(),
			ModeratorID: c.ModeratorID(),
			Reason:      c.Reason(),
			CreatedAt:   c.CreatedAt(),
		})
	}

	return result, nil
}
