package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"warden/internal/domain/moderation"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
)

type GetCaseCommand struct {
	CaseID string
}

type GetCaseResult struct {
	CaseID      string
	UserID      string
	ModeratorID string
	Action      string
	Reason      string
	Duration    string
	CreatedAt   time.Time
	Active      bool
}

// GetCaseUseCase looks up a single moderation case by its code. Lookups are
// case-insensitive; codes are stored uppercase.
type GetCaseUseCase struct {
	caseRepo moderation.CaseRepository
	logger   logger.Interface
}

func NewGetCaseUseCase(caseRepo moderation.CaseRepository, logger logger.Interface) *GetCaseUseCase {
	return &GetCaseUseCase{caseRepo: caseRepo, logger: logger}
}

func (uc *GetCaseUseCase) Execute(ctx context.Context, cmd GetCaseCommand) (*GetCaseResult, error) {
	caseID := strings.ToUpper(strings.TrimSpace(cmd.CaseID))
	if caseID == "" {
		return nil, errors.NewValidationError("case id is required")
	}

	c, err := uc.caseRepo.FindByCaseID(ctx, caseID)
	if err != nil {
		uc.logger.Errorw("failed to look up case", "error", err, "case_id", caseID)
		return nil, fmt.Errorf("failed to look up case: %w", err)
	}
	if c == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("case %s not found", caseID))
	}

	return &GetCaseResult{
		CaseID:      c.CaseID(),
		UserID:      c.UserID(),
		ModeratorID: c.ModeratorID(),
		Action:      c.Action().String(),
		Reason:      c.Reason(),
		Duration:    c.Duration(),
		CreatedAt:   c.CreatedAt(),
		Active:      c.Active(),
	}, nil
}
