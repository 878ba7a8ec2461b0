package mappers

import (
	"fmt"

	"warden/internal/domain/moderation"
	"warden/internal/infrastructure/persistence/models"
)

// CaseMapper handles the conversion between moderation domain entities and
// persistence models.
type CaseMapper interface {
	ToModel(c *moderation.Case) *models.ModerationModel
	ToDomain(model *models.ModerationModel) (*moderation.Case, error)

	ExpiryToModel(e *moderation.MuteExpiry) *models.MuteExpiryModel
	ExpiryToDomain(model *models.MuteExpiryModel) (*moderation.MuteExpiry, error)
}

type CaseMapperImpl struct{}

func NewCaseMapper() CaseMapper {
	return &CaseMapperImpl{}
}

func (m *CaseMapperImpl) ToModel(c *moderation.Case) *models.ModerationModel {
	return &models.ModerationModel{
		ID:          c.ID(),
		CaseID:      c.CaseID(),
		UserID:      c.UserID(),
		ModeratorID: c.ModeratorID(),
		Action:      c.Action().String(),
		Reason:      c.Reason(),
		Duration:    c.Duration(),
		Active:      c.Active(),
		CreatedAt:   c.CreatedAt().UnixMilli(),
	}
}

func (m *CaseMapperImpl) ToDomain(model *models.ModerationModel) (*moderation.Case, error) {
	action, err := moderation.NewAction(model.Action)
	if err != nil {
		return nil, fmt.Errorf("invalid moderation action (id=%d): %w", model.ID, err)
	}

	return moderation.ReconstructCase(
		model.ID,
		model.CaseID,
		model.UserID,
		model.ModeratorID,
		action,
		model.Reason,
		model.Duration,
		millisToTime(model.CreatedAt),
		model.Active,
	)
}

func (m *CaseMapperImpl) ExpiryToModel(e *moderation.MuteExpiry) *models.MuteExpiryModel {
	return &models.MuteExpiryModel{
		ID:        e.ID(),
		CaseID:    e.CaseID(),
		GuildID:   e.GuildID(),
		UserID:    e.UserID(),
		ExpiresAt: e.ExpiresAt().UnixMilli(),
		LiftedAt:  timePtrToMillisPtr(e.LiftedAt()),
	}
}

func (m *CaseMapperImpl) ExpiryToDomain(model *models.MuteExpiryModel) (*moderation.MuteExpiry, error) {
	return moderation.ReconstructMuteExpiry(
		model.ID,
		model.CaseID,
		model.GuildID,
		model.UserID,
		millisToTime(model.ExpiresAt),
		millisPtrToTimePtr(model.LiftedAt),
	)
}
