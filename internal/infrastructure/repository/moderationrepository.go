package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"warden/internal/domain/moderation"
	"warden/internal/infrastructure/persistence/mappers"
	"warden/internal/infrastructure/persistence/models"
	"warden/internal/shared/db"
)

type ModerationRepository struct {
	db     *gorm.DB
	mapper mappers.CaseMapper
}

func NewModerationRepository(db *gorm.DB) *ModerationRepository {
	return &ModerationRepository{
		db:     db,
		mapper: mappers.NewCaseMapper(),
	}
}

func (r *ModerationRepository) Save(ctx context.Context, c *moderation.Case) error {
	model := r.mapper.ToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save moderation case: %w", err)
	}

	return c.SetID(model.ID)
}

func (r *ModerationRepository) Update(ctx context.Context, c *moderation.Case) error {
	model := r.mapper.ToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	// Active is the only mutable column.
	result := tx.
		Model(&models.ModerationModel{}).
		Where("id = ?", model.ID).
		Select("active").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update moderation case: %w", result.Error)
	}

	return nil
}

// FindByCaseID returns nil when no case carries the code.
func (r *ModerationRepository) FindByCaseID(ctx context.Context, caseID string) (*moderation.Case, error) {
	var model models.ModerationModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("case_id = ?", caseID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find moderation case: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *ModerationRepository) ListActiveWarnings(ctx context.Context, userID string) ([]*moderation.Case, error) {
	var modelList []models.ModerationModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("user_id = ? AND action = ? AND active = ?", userID, moderation.ActionWarn.String(), true).
		Order("created_at ASC").
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list warnings: %w", err)
	}

	return r.toDomainList(modelList)
}

func (r *ModerationRepository) ListByUser(ctx context.Context, userID string) ([]*moderation.Case, error) {
	var modelList []models.ModerationModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}

	return r.toDomainList(modelList)
}

func (r *ModerationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.ModerationModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count cases: %w", err)
	}

	return count, nil
}

func (r *ModerationRepository) CountByAction(ctx context.Context, action moderation.Action) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.ModerationModel{}).
		Where("action = ?", action.String()).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count cases: %w", err)
	}

	return count, nil
}

func (r *ModerationRepository) toDomainList(modelList []models.ModerationModel) ([]*moderation.Case, error) {
	cases := make([]*moderation.Case, 0, len(modelList))
	for i := range modelList {
		c, err := r.mapper.ToDomain(&modelList[i])
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// ExistsCaseID reports whether a case code is already taken. Used by the id
// generator's collision check.
func (r *ModerationRepository) ExistsCaseID(ctx context.Context, caseID string) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.ModerationModel{}).
		Where("case_id = ?", caseID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check case id: %w", err)
	}

	return count > 0, nil
}
