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

type MuteRepository struct {
	db     *gorm.DB
	mapper mappers.CaseMapper
}

func NewMuteRepository(db *gorm.DB) *MuteRepository {
	return &MuteRepository{
		db:     db,
		mapper: mappers.NewCaseMapper(),
	}
}

func (r *MuteRepository) Save(ctx context.Context, e *moderation.MuteExpiry) error {
	model := r.mapper.ExpiryToModel(e)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save mute expiry: %w", err)
	}

	return e.SetID(model.ID)
}

func (r *MuteRepository) Update(ctx context.Context, e *moderation.MuteExpiry) error {
	model := r.mapper.ExpiryToModel(e)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.MuteExpiryModel{}).
		Where("id = ?", model.ID).
		Select("lifted_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update mute expiry: %w", result.Error)
	}

	return nil
}

func (r *MuteRepository) ListPending(ctx context.Context) ([]*moderation.MuteExpiry, error) {
	var modelList []models.MuteExpiryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("lifted_at IS NULL").
		Order("expires_at ASC").
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending mute expiries: %w", err)
	}

	expiries := make([]*moderation.MuteExpiry, 0, len(modelList))
	for i := range modelList {
		e, err := r.mapper.ExpiryToDomain(&modelList[i])
		if err != nil {
			return nil, err
		}
		expiries = append(expiries, e)
	}
	return expiries, nil
}

// FindActiveByUser returns the user's unlifted expiry, or nil when the user
// has no pending mute.
func (r *MuteRepository) FindActiveByUser(ctx context.Context, guildID, userID string) (*moderation.MuteExpiry, error) {
	var model models.MuteExpiryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("guild_id = ? AND user_id = ? AND lifted_at IS NULL", guildID, userID).
		Order("expires_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find mute expiry: %w", err)
	}

	return r.mapper.ExpiryToDomain(&model)
}
