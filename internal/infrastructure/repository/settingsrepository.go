package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"warden/internal/domain/guild"
	"warden/internal/infrastructure/persistence/mappers"
	"warden/internal/infrastructure/persistence/models"
	"warden/internal/shared/db"
)

type SettingsRepository struct {
	db     *gorm.DB
	mapper mappers.SettingsMapper
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{
		db:     db,
		mapper: mappers.NewSettingsMapper(),
	}
}

// Get returns nil when the guild has no stored settings row.
func (r *SettingsRepository) Get(ctx context.Context, guildID string) (*guild.Settings, error) {
	var model models.SettingsModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("guild_id = ?", guildID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find guild settings: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

func (r *SettingsRepository) Upsert(ctx context.Context, s *guild.Settings) error {
	model := r.mapper.ToModel(s)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "guild_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"ticket_category",
			"closed_category",
			"ticket_log_channel",
			"mod_log_channel",
			"muted_role",
			"updated_at",
		}),
	}).Create(model).Error; err != nil {
		return fmt.Errorf("failed to upsert guild settings: %w", err)
	}

	return nil
}
