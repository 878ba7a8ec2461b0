package mappers

import (
	"warden/internal/domain/guild"
	"warden/internal/infrastructure/persistence/models"
)

// SettingsMapper converts guild settings between the domain entity and the
// persistence model.
type SettingsMapper interface {
	ToModel(s *guild.Settings) *models.SettingsModel
	ToDomain(model *models.SettingsModel) *guild.Settings
}

type SettingsMapperImpl struct{}

func NewSettingsMapper() SettingsMapper {
	return &SettingsMapperImpl{}
}

func (m *SettingsMapperImpl) ToModel(s *guild.Settings) *models.SettingsModel {
	return &models.SettingsModel{
		GuildID:          s.GuildID(),
		TicketCategory:   s.TicketCategory(),
		ClosedCategory:   s.ClosedCategory(),
		TicketLogChannel: s.TicketLogChannel(),
		ModLogChannel:    s.ModLogChannel(),
		MutedRole:        s.MutedRole(),
	}
}

func (m *SettingsMapperImpl) ToDomain(model *models.SettingsModel) *guild.Settings {
	return guild.ReconstructSettings(
		model.GuildID,
		model.TicketCategory,
		model.ClosedCategory,
		model.TicketLogChannel,
		model.ModLogChannel,
		model.MutedRole,
	)
}
