package models

type SettingsModel struct {
	ID               uint   `gorm:"primaryKey"`
	GuildID          string `gorm:"uniqueIndex;size:32;not null"`
	TicketCategory   string `gorm:"size:32"`
	ClosedCategory   string `gorm:"size:32"`
	TicketLogChannel string `gorm:"size:32"`
	ModLogChannel    string `gorm:"size:32"`
	MutedRole        string `gorm:"size:32"`
	UpdatedAt        int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (SettingsModel) TableName() string {
	return "settings"
}
