package models

type ModerationModel struct {
	ID          uint   `gorm:"primaryKey"`
	CaseID      string `gorm:"uniqueIndex;size:10;not null"`
	UserID      string `gorm:"size:32;not null;index"`
	ModeratorID string `gorm:"size:32;not null"`
	Action      string `gorm:"size:20;not null;index"`
	Reason      string `gorm:"size:500"`
	Duration    string `gorm:"size:20"`
	Active      bool   `gorm:"not null;default:true;index"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
}

func (ModerationModel) TableName() string {
	return "moderation"
}

type MuteExpiryModel struct {
	ID        uint   `gorm:"primaryKey"`
	CaseID    string `gorm:"uniqueIndex;size:10;not null"`
	GuildID   string `gorm:"size:32;not null"`
	UserID    string `gorm:"size:32;not null;index"`
	ExpiresAt int64  `gorm:"not null;index"`
	LiftedAt  *int64
}

func (MuteExpiryModel) TableName() string {
	return "mute_expiries"
}
