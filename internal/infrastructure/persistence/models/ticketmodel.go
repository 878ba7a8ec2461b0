package models

type TicketModel struct {
	ID        uint   `gorm:"primaryKey"`
	TicketID  string `gorm:"uniqueIndex;size:10;not null"`
	UserID    string `gorm:"size:32;not null;index"`
	ChannelID string `gorm:"uniqueIndex;size:32;not null"`
	Category  string `gorm:"size:50;not null"`
	Status    string `gorm:"size:20;not null;index"`
	ClosedAt  *int64 `gorm:"index"`
	ClosedBy  string `gorm:"size:32"`
	Reason    string `gorm:"size:500"`
	SweptAt   *int64
	CreatedAt int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64 `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}

type TicketMessageModel struct {
	ID        uint   `gorm:"primaryKey"`
	TicketID  string `gorm:"size:10;not null;index"`
	UserID    string `gorm:"size:32;not null"`
	Content   string `gorm:"type:text;not null"`
	Timestamp int64  `gorm:"not null;index"`
}

func (TicketMessageModel) TableName() string {
	return "ticket_messages"
}
