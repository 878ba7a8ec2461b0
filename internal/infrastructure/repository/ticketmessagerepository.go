package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"warden/internal/domain/ticket"
	"warden/internal/infrastructure/persistence/mappers"
	"warden/internal/infrastructure/persistence/models"
	"warden/internal/shared/db"
)

type TicketMessageRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketMessageRepository(db *gorm.DB) *TicketMessageRepository {
	return &TicketMessageRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketMessageRepository) Append(ctx context.Context, m *ticket.Message) error {
	model := r.mapper.MessageToModel(m)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append ticket message: %w", err)
	}

	return m.SetID(model.ID)
}

func (r *TicketMessageRepository) ListByTicketID(ctx context.Context, ticketID string) ([]*ticket.Message, error) {
	var modelList []models.TicketMessageModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("timestamp ASC").
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list ticket messages: %w", err)
	}

	messages := make([]*ticket.Message, 0, len(modelList))
	for i := range modelList {
		messages = append(messages, r.mapper.MessageToDomain(&modelList[i]))
	}
	return messages, nil
}
