package mappers

import (
	"fmt"

	"warden/internal/domain/ticket"
	"warden/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between ticket domain entities and
// persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)

	MessageToModel(m *ticket.Message) *models.TicketMessageModel
	MessageToDomain(model *models.TicketMessageModel) *ticket.Message
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:        t.ID(),
		TicketID:  t.TicketID(),
		UserID:    t.UserID(),
		ChannelID: t.ChannelID(),
		Category:  t.Category(),
		Status:    t.Status().String(),
		ClosedAt:  timePtrToMillisPtr(t.ClosedAt()),
		ClosedBy:  t.ClosedBy(),
		Reason:    t.Reason(),
		SweptAt:   timePtrToMillisPtr(t.SweptAt()),
		CreatedAt: t.CreatedAt().UnixMilli(),
	}
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	status, err := ticket.NewStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket status (id=%d): %w", model.ID, err)
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.TicketID,
		model.UserID,
		model.ChannelID,
		model.Category,
		status,
		millisToTime(model.CreatedAt),
		millisPtrToTimePtr(model.ClosedAt),
		model.ClosedBy,
		model.Reason,
		millisPtrToTimePtr(model.SweptAt),
	)
}

func (m *TicketMapperImpl) MessageToModel(msg *ticket.Message) *models.TicketMessageModel {
	return &models.TicketMessageModel{
		ID:        msg.ID(),
		TicketID:  msg.TicketID(),
		UserID:    msg.UserID(),
		Content:   msg.Content(),
		Timestamp: msg.Timestamp().UnixMilli(),
	}
}

func (m *TicketMapperImpl) MessageToDomain(model *models.TicketMessageModel) *ticket.Message {
	return ticket.ReconstructMessage(
		model.ID,
		model.TicketID,
		model.UserID,
		model.Content,
		millisToTime(model.Timestamp),
	)
}
