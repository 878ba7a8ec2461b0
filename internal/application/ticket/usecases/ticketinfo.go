package usecases

import (
	"context"
	"time"

	"warden/internal/domain/ticket"
	"warden/internal/shared/logger"
)

type TicketInfoCommand struct {
	TicketID  string
	ChannelID string
}

type TicketInfoResult struct {
	TicketID  string
	UserID    string
	ChannelID string
	Category  string
	Status    string
	CreatedAt time.Time
	ClosedAt  *time.Time
	ClosedBy  string
	Reason    string
	Swept     bool
}

// TicketInfoUseCase looks up a single ticket by code or channel.
type TicketInfoUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewTicketInfoUseCase(ticketRepo ticket.Repository, logger logger.Interface) *TicketInfoUseCase {
	return &TicketInfoUseCase{ticketRepo: ticketRepo, logger: logger}
}

func (uc *TicketInfoUseCase) Execute(ctx context.Context, cmd TicketInfoCommand) (*TicketInfoResult, error) {
	t, err := findTicket(ctx, uc.ticketRepo, cmd.TicketID, cmd.ChannelID)
	if err != nil {
		return nil, err
	}

	return &TicketInfoResult{
		TicketID:  t.TicketID(),
		UserID:    t.UserID(),
		ChannelID: t.ChannelID(),
		Category:  t.Category(),
		Status:    t.Status().String(),
		CreatedAt: t.CreatedAt(),
		ClosedAt:  t.ClosedAt(),
		ClosedBy:  t.ClosedBy(),
		Reason:    t.Reason(),
		Swept:     t.IsSwept(),
	}, nil
}
