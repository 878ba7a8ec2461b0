package usecases

import (
	"context"
	"fmt"
	"time"

	"warden/internal/domain/ticket"
	"warden/internal/shared/logger"
)

type RecordMessageCommand struct {
	ChannelID string
	UserID    string
	Content   string
	Timestamp time.Time
}

// RecordMessageUseCase appends a message posted inside a ticket channel to
// the ticket's stored transcript. Messages in non-ticket channels and empty
// messages (embed-only posts) are ignored.
type RecordMessageUseCase struct {
	ticketRepo  ticket.Repository
	messageRepo ticket.MessageRepository
	logger      logger.Interface
}

func NewRecordMessageUseCase(
	ticketRepo ticket.Repository,
	messageRepo ticket.MessageRepository,
	logger logger.Interface,
) *RecordMessageUseCase {
	return &RecordMessageUseCase{
		ticketRepo:  ticketRepo,
		messageRepo: messageRepo,
		logger:      logger,
	}
}

func (uc *RecordMessageUseCase) Execute(ctx context.Context, cmd RecordMessageCommand) error {
	if cmd.Content == "" {
		return nil
	}

	t, err := uc.ticketRepo.FindByChannelID(ctx, cmd.ChannelID)
	if err != nil {
		return fmt.Errorf("failed to look up ticket by channel: %w", err)
	}
	if t == nil {
		return nil
	}

	m, err := ticket.NewMessage(t.TicketID(), cmd.UserID, cmd.Content, cmd.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to create ticket message: %w", err)
	}

	if err := uc.messageRepo.Append(ctx, m); err != nil {
		uc.logger.Errorw("failed to record ticket message",
			"error", err,
			"ticket_id", t.TicketID(),
			"user_id", cmd.UserID,
		)
		return fmt.Errorf("failed to record ticket message: %w", err)
	}

	return nil
}
