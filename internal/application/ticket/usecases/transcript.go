package usecases

import (
	"context"
	"fmt"
	"strings"

	"warden/internal/domain/platform"
	"warden/internal/domain/ticket"
	"warden/internal/shared/logger"
)

// TranscriptLimit caps how much channel history a transcript covers. Channels
// with more messages keep the newest TranscriptLimit and silently drop older
// ones.
const TranscriptLimit = 500

type TranscriptCommand struct {
	TicketID  string
	ChannelID string
}

type TranscriptResult struct {
	TicketID     string
	Filename     string
	Content      string
	MessageCount int
}

// TranscriptUseCase renders a ticket channel's history as a flat text
// artifact, one line per message, oldest first. Pure read, no persistence.
type TranscriptUseCase struct {
	ticketRepo ticket.Repository
	gateway    platform.Gateway
	logger     logger.Interface
}

func NewTranscriptUseCase(
	ticketRepo ticket.Repository,
	gateway platform.Gateway,
	logger logger.Interface,
) *TranscriptUseCase {
	return &TranscriptUseCase{
		ticketRepo: ticketRepo,
		gateway:    gateway,
		logger:     logger,
	}
}

func (uc *TranscriptUseCase) Execute(ctx context.Context, cmd TranscriptCommand) (*TranscriptResult, error) {
	ticketEntity, err := findTicket(ctx, uc.ticketRepo, cmd.TicketID, cmd.ChannelID)
	if err != nil {
		return nil, err
	}

	history, err := uc.gateway.ChannelHistory(ctx, ticketEntity.ChannelID(), TranscriptLimit)
	if err != nil {
		uc.logger.Errorw("failed to read channel history",
			"error", err,
			"ticket_id", ticketEntity.TicketID(),
			"channel_id", ticketEntity.ChannelID(),
		)
		return nil, fmt.Errorf("failed to read channel history: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Transcript of ticket %s (channel %s)\n\n",
		ticketEntity.TicketID(), ticketEntity.ChannelID()))
	for _, m := range history {
		sb.WriteString(fmt.Sprintf("%s (%s) [%s]: %s\n",
			m.Author, m.AuthorID, m.Timestamp.Format("2006-01-02 15:04:05"), m.Content))
	}

	uc.logger.Infow("transcript generated",
		"ticket_id", ticketEntity.TicketID(),
		"message_count", len(history),
	)

	return &TranscriptResult{
		TicketID:     ticketEntity.TicketID(),
		Filename:     fmt.Sprintf("transcript-%s.txt", strings.ToLower(ticketEntity.TicketID())),
		Content:      sb.String(),
		MessageCount: len(history),
	}, nil
}
