package usecases

import (
	"context"
	"fmt"

	"warden/internal/domain/guild"
	"warden/internal/domain/platform"
	"warden/internal/domain/ticket"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
)

type ReopenTicketCommand struct {
	GuildID    string
	TicketID   string
	ChannelID  string
	ReopenedBy string
}

type ReopenTicketResult struct {
	TicketID  string
	ChannelID string
}

// ReopenTicketUseCase returns a closed ticket to open. Closure metadata is
// cleared as a unit: closedAt, closedBy, and reason are set together on close
// and cleared together on reopen.
type ReopenTicketUseCase struct {
	ticketRepo ticket.Repository
	gateway    platform.Gateway
	settings   guild.SettingsResolver
	logger     logger.Interface
}

func NewReopenTicketUseCase(
	ticketRepo ticket.Repository,
	gateway platform.Gateway,
	settings guild.SettingsResolver,
	logger logger.Interface,
) *ReopenTicketUseCase {
	return &ReopenTicketUseCase{
		ticketRepo: ticketRepo,
		gateway:    gateway,
		settings:   settings,
		logger:     logger,
	}
}

func (uc *ReopenTicketUseCase) Execute(ctx context.Context, cmd ReopenTicketCommand) (*ReopenTicketResult, error) {
	if cmd.ReopenedBy == "" {
		return nil, errors.NewValidationError("reopening user id is required")
	}

	ticketEntity, err := findTicket(ctx, uc.ticketRepo, cmd.TicketID, cmd.ChannelID)
	if err != nil {
		return nil, err
	}

	if ticketEntity.Status().IsOpen() {
		return nil, errors.NewValidationError(fmt.Sprintf("ticket %s is already open", ticketEntity.TicketID()))
	}
	if ticketEntity.IsSwept() {
		return nil, errors.NewValidationError(
			fmt.Sprintf("ticket %s was cleaned up and its channel no longer exists", ticketEntity.TicketID()))
	}

	ticketEntity.Reopen()

	if err := uc.ticketRepo.Update(ctx, ticketEntity); err != nil {
		uc.logger.Errorw("failed to persist ticket reopen", "error", err, "ticket_id", ticketEntity.TicketID())
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	settings, err := uc.settings.Resolve(ctx, cmd.GuildID)
	if err != nil {
		uc.logger.Errorw("failed to resolve guild settings", "error", err, "guild_id", cmd.GuildID)
		return nil, fmt.Errorf("failed to resolve guild settings: %w", err)
	}

	if category := settings.TicketCategory(); category != "" {
		if err := uc.gateway.MoveChannel(ctx, ticketEntity.ChannelID(), category, nil); err != nil {
			uc.logger.Warnw("failed to move ticket channel back",
				"error", err,
				"ticket_id", ticketEntity.TicketID(),
				"channel_id", ticketEntity.ChannelID(),
			)
		}
	}
	if err := uc.gateway.GrantChannelAccess(ctx, ticketEntity.ChannelID(), ticketEntity.UserID()); err != nil {
		uc.logger.Warnw("failed to restore opener access",
			"error", err,
			"ticket_id", ticketEntity.TicketID(),
			"user_id", ticketEntity.UserID(),
		)
	}

	notice := platform.Notice{
		Kind:  platform.NoticeSuccess,
		Title: fmt.Sprintf("Ticket %s Reopened", ticketEntity.TicketID()),
		Body:  fmt.Sprintf("Reopened by <@%s>.", cmd.ReopenedBy),
	}
	if err := uc.gateway.SendNotice(ctx, ticketEntity.ChannelID(), notice); err != nil {
		uc.logger.Warnw("failed to send reopen notice", "error", err, "channel_id", ticketEntity.ChannelID())
	}

	if logChannel := settings.TicketLogChannel(); logChannel != "" {
		logNotice := platform.Notice{
			Kind:  platform.NoticeSuccess,
			Title: "Ticket Reopened",
			Fields: []platform.NoticeField{
				{Name: "Ticket", Value: ticketEntity.TicketID(), Inline: true},
				{Name: "Reopened By", Value: fmt.Sprintf("<@%s>", cmd.ReopenedBy), Inline: true},
			},
		}
		if err := uc.gateway.SendNotice(ctx, logChannel, logNotice); err != nil {
			uc.logger.Warnw("failed to send ticket log notice", "error", err, "channel_id", logChannel)
		}
	}

	uc.logger.Infow("ticket reopened",
		"ticket_id", ticketEntity.TicketID(),
		"reopened_by", cmd.ReopenedBy,
	)

	return &ReopenTicketResult{
		TicketID:  ticketEntity.TicketID(),
		ChannelID: ticketEntity.ChannelID(),
	}, nil
}
