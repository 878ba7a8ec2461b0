package usecases

import (
	"context"
	"fmt"
	"time"

	"warden/internal/domain/guild"
	"warden/internal/domain/platform"
	"warden/internal/domain/ticket"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
)

// CloseTicketCommand identifies the ticket either by its code or by the
// channel the command was issued in.
type CloseTicketCommand struct {
	GuildID   string
	TicketID  string
	ChannelID string
	ClosedBy  string
	Reason    string
}

type CloseTicketResult struct {
	TicketID string
	ClosedAt time.Time
}

// CloseTicketUseCase closes a ticket: the row is updated first, then the
// channel is parked under the closed category with visibility restricted to
// staff. Channel moves and notices are best effort once the row is closed.
type CloseTicketUseCase struct {
	ticketRepo ticket.Repository
	gateway    platform.Gateway
	settings   guild.SettingsResolver
	staffRoles []string
	logger     logger.Interface
}

func NewCloseTicketUseCase(
	ticketRepo ticket.Repository,
	gateway platform.Gateway,
	settings guild.SettingsResolver,
	staffRoles []string,
	logger logger.Interface,
) *CloseTicketUseCase {
	return &CloseTicketUseCase{
		ticketRepo: ticketRepo,
		gateway:    gateway,
		settings:   settings,
		staffRoles: staffRoles,
		logger:     logger,
	}
}

func (uc *CloseTicketUseCase) Execute(ctx context.Context, cmd CloseTicketCommand) (*CloseTicketResult, error) {
	if cmd.ClosedBy == "" {
		return nil, errors.NewValidationError("closing user id is required")
	}

	ticketEntity, err := findTicket(ctx, uc.ticketRepo, cmd.TicketID, cmd.ChannelID)
	if err != nil {
		return nil, err
	}

	if ticketEntity.Status().IsClosed() {
		return nil, errors.NewValidationError(fmt.Sprintf("ticket %s is already closed", ticketEntity.TicketID()))
	}

	if err := ticketEntity.Close(cmd.ClosedBy, cmd.Reason); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.ticketRepo.Update(ctx, ticketEntity); err != nil {
		uc.logger.Errorw("failed to persist ticket closure", "error", err, "ticket_id", ticketEntity.TicketID())
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	settings, err := uc.settings.Resolve(ctx, cmd.GuildID)
	if err != nil {
		uc.logger.Errorw("failed to resolve guild settings", "error", err, "guild_id", cmd.GuildID)
		return nil, fmt.Errorf("failed to resolve guild settings: %w", err)
	}

	if closedCategory := settings.ClosedCategory(); closedCategory != "" {
		if err := uc.gateway.MoveChannel(ctx, ticketEntity.ChannelID(), closedCategory, uc.staffRoles); err != nil {
			uc.logger.Warnw("failed to move ticket channel to closed category",
				"error", err,
				"ticket_id", ticketEntity.TicketID(),
				"channel_id", ticketEntity.ChannelID(),
			)
		}
	}

	reason := cmd.Reason
	if reason == "" {
		reason = "no reason given"
	}

	closure := platform.Notice{
		Kind:  platform.NoticeWarning,
		Title: fmt.Sprintf("Ticket %s Closed", ticketEntity.TicketID()),
		Fields: []platform.NoticeField{
			{Name: "Closed By", Value: fmt.Sprintf("<@%s>", cmd.ClosedBy), Inline: true},
			{Name: "Reason", Value: reason, Inline: true},
		},
		Footer: "Staff can reopen this ticket or generate a transcript",
	}
	if err := uc.gateway.SendNotice(ctx, ticketEntity.ChannelID(), closure); err != nil {
		uc.logger.Warnw("failed to send closure notice", "error", err, "channel_id", ticketEntity.ChannelID())
	}

	// The opener may have DMs closed; delivery failure never blocks the close.
	dm := platform.Notice{
		Kind:  platform.NoticeInfo,
		Title: fmt.Sprintf("Your ticket %s was closed", ticketEntity.TicketID()),
		Body:  fmt.Sprintf("Reason: %s", reason),
	}
	if err := uc.gateway.SendDirectNotice(ctx, ticketEntity.UserID(), dm); err != nil {
		uc.logger.Debugw("failed to send closure DM", "error", err, "user_id", ticketEntity.UserID())
	}

	if logChannel := settings.TicketLogChannel(); logChannel != "" {
		logNotice := platform.Notice{
			Kind:  platform.NoticeWarning,
			Title: "Ticket Closed",
			Fields: []platform.NoticeField{
				{Name: "Ticket", Value: ticketEntity.TicketID(), Inline: true},
				{Name: "Closed By", Value: fmt.Sprintf("<@%s>", cmd.ClosedBy), Inline: true},
				{Name: "Reason", Value: reason, Inline: true},
			},
		}
		if err := uc.gateway.SendNotice(ctx, logChannel, logNotice); err != nil {
			uc.logger.Warnw("failed to send ticket log notice", "error", err, "channel_id", logChannel)
		}
	}

	uc.logger.Infow("ticket closed",
		"ticket_id", ticketEntity.TicketID(),
		"closed_by", cmd.ClosedBy,
	)

	return &CloseTicketResult{
		TicketID: ticketEntity.TicketID(),
		ClosedAt: *ticketEntity.ClosedAt(),
	}, nil
}

// findTicket resolves a ticket by code first, then by channel.
func findTicket(ctx context.Context, repo ticket.Repository, ticketID, channelID string) (*ticket.Ticket, error) {
	switch {
	case ticketID != "":
		t, err := repo.FindByTicketID(ctx, ticketID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up ticket %s: %w", ticketID, err)
		}
		if t == nil {
			return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %s not found", ticketID))
		}
		return t, nil
	case channelID != "":
		t, err := repo.FindByChannelID(ctx, channelID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up ticket by channel: %w", err)
		}
		if t == nil {
			return nil, errors.NewNotFoundError("this channel is not a ticket")
		}
		return t, nil
	default:
		return nil, errors.NewValidationError("ticket id or channel id is required")
	}
}
