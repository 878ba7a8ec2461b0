package usecases

import (
	"context"
	"fmt"
	"strings"

	"warden/internal/domain/guild"
	"warden/internal/domain/platform"
	"warden/internal/domain/ticket"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
)

// OpenTicketCommand carries the inputs for opening a ticket.
type OpenTicketCommand struct {
	GuildID  string
	UserID   string
	Username string
	Category string
}

// OpenTicketResult is returned after a ticket and its channel exist.
type OpenTicketResult struct {
	TicketID  string
	ChannelID string
}

// OpenTicketUseCase creates a ticket row and its dedicated channel. The
// open-count check and the insert are separate store calls, so two
// near-simultaneous opens by the same user can both pass the limit check;
// the limit is advisory, not a hard constraint.
type OpenTicketUseCase struct {
	ticketRepo ticket.Repository
	idGen      ticket.IDGenerator
	gateway    platform.Gateway
	settings   guild.SettingsResolver
	maxPerUser int
	staffRoles []string
	logger     logger.Interface
}

func NewOpenTicketUseCase(
	ticketRepo ticket.Repository,
	idGen ticket.IDGenerator,
	gateway platform.Gateway,
	settings guild.SettingsResolver,
	maxPerUser int,
	staffRoles []string,
	logger logger.Interface,
) *OpenTicketUseCase {
	return &OpenTicketUseCase{
		ticketRepo: ticketRepo,
		idGen:      idGen,
		gateway:    gateway,
		settings:   settings,
		maxPerUser: maxPerUser,
		staffRoles: staffRoles,
		logger:     logger,
	}
}

func (uc *OpenTicketUseCase) Execute(ctx context.Context, cmd OpenTicketCommand) (*OpenTicketResult, error) {
	if cmd.GuildID == "" {
		return nil, errors.NewValidationError("guild id is required")
	}
	if cmd.UserID == "" {
		return nil, errors.NewValidationError("user id is required")
	}

	openCount, err := uc.ticketRepo.CountOpenByUser(ctx, cmd.UserID)
	if err != nil {
		uc.logger.Errorw("failed to count open tickets", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to count open tickets: %w", err)
	}
	if openCount >= int64(uc.maxPerUser) {
		uc.logger.Warnw("open ticket limit reached", "user_id", cmd.UserID, "open_count", openCount)
		return nil, errors.NewLimitExceededError(
			fmt.Sprintf("you already have %d open tickets, close one before opening another", openCount))
	}

	ticketID, err := uc.idGen.Generate(ctx)
	if err != nil {
		uc.logger.Errorw("failed to generate ticket id", "error", err)
		return nil, fmt.Errorf("failed to generate ticket id: %w", err)
	}

	settings, err := uc.settings.Resolve(ctx, cmd.GuildID)
	if err != nil {
		uc.logger.Errorw("failed to resolve guild settings", "error", err, "guild_id", cmd.GuildID)
		return nil, fmt.Errorf("failed to resolve guild settings: %w", err)
	}

	channelID, err := uc.gateway.CreateTicketChannel(ctx, platform.TicketChannelParams{
		GuildID:    cmd.GuildID,
		Name:       "ticket-" + strings.ToLower(ticketID),
		Topic:      fmt.Sprintf("Ticket %s | opened by %s", ticketID, cmd.Username),
		CategoryID: settings.TicketCategory(),
		OpenerID:   cmd.UserID,
		StaffRoles: uc.staffRoles,
	})
	if err != nil {
		uc.logger.Errorw("failed to create ticket channel", "error", err, "ticket_id", ticketID)
		return nil, fmt.Errorf("failed to create ticket channel: %w", err)
	}

	ticketEntity, err := ticket.NewTicket(ticketID, cmd.UserID, channelID, cmd.Category)
	if err != nil {
		uc.compensateChannel(ctx, channelID, ticketID)
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	if err := uc.ticketRepo.Save(ctx, ticketEntity); err != nil {
		uc.logger.Errorw("failed to persist ticket", "error", err, "ticket_id", ticketID)
		uc.compensateChannel(ctx, channelID, ticketID)
		return nil, fmt.Errorf("failed to save ticket: %w", err)
	}

	welcome := platform.Notice{
		Kind:  platform.NoticeTicket,
		Title: fmt.Sprintf("Ticket %s", ticketID),
		Body: fmt.Sprintf("Hello <@%s>, a staff member will be with you shortly.\n"+
			"Describe your issue in as much detail as you can.", cmd.UserID),
		Footer: "Use the close button or the close command when resolved",
	}
	if err := uc.gateway.SendNotice(ctx, channelID, welcome); err != nil {
		uc.logger.Warnw("failed to send welcome notice", "error", err, "channel_id", channelID)
	}

	if logChannel := settings.TicketLogChannel(); logChannel != "" {
		logNotice := platform.Notice{
			Kind:  platform.NoticeInfo,
			Title: "Ticket Opened",
			Fields: []platform.NoticeField{
				{Name: "Ticket", Value: ticketID, Inline: true},
				{Name: "Opened By", Value: fmt.Sprintf("<@%s>", cmd.UserID), Inline: true},
				{Name: "Channel", Value: fmt.Sprintf("<#%s>", channelID), Inline: true},
			},
		}
		if err := uc.gateway.SendNotice(ctx, logChannel, logNotice); err != nil {
			uc.logger.Warnw("failed to send ticket log notice", "error", err, "channel_id", logChannel)
		}
	}

	uc.logger.Infow("ticket opened",
		"ticket_id", ticketID,
		"user_id", cmd.UserID,
		"channel_id", channelID,
	)

	return &OpenTicketResult{TicketID: ticketID, ChannelID: channelID}, nil
}

// compensateChannel deletes the channel created for a ticket whose row never
// made it into the store, so no orphaned channel is left behind.
func (uc *OpenTicketUseCase) compensateChannel(ctx context.Context, channelID, ticketID string) {
	if err := uc.gateway.DeleteChannel(ctx, channelID, "ticket creation failed"); err != nil {
		uc.logger.Errorw("failed to delete orphaned ticket channel",
			"error", err,
			"channel_id", channelID,
			"ticket_id", ticketID,
		)
	}
}
