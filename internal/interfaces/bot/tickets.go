package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	guildusecases "warden/internal/application/guild/usecases"
	ticketusecases "warden/internal/application/ticket/usecases"
)

func (b *Bot) handleNewTicket(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	result, err := b.usecases.OpenTicket.Execute(ctx, ticketusecases.OpenTicketCommand{
		GuildID:  m.GuildID,
		UserID:   m.Author.ID,
		Username: m.Author.Username,
		Category: strings.ToLower(joinReason(args)),
	})
	if err != nil {
		b.replyError(s, m.ChannelID, err)
		return
	}

	b.reply(s, m.ChannelID, colorTicket, "Ticket Opened",
		fmt.Sprintf("Ticket **%s** created: <#%s>", result.TicketID, result.ChannelID))
	b.sendTicketControls(s, result.ChannelID)
}

func (b *Bot) handleCloseTicket(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.requireRoles(s, m, b.cfg.StaffRoles()...) {
		return
	}

	_, err := b.usecases.CloseTicket.Execute(ctx, ticketusecases.CloseTicketCommand{
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		ClosedBy:  m.Author.ID,
		Reason:    joinReason(args),
	})
	if err != nil {
		b.replyError(s, m.ChannelID, err)
	}
}

func (b *Bot) handleReopenTicket(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.requireRoles(s, m, b.cfg.ElevatedRoles()...) {
		return
	}

	cmd := ticketusecases.ReopenTicketCommand{
		GuildID:    m.GuildID,
		ChannelID:  m.ChannelID,
		ReopenedBy: m.Author.ID,
	}
	if len(args) > 0 {
		cmd.TicketID = strings.ToUpper(args[0])
		cmd.ChannelID = ""
	}

	if _, err := b.usecases.ReopenTicket.Execute(ctx, cmd); err != nil {
		b.replyError(s, m.ChannelID, err)
	}
}

func (b *Bot) handleTranscript(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.requireRoles(s, m, b.cfg.StaffRoles()...) {
		return
	}

	cmd := ticketusecases.TranscriptCommand{ChannelID: m.ChannelID}
	if len(args) > 0 {
		cmd.TicketID = strings.ToUpper(args[0])
		cmd.ChannelID = ""
	}

	result, err := b.usecases.Transcript.Execute(ctx, cmd)
	if err != nil {
		b.replyError(s, m.ChannelID, err)
		return
	}

	b.sendTranscriptFile(s, m.ChannelID, result)
}

func (b *Bot) sendTranscriptFile(s *discordgo.Session, channelID string, result *ticketusecases.TranscriptResult) {
	_, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: fmt.Sprintf("Transcript of ticket **%s** (%d messages)", result.TicketID, result.MessageCount),
		Files: []*discordgo.File{{
			Name:        result.Filename,
			ContentType: "text/plain",
			Reader:      strings.NewReader(result.Content),
		}},
	})
	if err != nil {
		b.logger.Warnw("failed to upload transcript", "error", err, "channel_id", channelID)
	}
}

func (b *Bot) handleTicketInfo(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.requireRoles(s, m, b.cfg.StaffRoles()...) {
		return
	}

	cmd := ticketusecases.TicketInfoCommand{ChannelID: m.ChannelID}
	if len(args) > 0 {
		cmd.TicketID = strings.ToUpper(args[0])
		cmd.ChannelID = ""
	}

	info, err := b.usecases.TicketInfo.Execute(ctx, cmd)
	if err != nil {
		b.replyError(s, m.ChannelID, err)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Ticket %s", info.TicketID),
		Color: colorTicket,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Opened By", Value: fmt.Sprintf("<@%s>", info.UserID), Inline: true},
			{Name: "Status", Value: info.Status, Inline: true},
			{Name: "Category", Value: info.Category, Inline: true},
			{Name: "Created", Value: info.CreatedAt.Format("2006-01-02 15:04"), Inline: true},
		},
	}
	if info.ClosedAt != nil {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Closed", Value: info.ClosedAt.Format("2006-01-02 15:04"), Inline: true},
			&discordgo.MessageEmbedField{Name: "Closed By", Value: fmt.Sprintf("<@%s>", info.ClosedBy), Inline: true},
		)
		if info.Reason != "" {
			embed.Fields = append(embed.Fields,
				&discordgo.MessageEmbedField{Name: "Reason", Value: info.Reason, Inline: false})
		}
	}

	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		b.logger.Warnw("failed to send ticket info", "error", err, "channel_id", m.ChannelID)
	}
}

func (b *Bot) handleAddUser(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.requireRoles(s, m, b.cfg.StaffRoles()...) {
		return
	}
	if len(args) < 1 {
		b.reply(s, m.ChannelID, colorError, "Usage", fmt.Sprintf("`%sadd-user @user`", b.cfg.Prefix))
		return
	}
	userID := parseUserID(args[0])
	if userID == "" {
		b.reply(s, m.ChannelID, colorError, "Error", "Mention a user or give their id.")
		return
	}

	err := b.usecases.Participants.Add(ctx, ticketusecases.ParticipantCommand{
		ChannelID: m.ChannelID,
		UserID:    userID,
	})
	if err != nil {
		b.replyError(s, m.ChannelID, err)
		return
	}

	b.reply(s, m.ChannelID, colorSuccess, "User Added",
		fmt.Sprintf("<@%s> can now see this ticket.", userID))
}

func (b *Bot) handleRemoveUser(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.requireRoles(s, m, b.cfg.StaffRoles()...) {
		return
	}
	if len(args) < 1 {
		b.reply(s, m.ChannelID, colorError, "Usage", fmt.Sprintf("`%sremove-user @user`", b.cfg.Prefix))
		return
	}
	userID := parseUserID(args[0])
	if userID == "" {
		b.reply(s, m.ChannelID, colorError, "Error", "Mention a user or give their id.")
		return
	}

	err := b.usecases.Participants.Remove(ctx, ticketusecases.ParticipantCommand{
		ChannelID: m.ChannelID,
		UserID:    userID,
	})
	if err != nil {
		b.replyError(s, m.ChannelID, err)
		return
	}

	b.reply(s, m.ChannelID, colorSuccess, "User Removed",
		fmt.Sprintf("<@%s> no longer sees this ticket.", userID))
}

// handleSetupTickets persists the guild's ticket settings and posts the open
// button panel in the channel it is invoked from.
func (b *Bot) handleSetupTickets(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.requireRoles(s, m, b.cfg.AdminRole) {
		return
	}

	cmd := guildusecases.UpdateSettingsCommand{GuildID: m.GuildID}
	if len(args) > 0 {
		cmd.TicketCategory = args[0]
	}
	if len(args) > 1 {
		cmd.ClosedCategory = args[1]
	}
	if len(args) > 2 {
		cmd.TicketLogChannel = args[2]
	}
	if len(args) > 3 {
		cmd.ModLogChannel = args[3]
	}

	if err := b.usecases.UpdateSettings.Execute(ctx, cmd); err != nil {
		b.replyError(s, m.ChannelID, err)
		return
	}

	_, err := s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       "Support Tickets",
			Description: "Need help? Press the button below to open a private ticket with the staff team.",
			Color:       colorTicket,
		}},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Open Ticket",
					Style:    discordgo.PrimaryButton,
					CustomID: customIDOpenTicket,
					Emoji:    &discordgo.ComponentEmoji{Name: "📩"},
				},
			}},
		},
	})
	if err != nil {
		b.logger.Warnw("failed to post ticket panel", "error", err, "channel_id", m.ChannelID)
		return
	}

	b.reply(s, m.ChannelID, colorSuccess, "Tickets Configured", "Ticket panel posted and settings saved.")
}

// handleSettings shows the effective configuration: stored overrides merged
// over the static config.
func (b *Bot) handleSettings(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, _ []string) {
	if !b.requireRoles(s, m, b.cfg.AdminRole) {
		return
	}

	result, err := b.usecases.GetSettings.Execute(ctx, m.GuildID)
	if err != nil {
		b.replyError(s, m.ChannelID, err)
		return
	}

	orUnset := func(id string) string {
		if id == "" {
			return "not set"
		}
		return id
	}

	embed := &discordgo.MessageEmbed{
		Title: "Guild Settings",
		Color: colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Ticket Category", Value: orUnset(result.TicketCategory), Inline: true},
			{Name: "Closed Category", Value: orUnset(result.ClosedCategory), Inline: true},
			{Name: "Ticket Log", Value: orUnset(result.TicketLogChannel), Inline: true},
			{Name: "Mod Log", Value: orUnset(result.ModLogChannel), Inline: true},
			{Name: "Muted Role", Value: orUnset(result.MutedRole), Inline: true},
		},
	}

	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		b.logger.Warnw("failed to send settings", "error", err, "channel_id", m.ChannelID)
	}
}

// sendTicketControls posts the close button row inside a freshly opened
// ticket channel.
func (b *Bot) sendTicketControls(s *discordgo.Session, channelID string) {
	_, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Close",
					Style:    discordgo.DangerButton,
					CustomID: customIDCloseTicket,
					Emoji:    &discordgo.ComponentEmoji{Name: "🔒"},
				},
			}},
		},
	})
	if err != nil {
		b.logger.Warnw("failed to post ticket controls", "error", err, "channel_id", channelID)
	}
}

func (b *Bot) componentOpenTicket(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Member == nil || i.Member.User == nil {
		return
	}

	result, err := b.usecases.OpenTicket.Execute(ctx, ticketusecases.OpenTicketCommand{
		GuildID:  i.GuildID,
		UserID:   i.Member.User.ID,
		Username: i.Member.User.Username,
	})
	if err != nil {
		b.respondInteractionError(s, i, err)
		return
	}

	b.respondInteraction(s, i, colorTicket, "Ticket Opened",
		fmt.Sprintf("Your ticket **%s** is ready: <#%s>", result.TicketID, result.ChannelID))
	b.sendTicketControls(s, result.ChannelID)
}

// componentCloseTicket opens the reason modal; the close itself happens on
// submit.
func (b *Bot) componentCloseTicket(_ context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !memberHasAnyRole(i, b.cfg.StaffRoles()...) {
		b.respondInteraction(s, i, colorError, "Permission Denied", "Only staff can close tickets.")
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: customIDCloseModal,
			Title:    "Close Ticket",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    customIDCloseReason,
						Label:       "Reason",
						Style:       discordgo.TextInputParagraph,
						Placeholder: "Why is this ticket being closed?",
						Required:    false,
						MaxLength:   500,
					},
				}},
			},
		},
	})
	if err != nil {
		b.logger.Warnw("failed to open close modal", "error", err)
	}
}

func (b *Bot) modalCloseTicket(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Member == nil || i.Member.User == nil {
		return
	}

	reason := ""
	for _, row := range i.ModalSubmitData().Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			if input, ok := component.(*discordgo.TextInput); ok && input.CustomID == customIDCloseReason {
				reason = input.Value
			}
		}
	}

	_, err := b.usecases.CloseTicket.Execute(ctx, ticketusecases.CloseTicketCommand{
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
		ClosedBy:  i.Member.User.ID,
		Reason:    reason,
	})
	if err != nil {
		b.respondInteractionError(s, i, err)
		return
	}

	b.respondInteraction(s, i, colorSuccess, "Ticket Closed", "This ticket is now closed.")
	b.sendClosedControls(s, i.ChannelID)
}

// sendClosedControls posts the reopen/transcript row after a close.
func (b *Bot) sendClosedControls(s *discordgo.Session, channelID string) {
	_, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Reopen",
					Style:    discordgo.SecondaryButton,
					CustomID: customIDReopenTicket,
					Emoji:    &discordgo.ComponentEmoji{Name: "🔓"},
				},
				discordgo.Button{
					Label:    "Transcript",
					Style:    discordgo.SecondaryButton,
					CustomID: customIDTranscript,
					Emoji:    &discordgo.ComponentEmoji{Name: "📄"},
				},
			}},
		},
	})
	if err != nil {
		b.logger.Warnw("failed to post closed controls", "error", err, "channel_id", channelID)
	}
}

func (b *Bot) componentReopenTicket(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !memberHasAnyRole(i, b.cfg.ElevatedRoles()...) {
		b.respondInteraction(s, i, colorError, "Permission Denied", "Only moderators can reopen tickets.")
		return
	}

	_, err := b.usecases.ReopenTicket.Execute(ctx, ticketusecases.ReopenTicketCommand{
		GuildID:    i.GuildID,
		ChannelID:  i.ChannelID,
		ReopenedBy: i.Member.User.ID,
	})
	if err != nil {
		b.respondInteractionError(s, i, err)
		return
	}

	b.respondInteraction(s, i, colorSuccess, "Ticket Reopened", "This ticket is open again.")
	b.sendTicketControls(s, i.ChannelID)
}

func (b *Bot) componentTranscript(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !memberHasAnyRole(i, b.cfg.StaffRoles()...) {
		b.respondInteraction(s, i, colorError, "Permission Denied", "Only staff can generate transcripts.")
		return
	}

	result, err := b.usecases.Transcript.Execute(ctx, ticketusecases.TranscriptCommand{
		ChannelID: i.ChannelID,
	})
	if err != nil {
		b.respondInteractionError(s, i, err)
		return
	}

	b.respondInteraction(s, i, colorInfo, "Transcript",
		fmt.Sprintf("Generated a transcript with %d messages.", result.MessageCount))
	b.sendTranscriptFile(s, i.ChannelID, result)
}
