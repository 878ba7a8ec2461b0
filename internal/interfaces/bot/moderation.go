package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	moderationusecases "warden/internal/application/moderation/usecases"
)

// clearLimit caps a single bulk delete; the API rejects anything above 100.
const clearLimit = 100

func (b *Bot) handleWarn(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.requireRoles(s, m, b.cfg.ElevatedRoles()...) {
		return
	}
	if len(args) < 1 {
		b.reply(s, m.ChannelID, colorError, "Usage", fmt.Sprintf("`%swarn @user [reason]`", b.cfg.Prefix))
		return
	}
	userID := parseUserID(args[0])
	if userID == "" {
		b.reply(s, m.ChannelID, colorError, "Error", "Mention a user or give their id.")
		return
	}

	result, err := b.usecases.Warn.Execute(ctx, moderationusecases.WarnCommand{
		GuildID:     m.GuildID,
		UserID:      userID,
		ModeratorID: m.Author.ID,
		Reason:      joinReason(args[1:]),
	})
	if err != nil {
		b.replyError(s, m.ChannelID, err)
		return
	}

	b.reply(s, m.ChannelID, colorWarning, "User Warned",
		fmt.Sprintf("<@%s> has been warned (case **%s**). They now have %d active warning(s).",
			userID, result.CaseID, result.ActiveWarnings))
}

func (b *Bot) handleMute(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.requireRoles(s, m, b.cfg.ElevatedRoles()...) {
		return
	}
	if len(args) < 2 {
		b.reply(s, m.ChannelID, colorError, "Usage", fmt.Sprintf("`%smute @user <duration> [reason]`", b.cfg.Prefix))
		return
	}
	userID := parseUserID(args[0])
	if userID == "" {
		b.reply(s, m.ChannelID, colorError, "Error", "Mention a user or give their id.")
		return
	}

	result, err := b.usecases.Mute.Execute(ctx, moderationusecases.MuteCommand{
		GuildID:     m.GuildID,
		UserID:      userID,
		ModeratorID: m.Author.ID,
		Duration:    args[1],
		Reason:      joinReason(args[2:]),
	})
	if err != nil {
		b.replyError(s, m.ChannelID, err)
		return
	}

	b.reply(s, m.ChannelID, colorWarning, "User Muted",
		fmt.Sprintf("<@%s> is muted until <t:%d:f> (case **%s**).",
			userID, result.ExpiresAt.Unix(), result.CaseID))
}

func (b *Bot) handleUnmute(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.requireRoles(s, m, b.cfg.ElevatedRoles()...) {
		return
	}
	if len(args) < 1 {
		b.reply(s, m.ChannelID, colorError, "Usage", fmt.Sprintf("`%sunmute @user`", b.cfg.Prefix))
		return
	}
	userID := parseUserID(args[0])
	if userID == "" {
		b.reply(s, m.ChannelID, colorError, "Error", "Mention a user or give their id.")
		return
	}

	err := b.usecases.Unmute.Execute(ctx, moderationusecases.UnmuteCommand{
		GuildID:     m.GuildID,
		UserID:      userID,
		ModeratorID: m.Author.ID,
	})
	if err != nil {
		b.replyError(s, m.ChannelID, err)
		return
	}

	b.reply(s, m.ChannelID, colorSuccess, "User Unmuted",
		fmt.Sprintf("<@%s> can speak again.", userID))
}

func (b *Bot) handleKick(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.requireRoles(s, m, b.cfg.ElevatedRoles()...) {
		return
	}
	if len(args) < 1 {
		b.reply(s, m.ChannelID, colorError, "Usage", fmt.Sprintf("`%skick @user [reason]`", b.cfg.Prefix))
		return
	}
	userID := parseUserID(args[0])
	if userID == "" {
		b.reply(s, m.ChannelID, colorError, "Error", "Mention a user or give their id.")
		return
	}

	result, err := b.usecases.Kick.Execute(ctx, moderationusecases.KickCommand{
		GuildID:     m.GuildID,
		UserID:      userID,
		ModeratorID: m.Author.ID,
		Reason:      joinReason(args[1:]),
	})
	if err != nil {
		b.replyError(s, m.ChannelID, err)
		return
	}

	b.reply(s, m.ChannelID, colorWarning, "User Kicked",
		fmt.Sprintf("<@%s> has been kicked (case **%s**).", userID, result.CaseID))
}

func (b *Bot) handleBan(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.requireRoles(s, m, b.cfg.ElevatedRoles()...) {
		return
	}
	if len(args) < 1 {
		b.reply(s, m.ChannelID, colorError, "Usage", fmt.Sprintf("`%sban @user [reason]`", b.cfg.Prefix))
		return
	}
	userID := parseUserID(args[0])
	if userID == "" {
		b.reply(s, m.ChannelID, colorError, "Error", "Mention a user or give their id.")
		return
	}

	result, err := b.usecases.Ban.Execute(ctx, moderationusecases.BanCommand{
		GuildID:     m.GuildID,
		UserID:      userID,
		ModeratorID: m.Author.ID,
		Reason:      joinReason(args[1:]),
	})
	if err != nil {
		b.replyError(s, m.ChannelID, err)
		return
	}

	b.reply(s, m.ChannelID, colorError, "User Banned",
		fmt.Sprintf("<@%s> has been banned (case **%s**).", userID, result.CaseID))
}

func (b *Bot) handleWarnings(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.requireRoles(s, m, b.cfg.StaffRoles()...) {
		return
	}
	if len(args) < 1 {
		b.reply(s, m.ChannelID, colorError, "Usage", fmt.Sprintf("`%swarnings @user`", b.cfg.Prefix))
		return
	}
	userID := parseUserID(args[0])
	if userID == "" {
		b.reply(s, m.ChannelID, colorError, "Error", "Mention a user or give their id.")
		return
	}

	result, err := b.usecases.Warnings.Execute(ctx, moderationusecases.ListWarningsCommand{UserID: userID})
	if err != nil {
		b.replyError(s, m.ChannelID, err)
		return
	}

	if result.Count == 0 {
		b.reply(s, m.ChannelID, colorSuccess, "Warnings",
			fmt.Sprintf("<@%s> has no active warnings.", userID))
		return
	}

	var lines []string
	for _, w := range result.Warnings {
		reason := w.Reason
		if reason == "" {
			reason = "no reason given"
		}
		lines = append(lines, fmt.Sprintf("**%s** · %s · by <@%s> · %s",
			w.CaseID, reason, w.ModeratorID, w.CreatedAt.Format("2006-01-02")))
	}

	b.reply(s, m.ChannelID, colorWarning,
		fmt.Sprintf("Warnings (%d)", result.Count), strings.Join(lines, "\n"))
}

func (b *Bot) handleCase(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.requireRoles(s, m, b.cfg.StaffRoles()...) {
		return
	}
	if len(args) < 1 {
		b.reply(s, m.ChannelID, colorError, "Usage", fmt.Sprintf("`%scase <case id>`", b.cfg.Prefix))
		return
	}

	result, err := b.usecases.GetCase.Execute(ctx, moderationusecases.GetCaseCommand{CaseID: args[0]})
	if err != nil {
		b.replyError(s, m.ChannelID, err)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Case %s", result.CaseID),
		Color: colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Action", Value: result.Action, Inline: true},
			{Name: "User", Value: fmt.Sprintf("<@%s>", result.UserID), Inline: true},
			{Name: "Moderator", Value: fmt.Sprintf("<@%s>", result.ModeratorID), Inline: true},
			{Name: "Date", Value: result.CreatedAt.Format("2006-01-02 15:04"), Inline: true},
			{Name: "Active", Value: strconv.FormatBool(result.Active), Inline: true},
		},
	}
	if result.Duration != "" {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Duration", Value: result.Duration, Inline: true})
	}
	if result.Reason != "" {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Reason", Value: result.Reason, Inline: false})
	}

	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		b.logger.Warnw("failed to send case embed", "error", err, "channel_id", m.ChannelID)
	}
}

// handleClear bulk deletes recent messages. Pure presentation, nothing is
// recorded; Discord refuses messages older than two weeks so those are
// filtered client side.
func (b *Bot) handleClear(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.requireRoles(s, m, b.cfg.ElevatedRoles()...) {
		return
	}
	if len(args) < 1 {
		b.reply(s, m.ChannelID, colorError, "Usage", fmt.Sprintf("`%sclear <count>`", b.cfg.Prefix))
		return
	}

	count, err := strconv.Atoi(args[0])
	if err != nil || count < 1 {
		b.reply(s, m.ChannelID, colorError, "Error", "Count must be a positive number.")
		return
	}
	if count > clearLimit {
		count = clearLimit
	}

	messages, err := s.ChannelMessages(m.ChannelID, count, m.ID, "", "")
	if err != nil {
		b.logger.Errorw("failed to fetch messages for clear", "error", err, "channel_id", m.ChannelID)
		b.reply(s, m.ChannelID, colorError, "Error", "Could not fetch messages.")
		return
	}

	cutoff := time.Now().AddDate(0, 0, -14)
	ids := []string{m.ID}
	for _, msg := range messages {
		if msg.Timestamp.After(cutoff) {
			ids = append(ids, msg.ID)
		}
	}

	if err := s.ChannelMessagesBulkDelete(m.ChannelID, ids); err != nil {
		b.logger.Errorw("bulk delete failed", "error", err, "channel_id", m.ChannelID)
		b.reply(s, m.ChannelID, colorError, "Error", "Could not delete messages.")
		return
	}

	b.reply(s, m.ChannelID, colorSuccess, "Channel Cleared",
		fmt.Sprintf("Deleted %d message(s).", len(ids)-1))
}
