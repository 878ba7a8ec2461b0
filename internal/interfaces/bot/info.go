package bot

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleHelp(_ context.Context, s *discordgo.Session, m *discordgo.MessageCreate, _ []string) {
	p := b.cfg.Prefix

	embed := &discordgo.MessageEmbed{
		Title: "Commands",
		Color: colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "Tickets",
				Value: fmt.Sprintf(
					"`%snew [category]` open a ticket\n"+
						"`%sclose [reason]` close this ticket\n"+
						"`%sreopen [id]` reopen a closed ticket\n"+
						"`%stranscript [id]` export the conversation\n"+
						"`%sticket-info [id]` show ticket details\n"+
						"`%sadd-user @user` / `%sremove-user @user` manage access",
					p, p, p, p, p, p, p),
			},
			{
				Name: "Moderation",
				Value: fmt.Sprintf(
					"`%swarn @user [reason]`\n"+
						"`%smute @user <duration> [reason]` duration like 30m or 2h\n"+
						"`%sunmute @user`\n"+
						"`%skick @user [reason]` / `%sban @user [reason]`\n"+
						"`%swarnings @user` / `%scase <id>`\n"+
						"`%sclear <count>` bulk delete messages",
					p, p, p, p, p, p, p, p),
			},
			{
				Name: "Utility",
				Value: fmt.Sprintf(
					"`%sping` `%savatar [@user]` `%sserverinfo` `%suserinfo [@user]`\n"+
						"`%ssay <text>` `%sroll [NdM]` `%scoin` `%s8ball <question>`",
					p, p, p, p, p, p, p, p),
			},
		},
	}

	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		b.logger.Warnw("failed to send help", "error", err, "channel_id", m.ChannelID)
	}
}

func (b *Bot) handlePing(_ context.Context, s *discordgo.Session, m *discordgo.MessageCreate, _ []string) {
	latency := s.HeartbeatLatency().Round(time.Millisecond)
	uptime := time.Since(b.started).Round(time.Second)

	b.reply(s, m.ChannelID, colorSuccess, "Pong",
		fmt.Sprintf("Heartbeat: %s\nUptime: %s", latency, uptime))
}

// targetUser resolves the first argument to a user, defaulting to the author.
func targetUser(s *discordgo.Session, m *discordgo.MessageCreate, args []string) (*discordgo.User, error) {
	if len(args) == 0 {
		return m.Author, nil
	}
	userID := parseUserID(args[0])
	if userID == "" {
		return nil, fmt.Errorf("invalid user reference %q", args[0])
	}
	return s.User(userID)
}

func (b *Bot) handleAvatar(_ context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	user, err := targetUser(s, m, args)
	if err != nil {
		b.reply(s, m.ChannelID, colorError, "Error", "Could not find that user.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s's avatar", user.Username),
		Color: colorInfo,
		Image: &discordgo.MessageEmbedImage{URL: user.AvatarURL("512")},
	}
	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		b.logger.Warnw("failed to send avatar", "error", err, "channel_id", m.ChannelID)
	}
}

func (b *Bot) handleServerInfo(_ context.Context, s *discordgo.Session, m *discordgo.MessageCreate, _ []string) {
	guild, err := s.State.Guild(m.GuildID)
	if err != nil {
		guild, err = s.Guild(m.GuildID)
		if err != nil {
			b.logger.Warnw("failed to load guild", "error", err, "guild_id", m.GuildID)
			b.reply(s, m.ChannelID, colorError, "Error", "Could not load server information.")
			return
		}
	}

	created, _ := discordgo.SnowflakeTimestamp(guild.ID)

	embed := &discordgo.MessageEmbed{
		Title: guild.Name,
		Color: colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Owner", Value: fmt.Sprintf("<@%s>", guild.OwnerID), Inline: true},
			{Name: "Members", Value: strconv.Itoa(guild.MemberCount), Inline: true},
			{Name: "Channels", Value: strconv.Itoa(len(guild.Channels)), Inline: true},
			{Name: "Roles", Value: strconv.Itoa(len(guild.Roles)), Inline: true},
			{Name: "Created", Value: created.Format("2006-01-02"), Inline: true},
		},
	}
	if guild.Icon != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: guild.IconURL("256")}
	}

	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		b.logger.Warnw("failed to send server info", "error", err, "channel_id", m.ChannelID)
	}
}

func (b *Bot) handleUserInfo(_ context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	user, err := targetUser(s, m, args)
	if err != nil {
		b.reply(s, m.ChannelID, colorError, "Error", "Could not find that user.")
		return
	}

	created, _ := discordgo.SnowflakeTimestamp(user.ID)

	embed := &discordgo.MessageEmbed{
		Title:     user.Username,
		Color:     colorInfo,
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: user.AvatarURL("256")},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "ID", Value: user.ID, Inline: true},
			{Name: "Account Created", Value: created.Format("2006-01-02"), Inline: true},
		},
	}

	if member, err := s.GuildMember(m.GuildID, user.ID); err == nil {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{
				Name:   "Joined Server",
				Value:  member.JoinedAt.Format("2006-01-02"),
				Inline: true,
			},
			&discordgo.MessageEmbedField{
				Name:   "Roles",
				Value:  strconv.Itoa(len(member.Roles)),
				Inline: true,
			},
		)
	}

	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		b.logger.Warnw("failed to send user info", "error", err, "channel_id", m.ChannelID)
	}
}

func (b *Bot) handleSay(_ context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		b.reply(s, m.ChannelID, colorWarning, "Usage", fmt.Sprintf("`%ssay <text>`", b.cfg.Prefix))
		return
	}

	if _, err := s.ChannelMessageSend(m.ChannelID, strings.Join(args, " ")); err != nil {
		b.logger.Warnw("failed to echo message", "error", err, "channel_id", m.ChannelID)
	}
}

func coinSide() string {
	if rand.Intn(2) == 0 {
		return "Heads"
	}
	return "Tails"
}

func (b *Bot) handleCoin(_ context.Context, s *discordgo.Session, m *discordgo.MessageCreate, _ []string) {
	b.reply(s, m.ChannelID, colorInfo, "🪙 Coin Flip",
		fmt.Sprintf("<@%s> got **%s**", m.Author.ID, coinSide()))
}

var fortunes = []string{
	"Yes",
	"No",
	"Maybe",
	"Definitely!",
	"Never",
	"Without a doubt",
}

func fortuneAnswer() string {
	return fortunes[rand.Intn(len(fortunes))]
}

func (b *Bot) handleEightBall(_ context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		b.reply(s, m.ChannelID, colorWarning, "Usage", fmt.Sprintf("`%s8ball <question>`", b.cfg.Prefix))
		return
	}

	b.reply(s, m.ChannelID, colorInfo, "🎱 Fortune",
		fmt.Sprintf("<@%s> asked: %q\nAnswer: **%s**", m.Author.ID, strings.Join(args, " "), fortuneAnswer()))
}

// parseDice reads NdM notation. Defaults to 1d6.
func parseDice(arg string) (count, sides int, err error) {
	if arg == "" {
		return 1, 6, nil
	}

	parts := strings.SplitN(strings.ToLower(arg), "d", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected NdM, got %q", arg)
	}

	count = 1
	if parts[0] != "" {
		if count, err = strconv.Atoi(parts[0]); err != nil {
			return 0, 0, err
		}
	}
	if sides, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, err
	}

	if count < 1 || count > 20 || sides < 2 || sides > 1000 {
		return 0, 0, fmt.Errorf("dice out of range: %q", arg)
	}
	return count, sides, nil
}

func (b *Bot) handleRoll(_ context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}

	count, sides, err := parseDice(arg)
	if err != nil {
		b.reply(s, m.ChannelID, colorError, "Error", "Use dice notation like `2d6` (up to 20d1000).")
		return
	}

	rolls := make([]string, count)
	total := 0
	for i := range rolls {
		n := rand.Intn(sides) + 1
		total += n
		rolls[i] = strconv.Itoa(n)
	}

	b.reply(s, m.ChannelID, colorInfo, fmt.Sprintf("🎲 %dd%d", count, sides),
		fmt.Sprintf("Rolled %s = **%d**", strings.Join(rolls, " + "), total))
}
