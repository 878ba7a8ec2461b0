// Package bot maps Discord messages and interactions onto the application
// use cases. Everything here is presentation glue: argument parsing, role
// checks, and reply formatting. Business rules live in the use cases.
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	guildusecases "warden/internal/application/guild/usecases"
	moderationusecases "warden/internal/application/moderation/usecases"
	ticketusecases "warden/internal/application/ticket/usecases"
	"warden/internal/shared/config"
	"warden/internal/shared/logger"
)

// handlerTimeout bounds the work done for a single command or interaction.
const handlerTimeout = 30 * time.Second

type commandHandler func(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string)

// UseCases bundles everything the bot dispatches to.
type UseCases struct {
	OpenTicket    *ticketusecases.OpenTicketUseCase
	CloseTicket   *ticketusecases.CloseTicketUseCase
	ReopenTicket  *ticketusecases.ReopenTicketUseCase
	Transcript    *ticketusecases.TranscriptUseCase
	TicketInfo    *ticketusecases.TicketInfoUseCase
	RecordMessage *ticketusecases.RecordMessageUseCase
	Participants  *ticketusecases.ManageParticipantsUseCase

	Warn     *moderationusecases.WarnUseCase
	Mute     *moderationusecases.MuteUseCase
	Unmute   *moderationusecases.UnmuteUseCase
	Kick     *moderationusecases.KickUseCase
	Ban      *moderationusecases.BanUseCase
	Warnings *moderationusecases.ListWarningsUseCase
	GetCase  *moderationusecases.GetCaseUseCase

	UpdateSettings *guildusecases.UpdateSettingsUseCase
	GetSettings    *guildusecases.GetSettingsUseCase
}

// Bot owns the gateway session and the command table.
type Bot struct {
	session  *discordgo.Session
	cfg      config.DiscordConfig
	usecases UseCases
	logger   logger.Interface

	commands map[string]commandHandler
	started  time.Time
}

func New(session *discordgo.Session, cfg config.DiscordConfig, usecases UseCases, logger logger.Interface) *Bot {
	b := &Bot{
		session:  session,
		cfg:      cfg,
		usecases: usecases,
		logger:   logger,
	}

	b.commands = map[string]commandHandler{
		"new":           b.handleNewTicket,
		"close":         b.handleCloseTicket,
		"reopen":        b.handleReopenTicket,
		"transcript":    b.handleTranscript,
		"ticket-info":   b.handleTicketInfo,
		"add-user":      b.handleAddUser,
		"remove-user":   b.handleRemoveUser,
		"setup-tickets": b.handleSetupTickets,
		"settings":      b.handleSettings,

		"warn":     b.handleWarn,
		"mute":     b.handleMute,
		"unmute":   b.handleUnmute,
		"kick":     b.handleKick,
		"ban":      b.handleBan,
		"warnings": b.handleWarnings,
		"case":     b.handleCase,
		"clear":    b.handleClear,

		"help":       b.handleHelp,
		"ping":       b.handlePing,
		"avatar":     b.handleAvatar,
		"serverinfo": b.handleServerInfo,
		"userinfo":   b.handleUserInfo,
		"roll":       b.handleRoll,
		"say":        b.handleSay,
		"coin":       b.handleCoin,
		"8ball":      b.handleEightBall,
	}

	return b
}

// Start registers the event handlers and opens the gateway connection.
func (b *Bot) Start() error {
	b.session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentMessageContent

	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onMessageCreate)
	b.session.AddHandler(b.onInteractionCreate)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open gateway connection: %w", err)
	}

	b.started = time.Now()
	return nil
}

func (b *Bot) Stop() error {
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Infow("gateway connected",
		"username", r.User.Username,
		"guilds", len(r.Guilds),
	)
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	if !strings.HasPrefix(m.Content, b.cfg.Prefix) {
		b.recordTicketMessage(ctx, m)
		return
	}

	fields := strings.Fields(strings.TrimPrefix(m.Content, b.cfg.Prefix))
	if len(fields) == 0 {
		return
	}

	name := strings.ToLower(fields[0])
	handler, ok := b.commands[name]
	if !ok {
		return
	}

	b.logger.Debugw("dispatching command",
		"command", name,
		"user_id", m.Author.ID,
		"channel_id", m.ChannelID,
	)
	handler(ctx, s, m, fields[1:])
}

// recordTicketMessage keeps the stored transcript of ticket channels current.
func (b *Bot) recordTicketMessage(ctx context.Context, m *discordgo.MessageCreate) {
	err := b.usecases.RecordMessage.Execute(ctx, ticketusecases.RecordMessageCommand{
		ChannelID: m.ChannelID,
		UserID:    m.Author.ID,
		Content:   m.Content,
		Timestamp: m.Timestamp,
	})
	if err != nil {
		b.logger.Warnw("failed to record ticket message", "error", err, "channel_id", m.ChannelID)
	}
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	switch i.Type {
	case discordgo.InteractionMessageComponent:
		switch i.MessageComponentData().CustomID {
		case customIDOpenTicket:
			b.componentOpenTicket(ctx, s, i)
		case customIDCloseTicket:
			b.componentCloseTicket(ctx, s, i)
		case customIDReopenTicket:
			b.componentReopenTicket(ctx, s, i)
		case customIDTranscript:
			b.componentTranscript(ctx, s, i)
		}
	case discordgo.InteractionModalSubmit:
		if i.ModalSubmitData().CustomID == customIDCloseModal {
			b.modalCloseTicket(ctx, s, i)
		}
	}
}
