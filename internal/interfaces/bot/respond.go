package bot

import (
	stderrors "errors"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"

	"warden/internal/shared/auth"
	"warden/internal/shared/errors"
)

const (
	colorSuccess = 0x2ecc71
	colorError   = 0xe74c3c
	colorWarning = 0xf39c12
	colorInfo    = 0x3498db
	colorTicket  = 0x9b59b6
)

const (
	customIDOpenTicket   = "ticket_open"
	customIDCloseTicket  = "ticket_close"
	customIDReopenTicket = "ticket_reopen"
	customIDTranscript   = "ticket_transcript"
	customIDCloseModal   = "ticket_close_modal"
	customIDCloseReason  = "ticket_close_reason"
)

var mentionPattern = regexp.MustCompile(`^<@!?(\d+)>$`)

// parseUserID accepts a raw snowflake or a mention.
func parseUserID(arg string) string {
	if m := mentionPattern.FindStringSubmatch(arg); m != nil {
		return m[1]
	}
	if isSnowflake(arg) {
		return arg
	}
	return ""
}

func isSnowflake(s string) bool {
	if len(s) < 15 || len(s) > 22 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (b *Bot) reply(s *discordgo.Session, channelID string, color int, title, body string) {
	_, err := s.ChannelMessageSendEmbed(channelID, &discordgo.MessageEmbed{
		Title:       title,
		Description: body,
		Color:       color,
	})
	if err != nil {
		b.logger.Warnw("failed to send reply", "error", err, "channel_id", channelID)
	}
}

// userFacing extracts an application error whose message is safe to show.
// Internal failures stay generic; the detail goes to the logs.
func userFacing(err error) *errors.AppError {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) && appErr.Type != errors.ErrorTypeInternal {
		return appErr
	}
	return nil
}

func (b *Bot) replyError(s *discordgo.Session, channelID string, err error) {
	if appErr := userFacing(err); appErr != nil {
		b.reply(s, channelID, colorError, "Error", appErr.Message)
		return
	}

	b.logger.Errorw("command failed", "error", err, "channel_id", channelID)
	b.reply(s, channelID, colorError, "Error", "Something went wrong, try again later.")
}

// requireRoles checks the invoking member against a role-id set and replies
// on failure. Permission checks happen here, before the use case runs.
func (b *Bot) requireRoles(s *discordgo.Session, m *discordgo.MessageCreate, required ...string) bool {
	if m.Member != nil && auth.HasAnyRole(m.Member.Roles, required...) {
		return true
	}
	b.reply(s, m.ChannelID, colorError, "Permission Denied", "You do not have permission to use this command.")
	return false
}

// memberHasAnyRole is the interaction-flavored role check.
func memberHasAnyRole(i *discordgo.InteractionCreate, required ...string) bool {
	return i.Member != nil && auth.HasAnyRole(i.Member.Roles, required...)
}

func (b *Bot) respondInteraction(s *discordgo.Session, i *discordgo.InteractionCreate, color int, title, body string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
			Embeds: []*discordgo.MessageEmbed{{
				Title:       title,
				Description: body,
				Color:       color,
			}},
		},
	})
	if err != nil {
		b.logger.Warnw("failed to respond to interaction", "error", err)
	}
}

func (b *Bot) respondInteractionError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	if appErr := userFacing(err); appErr != nil {
		b.respondInteraction(s, i, colorError, "Error", appErr.Message)
		return
	}

	b.logger.Errorw("interaction failed", "error", err)
	b.respondInteraction(s, i, colorError, "Error", "Something went wrong, try again later.")
}

// joinReason rebuilds a free-text trailing argument.
func joinReason(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
