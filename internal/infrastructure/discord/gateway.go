// Package discord adapts the chat platform port onto a discordgo session.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"warden/internal/domain/platform"
	"warden/internal/shared/logger"
)

const (
	ticketMemberAllow = discordgo.PermissionViewChannel |
		discordgo.PermissionSendMessages |
		discordgo.PermissionReadMessageHistory

	mutedDeny = discordgo.PermissionSendMessages | discordgo.PermissionAddReactions
)

// Gateway implements the platform port on a live gateway session. Context
// deadlines are not threaded into discordgo, which manages its own HTTP
// timeouts.
type Gateway struct {
	session *discordgo.Session
	logger  logger.Interface
}

func NewGateway(session *discordgo.Session, logger logger.Interface) *Gateway {
	return &Gateway{session: session, logger: logger}
}

func (g *Gateway) CreateTicketChannel(ctx context.Context, params platform.TicketChannelParams) (string, error) {
	overwrites := []*discordgo.PermissionOverwrite{
		{
			ID:   params.GuildID, // @everyone carries the guild id
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discordgo.PermissionViewChannel,
		},
		{
			ID:    params.OpenerID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: ticketMemberAllow,
		},
	}
	for _, roleID := range params.StaffRoles {
		if roleID == "" {
			continue
		}
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    roleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: ticketMemberAllow,
		})
	}

	channel, err := g.session.GuildChannelCreateComplex(params.GuildID, discordgo.GuildChannelCreateData{
		Name:                 params.Name,
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                params.Topic,
		ParentID:             params.CategoryID,
		PermissionOverwrites: overwrites,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create channel: %w", err)
	}

	return channel.ID, nil
}

func (g *Gateway) MoveChannel(ctx context.Context, channelID, categoryID string, restrictRoles []string) error {
	edit := &discordgo.ChannelEdit{ParentID: categoryID}

	if len(restrictRoles) > 0 {
		channel, err := g.session.Channel(channelID)
		if err != nil {
			return fmt.Errorf("failed to load channel: %w", err)
		}

		overwrites := []*discordgo.PermissionOverwrite{
			{
				ID:   channel.GuildID,
				Type: discordgo.PermissionOverwriteTypeRole,
				Deny: discordgo.PermissionViewChannel,
			},
		}
		for _, roleID := range restrictRoles {
			if roleID == "" {
				continue
			}
			overwrites = append(overwrites, &discordgo.PermissionOverwrite{
				ID:    roleID,
				Type:  discordgo.PermissionOverwriteTypeRole,
				Allow: ticketMemberAllow,
			})
		}
		edit.PermissionOverwrites = overwrites
	}

	if _, err := g.session.ChannelEditComplex(channelID, edit); err != nil {
		return fmt.Errorf("failed to move channel: %w", err)
	}
	return nil
}

func (g *Gateway) DeleteChannel(ctx context.Context, channelID, reason string) error {
	if _, err := g.session.ChannelDelete(channelID, discordgo.WithAuditLogReason(reason)); err != nil {
		return fmt.Errorf("failed to delete channel: %w", err)
	}
	return nil
}

func (g *Gateway) ChannelHistory(ctx context.Context, channelID string, limit int) ([]platform.Message, error) {
	return collectHistory(g.session, channelID, limit)
}

func (g *Gateway) GrantChannelAccess(ctx context.Context, channelID, userID string) error {
	err := g.session.ChannelPermissionSet(
		channelID, userID, discordgo.PermissionOverwriteTypeMember, ticketMemberAllow, 0)
	if err != nil {
		return fmt.Errorf("failed to grant channel access: %w", err)
	}
	return nil
}

func (g *Gateway) RevokeChannelAccess(ctx context.Context, channelID, userID string) error {
	if err := g.session.ChannelPermissionDelete(channelID, userID); err != nil {
		return fmt.Errorf("failed to revoke channel access: %w", err)
	}
	return nil
}

func (g *Gateway) SendNotice(ctx context.Context, channelID string, n platform.Notice) error {
	if _, err := g.session.ChannelMessageSendEmbed(channelID, noticeEmbed(n)); err != nil {
		return fmt.Errorf("failed to send notice: %w", err)
	}
	return nil
}

func (g *Gateway) SendDirectNotice(ctx context.Context, userID string, n platform.Notice) error {
	dm, err := g.session.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("failed to open DM channel: %w", err)
	}

	if _, err := g.session.ChannelMessageSendEmbed(dm.ID, noticeEmbed(n)); err != nil {
		return fmt.Errorf("failed to send DM: %w", err)
	}
	return nil
}

func (g *Gateway) AddRole(ctx context.Context, guildID, userID, roleID string) error {
	if err := g.session.GuildMemberRoleAdd(guildID, userID, roleID); err != nil {
		return fmt.Errorf("failed to add role: %w", err)
	}
	return nil
}

func (g *Gateway) RemoveRole(ctx context.Context, guildID, userID, roleID string) error {
	if err := g.session.GuildMemberRoleRemove(guildID, userID, roleID); err != nil {
		return fmt.Errorf("failed to remove role: %w", err)
	}
	return nil
}

func (g *Gateway) MemberHasRole(ctx context.Context, guildID, userID, roleID string) (bool, error) {
	member, err := g.session.GuildMember(guildID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to load guild member: %w", err)
	}

	for _, r := range member.Roles {
		if r == roleID {
			return true, nil
		}
	}
	return false, nil
}

// CreateMutedRole creates the shared muted role and denies send/react on
// every existing text channel. New channels inherit nothing automatically;
// category overwrites cover the usual case.
func (g *Gateway) CreateMutedRole(ctx context.Context, guildID string) (string, error) {
	perms := int64(0)
	role, err := g.session.GuildRoleCreate(guildID, &discordgo.RoleParams{
		Name:        "Muted",
		Permissions: &perms,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create muted role: %w", err)
	}

	channels, err := g.session.GuildChannels(guildID)
	if err != nil {
		return "", fmt.Errorf("failed to list guild channels: %w", err)
	}

	for _, ch := range channels {
		if ch.Type != discordgo.ChannelTypeGuildText && ch.Type != discordgo.ChannelTypeGuildCategory {
			continue
		}
		err := g.session.ChannelPermissionSet(
			ch.ID, role.ID, discordgo.PermissionOverwriteTypeRole, 0, mutedDeny)
		if err != nil {
			g.logger.Warnw("failed to apply muted overwrite",
				"error", err,
				"channel_id", ch.ID,
				"role_id", role.ID,
			)
		}
	}

	return role.ID, nil
}

func (g *Gateway) KickMember(ctx context.Context, guildID, userID, reason string) error {
	if err := g.session.GuildMemberDeleteWithReason(guildID, userID, reason); err != nil {
		return fmt.Errorf("failed to kick member: %w", err)
	}
	return nil
}

func (g *Gateway) BanMember(ctx context.Context, guildID, userID, reason string) error {
	if err := g.session.GuildBanCreateWithReason(guildID, userID, reason, 0); err != nil {
		return fmt.Errorf("failed to ban member: %w", err)
	}
	return nil
}
