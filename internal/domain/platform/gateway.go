// Package platform defines the contract the core depends on for chat platform
// operations. The bot never touches the platform transport directly: channel
// lifecycle, role enforcement, notices, and history reads all go through the
// Gateway, implemented by the Discord adapter in infrastructure.
package platform

import (
	"context"
	"time"
)

// NoticeKind selects the presentation accent (color) a notice is rendered with.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeWarning NoticeKind = "warning"
	NoticeInfo    NoticeKind = "info"
	NoticeTicket  NoticeKind = "ticket"
)

// NoticeField is a labeled value rendered inside a notice.
type NoticeField struct {
	Name   string
	Value  string
	Inline bool
}

// Notice is a platform-agnostic rich message. The adapter renders it as an
// embed.
type Notice struct {
	Kind   NoticeKind
	Title  string
	Body   string
	Fields []NoticeField
	Footer string
}

// Message is one entry of a channel's history.
type Message struct {
	ID        string
	AuthorID  string
	Author    string
	Content   string
	Timestamp time.Time
}

// TicketChannelParams describes the dedicated channel created for a ticket:
// the opener and the staff roles get read/write, everyone else is denied.
type TicketChannelParams struct {
	GuildID    string
	Name       string
	Topic      string
	CategoryID string
	OpenerID   string
	StaffRoles []string
}

// Gateway is the single port into the chat platform.
type Gateway interface {
	// CreateTicketChannel creates a text channel with per-role visibility
	// overwrites and returns the new channel id.
	CreateTicketChannel(ctx context.Context, params TicketChannelParams) (string, error)

	// MoveChannel relocates a channel under the given category. When
	// restrictRoles is non-empty the channel visibility is reset so only
	// those roles retain read access.
	MoveChannel(ctx context.Context, channelID, categoryID string, restrictRoles []string) error

	// DeleteChannel removes a channel. The reason is recorded in the
	// platform audit log where supported.
	DeleteChannel(ctx context.Context, channelID, reason string) error

	// ChannelHistory returns up to limit of the most recent messages in the
	// channel, ordered oldest first. Channels with more messages than limit
	// have their older messages silently dropped.
	ChannelHistory(ctx context.Context, channelID string, limit int) ([]Message, error)

	// GrantChannelAccess lets an extra user read and write the channel.
	GrantChannelAccess(ctx context.Context, channelID, userID string) error

	// RevokeChannelAccess removes a user's overwrite from the channel.
	RevokeChannelAccess(ctx context.Context, channelID, userID string) error

	// SendNotice posts a notice into a channel.
	SendNotice(ctx context.Context, channelID string, n Notice) error

	// SendDirectNotice delivers a notice to a user's direct messages.
	// Callers treat failures as non-fatal: users may have DMs closed.
	SendDirectNotice(ctx context.Context, userID string, n Notice) error

	// AddRole grants a role to a guild member.
	AddRole(ctx context.Context, guildID, userID, roleID string) error

	// RemoveRole revokes a role from a guild member.
	RemoveRole(ctx context.Context, guildID, userID, roleID string) error

	// MemberHasRole reports whether the member currently holds the role.
	MemberHasRole(ctx context.Context, guildID, userID, roleID string) (bool, error)

	// CreateMutedRole creates the shared muted role with send/react denied
	// across the guild's channels and returns its id.
	CreateMutedRole(ctx context.Context, guildID string) (string, error)

	// KickMember removes a member from the guild.
	KickMember(ctx context.Context, guildID, userID, reason string) error

	// BanMember bans a member from the guild.
	BanMember(ctx context.Context, guildID, userID, reason string) error
}
