package usecases

import (
	"context"
	"io"
	"log/slog"
	"time"

	"warden/internal/domain/guild"
	"warden/internal/domain/platform"
	"warden/internal/domain/ticket"
	"warden/internal/shared/logger"
)

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type mockTicketRepo struct {
	SaveFunc            func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc          func(ctx context.Context, t *ticket.Ticket) error
	FindByTicketIDFunc  func(ctx context.Context, ticketID string) (*ticket.Ticket, error)
	FindByChannelIDFunc func(ctx context.Context, channelID string) (*ticket.Ticket, error)
	ListByUserFunc      func(ctx context.Context, userID string) ([]*ticket.Ticket, error)
	CountOpenByUserFunc func(ctx context.Context, userID string) (int64, error)
	ListStaleFunc       func(ctx context.Context, cutoff time.Time) ([]*ticket.Ticket, error)
	CountByStatusFunc   func(ctx context.Context, status ticket.Status) (int64, error)
	CountFunc           func(ctx context.Context) (int64, error)
}

func (m *mockTicketRepo) Save(ctx context.Context, t *ticket.Ticket) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepo) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepo) FindByTicketID(ctx context.Context, ticketID string) (*ticket.Ticket, error) {
	if m.FindByTicketIDFunc != nil {
		return m.FindByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockTicketRepo) FindByChannelID(ctx context.Context, channelID string) (*ticket.Ticket, error) {
	if m.FindByChannelIDFunc != nil {
		return m.FindByChannelIDFunc(ctx, channelID)
	}
	return nil, nil
}

func (m *mockTicketRepo) ListByUser(ctx context.Context, userID string) ([]*ticket.Ticket, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockTicketRepo) CountOpenByUser(ctx context.Context, userID string) (int64, error) {
	if m.CountOpenByUserFunc != nil {
		return m.CountOpenByUserFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockTicketRepo) ListStale(ctx context.Context, cutoff time.Time) ([]*ticket.Ticket, error) {
	if m.ListStaleFunc != nil {
		return m.ListStaleFunc(ctx, cutoff)
	}
	return nil, nil
}

func (m *mockTicketRepo) CountByStatus(ctx context.Context, status ticket.Status) (int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, status)
	}
	return 0, nil
}

func (m *mockTicketRepo) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

type mockMessageRepo struct {
	AppendFunc         func(ctx context.Context, m *ticket.Message) error
	ListByTicketIDFunc func(ctx context.Context, ticketID string) ([]*ticket.Message, error)
}

func (m *mockMessageRepo) Append(ctx context.Context, msg *ticket.Message) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, msg)
	}
	return nil
}

func (m *mockMessageRepo) ListByTicketID(ctx context.Context, ticketID string) ([]*ticket.Message, error) {
	if m.ListByTicketIDFunc != nil {
		return m.ListByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

type mockIDGen struct {
	GenerateFunc func(ctx context.Context) (string, error)
}

func (m *mockIDGen) Generate(ctx context.Context) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx)
	}
	return "A1B2C3", nil
}

type mockResolver struct {
	ResolveFunc func(ctx context.Context, guildID string) (*guild.Settings, error)
}

func (m *mockResolver) Resolve(ctx context.Context, guildID string) (*guild.Settings, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, guildID)
	}
	return guild.ReconstructSettings(guildID, "cat-open", "cat-closed", "log-tickets", "log-mod", "role-muted"), nil
}

type mockGateway struct {
	CreateTicketChannelFunc func(ctx context.Context, params platform.TicketChannelParams) (string, error)
	MoveChannelFunc         func(ctx context.Context, channelID, categoryID string, restrictRoles []string) error
	DeleteChannelFunc       func(ctx context.Context, channelID, reason string) error
	ChannelHistoryFunc      func(ctx context.Context, channelID string, limit int) ([]platform.Message, error)
	GrantAccessFunc         func(ctx context.Context, channelID, userID string) error
	RevokeAccessFunc        func(ctx context.Context, channelID, userID string) error
	SendNoticeFunc          func(ctx context.Context, channelID string, n platform.Notice) error
	SendDirectNoticeFunc    func(ctx context.Context, userID string, n platform.Notice) error
	AddRoleFunc             func(ctx context.Context, guildID, userID, roleID string) error
	RemoveRoleFunc          func(ctx context.Context, guildID, userID, roleID string) error
	MemberHasRoleFunc       func(ctx context.Context, guildID, userID, roleID string) (bool, error)
	CreateMutedRoleFunc     func(ctx context.Context, guildID string) (string, error)
	KickMemberFunc          func(ctx context.Context, guildID, userID, reason string) error
	BanMemberFunc           func(ctx context.Context, guildID, userID, reason string) error
}

func (m *mockGateway) CreateTicketChannel(ctx context.Context, params platform.TicketChannelParams) (string, error) {
	if m.CreateTicketChannelFunc != nil {
		return m.CreateTicketChannelFunc(ctx, params)
	}
	return "chan-1", nil
}

func (m *mockGateway) MoveChannel(ctx context.Context, channelID, categoryID string, restrictRoles []string) error {
	if m.MoveChannelFunc != nil {
		return m.MoveChannelFunc(ctx, channelID, categoryID, restrictRoles)
	}
	return nil
}

func (m *mockGateway) DeleteChannel(ctx context.Context, channelID, reason string) error {
	if m.DeleteChannelFunc != nil {
		return m.DeleteChannelFunc(ctx, channelID, reason)
	}
	return nil
}

func (m *mockGateway) ChannelHistory(ctx context.Context, channelID string, limit int) ([]platform.Message, error) {
	if m.ChannelHistoryFunc != nil {
		return m.ChannelHistoryFunc(ctx, channelID, limit)
	}
	return nil, nil
}

func (m *mockGateway) GrantChannelAccess(ctx context.Context, channelID, userID string) error {
	if m.GrantAccessFunc != nil {
		return m.GrantAccessFunc(ctx, channelID, userID)
	}
	return nil
}

func (m *mockGateway) RevokeChannelAccess(ctx context.Context, channelID, userID string) error {
	if m.RevokeAccessFunc != nil {
		return m.RevokeAccessFunc(ctx, channelID, userID)
	}
	return nil
}

func (m *mockGateway) SendNotice(ctx context.Context, channelID string, n platform.Notice) error {
	if m.SendNoticeFunc != nil {
		return m.SendNoticeFunc(ctx, channelID, n)
	}
	return nil
}

func (m *mockGateway) SendDirectNotice(ctx context.Context, userID string, n platform.Notice) error {
	if m.SendDirectNoticeFunc != nil {
		return m.SendDirectNoticeFunc(ctx, userID, n)
	}
	return nil
}

func (m *mockGateway) AddRole(ctx context.Context, guildID, userID, roleID string) error {
	if m.AddRoleFunc != nil {
		return m.AddRoleFunc(ctx, guildID, userID, roleID)
	}
	return nil
}

func (m *mockGateway) RemoveRole(ctx context.Context, guildID, userID, roleID string) error {
	if m.RemoveRoleFunc != nil {
		return m.RemoveRoleFunc(ctx, guildID, userID, roleID)
	}
	return nil
}

func (m *mockGateway) MemberHasRole(ctx context.Context, guildID, userID, roleID string) (bool, error) {
	if m.MemberHasRoleFunc != nil {
		return m.MemberHasRoleFunc(ctx, guildID, userID, roleID)
	}
	return false, nil
}

func (m *mockGateway) CreateMutedRole(ctx context.Context, guildID string) (string, error) {
	if m.CreateMutedRoleFunc != nil {
		return m.CreateMutedRoleFunc(ctx, guildID)
	}
	return "role-muted", nil
}

func (m *mockGateway) KickMember(ctx context.Context, guildID, userID, reason string) error {
	if m.KickMemberFunc != nil {
		return m.KickMemberFunc(ctx, guildID, userID, reason)
	}
	return nil
}

func (m *mockGateway) BanMember(ctx context.Context, guildID, userID, reason string) error {
	if m.BanMemberFunc != nil {
		return m.BanMemberFunc(ctx, guildID, userID, reason)
	}
	return nil
}
