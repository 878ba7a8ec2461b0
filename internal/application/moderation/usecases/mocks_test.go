package usecases

import (
	"context"
	"io"
	"log/slog"

	"warden/internal/domain/guild"
	"warden/internal/domain/moderation"
	"warden/internal/domain/platform"
	"warden/internal/shared/logger"
)

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type mockCaseRepo struct {
	SaveFunc               func(ctx context.Context, c *moderation.Case) error
	UpdateFunc             func(ctx context.Context, c *moderation.Case) error
	FindByCaseIDFunc       func(ctx context.Context, caseID string) (*moderation.Case, error)
	ListActiveWarningsFunc func(ctx context.Context, userID string) ([]*moderation.Case, error)
	ListByUserFunc         func(ctx context.Context, userID string) ([]*moderation.Case, error)
	CountFunc              func(ctx context.Context) (int64, error)
	CountByActionFunc      func(ctx context.Context, action moderation.Action) (int64, error)
}

func (m *mockCaseRepo) Save(ctx context.Context, c *moderation.Case) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, c)
	}
	return nil
}

func (m *mockCaseRepo) Update(ctx context.Context, c *moderation.Case) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	return nil
}

func (m *mockCaseRepo) FindByCaseID(ctx context.Context, caseID string) (*moderation.Case, error) {
	if m.FindByCaseIDFunc != nil {
		return m.FindByCaseIDFunc(ctx, caseID)
	}
	return nil, nil
}

func (m *mockCaseRepo) ListActiveWarnings(ctx context.Context, userID string) ([]*moderation.Case, error) {
	if m.ListActiveWarningsFunc != nil {
		return m.ListActiveWarningsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockCaseRepo) ListByUser(ctx context.Context, userID string) ([]*moderation.Case, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockCaseRepo) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *mockCaseRepo) CountByAction(ctx context.Context, action moderation.Action) (int64, error) {
	if m.CountByActionFunc != nil {
		return m.CountByActionFunc(ctx, action)
	}
	return 0, nil
}

type mockMuteRepo struct {
	SaveFunc             func(ctx context.Context, m *moderation.MuteExpiry) error
	UpdateFunc           func(ctx context.Context, m *moderation.MuteExpiry) error
	ListPendingFunc      func(ctx context.Context) ([]*moderation.MuteExpiry, error)
	FindActiveByUserFunc func(ctx context.Context, guildID, userID string) (*moderation.MuteExpiry, error)
}

func (m *mockMuteRepo) Save(ctx context.Context, e *moderation.MuteExpiry) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, e)
	}
	return nil
}

func (m *mockMuteRepo) Update(ctx context.Context, e *moderation.MuteExpiry) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, e)
	}
	return nil
}

func (m *mockMuteRepo) ListPending(ctx context.Context) ([]*moderation.MuteExpiry, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx)
	}
	return nil, nil
}

func (m *mockMuteRepo) FindActiveByUser(ctx context.Context, guildID, userID string) (*moderation.MuteExpiry, error) {
	if m.FindActiveByUserFunc != nil {
		return m.FindActiveByUserFunc(ctx, guildID, userID)
	}
	return nil, nil
}

type mockCaseIDGen struct {
	GenerateFunc func(ctx context.Context) (string, error)
}

func (m *mockCaseIDGen) Generate(ctx context.Context) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx)
	}
	return "A1B2C3D4", nil
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

type mockSettingsRepo struct {
	GetFunc    func(ctx context.Context, guildID string) (*guild.Settings, error)
	UpsertFunc func(ctx context.Context, s *guild.Settings) error
}

func (m *mockSettingsRepo) Get(ctx context.Context, guildID string) (*guild.Settings, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, guildID)
	}
	return nil, nil
}

func (m *mockSettingsRepo) Upsert(ctx context.Context, s *guild.Settings) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, s)
	}
	return nil
}

type mockScheduler struct {
	ScheduleFunc func(expiry *moderation.MuteExpiry)
}

func (m *mockScheduler) Schedule(expiry *moderation.MuteExpiry) {
	if m.ScheduleFunc != nil {
		m.ScheduleFunc(expiry)
	}
}

// mockTxRunner runs the callback directly; the repositories under it are
// mocks too, so there is nothing to roll back.
type mockTxRunner struct {
	RunInTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTransactionFunc != nil {
		return m.RunInTransactionFunc(ctx, fn)
	}
	return fn(ctx)
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
