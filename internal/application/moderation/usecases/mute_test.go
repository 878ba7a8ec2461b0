package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden/internal/domain/guild"
	"warden/internal/domain/moderation"
	"warden/internal/domain/platform"
	"warden/internal/shared/errors"
)

func newMuteUseCase(
	caseRepo *mockCaseRepo,
	muteRepo *mockMuteRepo,
	gw *mockGateway,
	resolver *mockResolver,
	settingsRepo *mockSettingsRepo,
	scheduler *mockScheduler,
) *MuteUseCase {
	return NewMuteUseCase(caseRepo, muteRepo, &mockCaseIDGen{}, gw, resolver, settingsRepo, scheduler, &mockTxRunner{}, testLogger())
}

func TestMuteUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("mutes for parsed duration and schedules expiry", func(t *testing.T) {
		var savedCase *moderation.Case
		var savedExpiry *moderation.MuteExpiry
		var scheduled *moderation.MuteExpiry
		var grantedRole string

		caseRepo := &mockCaseRepo{
			SaveFunc: func(_ context.Context, c *moderation.Case) error {
				savedCase = c
				return nil
			},
		}
		muteRepo := &mockMuteRepo{
			SaveFunc: func(_ context.Context, e *moderation.MuteExpiry) error {
				savedExpiry = e
				return nil
			},
		}
		gw := &mockGateway{
			AddRoleFunc: func(_ context.Context, _, _, roleID string) error {
				grantedRole = roleID
				return nil
			},
		}
		scheduler := &mockScheduler{
			ScheduleFunc: func(e *moderation.MuteExpiry) {
				scheduled = e
			},
		}

		uc := newMuteUseCase(caseRepo, muteRepo, gw, &mockResolver{}, &mockSettingsRepo{}, scheduler)
		before := time.Now()
		result, err := uc.Execute(ctx, MuteCommand{
			GuildID:     "guild-1",
			UserID:      "user-1",
			ModeratorID: "mod-1",
			Duration:    "30m",
			Reason:      "flooding",
		})

		require.NoError(t, err)
		assert.Equal(t, "A1B2C3D4", result.CaseID)
		assert.WithinDuration(t, before.Add(30*time.Minute), result.ExpiresAt, time.Minute)

		assert.Equal(t, "role-muted", grantedRole)

		require.NotNil(t, savedCase)
		assert.Equal(t, moderation.ActionMute, savedCase.Action())
		assert.Equal(t, "30m", savedCase.Duration())

		require.NotNil(t, savedExpiry)
		assert.Equal(t, "A1B2C3D4", savedExpiry.CaseID())
		require.NotNil(t, scheduled)
		assert.Equal(t, savedExpiry, scheduled)
	})

	t.Run("invalid duration rejected before any side effect", func(t *testing.T) {
		granted := false
		gw := &mockGateway{
			AddRoleFunc: func(_ context.Context, _, _, _ string) error {
				granted = true
				return nil
			},
		}

		uc := newMuteUseCase(&mockCaseRepo{}, &mockMuteRepo{}, gw, &mockResolver{}, &mockSettingsRepo{}, &mockScheduler{})

		for _, input := range []string{"2x", "h", "", "ten minutes"} {
			_, err := uc.Execute(ctx, MuteCommand{
				GuildID:     "g",
				UserID:      "user-1",
				ModeratorID: "mod-1",
				Duration:    input,
			})
			require.Error(t, err, "input %q", input)
			assert.True(t, errors.IsInvalidDuration(err), "input %q", input)
		}
		assert.False(t, granted)
	})

	t.Run("creates and persists muted role on first use", func(t *testing.T) {
		resolver := &mockResolver{
			ResolveFunc: func(_ context.Context, guildID string) (*guild.Settings, error) {
				return guild.ReconstructSettings(guildID, "", "", "", "", ""), nil
			},
		}
		var created bool
		gw := &mockGateway{
			CreateMutedRoleFunc: func(_ context.Context, _ string) (string, error) {
				created = true
				return "role-new", nil
			},
		}
		var upserted *guild.Settings
		settingsRepo := &mockSettingsRepo{
			UpsertFunc: func(_ context.Context, s *guild.Settings) error {
				upserted = s
				return nil
			},
		}

		uc := newMuteUseCase(&mockCaseRepo{}, &mockMuteRepo{}, gw, resolver, settingsRepo, &mockScheduler{})
		_, err := uc.Execute(ctx, MuteCommand{
			GuildID:     "guild-1",
			UserID:      "user-1",
			ModeratorID: "mod-1",
			Duration:    "1h",
		})

		require.NoError(t, err)
		assert.True(t, created)
		require.NotNil(t, upserted)
		assert.Equal(t, "role-new", upserted.MutedRole())
	})

	t.Run("role grant failure aborts before persistence", func(t *testing.T) {
		saved := false
		caseRepo := &mockCaseRepo{
			SaveFunc: func(_ context.Context, _ *moderation.Case) error {
				saved = true
				return nil
			},
		}
		gw := &mockGateway{
			AddRoleFunc: func(_ context.Context, _, _, _ string) error {
				return fmt.Errorf("missing permissions")
			},
		}

		uc := newMuteUseCase(caseRepo, &mockMuteRepo{}, gw, &mockResolver{}, &mockSettingsRepo{}, &mockScheduler{})
		_, err := uc.Execute(ctx, MuteCommand{
			GuildID:     "g",
			UserID:      "user-1",
			ModeratorID: "mod-1",
			Duration:    "1h",
		})

		require.Error(t, err)
		assert.False(t, saved)
	})
}

func TestUnmuteUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	mutedGateway := func() *mockGateway {
		return &mockGateway{
			MemberHasRoleFunc: func(_ context.Context, _, _, _ string) (bool, error) {
				return true, nil
			},
		}
	}

	t.Run("removes role and lifts pending expiry", func(t *testing.T) {
		expiry, err := moderation.NewMuteExpiry("A1B2C3D4", "guild-1", "user-1", time.Now().Add(time.Hour))
		require.NoError(t, err)

		var removedRole string
		gw := mutedGateway()
		gw.RemoveRoleFunc = func(_ context.Context, _, _, roleID string) error {
			removedRole = roleID
			return nil
		}

		var updated *moderation.MuteExpiry
		muteRepo := &mockMuteRepo{
			FindActiveByUserFunc: func(_ context.Context, _, _ string) (*moderation.MuteExpiry, error) {
				return expiry, nil
			},
			UpdateFunc: func(_ context.Context, e *moderation.MuteExpiry) error {
				updated = e
				return nil
			},
		}

		uc := NewUnmuteUseCase(muteRepo, gw, &mockResolver{}, testLogger())
		err = uc.Execute(ctx, UnmuteCommand{GuildID: "guild-1", UserID: "user-1", ModeratorID: "mod-1"})

		require.NoError(t, err)
		assert.Equal(t, "role-muted", removedRole)
		require.NotNil(t, updated)
		assert.True(t, updated.IsLifted())
	})

	t.Run("rejects user without muted role", func(t *testing.T) {
		uc := NewUnmuteUseCase(&mockMuteRepo{}, &mockGateway{}, &mockResolver{}, testLogger())
		err := uc.Execute(ctx, UnmuteCommand{GuildID: "g", UserID: "user-1", ModeratorID: "mod-1"})

		require.Error(t, err)
		assert.True(t, errors.IsValidation(err))
	})

	t.Run("rejects when no muted role configured", func(t *testing.T) {
		resolver := &mockResolver{
			ResolveFunc: func(_ context.Context, guildID string) (*guild.Settings, error) {
				return guild.ReconstructSettings(guildID, "", "", "", "", ""), nil
			},
		}

		uc := NewUnmuteUseCase(&mockMuteRepo{}, mutedGateway(), resolver, testLogger())
		err := uc.Execute(ctx, UnmuteCommand{GuildID: "g", UserID: "user-1", ModeratorID: "mod-1"})

		require.Error(t, err)
		assert.True(t, errors.IsValidation(err))
	})
}

func TestKickAndBanUseCases(t *testing.T) {
	ctx := context.Background()

	t.Run("kick DMs before removal and records case", func(t *testing.T) {
		var order []string
		var savedCase *moderation.Case

		caseRepo := &mockCaseRepo{
			SaveFunc: func(_ context.Context, c *moderation.Case) error {
				savedCase = c
				return nil
			},
		}
		gw := &mockGateway{
			SendDirectNoticeFunc: func(_ context.Context, _ string, _ platform.Notice) error {
				order = append(order, "dm")
				return nil
			},
			KickMemberFunc: func(_ context.Context, _, _, _ string) error {
				order = append(order, "kick")
				return nil
			},
		}

		uc := NewKickUseCase(caseRepo, &mockCaseIDGen{}, gw, &mockResolver{}, testLogger())
		result, err := uc.Execute(ctx, KickCommand{GuildID: "g", UserID: "user-1", ModeratorID: "mod-1", Reason: "spam"})

		require.NoError(t, err)
		assert.Equal(t, "A1B2C3D4", result.CaseID)
		require.NotNil(t, savedCase)
		assert.Equal(t, moderation.ActionKick, savedCase.Action())
		assert.Equal(t, []string{"dm", "kick"}, order)
	})

	t.Run("kick failure records no case", func(t *testing.T) {
		saved := false
		caseRepo := &mockCaseRepo{
			SaveFunc: func(_ context.Context, _ *moderation.Case) error {
				saved = true
				return nil
			},
		}
		gw := &mockGateway{
			KickMemberFunc: func(_ context.Context, _, _, _ string) error {
				return fmt.Errorf("missing permissions")
			},
		}

		uc := NewKickUseCase(caseRepo, &mockCaseIDGen{}, gw, &mockResolver{}, testLogger())
		_, err := uc.Execute(ctx, KickCommand{GuildID: "g", UserID: "user-1", ModeratorID: "mod-1"})

		require.Error(t, err)
		assert.False(t, saved)
	})

	t.Run("ban records case", func(t *testing.T) {
		var savedCase *moderation.Case
		caseRepo := &mockCaseRepo{
			SaveFunc: func(_ context.Context, c *moderation.Case) error {
				savedCase = c
				return nil
			},
		}
		banned := false
		gw := &mockGateway{
			BanMemberFunc: func(_ context.Context, _, _, _ string) error {
				banned = true
				return nil
			},
		}

		uc := NewBanUseCase(caseRepo, &mockCaseIDGen{}, gw, &mockResolver{}, testLogger())
		result, err := uc.Execute(ctx, BanCommand{GuildID: "g", UserID: "user-1", ModeratorID: "mod-1", Reason: "raid"})

		require.NoError(t, err)
		assert.Equal(t, "A1B2C3D4", result.CaseID)
		assert.True(t, banned)
		require.NotNil(t, savedCase)
		assert.Equal(t, moderation.ActionBan, savedCase.Action())
	})
}
