package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden/internal/domain/platform"
	"warden/internal/domain/ticket"
	"warden/internal/shared/errors"
)

func TestOpenTicketUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("opens ticket and sends notices", func(t *testing.T) {
		var saved *ticket.Ticket
		var channelParams platform.TicketChannelParams
		noticed := map[string]int{}

		repo := &mockTicketRepo{
			SaveFunc: func(_ context.Context, tk *ticket.Ticket) error {
				saved = tk
				return nil
			},
		}
		gw := &mockGateway{
			CreateTicketChannelFunc: func(_ context.Context, params platform.TicketChannelParams) (string, error) {
				channelParams = params
				return "chan-42", nil
			},
			SendNoticeFunc: func(_ context.Context, channelID string, _ platform.Notice) error {
				noticed[channelID]++
				return nil
			},
		}

		uc := NewOpenTicketUseCase(repo, &mockIDGen{}, gw, &mockResolver{}, 3, []string{"role-staff"}, testLogger())
		result, err := uc.Execute(ctx, OpenTicketCommand{
			GuildID:  "guild-1",
			UserID:   "user-1",
			Username: "somebody",
		})

		require.NoError(t, err)
		assert.Equal(t, "A1B2C3", result.TicketID)
		assert.Equal(t, "chan-42", result.ChannelID)

		require.NotNil(t, saved)
		assert.Equal(t, ticket.StatusOpen, saved.Status())
		assert.Equal(t, "chan-42", saved.ChannelID())
		assert.Equal(t, ticket.DefaultCategory, saved.Category())

		assert.Equal(t, "ticket-a1b2c3", channelParams.Name)
		assert.Equal(t, "cat-open", channelParams.CategoryID)
		assert.Equal(t, []string{"role-staff"}, channelParams.StaffRoles)

		assert.Equal(t, 1, noticed["chan-42"])
		assert.Equal(t, 1, noticed["log-tickets"])
	})

	t.Run("rejects when open limit reached", func(t *testing.T) {
		repo := &mockTicketRepo{
			CountOpenByUserFunc: func(_ context.Context, _ string) (int64, error) {
				return 3, nil
			},
		}
		created := false
		gw := &mockGateway{
			CreateTicketChannelFunc: func(_ context.Context, _ platform.TicketChannelParams) (string, error) {
				created = true
				return "chan-1", nil
			},
		}

		uc := NewOpenTicketUseCase(repo, &mockIDGen{}, gw, &mockResolver{}, 3, nil, testLogger())
		_, err := uc.Execute(ctx, OpenTicketCommand{GuildID: "g", UserID: "user-1"})

		require.Error(t, err)
		assert.True(t, errors.IsLimitExceeded(err))
		assert.False(t, created)
	})

	t.Run("stale open count lets simultaneous opens both through", func(t *testing.T) {
		// The open count and the insert are separate store operations, so two
		// opens that read the same count both pass the limit check. The cap is
		// advisory under concurrent opens, not a hard guarantee.
		saves := 0
		repo := &mockTicketRepo{
			CountOpenByUserFunc: func(_ context.Context, _ string) (int64, error) {
				return 2, nil
			},
			SaveFunc: func(_ context.Context, _ *ticket.Ticket) error {
				saves++
				return nil
			},
		}

		uc := NewOpenTicketUseCase(repo, &mockIDGen{}, &mockGateway{}, &mockResolver{}, 3, nil, testLogger())

		_, err := uc.Execute(ctx, OpenTicketCommand{GuildID: "g", UserID: "user-1"})
		require.NoError(t, err)
		_, err = uc.Execute(ctx, OpenTicketCommand{GuildID: "g", UserID: "user-1"})
		require.NoError(t, err)

		assert.Equal(t, 2, saves)
	})

	t.Run("deletes channel when persistence fails", func(t *testing.T) {
		repo := &mockTicketRepo{
			SaveFunc: func(_ context.Context, _ *ticket.Ticket) error {
				return fmt.Errorf("disk full")
			},
		}
		var deleted string
		gw := &mockGateway{
			DeleteChannelFunc: func(_ context.Context, channelID, _ string) error {
				deleted = channelID
				return nil
			},
		}

		uc := NewOpenTicketUseCase(repo, &mockIDGen{}, gw, &mockResolver{}, 3, nil, testLogger())
		_, err := uc.Execute(ctx, OpenTicketCommand{GuildID: "g", UserID: "user-1"})

		require.Error(t, err)
		assert.Equal(t, "chan-1", deleted)
	})

	t.Run("welcome notice failure does not fail the open", func(t *testing.T) {
		gw := &mockGateway{
			SendNoticeFunc: func(_ context.Context, _ string, _ platform.Notice) error {
				return fmt.Errorf("missing permissions")
			},
		}

		uc := NewOpenTicketUseCase(&mockTicketRepo{}, &mockIDGen{}, gw, &mockResolver{}, 3, nil, testLogger())
		result, err := uc.Execute(ctx, OpenTicketCommand{GuildID: "g", UserID: "user-1"})

		require.NoError(t, err)
		assert.Equal(t, "A1B2C3", result.TicketID)
	})

	t.Run("requires user id", func(t *testing.T) {
		uc := NewOpenTicketUseCase(&mockTicketRepo{}, &mockIDGen{}, &mockGateway{}, &mockResolver{}, 3, nil, testLogger())
		_, err := uc.Execute(ctx, OpenTicketCommand{GuildID: "g"})

		require.Error(t, err)
		assert.True(t, errors.IsValidation(err))
	})
}
