package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warden/internal/domain/platform"
	"warden/internal/domain/ticket"
	"warden/internal/shared/errors"
)

func openTestTicket(t *testing.T) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.ReconstructTicket(
		1, "A1B2C3", "user-1", "chan-42", "support",
		ticket.StatusOpen, time.Now().Add(-time.Hour), nil, "", "", nil,
	)
	require.NoError(t, err)
	return tk
}

func closedTestTicket(t *testing.T, closedAgo time.Duration) *ticket.Ticket {
	t.Helper()
	closedAt := time.Now().Add(-closedAgo)
	tk, err := ticket.ReconstructTicket(
		1, "A1B2C3", "user-1", "chan-42", "support",
		ticket.StatusClosed, time.Now().Add(-closedAgo-time.Hour), &closedAt, "mod-1", "resolved", nil,
	)
	require.NoError(t, err)
	return tk
}

func TestCloseTicketUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("closes by channel and moves to closed category", func(t *testing.T) {
		tk := openTestTicket(t)
		var updated *ticket.Ticket
		var movedTo string
		var restricted []string

		repo := &mockTicketRepo{
			FindByChannelIDFunc: func(_ context.Context, channelID string) (*ticket.Ticket, error) {
				require.Equal(t, "chan-42", channelID)
				return tk, nil
			},
			UpdateFunc: func(_ context.Context, tk *ticket.Ticket) error {
				updated = tk
				return nil
			},
		}
		gw := &mockGateway{
			MoveChannelFunc: func(_ context.Context, _, categoryID string, restrictRoles []string) error {
				movedTo = categoryID
				restricted = restrictRoles
				return nil
			},
		}

		uc := NewCloseTicketUseCase(repo, gw, &mockResolver{}, []string{"role-staff"}, testLogger())
		result, err := uc.Execute(ctx, CloseTicketCommand{
			GuildID:   "g",
			ChannelID: "chan-42",
			ClosedBy:  "mod-1",
			Reason:    "resolved",
		})

		require.NoError(t, err)
		assert.Equal(t, "A1B2C3", result.TicketID)
		assert.False(t, result.ClosedAt.IsZero())

		require.NotNil(t, updated)
		assert.Equal(t, ticket.StatusClosed, updated.Status())
		assert.Equal(t, "mod-1", updated.ClosedBy())
		assert.Equal(t, "resolved", updated.Reason())

		assert.Equal(t, "cat-closed", movedTo)
		assert.Equal(t, []string{"role-staff"}, restricted)
	})

	t.Run("rejects already closed ticket", func(t *testing.T) {
		tk := closedTestTicket(t, time.Hour)
		repo := &mockTicketRepo{
			FindByTicketIDFunc: func(_ context.Context, _ string) (*ticket.Ticket, error) {
				return tk, nil
			},
		}

		uc := NewCloseTicketUseCase(repo, &mockGateway{}, &mockResolver{}, nil, testLogger())
		_, err := uc.Execute(ctx, CloseTicketCommand{GuildID: "g", TicketID: "A1B2C3", ClosedBy: "mod-1"})

		require.Error(t, err)
		assert.True(t, errors.IsValidation(err))
	})

	t.Run("unknown ticket yields not found", func(t *testing.T) {
		uc := NewCloseTicketUseCase(&mockTicketRepo{}, &mockGateway{}, &mockResolver{}, nil, testLogger())
		_, err := uc.Execute(ctx, CloseTicketCommand{GuildID: "g", TicketID: "ZZZZZZ", ClosedBy: "mod-1"})

		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("DM failure does not fail the close", func(t *testing.T) {
		tk := openTestTicket(t)
		repo := &mockTicketRepo{
			FindByChannelIDFunc: func(_ context.Context, _ string) (*ticket.Ticket, error) {
				return tk, nil
			},
		}
		gw := &mockGateway{
			SendDirectNoticeFunc: func(_ context.Context, _ string, _ platform.Notice) error {
				return fmt.Errorf("cannot send messages to this user")
			},
		}

		uc := NewCloseTicketUseCase(repo, gw, &mockResolver{}, nil, testLogger())
		_, err := uc.Execute(ctx, CloseTicketCommand{GuildID: "g", ChannelID: "chan-42", ClosedBy: "mod-1"})

		require.NoError(t, err)
	})

	t.Run("persistence failure aborts before channel move", func(t *testing.T) {
		tk := openTestTicket(t)
		repo := &mockTicketRepo{
			FindByChannelIDFunc: func(_ context.Context, _ string) (*ticket.Ticket, error) {
				return tk, nil
			},
			UpdateFunc: func(_ context.Context, _ *ticket.Ticket) error {
				return fmt.Errorf("database locked")
			},
		}
		moved := false
		gw := &mockGateway{
			MoveChannelFunc: func(_ context.Context, _, _ string, _ []string) error {
				moved = true
				return nil
			},
		}

		uc := NewCloseTicketUseCase(repo, gw, &mockResolver{}, nil, testLogger())
		_, err := uc.Execute(ctx, CloseTicketCommand{GuildID: "g", ChannelID: "chan-42", ClosedBy: "mod-1"})

		require.Error(t, err)
		assert.False(t, moved)
	})
}

func TestReopenTicketUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("reopen clears closure metadata", func(t *testing.T) {
		tk := closedTestTicket(t, time.Hour)
		var updated *ticket.Ticket
		repo := &mockTicketRepo{
			FindByTicketIDFunc: func(_ context.Context, _ string) (*ticket.Ticket, error) {
				return tk, nil
			},
			UpdateFunc: func(_ context.Context, tk *ticket.Ticket) error {
				updated = tk
				return nil
			},
		}

		uc := NewReopenTicketUseCase(repo, &mockGateway{}, &mockResolver{}, testLogger())
		result, err := uc.Execute(ctx, ReopenTicketCommand{GuildID: "g", TicketID: "A1B2C3", ReopenedBy: "mod-2"})

		require.NoError(t, err)
		assert.Equal(t, "A1B2C3", result.TicketID)

		require.NotNil(t, updated)
		assert.Equal(t, ticket.StatusOpen, updated.Status())
		assert.Nil(t, updated.ClosedAt())
		assert.Empty(t, updated.ClosedBy())
		assert.Empty(t, updated.Reason())
	})

	t.Run("rejects open ticket", func(t *testing.T) {
		tk := openTestTicket(t)
		repo := &mockTicketRepo{
			FindByTicketIDFunc: func(_ context.Context, _ string) (*ticket.Ticket, error) {
				return tk, nil
			},
		}

		uc := NewReopenTicketUseCase(repo, &mockGateway{}, &mockResolver{}, testLogger())
		_, err := uc.Execute(ctx, ReopenTicketCommand{GuildID: "g", TicketID: "A1B2C3", ReopenedBy: "mod-2"})

		require.Error(t, err)
		assert.True(t, errors.IsValidation(err))
	})

	t.Run("rejects swept ticket", func(t *testing.T) {
		tk := closedTestTicket(t, 10*24*time.Hour)
		tk.MarkSwept(time.Now().Add(-time.Hour))
		repo := &mockTicketRepo{
			FindByTicketIDFunc: func(_ context.Context, _ string) (*ticket.Ticket, error) {
				return tk, nil
			},
		}

		uc := NewReopenTicketUseCase(repo, &mockGateway{}, &mockResolver{}, testLogger())
		_, err := uc.Execute(ctx, ReopenTicketCommand{GuildID: "g", TicketID: "A1B2C3", ReopenedBy: "mod-2"})

		require.Error(t, err)
		assert.True(t, errors.IsValidation(err))
	})
}
