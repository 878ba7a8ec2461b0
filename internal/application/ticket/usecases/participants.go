package usecases

import (
	"context"
	"fmt"

	"warden/internal/domain/platform"
	"warden/internal/domain/ticket"
	"warden/internal/shared/errors"
	"warden/internal/shared/logger"
)

type ParticipantCommand struct {
	ChannelID string
	UserID    string
}

// ManageParticipantsUseCase grants or revokes an extra user's access to a
// ticket channel. The channel must belong to an open ticket.
type ManageParticipantsUseCase struct {
	ticketRepo ticket.Repository
	gateway    platform.Gateway
	logger     logger.Interface
}

func NewManageParticipantsUseCase(
	ticketRepo ticket.Repository,
	gateway platform.Gateway,
	logger logger.Interface,
) *ManageParticipantsUseCase {
	return &ManageParticipantsUseCase{
		ticketRepo: ticketRepo,
		gateway:    gateway,
		logger:     logger,
	}
}

func (uc *ManageParticipantsUseCase) Add(ctx context.Context, cmd ParticipantCommand) error {
	t, err := uc.openTicket(ctx, cmd)
	if err != nil {
		return err
	}

	if err := uc.gateway.GrantChannelAccess(ctx, cmd.ChannelID, cmd.UserID); err != nil {
		uc.logger.Errorw("failed to grant ticket access", "error", err, "user_id", cmd.UserID)
		return fmt.Errorf("failed to grant channel access: %w", err)
	}

	uc.logger.Infow("ticket participant added", "ticket_id", t.TicketID(), "user_id", cmd.UserID)
	return nil
}

func (uc *ManageParticipantsUseCase) Remove(ctx context.Context, cmd ParticipantCommand) error {
	t, err := uc.openTicket(ctx, cmd)
	if err != nil {
		return err
	}

	if cmd.UserID == t.UserID() {
		return errors.NewValidationError("the ticket opener cannot be removed from their own ticket")
	}

	if err := uc.gateway.RevokeChannelAccess(ctx, cmd.ChannelID, cmd.UserID); err != nil {
		uc.logger.Errorw("failed to revoke ticket access", "error", err, "user_id", cmd.UserID)
		return fmt.Errorf("failed to revoke channel access: %w", err)
	}

	uc.logger.Infow("ticket participant removed", "ticket_id", t.TicketID(), "user_id", cmd.UserID)
	return nil
}

func (uc *ManageParticipantsUseCase) openTicket(ctx context.Context, cmd ParticipantCommand) (*ticket.Ticket, error) {
	if cmd.UserID == "" {
		return nil, errors.NewValidationError("user id is required")
	}

	t, err := findTicket(ctx, uc.ticketRepo, "", cmd.ChannelID)
	if err != nil {
		return nil, err
	}
	if t.Status().IsClosed() {
		return nil, errors.NewValidationError(fmt.Sprintf("ticket %s is closed", t.TicketID()))
	}
	return t, nil
}
