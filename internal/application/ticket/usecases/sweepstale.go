package usecases

import (
	"context"
	"fmt"
	"time"

	"warden/internal/domain/platform"
	"warden/internal/domain/ticket"
	"warden/internal/shared/logger"
)

type SweepStaleResult struct {
	Examined int
	Swept    int
}

// SweepStaleUseCase deletes the channels of tickets that have been closed
// longer than the retention window and marks them swept so the next run
// skips them. Per-ticket failures are swallowed: one gone channel must not
// abort the whole sweep.
type SweepStaleUseCase struct {
	ticketRepo    ticket.Repository
	gateway       platform.Gateway
	autoCloseDays int
	logger        logger.Interface
}

func NewSweepStaleUseCase(
	ticketRepo ticket.Repository,
	gateway platform.Gateway,
	autoCloseDays int,
	logger logger.Interface,
) *SweepStaleUseCase {
	return &SweepStaleUseCase{
		ticketRepo:    ticketRepo,
		gateway:       gateway,
		autoCloseDays: autoCloseDays,
		logger:        logger,
	}
}

func (uc *SweepStaleUseCase) Execute(ctx context.Context) (*SweepStaleResult, error) {
	cutoff := time.Now().AddDate(0, 0, -uc.autoCloseDays)

	stale, err := uc.ticketRepo.ListStale(ctx, cutoff)
	if err != nil {
		uc.logger.Errorw("failed to list stale tickets", "error", err)
		return nil, fmt.Errorf("failed to list stale tickets: %w", err)
	}

	result := &SweepStaleResult{Examined: len(stale)}

	for _, t := range stale {
		reason := fmt.Sprintf("ticket %s closed for more than %d days", t.TicketID(), uc.autoCloseDays)
		if err := uc.gateway.DeleteChannel(ctx, t.ChannelID(), reason); err != nil {
			uc.logger.Warnw("failed to delete stale ticket channel",
				"error", err,
				"ticket_id", t.TicketID(),
				"channel_id", t.ChannelID(),
			)
		}

		// Mark swept even when the delete failed: the channel is either gone
		// already or unreachable, and retrying every sweep is redundant work.
		t.MarkSwept(time.Now())
		if err := uc.ticketRepo.Update(ctx, t); err != nil {
			uc.logger.Errorw("failed to mark ticket swept", "error", err, "ticket_id", t.TicketID())
			continue
		}
		result.Swept++
	}

	if result.Examined > 0 {
		uc.logger.Infow("stale ticket sweep finished",
			"examined", result.Examined,
			"swept", result.Swept,
		)
	}

	return result, nil
}
