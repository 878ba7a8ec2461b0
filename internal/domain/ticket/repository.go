package ticket

import (
	"context"
	"time"
)

// Repository persists tickets. Every call runs its own short transaction;
// the open-count check and the insert are separate operations.
type Repository interface {
	Save(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, t *Ticket) error
	FindByTicketID(ctx context.Context, ticketID string) (*Ticket, error)
	FindByChannelID(ctx context.Context, channelID string) (*Ticket, error)
	ListByUser(ctx context.Context, userID string) ([]*Ticket, error)
	CountOpenByUser(ctx context.Context, userID string) (int64, error)

	// ListStale returns closed, not-yet-swept tickets whose closedAt is
	// before the cutoff.
	ListStale(ctx context.Context, cutoff time.Time) ([]*Ticket, error)

	CountByStatus(ctx context.Context, status Status) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// MessageRepository appends transcript records. Append-only.
type MessageRepository interface {
	Append(ctx context.Context, m *Message) error
	ListByTicketID(ctx context.Context, ticketID string) ([]*Message, error)
}

// IDGenerator produces unique ticket codes. Implementations check the store
// and retry on collision a bounded number of times.
type IDGenerator interface {
	Generate(ctx context.Context) (string, error)
}
