package ticket

import (
	"fmt"
	"time"
)

const (
	// IDLength is the length of the human-readable ticket code.
	IDLength = 6

	// MaxReasonLength caps the free-text close reason.
	MaxReasonLength = 500

	// DefaultCategory is the only category currently issued.
	DefaultCategory = "support"
)

// Ticket is a tracked support request: one database row and one dedicated
// channel. Lifecycle is open -> closed -> open -> ... ; deletion of the
// backing channel is a side effect of the stale sweep, recorded via sweptAt.
type Ticket struct {
	id        uint
	ticketID  string
	userID    string
	channelID string
	category  string
	status    Status
	createdAt time.Time
	closedAt  *time.Time
	closedBy  string
	reason    string
	sweptAt   *time.Time
}

func NewTicket(ticketID, userID, channelID, category string) (*Ticket, error) {
	if len(ticketID) != IDLength {
		return nil, fmt.Errorf("ticket id must be %d characters, got %q", IDLength, ticketID)
	}
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if channelID == "" {
		return nil, fmt.Errorf("channel id is required")
	}
	if category == "" {
		category = DefaultCategory
	}

	return &Ticket{
		ticketID:  ticketID,
		userID:    userID,
		channelID: channelID,
		category:  category,
		status:    StatusOpen,
		createdAt: time.Now(),
	}, nil
}

func ReconstructTicket(
	id uint,
	ticketID string,
	userID string,
	channelID string,
	category string,
	status Status,
	createdAt time.Time,
	closedAt *time.Time,
	closedBy string,
	reason string,
	sweptAt *time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if ticketID == "" {
		return nil, fmt.Errorf("ticket id is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	return &Ticket{
		id:        id,
		ticketID:  ticketID,
		userID:    userID,
		channelID: channelID,
		category:  category,
		status:    status,
		createdAt: createdAt,
		closedAt:  closedAt,
		closedBy:  closedBy,
		reason:    reason,
		sweptAt:   sweptAt,
	}, nil
}

func (t *Ticket) ID() uint {
	return t.id
}

func (t *Ticket) TicketID() string {
	return t.ticketID
}

func (t *Ticket) UserID() string {
	return t.userID
}

func (t *Ticket) ChannelID() string {
	return t.channelID
}

func (t *Ticket) Category() string {
	return t.category
}

func (t *Ticket) Status() Status {
	return t.status
}

func (t *Ticket) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Ticket) ClosedAt() *time.Time {
	return t.closedAt
}

func (t *Ticket) ClosedBy() string {
	return t.closedBy
}

func (t *Ticket) Reason() string {
	return t.reason
}

func (t *Ticket) SweptAt() *time.Time {
	return t.sweptAt
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// Close records closure metadata. Closing an already-closed ticket is
// accepted and refreshes the metadata, matching the storage-level update
// that matches by id regardless of current status.
func (t *Ticket) Close(closedBy, reason string) error {
	if closedBy == "" {
		return fmt.Errorf("closed by user id is required")
	}
	if len(reason) > MaxReasonLength {
		return fmt.Errorf("close reason exceeds maximum length of %d characters", MaxReasonLength)
	}

	now := time.Now()
	t.status = StatusClosed
	t.closedAt = &now
	t.closedBy = closedBy
	t.reason = reason

	return nil
}

// Reopen returns the ticket to open and clears all closure metadata:
// closedAt, closedBy, and reason are set together on close and cleared
// together here.
func (t *Ticket) Reopen() {
	t.status = StatusOpen
	t.closedAt = nil
	t.closedBy = ""
	t.reason = ""
}

// MarkSwept records that the stale sweep deleted the backing channel so
// later sweeps skip the ticket.
func (t *Ticket) MarkSwept(at time.Time) {
	t.sweptAt = &at
}

func (t *Ticket) IsSwept() bool {
	return t.sweptAt != nil
}
