package ticket

import (
	"fmt"
	"time"
)

// Message is one transcript record attached to a ticket. Records are
// append-only: the core never updates or deletes them.
type Message struct {
	id        uint
	ticketID  string
	userID    string
	content   string
	timestamp time.Time
}

func NewMessage(ticketID, userID, content string, timestamp time.Time) (*Message, error) {
	if ticketID == "" {
		return nil, fmt.Errorf("ticket id is required")
	}
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if content == "" {
		return nil, fmt.Errorf("message content is required")
	}
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	return &Message{
		ticketID:  ticketID,
		userID:    userID,
		content:   content,
		timestamp: timestamp,
	}, nil
}

func ReconstructMessage(id uint, ticketID, userID, content string, timestamp time.Time) *Message {
	return &Message{
		id:        id,
		ticketID:  ticketID,
		userID:    userID,
		content:   content,
		timestamp: timestamp,
	}
}

func (m *Message) ID() uint {
	return m.id
}

func (m *Message) TicketID() string {
	return m.ticketID
}

func (m *Message) UserID() string {
	return m.userID
}

func (m *Message) Content() string {
	return m.content
}

func (m *Message) Timestamp() time.Time {
	return m.timestamp
}

func (m *Message) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("message ID is already set")
	}
	m.id = id
	return nil
}
