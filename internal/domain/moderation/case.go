package moderation

import (
	"fmt"
	"time"
)

// CaseIDLength is the length of the human-readable case code.
const CaseIDLength = 8

// Case is one recorded moderation action. Rows are immutable once created
// except for the active flag, which marks whether a warning still counts.
type Case struct {
	id          uint
	caseID      string
	userID      string
	moderatorID string
	action      Action
	reason      string
	duration    string
	createdAt   time.Time
	active      bool
}

func NewCase(caseID, userID, moderatorID string, action Action, reason, duration string) (*Case, error) {
	if len(caseID) != CaseIDLength {
		return nil, fmt.Errorf("case id must be %d characters, got %q", CaseIDLength, caseID)
	}
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if moderatorID == "" {
		return nil, fmt.Errorf("moderator id is required")
	}
	if !action.IsValid() {
		return nil, fmt.Errorf("invalid moderation action: %s", action)
	}

	return &Case{
		caseID:      caseID,
		userID:      userID,
		moderatorID: moderatorID,
		action:      action,
		reason:      reason,
		duration:    duration,
		createdAt:   time.Now(),
		active:      true,
	}, nil
}

func ReconstructCase(
	id uint,
	caseID string,
	userID string,
	moderatorID string,
	action Action,
	reason string,
	duration string,
	createdAt time.Time,
	active bool,
) (*Case, error) {
	if id == 0 {
		return nil, fmt.Errorf("case ID cannot be zero")
	}
	if caseID == "" {
		return nil, fmt.Errorf("case id is required")
	}
	if !action.IsValid() {
		return nil, fmt.Errorf("invalid moderation action: %s", action)
	}

	return &Case{
		id:          id,
		caseID:      caseID,
		userID:      userID,
		moderatorID: moderatorID,
		action:      action,
		reason:      reason,
		duration:    duration,
		createdAt:   createdAt,
		active:      active,
	}, nil
}

func (c *Case) ID() uint {
	return c.id
}

func (c *Case) CaseID() string {
	return c.caseID
}

func (c *Case) UserID() string {
	return c.userID
}

func (c *Case) ModeratorID() string {
	return c.moderatorID
}

func (c *Case) Action() Action {
	return c.action
}

func (c *Case) Reason() string {
	return c.reason
}

func (c *Case) Duration() string {
	return c.duration
}

func (c *Case) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Case) Active() bool {
	return c.active
}

func (c *Case) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("case ID is already set")
	}
	c.id = id
	return nil
}

// Deactivate marks the case as no longer counted. The only mutable field.
func (c *Case) Deactivate() {
	c.active = false
}
