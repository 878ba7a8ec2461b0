package moderation

import (
	"fmt"
	"time"
)

// MuteExpiry schedules the automatic removal of a muted role. One row per
// mute case; lifted rows stay for the audit trail.
type MuteExpiry struct {
	id        uint
	caseID    string
	guildID   string
	userID    string
	expiresAt time.Time
	liftedAt  *time.Time
}

func NewMuteExpiry(caseID, guildID, userID string, expiresAt time.Time) (*MuteExpiry, error) {
	if caseID == "" {
		return nil, fmt.Errorf("case id is required")
	}
	if guildID == "" {
		return nil, fmt.Errorf("guild id is required")
	}
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if expiresAt.IsZero() {
		return nil, fmt.Errorf("expiry time is required")
	}

	return &MuteExpiry{
		caseID:    caseID,
		guildID:   guildID,
		userID:    userID,
		expiresAt: expiresAt,
	}, nil
}

func ReconstructMuteExpiry(
	id uint,
	caseID string,
	guildID string,
	userID string,
	expiresAt time.Time,
	liftedAt *time.Time,
) (*MuteExpiry, error) {
	if id == 0 {
		return nil, fmt.Errorf("mute expiry ID cannot be zero")
	}
	if caseID == "" {
		return nil, fmt.Errorf("case id is required")
	}

	return &MuteExpiry{
		id:        id,
		caseID:    caseID,
		guildID:   guildID,
		userID:    userID,
		expiresAt: expiresAt,
		liftedAt:  liftedAt,
	}, nil
}

func (m *MuteExpiry) ID() uint {
	return m.id
}

func (m *MuteExpiry) CaseID() string {
	return m.caseID
}

func (m *MuteExpiry) GuildID() string {
	return m.guildID
}

func (m *MuteExpiry) UserID() string {
	return m.userID
}

func (m *MuteExpiry) ExpiresAt() time.Time {
	return m.expiresAt
}

func (m *MuteExpiry) LiftedAt() *time.Time {
	return m.liftedAt
}

func (m *MuteExpiry) IsLifted() bool {
	return m.liftedAt != nil
}

// IsDue reports whether the mute should be lifted as of now.
func (m *MuteExpiry) IsDue(now time.Time) bool {
	return !m.IsLifted() && !m.expiresAt.After(now)
}

func (m *MuteExpiry) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("mute expiry ID is already set")
	}
	m.id = id
	return nil
}

// Lift marks the mute as removed. Idempotent.
func (m *MuteExpiry) Lift(at time.Time) {
	if m.liftedAt != nil {
		return
	}
	m.liftedAt = &at
}
