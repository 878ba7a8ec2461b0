package moderation

import "context"

// CaseRepository persists moderation cases. The ledger is append-only apart
// from the active flag on warnings.
type CaseRepository interface {
	Save(ctx context.Context, c *Case) error
	Update(ctx context.Context, c *Case) error
	FindByCaseID(ctx context.Context, caseID string) (*Case, error)
	ListActiveWarnings(ctx context.Context, userID string) ([]*Case, error)
	ListByUser(ctx context.Context, userID string) ([]*Case, error)
	Count(ctx context.Context) (int64, error)
	CountByAction(ctx context.Context, action Action) (int64, error)
}

// MuteRepository persists scheduled mute removals so they survive restarts.
type MuteRepository interface {
	Save(ctx context.Context, m *MuteExpiry) error
	Update(ctx context.Context, m *MuteExpiry) error

	// ListPending returns unlifted expiries, due or not. The startup
	// recovery pass lifts the due ones and re-arms timers for the rest.
	ListPending(ctx context.Context) ([]*MuteExpiry, error)

	FindActiveByUser(ctx context.Context, guildID, userID string) (*MuteExpiry, error)
}

// CaseIDGenerator produces unique case codes. Implementations check the
// store and retry on collision a bounded number of times.
type CaseIDGenerator interface {
	Generate(ctx context.Context) (string, error)
}
