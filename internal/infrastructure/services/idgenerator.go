// Package services provides infrastructure-backed implementations of domain
// service interfaces.
package services

import (
	"context"
	"fmt"

	"warden/internal/domain/moderation"
	"warden/internal/domain/ticket"
	"warden/internal/shared/id"
)

// maxIDAttempts bounds the collision retry loop. The code space is 36^6 and
// up; hitting the bound means something is badly wrong with the store.
const maxIDAttempts = 5

type existsFunc func(ctx context.Context, code string) (bool, error)

// ShortIDGenerator produces uppercase-alphanumeric codes and retries on
// store collision, so issued codes are unique rather than probably-unique.
type ShortIDGenerator struct {
	length int
	exists existsFunc
}

func NewShortIDGenerator(length int, exists existsFunc) *ShortIDGenerator {
	return &ShortIDGenerator{length: length, exists: exists}
}

func (g *ShortIDGenerator) Generate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		code, err := id.Generate(g.length)
		if err != nil {
			return "", fmt.Errorf("failed to generate code: %w", err)
		}

		taken, err := g.exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check code uniqueness: %w", err)
		}
		if !taken {
			return code, nil
		}
	}

	return "", fmt.Errorf("failed to generate a unique code after %d attempts", maxIDAttempts)
}

// TicketIDStore is the slice of the ticket repository the generator needs.
type TicketIDStore interface {
	ExistsTicketID(ctx context.Context, ticketID string) (bool, error)
}

// CaseIDStore is the slice of the moderation repository the generator needs.
type CaseIDStore interface {
	ExistsCaseID(ctx context.Context, caseID string) (bool, error)
}

func NewTicketIDGenerator(store TicketIDStore) ticket.IDGenerator {
	return NewShortIDGenerator(ticket.IDLength, store.ExistsTicketID)
}

func NewCaseIDGenerator(store CaseIDStore) moderation.CaseIDGenerator {
	return NewShortIDGenerator(moderation.CaseIDLength, store.ExistsCaseID)
}
