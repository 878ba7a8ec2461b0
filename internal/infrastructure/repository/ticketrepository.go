package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"warden/internal/domain/ticket"
	"warden/internal/infrastructure/persistence/mappers"
	"warden/internal/infrastructure/persistence/models"
	"warden/internal/shared/db"
)

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}

	return t.SetID(model.ID)
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	// Select lists all mutable columns so a reopen can write NULLs and empty
	// strings back; Updates alone skips zero values.
	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Select("status", "closed_at", "closed_by", "reason", "swept_at", "category").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	return nil
}

// FindByTicketID returns nil when no ticket carries the code.
func (r *TicketRepository) FindByTicketID(ctx context.Context, ticketID string) (*ticket.Ticket, error) {
	return r.findOne(ctx, "ticket_id = ?", ticketID)
}

// FindByChannelID returns nil when the channel is not a ticket channel.
func (r *TicketRepository) FindByChannelID(ctx context.Context, channelID string) (*ticket.Ticket, error) {
	return r.findOne(ctx, "channel_id = ?", channelID)
}

func (r *TicketRepository) findOne(ctx context.Context, query string, arg any) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) ListByUser(ctx context.Context, userID string) ([]*ticket.Ticket, error) {
	var modelList []models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	return r.toDomainList(modelList)
}

func (r *TicketRepository) CountOpenByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.TicketModel{}).
		Where("user_id = ? AND status = ?", userID, ticket.StatusOpen.String()).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count open tickets: %w", err)
	}

	return count, nil
}

func (r *TicketRepository) ListStale(ctx context.Context, cutoff time.Time) ([]*ticket.Ticket, error) {
	var modelList []models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("status = ? AND swept_at IS NULL AND closed_at < ?",
			ticket.StatusClosed.String(), cutoff.UnixMilli()).
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list stale tickets: %w", err)
	}

	return r.toDomainList(modelList)
}

func (r *TicketRepository) CountByStatus(ctx context.Context, status ticket.Status) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.TicketModel{}).
		Where("status = ?", status.String()).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	return count, nil
}

func (r *TicketRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.TicketModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	return count, nil
}

func (r *TicketRepository) toDomainList(modelList []models.TicketModel) ([]*ticket.Ticket, error) {
	tickets := make([]*ticket.Ticket, 0, len(modelList))
	for i := range modelList {
		t, err := r.mapper.ToDomain(&modelList[i])
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

// ExistsTicketID reports whether a ticket code is already taken. Used by the
// id generator's collision check.
func (r *TicketRepository) ExistsTicketID(ctx context.Context, ticketID string) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.TicketModel{}).
		Where("ticket_id = ?", ticketID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check ticket id: %w", err)
	}

	return count > 0, nil
}
