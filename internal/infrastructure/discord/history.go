package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"warden/internal/domain/platform"
)

// historyPageSize is the per-request cap the message history API enforces.
const historyPageSize = 100

// messagePager is the slice of the session the history collector needs.
type messagePager interface {
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
}

// collectHistory pages backwards from the newest message until limit messages
// are gathered or the channel runs out, then returns them oldest first.
// Channels with more than limit messages lose the older ones.
func collectHistory(pager messagePager, channelID string, limit int) ([]platform.Message, error) {
	collected := make([]*discordgo.Message, 0, limit)
	beforeID := ""

	for len(collected) < limit {
		pageSize := historyPageSize
		if remaining := limit - len(collected); remaining < pageSize {
			pageSize = remaining
		}

		page, err := pager.ChannelMessages(channelID, pageSize, beforeID, "", "")
		if err != nil {
			return nil, fmt.Errorf("failed to read channel messages: %w", err)
		}
		if len(page) == 0 {
			break
		}

		// Pages arrive newest first.
		collected = append(collected, page...)
		beforeID = page[len(page)-1].ID

		if len(page) < pageSize {
			break
		}
	}

	history := make([]platform.Message, 0, len(collected))
	for i := len(collected) - 1; i >= 0; i-- {
		m := collected[i]
		history = append(history, platform.Message{
			ID:        m.ID,
			AuthorID:  m.Author.ID,
			Author:    m.Author.Username,
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}
	return history, nil
}
