package guild

import "fmt"

// Settings holds per-guild configuration persisted as key/value rows. Values
// resolved from the store override the static configuration at runtime.
type Settings struct {
	guildID          string
	ticketCategory   string
	closedCategory   string
	ticketLogChannel string
	modLogChannel    string
	mutedRole        string
}

func NewSettings(guildID string) (*Settings, error) {
	if guildID == "" {
		return nil, fmt.Errorf("guild id is required")
	}
	return &Settings{guildID: guildID}, nil
}

func ReconstructSettings(
	guildID string,
	ticketCategory string,
	closedCategory string,
	ticketLogChannel string,
	modLogChannel string,
	mutedRole string,
) *Settings {
	return &Settings{
		guildID:          guildID,
		ticketCategory:   ticketCategory,
		closedCategory:   closedCategory,
		ticketLogChannel: ticketLogChannel,
		modLogChannel:    modLogChannel,
		mutedRole:        mutedRole,
	}
}

func (s *Settings) GuildID() string {
	return s.guildID
}

func (s *Settings) TicketCategory() string {
	return s.ticketCategory
}

func (s *Settings) ClosedCategory() string {
	return s.closedCategory
}

func (s *Settings) TicketLogChannel() string {
	return s.ticketLogChannel
}

func (s *Settings) ModLogChannel() string {
	return s.modLogChannel
}

func (s *Settings) MutedRole() string {
	return s.mutedRole
}

func (s *Settings) SetTicketCategory(id string) {
	s.ticketCategory = id
}

func (s *Settings) SetClosedCategory(id string) {
	s.closedCategory = id
}

func (s *Settings) SetTicketLogChannel(id string) {
	s.ticketLogChannel = id
}

func (s *Settings) SetModLogChannel(id string) {
	s.modLogChannel = id
}

func (s *Settings) SetMutedRole(id string) {
	s.mutedRole = id
}
