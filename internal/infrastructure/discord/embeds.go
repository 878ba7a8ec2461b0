package discord

import (
	"github.com/bwmarrin/discordgo"

	"warden/internal/domain/platform"
)

const (
	colorSuccess = 0x2ecc71
	colorError   = 0xe74c3c
	colorWarning = 0xf39c12
	colorInfo    = 0x3498db
	colorTicket  = 0x9b59b6
)

func noticeColor(kind platform.NoticeKind) int {
	switch kind {
	case platform.NoticeSuccess:
		return colorSuccess
	case platform.NoticeError:
		return colorError
	case platform.NoticeWarning:
		return colorWarning
	case platform.NoticeTicket:
		return colorTicket
	default:
		return colorInfo
	}
}

func noticeEmbed(n platform.Notice) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       n.Title,
		Description: n.Body,
		Color:       noticeColor(n.Kind),
	}

	for _, f := range n.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}

	if n.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: n.Footer}
	}

	return embed
}
