package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// Sequence is a set of contents that are sent one by one in the given order.
// A failed element is logged and does not stop the following ones.
type Sequence []interface{}

// Ephemeral is a text message that deletes itself once TTL elapses.
type Ephemeral struct {
	Content string
	TTL     time.Duration
}

// NewImageEmbed creates a message that renders the given image URL inline.
func NewImageEmbed(url string) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{
			{
				Image: &discordgo.MessageEmbedImage{URL: url},
			},
		},
	}
}
