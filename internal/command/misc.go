package command

import (
	"context"
	"fmt"
	"time"

	"github.com/oklahomer/go-kasumi/logger"

	"github.com/janesbot/janesbot/internal/discord"
)

// Ping replies with the gateway heartbeat latency.
func (h *Handlers) Ping(_ context.Context, _ *discord.Input, _ string) interface{} {
	ms := float64(h.gateway.Latency()) / float64(time.Millisecond)
	return fmt.Sprintf("Pong! Bot latency is %.2fms.", ms)
}

// Kill deletes the bot's last message in the channel and replies with a notice that removes itself.
func (h *Handlers) Kill(ctx context.Context, input *discord.Input, _ string) interface{} {
	found, err := h.gateway.DeleteLastOwnMessage(ctx, input.ChannelID(), KillScanLimit)
	if err != nil {
		logger.Errorf("Failed to delete last message in %s: %+v", input.ChannelID(), err)
		return &discord.Ephemeral{Content: "Failed to delete my last message.", TTL: EphemeralTTL}
	}
	if !found {
		return &discord.Ephemeral{Content: "No recent messages from me to delete.", TTL: EphemeralTTL}
	}
	return &discord.Ephemeral{Content: "Deleted my last message.", TTL: EphemeralTTL}
}
