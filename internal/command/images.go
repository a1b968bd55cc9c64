package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oklahomer/go-kasumi/logger"

	"github.com/janesbot/janesbot/internal/discord"
	"github.com/janesbot/janesbot/internal/image"
)

// Image replies with one embed per valid URL and one notice per invalid URL, in the given order.
func (h *Handlers) Image(_ context.Context, _ *discord.Input, args string) interface{} {
	urls := strings.Fields(args)
	if len(urls) == 0 {
		return h.usage("image", "<urls...>")
	}

	items, err := image.SendBatch(urls)
	if errors.Is(err, image.ErrTooManyURLs) {
		return fmt.Sprintf("You can only send up to %d images at once.", image.MaxBatchSize)
	}

	seq := make(discord.Sequence, 0, len(items))
	for _, item := range items {
		if item.Valid() {
			seq = append(seq, discord.NewImageEmbed(item.URL))
		} else {
			seq = append(seq, fmt.Sprintf("Invalid image URL: %s", item.URL))
		}
	}
	return seq
}

// RandomImage replies with a random image from the list.
func (h *Handlers) RandomImage(_ context.Context, _ *discord.Input, _ string) interface{} {
	url, err := h.state.Images.PickRandom()
	if err != nil {
		return "No images available in the list."
	}
	return discord.NewImageEmbed(url)
}

// AddImage adds an image URL to the list.
func (h *Handlers) AddImage(_ context.Context, _ *discord.Input, args string) interface{} {
	url, err := ParseSingleArg(args)
	if err != nil {
		return h.usage("addimage", "<url>")
	}

	stored, err := h.state.Images.Add(url)
	if err != nil {
		return "Invalid image URL. Please provide a valid link (jpg, png, gif)."
	}
	logger.Infof("Image added: %s", stored)
	return fmt.Sprintf("Image added: %s", stored)
}

// RemoveImage removes an image URL from the list.
func (h *Handlers) RemoveImage(_ context.Context, _ *discord.Input, args string) interface{} {
	url, err := ParseSingleArg(args)
	if err != nil {
		return h.usage("removeimage", "<url>")
	}

	if err := h.state.Images.Remove(url); err != nil {
		return "Image not found in the list."
	}
	return fmt.Sprintf("Image removed: %s", url)
}
