package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/janesbot/janesbot/internal/discord"
	"github.com/janesbot/janesbot/internal/trigger"
)

// SetTrigger adds a trigger or overwrites its response.
func (h *Handlers) SetTrigger(_ context.Context, _ *discord.Input, args string) interface{} {
	word, response, err := ParseTriggerArgs(args)
	if err != nil {
		return h.usage("janes", "<word> <response>")
	}

	word = trigger.Normalize(word)
	if existed := h.state.Triggers.Set(word, response); existed {
		return fmt.Sprintf("Trigger updated: `%s` will now respond with: `%s`", word, response)
	}
	return fmt.Sprintf("Trigger configured: `%s` will respond with: `%s`", word, response)
}

// UpdateTrigger overwrites the response of an existing trigger.
func (h *Handlers) UpdateTrigger(_ context.Context, _ *discord.Input, args string) interface{} {
	word, response, err := ParseTriggerArgs(args)
	if err != nil {
		return h.usage("updatejanes", "<word> <new_response>")
	}

	word = trigger.Normalize(word)
	if err := h.state.Triggers.Update(word, response); err != nil {
		return fmt.Sprintf("Trigger `%s` not found.", word)
	}
	return fmt.Sprintf("Trigger updated: `%s` will now respond with: `%s`", word, response)
}

// RemoveTrigger removes a trigger.
func (h *Handlers) RemoveTrigger(_ context.Context, _ *discord.Input, args string) interface{} {
	word, err := ParseSingleArg(args)
	if err != nil {
		return h.usage("removejanes", "<word>")
	}

	word = trigger.Normalize(word)
	if err := h.state.Triggers.Remove(word); err != nil {
		return fmt.Sprintf("Trigger `%s` not found.", word)
	}
	return fmt.Sprintf("Trigger removed: `%s`", word)
}

// ResetTriggers removes every trigger.
func (h *Handlers) ResetTriggers(_ context.Context, _ *discord.Input, _ string) interface{} {
	h.state.Triggers.Clear()
	return "All triggers have been reset."
}

// ListTriggers replies with every trigger and its response.
func (h *Handlers) ListTriggers(_ context.Context, _ *discord.Input, _ string) interface{} {
	seq, err := h.state.Triggers.List()
	if err != nil {
		return "No triggers configured."
	}

	var b strings.Builder
	b.WriteString("**Current Triggers:**")
	for word, response := range seq {
		fmt.Fprintf(&b, "\n`%s`: %s", word, response)
	}
	return b.String()
}
