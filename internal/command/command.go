// Package command holds the bot commands as an explicit dispatch table
// and registers them to go-sarah.
package command

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/oklahomer/go-sarah/v4"

	"github.com/janesbot/janesbot/internal/discord"
	"github.com/janesbot/janesbot/internal/image"
	"github.com/janesbot/janesbot/internal/trigger"
)

// KillScanLimit is how many recent messages kill looks through.
const KillScanLimit = 50

// EphemeralTTL is how long kill's notices stay visible.
const EphemeralTTL = time.Second

// State is the mutable state the commands work on.
type State struct {
	Images   *image.Registry
	Triggers *trigger.Table
}

// NewState creates an empty State.
func NewState() *State {
	return &State{
		Images:   image.NewRegistry(),
		Triggers: trigger.NewTable(),
	}
}

// Gateway is the part of the Discord connection the commands need beyond replying.
// *discord.Adapter satisfies this interface.
type Gateway interface {
	Latency() time.Duration
	DeleteLastOwnMessage(ctx context.Context, channelID string, limit int) (bool, error)
}

var _ Gateway = (*discord.Adapter)(nil)

// Func handles one command.
// args is the message text without the prefixed command name.
// The returned value is the reply content accepted by discord.NewResponse.
type Func func(ctx context.Context, input *discord.Input, args string) interface{}

// Command is an entry of the dispatch table.
type Command struct {
	Name        string
	Usage       string
	Description string
	Func        Func
}

// Handlers binds commands to their State and Gateway.
type Handlers struct {
	state   *State
	gateway Gateway
	prefix  string
}

// NewHandlers creates Handlers. prefix precedes every command name.
func NewHandlers(state *State, gateway Gateway, prefix string) *Handlers {
	return &Handlers{
		state:   state,
		gateway: gateway,
		prefix:  prefix,
	}
}

// Table returns the dispatch table. Command names are unique.
func (h *Handlers) Table() []Command {
	return []Command{
		{Name: "image", Usage: "<urls...>", Description: "send image embeds from up to 10 space-separated URLs", Func: h.Image},
		{Name: "randomimage", Description: "send a random image from the list", Func: h.RandomImage},
		{Name: "addimage", Usage: "<url>", Description: "add an image URL to the list", Func: h.AddImage},
		{Name: "removeimage", Usage: "<url>", Description: "remove an image URL from the list", Func: h.RemoveImage},
		{Name: "ping", Description: "check the bot's latency", Func: h.Ping},
		{Name: "janes", Usage: "<word> <response>", Description: "add a trigger-response pair", Func: h.SetTrigger},
		{Name: "removejanes", Usage: "<word>", Description: "remove a specific trigger word", Func: h.RemoveTrigger},
		{Name: "resetjanes", Description: "reset all triggers", Func: h.ResetTriggers},
		{Name: "listjanes", Description: "list all trigger-response pairs", Func: h.ListTriggers},
		{Name: "updatejanes", Usage: "<word> <new_response>", Description: "update a specific trigger's response", Func: h.UpdateTrigger},
		{Name: "kill", Description: "delete the bot's last message", Func: h.Kill},
	}
}

// Pattern returns the regular expression that matches the given command with the given prefix.
// The command name must be followed by whitespace or the end of the message.
func Pattern(prefix string, name string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(prefix+name) + `(?:\s|$)`)
}

// Props builds go-sarah command props for every command in the table.
func (h *Handlers) Props() ([]*sarah.CommandProps, error) {
	table := h.Table()
	props := make([]*sarah.CommandProps, 0, len(table))
	for _, cmd := range table {
		pattern := Pattern(h.prefix, cmd.Name)
		p, err := sarah.NewCommandPropsBuilder().
			BotType(discord.DISCORD).
			Identifier(cmd.Name).
			MatchPattern(pattern).
			Func(h.sarahFunc(pattern, cmd.Func)).
			Instruction(h.instruction(cmd)).
			Build()
		if err != nil {
			return nil, fmt.Errorf("failed to build %s command: %w", cmd.Name, err)
		}
		props = append(props, p)
	}
	return props, nil
}

// Register registers every command to go-sarah.
func (h *Handlers) Register() error {
	props, err := h.Props()
	if err != nil {
		return err
	}
	for _, p := range props {
		sarah.RegisterCommandProps(p)
	}
	return nil
}

func (h *Handlers) sarahFunc(pattern *regexp.Regexp, fnc Func) func(context.Context, sarah.Input) (*sarah.CommandResponse, error) {
	return func(ctx context.Context, input sarah.Input) (*sarah.CommandResponse, error) {
		in, ok := input.(*discord.Input)
		if !ok {
			return nil, fmt.Errorf("%T is not a *discord.Input", input)
		}
		args := sarah.StripMessage(pattern, in.Message())
		return discord.NewResponse(in, fnc(ctx, in, args))
	}
}

func (h *Handlers) instruction(cmd Command) string {
	if cmd.Usage == "" {
		return fmt.Sprintf("Input %s%s to %s.", h.prefix, cmd.Name, cmd.Description)
	}
	return fmt.Sprintf("Input %s%s %s to %s.", h.prefix, cmd.Name, cmd.Usage, cmd.Description)
}

func (h *Handlers) usage(name string, args string) string {
	return fmt.Sprintf("Usage: %s%s %s", h.prefix, name, args)
}
