package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/go-cmp/cmp"
	"github.com/oklahomer/go-sarah/v4"

	"github.com/janesbot/janesbot/internal/discord"
)

// mockGateway implements Gateway for testing.
type mockGateway struct {
	latency                  time.Duration
	deleteLastOwnMessageFunc func(ctx context.Context, channelID string, limit int) (bool, error)
}

func (m *mockGateway) Latency() time.Duration {
	return m.latency
}

func (m *mockGateway) DeleteLastOwnMessage(ctx context.Context, channelID string, limit int) (bool, error) {
	if m.deleteLastOwnMessageFunc != nil {
		return m.deleteLastOwnMessageFunc(ctx, channelID, limit)
	}
	return false, nil
}

func newInput(t *testing.T, content string) *discord.Input {
	t.Helper()
	input, err := discord.MessageToInput(&discordgo.MessageCreate{
		Message: &discordgo.Message{
			ChannelID: "ch-1",
			Content:   content,
			Timestamp: time.Now(),
			Author:    &discordgo.User{ID: "user-1"},
		},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %+v", err)
	}
	return input
}

func newHandlers() *Handlers {
	return NewHandlers(NewState(), &mockGateway{}, "!")
}

// describe flattens the reply into "embed:<url>" and "text:<content>" entries.
func describe(t *testing.T, content interface{}) []string {
	t.Helper()
	switch c := content.(type) {
	case string:
		return []string{"text:" + c}
	case *discordgo.MessageSend:
		var out []string
		for _, e := range c.Embeds {
			out = append(out, "embed:"+e.Image.URL)
		}
		return out
	case discord.Sequence:
		var out []string
		for _, e := range c {
			out = append(out, describe(t, e)...)
		}
		return out
	case *discord.Ephemeral:
		return []string{fmt.Sprintf("ephemeral(%s):%s", c.TTL, c.Content)}
	default:
		t.Fatalf("Unexpected content %#v", content)
		return nil
	}
}

func TestPattern(t *testing.T) {
	tests := []struct {
		prefix  string
		name    string
		message string
		want    bool
	}{
		{prefix: "!", name: "image", message: "!image https://a.com/x.png", want: true},
		{prefix: "!", name: "image", message: "!image", want: true},
		{prefix: "!", name: "image", message: "!images", want: false},
		{prefix: "!", name: "image", message: "!randomimage", want: false},
		{prefix: "!", name: "janes", message: "!janes hi hello", want: true},
		{prefix: "!", name: "janes", message: "!listjanes", want: false},
		{prefix: "!", name: "ping", message: "ping", want: false},
		{prefix: "!", name: "ping", message: " !ping", want: false},
		{prefix: "?", name: "ping", message: "?ping", want: true},
		{prefix: ".", name: "ping", message: "xping", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.prefix+tt.name+" "+tt.message, func(t *testing.T) {
			if got := Pattern(tt.prefix, tt.name).MatchString(tt.message); got != tt.want {
				t.Errorf("Expected %t, got %t", tt.want, got)
			}
		})
	}
}

func TestHandlers_Table(t *testing.T) {
	h := newHandlers()

	var names []string
	seen := map[string]bool{}
	for _, cmd := range h.Table() {
		if seen[cmd.Name] {
			t.Errorf("Duplicated command %q", cmd.Name)
		}
		seen[cmd.Name] = true
		names = append(names, cmd.Name)

		if cmd.Func == nil {
			t.Errorf("Command %q has no Func", cmd.Name)
		}
	}

	want := []string{
		"image", "randomimage", "addimage", "removeimage", "ping",
		"janes", "removejanes", "resetjanes", "listjanes", "updatejanes", "kill",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("Command names mismatch (-want +got):\n%s", diff)
	}
}

func TestHandlers_Props(t *testing.T) {
	h := newHandlers()

	props, err := h.Props()
	if err != nil {
		t.Fatalf("Unexpected error: %+v", err)
	}
	if len(props) != len(h.Table()) {
		t.Errorf("Expected %d props, got %d", len(h.Table()), len(props))
	}
}

func TestHandlers_instruction(t *testing.T) {
	h := NewHandlers(NewState(), &mockGateway{}, "?")

	got := h.instruction(Command{Name: "janes", Usage: "<word> <response>", Description: "add a trigger-response pair"})
	if got != "Input ?janes <word> <response> to add a trigger-response pair." {
		t.Errorf("Unexpected instruction: %q", got)
	}

	got = h.instruction(Command{Name: "ping", Description: "check the bot's latency"})
	if got != "Input ?ping to check the bot's latency." {
		t.Errorf("Unexpected instruction: %q", got)
	}
}

func TestHandlers_sarahFunc(t *testing.T) {
	h := newHandlers()

	var gotArgs string
	fnc := h.sarahFunc(Pattern("!", "janes"), func(_ context.Context, _ *discord.Input, args string) interface{} {
		gotArgs = args
		return "ok"
	})

	t.Run("args are stripped of the command", func(t *testing.T) {
		resp, err := fnc(context.Background(), newInput(t, "!janes chat  Welcome aboard "))
		if err != nil {
			t.Fatalf("Unexpected error: %+v", err)
		}
		if resp.Content != "ok" {
			t.Errorf("Expected content %q, got %v", "ok", resp.Content)
		}
		if gotArgs != "chat  Welcome aboard" {
			t.Errorf("Unexpected args %q", gotArgs)
		}
	})

	t.Run("non-discord input", func(t *testing.T) {
		_, err := fnc(context.Background(), sarah.NewHelpInput(newInput(t, "!help")))
		if err == nil {
			t.Error("Expected an error for non-discord Input")
		}
	})
}

func TestHandlers_Ping(t *testing.T) {
	h := NewHandlers(NewState(), &mockGateway{latency: 41234567 * time.Nanosecond}, "!")

	got := h.Ping(context.Background(), newInput(t, "!ping"), "")
	if got != "Pong! Bot latency is 41.23ms." {
		t.Errorf("Unexpected reply %q", got)
	}
}

func TestHandlers_Kill(t *testing.T) {
	tests := []struct {
		name  string
		found bool
		err   error
		want  string
	}{
		{name: "deleted", found: true, want: "ephemeral(1s):Deleted my last message."},
		{name: "nothing to delete", found: false, want: "ephemeral(1s):No recent messages from me to delete."},
		{name: "failure", err: errors.New("missing permissions"), want: "ephemeral(1s):Failed to delete my last message."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotChannelID string
			var gotLimit int
			gateway := &mockGateway{
				deleteLastOwnMessageFunc: func(_ context.Context, channelID string, limit int) (bool, error) {
					gotChannelID = channelID
					gotLimit = limit
					return tt.found, tt.err
				},
			}
			h := NewHandlers(NewState(), gateway, "!")

			got := describe(t, h.Kill(context.Background(), newInput(t, "!kill"), ""))

			if diff := cmp.Diff([]string{tt.want}, got); diff != "" {
				t.Errorf("Reply mismatch (-want +got):\n%s", diff)
			}
			if gotChannelID != "ch-1" || gotLimit != KillScanLimit {
				t.Errorf("Unexpected scan of %d messages in %q", gotLimit, gotChannelID)
			}
		})
	}
}

func TestParseTriggerArgs(t *testing.T) {
	tests := []struct {
		args         string
		wantWord     string
		wantResponse string
		wantErr      bool
	}{
		{args: "chat Welcome to the chat!", wantWord: "chat", wantResponse: "Welcome to the chat!"},
		{args: "Chat hi", wantWord: "Chat", wantResponse: "hi"},
		{args: "chat  two spaces", wantWord: "chat", wantResponse: " two spaces"},
		{args: "chat", wantErr: true},
		{args: "chat ", wantErr: true},
		{args: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.args, func(t *testing.T) {
			word, response, err := ParseTriggerArgs(tt.args)
			if tt.wantErr {
				if !errors.Is(err, ErrUsage) {
					t.Fatalf("Expected ErrUsage, got %+v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %+v", err)
			}
			if word != tt.wantWord || response != tt.wantResponse {
				t.Errorf("Expected (%q, %q), got (%q, %q)", tt.wantWord, tt.wantResponse, word, response)
			}
		})
	}
}

func TestParseSingleArg(t *testing.T) {
	got, err := ParseSingleArg("  https://a.com/x.png trailing")
	if err != nil {
		t.Fatalf("Unexpected error: %+v", err)
	}
	if got != "https://a.com/x.png" {
		t.Errorf("Unexpected argument %q", got)
	}

	if _, err := ParseSingleArg("   "); !errors.Is(err, ErrUsage) {
		t.Errorf("Expected ErrUsage, got %+v", err)
	}
}

func TestUsage(t *testing.T) {
	h := NewHandlers(NewState(), &mockGateway{}, "?")
	if got := h.usage("janes", "<word> <response>"); !strings.HasPrefix(got, "Usage: ?janes ") {
		t.Errorf("Unexpected usage %q", got)
	}
}
