package discord

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/oklahomer/go-kasumi/logger"
	"github.com/oklahomer/go-sarah/v4"
)

const (
	// DISCORD is a designated sarah.BotType for Discord integration.
	DISCORD sarah.BotType = "discord"
)

// session is an internal interface that abstracts the discordgo.Session methods
// used by the Adapter. This allows mocking the session in tests.
// *discordgo.Session satisfies this interface.
type session interface {
	AddHandler(handler interface{}) func()
	Open() error
	Close() error
	HeartbeatLatency() time.Duration
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
}

var _ session = (*discordgo.Session)(nil)

// ChannelID represents a Discord channel as sarah.OutputDestination.
type ChannelID string

var _ sarah.OutputDestination = ChannelID("")

// ChannelCreateHandler receives newly created guild channels.
type ChannelCreateHandler func(ctx context.Context, channelID string, channelName string)

// AdapterOption defines a function signature for Adapter's functional options.
type AdapterOption func(adapter *Adapter)

// WithSession creates an AdapterOption with the given *discordgo.Session.
// Use this to inject a pre-configured session.
// If this option is not given, NewAdapter creates a new session from Config.Token.
func WithSession(session *discordgo.Session) AdapterOption {
	return func(adapter *Adapter) {
		adapter.session = session
	}
}

// WithChannelCreateHandler registers a function that is called for every guild channel creation.
func WithChannelCreateHandler(handler ChannelCreateHandler) AdapterOption {
	return func(adapter *Adapter) {
		adapter.channelCreateHandler = handler
	}
}

// Adapter is a sarah.Adapter implementation for Discord.
type Adapter struct {
	config               *Config
	session              session
	channelCreateHandler ChannelCreateHandler
	afterFunc            func(d time.Duration, f func())

	mu     sync.RWMutex
	selfID string
}

var _ sarah.Adapter = (*Adapter)(nil)

// NewAdapter creates a new Adapter with the given Config and options.
func NewAdapter(config *Config, options ...AdapterOption) (*Adapter, error) {
	adapter := &Adapter{
		config: config,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}

	for _, opt := range options {
		opt(adapter)
	}

	if adapter.session == nil {
		if config.Token == "" {
			return nil, ErrEmptyToken
		}

		s, err := discordgo.New("Bot " + config.Token)
		if err != nil {
			return nil, fmt.Errorf("failed to create Discord session: %w", err)
		}
		s.Identify.Intents = config.Intents
		adapter.session = s
	}

	return adapter, nil
}

// BotType returns a designated BotType for Discord integration.
func (a *Adapter) BotType() sarah.BotType {
	return DISCORD
}

// Run establishes a connection with Discord and blocks until the context is canceled.
func (a *Adapter) Run(ctx context.Context, enqueueInput func(sarah.Input) error, notifyErr func(error)) {
	a.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		defer recoverHandler("MessageCreate")
		a.handleMessage(s, m, enqueueInput)
	})
	a.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		defer recoverHandler("Ready")
		a.handleReady(r)
	})
	a.session.AddHandler(func(_ *discordgo.Session, c *discordgo.ChannelCreate) {
		defer recoverHandler("ChannelCreate")
		a.handleChannelCreate(ctx, c)
	})

	err := a.session.Open()
	if err != nil {
		notifyErr(sarah.NewBotNonContinuableError(fmt.Sprintf("failed to open Discord session: %s", err.Error())))
		return
	}

	// Block until the context is canceled.
	<-ctx.Done()

	if closeErr := a.session.Close(); closeErr != nil {
		logger.Errorf("Failed to close Discord session: %+v", closeErr)
	}
}

// recoverHandler keeps a panicking event handler from taking the process down.
func recoverHandler(event string) {
	if r := recover(); r != nil {
		logger.Errorf("Error occurred while handling %s: %+v", event, r)
	}
}

// handleMessage processes an incoming Discord message and routes it to enqueueInput.
func (a *Adapter) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate, enqueueInput func(sarah.Input) error) {
	input, err := MessageToInput(m)
	if err != nil {
		// MessageToInput returns ErrNoAuthor for system messages with no author.
		logger.Debugf("Skipping message: %+v", err)
		return
	}

	// Ignore messages from the bot itself.
	if s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}
	if selfID := a.SelfID(); selfID != "" && m.Author.ID == selfID {
		return
	}

	var enqueueErr error
	trimmed := strings.TrimSpace(input.Message())
	if a.config.HelpCommand != "" && trimmed == a.config.HelpCommand {
		enqueueErr = enqueueInput(sarah.NewHelpInput(input))
	} else {
		enqueueErr = enqueueInput(input)
	}
	if enqueueErr != nil {
		logger.Errorf("Failed to enqueue input: %+v", enqueueErr)
	}
}

func (a *Adapter) handleReady(r *discordgo.Ready) {
	if r.User == nil {
		logger.Warnf("Ready event without user")
		return
	}

	a.mu.Lock()
	a.selfID = r.User.ID
	a.mu.Unlock()

	logger.Infof("Logged in as %s!", r.User.Username)
}

func (a *Adapter) handleChannelCreate(ctx context.Context, c *discordgo.ChannelCreate) {
	if a.channelCreateHandler == nil || c.Channel == nil {
		return
	}

	// Only guild channels are of interest.
	if c.GuildID == "" {
		return
	}

	a.channelCreateHandler(ctx, c.ID, c.Name)
}

// SelfID returns the bot's own user ID. It is empty until the Ready event arrives.
func (a *Adapter) SelfID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.selfID
}

// Latency returns the round-trip time of the latest gateway heartbeat.
func (a *Adapter) Latency() time.Duration {
	return a.session.HeartbeatLatency()
}

// SendText sends a plain text message to the given channel and reports the delivery error, if any.
func (a *Adapter) SendText(ctx context.Context, channelID string, content string) error {
	_, err := a.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to send message to %s: %w", channelID, err)
	}
	return nil
}

// DeleteLastOwnMessage looks through up to limit most recent messages in the channel
// and deletes the newest one posted by the bot.
// The returned bool is false when no such message is found.
func (a *Adapter) DeleteLastOwnMessage(ctx context.Context, channelID string, limit int) (bool, error) {
	selfID := a.SelfID()
	if selfID == "" {
		return false, ErrNotReady
	}

	messages, err := a.session.ChannelMessages(channelID, limit, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("failed to fetch messages in %s: %w", channelID, err)
	}

	for _, m := range messages {
		if m.Author == nil || m.Author.ID != selfID {
			continue
		}

		err := a.session.ChannelMessageDelete(channelID, m.ID, discordgo.WithContext(ctx))
		if err != nil {
			return false, fmt.Errorf("failed to delete message %s in %s: %w", m.ID, channelID, err)
		}
		return true, nil
	}

	return false, nil
}

// SendMessage sends the given message to Discord.
func (a *Adapter) SendMessage(ctx context.Context, output sarah.Output) {
	destination, ok := output.Destination().(ChannelID)
	if !ok {
		logger.Errorf("Destination is not instance of ChannelID. %#v.", output.Destination())
		return
	}

	a.send(ctx, string(destination), output.Content())
}

func (a *Adapter) send(ctx context.Context, channelID string, content interface{}) {
	switch content := content.(type) {
	case string:
		_, err := a.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
		if err != nil {
			logger.Errorf("Failed to send message to %s: %+v", channelID, err)
		}

	case *discordgo.MessageSend:
		_, err := a.session.ChannelMessageSendComplex(channelID, content, discordgo.WithContext(ctx))
		if err != nil {
			logger.Errorf("Failed to send complex message to %s: %+v", channelID, err)
		}

	case Sequence:
		for _, c := range content {
			a.send(ctx, channelID, c)
		}

	case *Ephemeral:
		msg, err := a.session.ChannelMessageSend(channelID, content.Content, discordgo.WithContext(ctx))
		if err != nil {
			logger.Errorf("Failed to send ephemeral message to %s: %+v", channelID, err)
			return
		}
		if msg == nil {
			return
		}
		a.afterFunc(content.TTL, func() {
			// Runs after the command returns, so ctx is not passed.
			if err := a.session.ChannelMessageDelete(channelID, msg.ID); err != nil {
				logger.Warnf("Failed to delete ephemeral message %s in %s: %+v", msg.ID, channelID, err)
			}
		})

	case *sarah.CommandHelps:
		lines := make([]string, 0, len(*content))
		for _, h := range *content {
			lines = append(lines, fmt.Sprintf("**%s**: %s", h.Identifier, h.Instruction))
		}
		text := strings.Join(lines, "\n")
		_, err := a.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx))
		if err != nil {
			logger.Errorf("Failed to send help message to %s: %+v", channelID, err)
		}

	default:
		logger.Warnf("Unexpected output %#v", content)
	}
}

// Input is a sarah.Input implementation that represents a received Discord message.
type Input struct {
	Event     *discordgo.MessageCreate
	senderKey string
	text      string
	sentAt    time.Time
	channelID ChannelID
}

var _ sarah.Input = (*Input)(nil)

// SenderKey returns a unique key representing the sender in the channel.
func (i *Input) SenderKey() string {
	return i.senderKey
}

// Message returns the received text.
func (i *Input) Message() string {
	return i.text
}

// SentAt returns when the message was sent.
func (i *Input) SentAt() time.Time {
	return i.sentAt
}

// ReplyTo returns the Discord channel where the message was received.
func (i *Input) ReplyTo() sarah.OutputDestination {
	return i.channelID
}

// ChannelID returns the ID of the channel where the message was received.
func (i *Input) ChannelID() string {
	return string(i.channelID)
}

// MessageToInput converts a *discordgo.MessageCreate event to *Input.
func MessageToInput(m *discordgo.MessageCreate) (*Input, error) {
	if m.Author == nil {
		return nil, ErrNoAuthor
	}

	return &Input{
		Event:     m,
		senderKey: fmt.Sprintf("%s_%s", m.ChannelID, m.Author.ID),
		text:      m.Content,
		sentAt:    m.Timestamp,
		channelID: ChannelID(m.ChannelID),
	}, nil
}

// NewResponse creates a *sarah.CommandResponse with the given content.
// Content can be a string, *discordgo.MessageSend, Sequence or *Ephemeral.
func NewResponse(input sarah.Input, content interface{}) (*sarah.CommandResponse, error) {
	if _, ok := input.(*Input); !ok {
		return nil, fmt.Errorf("%T is not a *discord.Input", input)
	}

	return &sarah.CommandResponse{
		Content: content,
	}, nil
}
