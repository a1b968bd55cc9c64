// Package reactor answers newly created channels whose name contains a trigger word.
//
// Each channel is answered at most once during the process lifetime.
package reactor

import (
	"context"
	"fmt"
	"sync"

	"github.com/oklahomer/go-kasumi/logger"

	"github.com/janesbot/janesbot/internal/trigger"
)

// State is the reaction state of a channel.
type State int

const (
	// Untriggered is the initial state of every channel.
	Untriggered State = iota
	// Triggered is terminal. The channel already received a trigger response.
	Triggered
)

func (s State) String() string {
	switch s {
	case Untriggered:
		return "untriggered"
	case Triggered:
		return "triggered"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Sender delivers a text message to a channel.
type Sender interface {
	SendText(ctx context.Context, channelID string, content string) error
}

// Matcher finds the trigger that applies to a channel name.
// *trigger.Table satisfies this interface.
type Matcher interface {
	Match(text string) (word string, response string, ok bool)
}

var _ Matcher = (*trigger.Table)(nil)

// Result describes what happened to a channel-create notification.
type Result struct {
	// Fired is true when a trigger response was delivered.
	Fired bool
	// Word is the matched trigger word, if any.
	Word string
}

// Reactor keeps per-channel reaction states.
// Notifications are handled one at a time, so two notifications for the same channel never both fire.
type Reactor struct {
	mu       sync.Mutex
	matcher  Matcher
	sender   Sender
	channels map[string]State
}

// New creates a Reactor that matches against the given triggers and replies via the given sender.
func New(matcher Matcher, sender Sender) *Reactor {
	return &Reactor{
		matcher:  matcher,
		sender:   sender,
		channels: map[string]State{},
	}
}

// State returns the reaction state of the given channel.
func (r *Reactor) State(channelID string) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.channels[channelID]
}

// OnChannelCreate posts the response of the first trigger whose word is contained in channelName.
// A channel that already received a response is skipped.
// When the delivery fails, the channel stays untriggered and the error wraps ErrSendFailure.
// Other matching triggers are not tried.
func (r *Reactor) OnChannelCreate(ctx context.Context, channelID string, channelName string) (Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.channels[channelID] == Triggered {
		logger.Debugf("Channel %s is already triggered", channelID)
		return Result{}, nil
	}

	word, response, ok := r.matcher.Match(channelName)
	if !ok {
		return Result{}, nil
	}

	if err := r.sender.SendText(ctx, channelID, response); err != nil {
		return Result{Word: word}, fmt.Errorf("%w to channel %s (%s): %w", ErrSendFailure, channelName, channelID, err)
	}

	r.channels[channelID] = Triggered
	logger.Infof("Trigger %q fired in channel %s (%s)", word, channelName, channelID)
	return Result{Fired: true, Word: word}, nil
}

// HandleChannelCreate is OnChannelCreate for event listeners.
// Failures are logged and never returned.
func (r *Reactor) HandleChannelCreate(ctx context.Context, channelID string, channelName string) {
	if _, err := r.OnChannelCreate(ctx, channelID, channelName); err != nil {
		logger.Errorf("Error sending message in channel %s: %+v", channelName, err)
	}
}
