package reactor

import "errors"

// ErrSendFailure indicates that the trigger response could not be delivered to the new channel.
var ErrSendFailure = errors.New("failed to send trigger response")
