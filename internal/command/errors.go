package command

import "errors"

// ErrUsage indicates that the command arguments are malformed.
var ErrUsage = errors.New("invalid command usage")
