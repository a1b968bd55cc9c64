package command

import (
	"fmt"
	"strings"
)

// ParseTriggerArgs splits "<word> <response>" at the first space.
// The response keeps everything after that space as is.
func ParseTriggerArgs(args string) (word string, response string, err error) {
	parts := strings.SplitN(strings.TrimSpace(args), " ", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: <word> <response> expected, got %q", ErrUsage, args)
	}
	return parts[0], parts[1], nil
}

// ParseSingleArg extracts the first whitespace separated argument.
func ParseSingleArg(args string) (string, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: argument is required", ErrUsage)
	}
	return fields[0], nil
}
