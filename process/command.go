package process

import (
	"strings"
	"time"
)

// Command is one tool invocation.
type Command struct {
	// Binary is an executable path, or a name looked up on PATH.
	Binary string
	Args   []string
	// Env is appended to the parent environment.
	Env []string
	// GracePeriod separates SIGTERM from SIGKILL on cancellation. Zero means 5s.
	GracePeriod time.Duration
}

// String renders the command line for logs.
func (c Command) String() string {
	return strings.Join(append([]string{c.Binary}, c.Args...), " ")
}
