package executor

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned when a command exceeds its timeout.
var ErrTimeout = errors.New("command timeout")

// CommandError reports a command that could not be started.
type CommandError struct {
	Cmd   string
	Stage string
	Cause error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Cmd, e.Cause)
}

func (e *CommandError) Unwrap() error { return e.Cause }

// FormatTimeout spells a timeout in seconds for user-facing messages:
// "2 minutos", "1 minuto" or "45 segundos".
func FormatTimeout(secs int) string {
	switch {
	case secs == 60:
		return "1 minuto"
	case secs > 0 && secs%60 == 0:
		return fmt.Sprintf("%d minutos", secs/60)
	default:
		return fmt.Sprintf("%d segundos", secs)
	}
}
