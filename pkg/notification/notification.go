package notification

import (
	"time"
)

// Sender delivers an end-of-run summary to an external service.
type Sender interface {
	CanSend() bool
	Send(title string, description string, runTime time.Duration, fields []Field) error
	BuildField(options BuildOptions) Field
	Name() string
}

type Field struct {
	Name  string
	Value string
}

// BuildOptions describes one confirmed equivalence group for a notification.
type BuildOptions struct {
	Master     string
	MasterSize int64
	Duplicates []string
	Action     string
}
