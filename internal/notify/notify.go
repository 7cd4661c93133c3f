// Package notify carries request-outcome notifications from the HTTP layer to
// whatever surface renders them. The notifier is injected; nothing here is
// process-global.
package notify

import "log"

// Kind classifies a notification.
type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
	Warning Kind = "warning"
)

// Notifier receives user-visible notifications emitted by the HTTP layer.
type Notifier interface {
	Notify(message string, kind Kind)
}

// Func adapts a plain function to the Notifier interface.
type Func func(message string, kind Kind)

func (f Func) Notify(message string, kind Kind) {
	f(message, kind)
}

// LogNotifier writes notifications to the process log. It is the terminal
// analog of the transient banner.
type LogNotifier struct{}

func (LogNotifier) Notify(message string, kind Kind) {
	log.Printf("[notify] type=%s message=%s", kind, message)
}

// Discard drops every notification. Used where a surface is not wired up.
type Discard struct{}

func (Discard) Notify(string, Kind) {}
