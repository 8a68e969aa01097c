// Package notify carries fire-and-forget user feedback out of the commerce
// core. The core only emits; display and dismissal are the caller's problem.
package notify

import "go.uber.org/zap"

// Kind classifies a notification for presentation.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notifier receives user-facing feedback messages. Implementations must not
// block and must not fail the operation that emitted the notification.
type Notifier interface {
	Notify(kind Kind, message string)
}

// Func adapts a plain function to the Notifier interface.
type Func func(kind Kind, message string)

func (f Func) Notify(kind Kind, message string) {
	f(kind, message)
}

// Nop discards all notifications.
func Nop() Notifier {
	return Func(func(Kind, string) {})
}

type logNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier returns a Notifier that records notifications on the
// structured log.
func NewLogNotifier(logger *zap.Logger) Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Notify(kind Kind, message string) {
	n.logger.Info("Notification",
		zap.String("kind", string(kind)),
		zap.String("message", message),
	)
}
