package lifecycle

import (
	"go.uber.org/zap"

	"github.com/ravazquez/claimtrack/internal/model"
)

// Notifier consumes transition events. Delivery is best effort: a failing
// sink must never roll back or block the transition that produced the event.
type Notifier interface {
	OnTransition(claimID string, from, to model.Status, message string)
}

// LogNotifier records transition events in the log.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a log-backed notification sink.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// OnTransition implements Notifier.
func (n *LogNotifier) OnTransition(claimID string, from, to model.Status, message string) {
	n.logger.Info("claim transition",
		zap.String("claim_id", claimID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("message", message))
}
