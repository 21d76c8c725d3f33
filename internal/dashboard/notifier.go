package dashboard

import (
	"sync"

	"go.uber.org/zap"
)

type Notification struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Feed queues notifications for the browser layer to drain and render as
// toasts. Each notification is also logged.
type Feed struct {
	logger *zap.SugaredLogger

	mu    sync.Mutex
	queue []Notification
}

func NewFeed(logger *zap.SugaredLogger) *Feed {
	return &Feed{logger: logger}
}

func (f *Feed) Success(message string) {
	f.logger.Infof("notify: %s", message)
	f.push(Notification{Level: "success", Message: message})
}

func (f *Feed) Error(message string) {
	f.logger.Warnf("notify: %s", message)
	f.push(Notification{Level: "error", Message: message})
}

func (f *Feed) push(n Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, n)
}

// Drain returns the queued notifications and empties the queue.
func (f *Feed) Drain() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	drained := f.queue
	f.queue = nil
	return drained
}
