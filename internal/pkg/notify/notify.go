// internal/pkg/notify/notify.go
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Kind classifies a user-visible message.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Notifier delivers a fire-and-forget user-visible message. Recipients are the
// same owner keys the cart uses ("user:42", "session:<uuid>"). Implementations
// must never fail the calling operation.
type Notifier interface {
	Notify(ctx context.Context, recipient string, kind Kind, message string)
}

// Message is the wire shape published to connected storefront clients.
type Message struct {
	Kind    Kind      `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// LogNotifier records notifications in the application log.
type LogNotifier struct {
	log *logrus.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(log *logrus.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify logs the message at a level matching its kind.
func (n *LogNotifier) Notify(_ context.Context, recipient string, kind Kind, message string) {
	entry := n.log.WithFields(logrus.Fields{
		"recipient": recipient,
		"kind":      kind,
	})
	switch kind {
	case KindError:
		entry.Warn(message)
	default:
		entry.Info(message)
	}
}

// RedisNotifier publishes notifications on a per-recipient channel so a
// connected storefront can render them as toasts.
type RedisNotifier struct {
	client *redis.Client
	log    *logrus.Logger
}

// NewRedisNotifier creates a pub/sub-backed notifier.
func NewRedisNotifier(client *redis.Client, log *logrus.Logger) *RedisNotifier {
	return &RedisNotifier{client: client, log: log}
}

// Channel returns the pub/sub channel for a recipient.
func Channel(recipient string) string {
	return "notify:" + recipient
}

// Notify publishes the message; delivery is best effort.
func (n *RedisNotifier) Notify(ctx context.Context, recipient string, kind Kind, message string) {
	payload, err := json.Marshal(Message{Kind: kind, Message: message, At: time.Now().UTC()})
	if err != nil {
		return
	}
	if err := n.client.Publish(ctx, Channel(recipient), payload).Err(); err != nil {
		n.log.WithError(err).WithField("recipient", recipient).Debug("notification publish failed")
	}
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

// Notify delivers the message through every wrapped notifier.
func (m Multi) Notify(ctx context.Context, recipient string, kind Kind, message string) {
	for _, n := range m {
		n.Notify(ctx, recipient, kind, message)
	}
}
