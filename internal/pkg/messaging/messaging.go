// Package messaging provides a broker-agnostic publish/consume client.
package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrUnsupported is returned when a feature is not supported by the selected
// broker, for example delayed delivery.
var ErrUnsupported = errors.New("messaging: unsupported operation")

// Messaging is a broker-agnostic client that can publish and consume messages.
//
// Implementations wrap Kafka, NATS or any other messaging system.
type Messaging interface {
	io.Closer

	Publisher
	Consumer
}

// Publisher publishes messages to a destination (topic/subject).
type Publisher interface {
	// Publish sends a message to the destination.
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// Consumer consumes messages from a source (topic/subject).
type Consumer interface {
	// Consume starts consuming messages from the source. It blocks until the
	// context is canceled or the subscription fails.
	Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes a received message.
//
// Returning a non-nil error does not imply any particular broker behavior;
// with auto-ack enabled, a nil error acks and a non-nil error nacks.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage represents a broker-agnostic message to be published.
type OutgoingMessage struct {
	// Body is the message payload.
	Body []byte

	// Key is used by Kafka for partitioning.
	Key []byte

	// Headers support arbitrary binary values and duplicate keys.
	Headers []Header

	// Delay requests deferred delivery (when supported).
	Delay time.Duration
}

// Header is a key/value pair used for message headers.
type Header struct {
	Key   string
	Value []byte
}

// PublishResult carries optional broker-specific publish metadata.
type PublishResult struct {
	// MessageID is the broker-assigned message ID, when exposed.
	MessageID string

	// Topic is the destination used for publishing.
	Topic string

	// Timestamp is when the broker accepted the message.
	Timestamp time.Time
}

// Message is a broker-agnostic received message.
type Message interface {
	// Body returns the message payload.
	Body() []byte
	// Key returns the message key.
	Key() []byte
	// Headers returns message headers.
	Headers() []Header
	// Attributes returns headers flattened to a string map.
	Attributes() map[string]string

	// ID returns the broker message ID.
	ID() string
	// Topic returns the topic or subject name.
	Topic() string
	// Timestamp returns the broker timestamp.
	Timestamp() time.Time

	// Ack acknowledges successful processing.
	Ack(ctx context.Context) error
}

// Nackable can request a message redelivery.
type Nackable interface {
	Nack(ctx context.Context) error
}
