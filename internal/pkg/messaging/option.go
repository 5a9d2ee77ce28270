package messaging

type consumeOptions struct {
	// concurrency is the number of handler goroutines processing messages
	// in parallel.
	concurrency int

	// autoAck makes the wrapper ack/nack automatically after the handler
	// returns.
	autoAck bool

	// group identifies the Kafka consumer group.
	group string

	// queueGroup identifies the NATS queue group.
	queueGroup string

	// maxInFlight limits outstanding unacknowledged messages.
	maxInFlight int
}

// ConsumeOption configures consumer behavior.
type ConsumeOption func(*consumeOptions)

func newConsumeOptions(opts ...ConsumeOption) consumeOptions {
	var co consumeOptions
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&co)
	}
	return co
}

// WithConcurrency sets how many handler goroutines process messages in parallel.
func WithConcurrency(n int) ConsumeOption {
	return func(o *consumeOptions) { o.concurrency = n }
}

// WithGroup sets the consumer group name (Kafka).
func WithGroup(group string) ConsumeOption {
	return func(o *consumeOptions) { o.group = group }
}

// WithQueueGroup sets the queue group name (NATS).
func WithQueueGroup(queueGroup string) ConsumeOption {
	return func(o *consumeOptions) { o.queueGroup = queueGroup }
}

// WithAutoAck controls whether the wrapper acks/nacks automatically after the
// handler returns.
func WithAutoAck(autoAck bool) ConsumeOption {
	return func(o *consumeOptions) { o.autoAck = autoAck }
}

// WithMaxInFlight limits the maximum number of unacknowledged messages in flight.
func WithMaxInFlight(maxInFlight int) ConsumeOption {
	return func(o *consumeOptions) { o.maxInFlight = maxInFlight }
}

func concurrencyOrDefault(n, fallback int) int {
	if n < 1 {
		return fallback
	}
	return n
}
