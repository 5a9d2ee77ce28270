package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
)

var (
	// ErrKafkaTopicRequired is returned when the topic is empty.
	ErrKafkaTopicRequired = errors.New("messaging: kafka topic is required")
	// ErrKafkaHandlerRequired is returned when Consume is called with a nil handler.
	ErrKafkaHandlerRequired = errors.New("messaging: kafka handler is required")
	// ErrKafkaBrokersRequired is returned when no Kafka brokers are configured.
	ErrKafkaBrokersRequired = errors.New("messaging: kafka brokers are required")
	// ErrKafkaGroupRequired is returned when a consumer group is not provided.
	ErrKafkaGroupRequired = errors.New("messaging: kafka consumer group is required")
)

// KafkaConfig configures the Kafka implementation.
type KafkaConfig struct {
	// Brokers lists Kafka broker addresses.
	Brokers []string

	// Dialer configures broker connections.
	Dialer *kafka.Dialer
}

// Kafka is a messaging implementation backed by kafka-go.
//
// Writers are created lazily per topic and reused; readers live for the
// duration of their Consume call.
type Kafka struct {
	brokers []string
	dialer  *kafka.Dialer

	mu      sync.Mutex
	writers map[string]*kafka.Writer
	readers []*kafka.Reader
	closed  bool
}

// NewKafka constructs a Kafka messaging client.
func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrKafkaBrokersRequired
	}

	return &Kafka{
		brokers: append([]string{}, cfg.Brokers...),
		dialer:  cfg.Dialer,
		writers: map[string]*kafka.Writer{},
	}, nil
}

// Close shuts down all Kafka readers and writers.
func (k *Kafka) Close() error {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return nil
	}
	k.closed = true
	writers := make([]*kafka.Writer, 0, len(k.writers))
	for _, w := range k.writers {
		writers = append(writers, w)
	}
	k.writers = nil
	readers := append([]*kafka.Reader{}, k.readers...)
	k.readers = nil
	k.mu.Unlock()

	var closeErr error
	for _, r := range readers {
		closeErr = errors.Join(closeErr, r.Close())
	}
	for _, w := range writers {
		closeErr = errors.Join(closeErr, w.Close())
	}
	return closeErr
}

// Publish sends a message to a Kafka topic.
func (k *Kafka) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if destination == "" {
		return PublishResult{}, ErrKafkaTopicRequired
	}
	if msg.Delay > 0 {
		return PublishResult{}, ErrUnsupported
	}

	writer, err := k.getWriter(destination)
	if err != nil {
		return PublishResult{}, err
	}

	kmsg := kafka.Message{
		Key:   msg.Key,
		Value: msg.Body,
		Time:  time.Now(),
	}
	for _, h := range msg.Headers {
		if h.Key == "" {
			continue
		}
		kmsg.Headers = append(kmsg.Headers, kafka.Header{Key: h.Key, Value: h.Value})
	}

	if err := writer.WriteMessages(ctx, kmsg); err != nil {
		return PublishResult{}, fmt.Errorf("messaging: kafka publish: %w", err)
	}

	return PublishResult{Topic: destination, Timestamp: kmsg.Time}, nil
}

// Consume starts consuming messages from a Kafka topic. A consumer group is
// required.
func (k *Kafka) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	co := newConsumeOptions(opts...)

	if err := ctx.Err(); err != nil {
		return err
	}
	if source == "" {
		return ErrKafkaTopicRequired
	}
	if handler == nil {
		return ErrKafkaHandlerRequired
	}
	if co.group == "" {
		return ErrKafkaGroupRequired
	}

	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  k.brokers,
		GroupID:  co.group,
		Topic:    source,
		MaxBytes: 10e6,
		Dialer:   k.dialer,
	})
	if err := k.addReader(reader); err != nil {
		return errors.Join(err, reader.Close())
	}

	concurrency := concurrencyOrDefault(co.concurrency, 1)
	msgCh := make(chan kafka.Message)
	errCh := make(chan error, 1)

	go func() {
		defer close(msgCh)
		for {
			m, err := reader.FetchMessage(consumeCtx)
			if err != nil {
				trySendErr(errCh, err)
				return
			}
			select {
			case msgCh <- m:
			case <-consumeCtx.Done():
				trySendErr(errCh, consumeCtx.Err())
				return
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for range concurrency {
		go func() {
			defer wg.Done()
			for m := range msgCh {
				if err := k.handleMessage(consumeCtx, reader, m, handler, co.autoAck); err != nil {
					trySendErr(errCh, err)
					cancel()
					return
				}
			}
		}()
	}

	waitErr := waitConsume(ctx, "kafka", errCh, &wg)
	k.removeReader(reader)
	if closeErr := reader.Close(); closeErr != nil {
		return errors.Join(waitErr, closeErr)
	}
	return waitErr
}

func (k *Kafka) getWriter(topic string) (*kafka.Writer, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return nil, io.ErrClosedPipe
	}
	if w, ok := k.writers[topic]; ok {
		return w, nil
	}

	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  k.brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
		Dialer:   k.dialer,
	})
	k.writers[topic] = w
	return w, nil
}

func (k *Kafka) addReader(reader *kafka.Reader) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return io.ErrClosedPipe
	}
	k.readers = append(k.readers, reader)
	return nil
}

func (k *Kafka) removeReader(reader *kafka.Reader) {
	k.mu.Lock()
	defer k.mu.Unlock()

	for i := range k.readers {
		if k.readers[i] == reader {
			k.readers = append(k.readers[:i], k.readers[i+1:]...)
			return
		}
	}
}

func (k *Kafka) handleMessage(
	ctx context.Context,
	reader *kafka.Reader,
	m kafka.Message,
	handler Handler,
	autoAck bool,
) error {
	wrapped := &kafkaMessage{reader: reader, msg: m}
	herr := callHandlerWithRecover(ctx, "kafka", func() error {
		return handler(ctx, wrapped)
	})

	if wrapped.responded.Load() || !autoAck {
		return nil
	}

	if herr == nil {
		return wrapped.Ack(ctx)
	}
	return wrapped.Nack(ctx)
}

func trySendErr(ch chan<- error, err error) {
	if err == nil {
		return
	}
	select {
	case ch <- err:
	default:
	}
}

func waitConsume(ctx context.Context, kind string, errCh <-chan error, wg *sync.WaitGroup) error {
	select {
	case err := <-errCh:
		wg.Wait()
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("messaging: %s consume: %w", kind, err)
	case <-ctx.Done():
		wg.Wait()
		return ctx.Err()
	}
}

type kafkaMessage struct {
	reader *kafka.Reader
	msg    kafka.Message

	responded atomic.Bool
}

func (m *kafkaMessage) Body() []byte { return m.msg.Value }
func (m *kafkaMessage) Key() []byte  { return m.msg.Key }

func (m *kafkaMessage) Headers() []Header {
	if len(m.msg.Headers) == 0 {
		return nil
	}
	out := make([]Header, 0, len(m.msg.Headers))
	for _, h := range m.msg.Headers {
		out = append(out, Header{Key: h.Key, Value: h.Value})
	}
	return out
}

func (m *kafkaMessage) Attributes() map[string]string {
	if len(m.msg.Headers) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(m.msg.Headers))
	for _, h := range m.msg.Headers {
		if _, ok := attrs[h.Key]; ok {
			continue
		}
		attrs[h.Key] = string(h.Value)
	}
	return attrs
}

func (m *kafkaMessage) ID() string {
	return fmt.Sprintf("%s/%d/%d", m.msg.Topic, m.msg.Partition, m.msg.Offset)
}

func (m *kafkaMessage) Topic() string        { return m.msg.Topic }
func (m *kafkaMessage) Timestamp() time.Time { return m.msg.Time }

func (m *kafkaMessage) Ack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.responded.Swap(true) {
		return nil
	}
	return m.reader.CommitMessages(ctx, m.msg)
}

// Nack leaves the offset uncommitted so the group rebalance redelivers it.
func (m *kafkaMessage) Nack(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.responded.Store(true)
	return nil
}
