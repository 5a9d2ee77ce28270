package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/upasthit/upasthit-api/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Cache holds the admission state for the ask endpoint. Both the daily
// counter and the cooldown slot live in Redis so each check is one atomic
// command; there is no read-then-write window to race through.
type Cache struct {
	client *redis.Client
	ins    instrument.Instrumentation
}

func NewCache(client *redis.Client, ins instrument.Instrumentation) *Cache {
	return &Cache{client: client, ins: ins}
}

func (c *Cache) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.ins.Tracer("chatbot.outbound.cache").Start(ctx, name)
}

func (c *Cache) endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func quotaKey(subjectID int64, day string) string {
	return fmt.Sprintf("chatbot:quota:%d:%s", subjectID, day)
}

func cooldownKey(subjectID int64) string {
	return fmt.Sprintf("chatbot:cooldown:%d", subjectID)
}

// IncrDailyUsage charges one question against the subject's daily counter and
// returns the count after the charge. The key dies at end of local day.
func (c *Cache) IncrDailyUsage(ctx context.Context, subjectID int64, day string, expireAt time.Time) (_ int64, err error) {
	ctx, span := c.startSpan(ctx, "IncrDailyUsage")
	defer func() { c.endSpan(span, err) }()

	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, quotaKey(subjectID, day))
	pipe.ExpireAt(ctx, quotaKey(subjectID, day), expireAt)
	if _, err = pipe.Exec(ctx); err != nil {
		return 0, err
	}

	return incr.Val(), nil
}

// DecrDailyUsage refunds one charge, used when admission is later denied or
// the downstream call fails.
func (c *Cache) DecrDailyUsage(ctx context.Context, subjectID int64, day string) (err error) {
	ctx, span := c.startSpan(ctx, "DecrDailyUsage")
	defer func() { c.endSpan(span, err) }()

	return c.client.Decr(ctx, quotaKey(subjectID, day)).Err()
}

// GetDailyUsage reads the current charge count without touching it.
func (c *Cache) GetDailyUsage(ctx context.Context, subjectID int64, day string) (_ int64, err error) {
	ctx, span := c.startSpan(ctx, "GetDailyUsage")
	defer func() { c.endSpan(span, err) }()

	val, err := c.client.Get(ctx, quotaKey(subjectID, day)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return val, nil
}

// AcquireCooldown reserves the cooldown slot for the given width. It returns
// false when another ask still occupies the slot.
func (c *Cache) AcquireCooldown(ctx context.Context, subjectID int64, width time.Duration) (_ bool, err error) {
	ctx, span := c.startSpan(ctx, "AcquireCooldown")
	defer func() { c.endSpan(span, err) }()

	return c.client.SetNX(ctx, cooldownKey(subjectID), "1", width).Result()
}

// CooldownTTL returns how long the current cooldown slot still holds, zero
// when the slot is free.
func (c *Cache) CooldownTTL(ctx context.Context, subjectID int64) (_ time.Duration, err error) {
	ctx, span := c.startSpan(ctx, "CooldownTTL")
	defer func() { c.endSpan(span, err) }()

	ttl, err := c.client.PTTL(ctx, cooldownKey(subjectID)).Result()
	if err != nil {
		return 0, err
	}
	if ttl < 0 {
		return 0, nil
	}

	return ttl, nil
}

// ReleaseCooldown frees the slot early, used when the downstream call fails
// and the attempt should not count.
func (c *Cache) ReleaseCooldown(ctx context.Context, subjectID int64) (err error) {
	ctx, span := c.startSpan(ctx, "ReleaseCooldown")
	defer func() { c.endSpan(span, err) }()

	return c.client.Del(ctx, cooldownKey(subjectID)).Err()
}
