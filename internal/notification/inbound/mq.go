package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/upasthit/upasthit-api/internal/notification/usecase"
	"github.com/upasthit/upasthit-api/internal/pkg/messaging"
	"github.com/upasthit/upasthit-api/internal/shared/event"
)

type uc interface {
	NotifyOtpIssued(ctx context.Context, in usecase.NotifyOtpIssuedInput) error
}

// MQEndpoint consumes identity events and turns them into emails.
type MQEndpoint struct {
	uc uc
}

// RegisterMQEndpoint starts the OTP consumer. It blocks until ctx is done, so
// callers run it in a goroutine.
func RegisterMQEndpoint(ctx context.Context, client messaging.Messaging, uc uc) error {
	end := &MQEndpoint{uc: uc}

	return client.Consume(ctx, event.OtpIssuedDestination, end.OtpIssued,
		messaging.WithGroup(event.OtpIssuedConsumerNotification),
		messaging.WithQueueGroup(event.OtpIssuedConsumerNotification),
	)
}

func (m *MQEndpoint) OtpIssued(ctx context.Context, msg messaging.Message) error {
	var payload event.OtpIssuedMessage
	if err := json.Unmarshal(msg.Body(), &payload); err != nil {
		slog.ErrorContext(ctx, "failed to decode otp issued message", "message_id", msg.ID(), "error", err)
		return nil // malformed payloads never get better on redelivery
	}

	err := m.uc.NotifyOtpIssued(ctx, usecase.NotifyOtpIssuedInput{
		Email:     payload.Email,
		Name:      payload.Name,
		Code:      payload.Code,
		Purpose:   payload.Purpose,
		TTLMinute: payload.TTLMinute,
	})
	if err != nil {
		// the code is short-lived; by redelivery time it is stale, so ack anyway
		slog.ErrorContext(ctx, "failed to process otp issued message", "message_id", msg.ID(), "error", err)
	}

	return nil
}
