package mq

import (
	"context"
	"encoding/json"

	"github.com/upasthit/upasthit-api/internal/identity/usecase"
	"github.com/upasthit/upasthit-api/internal/pkg/instrument"
	"github.com/upasthit/upasthit-api/internal/pkg/messaging"
	"github.com/upasthit/upasthit-api/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishOtpIssued(ctx context.Context, msg usecase.OtpIssuedEvent) error {
	ctx, span := m.ins.Tracer("identity.outbound.mq").Start(ctx, "PublishOtpIssued")
	defer span.End()

	body, err := json.Marshal(event.OtpIssuedMessage{
		SubjectID: msg.SubjectID,
		Role:      msg.Role,
		Email:     msg.Email,
		Name:      msg.Name,
		Code:      msg.Code,
		Purpose:   msg.Purpose,
		TTLMinute: msg.TTLMinute,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.OtpIssuedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
