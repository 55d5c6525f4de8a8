package tracing

import (
	"context"
	"strconv"

	"gitee.com/flycash/notification-scheduler/internal/domain"
	"gitee.com/flycash/notification-scheduler/internal/service/sender"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Sender 为发送实现添加链路追踪的装饰器
type Sender struct {
	sender sender.Sender
	tracer trace.Tracer
}

func NewSender(s sender.Sender) *Sender {
	return &Sender{
		sender: s,
		tracer: otel.Tracer("notification-scheduler/sender"),
	}
}

func (s *Sender) Send(ctx context.Context, typ domain.NotificationType, recipient domain.Recipient, attachment []byte) error {
	ctx, span := s.tracer.Start(ctx, "Sender.Send",
		trace.WithAttributes(
			attribute.String("notification.type", typ.String()),
			attribute.String("recipient.username", recipient.Username()),
			attribute.String("notification.attachmentSize", strconv.Itoa(len(attachment))),
		))
	defer span.End()

	err := s.sender.Send(ctx, typ, recipient, attachment)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
