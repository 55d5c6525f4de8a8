package sender

import (
	"context"

	"gitee.com/flycash/notification-scheduler/internal/domain"
)

//go:generate mockgen -source=./types.go -destination=./mocks/sender.mock.go -package=sendermocks Sender

// Sender 把一条通知发给接收者
type Sender interface {
	// Send attachment 为空表示没有附件
	Send(ctx context.Context, typ domain.NotificationType, recipient domain.Recipient, attachment []byte) error
}
