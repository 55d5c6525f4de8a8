package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/notification-scheduler/internal/domain"
	"gitee.com/flycash/notification-scheduler/internal/errs"
	"gitee.com/flycash/notification-scheduler/internal/service/account"
	"gitee.com/flycash/notification-scheduler/internal/service/recipient"
	"gitee.com/flycash/notification-scheduler/internal/service/sender"
)

// Pipeline 单个接收者的投递流程：附件 -> 发送 -> 标记已通知，
// 任何一步失败都只终止这一个接收者，下一轮调度会再次选中它
type Pipeline struct {
	accounts   account.Client
	sender     sender.Sender
	recipients recipient.Service
}

func NewPipeline(accounts account.Client, s sender.Sender, recipients recipient.Service) *Pipeline {
	return &Pipeline{
		accounts:   accounts,
		sender:     s,
		recipients: recipients,
	}
}

func (p *Pipeline) Deliver(ctx context.Context, typ domain.NotificationType, r domain.Recipient, now time.Time) error {
	var attachment []byte
	if typ.RequiresAttachment() {
		var err error
		attachment, err = p.accounts.GetAccount(ctx, r.Username())
		if err != nil {
			return wrapAs(errs.ErrFetchAttachment, err)
		}
	}

	if err := p.sender.Send(ctx, typ, r, attachment); err != nil {
		return wrapAs(errs.ErrDeliveryFailed, err)
	}

	// 发送成功后才能标记，进程在这两步之间崩溃会导致重复发送
	_, err := p.recipients.MarkNotified(ctx, r, typ, now)
	return err
}

func wrapAs(target, err error) error {
	if errors.Is(err, target) {
		return err
	}
	return fmt.Errorf("%w: %w", target, err)
}
