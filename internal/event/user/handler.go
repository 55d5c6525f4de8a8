package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/notification-scheduler/internal/errs"
	"gitee.com/flycash/notification-scheduler/internal/service/recipient"
	"github.com/gotomicro/ego/core/elog"
	"github.com/patrickmn/go-cache"
)

const (
	groupID = "notification_scheduler"

	// 重复投递一般都发生在短时间内
	createdExpiration = 10 * time.Minute
	cleanupInterval   = 20 * time.Minute
)

// registeredHandler 两种消息队列共用的处理逻辑
type registeredHandler struct {
	svc recipient.Service
	// created 最近创建过的用户名，重复的事件不用再查库
	created *cache.Cache
	logger  *elog.Component
}

func newRegisteredHandler(svc recipient.Service) *registeredHandler {
	return &registeredHandler{
		svc:     svc,
		created: cache.New(createdExpiration, cleanupInterval),
		logger:  elog.DefaultLogger,
	}
}

// handle 消息本身有问题时只记录日志，不返回错误
func (h *registeredHandler) handle(ctx context.Context, value []byte) error {
	var evt RegisteredEvent
	err := json.Unmarshal(value, &evt)
	if err != nil {
		h.logger.Warn("解析用户注册事件失败",
			elog.FieldErr(err),
			elog.String("msg", string(value)))
		return nil
	}

	logger := h.logger.With(elog.String("username", evt.Username))
	if _, ok := h.created.Get(evt.Username); ok {
		logger.Info("重复的用户注册事件，忽略")
		return nil
	}

	created, err := h.svc.CreateIfAbsent(ctx, evt.UserID, evt.Username, evt.Email)
	switch {
	case err == nil:
	case errors.Is(err, errs.ErrInvalidParameter),
		errors.Is(err, errs.ErrInvalidEmail):
		logger.Warn("用户注册事件数据不合法，忽略",
			elog.String("email", evt.Email),
			elog.FieldErr(err))
		return nil
	default:
		return fmt.Errorf("创建接收者失败: %w", err)
	}

	h.created.SetDefault(evt.Username, struct{}{})
	if created {
		logger.Info("创建了默认的通知接收者")
	}
	return nil
}
