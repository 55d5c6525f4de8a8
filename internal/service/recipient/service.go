package recipient

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"gitee.com/flycash/notification-scheduler/internal/domain"
	"gitee.com/flycash/notification-scheduler/internal/errs"
	"gitee.com/flycash/notification-scheduler/internal/repository"
	"github.com/gotomicro/ego/core/elog"
	"github.com/sony/sonyflake"
)

//go:generate mockgen -source=./service.go -destination=./mocks/recipient.mock.go -package=recipientmocks Service

// Service 接收者服务
type Service interface {
	// FindByUsername 根据用户名查询接收者
	FindByUsername(ctx context.Context, username string) (domain.Recipient, error)
	// CreateIfAbsent 用户名不存在时创建默认的接收者，返回是否真的创建了。
	// 重复的注册事件不会报错
	CreateIfAbsent(ctx context.Context, userID, username, email string) (bool, error)
	// Save 创建或者更新接收者的邮箱和全部通知设置
	Save(ctx context.Context, recipient domain.Recipient) (domain.Recipient, error)
	// ReadyToNotify 在 asOf 这一天该类型到期的接收者
	ReadyToNotify(ctx context.Context, typ domain.NotificationType, asOf time.Time) iter.Seq2[domain.Recipient, error]
	// MarkNotified 记录接收者在 now 这一天收到了该类型的通知，返回写入后的设置。
	// 没有该类型设置时返回 errs.ErrSettingsNotFound，设置未激活时返回 errs.ErrNotificationInactive
	MarkNotified(ctx context.Context, recipient domain.Recipient, typ domain.NotificationType, now time.Time) (domain.NotificationSettings, error)
}

type recipientService struct {
	repo        repository.RecipientRepository
	idGenerator *sonyflake.Sonyflake
	logger      *elog.Component
}

func NewService(repo repository.RecipientRepository, idGenerator *sonyflake.Sonyflake) Service {
	return &recipientService{
		repo:        repo,
		idGenerator: idGenerator,
		logger:      elog.DefaultLogger,
	}
}

func (s *recipientService) FindByUsername(ctx context.Context, username string) (domain.Recipient, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *recipientService) CreateIfAbsent(ctx context.Context, userID, username, email string) (bool, error) {
	r, err := domain.DefaultRecipient(username, email)
	if err != nil {
		return false, err
	}
	_, err = s.repo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		s.logger.Info("接收者已经存在，忽略", elog.String("username", username))
		return false, nil
	case !errors.Is(err, errs.ErrRecipientNotFound):
		return false, err
	}

	id, err := s.generateID()
	if err != nil {
		return false, err
	}
	err = s.repo.Create(ctx, id, userID, r)
	if errors.Is(err, errs.ErrRecipientDuplicate) {
		// 并发的重复事件，别人已经创建好了
		s.logger.Info("接收者已经被并发创建，忽略", elog.String("username", username))
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *recipientService) Save(ctx context.Context, recipient domain.Recipient) (domain.Recipient, error) {
	id, err := s.generateID()
	if err != nil {
		return domain.Recipient{}, err
	}
	return s.repo.Save(ctx, id, recipient)
}

func (s *recipientService) ReadyToNotify(ctx context.Context, typ domain.NotificationType, asOf time.Time) iter.Seq2[domain.Recipient, error] {
	return s.repo.ReadyToNotify(ctx, typ, asOf)
}

func (s *recipientService) MarkNotified(ctx context.Context, recipient domain.Recipient, typ domain.NotificationType, now time.Time) (domain.NotificationSettings, error) {
	// 先在内存里校验，和持久化用同一套规则。
	// 未激活的错误由调用方记录日志
	if _, err := recipient.MarkNotified(typ, now); err != nil {
		return domain.NotificationSettings{}, err
	}
	return s.repo.MarkNotified(ctx, recipient.Username(), typ, now)
}

func (s *recipientService) generateID() (uint64, error) {
	id, err := s.idGenerator.NextID()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errs.ErrIDGenerateFailed, err)
	}
	return id, nil
}
