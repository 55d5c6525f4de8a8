package repository

import (
	"context"
	"iter"
	"time"

	"gitee.com/flycash/notification-scheduler/internal/domain"
	"gitee.com/flycash/notification-scheduler/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
	"github.com/gotomicro/ego/core/elog"
)

const defaultBatchSize = 100

//go:generate mockgen -source=./recipient.go -destination=./mocks/recipient.mock.go -package=repomocks RecipientRepository

// RecipientRepository 接收者仓储接口
type RecipientRepository interface {
	// FindByUsername 根据用户名查询接收者
	FindByUsername(ctx context.Context, username string) (domain.Recipient, error)
	// Create 创建接收者，用户名已经存在时返回 errs.ErrRecipientDuplicate
	Create(ctx context.Context, id uint64, userID string, recipient domain.Recipient) error
	// Save 创建或者更新接收者，id 只在创建时使用
	Save(ctx context.Context, id uint64, recipient domain.Recipient) (domain.Recipient, error)
	// MarkNotified 持久化某个类型的上次通知日期，返回写入后的设置
	MarkNotified(ctx context.Context, username string, typ domain.NotificationType, now time.Time) (domain.NotificationSettings, error)
	// ReadyToNotify 惰性返回在 asOf 这一天该类型到期的接收者，只能遍历一次。
	// 查询出错时会产出一次错误然后结束
	ReadyToNotify(ctx context.Context, typ domain.NotificationType, asOf time.Time) iter.Seq2[domain.Recipient, error]
}

type recipientRepository struct {
	dao       dao.RecipientDAO
	batchSize int
	logger    *elog.Component
}

// NewRecipientRepository batchSize 是就绪查询每批加载的接收者数量，小于等于0时使用默认值
func NewRecipientRepository(d dao.RecipientDAO, batchSize int) RecipientRepository {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &recipientRepository{
		dao:       d,
		batchSize: batchSize,
		logger:    elog.DefaultLogger,
	}
}

func (r *recipientRepository) FindByUsername(ctx context.Context, username string) (domain.Recipient, error) {
	entity, err := r.dao.GetByUsername(ctx, username)
	if err != nil {
		return domain.Recipient{}, err
	}
	return r.toDomain(entity)
}

func (r *recipientRepository) Create(ctx context.Context, id uint64, userID string, recipient domain.Recipient) error {
	entity := r.toEntity(id, recipient)
	entity.Recipient.UserID = userID
	return r.dao.Create(ctx, entity)
}

func (r *recipientRepository) Save(ctx context.Context, id uint64, recipient domain.Recipient) (domain.Recipient, error) {
	saved, err := r.dao.Save(ctx, r.toEntity(id, recipient))
	if err != nil {
		return domain.Recipient{}, err
	}
	return r.toDomain(saved)
}

func (r *recipientRepository) MarkNotified(ctx context.Context, username string, typ domain.NotificationType, now time.Time) (domain.NotificationSettings, error) {
	row, err := r.dao.MarkNotified(ctx, username, typ.String(), domain.DateMillis(now))
	if err != nil {
		return domain.NotificationSettings{}, err
	}
	return r.settingsToDomain(row)
}

func (r *recipientRepository) ReadyToNotify(ctx context.Context, typ domain.NotificationType, asOf time.Time) iter.Seq2[domain.Recipient, error] {
	asOf = domain.Date(asOf)
	return func(yield func(domain.Recipient, error) bool) {
		var afterID uint64
		for {
			if ctx.Err() != nil {
				yield(domain.Recipient{}, ctx.Err())
				return
			}
			batch, err := r.dao.FindReady(ctx, typ.String(), asOf.UnixMilli(), afterID, r.batchSize)
			if err != nil {
				yield(domain.Recipient{}, err)
				return
			}
			for _, entity := range batch {
				recipient, err1 := r.toDomain(entity)
				if err1 != nil {
					r.logger.Error("接收者数据不合法，跳过",
						elog.String("username", entity.Recipient.Username),
						elog.FieldErr(err1))
					continue
				}
				// 批次在同一个事务里加载，这里用领域规则再确认一次
				if !recipient.IsDue(typ, asOf) {
					continue
				}
				if !yield(recipient, nil) {
					return
				}
			}
			if len(batch) < r.batchSize {
				return
			}
			afterID = batch[len(batch)-1].Recipient.ID
		}
	}
}

func (r *recipientRepository) toDomain(entity dao.RecipientWithNotifications) (domain.Recipient, error) {
	notifications := make(map[domain.NotificationType]domain.NotificationSettings, len(entity.Notifications))
	for _, n := range entity.Notifications {
		typ, err := domain.ParseNotificationType(n.NotificationType)
		if err != nil {
			return domain.Recipient{}, err
		}
		s, err := r.settingsToDomain(n)
		if err != nil {
			return domain.Recipient{}, err
		}
		notifications[typ] = s
	}
	return domain.NewRecipient(entity.Recipient.Username, entity.Recipient.Email, notifications)
}

func (r *recipientRepository) settingsToDomain(n dao.RecipientNotification) (domain.NotificationSettings, error) {
	f, err := domain.FrequencyOf(n.Frequency)
	if err != nil {
		return domain.NotificationSettings{}, err
	}
	var last *time.Time
	if n.LastNotified > 0 {
		t := domain.DateFromMillis(n.LastNotified)
		last = &t
	}
	return domain.NewNotificationSettings(n.Active, f, last)
}

func (r *recipientRepository) toEntity(id uint64, recipient domain.Recipient) dao.RecipientWithNotifications {
	ns := recipient.Notifications()
	types := make([]domain.NotificationType, 0, len(ns))
	for _, typ := range domain.NotificationTypes() {
		if _, ok := ns[typ]; ok {
			types = append(types, typ)
		}
	}
	return dao.RecipientWithNotifications{
		Recipient: dao.Recipient{
			ID:       id,
			Username: recipient.Username(),
			Email:    recipient.Email(),
		},
		Notifications: slice.Map(types, func(_ int, typ domain.NotificationType) dao.RecipientNotification {
			s := ns[typ]
			var last int64
			if d, ok := s.LastNotified(); ok {
				last = d.UnixMilli()
			}
			return dao.RecipientNotification{
				NotificationType: typ.String(),
				Active:           s.Active(),
				Frequency:        s.Frequency().Days(),
				LastNotified:     last,
			}
		}),
	}
}
