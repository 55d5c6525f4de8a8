package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/notification-scheduler/internal/errs"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=./recipient.go -destination=./mocks/recipient.mock.go -package=daomocks RecipientDAO

const dayMillis = int64(24 * time.Hour / time.Millisecond)

type RecipientDAO interface {
	// GetByUsername 查询接收者以及它全部的通知设置
	GetByUsername(ctx context.Context, username string) (RecipientWithNotifications, error)
	// Create 创建接收者以及它的通知设置，用户名冲突时返回 errs.ErrRecipientDuplicate
	Create(ctx context.Context, data RecipientWithNotifications) error
	// Save 不存在就创建，存在就更新邮箱并整体替换通知设置
	Save(ctx context.Context, data RecipientWithNotifications) (RecipientWithNotifications, error)
	// FindReady 按照 recipient id 的顺序，找出 id 大于 afterID 且该类型到期的接收者。
	// 一批数据在同一个只读事务里面加载，每个接收者都是完整的
	FindReady(ctx context.Context, typ string, asOf int64, afterID uint64, limit int) ([]RecipientWithNotifications, error)
	// MarkNotified 在事务中锁住 (username, typ) 这一行，激活的才会把 last_notified 推进到 date。
	// last_notified 只增不减，其余类型的行不受影响
	MarkNotified(ctx context.Context, username, typ string, date int64) (RecipientNotification, error)
}

// Recipient 接收者表
type Recipient struct {
	ID       uint64 `gorm:"primaryKey;comment:'雪花算法ID'"`
	UserID   string `gorm:"type:VARCHAR(64);NOT NULL;DEFAULT:'';comment:'账户服务中的用户ID'"`
	Username string `gorm:"type:VARCHAR(128);NOT NULL;uniqueIndex:uk_username;comment:'用户名，接收者的唯一标识'"`
	Email    string `gorm:"type:VARCHAR(256);NOT NULL;comment:'邮箱'"`
	Ctime    int64
	Utime    int64
}

// RecipientNotification 接收者的通知设置表，每个接收者每种通知类型一行
type RecipientNotification struct {
	ID               uint64 `gorm:"primaryKey;autoIncrement"`
	RecipientID      uint64 `gorm:"NOT NULL;uniqueIndex:uk_recipient_type,priority:1;comment:'接收者ID'"`
	NotificationType string `gorm:"type:ENUM('BACKUP','REMIND');NOT NULL;uniqueIndex:uk_recipient_type,priority:2;index:idx_type_active,priority:1;comment:'通知类型'"`
	Active           bool   `gorm:"NOT NULL;DEFAULT:false;index:idx_type_active,priority:2;comment:'是否激活'"`
	Frequency        int    `gorm:"type:INT;NOT NULL;comment:'通知频率，单位天'"`
	LastNotified     int64  `gorm:"NOT NULL;DEFAULT:0;comment:'上次通知日期的零点，毫秒，0表示从未通知过'"`
	Ctime            int64
	Utime            int64
}

// RecipientWithNotifications 接收者以及它的全部通知设置
type RecipientWithNotifications struct {
	Recipient     Recipient
	Notifications []RecipientNotification
}

type recipientDAO struct {
	db *egorm.Component
}

func NewRecipientDAO(db *egorm.Component) RecipientDAO {
	return &recipientDAO{
		db: db,
	}
}

func (d *recipientDAO) GetByUsername(ctx context.Context, username string) (RecipientWithNotifications, error) {
	var res RecipientWithNotifications
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("username = ?", username).First(&res.Recipient).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: username = %s", errs.ErrRecipientNotFound, username)
		}
		if err != nil {
			return err
		}
		return tx.Where("recipient_id = ?", res.Recipient.ID).Find(&res.Notifications).Error
	}, &sql.TxOptions{ReadOnly: true})
	return res, err
}

func (d *recipientDAO) Create(ctx context.Context, data RecipientWithNotifications) error {
	now := time.Now().UnixMilli()
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return d.create(tx, data, now)
	})
}

func (d *recipientDAO) create(tx *gorm.DB, data RecipientWithNotifications, now int64) error {
	data.Recipient.Ctime, data.Recipient.Utime = now, now
	if err := tx.Create(&data.Recipient).Error; err != nil {
		if d.isUniqueConstraintError(err) {
			return fmt.Errorf("%w: username = %s", errs.ErrRecipientDuplicate, data.Recipient.Username)
		}
		return err
	}
	return d.insertNotifications(tx, data.Recipient.ID, data.Notifications, now)
}

func (d *recipientDAO) insertNotifications(tx *gorm.DB, recipientID uint64, ns []RecipientNotification, now int64) error {
	if len(ns) == 0 {
		return nil
	}
	rows := slice.Map(ns, func(_ int, src RecipientNotification) RecipientNotification {
		src.ID = 0
		src.RecipientID = recipientID
		src.Ctime, src.Utime = now, now
		return src
	})
	return tx.Create(&rows).Error
}

func (d *recipientDAO) Save(ctx context.Context, data RecipientWithNotifications) (RecipientWithNotifications, error) {
	now := time.Now().UnixMilli()
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Recipient
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("username = ?", data.Recipient.Username).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return d.create(tx, data, now)
		}
		if err != nil {
			return err
		}
		data.Recipient.ID = existing.ID
		data.Recipient.Ctime = existing.Ctime
		if data.Recipient.UserID == "" {
			data.Recipient.UserID = existing.UserID
		}
		err = tx.Model(&Recipient{}).Where("id = ?", existing.ID).Updates(map[string]any{
			"email":   data.Recipient.Email,
			"user_id": data.Recipient.UserID,
			"utime":   now,
		}).Error
		if err != nil {
			return err
		}
		if err = tx.Where("recipient_id = ?", existing.ID).Delete(&RecipientNotification{}).Error; err != nil {
			return err
		}
		return d.insertNotifications(tx, existing.ID, data.Notifications, now)
	})
	if err != nil {
		return RecipientWithNotifications{}, err
	}
	return d.GetByUsername(ctx, data.Recipient.Username)
}

func (d *recipientDAO) FindReady(ctx context.Context, typ string, asOf int64, afterID uint64, limit int) ([]RecipientWithNotifications, error) {
	var res []RecipientWithNotifications
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint64
		err := tx.Model(&RecipientNotification{}).
			Where("notification_type = ? AND active = ? AND recipient_id > ?", typ, true, afterID).
			Where("(last_notified = 0 OR last_notified + frequency * ? <= ?)", dayMillis, asOf).
			Order("recipient_id ASC").
			Limit(limit).
			Pluck("recipient_id", &ids).Error
		if err != nil || len(ids) == 0 {
			return err
		}

		var recipients []Recipient
		if err = tx.Where("id IN ?", ids).Order("id ASC").Find(&recipients).Error; err != nil {
			return err
		}
		var ns []RecipientNotification
		if err = tx.Where("recipient_id IN ?", ids).Find(&ns).Error; err != nil {
			return err
		}
		grouped := make(map[uint64][]RecipientNotification, len(recipients))
		for _, n := range ns {
			grouped[n.RecipientID] = append(grouped[n.RecipientID], n)
		}
		res = slice.Map(recipients, func(_ int, r Recipient) RecipientWithNotifications {
			return RecipientWithNotifications{Recipient: r, Notifications: grouped[r.ID]}
		})
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	return res, err
}

func (d *recipientDAO) MarkNotified(ctx context.Context, username, typ string, date int64) (RecipientNotification, error) {
	var row RecipientNotification
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r Recipient
		err := tx.Select("id").Where("username = ?", username).First(&r).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: username = %s", errs.ErrRecipientNotFound, username)
		}
		if err != nil {
			return err
		}

		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("recipient_id = ? AND notification_type = ?", r.ID, typ).
			First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: username = %s, type = %s", errs.ErrSettingsNotFound, username, typ)
		}
		if err != nil {
			return err
		}
		if !row.Active {
			return fmt.Errorf("%w: username = %s, type = %s", errs.ErrNotificationInactive, username, typ)
		}
		if row.LastNotified >= date {
			// 已经被别的节点推进过了
			return nil
		}
		now := time.Now().UnixMilli()
		err = tx.Model(&RecipientNotification{}).
			Where("id = ?", row.ID).
			Updates(map[string]any{
				"last_notified": date,
				"utime":         now,
			}).Error
		if err != nil {
			return err
		}
		row.LastNotified, row.Utime = date, now
		return nil
	})
	return row, err
}

// isUniqueConstraintError 检查是否是唯一索引冲突错误
func (d *recipientDAO) isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	me := new(mysql.MySQLError)
	if ok := errors.As(err, &me); ok {
		const uniqueIndexErrNo uint16 = 1062
		return me.Number == uniqueIndexErrNo
	}
	return false
}
