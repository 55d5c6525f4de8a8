package passlock

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// SchedulerLock 调度锁表，一个名字一行
type SchedulerLock struct {
	Name      string `gorm:"type:VARCHAR(64);primaryKey;comment:'锁名'"`
	LockUntil int64  `gorm:"NOT NULL;comment:'锁的过期时间，毫秒'"`
	LockedAt  int64  `gorm:"NOT NULL;comment:'加锁时间，毫秒'"`
	LockedBy  string `gorm:"type:VARCHAR(255);NOT NULL;comment:'持有者'"`
}

func (SchedulerLock) TableName() string {
	return "scheduler_locks"
}

// InitTable 建表
func InitTable(db *egorm.Component) error {
	return db.AutoMigrate(&SchedulerLock{})
}

// DBProvider 基于数据库行的实现。
// 先尝试插入，名字已经存在的话就尝试抢占已经过期的行
type DBProvider struct {
	db       *egorm.Component
	hostname string
	now      func() time.Time
}

func NewDBProvider(db *egorm.Component) *DBProvider {
	hostname, _ := os.Hostname()
	return &DBProvider{
		db:       db,
		hostname: hostname,
		now:      time.Now,
	}
}

func (p *DBProvider) TryAcquire(ctx context.Context, name string, atMostFor time.Duration) (Lease, bool, error) {
	owner, err := uuid.NewV4()
	if err != nil {
		return nil, false, err
	}
	lockedBy := p.hostname + "#" + owner.String()
	now := p.now()
	until := now.Add(atMostFor).UnixMilli()

	err = p.db.WithContext(ctx).Create(&SchedulerLock{
		Name:      name,
		LockUntil: until,
		LockedAt:  now.UnixMilli(),
		LockedBy:  lockedBy,
	}).Error
	switch {
	case err == nil:
		return p.lease(name, lockedBy), true, nil
	case !isUniqueConstraintError(err):
		return nil, false, err
	}

	res := p.db.WithContext(ctx).Model(&SchedulerLock{}).
		Where("name = ? AND lock_until <= ?", name, now.UnixMilli()).
		Updates(map[string]any{
			"lock_until": until,
			"locked_at":  now.UnixMilli(),
			"locked_by":  lockedBy,
		})
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, false, nil
	}
	return p.lease(name, lockedBy), true, nil
}

func (p *DBProvider) lease(name, lockedBy string) *dbLease {
	return &dbLease{db: p.db, name: name, lockedBy: lockedBy, now: p.now}
}

type dbLease struct {
	db       *gorm.DB
	name     string
	lockedBy string
	now      func() time.Time
}

func (l *dbLease) Release(ctx context.Context, atLeastUntil time.Time) error {
	until := l.now()
	if atLeastUntil.After(until) {
		until = atLeastUntil
	}
	res := l.db.WithContext(ctx).Model(&SchedulerLock{}).
		Where("name = ? AND locked_by = ?", l.name, l.lockedBy).
		Update("lock_until", until.UnixMilli())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLeaseLost
	}
	return nil
}

// isUniqueConstraintError 检查是否是唯一索引冲突错误
func isUniqueConstraintError(err error) bool {
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
