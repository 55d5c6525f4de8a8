package passlock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDBProvider(t *testing.T) (*DBProvider, sqlmock.Sqlmock, time.Time) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	now := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	p := NewDBProvider(db)
	p.hostname = "node-1"
	p.now = func() time.Time {
		return now
	}
	return p, mock, now
}

func TestDBProvider_TryAcquire(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock, now time.Time)
		wantOK  bool
		wantErr bool
	}{
		{
			name: "第一次加锁，插入成功",
			mock: func(mock sqlmock.Sqlmock, now time.Time) {
				mock.ExpectExec("INSERT INTO `scheduler_locks`").
					WithArgs("backupNotifications", now.Add(time.Minute).UnixMilli(), now.UnixMilli(), sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantOK: true,
		},
		{
			name: "已经有行，抢占过期的锁",
			mock: func(mock sqlmock.Sqlmock, now time.Time) {
				mock.ExpectExec("INSERT INTO `scheduler_locks`").
					WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
				mock.ExpectExec("UPDATE `scheduler_locks` SET").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantOK: true,
		},
		{
			name: "锁被别人持有",
			mock: func(mock sqlmock.Sqlmock, now time.Time) {
				mock.ExpectExec("INSERT INTO `scheduler_locks`").
					WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
				mock.ExpectExec("UPDATE `scheduler_locks` SET").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name: "插入失败",
			mock: func(mock sqlmock.Sqlmock, now time.Time) {
				mock.ExpectExec("INSERT INTO `scheduler_locks`").
					WillReturnError(errors.New("mock db error"))
			},
			wantErr: true,
		},
		{
			name: "抢占失败",
			mock: func(mock sqlmock.Sqlmock, now time.Time) {
				mock.ExpectExec("INSERT INTO `scheduler_locks`").
					WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
				mock.ExpectExec("UPDATE `scheduler_locks` SET").
					WillReturnError(errors.New("mock db error"))
			},
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p, mock, now := newDBProvider(t)
			tc.mock(mock, now)

			lease, ok, err := p.TryAcquire(context.Background(), "backupNotifications", time.Minute)
			assert.Equal(t, tc.wantErr, err != nil)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantOK, lease != nil)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBProvider_Release(t *testing.T) {
	t.Parallel()
	p, mock, now := newDBProvider(t)
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO `scheduler_locks`").WillReturnResult(sqlmock.NewResult(0, 1))
	lease, ok, err := p.TryAcquire(ctx, "remindNotifications", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	lockedBy := lease.(*dbLease).lockedBy
	assert.Contains(t, lockedBy, "node-1#")

	// 最短持有时间没到，保留到 atLeastUntil
	mock.ExpectExec("UPDATE `scheduler_locks` SET `lock_until`=").
		WithArgs(now.Add(10*time.Second).UnixMilli(), "remindNotifications", lockedBy).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, lease.Release(ctx, now.Add(10*time.Second)))

	// 已经过了最短持有时间，直接过期
	mock.ExpectExec("UPDATE `scheduler_locks` SET `lock_until`=").
		WithArgs(now.UnixMilli(), "remindNotifications", lockedBy).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, lease.Release(ctx, now.Add(-time.Second)))

	// 行已经被别人抢走
	mock.ExpectExec("UPDATE `scheduler_locks` SET `lock_until`=").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, lease.Release(ctx, now), ErrLeaseLost)

	assert.NoError(t, mock.ExpectationsWereMet())
}
