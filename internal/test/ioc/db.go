package ioc

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/ecodeclub/ekit/retry"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const dsn = "root:root@tcp(localhost:13316)/notification_scheduler?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=True&loc=Local&timeout=1s&readTimeout=3s&writeTimeout=3s&multiStatements=true"

var (
	db         *gorm.DB
	dbInitOnce sync.Once
)

func WaitForDBSetup(dsn string) {
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		panic(err)
	}
	defer sqlDB.Close()
	const maxInterval = 10 * time.Second
	const maxRetries = 10
	strategy, err := retry.NewExponentialBackoffRetryStrategy(time.Second, maxInterval, maxRetries)
	if err != nil {
		panic(err)
	}

	const timeout = 5 * time.Second
	for {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		err = sqlDB.PingContext(ctx)
		cancel()
		if err == nil {
			return
		}
		next, ok := strategy.Next()
		if !ok {
			panic("WaitForDBSetup 重试失败......")
		}
		time.Sleep(next)
	}
}

// InitDB 连接测试库，tables 会被自动建表
func InitDB(tables ...any) *gorm.DB {
	dbInitOnce.Do(func() {
		WaitForDBSetup(dsn)
		var err error
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			panic(fmt.Errorf("数据库连接失败: %w", err))
		}
	})
	if len(tables) > 0 {
		if err := db.AutoMigrate(tables...); err != nil {
			panic(fmt.Errorf("建表失败: %w", err))
		}
	}
	return db
}

// TruncateTables 清空测试数据
func TruncateTables(db *gorm.DB, tables ...string) {
	for _, table := range tables {
		db.Exec(fmt.Sprintf("TRUNCATE TABLE `%s`", table))
	}
}
