package ioc

import (
	"database/sql"
	"fmt"
	"time"

	"gitee.com/flycash/notification-scheduler/internal/pkg/passlock"
	"gitee.com/flycash/notification-scheduler/internal/repository/dao"
	"github.com/ecodeclub/ekit/retry"
	"github.com/ego-component/egorm"
	_ "github.com/go-sql-driver/mysql"
	"github.com/gotomicro/ego/core/econf"
)

func InitDB() *egorm.Component {
	WaitForDBSetup(econf.GetStringMapString("mysql")["dsn"])
	db := egorm.Load("mysql").Build()
	if err := dao.InitTables(db); err != nil {
		panic(err)
	}
	if err := passlock.InitTable(db); err != nil {
		panic(err)
	}
	return db
}

// WaitForDBSetup 容器刚启动时 MySQL 可能还连不上
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
	for {
		err = sqlDB.Ping()
		if err == nil {
			return
		}
		next, ok := strategy.Next()
		if !ok {
			panic(fmt.Errorf("等待 MySQL 启动失败: %w", err))
		}
		time.Sleep(next)
	}
}
