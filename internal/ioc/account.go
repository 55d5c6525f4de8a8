package ioc

import (
	"gitee.com/flycash/notification-scheduler/internal/service/account"
	"github.com/gotomicro/ego/client/ehttp"
)

func InitAccountClient() account.Client {
	c := ehttp.Load("account").Build()
	return account.NewHTTPClient(c.Client)
}
