package main

import (
	"context"

	"gitee.com/flycash/notification-scheduler/cmd/scheduler/ioc"
	prodioc "gitee.com/flycash/notification-scheduler/internal/ioc"
	"github.com/gotomicro/ego"
	"github.com/gotomicro/ego/core/elog"
	"github.com/gotomicro/ego/server/egovernor"
)

func main() {
	// ego.New 负责加载配置，组件的初始化必须在它之后
	server := ego.New()

	tp := prodioc.InitZipkinTracer()
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			elog.Error("Shutdown zipkinTracer", elog.FieldErr(err))
		}
	}()

	app := ioc.InitApp()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	app.StartTasks(ctx)

	if err := server.Serve(
		// 暴露 prometheus 指标
		egovernor.Load("server.governor").Build(),
	).Cron(app.Crons...).Run(); err != nil {
		elog.Panic("startup", elog.FieldErr(err))
	}
}
