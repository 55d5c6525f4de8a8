package ioc

import (
	"context"

	"github.com/gotomicro/ego/task/ecron"
)

type App struct {
	Tasks []Task
	Crons []ecron.Ecron
}

func (a *App) StartTasks(ctx context.Context) {
	for _, t := range a.Tasks {
		go func(t Task) {
			t.Start(ctx)
		}(t)
	}
}
