package ioc

import (
	"gitee.com/flycash/notification-scheduler/internal/repository"
	"gitee.com/flycash/notification-scheduler/internal/repository/dao"
)

func InitRecipientRepository(d dao.RecipientDAO, cfg SchedulerConfig) repository.RecipientRepository {
	return repository.NewRecipientRepository(d, cfg.BatchSize)
}
