package errs

import (
	"errors"
)

// 定义统一的错误类型
var (
	ErrInvalidParameter        = errors.New("参数错误")
	ErrInvalidEmail            = errors.New("邮箱格式错误")
	ErrInvalidFrequency        = errors.New("通知频率不合法")
	ErrInvalidNotificationType = errors.New("通知类型不合法")

	ErrRecipientNotFound  = errors.New("接收者不存在")
	ErrRecipientDuplicate = errors.New("接收者记录主键冲突")
	ErrSettingsNotFound   = errors.New("接收者没有该类型的通知设置")

	// ErrNotificationInactive 对未激活的通知设置标记已通知。
	// 就绪查询只会返回激活的设置，出现这个错误说明上游逻辑有缺陷
	ErrNotificationInactive = errors.New("通知设置未激活，不能标记为已通知")

	ErrIDGenerateFailed = errors.New("ID生成失败")

	ErrFetchAttachment = errors.New("获取附件失败")
	ErrDeliveryFailed  = errors.New("发送通知失败")
)

// IsInvariantViolation 判断是否为逻辑不变量被破坏，这类错误需要以 error 级别记录
func IsInvariantViolation(err error) bool {
	return errors.Is(err, ErrNotificationInactive)
}

// IsSkip 判断是否属于可以直接跳过的情况
func IsSkip(err error) bool {
	return errors.Is(err, ErrSettingsNotFound) || errors.Is(err, ErrRecipientDuplicate)
}
