package domain

import (
	"fmt"

	"gitee.com/flycash/notification-scheduler/internal/errs"
)

// NotificationType 通知类型，每种类型是一条独立的通知流
type NotificationType string

const (
	NotificationTypeBackup NotificationType = "BACKUP" // 备份，邮件附带账户快照
	NotificationTypeRemind NotificationType = "REMIND" // 提醒
)

// NotificationTypes 返回全部通知类型
func NotificationTypes() []NotificationType {
	return []NotificationType{NotificationTypeBackup, NotificationTypeRemind}
}

func (t NotificationType) String() string {
	return string(t)
}

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeBackup, NotificationTypeRemind:
		return true
	default:
		return false
	}
}

// RequiresAttachment 发送前是否需要先拉取附件
func (t NotificationType) RequiresAttachment() bool {
	return t == NotificationTypeBackup
}

// LockName 调度这类通知时使用的分布式锁名
func (t NotificationType) LockName() string {
	switch t {
	case NotificationTypeBackup:
		return "backupNotifications"
	case NotificationTypeRemind:
		return "remindNotifications"
	default:
		return "notifications_" + string(t)
	}
}

// ParseNotificationType 解析通知类型
func ParseNotificationType(s string) (NotificationType, error) {
	t := NotificationType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidNotificationType, s)
	}
	return t, nil
}

// Frequency 通知频率，值就是间隔的天数
type Frequency int

const (
	FrequencyWeekly    Frequency = 7
	FrequencyMonthly   Frequency = 30
	FrequencyQuarterly Frequency = 90
)

// FrequencyOf 根据天数得到频率，不在预定义集合里的天数都是非法的
func FrequencyOf(days int) (Frequency, error) {
	f := Frequency(days)
	if !f.IsValid() {
		return 0, fmt.Errorf("%w: days = %d", errs.ErrInvalidFrequency, days)
	}
	return f, nil
}

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly:
		return true
	default:
		return false
	}
}

func (f Frequency) Days() int {
	return int(f)
}

func (f Frequency) String() string {
	switch f {
	case FrequencyWeekly:
		return "WEEKLY"
	case FrequencyMonthly:
		return "MONTHLY"
	case FrequencyQuarterly:
		return "QUARTERLY"
	default:
		return fmt.Sprintf("Frequency(%d)", int(f))
	}
}
