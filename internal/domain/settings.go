package domain

import (
	"fmt"
	"time"

	"gitee.com/flycash/notification-scheduler/internal/errs"
)

// NotificationSettings 某个接收者某种通知类型的设置。
// 值语义，任何变更都会返回一个新的值
type NotificationSettings struct {
	active       bool
	frequency    Frequency
	lastNotified time.Time // 零值表示从未通知过
}

// NewNotificationSettings 创建通知设置，frequency 必须合法。
// lastNotified 为 nil 表示从未通知过
func NewNotificationSettings(active bool, frequency Frequency, lastNotified *time.Time) (NotificationSettings, error) {
	if !frequency.IsValid() {
		return NotificationSettings{}, fmt.Errorf("%w: frequency = %d", errs.ErrInvalidFrequency, int(frequency))
	}
	s := NotificationSettings{
		active:    active,
		frequency: frequency,
	}
	if lastNotified != nil && !lastNotified.IsZero() {
		s.lastNotified = Date(*lastNotified)
	}
	return s, nil
}

func (s NotificationSettings) Active() bool {
	return s.active
}

func (s NotificationSettings) Frequency() Frequency {
	return s.frequency
}

// LastNotified 上次通知的日期，从未通知过时 ok 为 false
func (s NotificationSettings) LastNotified() (date time.Time, ok bool) {
	return s.lastNotified, !s.lastNotified.IsZero()
}

// IsNotified 是否通知过
func (s NotificationSettings) IsNotified() bool {
	return !s.lastNotified.IsZero()
}

// IsZero 没有经过 NewNotificationSettings 构造的零值
func (s NotificationSettings) IsZero() bool {
	return s.frequency == 0
}

// IsDue 在 asOf 这一天是否应该通知：
// 激活，并且从未通知过或者上次通知日期加上频率天数不晚于 asOf
func (s NotificationSettings) IsDue(asOf time.Time) bool {
	if !s.active {
		return false
	}
	if s.lastNotified.IsZero() {
		return true
	}
	return !s.NextDue().After(Date(asOf))
}

// NextDue 下一次应该通知的日期，从未通知过时返回零值
func (s NotificationSettings) NextDue() time.Time {
	if s.lastNotified.IsZero() {
		return time.Time{}
	}
	return AddDays(s.lastNotified, s.frequency.Days())
}

func (s NotificationSettings) WithActive(active bool) NotificationSettings {
	s.active = active
	return s
}

func (s NotificationSettings) WithFrequency(frequency Frequency) (NotificationSettings, error) {
	if !frequency.IsValid() {
		return s, fmt.Errorf("%w: frequency = %d", errs.ErrInvalidFrequency, int(frequency))
	}
	s.frequency = frequency
	return s, nil
}

// WithLastNotified 直接覆盖上次通知日期，零值表示从未通知过
func (s NotificationSettings) WithLastNotified(date time.Time) NotificationSettings {
	if date.IsZero() {
		s.lastNotified = time.Time{}
		return s
	}
	s.lastNotified = Date(date)
	return s
}

// MarkNotified 把上次通知日期推进到 now。
// 只有激活的设置才允许标记；日期不会回退
func (s NotificationSettings) MarkNotified(now time.Time) (NotificationSettings, error) {
	if !s.active {
		return s, errs.ErrNotificationInactive
	}
	d := Date(now)
	if d.After(s.lastNotified) {
		s.lastNotified = d
	}
	return s, nil
}

func (s NotificationSettings) String() string {
	last := "never"
	if !s.lastNotified.IsZero() {
		last = s.lastNotified.Format(time.DateOnly)
	}
	return fmt.Sprintf("{active=%t frequency=%s lastNotified=%s}", s.active, s.frequency, last)
}
