package domain

import (
	"fmt"
	"maps"
	"strings"
	"time"

	"gitee.com/flycash/notification-scheduler/internal/errs"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Recipient 通知接收者，以用户名唯一标识
type Recipient struct {
	username      string
	email         string
	notifications map[NotificationType]NotificationSettings
}

// NewRecipient 创建接收者。用户名不能为空，邮箱必须合法，
// 每条通知设置的类型和频率都必须合法
func NewRecipient(username, email string, notifications map[NotificationType]NotificationSettings) (Recipient, error) {
	if strings.TrimSpace(username) == "" {
		return Recipient{}, fmt.Errorf("%w: 用户名不能为空", errs.ErrInvalidParameter)
	}
	if err := ValidateEmail(email); err != nil {
		return Recipient{}, err
	}
	for typ, s := range notifications {
		if !typ.IsValid() {
			return Recipient{}, fmt.Errorf("%w: %q", errs.ErrInvalidNotificationType, typ)
		}
		if !s.Frequency().IsValid() {
			return Recipient{}, fmt.Errorf("%w: type = %s", errs.ErrInvalidFrequency, typ)
		}
	}
	n := make(map[NotificationType]NotificationSettings, len(notifications))
	maps.Copy(n, notifications)
	return Recipient{
		username:      username,
		email:         email,
		notifications: n,
	}, nil
}

// DefaultRecipient 新注册用户的默认接收者：每月一次的提醒，从未通知过
func DefaultRecipient(username, email string) (Recipient, error) {
	remind, err := NewNotificationSettings(true, FrequencyMonthly, nil)
	if err != nil {
		return Recipient{}, err
	}
	return NewRecipient(username, email, map[NotificationType]NotificationSettings{
		NotificationTypeRemind: remind,
	})
}

// ValidateEmail 校验邮箱格式
func ValidateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: %q", errs.ErrInvalidEmail, email)
	}
	return nil
}

func (r Recipient) Username() string {
	return r.username
}

func (r Recipient) Email() string {
	return r.email
}

// Notifications 返回通知设置的副本
func (r Recipient) Notifications() map[NotificationType]NotificationSettings {
	n := make(map[NotificationType]NotificationSettings, len(r.notifications))
	maps.Copy(n, r.notifications)
	return n
}

// Settings 某个类型的通知设置
func (r Recipient) Settings(typ NotificationType) (NotificationSettings, bool) {
	s, ok := r.notifications[typ]
	return s, ok
}

func (r Recipient) WithSettings(typ NotificationType, s NotificationSettings) (Recipient, error) {
	if !typ.IsValid() {
		return r, fmt.Errorf("%w: %q", errs.ErrInvalidNotificationType, typ)
	}
	if !s.Frequency().IsValid() {
		return r, fmt.Errorf("%w: type = %s", errs.ErrInvalidFrequency, typ)
	}
	n := r.Notifications()
	n[typ] = s
	r.notifications = n
	return r, nil
}

func (r Recipient) WithoutSettings(typ NotificationType) Recipient {
	n := r.Notifications()
	delete(n, typ)
	r.notifications = n
	return r
}

func (r Recipient) WithEmail(email string) (Recipient, error) {
	if err := ValidateEmail(email); err != nil {
		return r, err
	}
	r.email = email
	return r, nil
}

// MarkNotified 标记某个类型已经在 now 这一天通知过，其余类型的设置保持不变
func (r Recipient) MarkNotified(typ NotificationType, now time.Time) (Recipient, error) {
	s, ok := r.notifications[typ]
	if !ok {
		return r, fmt.Errorf("%w: username = %s, type = %s", errs.ErrSettingsNotFound, r.username, typ)
	}
	s, err := s.MarkNotified(now)
	if err != nil {
		return r, fmt.Errorf("%w: username = %s, type = %s", err, r.username, typ)
	}
	n := r.Notifications()
	n[typ] = s
	r.notifications = n
	return r, nil
}

// IsDue 某个类型在 asOf 这一天是否需要通知，没有该类型设置时不需要
func (r Recipient) IsDue(typ NotificationType, asOf time.Time) bool {
	s, ok := r.notifications[typ]
	return ok && s.IsDue(asOf)
}

func (r Recipient) String() string {
	return fmt.Sprintf("Recipient{username=%s, email=%s, notifications=%v}", r.username, r.email, r.notifications)
}
