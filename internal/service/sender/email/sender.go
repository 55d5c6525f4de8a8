package email

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gitee.com/flycash/notification-scheduler/internal/domain"
	"gitee.com/flycash/notification-scheduler/internal/errs"
	"gitee.com/flycash/notification-scheduler/internal/service/sender"
	"github.com/gotomicro/ego/core/elog"
	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"
)

// Config 邮件发送配置
type Config struct {
	Host      string              `yaml:"host"`
	Port      int                 `yaml:"port"`
	Username  string              `yaml:"username"`
	Password  string              `yaml:"password"`
	From      string              `yaml:"from"`
	Templates map[string]Template `yaml:"templates"`
}

// Template 某种通知类型的邮件模板
type Template struct {
	Subject string `yaml:"subject"`
	// Text 正文，%s 会被替换成用户名
	Text string `yaml:"text"`
	// Attachment 附件的文件名，带附件的通知类型必须配置
	Attachment string `yaml:"attachment"`
}

// Dialer 负责投递邮件，生产环境就是 gomail.Dialer
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

var _ sender.Sender = (*Sender)(nil)

type Sender struct {
	dialer    Dialer
	from      string
	templates map[domain.NotificationType]Template
	logger    *elog.Component
}

func NewSender(cfg Config) *Sender {
	return NewSenderWithDialer(cfg, gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password))
}

func NewSenderWithDialer(cfg Config, dialer Dialer) *Sender {
	templates := make(map[domain.NotificationType]Template, len(cfg.Templates))
	for typ, tpl := range cfg.Templates {
		// 配置中心可能会把 key 转成小写
		templates[domain.NotificationType(strings.ToUpper(typ))] = tpl
	}
	return &Sender{
		dialer:    dialer,
		from:      cfg.From,
		templates: templates,
		logger:    elog.DefaultLogger,
	}
}

// Validate 检查每种通知类型都有可用的模板
func (s *Sender) Validate() error {
	for _, typ := range domain.NotificationTypes() {
		tpl, ok := s.templates[typ]
		if !ok || tpl.Subject == "" || tpl.Text == "" {
			return fmt.Errorf("%w: 缺少 %s 的邮件模板", errs.ErrInvalidParameter, typ)
		}
		if typ.RequiresAttachment() && tpl.Attachment == "" {
			return fmt.Errorf("%w: %s 的邮件模板缺少附件文件名", errs.ErrInvalidParameter, typ)
		}
	}
	return nil
}

func (s *Sender) Send(ctx context.Context, typ domain.NotificationType, recipient domain.Recipient, attachment []byte) error {
	tpl, ok := s.templates[typ]
	if !ok {
		return fmt.Errorf("%w: 没有 %s 的邮件模板", errs.ErrDeliveryFailed, typ)
	}
	if len(attachment) > 0 && tpl.Attachment == "" {
		return fmt.Errorf("%w: %s 的邮件模板没有配置附件文件名", errs.ErrDeliveryFailed, typ)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrDeliveryFailed, err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", recipient.Email())
	m.SetHeader("Subject", tpl.Subject)
	m.SetBody("text/plain", fmt.Sprintf(tpl.Text, recipient.Username()))
	if len(attachment) > 0 {
		m.Attach(tpl.Attachment, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachment)
			return err
		}))
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrDeliveryFailed,
			errors.Wrapf(err, "发送邮件给 %s 失败", recipient.Email()))
	}
	s.logger.Info("邮件发送成功",
		elog.String("username", recipient.Username()),
		elog.String("type", typ.String()))
	return nil
}
