package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"

	"promowatch/internal/config"
)

// Sender delivers one message.
type Sender interface {
	Send(ctx context.Context, subject, body string) error
}

type sendFunc func(e *email.Email, addr string, a smtp.Auth) error

func smtpSend(e *email.Email, addr string, a smtp.Auth) error {
	return e.Send(addr, a)
}

// Mailer sends plain-text alerts over SMTP.
type Mailer struct {
	Server   string
	Port     int
	From     string
	Password string
	To       []string

	send sendFunc
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		Server:   cfg.SMTPServer,
		Port:     cfg.SMTPPort,
		From:     cfg.EmailAddress,
		Password: cfg.Password,
		To:       []string{cfg.AlertTo},
		send:     smtpSend,
	}
}

func (m *Mailer) Send(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("promowatch <%s>", m.From)
	mail.To = m.To
	mail.Subject = subject
	mail.Text = []byte(body)

	send := m.send
	if send == nil {
		send = smtpSend
	}

	addr := fmt.Sprintf("%s:%d", m.Server, m.Port)
	err := send(mail, addr, smtp.PlainAuth("", m.From, m.Password, m.Server))
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = send(mail, addr, nil)
	}
	if err != nil {
		return fmt.Errorf("send email to %s: %w", strings.Join(m.To, ","), err)
	}
	return nil
}
