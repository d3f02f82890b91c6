// Package notify sends best-effort email notifications. Callers log failures
// and never roll back the write that triggered the message.
package notify

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Message struct {
	To      string
	Subject string
	Body    string // HTML
}

type Mailer interface {
	Send(msg Message) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   username,
	}
}

func (m *SMTPMailer) Send(msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("notify: empty recipient for %q", msg.Subject)
	}
	mail := gomail.NewMessage()
	mail.SetHeader("From", m.from)
	mail.SetHeader("To", msg.To)
	mail.SetHeader("Subject", msg.Subject)
	mail.SetBody("text/html", msg.Body)

	if err := m.dialer.DialAndSend(mail); err != nil {
		return fmt.Errorf("notify: send to %s: %w", msg.To, err)
	}
	return nil
}

// LogMailer is used when no SMTP credentials are configured.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(msg Message) error {
	m.log.Info("email not sent, mailer disabled", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

// New picks the SMTP mailer when credentials exist.
func New(host string, port int, username, password string, log *zap.Logger) Mailer {
	if username == "" || password == "" {
		return NewLogMailer(log)
	}
	return NewSMTPMailer(host, port, username, password)
}

// Notifier wraps a Mailer with the log-only failure policy.
type Notifier struct {
	mailer Mailer
	log    *zap.Logger
	async  bool
}

func NewNotifier(mailer Mailer, log *zap.Logger) *Notifier {
	return &Notifier{mailer: mailer, log: log}
}

// Async makes Notify deliver from a goroutine.
func (n *Notifier) Async() *Notifier {
	n.async = true
	return n
}

// Notify sends msg and logs, but does not return, any failure.
func (n *Notifier) Notify(msg Message) {
	if n == nil || n.mailer == nil {
		return
	}
	if n.async {
		go n.send(msg)
		return
	}
	n.send(msg)
}

func (n *Notifier) send(msg Message) {
	if err := n.mailer.Send(msg); err != nil {
		n.log.Warn("notification failed", zap.String("to", msg.To), zap.String("subject", msg.Subject), zap.Error(err))
	}
}
