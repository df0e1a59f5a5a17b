package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/pulsehr/feedback-flow/internal/core/ports"
)

// SMTPConfig holds the transactional-mail relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPNotifier delivers notifications through an SMTP relay via gomail.
type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send delivers one message. Errors are captured in the DeliveryResult and
// never escape; the dial-and-send runs in a goroutine so the context timeout
// bounds the call even when the relay hangs.
func (n *SMTPNotifier) Send(ctx context.Context, msg ports.Notification) ports.DeliveryResult {
	subject, body, err := render(msg)
	if err != nil {
		return ports.DeliveryResult{OK: false, Err: err}
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", msg.Recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	done := make(chan error, 1)
	go func() {
		done <- n.dialer.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		return ports.DeliveryResult{OK: false, Err: fmt.Errorf("smtp send: %w", ctx.Err())}
	case err := <-done:
		if err != nil {
			return ports.DeliveryResult{OK: false, Err: fmt.Errorf("smtp send: %w", err)}
		}
		return ports.DeliveryResult{OK: true}
	}
}
