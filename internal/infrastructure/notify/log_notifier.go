package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/pulsehr/feedback-flow/internal/core/ports"
)

// LogNotifier writes every notification to the structured log instead of
// delivering it. Used in development and tests as the drop-in stand-in for a
// real transactional-email provider.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Send renders the template and logs it. Only an unknown template kind can fail.
func (n *LogNotifier) Send(ctx context.Context, msg ports.Notification) ports.DeliveryResult {
	subject, body, err := render(msg)
	if err != nil {
		return ports.DeliveryResult{OK: false, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return ports.DeliveryResult{OK: false, Err: err}
	}

	n.log.Info().
		Str("kind", string(msg.Kind)).
		Str("to", msg.Recipient).
		Str("subject", subject).
		Str("body", body).
		Msg("notification (log sink)")

	return ports.DeliveryResult{OK: true}
}
