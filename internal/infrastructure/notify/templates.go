// Package notify provides the delivery backends behind ports.Notifier: a
// zerolog sink for demo and test runs, and an SMTP backend for real mail.
package notify

import (
	"fmt"

	"github.com/pulsehr/feedback-flow/internal/core/ports"
)

type template struct {
	subject string
	body    func(fields map[string]string) string
}

var templates = map[ports.NotificationKind]template{
	ports.NotifyRequestLink: {
		subject: "Feedback Request",
		body: func(f map[string]string) string {
			return fmt.Sprintf("Hello %s,\n\nPlease complete your feedback form at: %s\n",
				f["client_name"], f["feedback_link"])
		},
	},
	ports.NotifyHRSubmitted: {
		subject: "Feedback Submitted",
		body: func(f map[string]string) string {
			return fmt.Sprintf("%s has submitted their feedback.\n", f["client_name"])
		},
	},
	ports.NotifyThankYou: {
		subject: "Thank You for Your Feedback",
		body: func(f map[string]string) string {
			return fmt.Sprintf("Hello %s, thank you for your valuable feedback!\n", f["client_name"])
		},
	},
}

// render resolves a notification to its subject and body.
func render(n ports.Notification) (subject, body string, err error) {
	tpl, ok := templates[n.Kind]
	if !ok {
		return "", "", fmt.Errorf("unknown notification kind %q", n.Kind)
	}
	return tpl.subject, tpl.body(n.Fields), nil
}
