package notify

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pulsehr/feedback-flow/internal/core/ports"
)

func TestRender_KnownKinds(t *testing.T) {
	cases := []struct {
		kind        ports.NotificationKind
		fields      map[string]string
		wantSubject string
		wantInBody  []string
	}{
		{
			kind:        ports.NotifyRequestLink,
			fields:      map[string]string{"client_name": "Bob", "feedback_link": "http://app.local/feedback/tok-1"},
			wantSubject: "Feedback Request",
			wantInBody:  []string{"Bob", "http://app.local/feedback/tok-1"},
		},
		{
			kind:        ports.NotifyHRSubmitted,
			fields:      map[string]string{"hr_name": "Asha", "client_name": "Bob"},
			wantSubject: "Feedback Submitted",
			wantInBody:  []string{"Bob"},
		},
		{
			kind:        ports.NotifyThankYou,
			fields:      map[string]string{"client_name": "Bob"},
			wantSubject: "Thank You for Your Feedback",
			wantInBody:  []string{"Bob"},
		},
	}
	for _, tc := range cases {
		subject, body, err := render(ports.Notification{Kind: tc.kind, Fields: tc.fields})
		if err != nil {
			t.Fatalf("render(%s) error: %v", tc.kind, err)
		}
		if subject != tc.wantSubject {
			t.Errorf("render(%s) subject = %q, want %q", tc.kind, subject, tc.wantSubject)
		}
		for _, want := range tc.wantInBody {
			if !strings.Contains(body, want) {
				t.Errorf("render(%s) body %q missing %q", tc.kind, body, want)
			}
		}
	}
}

func TestRender_UnknownKind(t *testing.T) {
	if _, _, err := render(ports.Notification{Kind: "carrier-pigeon"}); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestLogNotifier_Send(t *testing.T) {
	var buf strings.Builder
	n := NewLogNotifier(zerolog.New(&buf))

	res := n.Send(context.Background(), ports.Notification{
		Kind:      ports.NotifyThankYou,
		Recipient: "bob@y.com",
		Fields:    map[string]string{"client_name": "Bob"},
	})
	if !res.OK {
		t.Fatalf("send failed: %v", res.Err)
	}
	out := buf.String()
	if !strings.Contains(out, "bob@y.com") || !strings.Contains(out, "thank-you") {
		t.Fatalf("log output missing fields: %s", out)
	}
}

func TestLogNotifier_CancelledContext(t *testing.T) {
	n := NewLogNotifier(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := n.Send(ctx, ports.Notification{Kind: ports.NotifyThankYou, Fields: map[string]string{}})
	if res.OK {
		t.Fatalf("expected failure for cancelled context")
	}
}

func TestLogNotifier_UnknownKind(t *testing.T) {
	n := NewLogNotifier(zerolog.Nop())
	res := n.Send(context.Background(), ports.Notification{Kind: "carrier-pigeon"})
	if res.OK {
		t.Fatalf("expected failure for unknown kind")
	}
}
