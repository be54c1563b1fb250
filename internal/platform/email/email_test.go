package email

import (
	"strings"
	"testing"
)

func TestBuildMessageHeaders(t *testing.T) {
	msg := string(buildMessage("no-reply@example.com", "maya@example.com", "Leave request approved", "Enjoy your time off."))

	for _, want := range []string{
		"From: HR Portal <no-reply@example.com>",
		"To: maya@example.com",
		"Subject: Leave request approved",
		"Auto-Submitted: auto-generated",
		"Enjoy your time off.",
		"This mailbox is not monitored.",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
	if !strings.Contains(msg, "\r\n\r\n") {
		t.Fatal("missing blank line between headers and body")
	}
}
