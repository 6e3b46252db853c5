// internal/notification/notifier.go
// Drop notification emails. Provider selection mirrors the rest of the
// email configuration: sendgrid, smtp, or mock for development.

package notification

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Notifier sends a user the "your weekly drop is live" email.
type Notifier interface {
	SendDropNotification(ctx context.Context, email string, matchCount int) error
}

func dropSubject(matchCount int) string {
	if matchCount == 1 {
		return "Your weekly drop is here — you have a new match"
	}
	return fmt.Sprintf("Your weekly drop is here — you have %d new matches", matchCount)
}

func dropBody(matchCount int) string {
	noun := "matches"
	if matchCount == 1 {
		noun = "match"
	}
	return fmt.Sprintf(
		"This week's drop just went live and you received %d %s.\n\n"+
			"Matches expire in 7 days, so log in and say hello.\n",
		matchCount, noun,
	)
}

// SendGridNotifier sends via the SendGrid API.
type SendGridNotifier struct {
	apiKey   string
	from     string
	fromName string
}

func NewSendGridNotifier(apiKey, from string) *SendGridNotifier {
	return &SendGridNotifier{apiKey: apiKey, from: from, fromName: "DateDrop"}
}

func (n *SendGridNotifier) SendDropNotification(ctx context.Context, email string, matchCount int) error {
	from := mail.NewEmail(n.fromName, n.from)
	to := mail.NewEmail("", email)
	message := mail.NewSingleEmail(from, dropSubject(matchCount), to, dropBody(matchCount), "")

	client := sendgrid.NewSendClient(n.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

// SMTPNotifier sends via plain SMTP.
type SMTPNotifier struct {
	host     string
	port     string
	username string
	password string
	from     string
}

func NewSMTPNotifier(host, port, username, password, from string) *SMTPNotifier {
	return &SMTPNotifier{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (n *SMTPNotifier) SendDropNotification(ctx context.Context, email string, matchCount int) error {
	var message strings.Builder
	fmt.Fprintf(&message, "From: %s\r\n", n.from)
	fmt.Fprintf(&message, "To: %s\r\n", email)
	fmt.Fprintf(&message, "Subject: %s\r\n", dropSubject(matchCount))
	message.WriteString("\r\n")
	message.WriteString(dropBody(matchCount))

	auth := smtp.PlainAuth("", n.username, n.password, n.host)
	addr := fmt.Sprintf("%s:%s", n.host, n.port)
	if err := smtp.SendMail(addr, auth, n.from, []string{email}, []byte(message.String())); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// MockNotifier logs instead of sending. Development only.
type MockNotifier struct{}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (n *MockNotifier) SendDropNotification(ctx context.Context, email string, matchCount int) error {
	log.Printf("[Notification] (mock) drop email to %s: %d matches", email, matchCount)
	return nil
}
