package utils

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/manjiriciklum/WellnessSage-sub000/models"
)

// Mailer sends transactional mail through SES. Without a configured sender
// address it stays disabled and sends become no-ops.
type Mailer struct {
	client *ses.Client
	sender string
}

func NewMailer(region, sender string) (*Mailer, error) {
	m := &Mailer{sender: sender}
	if sender == "" {
		log.Println("mailer: SES_SENDER not set, email disabled")
		return m, nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("mailer: load aws config: %w", err)
	}
	m.client = ses.NewFromConfig(cfg)
	return m, nil
}

func (m *Mailer) Enabled() bool { return m.client != nil }

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	if !m.Enabled() {
		return nil
	}
	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body:    &types.Body{Text: &types.Content{Data: aws.String(body)}},
		},
		Source: aws.String(m.sender),
	})
	if err != nil {
		log.Printf("mailer: send to %s failed: %v", to, err)
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}

// SendReminderDigest mails the user's upcoming reminders as a plain-text list.
func (m *Mailer) SendReminderDigest(ctx context.Context, to string, reminders []models.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString("Here is what you have coming up:\n\n")
	for _, r := range reminders {
		fmt.Fprintf(&b, "  - %s at %s", r.Title, r.Time)
		if r.Frequency != "" {
			fmt.Fprintf(&b, " (%s)", r.Frequency)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nStay on track!\n")
	return m.send(ctx, to, "Your reminders", b.String())
}

// SendWelcome greets a newly registered user.
func (m *Mailer) SendWelcome(ctx context.Context, to, firstName string) error {
	body := fmt.Sprintf("Hi %s,\n\nYour account is ready. Connect a wearable to start tracking your health data.\n", firstName)
	return m.send(ctx, to, "Welcome to WellnessSage", body)
}
