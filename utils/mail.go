package utils

import (
	"context"
	"os"
	"time"

	"github.com/mailgun/mailgun-go/v4"
)

// SendMail delivers a transactional email through Mailgun. Returns false
// without error when the Mailgun env vars are absent (local development).
func SendMail(to, subject, html string) (bool, error) {
	domain := os.Getenv("MAILGUN_DOMAIN")
	apiKey := os.Getenv("MAILGUN_API_KEY")
	if domain == "" || apiKey == "" {
		return false, nil
	}

	mg := mailgun.NewMailgun(domain, apiKey)
	sender := os.Getenv("MAILGUN_SENDER")
	if sender == "" {
		sender = "LocallyTrip <no-reply@" + domain + ">"
	}

	message := mg.NewMessage(sender, subject, "", to)
	message.SetHtml(html)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, _, err := mg.Send(ctx, message); err != nil {
		return false, err
	}
	return true, nil
}
