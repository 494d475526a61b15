package sender

import (
	"context"
	"time"
)

// SendResult identifies a dispatched message.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// EmailSender delivers customer-facing emails. Sends are
// fire-and-forget: callers log failures and move on.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) (SendResult, error)
}

// SMSSender delivers customer-facing text messages.
type SMSSender interface {
	SendSMS(ctx context.Context, to, msg string) (SendResult, error)
}
