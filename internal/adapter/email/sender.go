package email

import "context"

// Sender delivers transactional mail. Order confirmation is best-effort:
// a delivery failure is logged by the caller and never fails the request.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NopSender is used when SMTP is not configured.
type NopSender struct{}

func (NopSender) Send(ctx context.Context, to, subject, body string) error {
	return nil
}
