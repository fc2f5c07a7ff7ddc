package ports

import "context"

// Mailer dispatches transactional email through the external provider.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
