package notify

import "context"

// Notifier is the external delivery capability. The reminder engine only
// depends on this signature; SMTP is one implementation.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(ctx context.Context, recipient, subject, body string) error

func (f NotifierFunc) Send(ctx context.Context, recipient, subject, body string) error {
	return f(ctx, recipient, subject, body)
}
