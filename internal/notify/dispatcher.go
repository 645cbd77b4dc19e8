package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/inventopredict/backend-go/internal/domain"
)

// Bucket groups the pending notifications of one recipient for one kind.
type Bucket struct {
	Recipient string
	Kind      domain.NotificationKind
	Products  []string
}

// Result pairs a bucket with its delivery outcome.
type Result struct {
	Bucket Bucket
	Err    error
}

// Dispatcher renders buckets and hands them to the Notifier, one call per
// bucket. A failing recipient never blocks the rest of the batch.
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration
}

func NewDispatcher(notifier Notifier, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{notifier: notifier, timeout: timeout}
}

// Dispatch sends every bucket and reports per-bucket outcomes. Failures are
// wrapped as NotificationError, logged, and isolated to their bucket.
func (d *Dispatcher) Dispatch(ctx context.Context, buckets []Bucket) []Result {
	results := make([]Result, 0, len(buckets))
	for _, bucket := range buckets {
		err := d.send(ctx, bucket)
		if err != nil {
			err = &domain.NotificationError{Recipient: bucket.Recipient, Kind: bucket.Kind, Err: err}
			log.Error().Err(err).
				Str("recipient", bucket.Recipient).
				Str("kind", string(bucket.Kind)).
				Int("products", len(bucket.Products)).
				Msg("notification dispatch failed")
		}
		results = append(results, Result{Bucket: bucket, Err: err})
	}
	return results
}

func (d *Dispatcher) send(ctx context.Context, bucket Bucket) error {
	subject, body := Render(bucket.Kind, bucket.Products)

	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	return d.notifier.Send(sendCtx, bucket.Recipient, subject, body)
}
