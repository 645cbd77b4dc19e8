package reminder

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/inventopredict/backend-go/internal/domain"
	"github.com/inventopredict/backend-go/internal/notify"
)

// Scheduler advances reminders through their notification lifecycle. One
// RunTick call is one scheduled evaluation; callers must ensure ticks do
// not overlap (cron period or an external lock).
type Scheduler struct {
	store      Store
	dispatcher *notify.Dispatcher
	now        func() time.Time
}

// TickSummary reports what one tick did.
type TickSummary struct {
	Evaluated      int
	BucketsSent    int
	BucketsFailed  int
	CommitFailures int
}

func NewScheduler(store Store, dispatcher *notify.Dispatcher, now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{store: store, dispatcher: dispatcher, now: now}
}

// bucketKey identifies one (recipient, kind) notification group.
type bucketKey struct {
	recipient string
	kind      domain.NotificationKind
}

// RunTick evaluates every stored reminder against today, dispatches the
// resulting notification buckets, and commits each bucket's mutations only
// after its notification succeeded. A failed bucket keeps its reminders at
// their prior stage so the next tick retries them.
func (s *Scheduler) RunTick(ctx context.Context) (TickSummary, error) {
	today := truncateToDay(s.now())

	reminders, err := s.store.List(ctx)
	if err != nil {
		return TickSummary{}, err
	}

	summary := TickSummary{Evaluated: len(reminders)}

	order := make([]bucketKey, 0)
	buckets := make(map[bucketKey]*notify.Bucket)
	changes := make(map[bucketKey]*TickChange)

	for _, r := range reminders {
		daysLeft := daysBetween(today, truncateToDay(r.StockoutDate))
		action := domain.Transition(r.Stage, daysLeft)
		if !action.Notify {
			continue
		}

		key := bucketKey{recipient: r.Email, kind: action.Kind}
		bucket, ok := buckets[key]
		if !ok {
			bucket = &notify.Bucket{Recipient: r.Email, Kind: action.Kind}
			buckets[key] = bucket
			changes[key] = &TickChange{Advance: make(map[int64]domain.ReminderStage)}
			order = append(order, key)
		}
		bucket.Products = append(bucket.Products, r.ProductName)

		if action.Delete {
			changes[key].Delete = append(changes[key].Delete, r.ID)
		} else {
			changes[key].Advance[r.ID] = action.NewStage
		}
	}

	if len(order) == 0 {
		log.Info().Time("today", today).Int("reminders", len(reminders)).Msg("reminder tick: nothing due")
		return summary, nil
	}

	toSend := make([]notify.Bucket, 0, len(order))
	for _, key := range order {
		toSend = append(toSend, *buckets[key])
	}

	results := s.dispatcher.Dispatch(ctx, toSend)
	for i, result := range results {
		key := order[i]
		if result.Err != nil {
			// Leave the bucket's reminders untouched; next tick retries.
			summary.BucketsFailed++
			continue
		}

		if err := s.store.ApplyTick(ctx, *changes[key]); err != nil {
			summary.CommitFailures++
			log.Error().Err(err).
				Str("recipient", key.recipient).
				Str("kind", string(key.kind)).
				Msg("reminder tick: bucket commit failed")
			continue
		}
		summary.BucketsSent++
	}

	log.Info().
		Time("today", today).
		Int("evaluated", summary.Evaluated).
		Int("sent", summary.BucketsSent).
		Int("failed", summary.BucketsFailed).
		Msg("reminder tick completed")

	return summary, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
