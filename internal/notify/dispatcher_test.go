package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventopredict/backend-go/internal/domain"
)

func TestDispatch_IsolatesFailures(t *testing.T) {
	sent := make([]string, 0)
	notifier := NotifierFunc(func(ctx context.Context, recipient, subject, body string) error {
		if recipient == "down@example.com" {
			return errors.New("connection reset")
		}
		sent = append(sent, recipient)
		return nil
	})

	buckets := []Bucket{
		{Recipient: "a@example.com", Kind: domain.KindTwoDay, Products: []string{"Widget"}},
		{Recipient: "down@example.com", Kind: domain.KindTwoDay, Products: []string{"Gadget"}},
		{Recipient: "b@example.com", Kind: domain.KindOneDay, Products: []string{"Gizmo"}},
	}

	results := NewDispatcher(notifier, time.Second).Dispatch(context.Background(), buckets)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)

	// Failure in the middle does not stop later buckets.
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, sent)

	var notifErr *domain.NotificationError
	require.ErrorAs(t, results[1].Err, &notifErr)
	assert.Equal(t, "down@example.com", notifErr.Recipient)
	assert.Equal(t, domain.KindTwoDay, notifErr.Kind)
}

func TestDispatch_RendersBucketContent(t *testing.T) {
	var gotSubject, gotBody string
	notifier := NotifierFunc(func(ctx context.Context, recipient, subject, body string) error {
		gotSubject = subject
		gotBody = body
		return nil
	})

	buckets := []Bucket{
		{Recipient: "a@example.com", Kind: domain.KindOneDay, Products: []string{"Widget", "Gadget"}},
	}
	NewDispatcher(notifier, time.Second).Dispatch(context.Background(), buckets)

	assert.Equal(t, "Stockout Alert (1 Day Left)", gotSubject)
	assert.Contains(t, gotBody, "• Widget")
	assert.Contains(t, gotBody, "• Gadget")
	assert.Contains(t, gotBody, "tomorrow")
}

func TestDispatch_AppliesTimeout(t *testing.T) {
	var deadlineSet bool
	notifier := NotifierFunc(func(ctx context.Context, recipient, subject, body string) error {
		_, deadlineSet = ctx.Deadline()
		return nil
	})

	buckets := []Bucket{{Recipient: "a@example.com", Kind: domain.KindToday, Products: []string{"Widget"}}}
	NewDispatcher(notifier, time.Second).Dispatch(context.Background(), buckets)

	assert.True(t, deadlineSet)
}

func TestRender_AllKindsHaveSubjects(t *testing.T) {
	kinds := []domain.NotificationKind{
		domain.KindTwoDay,
		domain.KindOneDay,
		domain.KindToday,
		domain.KindOverdue,
		domain.KindConfirmation,
	}
	for _, kind := range kinds {
		subject, body := Render(kind, []string{"Widget"})
		assert.NotEmpty(t, subject, "kind %s", kind)
		assert.Contains(t, body, "Widget", "kind %s", kind)
		assert.Contains(t, body, "InventOPredict Team", "kind %s", kind)
	}
}

func TestRender_ConfirmationMentionsSchedule(t *testing.T) {
	subject, body := Render(domain.KindConfirmation, []string{"Widget (Stockout: 2024-06-17)"})

	assert.Equal(t, "Stockout Reminders Activated", subject)
	assert.Contains(t, body, "2 days before stockout")
	assert.Contains(t, body, "Widget (Stockout: 2024-06-17)")
}
