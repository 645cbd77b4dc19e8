package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/inventopredict/backend-go/internal/domain"
	"github.com/inventopredict/backend-go/internal/notify"
	"github.com/inventopredict/backend-go/internal/reminder"
)

// SubscriptionItem is one requested product in a reminder subscription.
type SubscriptionItem struct {
	ProductName  string `json:"product_name" binding:"required"`
	StockoutDate string `json:"stockout_date" binding:"required"`
}

// ReminderService creates reminder subscriptions and sends the immediate
// confirmation notification.
type ReminderService struct {
	store      reminder.Store
	dispatcher *notify.Dispatcher
}

func NewReminderService(store reminder.Store, dispatcher *notify.Dispatcher) *ReminderService {
	return &ReminderService{store: store, dispatcher: dispatcher}
}

// Create stores one reminder per valid item and sends a single confirmation
// listing the tracked products. Items with unparsable dates are skipped;
// a confirmation failure does not undo the stored reminders.
func (s *ReminderService) Create(ctx context.Context, email string, items []SubscriptionItem) (int, error) {
	if email == "" || len(items) == 0 {
		return 0, domain.NewDataError("email and at least one product are required")
	}

	reminders := make([]domain.StockoutReminder, 0, len(items))
	tracked := make([]string, 0, len(items))
	for _, item := range items {
		date, err := time.Parse("2006-01-02", item.StockoutDate)
		if err != nil {
			log.Warn().
				Str("product", item.ProductName).
				Str("stockout_date", item.StockoutDate).
				Msg("reminder create: skipping item with invalid date")
			continue
		}

		reminders = append(reminders, domain.StockoutReminder{
			Email:        email,
			ProductName:  item.ProductName,
			StockoutDate: date,
			Stage:        domain.StageCreated,
		})
		tracked = append(tracked, fmt.Sprintf("%s (Stockout: %s)", item.ProductName, item.StockoutDate))
	}

	if len(reminders) == 0 {
		return 0, domain.NewDataError("no valid reminder items")
	}

	created, err := s.store.Create(ctx, reminders)
	if err != nil {
		return 0, err
	}

	s.dispatcher.Dispatch(ctx, []notify.Bucket{{
		Recipient: email,
		Kind:      domain.KindConfirmation,
		Products:  tracked,
	}})

	return len(created), nil
}

// Clear removes every stored reminder and returns the deleted count.
func (s *ReminderService) Clear(ctx context.Context) (int64, error) {
	return s.store.Clear(ctx)
}
