package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/inventopredict/backend-go/internal/domain"
	"github.com/inventopredict/backend-go/internal/reminder"
)

const reminderSchema = `
CREATE TABLE IF NOT EXISTS stockout_reminders (
    id             BIGSERIAL PRIMARY KEY,
    email          TEXT NOT NULL,
    product_name   TEXT NOT NULL,
    stockout_date  DATE NOT NULL,
    reminder_stage INT  NOT NULL DEFAULT 0,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_stockout_reminders_date
    ON stockout_reminders (stockout_date);
`

// ReminderRepository is the Postgres-backed reminder store. Tick mutations
// for one recipient bucket commit as a single transaction.
type ReminderRepository struct {
	db *DB
}

func NewReminderRepository(db *DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// compile-time interface check
var _ reminder.Store = (*ReminderRepository)(nil)

// EnsureSchema creates the reminder table when missing.
func (r *ReminderRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, reminderSchema); err != nil {
		return fmt.Errorf("error creating reminder schema: %w", err)
	}
	return nil
}

func (r *ReminderRepository) List(ctx context.Context) ([]domain.StockoutReminder, error) {
	query := `
		SELECT id, email, product_name, stockout_date, reminder_stage, created_at
		FROM stockout_reminders
		ORDER BY id
	`

	var reminders []domain.StockoutReminder
	if err := r.db.SelectContext(ctx, &reminders, query); err != nil {
		return nil, fmt.Errorf("error listing reminders: %w", err)
	}

	return reminders, nil
}

func (r *ReminderRepository) Create(ctx context.Context, reminders []domain.StockoutReminder) ([]domain.StockoutReminder, error) {
	created := make([]domain.StockoutReminder, 0, len(reminders))

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO stockout_reminders (email, product_name, stockout_date, reminder_stage)
			VALUES ($1, $2, $3, $4)
			RETURNING id, email, product_name, stockout_date, reminder_stage, created_at
		`
		for _, rem := range reminders {
			var row domain.StockoutReminder
			if err := tx.GetContext(ctx, &row, query,
				rem.Email, rem.ProductName, rem.StockoutDate, int(domain.StageCreated)); err != nil {
				return fmt.Errorf("error inserting reminder for %s: %w", rem.ProductName, err)
			}
			created = append(created, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (r *ReminderRepository) ApplyTick(ctx context.Context, change reminder.TickChange) error {
	if change.Empty() {
		return nil
	}

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		for id, stage := range change.Advance {
			// Guard against regression at the store level too.
			_, err := tx.ExecContext(ctx, `
				UPDATE stockout_reminders
				SET reminder_stage = $1
				WHERE id = $2 AND reminder_stage < $1
			`, int(stage), id)
			if err != nil {
				return fmt.Errorf("error advancing reminder %d: %w", id, err)
			}
		}

		if len(change.Delete) > 0 {
			_, err := tx.ExecContext(ctx, `
				DELETE FROM stockout_reminders WHERE id = ANY($1::bigint[])
			`, pq.Array(change.Delete))
			if err != nil {
				return fmt.Errorf("error deleting reminders: %w", err)
			}
		}

		return nil
	})
}

func (r *ReminderRepository) Clear(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM stockout_reminders`)
	if err != nil {
		return 0, fmt.Errorf("error clearing reminders: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}
