package reminder

import (
	"context"
	"sort"
	"sync"

	"github.com/inventopredict/backend-go/internal/domain"
)

// TickChange is the unit of work committed for one recipient bucket:
// stage advances and deletions applied together or not at all.
type TickChange struct {
	Advance map[int64]domain.ReminderStage
	Delete  []int64
}

// Empty reports whether the change carries no mutations.
func (c TickChange) Empty() bool {
	return len(c.Advance) == 0 && len(c.Delete) == 0
}

// Store is the reminder collection the scheduler operates on.
type Store interface {
	List(ctx context.Context) ([]domain.StockoutReminder, error)
	Create(ctx context.Context, reminders []domain.StockoutReminder) ([]domain.StockoutReminder, error)
	ApplyTick(ctx context.Context, change TickChange) error
	Clear(ctx context.Context) (int64, error)
}

// MemoryStore is an in-process Store used by tests and single-node setups.
type MemoryStore struct {
	mu        sync.Mutex
	nextID    int64
	reminders map[int64]domain.StockoutReminder
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:    1,
		reminders: make(map[int64]domain.StockoutReminder),
	}
}

func (s *MemoryStore) List(ctx context.Context) ([]domain.StockoutReminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.StockoutReminder, 0, len(s.reminders))
	for _, r := range s.reminders {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) Create(ctx context.Context, reminders []domain.StockoutReminder) ([]domain.StockoutReminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := make([]domain.StockoutReminder, 0, len(reminders))
	for _, r := range reminders {
		r.ID = s.nextID
		r.Stage = domain.StageCreated
		s.nextID++
		s.reminders[r.ID] = r
		created = append(created, r)
	}
	return created, nil
}

func (s *MemoryStore) ApplyTick(ctx context.Context, change TickChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, stage := range change.Advance {
		r, ok := s.reminders[id]
		if !ok {
			continue
		}
		// Stages never regress.
		if stage > r.Stage {
			r.Stage = stage
			s.reminders[id] = r
		}
	}
	for _, id := range change.Delete {
		delete(s.reminders, id)
	}
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(len(s.reminders))
	s.reminders = make(map[int64]domain.StockoutReminder)
	return n, nil
}
