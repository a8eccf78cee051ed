// Package memory keeps every repository in process memory. It backs the "memory"
// database driver and the service and handler tests.
package memory

import (
	"sync"
	"sync/atomic"

	"github.com/prpradhan13/myBuddy-sub000/internal/domain"
	"github.com/prpradhan13/myBuddy-sub000/internal/repository"
)

// Repositories bundles one in-memory implementation per repository interface.
type Repositories struct {
	Profiles     *ProfileRepo
	Plans        *PlanRepo
	Days         *DayRepo
	Exercises    *ExerciseRepo
	Shares       *ShareRepo
	Achievements *AchievementRepo
	Comments     *CommentRepo
	Reviews      *ReviewRepo
}

func New() *Repositories {
	return &Repositories{
		Profiles:     &ProfileRepo{profiles: make(map[string]domain.Profile)},
		Plans:        &PlanRepo{},
		Days:         &DayRepo{},
		Exercises:    &ExerciseRepo{},
		Shares:       &ShareRepo{},
		Achievements: &AchievementRepo{},
		Comments:     &CommentRepo{},
		Reviews:      &ReviewRepo{},
	}
}

var (
	_ repository.ProfileRepository     = (*ProfileRepo)(nil)
	_ repository.PlanRepository        = (*PlanRepo)(nil)
	_ repository.DayRepository         = (*DayRepo)(nil)
	_ repository.ExerciseRepository    = (*ExerciseRepo)(nil)
	_ repository.ShareRepository       = (*ShareRepo)(nil)
	_ repository.AchievementRepository = (*AchievementRepo)(nil)
	_ repository.CommentRepository     = (*CommentRepo)(nil)
	_ repository.ReviewRepository      = (*ReviewRepo)(nil)
)

// table is an insertion-ordered list of records guarded by a lock, with its own id sequence.
type table[T any] struct {
	mu   sync.RWMutex
	rows []T
	seq  atomic.Int64
}

func (t *table[T]) nextID() int64 {
	return t.seq.Add(1)
}

// filter returns copies of the rows matching keep, in insertion order.
func (t *table[T]) filter(keep func(*T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0)
	for i := range t.rows {
		if keep(&t.rows[i]) {
			out = append(out, t.rows[i])
		}
	}
	return out
}

// first returns a copy of the first row matching keep.
func (t *table[T]) first(keep func(*T) bool) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i := range t.rows {
		if keep(&t.rows[i]) {
			row := t.rows[i]
			return &row, nil
		}
	}
	return nil, repository.ErrNotFound
}

// remove deletes the rows matching drop and reports how many went.
func (t *table[T]) remove(drop func(*T) bool) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := t.rows[:0]
	removed := 0
	for _, row := range t.rows {
		if drop(&row) {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	t.rows = kept
	return removed
}
