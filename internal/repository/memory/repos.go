package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prpradhan13/myBuddy-sub000/internal/domain"
	"github.com/prpradhan13/myBuddy-sub000/internal/repository"
)

type ProfileRepo struct {
	mu       sync.RWMutex
	profiles map[string]domain.Profile
}

func (r *ProfileRepo) Upsert(_ context.Context, profile *domain.Profile) error {
	if profile.UserID == "" || profile.Username == "" {
		return errors.New("profile requires userId and username")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.profiles {
		if id != profile.UserID && p.Username == profile.Username {
			return repository.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	if existing, ok := r.profiles[profile.UserID]; ok {
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	r.profiles[profile.UserID] = *profile
	return nil
}

func (r *ProfileRepo) GetByID(_ context.Context, userID string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *ProfileRepo) GetByIDs(_ context.Context, userIDs []string) ([]domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Profile{}
	seen := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := r.profiles[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type PlanRepo struct {
	table[domain.Plan]
}

func (r *PlanRepo) Create(_ context.Context, plan *domain.Plan) (int64, error) {
	if plan.CreatorID == "" || plan.Name == "" {
		return 0, errors.New("plan requires creatorId and name")
	}
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	plan.ID = r.nextID()
	r.rows = append(r.rows, *plan)
	return plan.ID, nil
}

func (r *PlanRepo) GetByID(_ context.Context, id int64) (*domain.Plan, error) {
	return r.first(func(p *domain.Plan) bool { return p.ID == id })
}

func (r *PlanRepo) ListByCreator(_ context.Context, creatorID string) ([]domain.Plan, error) {
	return newestFirst(r.filter(func(p *domain.Plan) bool { return p.CreatorID == creatorID })), nil
}

func (r *PlanRepo) ListPublic(_ context.Context) ([]domain.Plan, error) {
	return newestFirst(r.filter(func(p *domain.Plan) bool { return p.IsPublic })), nil
}

func newestFirst(plans []domain.Plan) []domain.Plan {
	for i, j := 0, len(plans)-1; i < j; i, j = i+1, j-1 {
		plans[i], plans[j] = plans[j], plans[i]
	}
	return plans
}

func (r *PlanRepo) Update(_ context.Context, plan *domain.Plan) error {
	if plan.ID == 0 {
		return errors.New("plan ID is required for update")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID != plan.ID {
			continue
		}
		plan.UpdatedAt = time.Now().UTC()
		r.rows[i].Name = plan.Name
		r.rows[i].Description = plan.Description
		r.rows[i].IsPublic = plan.IsPublic
		r.rows[i].UpdatedAt = plan.UpdatedAt
		return nil
	}
	return repository.ErrNotFound
}

func (r *PlanRepo) Delete(_ context.Context, id int64, creatorID string) error {
	if r.remove(func(p *domain.Plan) bool { return p.ID == id && p.CreatorID == creatorID }) == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type DayRepo struct {
	table[domain.Day]
}

func (r *DayRepo) Create(_ context.Context, day *domain.Day) (int64, error) {
	if day.PlanID == 0 || day.WeekNumber < 1 || day.DayName == "" {
		return 0, errors.New("day requires planId, a positive weekNumber and dayName")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.rows {
		if d.PlanID == day.PlanID && d.WeekNumber == day.WeekNumber && d.DayName == day.DayName {
			return 0, repository.ErrDuplicate
		}
	}
	day.ID = r.nextID()
	now := time.Now().UTC()
	day.CreatedAt = now
	day.UpdatedAt = now
	r.rows = append(r.rows, *day)
	return day.ID, nil
}

func (r *DayRepo) GetByID(_ context.Context, id int64) (*domain.Day, error) {
	return r.first(func(d *domain.Day) bool { return d.ID == id })
}

func (r *DayRepo) ListByPlan(_ context.Context, planID int64) ([]domain.Day, error) {
	days := r.filter(func(d *domain.Day) bool { return d.PlanID == planID })
	sort.SliceStable(days, func(i, j int) bool { return days[i].WeekNumber < days[j].WeekNumber })
	return days, nil
}

func (r *DayRepo) DeleteByPlan(_ context.Context, planID int64) error {
	r.remove(func(d *domain.Day) bool { return d.PlanID == planID })
	return nil
}

type ExerciseRepo struct {
	table[domain.Exercise]
	setSeq atomic.Int64
}

func (r *ExerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (int64, error) {
	if exercise.DayID == 0 || exercise.PlanID == 0 || exercise.Name == "" {
		return 0, errors.New("exercise requires dayId, planId and name")
	}
	sets := make([]domain.TargetSet, len(exercise.Sets))
	for i, s := range exercise.Sets {
		s.ID = r.setSeq.Add(1)
		sets[i] = s
	}
	exercise.Sets = sets
	exercise.ID = r.nextID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	stored := *exercise
	stored.Sets = append([]domain.TargetSet(nil), sets...)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, stored)
	return exercise.ID, nil
}

func (r *ExerciseRepo) GetByID(_ context.Context, id int64) (*domain.Exercise, error) {
	ex, err := r.first(func(e *domain.Exercise) bool { return e.ID == id })
	if err != nil {
		return nil, err
	}
	ex.Sets = append([]domain.TargetSet{}, ex.Sets...)
	return ex, nil
}

func (r *ExerciseRepo) ListByDay(_ context.Context, dayID int64) ([]domain.Exercise, error) {
	return copySets(r.filter(func(e *domain.Exercise) bool { return e.DayID == dayID })), nil
}

func (r *ExerciseRepo) ListByPlan(_ context.Context, planID int64) ([]domain.Exercise, error) {
	return copySets(r.filter(func(e *domain.Exercise) bool { return e.PlanID == planID })), nil
}

func copySets(exercises []domain.Exercise) []domain.Exercise {
	for i := range exercises {
		exercises[i].Sets = append([]domain.TargetSet{}, exercises[i].Sets...)
	}
	return exercises
}

func (r *ExerciseRepo) DeleteByPlan(_ context.Context, planID int64) error {
	r.remove(func(e *domain.Exercise) bool { return e.PlanID == planID })
	return nil
}

type ShareRepo struct {
	table[domain.Share]
}

func (r *ShareRepo) Create(_ context.Context, share *domain.Share) (int64, error) {
	if share.PlanID == 0 || share.CreatorID == "" || share.RecipientID == "" {
		return 0, errors.New("share requires planId, creatorId and recipientId")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.rows {
		if s.PlanID == share.PlanID && s.RecipientID == share.RecipientID {
			return 0, repository.ErrDuplicate
		}
	}
	share.ID = r.nextID()
	share.SharedAt = time.Now().UTC()
	r.rows = append(r.rows, *share)
	return share.ID, nil
}

func (r *ShareRepo) GetByID(_ context.Context, id int64) (*domain.Share, error) {
	return r.first(func(s *domain.Share) bool { return s.ID == id })
}

func (r *ShareRepo) GetByPlanAndRecipient(_ context.Context, planID int64, recipientID string) (*domain.Share, error) {
	return r.first(func(s *domain.Share) bool { return s.PlanID == planID && s.RecipientID == recipientID })
}

func (r *ShareRepo) ListByPlan(_ context.Context, planID int64) ([]domain.Share, error) {
	return r.filter(func(s *domain.Share) bool { return s.PlanID == planID }), nil
}

func (r *ShareRepo) ListByRecipient(_ context.Context, recipientID string) ([]domain.Share, error) {
	return r.filter(func(s *domain.Share) bool { return s.RecipientID == recipientID }), nil
}

func (r *ShareRepo) Delete(_ context.Context, id int64) error {
	if r.remove(func(s *domain.Share) bool { return s.ID == id }) == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type AchievementRepo struct {
	table[domain.Achievement]
}

func (r *AchievementRepo) Create(_ context.Context, achievement *domain.Achievement) (int64, error) {
	if achievement.ShareID == 0 || achievement.SetID == 0 || achievement.RecipientID == "" {
		return 0, errors.New("achievement requires shareId, setId and recipientId")
	}
	achievement.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()
	achievement.ID = r.nextID()
	r.rows = append(r.rows, *achievement)
	return achievement.ID, nil
}

func (r *AchievementRepo) ListByShare(_ context.Context, shareID int64) ([]domain.Achievement, error) {
	return r.filter(func(a *domain.Achievement) bool { return a.ShareID == shareID }), nil
}

func (r *AchievementRepo) DeleteByShare(_ context.Context, shareID int64) error {
	r.remove(func(a *domain.Achievement) bool { return a.ShareID == shareID })
	return nil
}

type CommentRepo struct {
	table[domain.Comment]
}

func (r *CommentRepo) Create(_ context.Context, comment *domain.Comment) (int64, error) {
	if comment.PlanID == 0 || comment.UserID == "" || comment.Text == "" {
		return 0, errors.New("comment requires planId, userId and text")
	}
	comment.CreatedAt = time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()
	comment.ID = r.nextID()
	r.rows = append(r.rows, *comment)
	return comment.ID, nil
}

func (r *CommentRepo) GetByID(_ context.Context, id int64) (*domain.Comment, error) {
	return r.first(func(c *domain.Comment) bool { return c.ID == id })
}

func (r *CommentRepo) ListByPlan(_ context.Context, planID int64) ([]domain.Comment, error) {
	return r.filter(func(c *domain.Comment) bool { return c.PlanID == planID }), nil
}

func (r *CommentRepo) Delete(_ context.Context, id int64) error {
	if r.remove(func(c *domain.Comment) bool { return c.ID == id }) == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CommentRepo) DeleteByPlan(_ context.Context, planID int64) error {
	r.remove(func(c *domain.Comment) bool { return c.PlanID == planID })
	return nil
}

type ReviewRepo struct {
	table[domain.Review]
}

func (r *ReviewRepo) Create(_ context.Context, review *domain.Review) (int64, error) {
	if review.PlanID == 0 || review.UserID == "" {
		return 0, errors.New("review requires planId and userId")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rv := range r.rows {
		if rv.PlanID == review.PlanID && rv.UserID == review.UserID {
			return 0, repository.ErrDuplicate
		}
	}
	review.ID = r.nextID()
	now := time.Now().UTC()
	review.CreatedAt = now
	review.UpdatedAt = now
	r.rows = append(r.rows, *review)
	return review.ID, nil
}

func (r *ReviewRepo) ListByPlan(_ context.Context, planID int64) ([]domain.Review, error) {
	reviews := r.filter(func(rv *domain.Review) bool { return rv.PlanID == planID })
	sort.SliceStable(reviews, func(i, j int) bool { return reviews[i].ID > reviews[j].ID })
	return reviews, nil
}

func (r *ReviewRepo) Summary(_ context.Context, planID int64) (*domain.ReviewSummary, error) {
	summary := &domain.ReviewSummary{PlanID: planID}
	total := 0
	for _, rv := range r.filter(func(rv *domain.Review) bool { return rv.PlanID == planID }) {
		summary.Count++
		total += rv.Rating
	}
	if summary.Count > 0 {
		summary.AverageRating = float64(total) / float64(summary.Count)
	}
	return summary, nil
}

func (r *ReviewRepo) DeleteByPlan(_ context.Context, planID int64) error {
	r.remove(func(rv *domain.Review) bool { return rv.PlanID == planID })
	return nil
}
