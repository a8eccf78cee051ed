package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prpradhan13/myBuddy-sub000/internal/cache"
	"github.com/prpradhan13/myBuddy-sub000/internal/domain"
	"github.com/prpradhan13/myBuddy-sub000/internal/repository"

	log "github.com/sirupsen/logrus"
)

// --- Error Definitions ---
var (
	ErrDayNotFound      = errors.New("day not found")
	ErrDayExists        = errors.New("plan already has this day in this week")
	ErrExerciseNotFound = errors.New("exercise not found")
)

// DayInput carries the editable fields of a day.
type DayInput struct {
	WeekNumber  int
	DayName     string
	WorkoutName string
	Description string
	IsRestDay   bool
}

// PlanDetail is a plan with its days and each day's exercises, ordered by week and then
// by the order the days were added.
type PlanDetail struct {
	domain.Plan
	Days []DayDetail `json:"days"`
}

type DayDetail struct {
	domain.Day
	Exercises []domain.Exercise `json:"exercises"`
}

type PlanService interface {
	CreatePlan(ctx context.Context, userID, name, description string, isPublic bool) (*domain.Plan, error)
	GetPlanDetail(ctx context.Context, userID string, planID int64) (*PlanDetail, error)
	ListMyPlans(ctx context.Context, userID string) ([]domain.Plan, error)
	ListPublicPlans(ctx context.Context) ([]domain.Plan, error)
	UpdatePlan(ctx context.Context, userID string, planID int64, name, description string, isPublic bool) (*domain.Plan, error)
	// DeletePlan removes the plan with its days, exercises, shares, logged achievements,
	// comments and reviews.
	DeletePlan(ctx context.Context, userID string, planID int64) error

	AddDay(ctx context.Context, userID string, planID int64, in DayInput) (*domain.Day, error)
	ListDays(ctx context.Context, userID string, planID int64) ([]domain.Day, error)
	AddExercise(ctx context.Context, userID string, dayID int64, name, description string, sets []domain.TargetSet) (*domain.Exercise, error)
	ListExercises(ctx context.Context, userID string, dayID int64) ([]domain.Exercise, error)
}

type planService struct {
	access          planAccess
	planRepo        repository.PlanRepository
	dayRepo         repository.DayRepository
	exerciseRepo    repository.ExerciseRepository
	shareRepo       repository.ShareRepository
	achievementRepo repository.AchievementRepository
	commentRepo     repository.CommentRepository
	reviewRepo      repository.ReviewRepository
	threads         *cache.ThreadCache
}

func NewPlanService(
	planRepo repository.PlanRepository,
	dayRepo repository.DayRepository,
	exerciseRepo repository.ExerciseRepository,
	shareRepo repository.ShareRepository,
	achievementRepo repository.AchievementRepository,
	commentRepo repository.CommentRepository,
	reviewRepo repository.ReviewRepository,
	threads *cache.ThreadCache,
) PlanService {
	return &planService{
		access:          planAccess{planRepo: planRepo, shareRepo: shareRepo},
		planRepo:        planRepo,
		dayRepo:         dayRepo,
		exerciseRepo:    exerciseRepo,
		shareRepo:       shareRepo,
		achievementRepo: achievementRepo,
		commentRepo:     commentRepo,
		reviewRepo:      reviewRepo,
		threads:         threads,
	}
}

func (s *planService) CreatePlan(ctx context.Context, userID, name, description string, isPublic bool) (*domain.Plan, error) {
	name = strings.TrimSpace(name)
	if userID == "" || name == "" {
		return nil, fmt.Errorf("%w: plan name is required", ErrValidation)
	}

	plan := &domain.Plan{
		CreatorID:   userID,
		Name:        name,
		Description: description,
		IsPublic:    isPublic,
	}
	if _, err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	log.Debugf("plan %d created by %s", plan.ID, userID)
	return plan, nil
}

// GetPlanDetail returns the full plan for anyone allowed to read it.
func (s *planService) GetPlanDetail(ctx context.Context, userID string, planID int64) (*PlanDetail, error) {
	plan, err := s.access.readable(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	days, err := s.dayRepo.ListByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	exercises, err := s.exerciseRepo.ListByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	byDay := make(map[int64][]domain.Exercise, len(days))
	for _, ex := range exercises {
		byDay[ex.DayID] = append(byDay[ex.DayID], ex)
	}

	detail := &PlanDetail{Plan: *plan, Days: make([]DayDetail, 0, len(days))}
	for _, day := range days {
		dayExercises := byDay[day.ID]
		if dayExercises == nil {
			dayExercises = []domain.Exercise{}
		}
		detail.Days = append(detail.Days, DayDetail{Day: day, Exercises: dayExercises})
	}
	return detail, nil
}

func (s *planService) ListMyPlans(ctx context.Context, userID string) ([]domain.Plan, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", ErrValidation)
	}
	return s.planRepo.ListByCreator(ctx, userID)
}

func (s *planService) ListPublicPlans(ctx context.Context) ([]domain.Plan, error) {
	return s.planRepo.ListPublic(ctx)
}

// UpdatePlan handles updating an existing plan, ensuring ownership.
func (s *planService) UpdatePlan(ctx context.Context, userID string, planID int64, name, description string, isPublic bool) (*domain.Plan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: plan name is required", ErrValidation)
	}

	plan, err := s.access.owned(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	plan.Name = name
	plan.Description = description
	plan.IsPublic = isPublic
	if err := s.planRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) DeletePlan(ctx context.Context, userID string, planID int64) error {
	if _, err := s.access.owned(ctx, userID, planID); err != nil {
		return err
	}

	shares, err := s.shareRepo.ListByPlan(ctx, planID)
	if err != nil {
		return err
	}
	for _, share := range shares {
		if err := s.achievementRepo.DeleteByShare(ctx, share.ID); err != nil {
			return fmt.Errorf("delete achievements of share %d: %w", share.ID, err)
		}
		if err := s.shareRepo.Delete(ctx, share.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("delete share %d: %w", share.ID, err)
		}
	}
	if err := s.commentRepo.DeleteByPlan(ctx, planID); err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}
	s.threads.Invalidate(planID)
	if err := s.reviewRepo.DeleteByPlan(ctx, planID); err != nil {
		return fmt.Errorf("delete reviews: %w", err)
	}
	if err := s.exerciseRepo.DeleteByPlan(ctx, planID); err != nil {
		return fmt.Errorf("delete exercises: %w", err)
	}
	if err := s.dayRepo.DeleteByPlan(ctx, planID); err != nil {
		return fmt.Errorf("delete days: %w", err)
	}

	// The repository filter includes the creator, so ownership holds at the DB level too.
	if err := s.planRepo.Delete(ctx, planID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	log.Infof("plan %d deleted by %s (%d shares revoked)", planID, userID, len(shares))
	return nil
}

// === Days & Exercises ===

func (s *planService) AddDay(ctx context.Context, userID string, planID int64, in DayInput) (*domain.Day, error) {
	in.DayName = strings.TrimSpace(in.DayName)
	if in.WeekNumber < 1 {
		return nil, fmt.Errorf("%w: week number must be at least 1", ErrValidation)
	}
	if in.DayName == "" {
		return nil, fmt.Errorf("%w: day name is required", ErrValidation)
	}

	if _, err := s.access.owned(ctx, userID, planID); err != nil {
		return nil, err
	}

	day := &domain.Day{
		PlanID:      planID,
		WeekNumber:  in.WeekNumber,
		DayName:     in.DayName,
		WorkoutName: in.WorkoutName,
		Description: in.Description,
		IsRestDay:   in.IsRestDay,
	}
	if _, err := s.dayRepo.Create(ctx, day); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDayExists
		}
		return nil, err
	}
	return day, nil
}

func (s *planService) ListDays(ctx context.Context, userID string, planID int64) ([]domain.Day, error) {
	if _, err := s.access.readable(ctx, userID, planID); err != nil {
		return nil, err
	}
	return s.dayRepo.ListByPlan(ctx, planID)
}

func (s *planService) loadDay(ctx context.Context, dayID int64) (*domain.Day, error) {
	day, err := s.dayRepo.GetByID(ctx, dayID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDayNotFound
		}
		return nil, err
	}
	return day, nil
}

func (s *planService) AddExercise(ctx context.Context, userID string, dayID int64, name, description string, sets []domain.TargetSet) (*domain.Exercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: exercise name is required", ErrValidation)
	}

	day, err := s.loadDay(ctx, dayID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.owned(ctx, userID, day.PlanID); err != nil {
		return nil, err
	}
	if day.IsRestDay {
		return nil, fmt.Errorf("%w: rest days have no exercises", ErrValidation)
	}

	if sets == nil {
		sets = []domain.TargetSet{}
	}
	exercise := &domain.Exercise{
		DayID:       day.ID,
		PlanID:      day.PlanID,
		Name:        name,
		Description: description,
		Sets:        sets,
	}
	if _, err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *planService) ListExercises(ctx context.Context, userID string, dayID int64) ([]domain.Exercise, error) {
	day, err := s.loadDay(ctx, dayID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.readable(ctx, userID, day.PlanID); err != nil {
		return nil, err
	}
	return s.exerciseRepo.ListByDay(ctx, dayID)
}
