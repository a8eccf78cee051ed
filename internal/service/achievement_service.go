package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prpradhan13/myBuddy-sub000/internal/achievement"
	"github.com/prpradhan13/myBuddy-sub000/internal/domain"
	"github.com/prpradhan13/myBuddy-sub000/internal/metrics"
	"github.com/prpradhan13/myBuddy-sub000/internal/repository"
	"github.com/prpradhan13/myBuddy-sub000/internal/storage"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrSetNotFound       = errors.New("target set not found in the shared plan")
	ErrExportUnavailable = errors.New("achievement export is not available")
	ErrNotShareRecipient = errors.New("only the recipient of a share can log achievements")
)

type LogAchievementInput struct {
	ExerciseID         int64
	SetID              int64
	AchievedRepetition string
	AchievedWeight     string
}

// OverviewQuery is the caller's selection. A zero Week selects achievement.DefaultWeek and an
// empty Day keeps every day of the week. A zero PageSize uses the configured default.
type OverviewQuery struct {
	Week     int
	Day      string
	Page     int
	PageSize int
}

// AchievementOverview is one page of a share's achievements grouped by week and day, plus
// what the caller needs to render the week/day pickers and pager.
type AchievementOverview struct {
	ShareID      int64               `json:"shareId"`
	Weeks        []int               `json:"weeks"`
	Days         []string            `json:"days"`
	SelectedWeek int                 `json:"selectedWeek"`
	SelectedDay  string              `json:"selectedDay,omitempty"`
	Page         int                 `json:"page"`
	PageSize     int                 `json:"pageSize"`
	TotalGroups  int                 `json:"totalGroups"`
	TotalPages   int                 `json:"totalPages"`
	Groups       []achievement.Group `json:"groups"`
}

type ExportResult struct {
	ObjectKey   string    `json:"objectKey"`
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
	GroupCount  int       `json:"groupCount"`
}

// exportReport is the document written to object storage.
type exportReport struct {
	ShareID     int64               `json:"shareId"`
	PlanID      int64               `json:"planId"`
	RecipientID string              `json:"recipientId"`
	GeneratedAt time.Time           `json:"generatedAt"`
	Groups      []achievement.Group `json:"groups"`
}

type AchievementService interface {
	LogAchievement(ctx context.Context, recipientID string, shareID int64, in LogAchievementInput) (*domain.Achievement, error)
	Overview(ctx context.Context, userID string, shareID int64, q OverviewQuery) (*AchievementOverview, error)
	// Export writes every group of the share to object storage and returns a temporary
	// download link. It fails with ErrExportUnavailable when no storage is configured.
	Export(ctx context.Context, userID string, shareID int64) (*ExportResult, error)
}

type AchievementServiceConfig struct {
	DefaultPageSize int
	MaxPageSize     int
	URLExpiry       time.Duration
}

type achievementService struct {
	planRepo        repository.PlanRepository
	dayRepo         repository.DayRepository
	exerciseRepo    repository.ExerciseRepository
	shareRepo       repository.ShareRepository
	achievementRepo repository.AchievementRepository
	fileStorage     storage.FileStorage // nil when exports are disabled
	cfg             AchievementServiceConfig
	metrics         *metrics.Manager
	now             func() time.Time
}

func NewAchievementService(
	planRepo repository.PlanRepository,
	dayRepo repository.DayRepository,
	exerciseRepo repository.ExerciseRepository,
	shareRepo repository.ShareRepository,
	achievementRepo repository.AchievementRepository,
	fileStorage storage.FileStorage,
	cfg AchievementServiceConfig,
	metrics *metrics.Manager,
) AchievementService {
	if cfg.DefaultPageSize < 1 {
		cfg.DefaultPageSize = 5
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		cfg.MaxPageSize = cfg.DefaultPageSize
	}
	if cfg.URLExpiry <= 0 {
		cfg.URLExpiry = storage.DefaultPresignedURLExpiry
	}
	return &achievementService{
		planRepo:        planRepo,
		dayRepo:         dayRepo,
		exerciseRepo:    exerciseRepo,
		shareRepo:       shareRepo,
		achievementRepo: achievementRepo,
		fileStorage:     fileStorage,
		cfg:             cfg,
		metrics:         metrics,
		now:             time.Now,
	}
}

// LogAchievement records what the recipient achieved for one target set of the shared plan.
// The plan, day and exercise names and the targets are copied onto the record.
func (s *achievementService) LogAchievement(ctx context.Context, recipientID string, shareID int64, in LogAchievementInput) (*domain.Achievement, error) {
	in.AchievedRepetition = strings.TrimSpace(in.AchievedRepetition)
	in.AchievedWeight = strings.TrimSpace(in.AchievedWeight)
	if in.AchievedRepetition == "" && in.AchievedWeight == "" {
		return nil, fmt.Errorf("%w: achieved repetitions or weight is required", ErrValidation)
	}

	share, err := loadShare(ctx, s.shareRepo, shareID)
	if err != nil {
		return nil, err
	}
	if share.RecipientID != recipientID {
		return nil, ErrNotShareRecipient
	}

	exercise, err := s.exerciseRepo.GetByID(ctx, in.ExerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSetNotFound
		}
		return nil, err
	}
	if exercise.PlanID != share.PlanID {
		return nil, ErrSetNotFound
	}
	set, ok := exercise.FindSet(in.SetID)
	if !ok {
		return nil, ErrSetNotFound
	}

	day, err := s.dayRepo.GetByID(ctx, exercise.DayID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDayNotFound
		}
		return nil, err
	}
	plan, err := s.planRepo.GetByID(ctx, share.PlanID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	record := &domain.Achievement{
		ShareID:            share.ID,
		PlanID:             plan.ID,
		DayID:              day.ID,
		ExerciseID:         exercise.ID,
		SetID:              set.ID,
		RecipientID:        recipientID,
		WeekNumber:         day.WeekNumber,
		DayName:            day.DayName,
		WorkoutName:        day.WorkoutName,
		PlanName:           plan.Name,
		ExerciseName:       exercise.Name,
		TargetRepetitions:  set.TargetRepetitions,
		TargetWeight:       set.TargetWeight,
		AchievedRepetition: in.AchievedRepetition,
		AchievedWeight:     in.AchievedWeight,
	}
	if _, err := s.achievementRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	s.metrics.CounterAchievements.Inc()
	return record, nil
}

// loadInvolvedShare returns the share if userID is its creator or recipient.
func (s *achievementService) loadInvolvedShare(ctx context.Context, userID string, shareID int64) (*domain.Share, error) {
	share, err := loadShare(ctx, s.shareRepo, shareID)
	if err != nil {
		return nil, err
	}
	if !share.Involves(userID) {
		return nil, ErrShareAccessDenied
	}
	return share, nil
}

func (s *achievementService) Overview(ctx context.Context, userID string, shareID int64, q OverviewQuery) (*AchievementOverview, error) {
	share, err := s.loadInvolvedShare(ctx, userID, shareID)
	if err != nil {
		return nil, err
	}

	if q.Week == 0 {
		q.Week = achievement.DefaultWeek
	}
	if q.Page == 0 {
		q.Page = 1
	}
	switch {
	case q.PageSize == 0:
		q.PageSize = s.cfg.DefaultPageSize
	case q.PageSize > s.cfg.MaxPageSize:
		q.PageSize = s.cfg.MaxPageSize
	}

	records, err := s.achievementRepo.ListByShare(ctx, share.ID)
	if err != nil {
		return nil, err
	}

	groups := achievement.GroupByWeekAndDay(records)
	filtered := achievement.FilterGroups(groups, q.Week, q.Day)

	return &AchievementOverview{
		ShareID:      share.ID,
		Weeks:        achievement.UniqueWeeks(records),
		Days:         achievement.UniqueDays(records),
		SelectedWeek: q.Week,
		SelectedDay:  q.Day,
		Page:         q.Page,
		PageSize:     q.PageSize,
		TotalGroups:  len(filtered),
		TotalPages:   achievement.PageCount(len(filtered), q.PageSize),
		Groups:       achievement.Paginate(filtered, q.PageSize, q.Page),
	}, nil
}

func (s *achievementService) Export(ctx context.Context, userID string, shareID int64) (*ExportResult, error) {
	if s.fileStorage == nil {
		return nil, ErrExportUnavailable
	}
	share, err := s.loadInvolvedShare(ctx, userID, shareID)
	if err != nil {
		return nil, err
	}

	records, err := s.achievementRepo.ListByShare(ctx, share.ID)
	if err != nil {
		return nil, err
	}
	report := exportReport{
		ShareID:     share.ID,
		PlanID:      share.PlanID,
		RecipientID: share.RecipientID,
		GeneratedAt: s.now().UTC(),
		Groups:      achievement.GroupByWeekAndDay(records).List(),
	}
	body, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}

	objectKey := fmt.Sprintf("exports/%d/%s.json", share.ID, uuid.NewString())
	if err := s.fileStorage.PutObject(ctx, objectKey, "application/json", body); err != nil {
		return nil, fmt.Errorf("store export: %w", err)
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, s.cfg.URLExpiry)
	if err != nil {
		if delErr := s.fileStorage.DeleteObject(ctx, objectKey); delErr != nil {
			log.Warnf("could not remove unreachable export %s: %s", objectKey, delErr)
		}
		return nil, fmt.Errorf("presign export: %w", err)
	}

	s.metrics.CounterExports.Inc()
	log.Infof("exported %d achievement groups of share %d to %s", len(report.Groups), share.ID, objectKey)
	return &ExportResult{
		ObjectKey:   objectKey,
		DownloadURL: url,
		ExpiresAt:   report.GeneratedAt.Add(s.cfg.URLExpiry),
		GroupCount:  len(report.Groups),
	}, nil
}
