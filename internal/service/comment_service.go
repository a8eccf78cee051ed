package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prpradhan13/myBuddy-sub000/internal/cache"
	"github.com/prpradhan13/myBuddy-sub000/internal/domain"
	"github.com/prpradhan13/myBuddy-sub000/internal/metrics"
	"github.com/prpradhan13/myBuddy-sub000/internal/repository"
	"github.com/prpradhan13/myBuddy-sub000/internal/thread"

	log "github.com/sirupsen/logrus"
)

const maxCommentLength = 2000

var (
	ErrCommentNotFound       = errors.New("comment not found")
	ErrParentCommentNotFound = errors.New("parent comment not found on this plan")
	ErrCommentAccessDenied   = errors.New("access denied to delete this comment")
)

// Author is the public profile of a comment's writer.
type Author struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

// ThreadNode is a comment with its author and its replies.
type ThreadNode struct {
	domain.Comment
	Author  *Author       `json:"author,omitempty"` // nil when the writer has no profile
	Replies []*ThreadNode `json:"replies"`
}

type CommentService interface {
	// AddComment adds a top-level comment when parentID is nil, or a reply to a comment on
	// the same plan otherwise.
	AddComment(ctx context.Context, userID string, planID int64, text string, parentID *int64) (*domain.Comment, error)
	// DeleteComment removes a comment written by userID, or any comment on a plan userID created.
	// Replies of a deleted comment surface as top-level comments.
	DeleteComment(ctx context.Context, userID string, commentID int64) error
	GetThread(ctx context.Context, userID string, planID int64) ([]*ThreadNode, error)
}

type commentService struct {
	access      planAccess
	commentRepo repository.CommentRepository
	profileRepo repository.ProfileRepository
	threads     *cache.ThreadCache
	metrics     *metrics.Manager
}

func NewCommentService(
	planRepo repository.PlanRepository,
	shareRepo repository.ShareRepository,
	commentRepo repository.CommentRepository,
	profileRepo repository.ProfileRepository,
	threads *cache.ThreadCache,
	metrics *metrics.Manager,
) CommentService {
	return &commentService{
		access:      planAccess{planRepo: planRepo, shareRepo: shareRepo},
		commentRepo: commentRepo,
		profileRepo: profileRepo,
		threads:     threads,
		metrics:     metrics,
	}
}

func (s *commentService) AddComment(ctx context.Context, userID string, planID int64, text string, parentID *int64) (*domain.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", ErrValidation)
	}
	if len(text) > maxCommentLength {
		return nil, fmt.Errorf("%w: comment is longer than %d characters", ErrValidation, maxCommentLength)
	}

	if _, err := s.access.readable(ctx, userID, planID); err != nil {
		return nil, err
	}

	if parentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrParentCommentNotFound
			}
			return nil, err
		}
		if parent.PlanID != planID {
			return nil, ErrParentCommentNotFound
		}
		id := parent.ID
		parentID = &id
	}

	comment := &domain.Comment{
		PlanID:          planID,
		ParentCommentID: parentID,
		Text:            text,
		UserID:          userID,
	}
	if _, err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.threads.Invalidate(planID)
	s.metrics.CounterComments.Inc()
	return comment, nil
}

func (s *commentService) DeleteComment(ctx context.Context, userID string, commentID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.UserID != userID {
		// plan creators moderate their own discussion
		if _, err := s.access.owned(ctx, userID, comment.PlanID); err != nil {
			if errors.Is(err, ErrPlanAccessDenied) || errors.Is(err, ErrPlanNotFound) {
				return ErrCommentAccessDenied
			}
			return err
		}
	}

	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	s.threads.Invalidate(comment.PlanID)
	return nil
}

// GetThread returns the plan's discussion as reply trees with author profiles attached.
// Only the comment tree is cached; authors are looked up on every call so profile changes
// show at once.
func (s *commentService) GetThread(ctx context.Context, userID string, planID int64) ([]*ThreadNode, error) {
	if _, err := s.access.readable(ctx, userID, planID); err != nil {
		return nil, err
	}

	roots, err := s.tree(ctx, planID)
	if err != nil {
		return nil, err
	}

	authors, err := s.authors(ctx, roots)
	if err != nil {
		return nil, err
	}

	out := make([]*ThreadNode, 0, len(roots))
	for _, root := range roots {
		out = append(out, toThreadNode(root, authors))
	}
	return out, nil
}

// tree returns the reply forest of a plan from the cache, building and caching it on a miss.
func (s *commentService) tree(ctx context.Context, planID int64) ([]*thread.Node, error) {
	var cached []*thread.Node
	if s.threads.Get(planID, &cached) {
		s.metrics.CounterThreadCache.WithLabelValues("hit").Inc()
		return cached, nil
	}
	s.metrics.CounterThreadCache.WithLabelValues("miss").Inc()

	// read before loading: a write that lands meanwhile makes the Set below a no-op
	generation := s.threads.Generation(planID)
	records, err := s.commentRepo.ListByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	roots := thread.BuildTree(records)
	log.Debugf("plan %d: built %d threads from %d comments", planID, len(roots), thread.Count(roots))

	if _, err := s.threads.Set(planID, generation, roots); err != nil {
		log.Warnf("failed to cache thread of plan %d: %s", planID, err)
	}
	return roots, nil
}

func (s *commentService) authors(ctx context.Context, roots []*thread.Node) (map[string]*Author, error) {
	var userIDs []string
	seen := make(map[string]bool)
	thread.Walk(roots, func(n *thread.Node, _ int) {
		if !seen[n.UserID] {
			seen[n.UserID] = true
			userIDs = append(userIDs, n.UserID)
		}
	})
	if len(userIDs) == 0 {
		return map[string]*Author{}, nil
	}

	profiles, err := s.profileRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("load comment authors: %w", err)
	}
	authors := make(map[string]*Author, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		authors[p.UserID] = &Author{
			UserID:      p.UserID,
			Username:    p.Username,
			DisplayName: p.DisplayName(),
			AvatarURL:   p.AvatarURL,
		}
	}
	return authors, nil
}

func toThreadNode(n *thread.Node, authors map[string]*Author) *ThreadNode {
	out := &ThreadNode{
		Comment: n.Comment,
		Author:  authors[n.UserID],
		Replies: make([]*ThreadNode, 0, len(n.Replies)),
	}
	for _, reply := range n.Replies {
		out.Replies = append(out.Replies, toThreadNode(reply, authors))
	}
	return out
}
