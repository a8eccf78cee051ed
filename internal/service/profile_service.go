package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/prpradhan13/myBuddy-sub000/internal/domain"
	"github.com/prpradhan13/myBuddy-sub000/internal/repository"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUsernameTaken   = errors.New("username is already taken")
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.]{3,30}$`)

type ProfileService interface {
	UpsertProfile(ctx context.Context, userID, username, fullName, avatarURL string) (*domain.Profile, error)
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
}

type profileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

// UpsertProfile creates the caller's profile on first use and replaces it afterwards.
func (s *profileService) UpsertProfile(ctx context.Context, userID, username, fullName, avatarURL string) (*domain.Profile, error) {
	username = strings.TrimSpace(username)
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", ErrValidation)
	}
	if !usernamePattern.MatchString(username) {
		return nil, fmt.Errorf("%w: username must be 3-30 letters, digits, '_' or '.'", ErrValidation)
	}

	profile := &domain.Profile{
		UserID:    userID,
		Username:  username,
		FullName:  strings.TrimSpace(fullName),
		AvatarURL: strings.TrimSpace(avatarURL),
	}
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}
