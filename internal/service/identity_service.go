package service

import (
	"errors"
	"strings"

	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"github.com/gyansetu/gyansetu-backend/internal/policy"
	"github.com/gyansetu/gyansetu-backend/internal/repository"
)

// IdentityService resolves effective roles and manages profiles
type IdentityService interface {
	// CurrentRole returns the user's role; a missing profile defaults to student.
	// Store errors are returned unchanged and must be treated as unauthenticated.
	CurrentRole(userID uint64) (domain.Role, error)
	GetProfile(userID uint64) (*domain.Profile, error)
	GetPublicProfile(userID uint64) (*domain.PublicProfile, error)
	UpdateProfile(userID uint64, req *UpdateProfileRequest) (*domain.Profile, error)
	SetRole(actor Actor, targetID uint64, role string) (*domain.Profile, error)
}

// UpdateProfileRequest profile fields a user may change
type UpdateProfileRequest struct {
	DisplayName string  `json:"display_name" validate:"required,max=100"`
	Bio         *string `json:"bio" validate:"omitempty,max=1000"`
}

type identityService struct {
	profiles repository.ProfileRepository
}

// NewIdentityService creates a new IdentityService
func NewIdentityService(profiles repository.ProfileRepository) IdentityService {
	return &identityService{profiles: profiles}
}

func (s *identityService) CurrentRole(userID uint64) (domain.Role, error) {
	p, err := s.profiles.FindByID(userID)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return domain.RoleStudent, nil
		}
		return "", err
	}
	r, ok := domain.ParseRole(string(p.Role))
	if !ok {
		return domain.RoleStudent, nil
	}
	return r, nil
}

func (s *identityService) GetProfile(userID uint64) (*domain.Profile, error) {
	return s.profiles.FindByID(userID)
}

func (s *identityService) GetPublicProfile(userID uint64) (*domain.PublicProfile, error) {
	p, err := s.profiles.FindByID(userID)
	if err != nil {
		return nil, err
	}
	pub := p.Public()
	return &pub, nil
}

func (s *identityService) UpdateProfile(userID uint64, req *UpdateProfileRequest) (*domain.Profile, error) {
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		return nil, common.ErrInvalidInput
	}
	if _, err := s.profiles.FindByID(userID); err != nil {
		return nil, err
	}
	if err := s.profiles.UpdateProfile(userID, name, req.Bio); err != nil {
		return nil, err
	}
	return s.profiles.FindByID(userID)
}

func (s *identityService) SetRole(actor Actor, targetID uint64, role string) (*domain.Profile, error) {
	if err := policy.Check(policy.Request{
		Action: policy.ActionManageRoles, ActorID: actor.ID, ActorRole: actor.Role, OwnerID: targetID,
	}); err != nil {
		return nil, err
	}
	r, ok := domain.ParseRole(role)
	if !ok {
		return nil, common.ErrInvalidRole
	}
	if _, err := s.profiles.FindByID(targetID); err != nil {
		return nil, err
	}
	if err := s.profiles.UpdateRole(targetID, r); err != nil {
		return nil, err
	}
	return s.profiles.FindByID(targetID)
}
