package service

import (
	"errors"
	"testing"

	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCurrentRole(t *testing.T) {
	repo := new(mockProfileRepo)
	svc := NewIdentityService(repo)

	repo.On("FindByID", uint64(1)).Return(&domain.Profile{ID: 1, Role: domain.RoleAdmin}, nil)
	repo.On("FindByID", uint64(2)).Return(nil, common.ErrUserNotFound)
	repo.On("FindByID", uint64(3)).Return(&domain.Profile{ID: 3, Role: "moderator"}, nil)
	repo.On("FindByID", uint64(4)).Return(nil, errors.New("connection reset"))

	role, err := svc.CurrentRole(1)
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)

	role, err = svc.CurrentRole(2)
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, role, "missing profile defaults to student")

	role, err = svc.CurrentRole(3)
	assert.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, role, "unknown stored role defaults to student")

	_, err = svc.CurrentRole(4)
	assert.Error(t, err)
}

func TestUpdateProfile(t *testing.T) {
	repo := new(mockProfileRepo)
	svc := NewIdentityService(repo)
	bio := "Maths tutor"

	repo.On("FindByID", uint64(1)).Return(&domain.Profile{ID: 1, DisplayName: "Ravi"}, nil)
	repo.On("UpdateProfile", uint64(1), "Ravi K", &bio).Return(nil)

	_, err := svc.UpdateProfile(1, &UpdateProfileRequest{DisplayName: "  Ravi K ", Bio: &bio})
	assert.NoError(t, err)
	repo.AssertCalled(t, "UpdateProfile", uint64(1), "Ravi K", &bio)

	_, err = svc.UpdateProfile(1, &UpdateProfileRequest{DisplayName: "   "})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestSetRole(t *testing.T) {
	superAdmin := Actor{ID: 1, Role: domain.RoleSuperAdmin}

	t.Run("requires superadmin", func(t *testing.T) {
		repo := new(mockProfileRepo)
		svc := NewIdentityService(repo)

		_, err := svc.SetRole(Actor{ID: 2, Role: domain.RoleAdmin}, 5, "admin")

		assert.ErrorIs(t, err, common.ErrForbidden)
		repo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything)
	})

	t.Run("cannot change own role", func(t *testing.T) {
		repo := new(mockProfileRepo)
		svc := NewIdentityService(repo)

		_, err := svc.SetRole(superAdmin, 1, "student")

		assert.ErrorIs(t, err, common.ErrForbidden)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		repo := new(mockProfileRepo)
		svc := NewIdentityService(repo)

		_, err := svc.SetRole(superAdmin, 5, "moderator")

		assert.ErrorIs(t, err, common.ErrInvalidRole)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(mockProfileRepo)
		svc := NewIdentityService(repo)
		repo.On("FindByID", uint64(5)).Return(nil, common.ErrUserNotFound)

		_, err := svc.SetRole(superAdmin, 5, "admin")

		assert.ErrorIs(t, err, common.ErrUserNotFound)
	})

	t.Run("promotes", func(t *testing.T) {
		repo := new(mockProfileRepo)
		svc := NewIdentityService(repo)
		repo.On("FindByID", uint64(5)).Return(&domain.Profile{ID: 5, Role: domain.RoleStudent}, nil)
		repo.On("UpdateRole", uint64(5), domain.RoleAdmin).Return(nil)

		_, err := svc.SetRole(superAdmin, 5, " Admin ")

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
