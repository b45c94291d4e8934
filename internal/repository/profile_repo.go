package repository

import (
	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"gorm.io/gorm"
)

// ProfileRepository profile data access
type ProfileRepository interface {
	FindByID(id uint64) (*domain.Profile, error)
	FindByEmail(email string) (*domain.Profile, error)
	FindByIDs(ids []uint64) (map[uint64]*domain.Profile, error)
	Create(profile *domain.Profile) error
	UpdateProfile(id uint64, displayName string, bio *string) error
	UpdateRole(id uint64, role domain.Role) error
	Leaderboard(limit int) ([]domain.LeaderboardEntry, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByID(id uint64) (*domain.Profile, error) {
	var p domain.Profile
	if err := r.db.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, notFound(err, common.ErrUserNotFound)
	}
	return &p, nil
}

func (r *profileRepository) FindByEmail(email string) (*domain.Profile, error) {
	var p domain.Profile
	if err := r.db.Where("email = ?", email).First(&p).Error; err != nil {
		return nil, notFound(err, common.ErrUserNotFound)
	}
	return &p, nil
}

func (r *profileRepository) FindByIDs(ids []uint64) (map[uint64]*domain.Profile, error) {
	result := make(map[uint64]*domain.Profile, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var profiles []*domain.Profile
	if err := r.db.Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for _, p := range profiles {
		result[p.ID] = p
	}
	return result, nil
}

func (r *profileRepository) Create(profile *domain.Profile) error {
	if err := r.db.Create(profile).Error; err != nil {
		if isDuplicateKey(err) {
			return common.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *profileRepository) UpdateProfile(id uint64, displayName string, bio *string) error {
	return r.db.Model(&domain.Profile{}).Where("id = ?", id).Updates(map[string]interface{}{
		"display_name": displayName,
		"bio":          bio,
	}).Error
}

func (r *profileRepository) UpdateRole(id uint64, role domain.Role) error {
	return r.db.Model(&domain.Profile{}).Where("id = ?", id).Update("role", role).Error
}

func (r *profileRepository) Leaderboard(limit int) ([]domain.LeaderboardEntry, error) {
	var profiles []domain.Profile
	if err := r.db.Where("karma_points > 0").
		Order("karma_points DESC, id ASC").
		Limit(limit).
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	entries := make([]domain.LeaderboardEntry, 0, len(profiles))
	for i, p := range profiles {
		entries = append(entries, domain.LeaderboardEntry{
			Rank:        i + 1,
			UserID:      p.ID,
			DisplayName: p.DisplayName,
			Role:        p.Role,
			KarmaPoints: p.KarmaPoints,
		})
	}
	return entries, nil
}
