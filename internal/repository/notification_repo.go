package repository

import (
	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"gorm.io/gorm"
)

// NotificationRepository notification data access
type NotificationRepository interface {
	Create(n *domain.Notification) error
	FindByID(id uint64) (*domain.Notification, error)
	List(userID uint64, offset, limit int) ([]domain.Notification, int64, error)
	UnreadCount(userID uint64) (int64, error)
	MarkSeen(id uint64) error
	MarkAllSeen(userID uint64) error
	Delete(id uint64) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(n *domain.Notification) error {
	return r.db.Create(n).Error
}

func (r *notificationRepository) FindByID(id uint64) (*domain.Notification, error) {
	var n domain.Notification
	if err := r.db.Where("id = ?", id).First(&n).Error; err != nil {
		return nil, notFound(err, common.ErrNotificationNotFound)
	}
	return &n, nil
}

// List returns notifications for a user, newest first
func (r *notificationRepository) List(userID uint64, offset, limit int) ([]domain.Notification, int64, error) {
	var notifications []domain.Notification
	var total int64

	if err := r.db.Model(&domain.Notification{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

func (r *notificationRepository) UnreadCount(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Notification{}).
		Where("user_id = ? AND seen = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkSeen(id uint64) error {
	return r.db.Model(&domain.Notification{}).
		Where("id = ?", id).
		Update("seen", true).Error
}

func (r *notificationRepository) MarkAllSeen(userID uint64) error {
	return r.db.Model(&domain.Notification{}).
		Where("user_id = ? AND seen = ?", userID, false).
		Update("seen", true).Error
}

func (r *notificationRepository) Delete(id uint64) error {
	return r.db.Where("id = ?", id).Delete(&domain.Notification{}).Error
}
