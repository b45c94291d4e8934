package service

import (
	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"github.com/gyansetu/gyansetu-backend/internal/repository"
	"github.com/gyansetu/gyansetu-backend/internal/ws"
	"github.com/gyansetu/gyansetu-backend/pkg/logger"
)

// Pusher delivers real-time events to connected users
type Pusher interface {
	SendToUser(userID uint64, event *ws.Event)
}

// NotificationService writes notifications and serves the user's inbox
type NotificationService interface {
	// Notify records the event for its recipient. Failures are logged, never returned.
	Notify(ev domain.NotificationEvent)
	List(userID uint64, page, limit int) (*domain.NotificationList, error)
	UnreadCount(userID uint64) (int64, error)
	MarkSeen(userID, id uint64) error
	MarkAllSeen(userID uint64) error
	Delete(userID, id uint64) error
}

type notificationService struct {
	repo   repository.NotificationRepository
	pusher Pusher
}

// NewNotificationService creates a new NotificationService. pusher may be nil.
func NewNotificationService(repo repository.NotificationRepository, pusher Pusher) NotificationService {
	return &notificationService{repo: repo, pusher: pusher}
}

func (s *notificationService) Notify(ev domain.NotificationEvent) {
	if ev.RecipientID == 0 || ev.RecipientID == ev.ActorID {
		return
	}

	n := &domain.Notification{
		UserID:     ev.RecipientID,
		Type:       ev.Type,
		Message:    ev.Message,
		QuestionID: ev.QuestionID,
		AnswerID:   ev.AnswerID,
	}
	if err := s.repo.Create(n); err != nil {
		logger.Warn("notification insert failed (user=%d type=%s): %v", ev.RecipientID, ev.Type, err)
		return
	}

	if s.pusher != nil {
		s.pusher.SendToUser(ev.RecipientID, &ws.Event{Type: "notification", Payload: n})
	}
}

func (s *notificationService) List(userID uint64, page, limit int) (*domain.NotificationList, error) {
	page, limit = normalizePage(page, limit)
	items, total, err := s.repo.List(userID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.UnreadCount(userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Notification{}
	}
	return &domain.NotificationList{Items: items, Total: total, UnreadCount: unread}, nil
}

func (s *notificationService) UnreadCount(userID uint64) (int64, error) {
	return s.repo.UnreadCount(userID)
}

// owned loads a notification and checks it belongs to the user
func (s *notificationService) owned(userID, id uint64) (*domain.Notification, error) {
	n, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, common.ErrNotificationNotFound
	}
	return n, nil
}

func (s *notificationService) MarkSeen(userID, id uint64) error {
	if _, err := s.owned(userID, id); err != nil {
		return err
	}
	return s.repo.MarkSeen(id)
}

func (s *notificationService) MarkAllSeen(userID uint64) error {
	return s.repo.MarkAllSeen(userID)
}

func (s *notificationService) Delete(userID, id uint64) error {
	if _, err := s.owned(userID, id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
