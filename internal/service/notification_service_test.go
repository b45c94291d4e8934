package service

import (
	"errors"
	"testing"

	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"github.com/gyansetu/gyansetu-backend/internal/ws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNotify_SkipsSelfAndMissingRecipient(t *testing.T) {
	repo := new(mockNotificationRepo)
	pusher := new(mockPusher)
	svc := NewNotificationService(repo, pusher)

	svc.Notify(domain.NotificationEvent{Type: domain.NotificationUpvote, RecipientID: 5, ActorID: 5})
	svc.Notify(domain.NotificationEvent{Type: domain.NotificationUpvote, RecipientID: 0, ActorID: 5})

	repo.AssertNotCalled(t, "Create", mock.Anything)
	pusher.AssertNotCalled(t, "SendToUser", mock.Anything, mock.Anything)
}

func TestNotify_StoresAndPushes(t *testing.T) {
	repo := new(mockNotificationRepo)
	pusher := new(mockPusher)
	svc := NewNotificationService(repo, pusher)

	repo.On("Create", mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == 9 && n.Type == domain.NotificationAnswer && n.Message == "New answer"
	})).Return(nil)
	pusher.On("SendToUser", uint64(9), mock.MatchedBy(func(e *ws.Event) bool {
		return e.Type == "notification"
	})).Once()

	svc.Notify(domain.NotificationEvent{
		Type: domain.NotificationAnswer, RecipientID: 9, ActorID: 4, Message: "New answer", QuestionID: u64(1),
	})

	repo.AssertExpectations(t)
	pusher.AssertExpectations(t)
}

func TestNotify_InsertFailureSkipsPush(t *testing.T) {
	repo := new(mockNotificationRepo)
	pusher := new(mockPusher)
	svc := NewNotificationService(repo, pusher)

	repo.On("Create", mock.Anything).Return(errors.New("disk full"))

	assert.NotPanics(t, func() {
		svc.Notify(domain.NotificationEvent{Type: domain.NotificationReply, RecipientID: 9, ActorID: 4})
	})
	pusher.AssertNotCalled(t, "SendToUser", mock.Anything, mock.Anything)
}

func TestNotify_NilPusher(t *testing.T) {
	repo := new(mockNotificationRepo)
	svc := NewNotificationService(repo, nil)
	repo.On("Create", mock.Anything).Return(nil)

	assert.NotPanics(t, func() {
		svc.Notify(domain.NotificationEvent{Type: domain.NotificationWelcome, RecipientID: 3})
	})
	repo.AssertExpectations(t)
}

func TestNotificationList_Offset(t *testing.T) {
	repo := new(mockNotificationRepo)
	svc := NewNotificationService(repo, nil)
	repo.On("List", uint64(9), 20, 20).Return(nil, int64(21), nil)
	repo.On("UnreadCount", uint64(9)).Return(int64(3), nil)

	list, err := svc.List(9, 2, 20)

	assert.NoError(t, err)
	assert.Equal(t, int64(21), list.Total)
	assert.Equal(t, int64(3), list.UnreadCount)
	assert.NotNil(t, list.Items)
}

func TestNotificationMarkSeen_OtherUsersNotification(t *testing.T) {
	repo := new(mockNotificationRepo)
	svc := NewNotificationService(repo, nil)
	repo.On("FindByID", uint64(1)).Return(&domain.Notification{ID: 1, UserID: 2}, nil)

	err := svc.MarkSeen(9, 1)

	assert.ErrorIs(t, err, common.ErrNotificationNotFound)
	repo.AssertNotCalled(t, "MarkSeen", mock.Anything)
}

func TestNotificationDelete_Owner(t *testing.T) {
	repo := new(mockNotificationRepo)
	svc := NewNotificationService(repo, nil)
	repo.On("FindByID", uint64(1)).Return(&domain.Notification{ID: 1, UserID: 9}, nil)
	repo.On("Delete", uint64(1)).Return(nil)

	assert.NoError(t, svc.Delete(9, 1))
	repo.AssertExpectations(t)
}
