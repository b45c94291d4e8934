package service

import (
	"testing"

	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type replyFixture struct {
	*questionFixture
	replies *mockReplyRepo
	svc     ReplyService
}

func newReplyFixture() *replyFixture {
	f := &replyFixture{questionFixture: newQuestionFixture(), replies: new(mockReplyRepo)}
	f.svc = NewReplyService(f.questions, f.answers, f.replies, f.profiles,
		NewCourseService(f.courses, f.profiles), f.notifier, f.store)
	return f
}

func (f *replyFixture) onGeneralAnswer(answerID, authorID uint64) {
	f.answers.On("FindByID", answerID).Return(&domain.Answer{ID: answerID, QuestionID: 1, AuthorID: authorID}, nil)
	f.questions.On("FindByID", uint64(1)).Return(&domain.Question{ID: 1, AuthorID: 2}, nil)
}

func TestCreateReply_NotifiesAnswerAuthor(t *testing.T) {
	f := newReplyFixture()
	f.onGeneralAnswer(5, 9)
	f.replies.On("Create", mock.MatchedBy(func(r *domain.Reply) bool {
		return r.AnswerID == 5 && r.AuthorID == 7 && r.Content == "Thanks!"
	})).Return(nil)
	f.notifier.On("Notify", mock.MatchedBy(func(ev domain.NotificationEvent) bool {
		return ev.Type == domain.NotificationReply && ev.RecipientID == 9 && ev.ActorID == 7
	})).Once()

	reply, err := f.svc.Create(studentActor, 5, &ContentRequest{Content: "  Thanks!  "})

	require.NoError(t, err)
	assert.Equal(t, "Thanks!", reply.Content)
	f.notifier.AssertExpectations(t)
}

func TestCreateReply_Validation(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		f := newReplyFixture()
		_, err := f.svc.Create(Actor{}, 5, &ContentRequest{Content: "hi"})
		assert.ErrorIs(t, err, common.ErrUnauthorized)
	})

	t.Run("blank content", func(t *testing.T) {
		f := newReplyFixture()
		f.onGeneralAnswer(5, 9)
		_, err := f.svc.Create(studentActor, 5, &ContentRequest{Content: "   "})
		assert.ErrorIs(t, err, common.ErrContentRequired)
		f.replies.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("someone else's image", func(t *testing.T) {
		f := newReplyFixture()
		f.onGeneralAnswer(5, 9)
		_, err := f.svc.Create(studentActor, 5, &ContentRequest{Content: "look", ImagePath: "images/8/x.png"})
		assert.ErrorIs(t, err, common.ErrInvalidInput)
	})

	t.Run("missing answer", func(t *testing.T) {
		f := newReplyFixture()
		f.answers.On("FindByID", uint64(5)).Return(nil, common.ErrAnswerNotFound)
		_, err := f.svc.Create(studentActor, 5, &ContentRequest{Content: "hi"})
		assert.ErrorIs(t, err, common.ErrAnswerNotFound)
	})
}

func TestListReplies_NeverNil(t *testing.T) {
	f := newReplyFixture()
	f.onGeneralAnswer(5, 9)
	f.replies.On("ListByAnswer", uint64(5)).Return(nil, nil)

	replies, err := f.svc.ListByAnswer(Actor{}, 5)

	require.NoError(t, err)
	assert.NotNil(t, replies)
	assert.Empty(t, replies)
}

func TestUpdateReply(t *testing.T) {
	t.Run("other student forbidden", func(t *testing.T) {
		f := newReplyFixture()
		f.replies.On("FindByID", uint64(3)).Return(&domain.Reply{ID: 3, AuthorID: 9}, nil)
		f.profiles.On("FindByID", uint64(9)).Return(&domain.Profile{ID: 9, Role: domain.RoleStudent}, nil)

		_, err := f.svc.Update(studentActor, 3, &ContentRequest{Content: "edited"})

		assert.ErrorIs(t, err, common.ErrForbidden)
		f.replies.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("replacing the image removes the old blob", func(t *testing.T) {
		f := newReplyFixture()
		old := "images/7/old.png"
		f.replies.On("FindByID", uint64(3)).Return(&domain.Reply{ID: 3, AuthorID: 7, Content: "v1", ImagePath: &old}, nil)
		f.profiles.On("FindByID", uint64(7)).Return(&domain.Profile{ID: 7, Role: domain.RoleStudent}, nil)
		f.replies.On("Update", mock.AnythingOfType("*domain.Reply")).Return(nil)
		f.store.On("Remove", mock.Anything, []string{old}).Return(nil).Once()

		reply, err := f.svc.Update(studentActor, 3, &ContentRequest{Content: "v2", ImagePath: "images/7/new.png"})

		require.NoError(t, err)
		assert.Equal(t, "v2", reply.Content)
		require.NotNil(t, reply.ImageURL)
		assert.Equal(t, "https://cdn.example.com/images/7/new.png", *reply.ImageURL)
		f.store.AssertExpectations(t)
	})

	t.Run("keeping the image leaves storage alone", func(t *testing.T) {
		f := newReplyFixture()
		old := "images/7/old.png"
		f.replies.On("FindByID", uint64(3)).Return(&domain.Reply{ID: 3, AuthorID: 7, Content: "v1", ImagePath: &old}, nil)
		f.profiles.On("FindByID", uint64(7)).Return(&domain.Profile{ID: 7, Role: domain.RoleStudent}, nil)
		f.replies.On("Update", mock.AnythingOfType("*domain.Reply")).Return(nil)

		_, err := f.svc.Update(studentActor, 3, &ContentRequest{Content: "v2", ImagePath: old})

		require.NoError(t, err)
		f.store.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	})
}

func TestDeleteReply_AdminOnStudentContent(t *testing.T) {
	f := newReplyFixture()
	img := "images/9/r.png"
	f.replies.On("FindByID", uint64(3)).Return(&domain.Reply{ID: 3, AuthorID: 9, ImagePath: &img}, nil)
	f.profiles.On("FindByID", uint64(9)).Return(&domain.Profile{ID: 9, Role: domain.RoleStudent}, nil)
	f.replies.On("Delete", uint64(3)).Return(nil)
	f.store.On("Remove", mock.Anything, []string{img}).Return(nil).Once()

	err := f.svc.Delete(adminActor, 3)

	require.NoError(t, err)
	f.replies.AssertExpectations(t)
	f.store.AssertExpectations(t)
}
