package service

import (
	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"github.com/gyansetu/gyansetu-backend/internal/policy"
	"github.com/gyansetu/gyansetu-backend/internal/repository"
	"github.com/gyansetu/gyansetu-backend/pkg/storage"
)

// ReplyService flat replies on answers
type ReplyService interface {
	Create(actor Actor, answerID uint64, req *ContentRequest) (*domain.Reply, error)
	ListByAnswer(viewer Actor, answerID uint64) ([]domain.Reply, error)
	Update(actor Actor, id uint64, req *ContentRequest) (*domain.Reply, error)
	Delete(actor Actor, id uint64) error
}

type replyService struct {
	questions repository.QuestionRepository
	answers   repository.AnswerRepository
	replies   repository.ReplyRepository
	profiles  repository.ProfileRepository
	courses   CourseService
	notifier  NotificationService
	store     storage.BlobStore
}

// NewReplyService creates a new ReplyService. store may be nil.
func NewReplyService(
	questions repository.QuestionRepository,
	answers repository.AnswerRepository,
	replies repository.ReplyRepository,
	profiles repository.ProfileRepository,
	courses CourseService,
	notifier NotificationService,
	store storage.BlobStore,
) ReplyService {
	return &replyService{
		questions: questions,
		answers:   answers,
		replies:   replies,
		profiles:  profiles,
		courses:   courses,
		notifier:  notifier,
		store:     store,
	}
}

func (s *replyService) answerFor(actor Actor, answerID uint64) (*domain.Answer, error) {
	a, err := s.answers.FindByID(answerID)
	if err != nil {
		return nil, err
	}
	if _, err := questionFor(s.questions, s.courses, actor, a.QuestionID); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *replyService) Create(actor Actor, answerID uint64, req *ContentRequest) (*domain.Reply, error) {
	if actor.ID == 0 {
		return nil, common.ErrUnauthorized
	}
	a, err := s.answerFor(actor, answerID)
	if err != nil {
		return nil, err
	}
	content, err := requireText(req.Content, common.ErrContentRequired)
	if err != nil {
		return nil, err
	}
	imageURL, imagePath, err := resolveImage(publicURLFunc(s.store), actor.ID, req.ImagePath)
	if err != nil {
		return nil, err
	}

	reply := &domain.Reply{
		AnswerID:  answerID,
		AuthorID:  actor.ID,
		Content:   content,
		ImageURL:  imageURL,
		ImagePath: imagePath,
	}
	if err := s.replies.Create(reply); err != nil {
		return nil, err
	}

	s.notifier.Notify(domain.NotificationEvent{
		Type:        domain.NotificationReply,
		RecipientID: a.AuthorID,
		ActorID:     actor.ID,
		Message:     "Someone replied to your answer",
		QuestionID:  &a.QuestionID,
		AnswerID:    &a.ID,
	})
	return reply, nil
}

func (s *replyService) ListByAnswer(viewer Actor, answerID uint64) ([]domain.Reply, error) {
	if _, err := s.answerFor(viewer, answerID); err != nil {
		return nil, err
	}
	replies, err := s.replies.ListByAnswer(answerID)
	if err != nil {
		return nil, err
	}
	if replies == nil {
		replies = []domain.Reply{}
	}
	return replies, nil
}

func (s *replyService) authorize(actor Actor, id uint64, action policy.Action) (*domain.Reply, error) {
	reply, err := s.replies.FindByID(id)
	if err != nil {
		return nil, err
	}
	ownerRole, err := roleOf(s.profiles, reply.AuthorID)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(policy.Request{
		Action: action, ActorID: actor.ID, ActorRole: actor.Role, OwnerID: reply.AuthorID, OwnerRole: ownerRole,
	}); err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *replyService) Update(actor Actor, id uint64, req *ContentRequest) (*domain.Reply, error) {
	reply, err := s.authorize(actor, id, policy.ActionEdit)
	if err != nil {
		return nil, err
	}
	content, err := requireText(req.Content, common.ErrContentRequired)
	if err != nil {
		return nil, err
	}
	oldPath := reply.ImagePath
	switch {
	case req.ImagePath == "":
		reply.ImageURL, reply.ImagePath = nil, nil
	case oldPath != nil && req.ImagePath == *oldPath:
	default:
		url, path, err := resolveImage(publicURLFunc(s.store), reply.AuthorID, req.ImagePath)
		if err != nil {
			return nil, err
		}
		reply.ImageURL, reply.ImagePath = url, path
	}
	reply.Content = content
	if err := s.replies.Update(reply); err != nil {
		return nil, err
	}
	removeBlobs(s.store, replacedImage(oldPath, reply.ImagePath))
	return reply, nil
}

func (s *replyService) Delete(actor Actor, id uint64) error {
	reply, err := s.authorize(actor, id, policy.ActionDelete)
	if err != nil {
		return err
	}
	if err := s.replies.Delete(id); err != nil {
		return err
	}
	if reply.ImagePath != nil {
		removeBlobs(s.store, []string{*reply.ImagePath})
	}
	return nil
}
