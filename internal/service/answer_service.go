package service

import (
	"fmt"

	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"github.com/gyansetu/gyansetu-backend/internal/policy"
	"github.com/gyansetu/gyansetu-backend/internal/repository"
	"github.com/gyansetu/gyansetu-backend/pkg/storage"
)

// ContentRequest answer/reply payload
type ContentRequest struct {
	Content   string `json:"content" validate:"required"`
	ImagePath string `json:"image_path"`
}

// AnswerService answer CRUD
type AnswerService interface {
	Create(actor Actor, questionID uint64, req *ContentRequest) (*domain.AnswerView, error)
	ListByQuestion(viewer Actor, questionID uint64) ([]domain.AnswerView, error)
	Update(actor Actor, id uint64, req *ContentRequest) (*domain.AnswerView, error)
	Delete(actor Actor, id uint64) error
}

type answerService struct {
	questions repository.QuestionRepository
	answers   repository.AnswerRepository
	profiles  repository.ProfileRepository
	votes     repository.VoteRepository
	courses   CourseService
	notifier  NotificationService
	store     storage.BlobStore
}

// NewAnswerService creates a new AnswerService. store may be nil.
func NewAnswerService(
	questions repository.QuestionRepository,
	answers repository.AnswerRepository,
	profiles repository.ProfileRepository,
	votes repository.VoteRepository,
	courses CourseService,
	notifier NotificationService,
	store storage.BlobStore,
) AnswerService {
	return &answerService{
		questions: questions,
		answers:   answers,
		profiles:  profiles,
		votes:     votes,
		courses:   courses,
		notifier:  notifier,
		store:     store,
	}
}

// questionFor loads a question and checks the actor may see it
func questionFor(questions repository.QuestionRepository, courses CourseService, actor Actor, id uint64) (*domain.Question, error) {
	q, err := questions.FindByID(id)
	if err != nil {
		return nil, err
	}
	if q.CourseID == nil || q.AuthorID == actor.ID {
		return q, nil
	}
	ok, err := courses.CanAccessCourse(actor, *q.CourseID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrNotEnrolled
	}
	return q, nil
}

func (s *answerService) Create(actor Actor, questionID uint64, req *ContentRequest) (*domain.AnswerView, error) {
	q, err := questionFor(s.questions, s.courses, actor, questionID)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(policy.Request{
		Action: policy.ActionAnswerQuestion, ActorID: actor.ID, ActorRole: actor.Role, OwnerID: q.AuthorID,
	}); err != nil {
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

	a := &domain.Answer{
		QuestionID: questionID,
		AuthorID:   actor.ID,
		Content:    content,
		ImageURL:   imageURL,
		ImagePath:  imagePath,
	}
	if err := s.answers.Create(a); err != nil {
		return nil, err
	}

	s.notifier.Notify(domain.NotificationEvent{
		Type:        domain.NotificationAnswer,
		RecipientID: q.AuthorID,
		ActorID:     actor.ID,
		Message:     fmt.Sprintf("Your question %q has a new answer", q.Title),
		QuestionID:  &q.ID,
		AnswerID:    &a.ID,
	})

	return &domain.AnswerView{Answer: *a, UpvotedBy: []uint64{}}, nil
}

func (s *answerService) ListByQuestion(viewer Actor, questionID uint64) ([]domain.AnswerView, error) {
	q, err := questionFor(s.questions, s.courses, viewer, questionID)
	if err != nil {
		return nil, err
	}
	answers, err := s.answers.ListByQuestion(questionID)
	if err != nil {
		return nil, err
	}
	return s.views(viewer, q, answers)
}

func (s *answerService) views(viewer Actor, q *domain.Question, answers []domain.Answer) ([]domain.AnswerView, error) {
	ids := make([]uint64, len(answers))
	for i := range answers {
		ids[i] = answers[i].ID
	}
	scores, err := s.votes.Scores(domain.VoteTargetAnswer, ids)
	if err != nil {
		return nil, err
	}
	mine, err := s.votes.UserVotes(domain.VoteTargetAnswer, viewer.ID, ids)
	if err != nil {
		return nil, err
	}
	upvoters, err := s.votes.Upvoters(domain.VoteTargetAnswer, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.AnswerView, 0, len(answers))
	for _, a := range answers {
		v := domain.AnswerView{
			Answer:    a,
			IsBest:    q.BestAnswerID != nil && *q.BestAnswerID == a.ID,
			Score:     scores[a.ID],
			UserVote:  mine[a.ID],
			UpvotedBy: upvoters[a.ID],
		}
		if v.UpvotedBy == nil {
			v.UpvotedBy = []uint64{}
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *answerService) authorize(actor Actor, id uint64, action policy.Action) (*domain.Answer, error) {
	a, err := s.answers.FindByID(id)
	if err != nil {
		return nil, err
	}
	ownerRole, err := roleOf(s.profiles, a.AuthorID)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(policy.Request{
		Action: action, ActorID: actor.ID, ActorRole: actor.Role, OwnerID: a.AuthorID, OwnerRole: ownerRole,
	}); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *answerService) Update(actor Actor, id uint64, req *ContentRequest) (*domain.AnswerView, error) {
	a, err := s.authorize(actor, id, policy.ActionEdit)
	if err != nil {
		return nil, err
	}
	content, err := requireText(req.Content, common.ErrContentRequired)
	if err != nil {
		return nil, err
	}
	oldPath := a.ImagePath
	switch {
	case req.ImagePath == "":
		a.ImageURL, a.ImagePath = nil, nil
	case oldPath != nil && req.ImagePath == *oldPath:
	default:
		url, path, err := resolveImage(publicURLFunc(s.store), a.AuthorID, req.ImagePath)
		if err != nil {
			return nil, err
		}
		a.ImageURL, a.ImagePath = url, path
	}
	a.Content = content
	if err := s.answers.Update(a); err != nil {
		return nil, err
	}
	removeBlobs(s.store, replacedImage(oldPath, a.ImagePath))

	q, err := s.questions.FindByID(a.QuestionID)
	if err != nil {
		return nil, err
	}
	views, err := s.views(actor, q, []domain.Answer{*a})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *answerService) Delete(actor Actor, id uint64) error {
	if _, err := s.authorize(actor, id, policy.ActionDelete); err != nil {
		return err
	}
	paths, err := s.answers.Delete(id)
	if err != nil {
		return err
	}
	removeBlobs(s.store, paths)
	return nil
}
