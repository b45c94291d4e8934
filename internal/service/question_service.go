package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"github.com/gyansetu/gyansetu-backend/internal/policy"
	"github.com/gyansetu/gyansetu-backend/internal/repository"
	"github.com/gyansetu/gyansetu-backend/pkg/storage"
)

// QuestionRequest create/update payload
type QuestionRequest struct {
	Title       string   `json:"title" validate:"required,max=300"`
	Content     string   `json:"content" validate:"required"`
	CourseID    *uint64  `json:"course_id"`
	Tags        []string `json:"tags" validate:"max=10,dive,max=40"`
	IsAnonymous bool     `json:"is_anonymous"`
	ImagePath   string   `json:"image_path"`
}

// QuestionListParams query parameters for listing
type QuestionListParams struct {
	CourseID *uint64
	General  bool
	Tag      string
	Resolved *bool
	AuthorID *uint64
	Keyword  string
	Page     int
	Limit    int
}

// QuestionService question CRUD, resolution and best-answer marking
type QuestionService interface {
	Create(actor Actor, req *QuestionRequest) (*domain.QuestionView, error)
	Get(viewer Actor, id uint64) (*domain.QuestionView, error)
	List(viewer Actor, params QuestionListParams) ([]domain.QuestionView, int64, error)
	Update(actor Actor, id uint64, req *QuestionRequest) (*domain.QuestionView, error)
	Delete(actor Actor, id uint64) error
	Resolve(actor Actor, id uint64) (*domain.QuestionView, error)
	// MarkBestAnswer toggles the question's best answer
	MarkBestAnswer(actor Actor, answerID uint64) (*domain.QuestionView, error)
}

type questionService struct {
	questions repository.QuestionRepository
	answers   repository.AnswerRepository
	profiles  repository.ProfileRepository
	votes     repository.VoteRepository
	courses   CourseService
	notifier  NotificationService
	store     storage.BlobStore
}

// NewQuestionService creates a new QuestionService. store may be nil.
func NewQuestionService(
	questions repository.QuestionRepository,
	answers repository.AnswerRepository,
	profiles repository.ProfileRepository,
	votes repository.VoteRepository,
	courses CourseService,
	notifier NotificationService,
	store storage.BlobStore,
) QuestionService {
	return &questionService{
		questions: questions,
		answers:   answers,
		profiles:  profiles,
		votes:     votes,
		courses:   courses,
		notifier:  notifier,
		store:     store,
	}
}

// roleOf returns the role of a content author; a missing profile is a student
func roleOf(profiles repository.ProfileRepository, userID uint64) (domain.Role, error) {
	p, err := profiles.FindByID(userID)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return domain.RoleStudent, nil
		}
		return "", err
	}
	return p.Role, nil
}

func (s *questionService) Create(actor Actor, req *QuestionRequest) (*domain.QuestionView, error) {
	if err := policy.Check(policy.Request{Action: policy.ActionAskQuestion, ActorID: actor.ID, ActorRole: actor.Role}); err != nil {
		return nil, err
	}
	title, err := requireText(req.Title, common.ErrTitleRequired)
	if err != nil {
		return nil, err
	}
	content, err := requireText(req.Content, common.ErrContentRequired)
	if err != nil {
		return nil, err
	}
	if req.CourseID != nil {
		if _, err := s.courses.Get(*req.CourseID); err != nil {
			return nil, err
		}
		ok, err := s.courses.CanPostInCourse(actor.ID, *req.CourseID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, common.ErrNotEnrolled
		}
	}
	imageURL, imagePath, err := resolveImage(publicURLFunc(s.store), actor.ID, req.ImagePath)
	if err != nil {
		return nil, err
	}

	q := &domain.Question{
		Title:       title,
		Content:     content,
		AuthorID:    actor.ID,
		CourseID:    req.CourseID,
		Tags:        domain.NormalizeTags(req.Tags),
		IsAnonymous: req.IsAnonymous,
		ImageURL:    imageURL,
		ImagePath:   imagePath,
	}
	if err := s.questions.Create(q); err != nil {
		return nil, err
	}
	return s.view(actor, q, 0, domain.VoteNone), nil
}

// visible checks course scoping for a viewer
func (s *questionService) visible(viewer Actor, q *domain.Question) error {
	if q.CourseID == nil || q.AuthorID == viewer.ID {
		return nil
	}
	ok, err := s.courses.CanAccessCourse(viewer, *q.CourseID)
	if err != nil {
		return err
	}
	if !ok {
		return common.ErrNotEnrolled
	}
	return nil
}

func (s *questionService) view(viewer Actor, q *domain.Question, score, userVote int) *domain.QuestionView {
	v := &domain.QuestionView{Question: *q, Score: score, UserVote: userVote}
	if !q.IsAnonymous || viewer.ID == q.AuthorID || viewer.IsStaff() {
		id := q.AuthorID
		v.AuthorID = &id
	}
	if v.Tags == nil {
		v.Tags = domain.TagList{}
	}
	return v
}

func (s *questionService) views(viewer Actor, qs []domain.Question) ([]domain.QuestionView, error) {
	ids := make([]uint64, len(qs))
	for i := range qs {
		ids[i] = qs[i].ID
	}
	scores, err := s.votes.Scores(domain.VoteTargetQuestion, ids)
	if err != nil {
		return nil, err
	}
	mine, err := s.votes.UserVotes(domain.VoteTargetQuestion, viewer.ID, ids)
	if err != nil {
		return nil, err
	}
	out := make([]domain.QuestionView, 0, len(qs))
	for i := range qs {
		out = append(out, *s.view(viewer, &qs[i], scores[qs[i].ID], mine[qs[i].ID]))
	}
	return out, nil
}

func (s *questionService) Get(viewer Actor, id uint64) (*domain.QuestionView, error) {
	q, err := s.questions.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.visible(viewer, q); err != nil {
		return nil, err
	}
	if err := s.questions.IncrementViewCount(id); err != nil {
		return nil, err
	}
	q.ViewCount++
	return s.single(viewer, q)
}

func (s *questionService) single(viewer Actor, q *domain.Question) (*domain.QuestionView, error) {
	views, err := s.views(viewer, []domain.Question{*q})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *questionService) List(viewer Actor, params QuestionListParams) ([]domain.QuestionView, int64, error) {
	page, limit := normalizePage(params.Page, params.Limit)
	filter := domain.QuestionFilter{
		GeneralOnly: params.General,
		Tag:         strings.ToLower(strings.TrimSpace(params.Tag)),
		Resolved:    params.Resolved,
		AuthorID:    params.AuthorID,
		Keyword:     strings.TrimSpace(params.Keyword),
	}
	if params.CourseID != nil {
		ok, err := s.courses.CanAccessCourse(viewer, *params.CourseID)
		if err != nil {
			return nil, 0, err
		}
		if !ok {
			return nil, 0, common.ErrNotEnrolled
		}
		filter.CourseID = params.CourseID
	} else if !params.General {
		ids, err := s.courses.AccessibleCourseIDs(viewer)
		if err != nil {
			return nil, 0, err
		}
		filter.CourseIDs = ids
	}

	qs, total, err := s.questions.List(filter, page, limit)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.views(viewer, qs)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// authorize loads the question and checks an author-relative action
func (s *questionService) authorize(actor Actor, id uint64, action policy.Action) (*domain.Question, error) {
	q, err := s.questions.FindByID(id)
	if err != nil {
		return nil, err
	}
	ownerRole, err := roleOf(s.profiles, q.AuthorID)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(policy.Request{
		Action: action, ActorID: actor.ID, ActorRole: actor.Role, OwnerID: q.AuthorID, OwnerRole: ownerRole,
	}); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *questionService) Update(actor Actor, id uint64, req *QuestionRequest) (*domain.QuestionView, error) {
	q, err := s.authorize(actor, id, policy.ActionEdit)
	if err != nil {
		return nil, err
	}
	title, err := requireText(req.Title, common.ErrTitleRequired)
	if err != nil {
		return nil, err
	}
	content, err := requireText(req.Content, common.ErrContentRequired)
	if err != nil {
		return nil, err
	}

	oldPath := q.ImagePath
	switch {
	case req.ImagePath == "":
		q.ImageURL, q.ImagePath = nil, nil
	case oldPath != nil && req.ImagePath == *oldPath:
	default:
		// images are attached by their uploader, i.e. the question author
		url, path, err := resolveImage(publicURLFunc(s.store), q.AuthorID, req.ImagePath)
		if err != nil {
			return nil, err
		}
		q.ImageURL, q.ImagePath = url, path
	}

	q.Title = title
	q.Content = content
	q.Tags = domain.NormalizeTags(req.Tags)
	q.IsAnonymous = req.IsAnonymous
	if err := s.questions.Update(q); err != nil {
		return nil, err
	}
	removeBlobs(s.store, replacedImage(oldPath, q.ImagePath))
	return s.single(actor, q)
}

func (s *questionService) Delete(actor Actor, id uint64) error {
	if _, err := s.authorize(actor, id, policy.ActionDelete); err != nil {
		return err
	}
	paths, err := s.questions.Delete(id)
	if err != nil {
		return err
	}
	removeBlobs(s.store, paths)
	return nil
}

func (s *questionService) Resolve(actor Actor, id uint64) (*domain.QuestionView, error) {
	q, err := s.authorize(actor, id, policy.ActionResolveQuestion)
	if err != nil {
		return nil, err
	}
	if err := s.questions.Resolve(id); err != nil {
		return nil, err
	}
	if !q.Resolved && actor.ID != q.AuthorID {
		s.notifier.Notify(domain.NotificationEvent{
			Type:        domain.NotificationResolved,
			RecipientID: q.AuthorID,
			ActorID:     actor.ID,
			Message:     fmt.Sprintf("Your question %q was marked as resolved", q.Title),
			QuestionID:  &q.ID,
		})
	}
	q.Resolved = true
	return s.single(actor, q)
}

func (s *questionService) MarkBestAnswer(actor Actor, answerID uint64) (*domain.QuestionView, error) {
	a, err := s.answers.FindByID(answerID)
	if err != nil {
		return nil, err
	}
	authorRole, err := roleOf(s.profiles, a.AuthorID)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(policy.Request{
		Action: policy.ActionMarkBestAnswer, ActorID: actor.ID, ActorRole: actor.Role, OwnerID: a.AuthorID, OwnerRole: authorRole,
	}); err != nil {
		return nil, err
	}
	q, err := s.questions.FindByID(a.QuestionID)
	if err != nil {
		return nil, err
	}

	var best *uint64
	if q.BestAnswerID == nil || *q.BestAnswerID != answerID {
		best = &answerID
	}
	if err := s.questions.SetBestAnswer(q.ID, best); err != nil {
		return nil, err
	}
	q.BestAnswerID = best
	return s.single(actor, q)
}
