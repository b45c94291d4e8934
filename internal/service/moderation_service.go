package service

import (
	"fmt"
	"strings"

	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"github.com/gyansetu/gyansetu-backend/internal/policy"
	"github.com/gyansetu/gyansetu-backend/internal/repository"
	"github.com/gyansetu/gyansetu-backend/pkg/storage"
)

// ReportRequest report payload; exactly one target id must be set
type ReportRequest struct {
	domain.ReportTarget
	Reason string `json:"reason" validate:"required,max=1000"`
}

// ModerationService reports and staff moderation actions
type ModerationService interface {
	Report(actor Actor, req *ReportRequest) (*domain.ModerationReport, error)
	ListReports(actor Actor, status string, page, limit int) ([]domain.ModerationReport, int64, error)
	Dismiss(actor Actor, reportID uint64) error
	ResolveQuestion(actor Actor, questionID uint64) error
	DeleteQuestion(actor Actor, questionID uint64) error
	DeleteAnswer(actor Actor, answerID uint64) error
	DeleteReply(actor Actor, replyID uint64) error
}

type moderationService struct {
	reports   repository.ReportRepository
	questions repository.QuestionRepository
	answers   repository.AnswerRepository
	replies   repository.ReplyRepository
	profiles  repository.ProfileRepository
	notifier  NotificationService
	store     storage.BlobStore
}

// NewModerationService creates a new ModerationService. store may be nil.
func NewModerationService(
	reports repository.ReportRepository,
	questions repository.QuestionRepository,
	answers repository.AnswerRepository,
	replies repository.ReplyRepository,
	profiles repository.ProfileRepository,
	notifier NotificationService,
	store storage.BlobStore,
) ModerationService {
	return &moderationService{
		reports:   reports,
		questions: questions,
		answers:   answers,
		replies:   replies,
		profiles:  profiles,
		notifier:  notifier,
		store:     store,
	}
}

func moderate(actor Actor) error {
	return policy.Check(policy.Request{Action: policy.ActionModerate, ActorID: actor.ID, ActorRole: actor.Role})
}

// canRemove applies the content delete matrix on top of the staff check,
// so an admin cannot remove another admin's content
func (s *moderationService) canRemove(actor Actor, authorID uint64) error {
	if err := moderate(actor); err != nil {
		return err
	}
	ownerRole, err := roleOf(s.profiles, authorID)
	if err != nil {
		return err
	}
	return policy.Check(policy.Request{
		Action: policy.ActionDelete, ActorID: actor.ID, ActorRole: actor.Role, OwnerID: authorID, OwnerRole: ownerRole,
	})
}

func (s *moderationService) Report(actor Actor, req *ReportRequest) (*domain.ModerationReport, error) {
	if actor.ID == 0 {
		return nil, common.ErrUnauthorized
	}
	kind, id, ok := req.ReportTarget.Kind()
	if !ok {
		return nil, common.ErrInvalidReportTgt
	}
	reason, err := requireText(req.Reason, common.ErrReasonRequired)
	if err != nil {
		return nil, err
	}

	switch kind {
	case domain.ReportTargetQuestion:
		_, err = s.questions.FindByID(id)
	case domain.ReportTargetAnswer:
		_, err = s.answers.FindByID(id)
	case domain.ReportTargetReply:
		_, err = s.replies.FindByID(id)
	}
	if err != nil {
		return nil, err
	}

	report := &domain.ModerationReport{
		ReporterID: actor.ID,
		QuestionID: req.QuestionID,
		AnswerID:   req.AnswerID,
		ReplyID:    req.ReplyID,
		Reason:     reason,
	}
	if err := s.reports.Create(report); err != nil {
		return nil, err
	}
	reportsTotal.WithLabelValues("created").Inc()
	return report, nil
}

func (s *moderationService) ListReports(actor Actor, status string, page, limit int) ([]domain.ModerationReport, int64, error) {
	if err := moderate(actor); err != nil {
		return nil, 0, err
	}
	st := domain.ReportStatus(strings.ToLower(strings.TrimSpace(status)))
	switch st {
	case "", domain.ReportPending, domain.ReportResolved, domain.ReportDismissed:
	default:
		return nil, 0, fmt.Errorf("%w: unknown report status %q", common.ErrInvalidInput, status)
	}
	page, limit = normalizePage(page, limit)
	reports, total, err := s.reports.List(st, page, limit)
	if err != nil {
		return nil, 0, err
	}
	if reports == nil {
		reports = []domain.ModerationReport{}
	}
	return reports, total, nil
}

// Dismiss deletes the report row
func (s *moderationService) Dismiss(actor Actor, reportID uint64) error {
	if err := moderate(actor); err != nil {
		return err
	}
	if err := s.reports.Delete(reportID); err != nil {
		return err
	}
	reportsTotal.WithLabelValues("dismissed").Inc()
	return nil
}

func (s *moderationService) ResolveQuestion(actor Actor, questionID uint64) error {
	if err := moderate(actor); err != nil {
		return err
	}
	q, err := s.questions.FindByID(questionID)
	if err != nil {
		return err
	}
	if err := s.reports.ResolveQuestion(questionID); err != nil {
		return err
	}
	reportsTotal.WithLabelValues("resolved").Inc()
	if !q.Resolved {
		s.notifier.Notify(domain.NotificationEvent{
			Type:        domain.NotificationResolved,
			RecipientID: q.AuthorID,
			ActorID:     actor.ID,
			Message:     fmt.Sprintf("Your question %q was marked as resolved", q.Title),
			QuestionID:  &q.ID,
		})
	}
	return nil
}

// DeleteQuestion removes the question and everything that depends on it in one transaction
func (s *moderationService) DeleteQuestion(actor Actor, questionID uint64) error {
	if err := moderate(actor); err != nil {
		return err
	}
	paths, err := s.questions.Delete(questionID)
	if err != nil {
		return err
	}
	reportsTotal.WithLabelValues("question_deleted").Inc()
	removeBlobs(s.store, paths)
	return nil
}

func (s *moderationService) DeleteAnswer(actor Actor, answerID uint64) error {
	if err := moderate(actor); err != nil {
		return err
	}
	a, err := s.answers.FindByID(answerID)
	if err != nil {
		return err
	}
	if err := s.canRemove(actor, a.AuthorID); err != nil {
		return err
	}
	paths, err := s.answers.Delete(answerID)
	if err != nil {
		return err
	}
	reportsTotal.WithLabelValues("answer_deleted").Inc()
	removeBlobs(s.store, paths)
	return nil
}

func (s *moderationService) DeleteReply(actor Actor, replyID uint64) error {
	if err := moderate(actor); err != nil {
		return err
	}
	reply, err := s.replies.FindByID(replyID)
	if err != nil {
		return err
	}
	if err := s.canRemove(actor, reply.AuthorID); err != nil {
		return err
	}
	if err := s.replies.Delete(replyID); err != nil {
		return err
	}
	reportsTotal.WithLabelValues("reply_deleted").Inc()
	if reply.ImagePath != nil {
		removeBlobs(s.store, []string{*reply.ImagePath})
	}
	return nil
}
