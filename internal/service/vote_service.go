package service

import (
	"fmt"

	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"github.com/gyansetu/gyansetu-backend/internal/policy"
	"github.com/gyansetu/gyansetu-backend/internal/repository"
)

// KarmaSettings point weights
type KarmaSettings struct {
	VoteWeight  int
	AcceptBonus int
}

// DefaultKarmaSettings 2 points per vote level, 20 for an accepted answer
var DefaultKarmaSettings = KarmaSettings{VoteWeight: 2, AcceptBonus: 20}

// VoteService voting, answer acceptance and the karma ledger
type VoteService interface {
	Vote(actor Actor, target domain.VoteTarget, targetID uint64, value int) (*domain.VoteResult, error)
	// Accept toggles acceptance of an answer
	Accept(actor Actor, answerID uint64) (*domain.AcceptResult, error)
	KarmaHistory(userID uint64, page, limit int) ([]domain.KarmaLog, int64, error)
	Leaderboard(limit int) ([]domain.LeaderboardEntry, error)
}

type voteService struct {
	votes     repository.VoteRepository
	questions repository.QuestionRepository
	answers   repository.AnswerRepository
	profiles  repository.ProfileRepository
	karma     repository.KarmaRepository
	courses   CourseService
	notifier  NotificationService
	settings  KarmaSettings
}

// NewVoteService creates a new VoteService
func NewVoteService(
	votes repository.VoteRepository,
	questions repository.QuestionRepository,
	answers repository.AnswerRepository,
	profiles repository.ProfileRepository,
	karma repository.KarmaRepository,
	courses CourseService,
	notifier NotificationService,
	settings KarmaSettings,
) VoteService {
	if settings.VoteWeight <= 0 {
		settings.VoteWeight = DefaultKarmaSettings.VoteWeight
	}
	if settings.AcceptBonus <= 0 {
		settings.AcceptBonus = DefaultKarmaSettings.AcceptBonus
	}
	return &voteService{
		votes:     votes,
		questions: questions,
		answers:   answers,
		profiles:  profiles,
		karma:     karma,
		courses:   courses,
		notifier:  notifier,
		settings:  settings,
	}
}

func (s *voteService) Vote(actor Actor, target domain.VoteTarget, targetID uint64, value int) (*domain.VoteResult, error) {
	if !domain.ValidVote(value) {
		return nil, common.ErrInvalidVote
	}

	var (
		authorID   uint64
		questionID uint64
		answerID   *uint64
		subject    string
	)
	switch target {
	case domain.VoteTargetQuestion:
		q, err := questionFor(s.questions, s.courses, actor, targetID)
		if err != nil {
			return nil, err
		}
		authorID, questionID, subject = q.AuthorID, q.ID, "question"
	case domain.VoteTargetAnswer:
		a, err := s.answers.FindByID(targetID)
		if err != nil {
			return nil, err
		}
		if _, err := questionFor(s.questions, s.courses, actor, a.QuestionID); err != nil {
			return nil, err
		}
		id := a.ID
		authorID, questionID, answerID, subject = a.AuthorID, a.QuestionID, &id, "answer"
	default:
		return nil, common.ErrInvalidInput
	}

	authorRole, err := roleOf(s.profiles, authorID)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(policy.Request{
		Action: policy.ActionVote, ActorID: actor.ID, ActorRole: actor.Role, OwnerID: authorID, OwnerRole: authorRole,
	}); err != nil {
		return nil, err
	}

	res, err := s.votes.Apply(domain.VoteCommand{
		Target:   target,
		TargetID: targetID,
		VoterID:  actor.ID,
		AuthorID: authorID,
		Value:    value,
		Weight:   s.settings.VoteWeight,
	})
	if err != nil {
		return nil, err
	}

	votesTotal.WithLabelValues(string(target), domain.VoteTransition(res.Previous, res.UserVote)).Inc()
	recordKarma(domain.VoteReason(target, res.Previous, res.UserVote), res.KarmaDelta)

	if res.UserVote == domain.VoteUp {
		s.notifier.Notify(domain.NotificationEvent{
			Type:        domain.NotificationUpvote,
			RecipientID: authorID,
			ActorID:     actor.ID,
			Message:     fmt.Sprintf("Your %s received an upvote", subject),
			QuestionID:  &questionID,
			AnswerID:    answerID,
		})
	}
	return res, nil
}

func (s *voteService) Accept(actor Actor, answerID uint64) (*domain.AcceptResult, error) {
	a, err := s.answers.FindByID(answerID)
	if err != nil {
		return nil, err
	}
	q, err := s.questions.FindByID(a.QuestionID)
	if err != nil {
		return nil, err
	}
	if err := policy.Check(policy.Request{
		Action: policy.ActionAcceptAnswer, ActorID: actor.ID, ActorRole: actor.Role, OwnerID: q.AuthorID,
	}); err != nil {
		return nil, err
	}

	res, err := s.answers.ToggleAccept(answerID, s.settings.AcceptBonus)
	if err != nil {
		return nil, err
	}

	if res.Accepted {
		recordKarma(domain.ReasonAnswerAccepted, res.KarmaDelta)
		s.notifier.Notify(domain.NotificationEvent{
			Type:        domain.NotificationAccepted,
			RecipientID: a.AuthorID,
			ActorID:     actor.ID,
			Message:     fmt.Sprintf("Your answer to %q was accepted", q.Title),
			QuestionID:  &q.ID,
			AnswerID:    &a.ID,
		})
	} else {
		recordKarma(domain.ReasonAnswerUnaccepted, res.KarmaDelta)
	}
	for range res.Unaccepted {
		recordKarma(domain.ReasonAnswerUnaccepted, s.settings.AcceptBonus)
	}
	return res, nil
}

func (s *voteService) KarmaHistory(userID uint64, page, limit int) ([]domain.KarmaLog, int64, error) {
	page, limit = normalizePage(page, limit)
	logs, total, err := s.karma.History(userID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	if logs == nil {
		logs = []domain.KarmaLog{}
	}
	return logs, total, nil
}

func leaderboardLimit(limit int) int {
	if limit < 1 || limit > 100 {
		return 10
	}
	return limit
}

func (s *voteService) Leaderboard(limit int) ([]domain.LeaderboardEntry, error) {
	entries, err := s.profiles.Leaderboard(leaderboardLimit(limit))
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	return entries, nil
}
