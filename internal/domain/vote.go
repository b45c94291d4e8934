package domain

import (
	"fmt"
	"time"
)

// VoteTarget is the kind of content a vote applies to
type VoteTarget string

const (
	VoteTargetQuestion VoteTarget = "question"
	VoteTargetAnswer   VoteTarget = "answer"
)

// Vote values. VoteNone is never stored.
const (
	VoteNone = 0
	VoteUp   = 1
	VoteDown = -1
)

// QuestionVote is one user's vote on a question
type QuestionVote struct {
	QuestionID uint64 `gorm:"column:question_id;primaryKey" json:"question_id"`
	UserID     uint64 `gorm:"column:user_id;primaryKey;index" json:"user_id"`
	Value      int    `gorm:"column:vote_value;not null" json:"vote_value"`
	// AppliedKarma is what this vote actually moved the author's karma by,
	// after the zero floor. Reversal undoes exactly this amount.
	AppliedKarma int       `gorm:"column:applied_karma;not null;default:0" json:"-"`
	Question     *Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
	User         *Profile  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (QuestionVote) TableName() string { return "question_votes" }

// AnswerVote is one user's vote on an answer
type AnswerVote struct {
	AnswerID     uint64    `gorm:"column:answer_id;primaryKey" json:"answer_id"`
	UserID       uint64    `gorm:"column:user_id;primaryKey;index" json:"user_id"`
	Value        int       `gorm:"column:vote_value;not null" json:"vote_value"`
	AppliedKarma int       `gorm:"column:applied_karma;not null;default:0" json:"-"`
	Answer       *Answer   `gorm:"foreignKey:AnswerID;constraint:OnDelete:CASCADE" json:"-"`
	User         *Profile  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (AnswerVote) TableName() string { return "answer_votes" }

// ValidVote reports whether v can be submitted
func ValidVote(v int) bool {
	return v == VoteUp || v == VoteDown
}

// NextVote returns the state after submitting a vote.
// Submitting the current value removes the vote.
func NextVote(current, submitted int) int {
	if current == submitted {
		return VoteNone
	}
	return submitted
}

// FlooredChange returns how much of change can be applied to karma without
// taking it below zero
func FlooredChange(karma, change int) int {
	if karma+change < 0 {
		return -karma
	}
	return change
}

// VoteTransition labels a state change for metrics: added, removed or changed
func VoteTransition(current, next int) string {
	switch {
	case current == VoteNone:
		return "added"
	case next == VoteNone:
		return "removed"
	default:
		return "changed"
	}
}

// VoteReason builds the ledger reason, e.g. "Question upvoted" or "Answer downvote removed"
func VoteReason(target VoteTarget, current, next int) string {
	subject := "Question"
	if target == VoteTargetAnswer {
		subject = "Answer"
	}
	switch {
	case next == VoteUp && current == VoteDown:
		return fmt.Sprintf("%s changed to upvote", subject)
	case next == VoteDown && current == VoteUp:
		return fmt.Sprintf("%s changed to downvote", subject)
	case next == VoteUp:
		return fmt.Sprintf("%s upvoted", subject)
	case next == VoteDown:
		return fmt.Sprintf("%s downvoted", subject)
	case current == VoteUp:
		return fmt.Sprintf("%s upvote removed", subject)
	case current == VoteDown:
		return fmt.Sprintf("%s downvote removed", subject)
	}
	return subject + " vote"
}

// VoteCommand is one vote submission, already authorized
type VoteCommand struct {
	Target   VoteTarget
	TargetID uint64
	VoterID  uint64
	AuthorID uint64
	Value    int
	Weight   int
}

// VoteResult is the outcome of a vote submission
type VoteResult struct {
	Score      int `json:"score"`
	UserVote   int `json:"user_vote"`
	KarmaDelta int `json:"karma_delta"`
	// Previous is the vote state before the submission
	Previous int `json:"-"`
}
