package domain

import (
	"fmt"
	"time"
)

// ReportStatus is the lifecycle state of a moderation report
type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

// ReportTargetKind names the kind of reported content
type ReportTargetKind string

const (
	ReportTargetQuestion ReportTargetKind = "question"
	ReportTargetAnswer   ReportTargetKind = "answer"
	ReportTargetReply    ReportTargetKind = "reply"
)

// ModerationReport is a user report against a question, answer or reply.
// PendingKey is unique while the report is pending and NULL afterwards, so a
// reporter holds at most one pending report per target.
type ModerationReport struct {
	ID         uint64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ReporterID uint64       `gorm:"column:reporter_id;index;not null" json:"reporter_id"`
	Reporter   *Profile     `gorm:"foreignKey:ReporterID;constraint:OnDelete:CASCADE" json:"-"`
	QuestionID *uint64      `gorm:"column:question_id;index" json:"question_id,omitempty"`
	Question   *Question    `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
	AnswerID   *uint64      `gorm:"column:answer_id;index" json:"answer_id,omitempty"`
	Answer     *Answer      `gorm:"foreignKey:AnswerID;constraint:OnDelete:CASCADE" json:"-"`
	ReplyID    *uint64      `gorm:"column:reply_id;index" json:"reply_id,omitempty"`
	Reply      *Reply       `gorm:"foreignKey:ReplyID;constraint:OnDelete:CASCADE" json:"-"`
	Reason     string       `gorm:"column:reason;type:text;not null" json:"reason"`
	Status     ReportStatus `gorm:"column:status;type:varchar(20);default:pending;index" json:"status"`
	PendingKey *string      `gorm:"column:pending_key;type:varchar(100);uniqueIndex" json:"-"`
	CreatedAt  time.Time    `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ModerationReport) TableName() string { return "moderation_reports" }

// ReportTarget identifies reported content; exactly one id must be set
type ReportTarget struct {
	QuestionID *uint64 `json:"question_id,omitempty"`
	AnswerID   *uint64 `json:"answer_id,omitempty"`
	ReplyID    *uint64 `json:"reply_id,omitempty"`
}

// Kind returns the target kind and id, ok=false unless exactly one id is set
func (t ReportTarget) Kind() (ReportTargetKind, uint64, bool) {
	var (
		kind ReportTargetKind
		id   uint64
		n    int
	)
	if t.QuestionID != nil {
		kind, id, n = ReportTargetQuestion, *t.QuestionID, n+1
	}
	if t.AnswerID != nil {
		kind, id, n = ReportTargetAnswer, *t.AnswerID, n+1
	}
	if t.ReplyID != nil {
		kind, id, n = ReportTargetReply, *t.ReplyID, n+1
	}
	if n != 1 || id == 0 {
		return "", 0, false
	}
	return kind, id, true
}

// PendingReportKey is the uniqueness key for a pending report
func PendingReportKey(reporterID uint64, kind ReportTargetKind, id uint64) string {
	return fmt.Sprintf("%d:%s:%d", reporterID, kind, id)
}
