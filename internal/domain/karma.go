package domain

import "time"

// Karma ledger reasons outside of voting
const (
	ReasonAnswerAccepted   = "Answer accepted"
	ReasonAnswerUnaccepted = "Answer unaccepted"
)

// KarmaLog is an append-only ledger entry.
// Change is the requested delta; the profile total is floored at zero independently.
type KarmaLog struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID     uint64    `gorm:"column:user_id;index;not null" json:"user_id"`
	User       *Profile  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Change     int       `gorm:"column:change_amount;not null" json:"change"`
	Reason     string    `gorm:"column:reason;type:varchar(200);not null" json:"reason"`
	QuestionID *uint64   `gorm:"column:question_id;index" json:"question_id,omitempty"`
	Question   *Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:SET NULL" json:"-"`
	AnswerID   *uint64   `gorm:"column:answer_id;index" json:"answer_id,omitempty"`
	Answer     *Answer   `gorm:"foreignKey:AnswerID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (KarmaLog) TableName() string { return "karma_logs" }

// LeaderboardEntry is one row of the karma leaderboard
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserID      uint64 `json:"user_id"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
	KarmaPoints int    `json:"karma_points"`
}
