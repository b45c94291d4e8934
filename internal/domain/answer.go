package domain

import "time"

// Answer is an answer to a question
type Answer struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	QuestionID uint64    `gorm:"column:question_id;index;not null" json:"question_id"`
	Question   *Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID   uint64    `gorm:"column:author_id;index;not null" json:"author_id"`
	Author     *Profile  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Content    string    `gorm:"column:content;type:text;not null" json:"content"`
	IsAccepted bool      `gorm:"column:is_accepted;default:false" json:"is_accepted"`
	ImageURL   *string   `gorm:"column:image_url;type:varchar(500)" json:"image_url,omitempty"`
	ImagePath  *string   `gorm:"column:image_path;type:varchar(500)" json:"-"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Answer) TableName() string { return "answers" }

// AnswerView is an answer with its vote state.
// UpvotedBy is derived from answer_votes; it is kept for older clients.
type AnswerView struct {
	Answer
	IsBest    bool     `json:"is_best"`
	Score     int      `json:"score"`
	UserVote  int      `json:"user_vote"`
	UpvotedBy []uint64 `json:"upvoted_by"`
}

// AcceptResult is returned by answer acceptance
type AcceptResult struct {
	AnswerID   uint64 `json:"answer_id"`
	Accepted   bool   `json:"accepted"`
	KarmaDelta int    `json:"karma_delta"`
	// Unaccepted lists previously accepted answers that lost the flag
	Unaccepted []uint64 `json:"unaccepted,omitempty"`
}

// Reply is a flat comment on an answer
type Reply struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AnswerID  uint64    `gorm:"column:answer_id;index;not null" json:"answer_id"`
	Answer    *Answer   `gorm:"foreignKey:AnswerID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID  uint64    `gorm:"column:author_id;index;not null" json:"author_id"`
	Author    *Profile  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Content   string    `gorm:"column:content;type:text;not null" json:"content"`
	ImageURL  *string   `gorm:"column:image_url;type:varchar(500)" json:"image_url,omitempty"`
	ImagePath *string   `gorm:"column:image_path;type:varchar(500)" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Reply) TableName() string { return "replies" }
