package domain

import (
	"database/sql/driver"
	"errors"
	"sort"
	"strings"
	"time"
)

// TagList is stored as ",a,b," so a single tag can be matched with LIKE '%,a,%'
type TagList []string

// NormalizeTags lower-cases, trims and de-duplicates tags
func NormalizeTags(in []string) TagList {
	seen := make(map[string]bool, len(in))
	out := make(TagList, 0, len(in))
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		t = strings.ReplaceAll(t, ",", "")
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Value implements driver.Valuer
func (t TagList) Value() (driver.Value, error) {
	if len(t) == 0 {
		return "", nil
	}
	return "," + strings.Join(t, ",") + ",", nil
}

// Scan implements sql.Scanner
func (t *TagList) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case nil:
		*t = TagList{}
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return errors.New("unsupported tag list type")
	}
	parts := strings.Split(strings.Trim(s, ","), ",")
	out := make(TagList, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	*t = out
	return nil
}

// Question is a question, optionally scoped to a course (nil course = general)
type Question struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title        string    `gorm:"column:title;type:varchar(300);not null" json:"title"`
	Content      string    `gorm:"column:content;type:text;not null" json:"content"`
	AuthorID     uint64    `gorm:"column:author_id;index;not null" json:"author_id"`
	Author       *Profile  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	CourseID     *uint64   `gorm:"column:course_id;index" json:"course_id"`
	Course       *Course   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"-"`
	Tags         TagList   `gorm:"column:tags;type:varchar(500)" json:"tags"`
	IsAnonymous  bool      `gorm:"column:is_anonymous;default:false" json:"is_anonymous"`
	Resolved     bool      `gorm:"column:is_resolved;default:false;index" json:"resolved"`
	BestAnswerID *uint64   `gorm:"column:best_answer_id" json:"best_answer_id"`
	ViewCount    uint      `gorm:"column:view_count;default:0" json:"view_count"`
	ImageURL     *string   `gorm:"column:image_url;type:varchar(500)" json:"image_url,omitempty"`
	ImagePath    *string   `gorm:"column:image_path;type:varchar(500)" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Question) TableName() string { return "questions" }

// IsGeneral reports whether the question has no course
func (q *Question) IsGeneral() bool {
	return q.CourseID == nil
}

// QuestionView is a question as returned to a particular viewer
type QuestionView struct {
	Question
	AuthorID *uint64 `json:"author_id"`
	Score    int     `json:"score"`
	UserVote int     `json:"user_vote"`
}

// QuestionFilter list filters
type QuestionFilter struct {
	CourseID    *uint64
	GeneralOnly bool
	CourseIDs   []uint64 // restrict course-scoped results to these courses; nil = no restriction
	Tag         string
	Resolved    *bool
	AuthorID    *uint64
	Keyword     string
}
