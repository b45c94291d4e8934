package repository

import (
	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuestionRepository question data access
type QuestionRepository interface {
	Create(q *domain.Question) error
	FindByID(id uint64) (*domain.Question, error)
	List(filter domain.QuestionFilter, page, limit int) ([]domain.Question, int64, error)
	Update(q *domain.Question) error
	IncrementViewCount(id uint64) error
	// Resolve marks the question resolved and closes its pending reports
	Resolve(id uint64) error
	SetBestAnswer(id uint64, answerID *uint64) error
	// Delete removes the question in one transaction; dependent rows go through
	// ON DELETE CASCADE. Returns blob paths of the removed content.
	Delete(id uint64) ([]string, error)
}

type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(q *domain.Question) error {
	return r.db.Create(q).Error
}

func (r *questionRepository) FindByID(id uint64) (*domain.Question, error) {
	var q domain.Question
	if err := r.db.Where("id = ?", id).First(&q).Error; err != nil {
		return nil, notFound(err, common.ErrQuestionNotFound)
	}
	return &q, nil
}

func (r *questionRepository) List(filter domain.QuestionFilter, page, limit int) ([]domain.Question, int64, error) {
	var questions []domain.Question
	var total int64

	query := r.db.Model(&domain.Question{})
	switch {
	case filter.CourseID != nil:
		query = query.Where("course_id = ?", *filter.CourseID)
	case filter.GeneralOnly:
		query = query.Where("course_id IS NULL")
	case filter.CourseIDs != nil:
		if len(filter.CourseIDs) == 0 {
			query = query.Where("course_id IS NULL")
		} else {
			query = query.Where("course_id IS NULL OR course_id IN ?", filter.CourseIDs)
		}
	}
	if filter.Tag != "" {
		query = query.Where("tags LIKE ? ESCAPE '"+likeEscape+"'", containsPattern(","+filter.Tag+","))
	}
	if filter.Resolved != nil {
		query = query.Where("is_resolved = ?", *filter.Resolved)
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.Keyword != "" {
		like := containsPattern(filter.Keyword)
		query = query.Where("title LIKE ? ESCAPE '"+likeEscape+"' OR content LIKE ? ESCAPE '"+likeEscape+"'", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&questions).Error; err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

func (r *questionRepository) Update(q *domain.Question) error {
	return r.db.Model(&domain.Question{}).Where("id = ?", q.ID).Updates(map[string]interface{}{
		"title":        q.Title,
		"content":      q.Content,
		"tags":         q.Tags,
		"is_anonymous": q.IsAnonymous,
		"image_url":    q.ImageURL,
		"image_path":   q.ImagePath,
	}).Error
}

func (r *questionRepository) IncrementViewCount(id uint64) error {
	return r.db.Model(&domain.Question{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *questionRepository) Resolve(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return resolveQuestion(tx, id)
	})
}

func (r *questionRepository) SetBestAnswer(id uint64, answerID *uint64) error {
	return r.db.Model(&domain.Question{}).Where("id = ?", id).Update("best_answer_id", answerID).Error
}

func (r *questionRepository) Delete(id uint64) ([]string, error) {
	var paths []string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var q domain.Question
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&q).Error; err != nil {
			return notFound(err, common.ErrQuestionNotFound)
		}

		if q.ImagePath != nil && *q.ImagePath != "" {
			paths = append(paths, *q.ImagePath)
		}
		answerIDs := tx.Model(&domain.Answer{}).Select("id").Where("question_id = ?", id)
		more, err := collectImagePaths(tx, &domain.Answer{}, "question_id = ?", id)
		if err != nil {
			return err
		}
		paths = append(paths, more...)
		more, err = collectImagePaths(tx, &domain.Reply{}, "answer_id IN (?)", answerIDs)
		if err != nil {
			return err
		}
		paths = append(paths, more...)

		return tx.Delete(&domain.Question{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func collectImagePaths(tx *gorm.DB, model interface{}, query string, args ...interface{}) ([]string, error) {
	var paths []string
	err := tx.Model(model).
		Where(query, args...).
		Where("image_path IS NOT NULL AND image_path <> ''").
		Pluck("image_path", &paths).Error
	return paths, err
}
