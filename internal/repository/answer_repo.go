package repository

import (
	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnswerRepository answer data access
type AnswerRepository interface {
	Create(a *domain.Answer) error
	FindByID(id uint64) (*domain.Answer, error)
	ListByQuestion(questionID uint64) ([]domain.Answer, error)
	Update(a *domain.Answer) error
	// Delete removes the answer, its replies and votes, and clears it as best answer.
	// Returns blob paths of the removed content.
	Delete(id uint64) ([]string, error)
	// ToggleAccept accepts the answer, unaccepting any other accepted answer of the
	// same question, or unaccepts it if already accepted. Karma bonuses move with
	// the flag and are logged.
	ToggleAccept(id uint64, bonus int) (*domain.AcceptResult, error)
}

type answerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository creates a new AnswerRepository
func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Create(a *domain.Answer) error {
	return r.db.Create(a).Error
}

func (r *answerRepository) FindByID(id uint64) (*domain.Answer, error) {
	var a domain.Answer
	if err := r.db.Where("id = ?", id).First(&a).Error; err != nil {
		return nil, notFound(err, common.ErrAnswerNotFound)
	}
	return &a, nil
}

func (r *answerRepository) ListByQuestion(questionID uint64) ([]domain.Answer, error) {
	var answers []domain.Answer
	err := r.db.Where("question_id = ?", questionID).
		Order("is_accepted DESC, created_at ASC, id ASC").
		Find(&answers).Error
	return answers, err
}

func (r *answerRepository) Update(a *domain.Answer) error {
	return r.db.Model(&domain.Answer{}).Where("id = ?", a.ID).Updates(map[string]interface{}{
		"content":    a.Content,
		"image_url":  a.ImageURL,
		"image_path": a.ImagePath,
	}).Error
}

func (r *answerRepository) Delete(id uint64) ([]string, error) {
	var paths []string
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var a domain.Answer
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&a).Error; err != nil {
			return notFound(err, common.ErrAnswerNotFound)
		}
		if a.ImagePath != nil && *a.ImagePath != "" {
			paths = append(paths, *a.ImagePath)
		}
		more, err := collectImagePaths(tx, &domain.Reply{}, "answer_id = ?", id)
		if err != nil {
			return err
		}
		paths = append(paths, more...)

		if err := tx.Model(&domain.Question{}).
			Where("id = ? AND best_answer_id = ?", a.QuestionID, id).
			Update("best_answer_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Answer{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func (r *answerRepository) ToggleAccept(id uint64, bonus int) (*domain.AcceptResult, error) {
	result := &domain.AcceptResult{AnswerID: id}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var target domain.Answer
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&target).Error; err != nil {
			return notFound(err, common.ErrAnswerNotFound)
		}
		questionID := target.QuestionID

		if target.IsAccepted {
			if err := setAccepted(tx, id, false); err != nil {
				return err
			}
			entry := &domain.KarmaLog{
				UserID: target.AuthorID, Change: -bonus, Reason: domain.ReasonAnswerUnaccepted,
				QuestionID: &questionID, AnswerID: &target.ID,
			}
			if err := applyKarma(tx, entry); err != nil {
				return err
			}
			result.KarmaDelta = entry.Change
			return nil
		}

		var previous []domain.Answer
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("question_id = ? AND is_accepted = ? AND id <> ?", questionID, true, id).
			Find(&previous).Error; err != nil {
			return err
		}
		for i := range previous {
			prev := previous[i]
			if err := setAccepted(tx, prev.ID, false); err != nil {
				return err
			}
			if err := applyKarma(tx, &domain.KarmaLog{
				UserID: prev.AuthorID, Change: -bonus, Reason: domain.ReasonAnswerUnaccepted,
				QuestionID: &questionID, AnswerID: &prev.ID,
			}); err != nil {
				return err
			}
			result.Unaccepted = append(result.Unaccepted, prev.ID)
		}

		if err := setAccepted(tx, id, true); err != nil {
			return err
		}
		result.Accepted = true
		entry := &domain.KarmaLog{
			UserID: target.AuthorID, Change: bonus, Reason: domain.ReasonAnswerAccepted,
			QuestionID: &questionID, AnswerID: &target.ID,
		}
		if err := applyKarma(tx, entry); err != nil {
			return err
		}
		result.KarmaDelta = entry.Change
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func setAccepted(tx *gorm.DB, id uint64, accepted bool) error {
	return tx.Model(&domain.Answer{}).Where("id = ?", id).Update("is_accepted", accepted).Error
}
