package repository

import (
	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"gorm.io/gorm"
)

// ReportRepository moderation report data access
type ReportRepository interface {
	// Create inserts a pending report; a second pending report by the same
	// reporter on the same target returns common.ErrDuplicateReport.
	Create(report *domain.ModerationReport) error
	FindByID(id uint64) (*domain.ModerationReport, error)
	List(status domain.ReportStatus, page, limit int) ([]domain.ModerationReport, int64, error)
	Delete(id uint64) error
	// ResolveQuestion sets the question resolved and closes its pending reports
	ResolveQuestion(questionID uint64) error
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(report *domain.ModerationReport) error {
	kind, id, ok := domain.ReportTarget{
		QuestionID: report.QuestionID,
		AnswerID:   report.AnswerID,
		ReplyID:    report.ReplyID,
	}.Kind()
	if !ok {
		return common.ErrInvalidReportTgt
	}
	key := domain.PendingReportKey(report.ReporterID, kind, id)
	report.Status = domain.ReportPending
	report.PendingKey = &key

	if err := r.db.Create(report).Error; err != nil {
		if isDuplicateKey(err) {
			return common.ErrDuplicateReport
		}
		return err
	}
	return nil
}

func (r *reportRepository) FindByID(id uint64) (*domain.ModerationReport, error) {
	var report domain.ModerationReport
	if err := r.db.Where("id = ?", id).First(&report).Error; err != nil {
		return nil, notFound(err, common.ErrReportNotFound)
	}
	return &report, nil
}

func (r *reportRepository) List(status domain.ReportStatus, page, limit int) ([]domain.ModerationReport, int64, error) {
	var reports []domain.ModerationReport
	var total int64

	query := r.db.Model(&domain.ModerationReport{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *reportRepository) Delete(id uint64) error {
	res := r.db.Delete(&domain.ModerationReport{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrReportNotFound
	}
	return nil
}

func (r *reportRepository) ResolveQuestion(questionID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return resolveQuestion(tx, questionID)
	})
}

// resolveQuestion sets is_resolved and closes the question's pending reports.
// Shared by the author and staff paths so both leave the same state behind.
func resolveQuestion(tx *gorm.DB, questionID uint64) error {
	var count int64
	if err := tx.Model(&domain.Question{}).Where("id = ?", questionID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return common.ErrQuestionNotFound
	}
	if err := tx.Model(&domain.Question{}).
		Where("id = ?", questionID).
		Update("is_resolved", true).Error; err != nil {
		return err
	}
	return tx.Model(&domain.ModerationReport{}).
		Where("question_id = ? AND status = ?", questionID, domain.ReportPending).
		Updates(map[string]interface{}{
			"status":      domain.ReportResolved,
			"pending_key": nil,
		}).Error
}
