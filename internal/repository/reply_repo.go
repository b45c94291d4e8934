package repository

import (
	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"gorm.io/gorm"
)

// ReplyRepository reply data access
type ReplyRepository interface {
	Create(reply *domain.Reply) error
	FindByID(id uint64) (*domain.Reply, error)
	ListByAnswer(answerID uint64) ([]domain.Reply, error)
	Update(reply *domain.Reply) error
	Delete(id uint64) error
}

type replyRepository struct {
	db *gorm.DB
}

// NewReplyRepository creates a new ReplyRepository
func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &replyRepository{db: db}
}

func (r *replyRepository) Create(reply *domain.Reply) error {
	return r.db.Create(reply).Error
}

func (r *replyRepository) FindByID(id uint64) (*domain.Reply, error) {
	var reply domain.Reply
	if err := r.db.Where("id = ?", id).First(&reply).Error; err != nil {
		return nil, notFound(err, common.ErrReplyNotFound)
	}
	return &reply, nil
}

func (r *replyRepository) ListByAnswer(answerID uint64) ([]domain.Reply, error) {
	var replies []domain.Reply
	err := r.db.Where("answer_id = ?", answerID).Order("created_at ASC, id ASC").Find(&replies).Error
	return replies, err
}

func (r *replyRepository) Update(reply *domain.Reply) error {
	return r.db.Model(&domain.Reply{}).Where("id = ?", reply.ID).Updates(map[string]interface{}{
		"content":    reply.Content,
		"image_url":  reply.ImageURL,
		"image_path": reply.ImagePath,
	}).Error
}

func (r *replyRepository) Delete(id uint64) error {
	res := r.db.Delete(&domain.Reply{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrReplyNotFound
	}
	return nil
}
