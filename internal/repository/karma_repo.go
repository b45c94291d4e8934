package repository

import (
	"fmt"

	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KarmaRepository karma ledger read access. Writes happen inside the vote and
// accept transactions through applyKarma.
type KarmaRepository interface {
	History(userID uint64, page, limit int) ([]domain.KarmaLog, int64, error)
}

type karmaRepository struct {
	db *gorm.DB
}

// NewKarmaRepository creates a new KarmaRepository
func NewKarmaRepository(db *gorm.DB) KarmaRepository {
	return &karmaRepository{db: db}
}

func (r *karmaRepository) History(userID uint64, page, limit int) ([]domain.KarmaLog, int64, error) {
	var logs []domain.KarmaLog
	var total int64

	query := r.db.Model(&domain.KarmaLog{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// applyKarma adds entry.Change to the user's karma, floored at zero, and appends
// the ledger row with the change actually applied. Must run inside a transaction.
func applyKarma(tx *gorm.DB, entry *domain.KarmaLog) error {
	if entry.Change == 0 {
		return nil
	}
	applied, err := adjustKarma(tx, entry.UserID, entry.Change)
	if err != nil {
		return err
	}
	entry.Change = applied
	if err := tx.Create(entry).Error; err != nil {
		return fmt.Errorf("append karma log (user=%d): %w", entry.UserID, err)
	}
	return nil
}

// adjustKarma moves the user's karma by change without letting it drop below
// zero and returns the amount that was actually applied.
func adjustKarma(tx *gorm.DB, userID uint64, change int) (int, error) {
	if change == 0 {
		return 0, nil
	}
	var karma []int
	if err := tx.Model(&domain.Profile{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", userID).
		Pluck("karma_points", &karma).Error; err != nil {
		return 0, fmt.Errorf("read karma (user=%d): %w", userID, err)
	}
	if len(karma) == 0 {
		return 0, nil
	}
	applied := domain.FlooredChange(karma[0], change)
	if applied == 0 {
		return 0, nil
	}
	if err := tx.Model(&domain.Profile{}).
		Where("id = ?", userID).
		UpdateColumn("karma_points", karma[0]+applied).Error; err != nil {
		return 0, fmt.Errorf("update karma (user=%d): %w", userID, err)
	}
	return applied, nil
}
