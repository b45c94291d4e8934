package migration

import (
	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"gorm.io/gorm"
)

// Models lists every table in dependency order.
// Foreign keys come from the belongs-to fields on the child models.
func Models() []interface{} {
	return []interface{}{
		&domain.Profile{},
		&domain.Course{},
		&domain.Enrollment{},
		&domain.Question{},
		&domain.Answer{},
		&domain.Reply{},
		&domain.QuestionVote{},
		&domain.AnswerVote{},
		&domain.KarmaLog{},
		&domain.ModerationReport{},
		&domain.Notification{},
	}
}

// Run executes AutoMigrate for all tables. Safe to run multiple times.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
