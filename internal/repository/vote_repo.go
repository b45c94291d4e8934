package repository

import (
	"fmt"

	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteRepository question and answer votes
type VoteRepository interface {
	// Apply runs one vote submission atomically: the vote row, the author's
	// karma and the ledger entry change together.
	Apply(cmd domain.VoteCommand) (*domain.VoteResult, error)
	Scores(target domain.VoteTarget, ids []uint64) (map[uint64]int, error)
	UserVotes(target domain.VoteTarget, userID uint64, ids []uint64) (map[uint64]int, error)
	// Upvoters returns the ids of users with an upvote, per content id
	Upvoters(target domain.VoteTarget, ids []uint64) (map[uint64][]uint64, error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new VoteRepository
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

type voteTable struct {
	model  interface{}
	column string
}

func tableFor(target domain.VoteTarget) (voteTable, error) {
	switch target {
	case domain.VoteTargetQuestion:
		return voteTable{model: &domain.QuestionVote{}, column: "question_id"}, nil
	case domain.VoteTargetAnswer:
		return voteTable{model: &domain.AnswerVote{}, column: "answer_id"}, nil
	}
	return voteTable{}, fmt.Errorf("unknown vote target %q", target)
}

func voteRow(target domain.VoteTarget, id, userID uint64, value, applied int) interface{} {
	if target == domain.VoteTargetQuestion {
		return &domain.QuestionVote{QuestionID: id, UserID: userID, Value: value, AppliedKarma: applied}
	}
	return &domain.AnswerVote{AnswerID: id, UserID: userID, Value: value, AppliedKarma: applied}
}

func (r *voteRepository) Apply(cmd domain.VoteCommand) (*domain.VoteResult, error) {
	t, err := tableFor(cmd.Target)
	if err != nil {
		return nil, err
	}

	var result domain.VoteResult
	err = r.db.Transaction(func(tx *gorm.DB) error {
		var existing []struct {
			Value        int
			AppliedKarma int
		}
		if err := tx.Model(t.model).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("vote_value AS value, applied_karma").
			Where(t.column+" = ? AND user_id = ?", cmd.TargetID, cmd.VoterID).
			Scan(&existing).Error; err != nil {
			return err
		}
		current, previouslyApplied := domain.VoteNone, 0
		if len(existing) > 0 {
			current, previouslyApplied = existing[0].Value, existing[0].AppliedKarma
		}
		next := domain.NextVote(current, cmd.Value)

		// Undo what the old vote actually did, then apply the new one on top,
		// so the floor never leaks karma through a reversal.
		reversed, err := adjustKarma(tx, cmd.AuthorID, -previouslyApplied)
		if err != nil {
			return err
		}
		applied, err := adjustKarma(tx, cmd.AuthorID, next*cmd.Weight)
		if err != nil {
			return err
		}

		if next == domain.VoteNone {
			if err := tx.Where(t.column+" = ? AND user_id = ?", cmd.TargetID, cmd.VoterID).
				Delete(t.model).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: t.column}, {Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"vote_value", "applied_karma", "updated_at"}),
			}).Create(voteRow(cmd.Target, cmd.TargetID, cmd.VoterID, next, applied)).Error; err != nil {
				return err
			}
		}

		delta := reversed + applied
		entry := &domain.KarmaLog{
			UserID: cmd.AuthorID,
			Change: delta,
			Reason: domain.VoteReason(cmd.Target, current, next),
		}
		id := cmd.TargetID
		if cmd.Target == domain.VoteTargetQuestion {
			entry.QuestionID = &id
		} else {
			entry.AnswerID = &id
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("append karma log (user=%d): %w", cmd.AuthorID, err)
		}

		var score int
		if err := tx.Model(t.model).
			Select("COALESCE(SUM(vote_value), 0)").
			Where(t.column+" = ?", cmd.TargetID).
			Scan(&score).Error; err != nil {
			return err
		}

		result = domain.VoteResult{Score: score, UserVote: next, KarmaDelta: delta, Previous: current}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *voteRepository) Scores(target domain.VoteTarget, ids []uint64) (map[uint64]int, error) {
	scores := make(map[uint64]int, len(ids))
	if len(ids) == 0 {
		return scores, nil
	}
	t, err := tableFor(target)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID    uint64
		Score int
	}
	if err := r.db.Model(t.model).
		Select(t.column+" AS id, COALESCE(SUM(vote_value), 0) AS score").
		Where(t.column+" IN ?", ids).
		Group(t.column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		scores[row.ID] = row.Score
	}
	return scores, nil
}

func (r *voteRepository) UserVotes(target domain.VoteTarget, userID uint64, ids []uint64) (map[uint64]int, error) {
	votes := make(map[uint64]int, len(ids))
	if len(ids) == 0 || userID == 0 {
		return votes, nil
	}
	t, err := tableFor(target)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID    uint64
		Value int
	}
	if err := r.db.Model(t.model).
		Select(t.column+" AS id, vote_value AS value").
		Where(t.column+" IN ? AND user_id = ?", ids, userID).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		votes[row.ID] = row.Value
	}
	return votes, nil
}

func (r *voteRepository) Upvoters(target domain.VoteTarget, ids []uint64) (map[uint64][]uint64, error) {
	result := make(map[uint64][]uint64, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	t, err := tableFor(target)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		ID     uint64
		UserID uint64
	}
	if err := r.db.Model(t.model).
		Select(t.column+" AS id, user_id").
		Where(t.column+" IN ? AND vote_value = ?", ids, domain.VoteUp).
		Order("created_at ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ID] = append(result[row.ID], row.UserID)
	}
	return result, nil
}
