package service

import (
	"context"
	"errors"
	"time"

	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"github.com/gyansetu/gyansetu-backend/pkg/cache"
	"github.com/gyansetu/gyansetu-backend/pkg/logger"
)

const cacheOpTimeout = 2 * time.Second

// cachedVoteService serves the leaderboard from Redis and drops it whenever karma moves
type cachedVoteService struct {
	VoteService
	cache cache.Service
}

// NewCachedVoteService wraps inner with a leaderboard cache. A disabled cache returns inner.
func NewCachedVoteService(inner VoteService, c cache.Service) VoteService {
	if c == nil || !c.IsAvailable() {
		return inner
	}
	return &cachedVoteService{VoteService: inner, cache: c}
}

func (s *cachedVoteService) Leaderboard(limit int) ([]domain.LeaderboardEntry, error) {
	limit = leaderboardLimit(limit)
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	var entries []domain.LeaderboardEntry
	err := s.cache.GetLeaderboard(ctx, limit, &entries)
	if err == nil {
		return entries, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		logger.Warn("leaderboard cache read failed: %v", err)
	}

	entries, err = s.VoteService.Leaderboard(limit)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetLeaderboard(ctx, limit, entries); err != nil {
		logger.Warn("leaderboard cache write failed: %v", err)
	}
	return entries, nil
}

func (s *cachedVoteService) Vote(actor Actor, target domain.VoteTarget, targetID uint64, value int) (*domain.VoteResult, error) {
	res, err := s.VoteService.Vote(actor, target, targetID, value)
	if err == nil && res.KarmaDelta != 0 {
		s.invalidate()
	}
	return res, err
}

func (s *cachedVoteService) Accept(actor Actor, answerID uint64) (*domain.AcceptResult, error) {
	res, err := s.VoteService.Accept(actor, answerID)
	if err == nil {
		s.invalidate()
	}
	return res, err
}

func (s *cachedVoteService) invalidate() {
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()
	if err := s.cache.InvalidateLeaderboard(ctx); err != nil {
		logger.Warn("leaderboard cache invalidation failed: %v", err)
	}
}
