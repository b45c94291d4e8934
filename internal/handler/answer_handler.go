package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"github.com/gyansetu/gyansetu-backend/internal/service"
)

// AnswerHandler handles answer requests, including votes, acceptance and best-answer marking
type AnswerHandler struct {
	answers   service.AnswerService
	questions service.QuestionService
	votes     service.VoteService
}

// NewAnswerHandler creates a new AnswerHandler
func NewAnswerHandler(answers service.AnswerService, questions service.QuestionService, votes service.VoteService) *AnswerHandler {
	return &AnswerHandler{answers: answers, questions: questions, votes: votes}
}

// List handles GET /api/v1/questions/:id/answers
func (h *AnswerHandler) List(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	items, err := h.answers.ListByQuestion(actorOf(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, items)
}

// Create handles POST /api/v1/questions/:id/answers
func (h *AnswerHandler) Create(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req service.ContentRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.answers.Create(actorOf(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Created(c, a)
}

// Update handles PUT /api/v1/answers/:id
func (h *AnswerHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req service.ContentRequest
	if !bindJSON(c, &req) {
		return
	}
	a, err := h.answers.Update(actorOf(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, a)
}

// Delete handles DELETE /api/v1/answers/:id
func (h *AnswerHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.answers.Delete(actorOf(c), id); err != nil {
		respondError(c, err)
		return
	}
	common.OK(c)
}

// Vote handles POST /api/v1/answers/:id/vote
func (h *AnswerHandler) Vote(c *gin.Context) {
	vote(c, h.votes, domain.VoteTargetAnswer)
}

// Accept handles POST /api/v1/answers/:id/accept (toggle)
func (h *AnswerHandler) Accept(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res, err := h.votes.Accept(actorOf(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, res)
}

// MarkBest handles POST /api/v1/answers/:id/best (toggle)
func (h *AnswerHandler) MarkBest(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	q, err := h.questions.MarkBestAnswer(actorOf(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, q)
}
