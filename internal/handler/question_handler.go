package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/domain"
	"github.com/gyansetu/gyansetu-backend/internal/service"
	"github.com/gyansetu/gyansetu-backend/pkg/ginutil"
)

// QuestionHandler handles question requests
type QuestionHandler struct {
	questions service.QuestionService
	votes     service.VoteService
}

// NewQuestionHandler creates a new QuestionHandler
func NewQuestionHandler(questions service.QuestionService, votes service.VoteService) *QuestionHandler {
	return &QuestionHandler{questions: questions, votes: votes}
}

// VoteRequest vote payload. Repeating the current vote removes it.
type VoteRequest struct {
	Value int `json:"value" validate:"required,oneof=1 -1"`
}

func queryBool(c *gin.Context, key string) *bool {
	v, err := strconv.ParseBool(c.Query(key))
	if err != nil {
		return nil
	}
	return &v
}

// List handles GET /api/v1/questions
func (h *QuestionHandler) List(c *gin.Context) {
	page, limit := ginutil.Pagination(c)
	general := queryBool(c, "general")
	params := service.QuestionListParams{
		CourseID: ginutil.QueryUint64(c, "course_id"),
		General:  general != nil && *general,
		Tag:      c.Query("tag"),
		Resolved: queryBool(c, "resolved"),
		AuthorID: ginutil.QueryUint64(c, "author_id"),
		Keyword:  c.Query("q"),
		Page:     page,
		Limit:    limit,
	}
	items, total, err := h.questions.List(actorOf(c), params)
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessWithMeta(c, items, common.NewMeta(page, limit, total))
}

// Create handles POST /api/v1/questions
func (h *QuestionHandler) Create(c *gin.Context) {
	var req service.QuestionRequest
	if !bindJSON(c, &req) {
		return
	}
	q, err := h.questions.Create(actorOf(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Created(c, q)
}

// Get handles GET /api/v1/questions/:id
func (h *QuestionHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	q, err := h.questions.Get(actorOf(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, q)
}

// Update handles PUT /api/v1/questions/:id
func (h *QuestionHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req service.QuestionRequest
	if !bindJSON(c, &req) {
		return
	}
	q, err := h.questions.Update(actorOf(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, q)
}

// Delete handles DELETE /api/v1/questions/:id
func (h *QuestionHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.questions.Delete(actorOf(c), id); err != nil {
		respondError(c, err)
		return
	}
	common.OK(c)
}

// Resolve handles POST /api/v1/questions/:id/resolve
func (h *QuestionHandler) Resolve(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	q, err := h.questions.Resolve(actorOf(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, q)
}

// Vote handles POST /api/v1/questions/:id/vote
func (h *QuestionHandler) Vote(c *gin.Context) {
	vote(c, h.votes, domain.VoteTargetQuestion)
}

func vote(c *gin.Context, votes service.VoteService, target domain.VoteTarget) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req VoteRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := votes.Vote(actorOf(c), target, id, req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, res)
}
