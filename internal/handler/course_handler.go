package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/service"
	"github.com/gyansetu/gyansetu-backend/pkg/ginutil"
)

// CourseHandler handles course and enrollment requests
type CourseHandler struct {
	service service.CourseService
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(service service.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// AssignRequest course assignment payload; a null admin_id releases the course
type AssignRequest struct {
	AdminID *uint64 `json:"admin_id"`
}

// EnrollmentRequest staff enrollment payload
type EnrollmentRequest struct {
	StudentID uint64 `json:"student_id" validate:"required"`
}

// List handles GET /api/v1/courses
func (h *CourseHandler) List(c *gin.Context) {
	page, limit := ginutil.Pagination(c)
	courses, total, err := h.service.List(page, limit, c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	common.SuccessWithMeta(c, courses, common.NewMeta(page, limit, total))
}

// Get handles GET /api/v1/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	course, err := h.service.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, course)
}

// Enroll handles POST /api/v1/courses/:id/enroll
func (h *CourseHandler) Enroll(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	actor := actorOf(c)
	if err := h.service.Enroll(actor, actor.ID, id); err != nil {
		respondError(c, err)
		return
	}
	common.OK(c)
}

// Unenroll handles DELETE /api/v1/courses/:id/enroll
func (h *CourseHandler) Unenroll(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	actor := actorOf(c)
	if err := h.service.Unenroll(actor, actor.ID, id); err != nil {
		respondError(c, err)
		return
	}
	common.OK(c)
}

// MyEnrollments handles GET /api/v1/me/enrollments
func (h *CourseHandler) MyEnrollments(c *gin.Context) {
	courses, err := h.service.ListEnrollments(actorOf(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, courses)
}

// Create handles POST /api/admin/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req service.CourseRequest
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.service.Create(actorOf(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Created(c, course)
}

// Update handles PUT /api/admin/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req service.CourseRequest
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.service.Update(actorOf(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, course)
}

// Delete handles DELETE /api/admin/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(actorOf(c), id); err != nil {
		respondError(c, err)
		return
	}
	common.OK(c)
}

// Assign handles POST /api/admin/courses/:id/assign
func (h *CourseHandler) Assign(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req AssignRequest
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.service.Assign(actorOf(c), id, req.AdminID)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Success(c, course)
}

// AddEnrollment handles POST /api/admin/courses/:id/enrollments
func (h *CourseHandler) AddEnrollment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req EnrollmentRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.service.Enroll(actorOf(c), req.StudentID, id); err != nil {
		respondError(c, err)
		return
	}
	common.OK(c)
}

// RemoveEnrollment handles DELETE /api/admin/courses/:id/enrollments/:studentId
func (h *CourseHandler) RemoveEnrollment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	studentID, ok := paramID(c, "studentId")
	if !ok {
		return
	}
	if err := h.service.Unenroll(actorOf(c), studentID, id); err != nil {
		respondError(c, err)
		return
	}
	common.OK(c)
}
