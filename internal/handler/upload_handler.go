package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/service"
)

// UploadHandler handles image uploads
type UploadHandler struct {
	service service.UploadService
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(service service.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// UploadImage handles POST /api/v1/uploads
// @Summary Upload an image
// @Description Stores an image for a later question, answer or reply. Send the returned path as image_path.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "image file"
// @Success 201 {object} common.Response{data=storage.UploadResult}
// @Failure 400 {object} common.Response
// @Failure 401 {object} common.Response
// @Router /uploads [post]
func (h *UploadHandler) UploadImage(c *gin.Context) {
	if !h.service.Enabled() {
		common.ErrorResponse(c, http.StatusServiceUnavailable, "image uploads are disabled", nil)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "please choose a file", err)
		return
	}
	f, err := file.Open()
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "could not read the file", err)
		return
	}
	defer f.Close()

	result, err := h.service.UploadImage(c.Request.Context(), actorOf(c), file.Filename,
		file.Header.Get("Content-Type"), file.Size, f)
	if err != nil {
		respondError(c, err)
		return
	}
	common.Created(c, result)
}
