package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/gyansetu/gyansetu-backend/internal/common"
	"github.com/gyansetu/gyansetu-backend/internal/middleware"
	"github.com/gyansetu/gyansetu-backend/internal/service"
	"github.com/gyansetu/gyansetu-backend/pkg/ginutil"
	"github.com/gyansetu/gyansetu-backend/pkg/logger"
)

var requestValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report json names in messages
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// actorOf builds the service actor from the auth middleware context
func actorOf(c *gin.Context) service.Actor {
	return service.Actor{ID: middleware.GetUserID(c), Role: middleware.GetRole(c)}
}

// bindJSON decodes and validates the body; on failure it writes a 400 and returns false
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := requestValidator.Struct(req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, validationMessage(err), nil)
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s is too long", fe.Field())
	case "min":
		return fmt.Sprintf("%s is too short", fe.Field())
	case "email":
		return "email is not a valid address"
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// paramID parses a numeric path parameter; on failure it writes a 400 and returns false
func paramID(c *gin.Context, key string) (uint64, bool) {
	id, err := ginutil.ParamUint64(c, key)
	if err != nil || id == 0 {
		common.ErrorResponse(c, http.StatusBadRequest, fmt.Sprintf("invalid %s", key), nil)
		return 0, false
	}
	return id, true
}

// respondError writes the error envelope for a service error. Business errors
// carry their own user-facing message; anything else is logged and hidden.
func respondError(c *gin.Context, err error) {
	status := common.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error(err, "%s %s failed", c.Request.Method, c.FullPath())
		common.ErrorResponse(c, status, "Something went wrong, please try again", nil)
		return
	}
	common.ErrorResponse(c, status, err.Error(), nil)
}
