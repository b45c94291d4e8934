package common

import (
	"errors"
	"net/http"
)

// HTTPStatus maps a business error to the status code it is reported with
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrNotEnrolled):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrCourseNotFound),
		errors.Is(err, ErrQuestionNotFound),
		errors.Is(err, ErrAnswerNotFound),
		errors.Is(err, ErrReplyNotFound),
		errors.Is(err, ErrReportNotFound),
		errors.Is(err, ErrNotificationNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUserAlreadyExists),
		errors.Is(err, ErrCourseCodeTaken),
		errors.Is(err, ErrAlreadyEnrolled),
		errors.Is(err, ErrDuplicateReport):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidRole),
		errors.Is(err, ErrOnlyStudentsEnroll),
		errors.Is(err, ErrTitleRequired),
		errors.Is(err, ErrContentRequired),
		errors.Is(err, ErrInvalidVote),
		errors.Is(err, ErrReasonRequired),
		errors.Is(err, ErrInvalidReportTgt):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// IsClientError reports whether err is a known business error (4xx)
func IsClientError(err error) bool {
	s := HTTPStatus(err)
	return s >= 400 && s < 500
}
