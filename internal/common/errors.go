package common

import "errors"

// Business logic errors. The messages are shown to users as-is.
var (
	// General errors
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("you are not allowed to do that")
	ErrInvalidInput = errors.New("invalid input")

	// Auth errors
	ErrUnauthorized       = errors.New("please log in to continue")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("an account with this email already exists")
	ErrInvalidRole        = errors.New("invalid role")

	// Course errors
	ErrCourseNotFound     = errors.New("course not found")
	ErrCourseCodeTaken    = errors.New("a course with this code already exists")
	ErrNotEnrolled        = errors.New("you must be enrolled in this course")
	ErrAlreadyEnrolled    = errors.New("already enrolled in this course")
	ErrOnlyStudentsEnroll = errors.New("only students can be enrolled in a course")

	// Content errors
	ErrQuestionNotFound = errors.New("question not found")
	ErrAnswerNotFound   = errors.New("answer not found")
	ErrReplyNotFound    = errors.New("reply not found")
	ErrTitleRequired    = errors.New("title is required")
	ErrContentRequired  = errors.New("content is required")

	// Vote errors
	ErrInvalidVote = errors.New("vote must be 1 or -1")

	// Report errors
	ErrReportNotFound   = errors.New("report not found")
	ErrDuplicateReport  = errors.New("you have already reported this content")
	ErrReasonRequired   = errors.New("a reason is required")
	ErrInvalidReportTgt = errors.New("exactly one of question, answer or reply must be reported")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")
)
