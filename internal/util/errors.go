package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUserDisabled        = errors.New("user disabled")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrInvalidSettings     = errors.New("settings must be a JSON object")
	ErrInvalidRole         = errors.New("unknown role")
	ErrCourseNotFound      = errors.New("course not found")
	ErrLessonNotFound      = errors.New("lesson not found")
	ErrTopicNotFound       = errors.New("topic not found")
	ErrCodeExampleNotFound = errors.New("code example not found")
	ErrActivityNotFound    = errors.New("activity not found")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrSessionNotFound     = errors.New("learning session not found")
	ErrSessionEnded        = errors.New("learning session already ended")
	ErrInvalidDuration     = errors.New("session duration must be positive")
	ErrEmptySubmission     = errors.New("submission code must not be empty")
	ErrSubmissionTooLarge  = errors.New("submission code is too large")
	ErrQuotaExceeded       = errors.New("question quota exhausted for this session")
	ErrEmptyQuestion       = errors.New("question must not be empty")
	ErrAssistantFailed     = errors.New("assistant request failed")
)
