package app_error

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// Kind separates the error classes the request layer needs to tell apart.
// Lock violations get their own class so clients can render "voting closed"
// instead of a generic validation message.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindForbidden
	KindLocked
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return 400
	case KindNotFound:
		return 404
	case KindForbidden, KindLocked:
		return 403
	default:
		return 500
	}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func Locked(message string) *Error {
	return &Error{Kind: KindLocked, Message: message}
}

func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// Respond writes the error with the status matching its class. Unclassified
// errors are treated as internal.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus(), gin.H{"error": appErr.Message})
		return
	}
	c.JSON(500, gin.H{"error": err.Error()})
}
