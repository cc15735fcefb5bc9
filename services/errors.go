package services

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindNotFound
	KindAuth
	KindPayment
	KindExternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	case KindPayment:
		return "payment"
	case KindExternal:
		return "external"
	default:
		return "unknown"
	}
}

// Error is a failure whose Message is safe to show to the caller. Err keeps
// the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func ValidationError(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }
func ConflictError(msg string) *Error   { return &Error{Kind: KindConflict, Message: msg} }
func NotFoundError(msg string) *Error   { return &Error{Kind: KindNotFound, Message: msg} }
func AuthError(msg string) *Error       { return &Error{Kind: KindAuth, Message: msg} }

func PaymentError(msg string, err error) *Error {
	return &Error{Kind: KindPayment, Message: msg, Err: err}
}

func ExternalError(msg string, err error) *Error {
	return &Error{Kind: KindExternal, Message: msg, Err: err}
}

// KindOf reports the Kind of err, or 0 for errors that did not come from a
// workflow decision.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

const (
	MsgUnauthorized     = "Unauthorized"
	MsgShortPassword    = "Password is required and should be min 6 characters long"
	MsgNameRequired     = "Name is required"
	MsgEmailTaken       = "Email is taken"
	MsgNoUser           = "No user found"
	MsgPasswordMismatch = "Password didn't match."
	MsgUserNotFound     = "User not found"
	MsgWrongCode        = "Wrong code! Try again."
	MsgTitleTaken       = "Title is taken, use another title."
	MsgNoImage          = "No image"
	MsgCourseNotFound   = "Course not found"
	MsgLessonNotFound   = "Lesson not found"
	MsgGeneric          = "Error. Try again."
)
