package inventory

import (
	"errors"
	"fmt"
)

// Reason explains why the store declined a mutation
type Reason string

const (
	ReasonNotFound     Reason = "not_found"
	ReasonDuplicateKey Reason = "duplicate_key"
	ReasonEmptyKey     Reason = "empty_key"
)

// RejectedError is returned by a mutation that left the store untouched.
// Subject is the id or label key the rejection refers to.
type RejectedError struct {
	Reason  Reason
	Subject string
}

func (e *RejectedError) Error() string {
	if e.Subject == "" {
		return "rejected: " + string(e.Reason)
	}
	return fmt.Sprintf("rejected: %s (%s)", e.Reason, e.Subject)
}

// Is matches any RejectedError with the same reason, so the package
// sentinels work with errors.Is regardless of subject.
func (e *RejectedError) Is(target error) bool {
	t, ok := target.(*RejectedError)
	return ok && t.Reason == e.Reason
}

var (
	ErrNotFound     = &RejectedError{Reason: ReasonNotFound}
	ErrDuplicateKey = &RejectedError{Reason: ReasonDuplicateKey}
	ErrEmptyKey     = &RejectedError{Reason: ReasonEmptyKey}

	ErrInvalidStatus = errors.New("invalid device status")
)

// ReasonOf returns the rejection reason carried by err, or "" if err is
// nil or not a rejection.
func ReasonOf(err error) Reason {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected.Reason
	}
	return ""
}

func reject(reason Reason, subject string) error {
	return &RejectedError{Reason: reason, Subject: subject}
}
