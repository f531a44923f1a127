package appointment

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConflict is returned by the store when an insert would overlap an
// active appointment. The orchestrator turns it into SlotUnavailableError.
var ErrConflict = errors.New("appointment: time conflict")

// ValidationError reports malformed input: unparseable date or time,
// unknown service, missing caller fields, past dates.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Code + ": " + e.Message
}

func Invalid(code, format string, args ...any) error {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// OutOfHoursError carries the valid range for the requested day so the
// caller-facing side can offer it.
type OutOfHoursError struct {
	Date    string
	Weekday string
	Closed  bool
	Open    string
	Close   string
}

func (e *OutOfHoursError) Error() string {
	if e.Closed {
		return fmt.Sprintf("closed on %s (%s)", e.Weekday, e.Date)
	}
	return fmt.Sprintf("outside business hours on %s: open %s-%s", e.Date, e.Open, e.Close)
}

// SlotUnavailableError means the requested interval is taken.
type SlotUnavailableError struct {
	Date         string
	Time         string
	Service      string
	Alternatives []string
}

func (e *SlotUnavailableError) Error() string {
	if len(e.Alternatives) == 0 {
		return fmt.Sprintf("%s at %s is not available", e.Date, e.Time)
	}
	return fmt.Sprintf("%s at %s is not available, try %s", e.Date, e.Time, strings.Join(e.Alternatives, ", "))
}

type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move appointment from %s to %s", e.From, e.To)
}

type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
}

func NotFound(entity string, key any) error {
	return &NotFoundError{Entity: entity, Key: fmt.Sprint(key)}
}

// StorageError wraps failures of the durable store itself. It is the only
// error in this package that is not an expected scheduling outcome.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
