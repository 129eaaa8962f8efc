package threadpool

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// TaskMetaError exposes correlation metadata for a task failure.
type TaskMetaError interface {
	error
	Unwrap() error
	TaskID() uuid.UUID
	TaskSeq() uint64
}

// taskFailedError wraps the error returned (or panic raised) by a task.
// It matches ErrTaskFailed and unwraps to the original cause.
type taskFailedError struct {
	err error
	id  uuid.UUID
	seq uint64
}

func newTaskFailedError(err error, id uuid.UUID, seq uint64) error {
	if err == nil {
		return nil
	}
	return &taskFailedError{err: err, id: id, seq: seq}
}

func (e *taskFailedError) Error() string { return ErrTaskFailed.Error() + ": " + e.err.Error() }
func (e *taskFailedError) Unwrap() error { return e.err }

func (e *taskFailedError) Is(target error) bool { return target == ErrTaskFailed }

func (e *taskFailedError) TaskID() uuid.UUID { return e.id }
func (e *taskFailedError) TaskSeq() uint64   { return e.seq }

func (e *taskFailedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "task(seq=%d,id=%s): %+v", e.seq, e.id, e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractTaskID returns the ID of the failed task if err carries one.
func ExtractTaskID(err error) (uuid.UUID, bool) {
	var tme TaskMetaError
	if errors.As(err, &tme) {
		return tme.TaskID(), true
	}
	return uuid.Nil, false
}

// ExtractTaskSeq returns the submission sequence number of the failed task if err carries one.
func ExtractTaskSeq(err error) (uint64, bool) {
	var tme TaskMetaError
	if errors.As(err, &tme) {
		return tme.TaskSeq(), true
	}
	return 0, false
}
