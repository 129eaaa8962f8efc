package threadpool

import "errors"

const Namespace = "threadpool"

var (
	ErrPoolInactive      = errors.New(Namespace + ": cannot submit a task to an inactive pool")
	ErrTaskFailed        = errors.New(Namespace + ": task execution failed")
	ErrTaskPanicked      = errors.New(Namespace + ": task execution panicked")
	ErrTaskExited        = errors.New(Namespace + ": task exited its goroutine without returning")
	ErrAbandoned         = errors.New(Namespace + ": task abandoned before execution")
	ErrUnsupportedResize = errors.New(Namespace + ": unsupported resize")
	ErrResultRetrieved   = errors.New(Namespace + ": result already retrieved")
	ErrNilTask           = errors.New(Namespace + ": nil task")
	ErrInvalidConfig     = errors.New(Namespace + ": invalid configuration")
)
