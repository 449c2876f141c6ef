package cli

import "github.com/llehouerou/songbrowser/internal/errmsg"

// opError tags an error with the operation that failed.
type opError struct {
	op      errmsg.Op
	context string
	err     error
}

func (e *opError) Error() string {
	return errmsg.FormatWith(e.op, e.context, e.err)
}

func (e *opError) Unwrap() error { return e.err }

func failed(op errmsg.Op, err error) error {
	if err == nil {
		return nil
	}
	return &opError{op: op, err: err}
}

func failedWith(op errmsg.Op, context string, err error) error {
	if err == nil {
		return nil
	}
	return &opError{op: op, context: context, err: err}
}
