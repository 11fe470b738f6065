package mq

// TempError marks a handler failure worth another delivery attempt.
type TempError struct {
	Err error
}

func (e TempError) Error() string {
	return e.Err.Error()
}

func (e TempError) Unwrap() error {
	return e.Err
}

func (e TempError) Temporary() bool {
	return true
}

// Temporary wraps err so the consumer requeues the delivery instead of
// dead-lettering it. A nil err stays nil.
func Temporary(err error) error {
	if err == nil {
		return nil
	}
	return TempError{Err: err}
}
