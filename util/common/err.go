package common

import (
	"errors"
	"fmt"

	"github.com/futurecast/futurecast/logger"
)

func NewErrorf(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	return errors.New(msg)
}

// Combine joins the non-nil errors, returning nil when all of them are nil.
func Combine(errs ...error) error {
	return errors.Join(errs...)
}

// Recover is meant to be deferred; it logs and swallows a panic.
func Recover(msg string) any {
	panicErr := recover()
	if panicErr != nil {
		if msg != "" {
			logger.Error(msg, "panic:", panicErr)
		}
	}
	return panicErr
}
