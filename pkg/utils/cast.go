package utils

import (
	"errors"
	"fmt"
)

var ErrNilParam = errors.New("cast error: got nil param")

// SafeCast is a type assertion that reports a mismatch as an error.
func SafeCast[T any](param any) (T, error) {
	v, ok := param.(T)
	if ok {
		return v, nil
	}
	if param == nil {
		return v, ErrNilParam
	}
	return v, fmt.Errorf("cast error: got type %T, want type %T", param, v)
}
