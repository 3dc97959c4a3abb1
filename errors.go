package feistel

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange     = errors.New("value out of range")
	ErrRangeViolation = errors.New("permutation output out of range")
	ErrCollision      = errors.New("collision detected")
)

// OutOfRangeError reports an input outside the permutation domain.
type OutOfRangeError struct {
	Value uint64
	Max   uint64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("the input number %d is not in the range: [0, %d]", e.Value, e.Max)
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// RangeViolationError reports a permutation output outside the domain.
// A correct Feistel network never produces one.
type RangeViolationError struct {
	Input  uint64
	Output uint64
	Max    uint64
}

func (e *RangeViolationError) Error() string {
	return fmt.Sprintf("the mapping is out of range: %d -> %d (max %d)", e.Input, e.Output, e.Max)
}

func (e *RangeViolationError) Is(target error) bool {
	return target == ErrRangeViolation
}

// CollisionError reports two distinct inputs sharing one output.
type CollisionError struct {
	Output uint64
	First  uint64
	Second uint64
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("%d is already mapped: %d %d", e.Output, e.First, e.Second)
}

func (e *CollisionError) Is(target error) bool {
	return target == ErrCollision
}

var ErrInverseMismatch = errors.New("inverse does not undo permutation")

// InverseMismatchError reports Invert(Eval(x)) != x.
type InverseMismatchError struct {
	Input    uint64
	Output   uint64
	Inverted uint64
}

func (e *InverseMismatchError) Error() string {
	return fmt.Sprintf("inverse mismatch: %d -> %d -> %d", e.Input, e.Output, e.Inverted)
}

func (e *InverseMismatchError) Is(target error) bool {
	return target == ErrInverseMismatch
}
