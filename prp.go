package feistel

import (
	"fmt"
)

// RoundFunc is the keyed round function f(x) = (x*a + b) mod 2^split, where
// mask = 2^split - 1. The key is reduced modulo 2^split by the final mask:
// uint64 arithmetic wraps modulo 2^64, which is a multiple of 2^split, so
// negative or oversized constants need no extra handling.
//
// This is a linear map and offers no cryptographic strength.
func RoundFunc(x uint64, k RoundKey, mask uint64) uint64 {
	return (x*uint64(k.A) + uint64(k.B)) & mask
}

// PRP is a pseudorandom permutation of [0, 2^Bits - 1] built from a
// balanced Feistel network with one round per schedule entry.
//
// A PRP holds no mutable state and is safe for concurrent use.
type PRP struct {
	params   Params
	schedule Schedule
	split    uint
	mask     uint64
	max      uint64
}

func NewPRP(params Params, schedule Schedule) (*PRP, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := schedule.Validate(); err != nil {
		return nil, err
	}

	return &PRP{
		params:   params,
		schedule: schedule.Clone(),
		split:    uint(params.Split()),
		mask:     params.HalfMask(),
		max:      params.Max(),
	}, nil
}

func (prp *PRP) Params() Params {
	return prp.params
}

func (prp *PRP) Schedule() Schedule {
	return prp.schedule.Clone()
}

func (prp *PRP) Max() uint64 {
	return prp.max
}

// Round applies a single Feistel step to v, mapping (L, R) to (R, L ^ f(R)).
func (prp *PRP) Round(v uint64, k RoundKey) (uint64, error) {
	if v > prp.max {
		return 0, &OutOfRangeError{Value: v, Max: prp.max}
	}
	return prp.round(v, k), nil
}

func (prp *PRP) round(v uint64, k RoundKey) uint64 {
	left := v >> prp.split
	right := v & prp.mask

	newLeft := right
	newRight := left ^ RoundFunc(right, k, prp.mask)

	return newLeft<<prp.split | newRight
}

func (prp *PRP) unround(v uint64, k RoundKey) uint64 {
	newLeft := v >> prp.split
	newRight := v & prp.mask

	right := newLeft
	left := newRight ^ RoundFunc(right, k, prp.mask)

	return left<<prp.split | right
}

// Eval maps v to its image under the full schedule. Only the input is range
// checked: every round keeps both halves within split bits.
func (prp *PRP) Eval(v uint64) (uint64, error) {
	if v > prp.max {
		return 0, &OutOfRangeError{Value: v, Max: prp.max}
	}
	for _, k := range prp.schedule {
		v = prp.round(v, k)
	}
	return v, nil
}

// Invert is the inverse of Eval.
func (prp *PRP) Invert(v uint64) (uint64, error) {
	if v > prp.max {
		return 0, &OutOfRangeError{Value: v, Max: prp.max}
	}
	for i := len(prp.schedule) - 1; i >= 0; i-- {
		v = prp.unround(v, prp.schedule[i])
	}
	return v, nil
}

func (prp *PRP) String() string {
	return fmt.Sprintf("PRP(%s, %d rounds)", prp.params, len(prp.schedule))
}
