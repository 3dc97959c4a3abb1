package feistel

import (
	"errors"
	"fmt"
)

const (
	// DefaultBits is the domain width used when nothing else is configured.
	DefaultBits = 16

	// MinBits and MaxBits bound the supported domain widths.
	MinBits = 2
	MaxBits = 62

	// MaxExhaustiveBits is the widest domain the table-based verifiers accept;
	// its table takes 4 bytes per slot, 1 GiB at 28 bits. Wider domains can
	// only be checked with Sample.
	MaxExhaustiveBits = 28
)

var (
	ErrOddBits        = errors.New("bit width must be even")
	ErrBitsRange      = fmt.Errorf("bit width must be in [%d, %d]", MinBits, MaxBits)
	ErrDomainTooLarge = fmt.Errorf("domain too large for exhaustive verification (max %d bits)", MaxExhaustiveBits)
)

// Params fixes the width of the permutation domain [0, 2^Bits - 1].
type Params struct {
	Bits int
}

func (p Params) Validate() error {
	if p.Bits < MinBits || p.Bits > MaxBits {
		return fmt.Errorf("%w: got %d", ErrBitsRange, p.Bits)
	}
	if p.Bits%2 != 0 {
		return fmt.Errorf("%w: got %d", ErrOddBits, p.Bits)
	}
	return nil
}

// Split is the width of one half of a domain value.
func (p Params) Split() int {
	return p.Bits / 2
}

// Max is the largest value in the domain.
func (p Params) Max() uint64 {
	return (1 << uint(p.Bits)) - 1
}

func (p Params) HalfMask() uint64 {
	return (1 << uint(p.Split())) - 1
}

func (p Params) String() string {
	return fmt.Sprintf("%d bits [0, %d]", p.Bits, p.Max())
}
