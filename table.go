package feistel

import (
	"sync/atomic"
)

// Table records, for every output of a permutation, the input that produced
// it. Slots are written at most once; a second write to a slot is a
// collision. Claim is safe for concurrent use.
//
// A slot holds input+1, so zero means unset. Inputs stay below
// 2^MaxExhaustiveBits and fit in 32 bits.
type Table struct {
	slots []atomic.Uint32
	set   atomic.Uint64
}

func newTable(size uint64) *Table {
	return &Table{slots: make([]atomic.Uint32, size)}
}

// claim marks output as produced by input. If the slot is already taken it
// returns the earlier input and false.
func (t *Table) claim(output, input uint64) (prior uint64, ok bool) {
	slot := &t.slots[output]
	if slot.CompareAndSwap(0, uint32(input+1)) {
		t.set.Add(1)
		return 0, true
	}
	return uint64(slot.Load()) - 1, false
}

// Lookup returns the input that maps to output.
func (t *Table) Lookup(output uint64) (input uint64, ok bool) {
	if output >= uint64(len(t.slots)) {
		return 0, false
	}
	v := t.slots[output].Load()
	if v == 0 {
		return 0, false
	}
	return uint64(v) - 1, true
}

// Len is the number of slots, set or not.
func (t *Table) Len() uint64 {
	return uint64(len(t.slots))
}

// Filled is the number of set slots.
func (t *Table) Filled() uint64 {
	return t.set.Load()
}

// Complete reports whether every slot is set.
func (t *Table) Complete() bool {
	return t.Filled() == t.Len()
}
