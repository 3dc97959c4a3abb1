package feistel

import (
	"errors"
	"testing"

	"gotest.tools/assert"
	"pgregory.net/rapid"
)

func newReferencePRP(t testing.TB, bits int) *PRP {
	prp, err := NewPRP(Params{Bits: bits}, ReferenceSchedule())
	assert.NilError(t, err)
	return prp
}

func TestSingleRound(t *testing.T) {
	prp, err := NewPRP(Params{Bits: 4}, Schedule{{1, 0}})
	assert.NilError(t, err)

	// L = 0b10, R = 0b11, f(R) = 3: (0b11, 0b10^0b11) = 0b1101.
	out, err := prp.Round(0b1011, RoundKey{1, 0})
	assert.NilError(t, err)
	assert.Equal(t, out, uint64(0b1101))

	out, err = prp.Eval(0b1011)
	assert.NilError(t, err)
	assert.Equal(t, out, uint64(13))
}

func TestRoundFunc(t *testing.T) {
	mask := Params{Bits: 16}.HalfMask()
	assert.Equal(t, RoundFunc(3, RoundKey{1, 0}, 3), uint64(3))
	assert.Equal(t, RoundFunc(0, RoundKey{43, 37}, mask), uint64(37))
	assert.Equal(t, RoundFunc(1, RoundKey{43, 37}, mask), uint64(80))
	assert.Equal(t, RoundFunc(255, RoundKey{43, 37}, mask), uint64((255*43+37)%256))
	// Keys are taken modulo 2^split, negative ones included.
	assert.Equal(t, RoundFunc(57, RoundKey{-3, -7}, mask), RoundFunc(57, RoundKey{253, 249}, mask))
	assert.Equal(t, RoundFunc(57, RoundKey{43 + 256, 37 + 512}, mask), RoundFunc(57, RoundKey{43, 37}, mask))
}

func TestRoundFuncTotal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		split := rapid.IntRange(1, MaxBits/2).Draw(t, "split")
		mask := Params{Bits: 2 * split}.HalfMask()
		x := rapid.Uint64Range(0, mask).Draw(t, "x")
		k := RoundKey{A: rapid.Int64().Draw(t, "a"), B: rapid.Int64().Draw(t, "b")}
		if out := RoundFunc(x, k, mask); out > mask {
			t.Fatalf("f(%d, %v) = %d, exceeds %d", x, k, out, mask)
		}
	})
}

func TestReferenceVectors(t *testing.T) {
	for _, tc := range []struct {
		bits int
		in   uint64
		out  uint64
	}{
		{4, 0, 1},
		{4, 1, 0},
		{4, 15, 12},
		{8, 0, 197},
		{8, 1, 72},
		{8, 255, 56},
		{16, 0, 23557},
		{16, 1, 37976},
		{16, 2, 52363},
		{16, 255, 56410},
	} {
		prp := newReferencePRP(t, tc.bits)
		out, err := prp.Eval(tc.in)
		assert.NilError(t, err)
		assert.Equal(t, out, tc.out, "bits=%d in=%d", tc.bits, tc.in)
	}
}

func TestPRP(t *testing.T) {
	blockLenBits := 6
	prp := newReferencePRP(t, blockLenBits)

	domainSize := 1 << blockLenBits
	outs := make(map[uint64]bool)

	for i := uint64(0); i < uint64(domainSize); i++ {
		val, err := prp.Eval(i)
		assert.NilError(t, err)
		back, err := prp.Invert(val)
		assert.NilError(t, err)
		assert.Equal(t, back, i)
		outs[val] = true
	}
	assert.Equal(t, len(outs), domainSize)
	for i := uint64(0); i < uint64(domainSize); i++ {
		assert.Check(t, outs[i])
	}
}

func TestPRPOutOfRange(t *testing.T) {
	prp := newReferencePRP(t, 8)

	_, err := prp.Eval(256)
	assert.Assert(t, errors.Is(err, ErrOutOfRange))
	var oor *OutOfRangeError
	assert.Assert(t, errors.As(err, &oor))
	assert.Equal(t, oor.Value, uint64(256))
	assert.Equal(t, oor.Max, uint64(255))

	_, err = prp.Round(1<<20, RoundKey{43, 37})
	assert.Assert(t, errors.Is(err, ErrOutOfRange))

	_, err = prp.Invert(1000)
	assert.Assert(t, errors.Is(err, ErrOutOfRange))
}

func TestNewPRPValidation(t *testing.T) {
	_, err := NewPRP(Params{Bits: 7}, ReferenceSchedule())
	assert.Assert(t, errors.Is(err, ErrOddBits))

	_, err = NewPRP(Params{Bits: 0}, ReferenceSchedule())
	assert.Assert(t, errors.Is(err, ErrBitsRange))

	_, err = NewPRP(Params{Bits: 64}, ReferenceSchedule())
	assert.Assert(t, errors.Is(err, ErrBitsRange))

	_, err = NewPRP(Params{Bits: 8}, nil)
	assert.Assert(t, errors.Is(err, ErrEmptySchedule))
}

func TestPRPCopiesSchedule(t *testing.T) {
	sched := ReferenceSchedule()
	prp, err := NewPRP(Params{Bits: 8}, sched)
	assert.NilError(t, err)
	before, _ := prp.Eval(42)

	sched[0] = RoundKey{1, 1}
	after, _ := prp.Eval(42)
	assert.Equal(t, before, after)
}

func TestPRPDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		bits := 2 * rapid.IntRange(1, MaxBits/2).Draw(t, "half")
		prp, err := NewPRP(Params{Bits: bits}, ReferenceSchedule())
		if err != nil {
			t.Fatal(err)
		}
		max := prp.Max()
		x := rapid.Uint64Range(0, max).Draw(t, "x")
		y := rapid.Uint64Range(0, max).Draw(t, "y")

		px, _ := prp.Eval(x)
		// Evaluating another input in between must not change the result.
		py, _ := prp.Eval(y)
		px2, _ := prp.Eval(x)
		if px != px2 {
			t.Fatalf("P(%d) = %d then %d", x, px, px2)
		}
		if px > max || py > max {
			t.Fatalf("output out of range: P(%d)=%d P(%d)=%d max=%d", x, px, y, py, max)
		}
		if x != y && px == py {
			t.Fatalf("collision: P(%d) = P(%d) = %d", x, y, px)
		}
		if back, _ := prp.Invert(px); back != x {
			t.Fatalf("Invert(P(%d)) = %d", x, back)
		}
	})
}

func TestAnyScheduleIsBijective(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rounds := rapid.IntRange(1, 5).Draw(t, "rounds")
		sched := make(Schedule, rounds)
		for i := range sched {
			sched[i] = RoundKey{
				A: rapid.Int64Range(-300, 300).Draw(t, "a"),
				B: rapid.Int64Range(-300, 300).Draw(t, "b"),
			}
		}
		prp, err := NewPRP(Params{Bits: 8}, sched)
		if err != nil {
			t.Fatal(err)
		}
		seen := make(map[uint64]uint64)
		for i := uint64(0); i <= prp.Max(); i++ {
			m, _ := prp.Eval(i)
			if j, ok := seen[m]; ok {
				t.Fatalf("schedule %s: P(%d) = P(%d) = %d", sched, j, i, m)
			}
			seen[m] = i
		}
	})
}

func FuzzPRP(f *testing.F) {
	f.Add(uint64(0), int64(43), int64(37))
	f.Add(uint64(65535), int64(0), int64(0))
	f.Fuzz(func(t *testing.T, v uint64, a, b int64) {
		prp, err := NewPRP(Params{Bits: 16}, Schedule{{a, b}, {a, b}, {27, 108}})
		if err != nil {
			t.Fatal(err)
		}
		v &= prp.Max()
		out, err := prp.Eval(v)
		if err != nil {
			t.Fatal(err)
		}
		if got, _ := prp.Invert(out); got != v {
			t.Errorf("Invert(Eval(%d)) = %d, want = %d", v, got, v)
		}
	})
}

func BenchmarkEval(b *testing.B) {
	prp := newReferencePRP(b, 32)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		prp.Eval(uint64(i) & prp.Max())
	}
}
