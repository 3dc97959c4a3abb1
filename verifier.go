package feistel

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

var ErrNoSamples = errors.New("sample count must be positive")

// DefaultInterval is the number of inputs between progress reports.
const DefaultInterval = 10000

// How often (in inputs) a running pass looks at its context.
const cancelCheckMask = 1<<12 - 1

// Permutation is a candidate bijection on [0, Max()].
type Permutation interface {
	Eval(v uint64) (uint64, error)
	Max() uint64
}

// Invertible permutations are additionally round-trip checked by Sample.
type Invertible interface {
	Permutation
	Invert(v uint64) (uint64, error)
}

// Result is the outcome of a verification pass.
type Result struct {
	State     State
	Processed uint64
	// Total is the number of inputs the pass would cover if it ran to the end.
	Total uint64
	// Table is the output->input table of an exhaustive pass. It is nil for
	// sampled passes.
	Table *Table
}

// Verifier checks that a Permutation is a bijection on its domain.
type Verifier struct {
	perm     Permutation
	reporter Reporter
	interval uint64
}

type Option func(*Verifier)

func WithReporter(r Reporter) Option {
	return func(v *Verifier) {
		v.reporter = r
	}
}

// WithInterval sets the progress interval. Zero disables progress reports.
func WithInterval(n uint64) Option {
	return func(v *Verifier) {
		v.interval = n
	}
}

func NewVerifier(perm Permutation, opts ...Option) *Verifier {
	v := &Verifier{
		perm:     perm,
		reporter: Discard,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Verifier) percent(i uint64) float64 {
	limit := v.perm.Max()
	if limit == 0 {
		return 100
	}
	return float64(i) * 100 / float64(limit)
}

func (v *Verifier) progress(i, total uint64) {
	v.reporter.Report(Message{
		State:     InProgress,
		Processed: i,
		Total:     total,
		Percent:   v.percent(i),
	})
}

func (v *Verifier) finish(res *Result) *Result {
	res.State = AllVerified
	v.reporter.Report(Message{
		State:     AllVerified,
		Processed: res.Processed,
		Total:     res.Total,
		Percent:   100,
	})
	return res
}

func (v *Verifier) abort(res *Result, err error) (*Result, error) {
	res.State = Aborted
	var pct float64
	if res.Total > 0 {
		pct = float64(res.Processed) * 100 / float64(res.Total)
	}
	v.reporter.Report(Message{
		State:     Aborted,
		Processed: res.Processed,
		Total:     res.Total,
		Percent:   pct,
		Err:       err,
	})
	return res, err
}

func (v *Verifier) exhaustiveDomain() (uint64, error) {
	limit := v.perm.Max()
	if limit > 1<<MaxExhaustiveBits-1 {
		return 0, fmt.Errorf("%w: max %d", ErrDomainTooLarge, limit)
	}
	return limit, nil
}

// check evaluates input i and records it in the table.
func (v *Verifier) check(table *Table, i, limit uint64) error {
	m, err := v.perm.Eval(i)
	if err != nil {
		return fmt.Errorf("evaluating %d: %w", i, err)
	}
	if m > limit {
		return &RangeViolationError{Input: i, Output: m, Max: limit}
	}
	if prior, ok := table.claim(m, i); !ok {
		first, second := prior, i
		if first > second {
			first, second = second, first
		}
		return &CollisionError{Output: m, First: first, Second: second}
	}
	return nil
}

// Verify walks the whole domain in increasing order and stops at the first
// range violation or collision. On success the result's table is the inverse
// of the permutation.
func (v *Verifier) Verify(ctx context.Context) (*Result, error) {
	limit, err := v.exhaustiveDomain()
	if err != nil {
		return nil, err
	}

	res := &Result{State: InProgress, Total: limit + 1, Table: newTable(limit + 1)}
	for i := uint64(0); i <= limit; i++ {
		if i&cancelCheckMask == 0 {
			if err := ctx.Err(); err != nil {
				return v.abort(res, err)
			}
		}
		if v.interval > 0 && i%v.interval == 0 {
			v.progress(i, res.Total)
		}
		if err := v.check(res.Table, i, limit); err != nil {
			return v.abort(res, err)
		}
		res.Processed++
	}
	return v.finish(res), nil
}

// VerifyParallel splits the domain into contiguous shards, one per worker,
// sharing a single table. The first violation found cancels the other
// workers. Which violation is reported may vary between runs when there is
// more than one; colliding inputs are always reported smaller first.
func (v *Verifier) VerifyParallel(ctx context.Context, workers int) (*Result, error) {
	limit, err := v.exhaustiveDomain()
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	total := limit + 1
	res := &Result{State: InProgress, Total: total, Table: newTable(total)}

	var processed atomic.Uint64
	var mu sync.Mutex
	var lastReported uint64

	v.progress(0, total)

	g, gctx := errgroup.WithContext(ctx)
	shard := (total + uint64(workers) - 1) / uint64(workers)
	for lo := uint64(0); lo < total; lo += shard {
		lo, hi := lo, min(lo+shard, total)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if (i-lo)&cancelCheckMask == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				if err := v.check(res.Table, i, limit); err != nil {
					return err
				}
				n := processed.Add(1)
				if v.interval > 0 && n%v.interval == 0 {
					mu.Lock()
					if n > lastReported {
						lastReported = n
						v.progress(n, total)
					}
					mu.Unlock()
				}
			}
			return nil
		})
	}

	err = g.Wait()
	res.Processed = processed.Load()
	if err != nil {
		return v.abort(res, err)
	}
	return v.finish(res), nil
}

// Sample evaluates n inputs drawn from src instead of the whole domain. It
// checks the range of every output, that no two distinct sampled inputs
// collide and, for Invertible permutations, that Invert undoes Eval. It is
// the only check available past MaxExhaustiveBits.
func (v *Verifier) Sample(ctx context.Context, n int, src *rand.Rand) (*Result, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNoSamples, n)
	}
	limit := v.perm.Max()
	inv, _ := v.perm.(Invertible)

	res := &Result{State: InProgress, Total: uint64(n)}
	seen := make(map[uint64]uint64, n)
	for k := 0; k < n; k++ {
		if k&cancelCheckMask == 0 {
			if err := ctx.Err(); err != nil {
				return v.abort(res, err)
			}
		}
		if v.interval > 0 && uint64(k)%v.interval == 0 {
			v.reporter.Report(Message{
				State:     InProgress,
				Processed: uint64(k),
				Total:     res.Total,
				Percent:   float64(k) * 100 / float64(n),
			})
		}

		i := randInDomain(src, limit)
		m, err := v.perm.Eval(i)
		if err != nil {
			return v.abort(res, fmt.Errorf("evaluating %d: %w", i, err))
		}
		if m > limit {
			return v.abort(res, &RangeViolationError{Input: i, Output: m, Max: limit})
		}
		if prior, ok := seen[m]; ok && prior != i {
			first, second := min(prior, i), max(prior, i)
			return v.abort(res, &CollisionError{Output: m, First: first, Second: second})
		}
		seen[m] = i
		if inv != nil {
			back, err := inv.Invert(m)
			if err != nil {
				return v.abort(res, fmt.Errorf("inverting %d: %w", m, err))
			}
			if back != i {
				return v.abort(res, &InverseMismatchError{Input: i, Output: m, Inverted: back})
			}
		}
		res.Processed++
	}
	return v.finish(res), nil
}

// randInDomain draws a value uniformly from [0, limit].
func randInDomain(src *rand.Rand, limit uint64) uint64 {
	if limit >= math.MaxInt64 {
		return src.Uint64()
	}
	return uint64(src.Int63n(int64(limit) + 1))
}
