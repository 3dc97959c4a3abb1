package feistel

import (
	"context"
	"fmt"
)

// Verify runs the verifier selected by c.Mode against perm.
func (c *Config) Verify(ctx context.Context, perm Permutation, r Reporter) (*Result, error) {
	v := NewVerifier(perm, WithReporter(r), WithInterval(c.Interval))
	switch c.Mode {
	case Exhaustive:
		return v.Verify(ctx)
	case Parallel:
		return v.VerifyParallel(ctx, c.Workers)
	case Sampled:
		return v.Sample(ctx, c.Samples, RandSource())
	}
	return nil, fmt.Errorf("unknown mode: %s", c.Mode)
}
