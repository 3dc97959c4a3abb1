package feistel

import (
	"flag"
	"fmt"
	"strings"
)

type Config struct {
	Bits         int
	ScheduleName string
	ScheduleFile string

	Mode     Mode
	Workers  int
	Samples  int
	Interval uint64

	Color      bool
	Watch      bool
	CpuProfile string

	modeStr string

	FlagSet *flag.FlagSet
}

func (c *Config) flagSet() *flag.FlagSet {
	if c.FlagSet == nil {
		c.FlagSet = flag.CommandLine
	}
	return c.FlagSet
}

func (c *Config) AddDomainFlags() *Config {
	fs := c.flagSet()
	fs.IntVar(&c.Bits, "bits", DefaultBits, "Domain width in bits (even)")
	fs.StringVar(&c.ScheduleName, "schedule", "reference",
		fmt.Sprintf("Built-in round schedule: [%s]", strings.Join(ScheduleNames(), "|")))
	fs.StringVar(&c.ScheduleFile, "scheduleFile", "", "read round keys from `file` (one \"a,b\" per line), overrides -schedule")
	return c
}

func (c *Config) AddVerifyFlags() *Config {
	fs := c.flagSet()
	fs.StringVar(&c.modeStr, "mode", Exhaustive.String(),
		fmt.Sprintf("Verification mode: [%s]", strings.Join(ModeStrings(), "|")))
	fs.IntVar(&c.Workers, "workers", 0, "Parallel workers (default: GOMAXPROCS)")
	fs.IntVar(&c.Samples, "samples", 1000000, "Number of sampled inputs in Sampled mode")
	fs.Uint64Var(&c.Interval, "interval", DefaultInterval, "Inputs between progress reports (0 disables)")
	fs.BoolVar(&c.Color, "color", true, "Colorize the outcome")
	fs.BoolVar(&c.Watch, "watch", false, "Re-verify whenever -scheduleFile changes")
	fs.StringVar(&c.CpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	return c
}

// ParseArgs parses args and checks that the resulting configuration can run.
func (c *Config) ParseArgs(args []string) error {
	fs := c.flagSet()
	if !fs.Parsed() {
		if err := fs.Parse(args); err != nil {
			return err
		}
	}

	if c.modeStr != "" {
		mode, err := ModeString(c.modeStr)
		if err != nil {
			return fmt.Errorf("bad mode: %s", c.modeStr)
		}
		c.Mode = mode
	}
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if c.Mode != Sampled && c.Bits > MaxExhaustiveBits {
		return fmt.Errorf("%w: use -mode %s", ErrDomainTooLarge, Sampled)
	}
	if c.Mode == Sampled && c.Samples < 1 {
		return fmt.Errorf("%w: -samples %d", ErrNoSamples, c.Samples)
	}
	if c.Watch && c.ScheduleFile == "" {
		return fmt.Errorf("-watch requires -scheduleFile")
	}
	return nil
}

func (c *Config) Params() Params {
	return Params{Bits: c.Bits}
}

func (c *Config) Schedule() (Schedule, error) {
	if c.ScheduleFile != "" {
		return LoadSchedule(c.ScheduleFile)
	}
	return NamedSchedule(c.ScheduleName)
}

func (c *Config) String() string {
	sched := c.ScheduleName
	if c.ScheduleFile != "" {
		sched = c.ScheduleFile
	}
	return fmt.Sprintf("%s/bits=%d,schedule=%s", c.Mode, c.Bits, sched)
}

func ModeStrings() []string {
	vals := ModeValues()
	strs := make([]string, len(vals))
	for i, val := range vals {
		strs[i] = val.String()
	}
	return strs
}
