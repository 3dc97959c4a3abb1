package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"

	feistel "github.com/dimakogan/feistel-prp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}

// run verifies the configured permutation and returns the process exit
// code: 0 when every input checked out, 1 on any failure, 2 on bad usage.
func run(ctx context.Context, args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet(path.Base(os.Args[0]), flag.ContinueOnError)
	config := (&feistel.Config{FlagSet: fs}).AddDomainFlags().AddVerifyFlags()
	if err := config.ParseArgs(args); err != nil {
		if err != flag.ErrHelp {
			log.Printf("%v\n", err)
		}
		return 2
	}

	prof, err := feistel.NewProfiler(config.CpuProfile)
	if err != nil {
		log.Printf("%v\n", err)
		return 1
	}
	defer func() {
		if err := prof.Close(); err != nil {
			log.Printf("Failed to write profile: %s\n", err)
		}
	}()

	var reporter feistel.Reporter = feistel.NewLogReporter(stdout)
	if config.Color {
		reporter = feistel.NewColorReporter(stdout)
	}
	reporter = feistel.NewRateReporter(reporter)

	fmt.Fprintf(stdout, "# %s %s\n", fs.Name(), strings.Join(args, " "))

	if config.Watch {
		err = feistel.WatchSchedule(ctx, config.ScheduleFile, func(sched feistel.Schedule, err error) {
			if err != nil {
				log.Printf("Failed to load schedule: %s\n", err)
				return
			}
			// Failures are reported; the watch continues with the next edit.
			verify(ctx, stdout, config, sched, reporter)
		})
		if err != nil {
			log.Printf("Failed to watch %s: %s\n", config.ScheduleFile, err)
			return 1
		}
		return 0
	}

	sched, err := config.Schedule()
	if err != nil {
		log.Printf("Failed to load schedule: %s\n", err)
		return 1
	}
	res, err := verify(ctx, stdout, config, sched, reporter)
	if err != nil || res.State != feistel.AllVerified {
		return 1
	}
	return 0
}

func verify(ctx context.Context, stdout io.Writer, config *feistel.Config, sched feistel.Schedule, reporter feistel.Reporter) (*feistel.Result, error) {
	prp, err := feistel.NewPRP(config.Params(), sched)
	if err != nil {
		log.Printf("Failed to create PRP: %s\n", err)
		return nil, err
	}
	fmt.Fprintf(stdout, "# %s, mode %s, schedule %s\n", prp, config.Mode, sched)
	return config.Verify(ctx, prp, reporter)
}
