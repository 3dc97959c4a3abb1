package feistel

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/paulbellamy/ratecounter"
)

// Message is one report emitted by a verifier: a progress tick while the
// pass is InProgress, then exactly one terminal message.
type Message struct {
	State     State
	Processed uint64
	Total     uint64
	Percent   float64
	// Rate is inputs per second, zero if unknown.
	Rate int64
	// Err is set on Aborted.
	Err error
}

func (m Message) String() string {
	switch m.State {
	case InProgress:
		s := fmt.Sprintf("Mapped: %d numbers - %.2f%%", m.Processed, m.Percent)
		if m.Rate > 0 {
			s += fmt.Sprintf(" (%d/s)", m.Rate)
		}
		return s
	case AllVerified:
		return fmt.Sprintf("No collisions found! (%d numbers)", m.Processed)
	case Aborted:
		return fmt.Sprintf("Aborted after %d numbers: %v", m.Processed, m.Err)
	}
	return fmt.Sprintf("%s: %d/%d", m.State, m.Processed, m.Total)
}

// Reporter receives progress and outcome messages. Verifiers never call
// Report concurrently.
type Reporter interface {
	Report(msg Message)
}

type ReporterFunc func(msg Message)

func (f ReporterFunc) Report(msg Message) {
	f(msg)
}

// Discard drops every message.
var Discard Reporter = ReporterFunc(func(Message) {})

// Reporters fans a message out to several reporters in order.
type Reporters []Reporter

func (rs Reporters) Report(msg Message) {
	for _, r := range rs {
		r.Report(msg)
	}
}

type LogReporter struct {
	Logger *log.Logger
}

func NewLogReporter(w io.Writer) *LogReporter {
	return &LogReporter{Logger: log.New(w, "", log.LstdFlags)}
}

func (r *LogReporter) Report(msg Message) {
	r.Logger.Println(msg)
}

// ColorReporter prints successes in green and failures in red.
type ColorReporter struct {
	w       io.Writer
	success *color.Color
	failure *color.Color
}

func NewColorReporter(w io.Writer) *ColorReporter {
	return &ColorReporter{
		w:       w,
		success: color.New(color.FgGreen, color.Bold),
		failure: color.New(color.FgRed, color.Bold),
	}
}

func (r *ColorReporter) Report(msg Message) {
	switch msg.State {
	case AllVerified:
		r.success.Fprintln(r.w, msg)
	case Aborted:
		r.failure.Fprintln(r.w, msg)
	default:
		fmt.Fprintln(r.w, msg)
	}
}

// RateReporter fills in Message.Rate from a one-second sliding window before
// handing the message on.
type RateReporter struct {
	next Reporter

	mu      sync.Mutex
	counter *ratecounter.RateCounter
	last    uint64
}

func NewRateReporter(next Reporter) *RateReporter {
	return &RateReporter{
		next:    next,
		counter: ratecounter.NewRateCounter(1 * time.Second),
	}
}

func (r *RateReporter) Report(msg Message) {
	r.mu.Lock()
	if msg.Processed < r.last {
		// A new pass started.
		r.last = 0
	}
	if msg.Processed > r.last {
		r.counter.Incr(int64(msg.Processed - r.last))
		r.last = msg.Processed
	}
	msg.Rate = r.counter.Rate()
	r.mu.Unlock()

	r.next.Report(msg)
}
