package feistel

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/elliotchance/orderedmap"
)

var ErrEmptySchedule = errors.New("schedule must have at least one round")

// RoundKey holds the multiplicative (A) and additive (B) constants of one
// round.
type RoundKey struct {
	A int64
	B int64
}

func (k RoundKey) String() string {
	return fmt.Sprintf("(%d,%d)", k.A, k.B)
}

// Schedule is the ordered list of round keys. It is the whole secret of the
// construction.
type Schedule []RoundKey

func (s Schedule) Validate() error {
	if len(s) == 0 {
		return ErrEmptySchedule
	}
	return nil
}

func (s Schedule) Clone() Schedule {
	out := make(Schedule, len(s))
	copy(out, s)
	return out
}

func (s Schedule) String() string {
	keys := make([]string, len(s))
	for i, k := range s {
		keys[i] = k.String()
	}
	return "[" + strings.Join(keys, ",") + "]"
}

// ReferenceSchedule returns the three-round schedule the tool ships with.
// The first two rounds share a key; changing that changes the permutation.
func ReferenceSchedule() Schedule {
	return Schedule{{43, 37}, {43, 37}, {27, 108}}
}

var namedSchedules = newScheduleRegistry()

func newScheduleRegistry() *orderedmap.OrderedMap {
	m := orderedmap.NewOrderedMap()
	m.Set("reference", ReferenceSchedule())
	m.Set("distinct", Schedule{{43, 37}, {29, 101}, {27, 108}})
	// f is constant on every round; the network is still a bijection.
	m.Set("zero-multiplier", Schedule{{0, 37}, {0, 37}, {0, 108}})
	m.Set("single", Schedule{{43, 37}})
	return m
}

// ScheduleNames lists the built-in schedules in declaration order.
func ScheduleNames() []string {
	names := make([]string, 0, namedSchedules.Len())
	for e := namedSchedules.Front(); e != nil; e = e.Next() {
		names = append(names, e.Key.(string))
	}
	return names
}

// NamedSchedule looks up a built-in schedule.
func NamedSchedule(name string) (Schedule, error) {
	v, ok := namedSchedules.Get(name)
	if !ok {
		known := ScheduleNames()
		sort.Strings(known)
		return nil, fmt.Errorf("unknown schedule %q (known: %s)", name, strings.Join(known, "|"))
	}
	return v.(Schedule).Clone(), nil
}

// ParseSchedule reads one "a,b" round key per line. Blank lines and lines
// starting with '#' are skipped.
func ParseSchedule(r io.Reader) (Schedule, error) {
	var sched Schedule
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected \"a,b\", got %q", lineNum, line)
		}
		a, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad multiplier: %w", lineNum, err)
		}
		b, err := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad increment: %w", lineNum, err)
		}
		sched = append(sched, RoundKey{A: a, B: b})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := sched.Validate(); err != nil {
		return nil, err
	}
	return sched, nil
}

func LoadSchedule(filename string) (Schedule, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sched, err := ParseSchedule(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return sched, nil
}
