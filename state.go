package feistel

//go:generate enumer -type=State
type State int

const (
	InProgress State = iota
	AllVerified
	Aborted
)

//go:generate enumer -type=Mode
type Mode int

const (
	Exhaustive Mode = iota
	Parallel
	Sampled
)
