package miner

import "github.com/tonguys/ton-miner-client/pool"

// Kind discriminates the three ExecOutcome variants.
type Kind int

const (
	KindTimeout Kind = iota
	KindCrash
	KindOk
)

// ExecOutcome is the result of running one MinerProcess or one TaskExecutor
// attempt: exactly one of Timeout, Crash or Ok.
type ExecOutcome interface {
	Kind() Kind
}

// Timeout means the deadline was reached with no artifact produced.
type Timeout struct{}

func (Timeout) Kind() Kind { return KindTimeout }

// Crash means the child exited non-zero, failed to spawn or wait, or the
// artifact file was missing despite a zero exit.
type Crash struct {
	Msg  string
	Code int
}

func (Crash) Kind() Kind { return KindCrash }

// Ok means the child exited zero and its artifact was read successfully.
type Ok struct {
	Answer pool.Answer
}

func (Ok) Kind() Kind { return KindOk }
