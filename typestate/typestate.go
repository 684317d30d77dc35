// Package typestate holds the lifecycle markers and the runtime ownership
// guards shared by every peripheral handle.
//
// Each lifecycle state is also a distinct handle type in its peripheral
// package, so wrong-state calls do not compile. What the compiler cannot see
// is reuse of a handle after a transition consumed it; Token covers that.
package typestate

import "lpc178x-hal/errcode"

// State is a closed set of lifecycle and mode markers.
type State interface {
	String() string
	state()
}

type (
	Disabled    struct{}
	Enabled     struct{}
	NonPeriodic struct{}
	Periodic    struct{}
	Unknown     struct{}
	Input       struct{}
	Output      struct{}
)

func (Disabled) String() string    { return "disabled" }
func (Enabled) String() string     { return "enabled" }
func (NonPeriodic) String() string { return "non_periodic" }
func (Periodic) String() string    { return "periodic" }
func (Unknown) String() string     { return "unknown" }
func (Input) String() string       { return "input" }
func (Output) String() string      { return "output" }

func (Disabled) state()    {}
func (Enabled) state()     {}
func (NonPeriodic) state() {}
func (Periodic) state()    {}
func (Unknown) state()     {}
func (Input) state()       {}
func (Output) state()      {}

// Require fails with InvalidStateTransition unless have is want.
func Require(op string, have, want State) error {
	if have == nil || want == nil || have.String() != want.String() {
		h := "nil"
		if have != nil {
			h = have.String()
		}
		w := "nil"
		if want != nil {
			w = want.String()
		}
		return errcode.New(errcode.InvalidStateTransition, op, "state is "+h+", need "+w)
	}
	return nil
}

// Token is a linear ownership token. Exactly one live token exists per
// hardware resource; transitions Move it into the next handle.
type Token struct {
	owner string
	dead  bool
}

// NewToken returns a live token labelled with the owning resource.
func NewToken(owner string) *Token { return &Token{owner: owner} }

// Owner returns the resource label.
func (t *Token) Owner() string {
	if t == nil {
		return ""
	}
	return t.owner
}

// Live reports whether the token has not been moved or retired.
func (t *Token) Live() bool { return t != nil && !t.dead }

// Check fails with OwnershipViolation once the token has been consumed.
func (t *Token) Check() error {
	if t == nil {
		return errcode.New(errcode.OwnershipViolation, "", "nil handle")
	}
	if t.dead {
		return errcode.New(errcode.OwnershipViolation, t.owner, "handle already consumed")
	}
	return nil
}

// Move consumes t and returns the token for the next handle.
func (t *Token) Move() (*Token, error) {
	if err := t.Check(); err != nil {
		return nil, err
	}
	t.dead = true
	return &Token{owner: t.owner}, nil
}

// Retire consumes t without a successor.
func (t *Token) Retire() error {
	if err := t.Check(); err != nil {
		return err
	}
	t.dead = true
	return nil
}
