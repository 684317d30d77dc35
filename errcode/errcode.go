package errcode

// Code is a stable, caller-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Configuration time.
	InvalidFrequencyRatio Code = "invalid_frequency_ratio"
	UnreachableFrequency  Code = "unreachable_frequency"
	BaudUnrepresentable   Code = "baud_unrepresentable"
	InvalidPinRouting     Code = "invalid_pin_routing"
	InvalidDuration       Code = "invalid_duration"
	InvalidParams         Code = "invalid_params"
	FieldOverflow         Code = "field_overflow"
	UnknownPin            Code = "unknown_pin"
	UnknownChip           Code = "unknown_chip"

	// Ownership and lifecycle.
	InvalidStateTransition Code = "invalid_state_transition"
	OwnershipViolation     Code = "ownership_violation"
	AlreadyTaken           Code = "already_taken"

	// Steady state.
	NotStarted Code = "not_started"
	WouldBlock Code = "would_block" // retry signal, not a failure

	Error Code = "error" // generic fallback
)

// E is the optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Is lets errors.Is(err, errcode.X) match a wrapped code.
func (e *E) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.C
}

// New builds an *E for op with a short message.
func New(c Code, op, msg string) *E { return &E{C: c, Op: op, Msg: msg} }

// Wrap builds an *E for op around a lower-level cause.
func Wrap(c Code, op string, err error) *E {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &E{C: c, Op: op, Msg: msg, Err: err}
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}

// IsWouldBlock reports whether err is the non-blocking retry signal.
func IsWouldBlock(err error) bool { return err != nil && Of(err) == WouldBlock }
