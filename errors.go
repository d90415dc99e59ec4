package vtterm

import "fmt"

// ParserStuck reports that a parse routine failed to advance buf, pos, or
// fun — the one error kind the parser ever returns rather than logging and
// discarding. It indicates a bug in the state machine, not malformed input.
type ParserStuck struct {
	State string
}

func (e *ParserStuck) Error() string {
	return fmt.Sprintf("vtterm: parser made no progress in state %q", e.State)
}

// Every other malformed-input condition is never returned as an error:
// it is swallowed locally, with an optional log line when the parser's
// warn option is set. warnUnknown and warnInvalidString build one of
// these two kinds and hand it to the logger via Stringer, so log output
// can distinguish one silent-failure path from another.
type unknownSequenceKind struct {
	Kind string // "CC1", "ESC", "CSI", "OSC"
	Desc string
}

func (e unknownSequenceKind) String() string {
	return fmt.Sprintf("unknown %s sequence: %s", e.Kind, e.Desc)
}

type invalidStringSequenceKind struct {
	Reason string // "overlong", "timeout", "embedded-esc"
}

func (e invalidStringSequenceKind) String() string {
	return fmt.Sprintf("invalid string sequence: %s", e.Reason)
}
