// Package diag implements the diagnostic reporting core: coalesced,
// multi-location messages with caret-underlined source rendering (spec.md
// §3.3, §4.3).
package diag

// Level classifies how serious a diagnostic is.
type Level uint8

const (
	Note Level = iota
	Warn
	Error
	Fatal
)

func (l Level) String() string {
	switch l {
	case Note:
		return "note"
	case Warn:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}
