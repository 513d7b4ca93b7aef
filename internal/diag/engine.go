package diag

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/termfx/vhdlcore/internal/loc"
)

// ColorMode controls whether Emit paints source rendering with ANSI color.
type ColorMode uint8

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ErrTooManyErrors is returned by Emit once the engine's error_limit has
// been reached, per spec.md §4.3/§7: the caller is expected to treat this as
// fatal and stop the current compilation pass.
var ErrTooManyErrors = errors.New("diag: too many errors")

// Engine renders and counts diagnostics for one compilation session. It is
// the narrow realization of spec.md §6's "diagnostic sink" collaborator
// contract, carrying the process-wide error counter and error_limit the
// spec describes.
type Engine struct {
	reg        *loc.FileRegistry
	out        io.Writer
	color      ColorMode
	errorLimit int
	errorCount int

	// UnitTest mirrors spec.md §4.3 step 5's "or unit-test mode": when set,
	// every diagnostic (not just Error/Fatal) counts toward errorCount, so
	// test harnesses can assert "zero diagnostics of any kind" rather than
	// only "zero errors".
	UnitTest bool

	// Consumer, if set, is called for every Diag in addition to rendering.
	// Tests and callers that want diagnostics as data rather than text wire
	// this in instead of parsing Emit's rendered output.
	Consumer func(*Diag)
}

// NewEngine constructs an Engine that renders source excerpts from reg to
// out, stopping the session (via ErrTooManyErrors) once errorLimit Error or
// Fatal diagnostics have been emitted. errorLimit <= 0 means unlimited.
func NewEngine(reg *loc.FileRegistry, out io.Writer, errorLimit int, color ColorMode) *Engine {
	return &Engine{reg: reg, out: out, errorLimit: errorLimit, color: color}
}

// ErrorCount reports how many Error/Fatal diagnostics have been emitted, or
// how many diagnostics of any level when UnitTest is set.
func (e *Engine) ErrorCount() int { return e.errorCount }

// Emit renders d to the engine's writer and updates the error counter. It
// returns ErrTooManyErrors once errorLimit has been reached so callers can
// unwind cleanly instead of continuing to compile doomed input.
func (e *Engine) Emit(d *Diag) error {
	if e.Consumer != nil {
		e.Consumer(d)
	}
	if err := e.Femit(e.out, d); err != nil {
		return err
	}
	if d.Level == Error || d.Level == Fatal || e.UnitTest {
		e.errorCount++
	}
	if d.Level == Fatal {
		return fmt.Errorf("%w: %s", ErrTooManyErrors, d.Text)
	}
	if e.errorLimit > 0 && e.errorCount >= e.errorLimit {
		return ErrTooManyErrors
	}
	return nil
}

// Femit renders d to an explicit writer without touching the engine's own
// error counter, so a diagnostic can be rendered without affecting the
// session's pass/fail status. Emit calls it for its own rendering step.
func (e *Engine) Femit(w io.Writer, d *Diag) error {
	return renderDiag(w, e.reg, d, e.useColor(w))
}

func (e *Engine) useColor(w io.Writer) bool {
	switch e.color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		f, ok := w.(*os.File)
		return ok && isatty.IsTerminal(f.Fd())
	}
}
