package simp

import "github.com/termfx/vhdlcore/internal/ir"

// wrapProcess implements the common shape of spec.md §4.2.8: a new process
// containing stmts followed by a synthesized wait sensitive to sensRoots.
func (c *Context) wrapProcess(orig *ir.Node, stmts []*ir.Node, sensRoots []*ir.Node, postponed bool) *ir.Node {
	proc := c.Arena.New(ir.KindProcess)
	proc.SetLoc(orig.Loc())
	proc.SetStmts(stmts)
	proc.AppendStmt(c.buildWait(sensRoots))
	if postponed {
		proc.SetFlags(proc.Flags().Set(ir.FlagPostponed))
	}
	c.Stats.Desugared++
	return proc
}

// desugarConcSignalAssign implements spec.md §4.2.8 for a concurrent
// signal assignment: it becomes a process whose body is the equivalent
// sequential signal assignment.
func (c *Context) desugarConcSignalAssign(n *ir.Node) *ir.Node {
	body := c.Arena.New(ir.KindSignalAssign)
	body.SetLoc(n.Loc())
	body.SetTarget(n.Target())
	body.SetWaveforms(n.Waveforms())
	return c.wrapProcess(n, []*ir.Node{body}, n.Waveforms(), n.Flags().Has(ir.FlagPostponed))
}

// desugarConcProcCall implements spec.md §4.2.8 for a concurrent procedure
// call: it becomes a process whose body is the equivalent sequential call.
func (c *Context) desugarConcProcCall(n *ir.Node) *ir.Node {
	c.normalizeParams(n)
	body := c.Arena.New(ir.KindProcCall)
	body.SetLoc(n.Loc())
	body.SetRef(n.Ref())
	body.SetParams(n.Params())
	return c.wrapProcess(n, []*ir.Node{body}, paramValues(n.Params()), n.Flags().Has(ir.FlagPostponed))
}

// desugarConcSelectAssign implements spec.md §4.2.7's "select similarly
// reduces" note together with §4.2.8's desugaring: a literal scrutinee
// picks its matching (or "others") alternative directly, collapsing the
// selection before wrapping; a non-constant scrutinee keeps the full
// alternative set, reclassified as the body of the synthesized process.
func (c *Context) desugarConcSelectAssign(n *ir.Node) *ir.Node {
	scrut := n.Value()
	if scrut.Kind() == ir.KindLiteral {
		if result := matchChoice(n.Assocs(), scrut); result != nil {
			body := c.Arena.New(ir.KindSignalAssign)
			body.SetLoc(n.Loc())
			body.SetTarget(n.Target())
			wave := c.Arena.New(ir.KindWaveform)
			wave.SetValue(result)
			body.SetWaveforms([]*ir.Node{wave})
			c.Stats.DeadEliminated++
			return c.wrapProcess(n, []*ir.Node{body}, []*ir.Node{result}, false)
		}
	}
	triggers := append([]*ir.Node{scrut}, assocValues(n.Assocs())...)
	return c.wrapProcess(n, []*ir.Node{n}, triggers, false)
}

// desugarConcAssert implements spec.md §4.2.7/§4.2.8 for concurrent
// assertion: a constantly-true condition drops the statement; otherwise it
// becomes a process whose body is the equivalent sequential assertion.
func (c *Context) desugarConcAssert(n *ir.Node) *ir.Node {
	if v, ok := asBool(n.Value()); ok && v {
		c.Stats.DeadEliminated++
		return nil
	}
	body := c.Arena.New(ir.KindAssert)
	body.SetLoc(n.Loc())
	body.SetValue(n.Value())
	if n.Message() != nil {
		body.SetMessage(n.Message())
	}
	if n.Severity() != nil {
		body.SetSeverity(n.Severity())
	}
	return c.wrapProcess(n, []*ir.Node{body}, []*ir.Node{n.Value()}, n.Flags().Has(ir.FlagPostponed))
}

// matchChoice returns the result expression of whichever alternative scrut
// matches, preferring an explicit choice match over "others". Choices are
// carried in the "range" field of an Assoc (RangeExpr with just Left set
// for a single-value choice, or a true To/Downto range for a range
// choice) since a selected-assignment alternative needs both a choice and
// a result in one Assoc and the shared Assoc shape only has one spare
// slot for it (spec.md §3.2).
func matchChoice(assocs []ir.Assoc, scrut *ir.Node) *ir.Node {
	var others *ir.Node
	for _, a := range assocs {
		if a.Kind == ir.AssocOthers {
			others = a.Value
			continue
		}
		if a.Range == nil {
			continue
		}
		if a.Range.Kind == ir.RangeExpr {
			if literalsEqual(a.Range.Left, scrut) {
				return a.Value
			}
			continue
		}
		if literalInRange(scrut, a.Range) {
			return a.Value
		}
	}
	return others
}

func paramValues(params []ir.Param) []*ir.Node {
	vals := make([]*ir.Node, 0, len(params))
	for _, p := range params {
		if p.Value != nil {
			vals = append(vals, p.Value)
		}
	}
	return vals
}

func assocValues(assocs []ir.Assoc) []*ir.Node {
	var vals []*ir.Node
	for _, a := range assocs {
		if a.Value != nil {
			vals = append(vals, a.Value)
		}
		if a.Range != nil {
			if a.Range.Left != nil {
				vals = append(vals, a.Range.Left)
			}
			if a.Range.Right != nil {
				vals = append(vals, a.Range.Right)
			}
		}
	}
	return vals
}
