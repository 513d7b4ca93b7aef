package simp

import (
	"fmt"
	"strings"

	"github.com/termfx/vhdlcore/internal/ir"
)

const (
	attrLeft         = "LEFT"
	attrRight        = "RIGHT"
	attrLow          = "LOW"
	attrHigh         = "HIGH"
	attrLength       = "LENGTH"
	attrAscending    = "ASCENDING"
	attrPos          = "POS"
	attrDelayed      = "DELAYED"
	attrTransaction  = "TRANSACTION"
	attrRange        = "RANGE"
	attrReverseRange = "REVERSE_RANGE"
)

// simpAttrRef implements spec.md §4.2.5: bound/length/ascending/pos
// attributes fold to a literal when the prefix's constraint is known at
// compile time; 'DELAYED and 'TRANSACTION synthesize an implicit driven
// signal instead, per the Open Question decision recorded in DESIGN.md,
// 'RANGE/'REVERSE_RANGE on an unconstrained dimension are left unfolded.
func (c *Context) simpAttrRef(n *ir.Node) *ir.Node {
	attr := strings.ToUpper(n.Ident().Name())
	switch attr {
	case attrLeft, attrRight, attrLow, attrHigh, attrAscending:
		return c.foldBoundAttr(n, attr)
	case attrLength:
		return c.foldLengthAttr(n)
	case attrPos:
		return c.foldPosAttr(n)
	case attrDelayed:
		return c.synthDelayed(n)
	case attrTransaction:
		return c.synthTransaction(n)
	case attrRange, attrReverseRange:
		c.note(n, "cannot fold '%s on an unconstrained dimension", attr)
		return n
	default:
		return n
	}
}

// resolveRange finds the discrete range constraining prefix, when prefix
// is a reference to a subtype declaration that carries one. Object
// declarations (signals, variables, constants, ports, generics) don't
// expose their subtype's range through this IR's narrow TypeRef (spec.md
// §9: full type algebra belongs to the external semantic analyzer), so
// bound-attribute folding is scoped to prefixes that resolve directly to
// a constrained subtype.
func resolveRange(prefix *ir.Node) *ir.Range {
	if prefix == nil || prefix.Kind() != ir.KindRef {
		return nil
	}
	target := prefix.Ref()
	if target == nil || target.Kind() != ir.KindSubtypeDecl {
		return nil
	}
	return target.Range()
}

func (c *Context) foldBoundAttr(n *ir.Node, attr string) *ir.Node {
	rng := resolveRange(n.Name())
	if rng == nil || rng.Kind == ir.RangeExpr {
		c.note(n, "cannot resolve a constrained range to fold '%s", attr)
		return n
	}
	if rng.Left == nil || rng.Right == nil || rng.Left.Kind() != ir.KindLiteral || rng.Right.Kind() != ir.KindLiteral {
		return n
	}
	ascending := rng.Kind == ir.RangeTo
	switch attr {
	case attrLeft:
		return rng.Left
	case attrRight:
		return rng.Right
	case attrLow:
		if ascending {
			return rng.Left
		}
		return rng.Right
	case attrHigh:
		if ascending {
			return rng.Right
		}
		return rng.Left
	case attrAscending:
		return c.boolLiteral(n, ascending)
	default:
		return n
	}
}

func (c *Context) foldLengthAttr(n *ir.Node) *ir.Node {
	rng := resolveRange(n.Name())
	if rng == nil || rng.Kind == ir.RangeExpr {
		c.note(n, "cannot resolve a constrained range to fold 'LENGTH")
		return n
	}
	if rng.Left == nil || rng.Right == nil {
		return n
	}
	if rng.Left.Kind() != ir.KindLiteral || rng.Right.Kind() != ir.KindLiteral {
		return n
	}
	if rng.Left.Literal().Kind != ir.LiteralInt || rng.Right.Literal().Kind != ir.LiteralInt {
		return n
	}
	var length int64
	if rng.Kind == ir.RangeTo {
		length = rng.Right.Literal().Int - rng.Left.Literal().Int + 1
	} else {
		length = rng.Left.Literal().Int - rng.Right.Literal().Int + 1
	}
	if length < 0 {
		length = 0
	}
	return c.intLiteral(n, length)
}

// foldPosAttr passes a folded integer position argument through
// unchanged, per spec.md §4.2.5: "'POS with a folded integer argument
// returns the literal value." Mapping an enumeration literal name to its
// ordinal position is the external semantic analyzer's job; by the time
// the argument reaches here it is either already that ordinal (if the
// analyzer pre-resolved it) or not foldable at all.
func (c *Context) foldPosAttr(n *ir.Node) *ir.Node {
	params := n.Params()
	if len(params) == 0 || params[0].Value == nil {
		return n
	}
	v := params[0].Value
	if v.Kind() == ir.KindLiteral && v.Literal().Kind == ir.LiteralInt {
		return v
	}
	return n
}

// synthDelayed implements the 'DELAYED branch of spec.md §4.2.5: a new
// signal is declared, driven by a process that assigns it the prefix's
// value after the given delay (zero if none given), and the attribute
// reference itself is replaced by a reference to that new signal.
func (c *Context) synthDelayed(n *ir.Node) *ir.Node {
	return c.synthImplicitSignal(n, "delayed", func(sigRef, prefix *ir.Node) *ir.Node {
		wave := c.Arena.New(ir.KindWaveform)
		wave.SetValue(prefix)
		if params := n.Params(); len(params) > 0 {
			wave.SetDelay(params[0].Value)
		}
		assign := c.Arena.New(ir.KindSignalAssign)
		assign.SetTarget(sigRef)
		assign.SetWaveforms([]*ir.Node{wave})
		return assign
	})
}

// synthTransaction implements the 'TRANSACTION branch: the synthesized
// signal toggles every time the prefix is driven, rather than copying its
// value (spec.md §4.2.5).
func (c *Context) synthTransaction(n *ir.Node) *ir.Node {
	return c.synthImplicitSignal(n, "transaction", func(sigRef, prefix *ir.Node) *ir.Node {
		self := c.Arena.New(ir.KindRef)
		self.SetRef(sigRef.Ref())

		notCall := c.Arena.New(ir.KindFCall)
		notCall.SetRef(c.predefinedFunc("not"))
		notCall.SetParams([]ir.Param{{Kind: ir.ParamPositional, Value: self}})

		wave := c.Arena.New(ir.KindWaveform)
		wave.SetValue(notCall)
		assign := c.Arena.New(ir.KindSignalAssign)
		assign.SetTarget(sigRef)
		assign.SetWaveforms([]*ir.Node{wave})
		return assign
	})
}

// synthImplicitSignal allocates the signal decl and driving process common
// to both 'DELAYED and 'TRANSACTION, registers them on the innermost open
// scope for splicing once that scope finishes rewriting, and returns the
// Ref that replaces the original attribute reference.
func (c *Context) synthImplicitSignal(n *ir.Node, kind string, buildBody func(sigRef, prefix *ir.Node) *ir.Node) *ir.Node {
	scope := c.currentScope()
	if scope == nil {
		c.note(n, "cannot synthesize implicit '%s signal outside a declarative region", strings.ToUpper(kind))
		return n
	}
	prefix := n.Name()

	decl := c.Arena.New(ir.KindSignalDecl)
	decl.SetIdent(ir.Intern(fmt.Sprintf("%s_%d", kind, c.nextSynthID())))
	decl.SetType(prefix.Type())
	decl.SetFlags(decl.Flags().Set(ir.FlagPredefined))
	decl.SetLoc(n.Loc())

	sigRef := c.Arena.New(ir.KindRef)
	sigRef.SetRef(decl)

	body := buildBody(sigRef, prefix)

	proc := c.Arena.New(ir.KindProcess)
	proc.SetLoc(n.Loc())
	proc.SetStmts([]*ir.Node{body})
	proc.AppendStmt(c.buildWait([]*ir.Node{prefix}))
	proc.SetFlags(proc.Flags().Set(ir.FlagPredefined))

	scope.signals = append(scope.signals, decl)
	scope.drivers = append(scope.drivers, proc)
	c.Stats.ImplicitSignals++

	result := c.Arena.New(ir.KindRef)
	result.SetRef(decl)
	result.SetLoc(n.Loc())
	return result
}

// predefinedFunc memoizes a synthetic FuncDecl identifying a predefined
// operator by name, for use in expressions simp itself constructs (real
// source-level calls already carry their own Ref from the parser/semantic
// analyzer collaborator).
func (c *Context) predefinedFunc(name string) *ir.Node {
	if f, ok := c.predefined[name]; ok {
		return f
	}
	f := c.Arena.New(ir.KindFuncDecl)
	f.SetIdent(ir.Intern(name))
	c.predefined[name] = f
	return f
}
