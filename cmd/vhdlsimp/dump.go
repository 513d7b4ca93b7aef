package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/termfx/vhdlcore/internal/ir"
	"github.com/termfx/vhdlcore/internal/loc"
)

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Pretty-print a serialized design tree",
		Long:  "dump reads one internal/ir-serialized unit and renders its structure as an indented tree, for inspecting what a front-end or a simplification pass produced.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arena := ir.NewArena()
			reg := loc.NewFileRegistry()

			unit, err := readUnit(args[0], arena, reg)
			if err != nil {
				return err
			}
			dumpNode(cmd.OutOrStdout(), reg, unit, 0, make(map[*ir.Node]bool))
			return nil
		},
	}
	return cmd
}

// dumpNode renders n and its structural children to w with indentation
// proportional to depth. seen stops a node shared by several parents from
// having its children printed more than once. A `ref` slot is never
// recursed into (spec.md §4.1.3: ref is followed only in deep/GC traversal,
// never by an ordinary visitor) — its target is printed as a one-line
// `-> name` summary instead.
func dumpNode(w io.Writer, reg *loc.FileRegistry, n *ir.Node, depth int, seen map[*ir.Node]bool) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	label := n.Kind().String()
	if n.Kind().HasSlot(ir.SIdent) {
		if id := n.Ident(); id != nil {
			label += " " + id.Name()
		}
	}
	fmt.Fprintf(w, "%s%s  (%s)\n", indent, label, locString(reg, n))

	if seen[n] {
		return
	}
	seen[n] = true

	if n.Kind().HasSlot(ir.SPorts) {
		for _, c := range n.Ports() {
			dumpNode(w, reg, c, depth+1, seen)
		}
	}
	if n.Kind().HasSlot(ir.SGenerics) {
		for _, c := range n.Generics() {
			dumpNode(w, reg, c, depth+1, seen)
		}
	}
	if n.Kind().HasSlot(ir.SDecls) {
		for _, c := range n.Decls() {
			dumpNode(w, reg, c, depth+1, seen)
		}
	}
	if n.Kind().HasSlot(ir.SStmts) {
		for _, c := range n.Stmts() {
			dumpNode(w, reg, c, depth+1, seen)
		}
	}
	if n.Kind().HasSlot(ir.SElseStmts) {
		for _, c := range n.ElseStmts() {
			dumpNode(w, reg, c, depth+1, seen)
		}
	}
	if n.Kind().HasSlot(ir.STriggers) {
		for _, c := range n.Triggers() {
			dumpNode(w, reg, c, depth+1, seen)
		}
	}
	if n.Kind().HasSlot(ir.SWaveforms) {
		for _, c := range n.Waveforms() {
			dumpNode(w, reg, c, depth+1, seen)
		}
	}
	if n.Kind().HasSlot(ir.SValue) {
		dumpNode(w, reg, n.Value(), depth+1, seen)
	}
	if n.Kind().HasSlot(ir.STarget) {
		dumpNode(w, reg, n.Target(), depth+1, seen)
	}
	if n.Kind().HasSlot(ir.SRef) {
		if ref := n.Ref(); ref != nil {
			fmt.Fprintf(w, "%s  -> %s\n", indent, refLabel(ref))
		}
	}
	if n.Kind().HasSlot(ir.SLiteral) {
		if l := n.Literal(); l != nil {
			fmt.Fprintf(w, "%s  = %s\n", indent, literalString(l))
		}
	}
}

func refLabel(n *ir.Node) string {
	if n.Kind().HasSlot(ir.SIdent) && n.Ident() != nil {
		return n.Kind().String() + " " + n.Ident().Name()
	}
	return n.Kind().String()
}

func literalString(l *ir.Literal) string {
	switch l.Kind {
	case ir.LiteralInt:
		return fmt.Sprintf("%d", l.Int)
	case ir.LiteralReal:
		return fmt.Sprintf("%g", l.Real)
	case ir.LiteralString, ir.LiteralChar:
		return l.Str
	case ir.LiteralNull:
		return "null"
	default:
		return fmt.Sprintf("%v", l)
	}
}

func locString(reg *loc.FileRegistry, n *ir.Node) string {
	l := n.Loc()
	if !l.IsValid() {
		return "no-loc"
	}
	name := reg.Name(l.File())
	if name == "" {
		name = "?"
	}
	return fmt.Sprintf("%s:%d", name, l.FirstLine())
}
