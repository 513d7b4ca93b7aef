package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/termfx/vhdlcore/internal/config"
	"github.com/termfx/vhdlcore/internal/diag"
	"github.com/termfx/vhdlcore/internal/fbuf"
	"github.com/termfx/vhdlcore/internal/fold"
	"github.com/termfx/vhdlcore/internal/ir"
	"github.com/termfx/vhdlcore/internal/loc"
	"github.com/termfx/vhdlcore/internal/scan"
	"github.com/termfx/vhdlcore/internal/simp"
	"github.com/termfx/vhdlcore/internal/store"
)

func newCheckCmd() *cobra.Command {
	var global bool
	var evalWarn bool
	var dsn string

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Simplify one or more serialized design trees and report diagnostics",
		Long: "check reads internal/ir-serialized top-level units (spec.md §4.1.5's " +
			"`.vhdlir` format), runs SimplifyLocal (or --global for SimplifyGlobal), " +
			"and renders any diagnostics the pass or its evaluator collaborator emit.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromFlagSet(cmd.Flags())
			if err != nil {
				return err
			}
			files, err := resolveInputs(cmd.Context(), cfg, args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("check: no .vhdlir files found")
			}

			var rec *store.Recorder
			if dsn != "" {
				db, err := store.Connect(dsn, false)
				if err != nil {
					return err
				}
				rec, err = store.NewRecorder(db)
				if err != nil {
					return err
				}
				defer rec.Close()
			}

			mode := "local"
			if global {
				mode = "global"
			}

			out := cmd.OutOrStdout()
			var totalErrors int
			for _, f := range files {
				unit, stats, errs, runErr := checkOne(out, f, cfg, global, evalWarn)
				if runErr != nil {
					return fmt.Errorf("check: %s: %w", f, runErr)
				}
				totalErrors += errs
				if rec != nil {
					if err := rec.RecordUnit(unit.Kind().String(), unit.Ident().Name(), f, mode, stats, nil, errs); err != nil {
						return err
					}
				}
			}
			if totalErrors > 0 {
				return fmt.Errorf("check: %d error(s)", totalErrors)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Run SimplifyGlobal instead of SimplifyLocal.")
	cmd.Flags().BoolVar(&evalWarn, "eval-warn", false, "Emit a note for every expression that fails to fold (spec.md §4.2.2 EVAL_WARN).")
	cmd.Flags().StringVar(&dsn, "db", "", "Persist this run's units to a store.Connect-compatible DSN.")
	return cmd
}

// resolveInputs expands args (files or directories) into a list of
// .vhdlir paths, falling back to scanning cfg.Root (or the working
// directory) when no positional arguments are given.
func resolveInputs(ctx context.Context, cfg *config.Config, args []string) ([]string, error) {
	if len(args) > 0 {
		var out []string
		for _, a := range args {
			info, err := os.Stat(a)
			if err != nil {
				return nil, err
			}
			if !info.IsDir() {
				out = append(out, a)
				continue
			}
			found, err := scanDir(ctx, a, cfg)
			if err != nil {
				return nil, err
			}
			out = append(out, found...)
		}
		return out, nil
	}

	root := cfg.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		root = wd
	}
	return scanDir(ctx, root, cfg)
}

func scanDir(ctx context.Context, root string, cfg *config.Config) ([]string, error) {
	include := cfg.Include
	if len(include) == 0 {
		include = []string{"**/*.vhdlir"}
	}
	w := scan.NewWalker()
	return w.Discover(ctx, scan.Scope{Path: root, Include: include, Exclude: cfg.Exclude})
}

// checkOne reads one serialized unit, simplifies it, and renders any
// diagnostics to out. It returns the (possibly rewritten) unit root, the
// pass's Stats, and the engine's error count.
func checkOne(out io.Writer, path string, cfg *config.Config, global, evalWarn bool) (*ir.Node, simp.Stats, int, error) {
	arena := ir.NewArena()
	reg := loc.NewFileRegistry()

	unit, err := readUnit(path, arena, reg)
	if err != nil {
		return nil, simp.Stats{}, 0, err
	}

	eng := diag.NewEngine(reg, out, cfg.ErrorLimit, cfg.Color)
	eng.UnitTest = cfg.UnitTest
	evaluator := fold.NewConst()

	ctx := simp.NewContext(arena, eng, evaluator, evaluator)
	ctx.EvalWarn = evalWarn
	var result *ir.Node
	var stats simp.Stats
	if global {
		result, stats = ctx.RunGlobal(unit)
	} else {
		result, stats = ctx.RunLocal(unit)
	}

	if cfg.DebugGC {
		marked, freed := arena.GC([]*ir.Node{result})
		fmt.Fprintf(out, "gc: %s marked=%d freed=%d\n", filepath.Base(path), marked, freed)
	}

	return result, stats, eng.ErrorCount(), nil
}

func readUnit(path string, arena *ir.Arena, reg *loc.FileRegistry) (*ir.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := fbuf.NewReader(f)
	rc, err := ir.NewReadCtx(r, arena, reg)
	if err != nil {
		return nil, err
	}
	return ir.Read(r, rc)
}
