// Package config builds the CLI's runtime configuration from environment
// variables and flags, the way the teacher repo's internal/config.LoadConfig
// layers environment defaults under flag overrides (spec.md §6:
// opt_get_int(ERROR_LIMIT/UNIT_TEST) and the color/terminal collaborators).
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/termfx/vhdlcore/internal/diag"
)

// defaultErrorLimit mirrors the source implementation's ERROR_LIMIT default:
// enough leeway to report a design's worth of mistakes before giving up.
const defaultErrorLimit = 100

// Config holds the configuration a vhdlsimp invocation runs with: spec.md
// §6's ERROR_LIMIT/UNIT_TEST options plus the color/terminal choice that
// backs diag.Engine's rendering (spec §4.3, §6 color_terminal).
type Config struct {
	ErrorLimit int
	UnitTest   bool
	Color      diag.ColorMode
	DebugGC    bool
	Root       string
	Include    []string
	Exclude    []string
}

// LoadEnv loads configuration defaults from environment variables,
// following a ".env then process env" precedence identical to the teacher's
// LoadConfig (os.Getenv after an optional godotenv.Load), so VHDLSIMP_*
// values set in a project's .env are picked up the same way MORFX_* ones
// are.
func LoadEnv() *Config {
	_ = godotenv.Load()

	cfg := &Config{ErrorLimit: defaultErrorLimit, Color: diag.ColorAuto}

	if v := os.Getenv("VHDLSIMP_ERROR_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.ErrorLimit = n
		}
	}
	if v := os.Getenv("VHDLSIMP_UNIT_TEST"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.UnitTest = b
		}
	}
	if v := os.Getenv("VHDLSIMP_COLOR"); v != "" {
		switch v {
		case "always":
			cfg.Color = diag.ColorAlways
		case "never":
			cfg.Color = diag.ColorNever
		default:
			cfg.Color = diag.ColorAuto
		}
	}
	return cfg
}

// RegisterFlags attaches the flags FromFlagSet reads back, defaulted from
// LoadEnv so a flag only needs to be passed when it overrides the
// environment. cmd/vhdlsimp registers them once on the root command's
// persistent flags, so every subcommand shares the same definitions.
func (base *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.Int("error-limit", base.ErrorLimit, "Stop after this many errors (0 = unlimited).")
	fs.Bool("unit-test", base.UnitTest, "Enable unit-test diagnostic behavior.")
	fs.String("color", colorModeString(base.Color), "Diagnostic color: auto, always, never.")
	fs.Bool("debug-gc", false, "Report GC mark/sweep counts after each unit.")
	fs.String("root", "", "Root directory to scan for design sources.")
	fs.StringSlice("include", nil, "Include glob patterns (default **/*.vhdlir).")
	fs.StringSlice("exclude", nil, "Exclude glob patterns.")
}

// FromFlagSet reads back the values RegisterFlags declared, once cobra has
// parsed them, producing the resolved Config for this invocation.
func FromFlagSet(fs *pflag.FlagSet) (*Config, error) {
	errorLimit, err := fs.GetInt("error-limit")
	if err != nil {
		return nil, err
	}
	unitTest, err := fs.GetBool("unit-test")
	if err != nil {
		return nil, err
	}
	colorStr, err := fs.GetString("color")
	if err != nil {
		return nil, err
	}
	color, err := parseColorMode(colorStr)
	if err != nil {
		return nil, err
	}
	debugGC, err := fs.GetBool("debug-gc")
	if err != nil {
		return nil, err
	}
	root, err := fs.GetString("root")
	if err != nil {
		return nil, err
	}
	include, err := fs.GetStringSlice("include")
	if err != nil {
		return nil, err
	}
	exclude, err := fs.GetStringSlice("exclude")
	if err != nil {
		return nil, err
	}

	return &Config{
		ErrorLimit: errorLimit,
		UnitTest:   unitTest,
		Color:      color,
		DebugGC:    debugGC,
		Root:       root,
		Include:    include,
		Exclude:    exclude,
	}, nil
}

func parseColorMode(s string) (diag.ColorMode, error) {
	switch s {
	case "", "auto":
		return diag.ColorAuto, nil
	case "always":
		return diag.ColorAlways, nil
	case "never":
		return diag.ColorNever, nil
	default:
		return diag.ColorAuto, fmt.Errorf("config: unknown --color value %q (want auto, always, never)", s)
	}
}

func colorModeString(c diag.ColorMode) string {
	switch c {
	case diag.ColorAlways:
		return "always"
	case diag.ColorNever:
		return "never"
	default:
		return "auto"
	}
}
