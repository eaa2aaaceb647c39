// Package config loads bbnfgen's run-time defaults, layered the way
// cmd/tqserver layers TunaQuest server config: CLI flag overrides an
// environment variable, which overrides a TOML file, which overrides a
// built-in default.
package config

import (
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

const (
	// EnvK overrides Config.DefaultK.
	EnvK = "BBNFGEN_K"
	// EnvOutPattern overrides Config.OutPattern.
	EnvOutPattern = "BBNFGEN_OUT_PATTERN"
	// EnvAutoREPL overrides Config.AutoREPL.
	EnvAutoREPL = "BBNFGEN_AUTO_REPL"
	// EnvPrompt overrides Config.Prompt.
	EnvPrompt = "BBNFGEN_PROMPT"
)

// Config holds bbnfgen's layered defaults. The built-in default set is
// returned by Default; the zero value is not that set.
type Config struct {
	// DefaultK is the lookahead length used when the generate/repl
	// subcommand's k argument is omitted. 0 means "no default; k is
	// required."
	DefaultK int `toml:"default_k"`

	// OutPattern is the output-path template used by the generate
	// subcommand when --out is not given. "{base}" is replaced with the
	// grammar file's base name minus extension. Overridable with --out-pattern;
	// distinct from --out, which sets a literal one-run path and never
	// touches this field.
	OutPattern string `toml:"out_pattern"`

	// AutoREPL, when true, makes generate drop into the REPL after writing
	// the parser source, instead of exiting.
	AutoREPL bool `toml:"auto_repl"`

	// Prompt is the REPL's prompt string.
	Prompt string `toml:"prompt"`
}

// Default returns bbnfgen's built-in configuration defaults.
func Default() Config {
	return Config{
		DefaultK:   1,
		OutPattern: "{base}_parser.go",
		AutoREPL:   false,
		Prompt:     "> ",
	}
}

// Load builds a Config starting from Default, then applying (in increasing
// precedence) a TOML file at path (if path is non-empty and the file
// exists), BBNFGEN_* environment variables, and finally the explicit
// overrides in overrides (each nil field left untouched).
//
// path == "" skips the file layer entirely, rather than erroring on a
// missing bbnfgen.toml: the file is optional.
func Load(path string, overrides Overrides) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return Config{}, err
			}
		} else if !os.IsNotExist(err) {
			return Config{}, err
		}
	}

	applyEnv(&cfg)
	overrides.apply(&cfg)

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvK); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DefaultK = n
		}
	}
	if v := os.Getenv(EnvOutPattern); v != "" {
		cfg.OutPattern = v
	}
	if v := os.Getenv(EnvAutoREPL); v != "" {
		cfg.AutoREPL = v == "1" || v == "true"
	}
	if v := os.Getenv(EnvPrompt); v != "" {
		cfg.Prompt = v
	}
}

// Overrides carries the CLI flag layer: fields left nil are not applied, so
// only flags the user actually set (per pflag's Lookup(...).Changed, the
// same precedence check cmd/tqserver's main uses) take precedence over the
// environment and the file.
type Overrides struct {
	DefaultK   *int
	OutPattern *string
	AutoREPL   *bool
	Prompt     *string
}

func (o Overrides) apply(cfg *Config) {
	if o.DefaultK != nil {
		cfg.DefaultK = *o.DefaultK
	}
	if o.OutPattern != nil {
		cfg.OutPattern = *o.OutPattern
	}
	if o.AutoREPL != nil {
		cfg.AutoREPL = *o.AutoREPL
	}
	if o.Prompt != nil {
		cfg.Prompt = *o.Prompt
	}
}
