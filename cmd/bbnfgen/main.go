/*
Bbnfgen builds an LL(k) recursive-descent parser from a BBNF grammar.

Usage:

	bbnfgen generate <grammar-file> [k] [flags]
	bbnfgen repl <grammar-file> [k] [flags]
	bbnfgen version

The generate subcommand runs the full analysis pipeline (dependency order,
PFIRST, PFOLLOW, table construction), prints a human-readable report of each
phase to stdout, and writes a standalone Go source file implementing the
parser. The repl subcommand builds the same in-memory table and then reads
lines from stdin, parsing each against it with an in-process interpreter
instead of a compiled artifact.

k may be omitted, in which case the configured default_k is used (see
--config); the built-in default_k is 1. A k below 1, whether given or
taken from default_k, is rejected as a usage error.

The flags are:

	--out FILE
		Write the emitted parser to FILE for this run only, read directly
		and not layered through config.

	--out-pattern PATTERN
		Override the configured out_pattern template ("{base}" becomes the
		grammar file's base name). Ignored if --out is given.

	--default-k N
		Override the configured default_k, used when k is omitted above.

	--auto-repl
		Override the configured auto_repl (generate only).

	--prompt STRING
		Override the configured REPL prompt.

	--config FILE
		Load a bbnfgen.toml from FILE instead of the one in the working
		directory, if any.

	--test-input FILE
		After building the table, parse FILE's contents against it (via the
		in-process interpreter) as a self-test and print the resulting tree.

	--dump-tree FILE
		Requires --test-input. Binary-encodes the self-test parse tree and
		writes it to FILE.

	-v, --verbose
		Log each pipeline phase as it runs.

Flags layer over BBNFGEN_* environment variables, which layer over
bbnfgen.toml, which layers over built-in defaults; see
internal/bbnf/config for the full precedence rule.
*/
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dekarrin/bbnfgen/internal/bbnf/analysis"
	"github.com/dekarrin/bbnfgen/internal/bbnf/config"
	"github.com/dekarrin/bbnfgen/internal/bbnf/depends"
	"github.com/dekarrin/bbnfgen/internal/bbnf/diag"
	"github.com/dekarrin/bbnfgen/internal/bbnf/emit"
	"github.com/dekarrin/bbnfgen/internal/bbnf/interp"
	"github.com/dekarrin/bbnfgen/internal/bbnf/parse"
	"github.com/dekarrin/bbnfgen/internal/bbnf/pfirst"
	"github.com/dekarrin/bbnfgen/internal/bbnf/pfollow"
	"github.com/dekarrin/bbnfgen/internal/bbnf/pprint"
	"github.com/dekarrin/bbnfgen/internal/bbnf/table"
	"github.com/dekarrin/bbnfgen/internal/bbnflog"
	"github.com/dekarrin/bbnfgen/internal/input"
	"github.com/dekarrin/bbnfgen/internal/version"
	"github.com/dekarrin/rezi"
	"github.com/spf13/pflag"
)

const (
	ExitSuccess    = 0
	ExitUsageError = 1
	ExitIOError    = 2
	ExitGrammarErr = 3
)

func main() {
	if len(os.Args) < 2 {
		usageErr("missing subcommand; expected generate, repl, or version")
	}

	var err error
	switch os.Args[1] {
	case "generate":
		err = runGenerate(os.Args[2:])
	case "repl":
		err = runRepl(os.Args[2:])
	case "version":
		fmt.Printf("%s\n", version.Current)
		return
	default:
		usageErr(fmt.Sprintf("unknown subcommand %q; expected generate, repl, or version", os.Args[1]))
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		os.Exit(exitCodeFor(err))
	}
}

func exitCodeFor(err error) int {
	switch err.(type) {
	case diag.UsageError:
		return ExitUsageError
	case diag.IOError:
		return ExitIOError
	case diag.LeftRecursion, diag.ContradictoryRule, diag.LexError, diag.ParseError:
		return ExitGrammarErr
	default:
		return ExitGrammarErr
	}
}

func usageErr(msg string) {
	fmt.Fprintf(os.Stderr, "ERROR: %s\nDo -h for help.\n", msg)
	os.Exit(ExitUsageError)
}

// pipeline runs every analysis phase shared by generate and repl: parsing
// source into a Grammar, computing ntOrder, PFIRST, PFOLLOW, and building the
// LL(k) table. lg is used to announce progress through each phase; it may be
// the non-verbose (silent) Logger.
func pipeline(grammarFile string, k int, lg *bbnflog.Logger) (*analysis.Context, *table.Table, error) {
	if k < 1 {
		return nil, nil, diag.UsageError{Message: fmt.Sprintf("k must be >= 1, got %d", k)}
	}

	src, err := os.ReadFile(grammarFile)
	if err != nil {
		return nil, nil, diag.IOError{Path: grammarFile, Wrap: err}
	}

	lg.Phase("parsing %s", grammarFile)
	g, err := parse.Parse(string(src))
	if err != nil {
		return nil, nil, err
	}

	ctx := analysis.New(g, k)

	lg.Phase("computing ntOrder")
	ctx.Order = depends.Order(g)

	lg.Phase("computing PFIRST")
	if err := pfirst.Compute(ctx); err != nil {
		return nil, nil, err
	}

	lg.Phase("computing PFOLLOW")
	pfollow.Compute(ctx)

	lg.Phase("building LL(%d) table", k)
	t := table.Build(ctx)

	return ctx, t, nil
}

func runGenerate(args []string) error {
	fs := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	flagOut := fs.String("out", "", "output path for the emitted parser source, read directly and not layered through config")
	flagOutPattern := fs.String("out-pattern", "", "output path template, overriding the configured out_pattern ({base} becomes the grammar file's base name)")
	flagConfig := fs.String("config", "bbnfgen.toml", "path to a bbnfgen.toml config file")
	flagTestInput := fs.String("test-input", "", "file to self-test parse against the built table")
	flagDumpTree := fs.String("dump-tree", "", "binary-dump the self-test parse tree to this file (requires --test-input)")
	flagVerbose := fs.BoolP("verbose", "v", false, "log each pipeline phase")
	flagDefaultK := fs.Int("default-k", 0, "lookahead length to use when k is omitted from the command line, overriding the configured default_k")
	flagAutoREPL := fs.Bool("auto-repl", false, "drop into the REPL after writing the parser source, overriding the configured auto_repl")
	flagPrompt := fs.String("prompt", "", "REPL prompt string, overriding the configured prompt (only matters if auto-repl ends up true)")
	if err := fs.Parse(args); err != nil {
		return diag.UsageError{Message: err.Error()}
	}

	rest := fs.Args()
	if len(rest) < 1 || len(rest) > 2 {
		return diag.UsageError{Message: "usage: bbnfgen generate <grammar-file> [k] [flags]"}
	}
	grammarFile := rest[0]

	if *flagDumpTree != "" && *flagTestInput == "" {
		return diag.UsageError{Message: "--dump-tree requires --test-input"}
	}

	lg := bbnflog.New(*flagVerbose)

	var overrides config.Overrides
	if fs.Lookup("default-k").Changed {
		overrides.DefaultK = flagDefaultK
	}
	if fs.Lookup("out-pattern").Changed {
		overrides.OutPattern = flagOutPattern
	}
	if fs.Lookup("auto-repl").Changed {
		overrides.AutoREPL = flagAutoREPL
	}
	if fs.Lookup("prompt").Changed {
		overrides.Prompt = flagPrompt
	}

	cfg, err := config.Load(*flagConfig, overrides)
	if err != nil {
		return diag.IOError{Path: *flagConfig, Wrap: err}
	}

	k := cfg.DefaultK
	if len(rest) == 2 {
		k, err = strconv.Atoi(rest[1])
		if err != nil {
			return diag.UsageError{Message: fmt.Sprintf("k must be an integer, got %q", rest[1])}
		}
	}

	ctx, t, err := pipeline(grammarFile, k, lg)
	if err != nil {
		return err
	}

	fmt.Println(pprint.Report(ctx, t))

	lg.Phase("emitting parser source")
	source, err := emit.Generate(ctx, t, "main")
	if err != nil {
		return err
	}

	outPath := *flagOut
	if outPath == "" {
		outPath = expandOutPattern(cfg.OutPattern, grammarFile)
	}
	if err := os.WriteFile(outPath, []byte(source), 0644); err != nil {
		return diag.IOError{Path: outPath, Wrap: err}
	}
	fmt.Printf("wrote %s\n", outPath)

	if *flagTestInput != "" {
		testSrc, err := os.ReadFile(*flagTestInput)
		if err != nil {
			return diag.IOError{Path: *flagTestInput, Wrap: err}
		}

		lg.Phase("self-test parsing %s", *flagTestInput)
		node, err := interp.New(ctx, t).Parse(string(testSrc))
		if err != nil {
			return err
		}
		fmt.Println("=== self-test parse tree ===")
		fmt.Print(node.String())

		if *flagDumpTree != "" {
			data := rezi.EncBinary(node)
			if err := os.WriteFile(*flagDumpTree, data, 0644); err != nil {
				return diag.IOError{Path: *flagDumpTree, Wrap: err}
			}
			fmt.Printf("dumped parse tree to %s\n", *flagDumpTree)
		}
	}

	if cfg.AutoREPL {
		return serveRepl(ctx, t, cfg, lg)
	}

	return nil
}

func expandOutPattern(pattern, grammarFile string) string {
	base := grammarFile
	if slash := strings.LastIndexAny(base, "/\\"); slash >= 0 {
		base = base[slash+1:]
	}
	if dot := strings.LastIndex(base, "."); dot > 0 {
		base = base[:dot]
	}
	return strings.ReplaceAll(pattern, "{base}", base)
}

func runRepl(args []string) error {
	fs := pflag.NewFlagSet("repl", pflag.ContinueOnError)
	flagConfig := fs.String("config", "bbnfgen.toml", "path to a bbnfgen.toml config file")
	flagVerbose := fs.BoolP("verbose", "v", false, "log each pipeline phase")
	flagDefaultK := fs.Int("default-k", 0, "lookahead length to use when k is omitted from the command line, overriding the configured default_k")
	flagPrompt := fs.String("prompt", "", "REPL prompt string, overriding the configured prompt")
	if err := fs.Parse(args); err != nil {
		return diag.UsageError{Message: err.Error()}
	}

	rest := fs.Args()
	if len(rest) < 1 || len(rest) > 2 {
		return diag.UsageError{Message: "usage: bbnfgen repl <grammar-file> [k] [flags]"}
	}
	grammarFile := rest[0]

	var overrides config.Overrides
	if fs.Lookup("default-k").Changed {
		overrides.DefaultK = flagDefaultK
	}
	if fs.Lookup("prompt").Changed {
		overrides.Prompt = flagPrompt
	}

	cfg, err := config.Load(*flagConfig, overrides)
	if err != nil {
		return diag.IOError{Path: *flagConfig, Wrap: err}
	}

	k := cfg.DefaultK
	if len(rest) == 2 {
		k, err = strconv.Atoi(rest[1])
		if err != nil {
			return diag.UsageError{Message: fmt.Sprintf("k must be an integer, got %q", rest[1])}
		}
	}

	lg := bbnflog.New(*flagVerbose)
	ctx, t, err := pipeline(grammarFile, k, lg)
	if err != nil {
		return err
	}

	return serveRepl(ctx, t, cfg, lg)
}

// serveRepl reads lines from stdin with readline-backed history and parses
// each against t with the in-process interpreter until the reader hits EOF
// or the user types "exit".
func serveRepl(ctx *analysis.Context, t *table.Table, cfg config.Config, lg *bbnflog.Logger) error {
	reader, err := input.NewInteractiveReader()
	if err != nil {
		return diag.IOError{Path: "<stdin>", Wrap: err}
	}
	defer reader.Close()
	reader.SetPrompt(cfg.Prompt)

	interpreter := interp.New(ctx, t)

	for {
		line, err := reader.ReadCommand()
		if err != nil {
			break
		}
		if line == "exit" {
			break
		}

		node, err := interpreter.Parse(line)
		if err != nil {
			lg.Warn("reject: %s", err.Error())
			continue
		}
		fmt.Print(node.String())
	}

	return nil
}
