package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/funvibe/ofront/internal/analyzer"
	"github.com/funvibe/ofront/internal/config"
	"github.com/funvibe/ofront/internal/diagnostics"
	"github.com/funvibe/ofront/internal/parser"
	"github.com/funvibe/ofront/internal/pipeline"
	"github.com/funvibe/ofront/internal/utils"
)

const usage = `Usage: %s [options] <file|dir> [file2...]

Checks source files and prints the diagnostics of the unit.

Options:
  -config <path>     read options from path instead of searching for ofront.yaml/ofront.toml
  -format <fmt>      output format: text, json or cbor
  -color <mode>      text colour: auto, always or never
  -stop              stop at the first error
  -v, -vv            more logging (repeat for debug)
  -help              show this message
`

// cliArgs is the parsed command line. Flags override the config file.
type cliArgs struct {
	configPath string
	format     string
	color      string
	stop       bool
	verbosity  int
	paths      []string
}

func parseArgs(args []string) (*cliArgs, error) {
	out := &cliArgs{}
	value := func(i int, flag string) (string, error) {
		if i+1 >= len(args) {
			return "", fmt.Errorf("flag %s needs a value", flag)
		}
		return args[i+1], nil
	}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		var err error
		switch arg {
		case "-config", "--config":
			out.configPath, err = value(i, arg)
			i++
		case "-format", "--format":
			out.format, err = value(i, arg)
			i++
		case "-color", "--color":
			out.color, err = value(i, arg)
			i++
		case "-stop", "--stop":
			out.stop = true
		case "-v":
			out.verbosity++
		case "-vv":
			out.verbosity += 2
		default:
			if strings.HasPrefix(arg, "-") {
				return nil, fmt.Errorf("unknown flag %s", arg)
			}
			out.paths = append(out.paths, arg)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// loadOptions reads the config file named on the command line, or the
// nearest one above the working directory, then applies the flags.
func loadOptions(cli *cliArgs) (*config.Options, error) {
	path := cli.configPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		if path, err = config.FindConfig(wd); err != nil {
			return nil, err
		}
	}

	opts := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		opts = loaded
	}

	if cli.format != "" {
		opts.Output.Format = cli.format
	}
	if cli.color != "" {
		opts.Output.Color = cli.color
	}
	if cli.stop {
		opts.StopOnFirstError = true
	}
	opts.Log.Verbosity += cli.verbosity
	return opts, opts.Validate()
}

func report(w io.Writer, ctx *pipeline.PipelineContext) error {
	diags := ctx.Diagnostics.Sorted()
	switch ctx.Options.Output.Format {
	case config.FormatJSON:
		data, err := diagnostics.EncodeJSON(diagnostics.NewReport(ctx.UnitID.String(), diags))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case config.FormatCBOR:
		data, err := diagnostics.EncodeCBOR(diagnostics.NewReport(ctx.UnitID.String(), diags))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		printer := diagnostics.NewPrinter(w, ctx.Options.Output.Color)
		for _, src := range ctx.Sources {
			printer.AddSource(src.Path, src.Code)
		}
		return printer.Print(diags)
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	cli, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 2
	}
	if len(cli.paths) == 0 {
		fmt.Fprintf(stderr, usage, filepath.Base(os.Args[0]))
		return 2
	}

	opts, err := loadOptions(cli)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 2
	}
	var logPath *string
	if opts.Log.File != "" {
		logPath = &opts.Log.File
	}
	commonlog.Configure(opts.Log.Verbosity, logPath)

	sources, err := utils.CollectSources(cli.paths)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 2
	}

	ctx, err := pipeline.NewContext(opts, parser.Frontend{}, sources...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 2
	}
	ctx = pipeline.New(
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
	).Run(ctx)

	if err := report(stdout, ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 2
	}
	if ctx.Diagnostics.HasErrors() {
		return 1
	}
	return 0
}

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	for _, arg := range os.Args[1:] {
		if arg == "-help" || arg == "--help" || arg == "help" {
			fmt.Printf(usage, filepath.Base(os.Args[0]))
			return
		}
	}
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
