// Command pljit compiles and runs PL function definitions: a one-shot
// file runner, a formatter, a linter, and an interactive REPL. The file
// runner and the REPL build their registry.Registry from the loaded
// config.Config; the formatter and linter use neither.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pljit/pljit/config"
	"github.com/pljit/pljit/diag"
	"github.com/pljit/pljit/pljitfmt"
	"github.com/pljit/pljit/registry"
	"github.com/pljit/pljit/repl"
)

var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		filePath    = flag.String("file", "", "PL source file to compile and run")
		args        = flag.String("args", "", "Comma-separated argument values for -file")
		configPath  = flag.String("config", "", "Path to a TOML config file (default: platform config dir)")
		replMode    = flag.Bool("repl", false, "Start the interactive REPL")
		fmtMode     = flag.Bool("fmt", false, "Format the -file source and print it to stdout")
		lintMode    = flag.Bool("lint", false, "Lint the -file source and print findings to stdout")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("pljit %s (%s)\n", Version, Commit)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	switch {
	case *fmtMode:
		runFormat(*filePath)
	case *lintMode:
		runLint(*filePath)
	case *replMode:
		runREPL(cfg, *filePath)
	case *filePath != "":
		runFile(cfg, *filePath, *args)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

func readFile(path string) string {
	if path == "" {
		fmt.Fprintln(os.Stderr, "pljit: -file is required for this mode")
		os.Exit(2)
	}
	data, err := os.ReadFile(path) // #nosec G304 -- opening the path named by -file is this flag's purpose
	if err != nil {
		fmt.Fprintf(os.Stderr, "pljit: %v\n", err)
		os.Exit(1)
	}
	return string(data)
}

func runFile(cfg *config.Config, path, argsCSV string) {
	src := readFile(path)

	reg := registry.New(registry.OptionsFromConfig(cfg))
	h := reg.Register(src)
	if d := h.Err(); d != nil {
		diag.Sink{W: os.Stderr}.Report(d)
		os.Exit(1)
	}

	argVals, err := parseArgs(argsCSV)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pljit: %v\n", err)
		os.Exit(2)
	}
	if want := h.NumberOfParameters(); len(argVals) != want {
		fmt.Fprintf(os.Stderr, "pljit: wrong argument count: got %d, function takes %d\n", len(argVals), want)
		os.Exit(2)
	}

	result, ok := h.Call(argVals)
	if !ok {
		fmt.Fprintln(os.Stderr, "pljit: runtime error: division by zero")
		os.Exit(1)
	}
	fmt.Println(result)
}

func parseArgs(csv string) ([]int64, error) {
	csv = strings.TrimSpace(csv)
	if csv == "" {
		return nil, nil
	}
	parts := strings.Split(csv, ",")
	vals := make([]int64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid -args value %q: %w", p, err)
		}
		vals[i] = v
	}
	return vals, nil
}

func runFormat(path string) {
	src := readFile(path)
	out, err := pljitfmt.FormatString(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pljit: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(out)
}

func runLint(path string) {
	src := readFile(path)
	issues := pljitfmt.LintString(src)
	for _, issue := range issues {
		fmt.Println(issue.String())
	}
	if len(issues) > 0 {
		os.Exit(1)
	}
}

func runREPL(cfg *config.Config, path string) {
	c := repl.New(cfg)
	if path != "" {
		c.LoadSource(readFile(path))
	}
	if err := c.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "pljit: %v\n", err)
		os.Exit(1)
	}
}
