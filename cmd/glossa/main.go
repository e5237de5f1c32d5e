// Command glossa is the CLI host for the ΓΛΩΣΣΑ interpreter: it wires a
// parsed program to stdin/stdout and, for `glossa debug`, a terminal
// stepping debugger. It is a flag-less os.Args dispatcher in the same
// shape as the teacher's cmd/able/main.go (run/deps/--version, default
// to direct file execution), repointed at glossa.yaml instead of
// package.yml.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/glossa-lang/glossa/pkg/ast"
	"github.com/glossa-lang/glossa/pkg/config"
	"github.com/glossa-lang/glossa/pkg/interp"
	"github.com/glossa-lang/glossa/pkg/lexer"
	"github.com/glossa-lang/glossa/pkg/parser"
)

const cliToolVersion = "glossa-cli 0.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(args[1:], false)
	case "debug":
		return runEntry(args[1:], true)
	default:
		return runEntry(args, false)
	}
}

// runEntry resolves the source file to execute — an explicit path
// argument, or glossa.yaml's default_source discovered by walking up
// from the working directory — then runs it, attaching a terminal
// debugger when debug is true.
func runEntry(args []string, debug bool) int {
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return 1
	}

	var source string
	if len(args) == 1 {
		source = args[0]
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to determine working directory: %v\n", err)
		return 1
	}

	cfg := config.Default()
	if cfgPath, findErr := config.Find(cwd); findErr == nil {
		loaded, loadErr := config.Load(cfgPath)
		if loadErr != nil {
			fmt.Fprintf(os.Stderr, "failed to load glossa.yaml: %v\n", loadErr)
			return 1
		}
		cfg = loaded
	} else if !errors.Is(findErr, config.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "failed to locate glossa.yaml: %v\n", findErr)
		return 1
	}

	if source == "" {
		source = cfg.ResolveSource()
	}
	if source == "" {
		fmt.Fprintln(os.Stderr, "glossa run requires a source file or a glossa.yaml default_source")
		return 1
	}

	return executeFile(source, cfg, debug)
}

func executeFile(path string, cfg *config.Config, debug bool) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", path, err)
		return 1
	}

	toks, err := lexer.Tokenize(string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	prog, err := parser.New(toks).Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	var opts []interp.Option
	if fmtr := realFormatterFor(cfg); fmtr != nil {
		opts = append(opts, interp.WithRealFormatter(fmtr))
	}
	ip := interp.New(opts...)

	out := interp.NewLineWriterSink(os.Stdout)
	in := interp.NewScannerSource(os.Stdin)

	var dbg interp.Debugger
	if debug {
		dbg = newTerminalDebugger(os.Stdout, bufio.NewReader(os.Stdin))
	}

	if err := ip.Run(prog, out, in, dbg); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	return 0
}

func realFormatterFor(cfg *config.Config) interp.RealFormatter {
	if cfg.RealFormat == config.RealFormatFixed {
		return interp.FixedRealFormatter(cfg.FixedDecimals)
	}
	return nil
}

// terminalDebugger implements interp.Debugger by printing the current
// statement and variable snapshot before each execution step (After
// does nothing), and blocking on a newline from the reader to implement single-stepping
// (§4.4: "the hook's blocking behavior is entirely at the host's
// discretion"). Typing "c" continues to completion without further
// pauses; typing "q" requests a clean stop.
type terminalDebugger struct {
	out     *bufio.Writer
	in      *bufio.Reader
	running bool // true once the user has typed "c"
}

func newTerminalDebugger(w *os.File, r *bufio.Reader) *terminalDebugger {
	return &terminalDebugger{out: bufio.NewWriter(w), in: r}
}

func (d *terminalDebugger) Before(stmt ast.Statement, snap interp.Snapshot) error {
	fmt.Fprintf(d.out, "-- γραμμή %d: %s --\n", stmt.Line(), stmt.NodeType())
	printSnapshot(d.out, snap)
	d.out.Flush()
	return d.maybePause()
}

func (d *terminalDebugger) After(stmt ast.Statement, snap interp.Snapshot) error {
	return nil
}

func (d *terminalDebugger) maybePause() error {
	if d.running {
		return nil
	}
	fmt.Fprint(d.out, "(Enter=βήμα, c=συνέχεια, q=διακοπή) > ")
	d.out.Flush()
	line, err := d.in.ReadString('\n')
	if err != nil && line == "" {
		return nil
	}
	switch strings.TrimSpace(line) {
	case "c":
		d.running = true
	case "q":
		return interp.ErrStopRequested
	}
	return nil
}

func printSnapshot(w *bufio.Writer, snap interp.Snapshot) {
	names := make([]string, len(snap))
	byName := make(map[string]interp.Binding, len(snap))
	for i, b := range snap {
		names[i] = b.Name
		byName[b.Name] = b
	}
	sort.Strings(names)
	for _, name := range names {
		b := byName[name]
		fmt.Fprintf(w, "  %s (%s, %s) = %s\n", b.Name, b.Type, b.Scope, interp.FormatValue(b.Value))
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  glossa run [file.gl]")
	fmt.Fprintln(os.Stderr, "  glossa debug [file.gl]")
	fmt.Fprintln(os.Stderr, "  glossa <file.gl>")
	fmt.Fprintln(os.Stderr, "  glossa --version")
}
