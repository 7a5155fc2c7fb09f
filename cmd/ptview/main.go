// Command ptview loads a text file into a piece table and prints a range of
// its lines, optionally after applying edits.
//
// Usage:
//
//	ptview [flags] file
//
// Examples:
//
//	ptview -from 10 -to 20 main.go         print lines 10 to 20
//	ptview -insert 0:'// header\n' main.go  insert text before printing
//	ptview -delete 5:12 -stats main.go     delete graphemes [5, 12), show piece stats
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/npillmayer/piecetable"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"github.com/rivo/uniseg"
	"golang.org/x/term"
)

var errUsage = errors.New("usage error")

type options struct {
	from, to   int
	insert     string
	delete     string
	stats      bool
	alpha      string
	capacity   int
	traceLevel string
	noColor    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, path, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	setupTracing(opts.traceLevel)
	if opts.noColor {
		color.NoColor = true
	}
	conf, err := piecetable.ConfigFrom(configuration(opts))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	doc, err := piecetable.OpenWithConfig(path, conf)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	changes, err := doc.Subscribe(context.Background(), 4)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := applyEdits(doc, opts); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	doc.Close()
	for c := range changes {
		fmt.Fprintf(stderr, "%s [%d, %d)\n", color.YellowString(c.Kind.String()), c.Start, c.End)
	}
	render(stdout, doc, opts.from, opts.to, terminalWidth(), uax11.ContextFromEnvironment())
	if opts.stats {
		renderStats(stdout, doc)
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, string, error) {
	var opts options
	fs := flag.NewFlagSet("ptview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&opts.from, "from", 1, "First line to print (1-based)")
	fs.IntVar(&opts.to, "to", 0, "Last line to print (1-based, 0 = last line of document)")
	fs.StringVar(&opts.insert, "insert", "", "Insert text before printing, as position:text")
	fs.StringVar(&opts.delete, "delete", "", "Delete graphemes before printing, as start:end")
	fs.BoolVar(&opts.stats, "stats", false, "Print piece table statistics")
	fs.StringVar(&opts.alpha, "alpha", "", "Balance parameter of the piece tree, in (0.5, 1)")
	fs.IntVar(&opts.capacity, "capacity", 0, "Maximum bytes per text buffer")
	fs.StringVar(&opts.traceLevel, "trace", "Error", "Trace level (Debug, Info, Error)")
	fs.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "ptview - print a text file through a piece table\n\n")
		fmt.Fprintf(stderr, "Usage: ptview [options] file\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, "", err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return opts, "", fmt.Errorf("%w: expected exactly one file argument", errUsage)
	}
	return opts, fs.Arg(0), nil
}

// configuration maps command line options to configuration keys.
func configuration(opts options) testconfig.Conf {
	conf := testconfig.Conf{}
	if opts.alpha != "" {
		conf[piecetable.KeyAlpha] = opts.alpha
	}
	if opts.capacity > 0 {
		conf[piecetable.KeyBufferCapacity] = opts.capacity
	}
	return conf
}

func setupTracing(level string) {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":  "go",
		"trace.root":       level,
		"trace.piecetable": level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Fprintf(os.Stderr, "unable to set up tracing: %v\n", err)
		return
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

func applyEdits(doc *piecetable.Document, opts options) error {
	if opts.delete != "" {
		s, e, ok := strings.Cut(opts.delete, ":")
		if !ok {
			return fmt.Errorf("%w: -delete expects start:end", errUsage)
		}
		start, err1 := strconv.Atoi(s)
		end, err2 := strconv.Atoi(e)
		if err := errors.Join(err1, err2); err != nil {
			return fmt.Errorf("%w: -delete: %w", errUsage, err)
		}
		if err := doc.Delete(start, end); err != nil {
			return err
		}
	}
	if opts.insert != "" {
		p, text, ok := strings.Cut(opts.insert, ":")
		if !ok {
			return fmt.Errorf("%w: -insert expects position:text", errUsage)
		}
		pos, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("%w: -insert: %w", errUsage, err)
		}
		text = strings.ReplaceAll(text, `\n`, "\n")
		if err := doc.Insert(pos, text); err != nil {
			return err
		}
	}
	return nil
}

// render prints lines [from, to] (1-based, inclusive) with a line number
// gutter, truncating each line to width display cells. Cell widths of
// characters follow the East Asian width rules of wctx.
func render(w io.Writer, doc *piecetable.Document, from, to, width int, wctx *uax11.Context) {
	if to <= 0 || to > doc.LineCount() {
		to = doc.LineCount()
	}
	from = max(from, 1)
	digits := len(strconv.Itoa(to))
	gutter := color.New(color.FgHiBlack)
	for n := from; n <= to; n++ {
		line, ok := doc.Line(n - 1)
		if !ok {
			break
		}
		line = strings.ReplaceAll(line, "\t", "    ")
		if avail := width - digits - 3; avail > 0 {
			line = truncate(line, avail, wctx)
		}
		fmt.Fprintf(w, "%s%s\n", gutter.Sprintf("%*d │ ", digits, n), line)
	}
}

var graphemeClasses sync.Once

// displayWidth returns the number of terminal cells occupied by s.
func displayWidth(s string, wctx *uax11.Context) int {
	if s == "" {
		return 0
	}
	graphemeClasses.Do(func() { grapheme.SetupGraphemeClasses() })
	return uax11.StringWidth(grapheme.StringFromString(s), wctx)
}

// truncate cuts line to at most width cells, marking a cut with an ellipsis.
// Cuts are placed between grapheme clusters.
func truncate(line string, width int, wctx *uax11.Context) string {
	if displayWidth(line, wctx) <= width {
		return line
	}
	cells, n, state := 0, 0, -1
	for rest := line; len(rest) > 0; {
		cluster, r, _, st := uniseg.FirstGraphemeClusterInString(rest, state)
		cw := displayWidth(cluster, wctx)
		if cells+cw > width-1 { // leave a cell for the ellipsis
			break
		}
		cells, n = cells+cw, n+len(cluster)
		rest, state = r, st
	}
	return line[:n] + "…"
}

func renderStats(w io.Writer, doc *piecetable.Document) {
	st := doc.Stats()
	label := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(w, "%s %d graphemes, %d bytes, %d lines\n", label("text: "),
		doc.Len(), doc.Size(), doc.LineCount())
	fmt.Fprintf(w, "%s %d pieces over %d buffers\n", label("pieces:"), st.Pieces, st.Buffers)
	fmt.Fprintf(w, "%s height %d, max size %d\n", label("tree: "), st.Height, st.MaxSize)
}

// terminalWidth returns the width of the terminal at stdout, or 0 if stdout
// is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}
