// Package repl is an interactive console for compiling and calling PL
// functions: a source pane, a diagnostics/output pane, and a command
// line. The layout is a tview.Flex of TextViews driven by one
// InputField's SetDoneFunc.
package repl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/pljit/pljit/config"
	"github.com/pljit/pljit/pljitfmt"
	"github.com/pljit/pljit/registry"
)

// Console is the REPL's text user interface: one source buffer compiled
// into at most one live registry.Handle at a time, an output log, and a
// command line.
type Console struct {
	App *tview.Application

	SourceView  *tview.TextView
	OutputView  *tview.TextView
	CommandLine *tview.InputField

	cfg     *config.Config
	reg     *registry.Registry
	handle  *registry.Handle
	source  string
	history []string
}

// New builds a Console using cfg for the registry's optimizer options
// and REPL display settings.
func New(cfg *config.Config) *Console {
	c := &Console{
		App: tview.NewApplication(),
		cfg: cfg,
		reg: registry.New(registry.OptionsFromConfig(cfg)),
	}
	c.build()
	return c
}

func (c *Console) build() {
	c.SourceView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	c.SourceView.SetBorder(true).SetTitle(" Source ")

	c.OutputView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(true)
	c.OutputView.SetBorder(true).SetTitle(" Output ")

	c.CommandLine = tview.NewInputField().
		SetLabel(c.cfg.REPL.PromptString).
		SetFieldWidth(0)
	c.CommandLine.SetBorder(true).SetTitle(" Command ")
	c.CommandLine.SetDoneFunc(c.handleDone)

	content := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(c.SourceView, 0, 1, false).
		AddItem(c.OutputView, 0, 1, false)

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(content, 0, 4, false).
		AddItem(c.CommandLine, 3, 0, true)

	c.App.SetRoot(layout, true).SetFocus(c.CommandLine)
	c.App.SetInputCapture(c.handleGlobalKey)
}

func (c *Console) handleGlobalKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyCtrlC:
		c.App.Stop()
		return nil
	case tcell.KeyCtrlL:
		c.OutputView.Clear()
		return nil
	}
	return event
}

func (c *Console) handleDone(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	line := c.CommandLine.GetText()
	c.CommandLine.SetText("")
	if line == "" {
		return
	}
	c.record(line)
	c.writeOutput(c.Execute(line))
}

func (c *Console) record(line string) {
	c.history = append(c.history, line)
	if max := c.cfg.REPL.HistorySize; max > 0 && len(c.history) > max {
		c.history = c.history[len(c.history)-max:]
	}
}

func (c *Console) writeOutput(text string) {
	if text == "" {
		return
	}
	fmt.Fprintln(c.OutputView, text)
	c.OutputView.ScrollToEnd()
}

// Execute runs a single REPL command line and returns the text to show
// for it. It is split out from handleDone so it can be driven headless,
// for example by tests.
func (c *Console) Execute(line string) string {
	cmd, rest := splitCommand(line)
	switch cmd {
	case ":source":
		c.source = rest
		c.handle = nil
		c.SourceView.SetText(c.source)
		return "source updated"

	case ":load":
		return "use -file to load from disk before starting the REPL"

	case ":compile":
		c.handle = c.reg.Register(c.source)
		if d := c.handle.Err(); d != nil {
			return d.String()
		}
		return fmt.Sprintf("compiled ok, %d parameter(s)", c.handle.NumberOfParameters())

	case ":call":
		return c.runCall(rest)

	case ":fmt":
		out, err := pljitfmt.FormatString(c.source)
		if err != nil {
			return err.Error()
		}
		c.source = out
		c.SourceView.SetText(c.source)
		return out

	case ":lint":
		issues := pljitfmt.LintString(c.source)
		if len(issues) == 0 {
			return "no issues found"
		}
		var sb strings.Builder
		for _, issue := range issues {
			sb.WriteString(issue.String())
			sb.WriteString("\n")
		}
		return sb.String()

	case ":history":
		return strings.Join(c.history, "\n")

	case ":help", "help":
		return helpText

	case ":quit", "quit":
		c.App.Stop()
		return "goodbye"

	default:
		return fmt.Sprintf("unknown command %q, try :help", cmd)
	}
}

func (c *Console) runCall(rest string) string {
	if c.handle == nil {
		c.handle = c.reg.Register(c.source)
	}
	if d := c.handle.Err(); d != nil {
		return d.String()
	}
	args, err := parseArgs(rest)
	if err != nil {
		return err.Error()
	}
	if want := c.handle.NumberOfParameters(); len(args) != want {
		return fmt.Sprintf("wrong argument count: got %d, function takes %d", len(args), want)
	}
	result, ok := c.handle.Call(args)
	if !ok {
		return "runtime error: division by zero"
	}
	return strconv.FormatInt(result, 10)
}

func parseArgs(rest string) ([]int64, error) {
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return nil, nil
	}
	parts := strings.Split(rest, ",")
	args := make([]int64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid argument %q: %w", p, err)
		}
		args[i] = v
	}
	return args, nil
}

func splitCommand(line string) (cmd, rest string) {
	line = strings.TrimSpace(line)
	i := strings.IndexByte(line, ' ')
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i+1:])
}

const helpText = `commands:
  :source <text>   replace the current source buffer
  :compile         compile the current source buffer
  :call a,b,c      compile if needed and call with the given arguments
  :fmt             reformat the current source buffer
  :lint            lint the current source buffer
  :history         show command history
  :help            show this text
  :quit            exit`

// Run starts the tview event loop. It blocks until the console quits.
func (c *Console) Run() error {
	return c.App.Run()
}

// Stop requests the event loop exit.
func (c *Console) Stop() {
	c.App.Stop()
}

// LoadSource seeds the console's source buffer without compiling it,
// used by cmd/pljit to preload a -file argument before entering -repl.
func (c *Console) LoadSource(src string) {
	c.source = src
	c.handle = nil
	c.SourceView.SetText(c.source)
}
