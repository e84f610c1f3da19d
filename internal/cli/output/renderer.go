// Package output renders command results in terminal, markdown, and JSON
// form. The auto mode picks styled text on a TTY and markdown when piped, so
// scripted callers get stable output without flags.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// Mode selects the output format.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Renderer writes formatted command output.
type Renderer struct {
	out  io.Writer
	errW io.Writer
	mode Mode
}

// NewRenderer creates a renderer for the given writers and mode.
func NewRenderer(out, errW io.Writer, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	return &Renderer{out: out, errW: errW, mode: mode}
}

// EffectiveMode resolves auto to text or markdown based on the output target.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if f, ok := r.out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return ModeText
	}
	return ModeMarkdown
}

// Writer returns the output writer, for encoders that write directly.
func (r *Renderer) Writer() io.Writer { return r.out }

// Println writes a line to the output writer.
func (r *Renderer) Println(s string) {
	fmt.Fprintln(r.out, s)
}

// Printf writes formatted text to the output writer.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

// Header writes a section header appropriate for the effective mode.
func (r *Renderer) Header(level int, s string) {
	if r.EffectiveMode() == ModeText {
		fmt.Fprintln(r.out, text.Bold.Sprint(s))
		return
	}
	fmt.Fprintln(r.out, FormatHeader(level, s))
}

// Success writes a confirmation line.
func (r *Renderer) Success(s string) {
	if r.EffectiveMode() == ModeText {
		fmt.Fprintln(r.out, text.FgGreen.Sprint(s))
		return
	}
	fmt.Fprintln(r.out, s)
}

// Warn writes a warning line to the error writer.
func (r *Renderer) Warn(s string) {
	if r.EffectiveMode() == ModeText {
		fmt.Fprintln(r.errW, text.FgYellow.Sprint(s))
		return
	}
	fmt.Fprintln(r.errW, s)
}

// Error writes an error line to the error writer.
func (r *Renderer) Error(s string) {
	if r.EffectiveMode() == ModeText {
		fmt.Fprintln(r.errW, text.FgRed.Sprint(s))
		return
	}
	fmt.Fprintln(r.errW, s)
}

// Table renders rows under headers, styled for the effective mode.
func (r *Renderer) Table(headers []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)

	hdr := make(table.Row, len(headers))
	for i, h := range headers {
		hdr[i] = h
	}
	t.AppendHeader(hdr)
	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, c := range row {
			tr[i] = c
		}
		t.AppendRow(tr)
	}

	if r.EffectiveMode() == ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// FormatHeader formats a markdown header at the given level.
func FormatHeader(level int, s string) string {
	return strings.Repeat("#", level) + " " + s
}

// FormatKeyValue formats a markdown key-value line.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s**: %s", key, value)
}
