package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/R167/a11ycheck/checkers/common"
)

type Output interface {
	Section(icon, title string)
	Header(title string)
	Info(format string, args ...interface{})
	Success(format string, args ...interface{})
	Warning(format string, args ...interface{})
	Error(format string, args ...interface{})
	Detail(format string, args ...interface{})
	Debug(format string, args ...interface{})
	Println(s string)
}

// ColorEnabled reports whether f is a terminal and color was not turned off.
func ColorEnabled(f *os.File, noColor bool) bool {
	if noColor || f == nil || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type palette struct {
	section *color.Color
	success *color.Color
	warn    *color.Color
	fail    *color.Color
	detail  *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		section: color.New(color.FgCyan, color.Bold),
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed),
		detail:  color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.section, p.success, p.warn, p.fail, p.detail} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

type StreamingOutput struct {
	writer io.Writer
	colors *palette
	mu     sync.Mutex
}

func NewStreamingOutput(writer io.Writer) *StreamingOutput {
	if writer == nil {
		writer = os.Stdout
	}
	return &StreamingOutput{writer: writer, colors: newPalette(false)}
}

// WithColor turns ANSI colors on or off for subsequent lines.
func (o *StreamingOutput) WithColor(enabled bool) *StreamingOutput {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.colors = newPalette(enabled)
	return o
}

func (o *StreamingOutput) Section(icon, title string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.writer, "\n%s %s\n", icon, o.colors.section.Sprint(title))
}

func (o *StreamingOutput) Header(title string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.writer, "%s\n%s\n", title, strings.Repeat("=", len(title)))
}

func (o *StreamingOutput) Info(format string, args ...interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.writer, "  "+format+"\n", args...)
}

func (o *StreamingOutput) Success(format string, args ...interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.writer, "  ✅ %s\n", o.colors.success.Sprintf(format, args...))
}

func (o *StreamingOutput) Warning(format string, args ...interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.writer, "  ⚠️  %s\n", o.colors.warn.Sprintf(format, args...))
}

func (o *StreamingOutput) Error(format string, args ...interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.writer, "  ❌ %s\n", o.colors.fail.Sprintf(format, args...))
}

func (o *StreamingOutput) Detail(format string, args ...interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.writer, "     %s\n", o.colors.detail.Sprintf(format, args...))
}

func (o *StreamingOutput) Debug(format string, args ...interface{}) {
	if !common.IsDebugMode() {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.writer, "  🔍 [DEBUG] "+format+"\n", args...)
}

func (o *StreamingOutput) Println(s string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintln(o.writer, s)
}

// BufferedOutput keeps lines in memory; the MCP tools return them as the report.
type BufferedOutput struct {
	lines []string
	mu    sync.Mutex
}

func NewBufferedOutput() *BufferedOutput {
	return &BufferedOutput{lines: make([]string, 0)}
}

func (o *BufferedOutput) add(msg string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lines = append(o.lines, msg)
}

func (o *BufferedOutput) Section(icon, title string) {
	o.add(fmt.Sprintf("\n%s %s", icon, title))
}

func (o *BufferedOutput) Header(title string) {
	o.add(fmt.Sprintf("%s\n%s", title, strings.Repeat("=", len(title))))
}

func (o *BufferedOutput) Info(format string, args ...interface{}) {
	o.add(fmt.Sprintf("  "+format, args...))
}

func (o *BufferedOutput) Success(format string, args ...interface{}) {
	o.add(fmt.Sprintf("  ✅ "+format, args...))
}

func (o *BufferedOutput) Warning(format string, args ...interface{}) {
	o.add(fmt.Sprintf("  ⚠️  "+format, args...))
}

func (o *BufferedOutput) Error(format string, args ...interface{}) {
	o.add(fmt.Sprintf("  ❌ "+format, args...))
}

func (o *BufferedOutput) Detail(format string, args ...interface{}) {
	o.add(fmt.Sprintf("     "+format, args...))
}

func (o *BufferedOutput) Debug(format string, args ...interface{}) {
	if !common.IsDebugMode() {
		return
	}
	o.add(fmt.Sprintf("  🔍 [DEBUG] "+format, args...))
}

func (o *BufferedOutput) Println(s string) {
	o.add(s)
}

func (o *BufferedOutput) Flush(writer io.Writer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, line := range o.lines {
		fmt.Fprintln(writer, line)
	}
}

func (o *BufferedOutput) String() string {
	var b strings.Builder
	o.Flush(&b)
	return b.String()
}

// NoOpOutput is a no-op implementation for tests
type NoOpOutput struct{}

func NewNoOpOutput() *NoOpOutput {
	return &NoOpOutput{}
}

func (o *NoOpOutput) Section(icon, title string)                 {}
func (o *NoOpOutput) Header(title string)                        {}
func (o *NoOpOutput) Info(format string, args ...interface{})    {}
func (o *NoOpOutput) Success(format string, args ...interface{}) {}
func (o *NoOpOutput) Warning(format string, args ...interface{}) {}
func (o *NoOpOutput) Error(format string, args ...interface{})   {}
func (o *NoOpOutput) Detail(format string, args ...interface{})  {}
func (o *NoOpOutput) Debug(format string, args ...interface{})   {}
func (o *NoOpOutput) Println(s string)                           {}
