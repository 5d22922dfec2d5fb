package appmode

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/UnendingLoop/minigrep/internal/matcher"
	"github.com/UnendingLoop/minigrep/internal/model"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type printer struct {
	w             *bufio.Writer
	query         string
	caseSensitive bool
	highlight     *color.Color
}

func newPrinter(out io.Writer, cfg *model.Config) *printer {
	p := &printer{
		w:             bufio.NewWriter(out),
		query:         cfg.Query,
		caseSensitive: cfg.CaseSensitive,
	}
	if useColor(out, cfg.Color) {
		p.highlight = color.New(color.FgRed, color.Bold)
		p.highlight.EnableColor()
	}
	return p
}

func useColor(out io.Writer, mode model.ColorMode) bool {
	switch mode {
	case model.ColorAlways:
		return true
	case model.ColorAuto:
		f, ok := out.(*os.File)
		return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	default:
		return false
	}
}

// printLines writes every line followed by '\n' and flushes once at the end.
func (p *printer) printLines(lines []string) error {
	for _, line := range lines {
		if _, err := p.w.WriteString(p.decorate(line)); err != nil {
			return err
		}
		if err := p.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return p.w.Flush()
}

func (p *printer) decorate(line string) string {
	if p.highlight == nil {
		return line
	}
	ranges := matcher.Occurrences(line, p.query, p.caseSensitive)
	if len(ranges) == 0 {
		return line
	}

	var sb strings.Builder
	last := 0
	for _, r := range ranges {
		sb.WriteString(line[last:r[0]])
		sb.WriteString(p.highlight.Sprint(line[r[0]:r[1]]))
		last = r[1]
	}
	sb.WriteString(line[last:])
	return sb.String()
}
