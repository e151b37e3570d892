package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"lintjs/internal/observ"
)

const nameWidth = 20

// Timings renders a timer report as an aligned table. Styled output uses
// lipgloss colors; failed phases (a note ending in "failure") are red.
func Timings(report observ.Report, styled bool) string {
	if len(report.Phases) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))

	var b strings.Builder
	b.WriteString(render(titleStyle, "timings:", styled))
	b.WriteString("\n")
	for _, p := range report.Phases {
		name := pad(truncate(p.Name, nameWidth), nameWidth)
		dur := fmt.Sprintf("%9.2f ms", p.DurationMS)
		fmt.Fprintf(&b, "  %s %s", name, render(styleNote(p.Note), dur, styled))
		if p.Note != "" {
			b.WriteString("  // ")
			b.WriteString(p.Note)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "  %s %s\n", pad("total", nameWidth),
		render(titleStyle, fmt.Sprintf("%9.2f ms", report.TotalMS), styled))
	return b.String()
}

// Row is one line of a two-column help table.
type Row struct {
	Key  string
	Text string
}

// Table renders rows as " key : text" with keys padded to the widest one.
// Text wraps at width columns when width is positive.
func Table(rows []Row, width int) string {
	keyWidth := 0
	for _, r := range rows {
		if w := runewidth.StringWidth(r.Key); w > keyWidth {
			keyWidth = w
		}
	}

	var b strings.Builder
	indent := strings.Repeat(" ", keyWidth+4)
	for _, r := range rows {
		prefix := " " + pad(r.Key, keyWidth) + " : "
		lines := wrap(r.Text, width-runewidth.StringWidth(prefix))
		for i, line := range lines {
			if i == 0 {
				b.WriteString(prefix)
			} else {
				b.WriteString(indent)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func render(style lipgloss.Style, s string, styled bool) string {
	if !styled {
		return s
	}
	return style.Render(s)
}

func styleNote(note string) lipgloss.Style {
	if strings.HasSuffix(note, "failure") {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
}

func pad(value string, width int) string {
	return runewidth.FillRight(value, width)
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}

// wrap splits text into lines of at most width display columns, breaking
// on spaces. A non-positive width disables wrapping.
func wrap(text string, width int) []string {
	if width <= 0 || runewidth.StringWidth(text) <= width {
		return []string{text}
	}
	var lines []string
	var cur strings.Builder
	curWidth := 0
	for _, word := range strings.Fields(text) {
		w := runewidth.StringWidth(word)
		if curWidth > 0 && curWidth+1+w > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curWidth = 0
		}
		if curWidth > 0 {
			cur.WriteByte(' ')
			curWidth++
		}
		cur.WriteString(word)
		curWidth += w
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
