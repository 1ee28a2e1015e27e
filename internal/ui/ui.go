// Package ui renders todoctl output with Lip Gloss.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/toumakido/todolist/internal/model"
)

const (
	boxChecked   = "☑"
	boxUnchecked = "☐"
	maxTextWidth = 80
)

// UI writes styled output. Colors are dropped automatically when out is not a terminal.
type UI struct {
	out, errOut io.Writer

	title, success, pending, accent, muted, failure, done, border lipgloss.Style
}

// New builds a UI writing results to out and failures to errOut.
func New(out, errOut io.Writer) *UI {
	r := lipgloss.NewRenderer(out)
	re := lipgloss.NewRenderer(errOut)
	return &UI{
		out:     out,
		errOut:  errOut,
		title:   r.NewStyle().Bold(true),
		success: r.NewStyle().Foreground(lipgloss.Color("42")),
		pending: r.NewStyle().Foreground(lipgloss.Color("214")),
		accent:  r.NewStyle().Foreground(lipgloss.Color("12")),
		muted:   r.NewStyle().Faint(true),
		failure: re.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		done:    r.NewStyle().Faint(true).Strikethrough(true),
		border: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1),
	}
}

func (u *UI) OK(msg string) {
	fmt.Fprintln(u.out, u.success.Render("✔ "+msg))
}

func (u *UI) Fail(msg string) {
	fmt.Fprintln(u.errOut, u.failure.Render("✖ "+msg))
}

// List draws the todos in a bordered panel with a progress header.
// With group set, pending items are listed before done ones.
func (u *UI) List(todos []model.Todo, group bool) {
	d, p := stats(todos)
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		u.title.Render("Todos"),
		u.success.Render("✔"), d,
		u.pending.Render("•"), p,
		u.accent.Render("Total"), len(todos),
	)

	lines := []string{header, u.muted.Render(ProgressBar(d, d+p, 28)), ""}
	if group {
		lines = append(lines, u.groupLines(todos)...)
	} else {
		lines = append(lines, u.flatLines(todos)...)
	}
	fmt.Fprintln(u.out, u.border.Render(strings.Join(lines, "\n")))
}

func (u *UI) flatLines(todos []model.Todo) []string {
	if len(todos) == 0 {
		return []string{u.muted.Render("no items")}
	}
	out := make([]string, 0, len(todos))
	for _, t := range todos {
		text := t.Text
		if len([]rune(text)) > maxTextWidth {
			text = string([]rune(text)[:maxTextWidth-3]) + "..."
		}
		box := u.muted.Render(boxUnchecked)
		if t.Done {
			box = u.success.Render(boxChecked)
			text = u.done.Render(text)
		}
		out = append(out, fmt.Sprintf("%s %s %s", u.muted.Render(fmt.Sprintf("%3d", t.ID)), box, text))
	}
	return out
}

func (u *UI) groupLines(todos []model.Todo) []string {
	var pend, done []model.Todo
	for _, t := range todos {
		if t.Done {
			done = append(done, t)
		} else {
			pend = append(pend, t)
		}
	}
	section := func(name string, items []model.Todo) []string {
		lines := []string{u.accent.Render(name)}
		if len(items) == 0 {
			return append(lines, u.muted.Render("(none)"))
		}
		return append(lines, u.flatLines(items)...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}

// ProgressBar renders done/total as a bar with a percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := done * width / total
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %3d%%", bar, done*100/total)
}

func stats(todos []model.Todo) (done, pending int) {
	for _, t := range todos {
		if t.Done {
			done++
		} else {
			pending++
		}
	}
	return
}
