// Package terminal renders lines to a text stream.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"employeedir/internal/render"

	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Target writes every render as a new block on its writer, a stream cannot
// erase what it already printed so a new block stands in for a replacement.
type Target struct {
	mu     sync.Mutex
	out    io.Writer
	colors bool
}

func NewTarget(out io.Writer, colors bool) *Target {
	return &Target{out: out, colors: colors}
}

func (t *Target) paint(c text.Colors, s string) string {
	if !t.colors {
		return s
	}
	return c.Sprint(s)
}

func (t *Target) renderItems(items []string) string {
	l := list.NewWriter()
	l.SetStyle(list.StyleBulletCircle)
	for _, item := range items {
		l.AppendItem(item)
	}
	return l.Render()
}

// Format returns the text written for `lines`.
func (t *Target) Format(lines []render.Line) string {
	var blocks []string
	var items []string
	flush := func() {
		if len(items) > 0 {
			blocks = append(blocks, t.renderItems(items))
			items = nil
		}
	}

	for _, line := range lines {
		if line.Kind == render.KindItem {
			items = append(items, line.Text)
			continue
		}
		flush()
		switch line.Kind {
		case render.KindError:
			blocks = append(blocks, t.paint(text.Colors{text.FgRed}, line.Text))
		case render.KindMessage:
			blocks = append(blocks, t.paint(text.Colors{text.FgYellow}, line.Text))
		default:
			blocks = append(blocks, line.Text)
		}
	}
	flush()

	return strings.Join(blocks, "\n")
}

func (t *Target) Replace(lines []render.Line) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(t.out, t.Format(lines))
}
