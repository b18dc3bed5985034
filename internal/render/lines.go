package render

// Lines is a Target that keeps the last rendered lines in memory.
type Lines struct {
	Content []Line
	Renders int
}

func (l *Lines) Replace(lines []Line) {
	l.Content = append([]Line(nil), lines...)
	l.Renders++
}

// Texts returns the text of every line of the last render.
func (l *Lines) Texts() []string {
	out := make([]string, len(l.Content))
	for i, line := range l.Content {
		out[i] = line.Text
	}
	return out
}
