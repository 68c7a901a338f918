package generator

import (
	"fmt"
	"strings"
)

// document accumulates a markdown reply
type document struct {
	b strings.Builder
}

func (d *document) para(format string, a ...interface{}) {
	fmt.Fprintf(&d.b, format, a...)
	d.b.WriteString("\n\n")
}

func (d *document) heading(level int, title string) {
	d.b.WriteString(strings.Repeat("#", level))
	d.b.WriteByte(' ')
	d.b.WriteString(title)
	d.b.WriteString("\n\n")
}

func (d *document) bullets(items []string) {
	for _, item := range items {
		d.b.WriteString("- ")
		d.b.WriteString(item)
		d.b.WriteByte('\n')
	}
	d.b.WriteByte('\n')
}

func (d *document) ordered(items []string) {
	for i, item := range items {
		fmt.Fprintf(&d.b, "%d. %s\n", i+1, item)
	}
	d.b.WriteByte('\n')
}

func (d *document) code(language, body string) {
	d.b.WriteString("```")
	d.b.WriteString(language)
	d.b.WriteByte('\n')
	d.b.WriteString(strings.Trim(body, "\n"))
	d.b.WriteString("\n```\n\n")
}

func (d *document) String() string {
	return strings.TrimRight(d.b.String(), "\n")
}
