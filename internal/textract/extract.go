package textract

import "strings"

// frame is a position inside one element sequence still being read.
type frame struct {
	elems []*Element
	next  int
}

// Text concatenates the text of elems in reading order with no separators.
// Paragraph runs are joined in order, table cells row by row, and tables of
// contents are expanded in place. Missing pieces contribute nothing.
//
// Nesting is walked with an explicit stack, so deep tables of contents do not
// grow the goroutine stack.
func Text(elems []*Element) string {
	var b strings.Builder
	stack := []frame{{elems: elems}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(top.elems) {
			stack = stack[:len(stack)-1]
			continue
		}
		el := top.elems[top.next]
		top.next++
		if el == nil {
			continue
		}

		writeParagraph(&b, el.Paragraph)
		writeTable(&b, el.Table)
		if toc := el.TableOfContents; toc != nil && len(toc.Content) > 0 {
			// top is invalid after this append.
			stack = append(stack, frame{elems: toc.Content})
		}
	}
	return b.String()
}

func writeParagraph(b *strings.Builder, p *Paragraph) {
	if p == nil {
		return
	}
	for _, pe := range p.Elements {
		if pe != nil && pe.TextRun != nil {
			b.WriteString(pe.TextRun.Content)
		}
	}
}

func writeTable(b *strings.Builder, t *Table) {
	if t == nil {
		return
	}
	for _, row := range t.Rows {
		if row == nil {
			continue
		}
		for _, cell := range row.Cells {
			if cell != nil {
				b.WriteString(cell.Content)
			}
		}
	}
}
