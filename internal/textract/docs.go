package textract

import (
	"strings"

	"google.golang.org/api/docs/v1"
)

// convertJob fills dst with the elements converted from src.
type convertJob struct {
	src []*docs.StructuralElement
	dst *[]*Element
}

// FromDocs converts a Google Docs body into elements. The structural
// elements nested in each table cell are flattened into the cell content.
// Like Text, nesting is walked with explicit stacks.
func FromDocs(body *docs.Body) []*Element {
	if body == nil {
		return nil
	}

	var root []*Element
	jobs := []convertJob{{src: body.Content, dst: &root}}
	for len(jobs) > 0 {
		job := jobs[len(jobs)-1]
		jobs = jobs[:len(jobs)-1]

		out := make([]*Element, 0, len(job.src))
		for _, se := range job.src {
			if se == nil {
				continue
			}
			el := &Element{}
			if se.Paragraph != nil {
				el.Paragraph = fromParagraph(se.Paragraph)
			}
			if se.Table != nil {
				el.Table = fromTable(se.Table)
			}
			if se.TableOfContents != nil {
				el.TableOfContents = &TableOfContents{}
				jobs = append(jobs, convertJob{src: se.TableOfContents.Content, dst: &el.TableOfContents.Content})
			}
			out = append(out, el)
		}
		*job.dst = out
	}
	return root
}

func fromParagraph(p *docs.Paragraph) *Paragraph {
	out := &Paragraph{Elements: make([]*ParagraphElement, 0, len(p.Elements))}
	for _, pe := range p.Elements {
		if pe == nil {
			continue
		}
		e := &ParagraphElement{}
		if pe.TextRun != nil {
			e.TextRun = &TextRun{Content: pe.TextRun.Content}
		}
		out.Elements = append(out.Elements, e)
	}
	return out
}

func fromTable(t *docs.Table) *Table {
	out := &Table{Rows: make([]*TableRow, 0, len(t.TableRows))}
	for _, tr := range t.TableRows {
		if tr == nil {
			continue
		}
		row := &TableRow{Cells: make([]*TableCell, 0, len(tr.TableCells))}
		for _, tc := range tr.TableCells {
			if tc == nil {
				continue
			}
			row.Cells = append(row.Cells, &TableCell{Content: structuralText(tc.Content)})
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// docsFrame is a position inside one structural element sequence.
type docsFrame struct {
	elems []*docs.StructuralElement
	next  int
}

// structuralText reads cell content directly in the order Text would read the
// converted elements: paragraph, then nested table cells, then table of contents.
func structuralText(in []*docs.StructuralElement) string {
	var b strings.Builder
	stack := []docsFrame{{elems: in}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(top.elems) {
			stack = stack[:len(stack)-1]
			continue
		}
		se := top.elems[top.next]
		top.next++
		if se == nil {
			continue
		}

		if p := se.Paragraph; p != nil {
			for _, pe := range p.Elements {
				if pe != nil && pe.TextRun != nil {
					b.WriteString(pe.TextRun.Content)
				}
			}
		}
		// top is invalid after the appends below. The stack pops last in,
		// so the table of contents goes under the cells.
		if toc := se.TableOfContents; toc != nil && len(toc.Content) > 0 {
			stack = append(stack, docsFrame{elems: toc.Content})
		}
		if t := se.Table; t != nil {
			for r := len(t.TableRows) - 1; r >= 0; r-- {
				row := t.TableRows[r]
				if row == nil {
					continue
				}
				for c := len(row.TableCells) - 1; c >= 0; c-- {
					if cell := row.TableCells[c]; cell != nil && len(cell.Content) > 0 {
						stack = append(stack, docsFrame{elems: cell.Content})
					}
				}
			}
		}
	}
	return b.String()
}
