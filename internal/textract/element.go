// Package textract flattens structured document bodies into plain text.
package textract

// Element is one node of a document body. Any combination of the fields may be
// set; a nil field contributes nothing.
type Element struct {
	Paragraph       *Paragraph
	Table           *Table
	TableOfContents *TableOfContents
}

// Paragraph is an ordered list of text-bearing pieces.
type Paragraph struct {
	Elements []*ParagraphElement
}

// ParagraphElement wraps a text run; other paragraph element kinds carry no text.
type ParagraphElement struct {
	TextRun *TextRun
}

// TextRun is the smallest text-bearing unit of a paragraph.
type TextRun struct {
	Content string
}

// Table is a grid of cells read in row-major order.
type Table struct {
	Rows []*TableRow
}

// TableRow is one row of a Table.
type TableRow struct {
	Cells []*TableCell
}

// TableCell holds already flattened cell text.
type TableCell struct {
	Content string
}

// TableOfContents nests a further sequence of elements.
type TableOfContents struct {
	Content []*Element
}
