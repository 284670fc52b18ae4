package textract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func para(runs ...string) *Element {
	p := &Paragraph{}
	for _, r := range runs {
		p.Elements = append(p.Elements, &ParagraphElement{TextRun: &TextRun{Content: r}})
	}
	return &Element{Paragraph: p}
}

func table(rows ...[]string) *Element {
	t := &Table{}
	for _, cells := range rows {
		row := &TableRow{}
		for _, c := range cells {
			row.Cells = append(row.Cells, &TableCell{Content: c})
		}
		t.Rows = append(t.Rows, row)
	}
	return &Element{Table: t}
}

func toc(elems ...*Element) *Element {
	return &Element{TableOfContents: &TableOfContents{Content: elems}}
}

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		elems []*Element
		want  string
	}{
		{
			name:  "paragraph runs",
			elems: []*Element{para("Hello, ", "World!")},
			want:  "Hello, World!",
		},
		{
			name:  "table row-major",
			elems: []*Element{table([]string{"a", "b"}, []string{"c", "d"})},
			want:  "abcd",
		},
		{
			name:  "nested table of contents",
			elems: []*Element{toc(para("X")), para("Y")},
			want:  "XY",
		},
		{
			name:  "run without text",
			elems: []*Element{{Paragraph: &Paragraph{Elements: []*ParagraphElement{{}}}}},
			want:  "",
		},
		{
			name: "sparse tree",
			elems: []*Element{
				nil,
				{},
				{Paragraph: &Paragraph{}},
				{Table: &Table{Rows: []*TableRow{nil, {Cells: []*TableCell{nil, {Content: "z"}}}}}},
				{TableOfContents: &TableOfContents{}},
			},
			want: "z",
		},
		{
			name:  "reading order across kinds",
			elems: []*Element{para("1"), toc(para("2"), toc(para("3")), table([]string{"4"})), para("5")},
			want:  "12345",
		},
		{
			name:  "empty input",
			elems: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.elems))
		})
	}
}

func TestText_ElementWithSeveralParts(t *testing.T) {
	el := &Element{
		Paragraph:       para("p").Paragraph,
		Table:           table([]string{"t"}).Table,
		TableOfContents: &TableOfContents{Content: []*Element{para("c")}},
	}
	assert.Equal(t, "ptc!", Text([]*Element{el, para("!")}))
}

func TestText_DeepNesting(t *testing.T) {
	const depth = 100000
	root := para("leaf")
	for i := 0; i < depth; i++ {
		root = toc(root)
	}
	assert.Equal(t, "leaf", Text([]*Element{root}))
}

func TestText_LongDocument(t *testing.T) {
	elems := make([]*Element, 0, 1000)
	for i := 0; i < 1000; i++ {
		elems = append(elems, para("ab"))
	}
	assert.Equal(t, strings.Repeat("ab", 1000), Text(elems))
}
