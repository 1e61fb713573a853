package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Encode writes a stable text rendering of the document, one line per grid
// line and cell. Snapshot tests and the CLI preview use it.
func (d Document) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "document %s pages=%d columns=%d\n", strconv.Quote(d.Title), len(d.Pages), d.Layout.Columns())
	for _, p := range d.Pages {
		fmt.Fprintf(bw, "page %d\n", p.Number)
		for _, l := range p.Lines {
			fmt.Fprintf(bw, "  %s y=%.2f h=%.2f\n", l.Kind, l.Y, l.Height)
			for _, c := range l.Cells {
				fmt.Fprintf(bw, "    [%d+%d] x=%.2f w=%.2f lh=%.2f border=%t %s\n",
					c.Col, c.Span, c.X, c.W, c.LineHeight, c.Border, strconv.Quote(c.Text()))
			}
		}
	}
	return bw.Flush()
}
