package cli

import (
	"fmt"
	"io"

	vtterm "github.com/phroun/vtterm"
)

// Renderer paints a vtterm grid to an ANSI-capable io.Writer, repainting
// only the rows a refresh reports dirty rather than clearing and
// redrawing the whole screen on every chunk.
type Renderer struct {
	w     io.Writer
	title string
}

// NewRenderer wraps w for output.
func NewRenderer(w io.Writer) *Renderer { return &Renderer{w: w} }

// Draw repaints the rows named by dirty (absolute buffer rows,
// inclusive) using slice, and places the cursor.
func (r *Renderer) Draw(scr *vtterm.Screen, dirty [2]int, slice []vtterm.Line, cursor vtterm.Cursor) {
	base := scr.Base()
	rows := scr.Rows()
	for i, line := range slice {
		y := dirty[0] + i - base
		if y < 0 || y >= rows {
			continue
		}
		fmt.Fprintf(r.w, "\x1b[%d;1H\x1b[2K", y+1)
		r.writeLine(line)
	}
	fmt.Fprintf(r.w, "\x1b[%d;%dH", cursor.Y+1, cursor.X+1)
}

func (r *Renderer) writeLine(line vtterm.Line) {
	var lastAttr uint32 = ^uint32(0)
	for _, g := range line {
		if g.Attr != lastAttr {
			r.writeSGR(g)
			lastAttr = g.Attr
		}
		fmt.Fprintf(r.w, "%c", g.Ch)
	}
	fmt.Fprint(r.w, "\x1b[0m")
}

func (r *Renderer) writeSGR(g vtterm.Glyph) {
	fmt.Fprint(r.w, "\x1b[0m")
	if g.Has(vtterm.AttrBold) {
		fmt.Fprint(r.w, "\x1b[1m")
	}
	if g.Has(vtterm.AttrItalic) {
		fmt.Fprint(r.w, "\x1b[3m")
	}
	if g.Has(vtterm.AttrUnderline) {
		fmt.Fprint(r.w, "\x1b[4m")
	}
	if g.Has(vtterm.AttrBlink) {
		fmt.Fprint(r.w, "\x1b[5m")
	}
	if g.Has(vtterm.AttrReverse) {
		fmt.Fprint(r.w, "\x1b[7m")
	}
	if fg := g.Foreground(); fg != vtterm.DefaultFG {
		writeColorSGR(r.w, 30, fg)
	}
	if bg := g.Background(); bg != vtterm.DefaultBG {
		writeColorSGR(r.w, 40, bg)
	}
}

func writeColorSGR(w io.Writer, base, idx int) {
	switch {
	case idx < 8:
		fmt.Fprintf(w, "\x1b[%dm", base+idx)
	case idx < 16:
		fmt.Fprintf(w, "\x1b[%dm", base+60+idx-8)
	default:
		fmt.Fprintf(w, "\x1b[%d;5;%dm", base+8, idx)
	}
}

// SetTitle emits an OSC 0 title-setting sequence for the outer terminal.
func (r *Renderer) SetTitle(title string) {
	r.title = title
	fmt.Fprintf(r.w, "\x1b]0;%s\x07", title)
}
