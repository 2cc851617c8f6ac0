package app

import (
	"fmt"
	"io"
	"math"
	"strings"

	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/npillmayer/bpcurve"
	"github.com/npillmayer/bpcurve/curvefile"
	"github.com/npillmayer/bpcurve/editor"
)

const (
	plotWidth  = 64
	plotHeight = 20
)

func writePoints(w io.Writer, pts []bpcurve.Pair) {
	t := prettytable.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(prettytable.Row{"#", "x", "y"})
	for i, pt := range pts {
		t.AppendRow(prettytable.Row{i, pt.X(), pt.Y()})
	}
	t.Render()
}

func writeAngles(w io.Writer, ap *editor.AngleProfile) {
	t := prettytable.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(prettytable.Row{"Junction", "Breakpoint", "θ (deg)"})
	for _, j := range ap.Junctions() {
		t.AppendRow(prettytable.Row{j.Index, j.Index + 1, fmt.Sprintf("%.3f", j.Theta/bpcurve.Deg2Rad)})
	}
	if sharp, ok := ap.Sharpest(); ok {
		straight, _ := ap.Straightest()
		t.AppendFooter(prettytable.Row{"", "sharpest", sharp.Index + 1})
		t.AppendFooter(prettytable.Row{"", "straightest", straight.Index + 1})
	}
	t.Render()
}

func writeHeader(w io.Writer, hdr *curvefile.Header) {
	if hdr == nil {
		return
	}
	t := prettytable.NewWriter()
	t.SetOutputMirror(w)
	for _, f := range hdr.Fields {
		t.AppendRow(prettytable.Row{f.Key, f.Value})
	}
	t.Render()
}

func writeStatus(w io.Writer, ed *editor.Editor) {
	lock := ""
	if ed.Locked() {
		lock = ", locked"
	}
	fmt.Fprintf(w, "%d breakpoints (loaded %d), divider %g%s, deviation %.6g\n",
		ed.PointCount(), len(ed.Original()), ed.Divider(), lock, ed.Deviation())
}

// plot draws a curve onto a character raster. Breakpoints are marked with
// '*', the segments between them with '.'.
func plot(w io.Writer, pts []bpcurve.Pair, width, height int) {
	if len(pts) == 0 || width < 2 || height < 2 {
		return
	}
	raster := make([][]byte, height)
	for i := range raster {
		raster[i] = []byte(strings.Repeat(" ", width))
	}
	ll, ur := bpcurve.Bounds(pts)
	T := bpcurve.FitTransform(ll, ur, float64(width-1), float64(height-1))
	set := func(p bpcurve.Pair, c byte) {
		col, row := int(math.Round(p.X())), height-1-int(math.Round(p.Y()))
		if row >= 0 && row < height && col >= 0 && col < width {
			if raster[row][col] != '*' {
				raster[row][col] = c
			}
		}
	}
	for i := 1; i < len(pts); i++ {
		a, b := T.Transform(pts[i-1]), T.Transform(pts[i])
		steps := int(math.Ceil(math.Max(math.Abs(b.X()-a.X()), math.Abs(b.Y()-a.Y()))))
		for s := 1; s < steps; s++ {
			set(a.Lerp(b, float64(s)/float64(steps)), '.')
		}
	}
	for _, pt := range pts {
		set(T.Transform(pt), '*')
	}
	fmt.Fprintf(w, "%g ┤\n", ur.Y())
	for _, line := range raster {
		fmt.Fprintf(w, "  │%s\n", strings.TrimRight(string(line), " "))
	}
	fmt.Fprintf(w, "%g ┼%s %g\n", ll.Y(), strings.Repeat("─", width), ur.X())
	fmt.Fprintf(w, "   %g\n", ll.X())
}
