package chart

import (
	"fmt"
	"io"
	"math"
	"strconv"

	svg "github.com/ajstarks/svgo"
)

const (
	legendItemWidth = 120.0
	legendRowHeight = 20.0
	swatchSize      = 12

	transitionHint = `style="transition:opacity 200ms;cursor:pointer"`
)

// canvas wraps svgo and keeps the first write error, which svgo drops.
type canvas struct {
	*svg.SVG
	ew *errWriter
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

func newCanvas(w io.Writer, width, height float64) *canvas {
	ew := &errWriter{w: w}
	c := &canvas{SVG: svg.New(ew), ew: ew}
	c.Start(px(width), px(height), `font-family="Inter,Helvetica,sans-serif"`)
	return c
}

// End closes the document and reports the first write failure.
func (c *canvas) End() error {
	c.SVG.End()
	return c.ew.err
}

func px(v float64) int {
	return int(math.Round(v))
}

// num formats path coordinates with at most three decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

func fillAttr(color string) string {
	return fmt.Sprintf(`fill="%s"`, color)
}

func strokeAttr(color string) string {
	return fmt.Sprintf(`stroke="%s"`, color)
}

func opacityAttr(o float64) string {
	return `opacity="` + strconv.FormatFloat(o, 'f', -1, 64) + `"`
}

func targetAttr(t Target) string {
	return `data-target="` + t.String() + `"`
}

// renderLegend lays entries out in a row, or one per line when stacked.
func renderLegend(c *canvas, entries []LegendEntry, y float64, stacked bool) {
	c.Group(`class="legend"`)
	for i, e := range entries {
		x, ey := float64(i)*legendItemWidth+8, y
		if stacked {
			x, ey = 8, y+float64(i)*legendRowHeight
		}
		attrs := []string{fillAttr(e.Color), opacityAttr(e.Opacity)}
		if e.Selectable {
			attrs = append(attrs, targetAttr(e.Target), transitionHint)
		}
		c.Roundrect(px(x), px(ey), swatchSize, swatchSize, 3, 3, attrs...)
		c.Text(px(x)+swatchSize+6, px(ey)+swatchSize-2, e.Label, `font-size="12"`, `fill="#4b5563"`)
	}
	c.Gend()
}

func renderTooltip(c *canvas, t Tooltip) {
	if !t.Visible {
		return
	}
	x, y, w, h := t.box()
	c.Group(`class="tooltip"`, `pointer-events="none"`)
	c.Roundrect(px(x), px(y), px(w), px(h), 8, 8, `fill="#ffffff"`, `stroke="#e5e7eb"`)
	c.Text(px(x)+12, px(y)+22, t.Title, `font-size="14"`, `font-weight="500"`, `fill="#111827"`)
	c.Text(px(x)+12, px(y)+40, t.Detail, `font-size="13"`, `fill="#4b5563"`)
	c.Gend()
}

// renderGrid draws the 40px background grid of the line plots.
func renderGrid(c *canvas, width, height float64) {
	c.Group(`stroke="#f1f5f9"`, `stroke-width="1"`)
	for x := 0.0; x <= width; x += 40 {
		c.Line(px(x), 0, px(x), px(height))
	}
	for y := 0.0; y <= height; y += 40 {
		c.Line(0, px(y), px(width), px(y))
	}
	c.Gend()
}

// polylinePath builds an open path through pts.
func polylinePath(pts []Point) string {
	d := ""
	for i, p := range pts {
		if i == 0 {
			d += "M " + num(p.X) + " " + num(p.Y)
			continue
		}
		d += " L " + num(p.X) + " " + num(p.Y)
	}
	return d
}
