package chart

// Placement selects how the overlay is positioned around its anchor.
type Placement string

const (
	PlaceRight  Placement = "right"
	PlaceCenter Placement = "center"
	PlacePoint  Placement = "point"
)

const (
	barTooltipGap   = 12.0
	pointOffsetX    = 10.0
	pointOffsetY    = -10.0
	PointFlipAfterX = 400.0

	tooltipWidth  = 140.0
	tooltipHeight = 52.0
)

// Tooltip is the hover overlay of one chart. Anchors are relative to the
// chart container. Leave only hides the overlay; its text survives.
type Tooltip struct {
	AnchorX   float64   `json:"anchor_x"`
	AnchorY   float64   `json:"anchor_y"`
	Title     string    `json:"title"`
	Detail    string    `json:"detail"`
	Placement Placement `json:"placement"`
	Visible   bool      `json:"visible"`
}

func (t *Tooltip) Enter(x, y float64, title, detail string, placement Placement) {
	t.AnchorX = x
	t.AnchorY = y
	t.Title = title
	t.Detail = detail
	t.Placement = placement
	t.Visible = true
}

func (t *Tooltip) Leave() {
	t.Visible = false
}

// Overlay is the CSS-style box position of a tooltip.
type Overlay struct {
	Left      float64 `json:"left"`
	Top       float64 `json:"top"`
	Transform string  `json:"transform"`
}

// Overlay derives the overlay position. Point tooltips flip to the left of
// their anchor past PointFlipAfterX so they stay on the canvas.
func (t Tooltip) Overlay() Overlay {
	switch t.Placement {
	case PlaceRight:
		return Overlay{Left: t.AnchorX + barTooltipGap, Top: t.AnchorY, Transform: "translateY(-50%)"}
	case PlaceCenter:
		return Overlay{Left: t.AnchorX, Top: t.AnchorY, Transform: "translate(-50%, -50%)"}
	case PlacePoint:
		o := Overlay{Left: t.AnchorX + pointOffsetX, Top: t.AnchorY + pointOffsetY, Transform: "none"}
		if t.Flipped() {
			o.Transform = "translateX(-100%)"
		}
		return o
	}
	return Overlay{Left: t.AnchorX, Top: t.AnchorY, Transform: "none"}
}

// Flipped reports whether a point tooltip renders left of its anchor.
func (t Tooltip) Flipped() bool {
	return t.Placement == PlacePoint && t.AnchorX > PointFlipAfterX
}

// box resolves the overlay transform into a rectangle for SVG output.
func (t Tooltip) box() (x, y, w, h float64) {
	o := t.Overlay()
	x, y = o.Left, o.Top
	switch t.Placement {
	case PlaceRight:
		y -= tooltipHeight / 2
	case PlaceCenter:
		x -= tooltipWidth / 2
		y -= tooltipHeight / 2
	case PlacePoint:
		if t.Flipped() {
			x -= tooltipWidth
		}
	}
	return x, y, tooltipWidth, tooltipHeight
}

// TooltipView is what API clients receive.
type TooltipView struct {
	Tooltip
	Overlay Overlay `json:"overlay"`
}

func (t Tooltip) View() TooltipView {
	return TooltipView{Tooltip: t, Overlay: t.Overlay()}
}
