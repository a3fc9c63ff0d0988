package chart

import (
	"io"

	"go-inventory-dashboard/internal/model"

	"github.com/pkg/errors"
)

// Kind names a dashboard chart.
type Kind string

const (
	KindBar  Kind = "bar"
	KindPie  Kind = "pie"
	KindLine Kind = "line"
)

// Kinds lists the dashboard charts in page order.
var Kinds = []Kind{KindBar, KindPie, KindLine}

var ErrUnknownChart = errors.New("unknown chart")

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownChart, "%q", s)
}

// Props is a chart's whole external contract: the current filter, owned by
// the page, and the callback that asks the page to replace it.
type Props struct {
	Selected Selection
	OnSelect func(Selection)
}

func (p Props) toggle(key model.SeriesKey) {
	if p.OnSelect != nil {
		p.OnSelect(p.Selected.Toggle(key))
	}
}

// View is an interactive dashboard chart.
type View interface {
	Kind() Kind
	SetProps(Props)
	Click(Target) error
	Enter(Target) error
	Leave()
	Tooltip() Tooltip
	Model() any
	RenderSVG(w io.Writer) error
}

type LegendEntry struct {
	Series     model.SeriesKey `json:"series"`
	Selectable bool            `json:"selectable"`
	Label      string          `json:"label"`
	Color      string          `json:"color"`
	Opacity    float64         `json:"opacity"`
	Target     Target          `json:"target"`
}

func seriesLegend(sel Selection) []LegendEntry {
	legend := make([]LegendEntry, 0, model.SeriesCount)
	for _, key := range model.AllSeries {
		legend = append(legend, LegendEntry{
			Series:     key,
			Selectable: true,
			Label:      key.Label(),
			Color:      key.Color(),
			Opacity:    sel.OpacityFor(key),
			Target:     Target{Kind: TargetLegend, Series: key},
		})
	}
	return legend
}

// FilterBanner is shown under the bar chart while a filter is active.
type FilterBanner struct {
	Series model.SeriesKey `json:"series"`
	Text   string          `json:"text"`
	Hint   string          `json:"hint"`
}

func filterBanner(sel Selection) *FilterBanner {
	key, ok := sel.Selected()
	if !ok {
		return nil
	}
	return &FilterBanner{
		Series: key,
		Text:   "Filtered by: " + key.Label(),
		Hint:   "Click the same category again to clear the filter",
	}
}
