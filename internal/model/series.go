package model

import (
	"encoding/json"
	"fmt"
)

// SeriesKey identifies one of the four inventory status series. It is the
// unit of selection and of colour assignment across every chart.
type SeriesKey uint8

const (
	InStock SeriesKey = iota
	InTransit
	OutOfStock
	Suggested
)

// AllSeries lists the keys in stacking order (bottom segment first).
var AllSeries = [...]SeriesKey{InStock, InTransit, OutOfStock, Suggested}

// SeriesCount is the number of known series.
const SeriesCount = len(AllSeries)

// Valid reports whether k is one of the four known keys.
func (k SeriesKey) Valid() bool {
	return k <= Suggested
}

// Key returns the wire name used in fixtures and API payloads.
func (k SeriesKey) Key() string {
	switch k {
	case InStock:
		return "inStock"
	case InTransit:
		return "inTransit"
	case OutOfStock:
		return "outOfStock"
	case Suggested:
		return "suggested"
	}
	return ""
}

// Label returns the display name shown in legends and tooltips.
func (k SeriesKey) Label() string {
	switch k {
	case InStock:
		return "In Stock"
	case InTransit:
		return "In Transit"
	case OutOfStock:
		return "Out of Stock"
	case Suggested:
		return "Suggested"
	}
	return ""
}

// Color returns the colour token shared by all charts.
func (k SeriesKey) Color() string {
	switch k {
	case InStock:
		return "#10b981"
	case InTransit:
		return "#f59e0b"
	case OutOfStock:
		return "#ef4444"
	case Suggested:
		return "#3b82f6"
	}
	return "#9ca3af"
}

func (k SeriesKey) String() string {
	if !k.Valid() {
		return fmt.Sprintf("SeriesKey(%d)", uint8(k))
	}
	return k.Key()
}

// ParseSeriesKey resolves a wire name such as "inTransit".
func ParseSeriesKey(s string) (SeriesKey, bool) {
	for _, k := range AllSeries {
		if k.Key() == s {
			return k, true
		}
	}
	return 0, false
}

// SeriesKeyFromLabel resolves a display name such as "Out of Stock". Pie
// slices are labelled this way; names outside the four labels never match.
func SeriesKeyFromLabel(name string) (SeriesKey, bool) {
	for _, k := range AllSeries {
		if k.Label() == name {
			return k, true
		}
	}
	return 0, false
}

func (k SeriesKey) MarshalJSON() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid series key %d", uint8(k))
	}
	return json.Marshal(k.Key())
}

func (k *SeriesKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, ok := ParseSeriesKey(s)
	if !ok {
		return fmt.Errorf("unknown series key %q", s)
	}
	*k = parsed
	return nil
}
