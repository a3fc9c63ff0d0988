package chart

import (
	"strconv"
	"strings"

	"go-inventory-dashboard/internal/model"

	"github.com/pkg/errors"
)

type TargetKind string

const (
	TargetSegment     TargetKind = "segment"
	TargetLegend      TargetKind = "legend"
	TargetLine        TargetKind = "line"
	TargetPoint       TargetKind = "point"
	TargetSlice       TargetKind = "slice"
	TargetSliceLegend TargetKind = "slice-legend"
)

var ErrUnknownTarget = errors.New("unknown chart target")

// Target names a clickable or hoverable element of a chart:
//
//	segment:<column>:<series>  bar segment
//	legend:<series>            legend swatch (bar, line)
//	line:<series>              line stroke
//	point:<series>:<index>     line data point
//	slice:<index>              pie slice
//	slice-legend:<index>       pie legend entry
type Target struct {
	Kind   TargetKind
	Series model.SeriesKey
	Index  int
}

func (t Target) String() string {
	switch t.Kind {
	case TargetSegment:
		return string(t.Kind) + ":" + strconv.Itoa(t.Index) + ":" + t.Series.Key()
	case TargetLegend, TargetLine:
		return string(t.Kind) + ":" + t.Series.Key()
	case TargetPoint:
		return string(t.Kind) + ":" + t.Series.Key() + ":" + strconv.Itoa(t.Index)
	case TargetSlice, TargetSliceLegend:
		return string(t.Kind) + ":" + strconv.Itoa(t.Index)
	}
	return ""
}

func (t Target) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Target) UnmarshalText(text []byte) error {
	parsed, err := ParseTarget(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTarget decodes the string form produced by Target.String.
func ParseTarget(s string) (Target, error) {
	parts := strings.Split(s, ":")
	kind := TargetKind(parts[0])
	args := parts[1:]

	switch kind {
	case TargetSegment:
		if len(args) != 2 {
			break
		}
		idx, err := parseIndex(args[0])
		if err != nil {
			return Target{}, errors.Wrapf(err, "target %q", s)
		}
		key, ok := model.ParseSeriesKey(args[1])
		if !ok {
			break
		}
		return Target{Kind: kind, Series: key, Index: idx}, nil
	case TargetLegend, TargetLine:
		if len(args) != 1 {
			break
		}
		key, ok := model.ParseSeriesKey(args[0])
		if !ok {
			break
		}
		return Target{Kind: kind, Series: key}, nil
	case TargetPoint:
		if len(args) != 2 {
			break
		}
		key, ok := model.ParseSeriesKey(args[0])
		if !ok {
			break
		}
		idx, err := parseIndex(args[1])
		if err != nil {
			return Target{}, errors.Wrapf(err, "target %q", s)
		}
		return Target{Kind: kind, Series: key, Index: idx}, nil
	case TargetSlice, TargetSliceLegend:
		if len(args) != 1 {
			break
		}
		idx, err := parseIndex(args[0])
		if err != nil {
			return Target{}, errors.Wrapf(err, "target %q", s)
		}
		return Target{Kind: kind, Index: idx}, nil
	}
	return Target{}, errors.Wrapf(ErrUnknownTarget, "%q", s)
}

func parseIndex(s string) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrUnknownTarget
	}
	if idx < 0 {
		return 0, ErrUnknownTarget
	}
	return idx, nil
}
