package chart

import (
	"encoding/json"

	"go-inventory-dashboard/internal/model"
)

const (
	OpacityFull   = 1.0
	OpacityDimmed = 0.3
)

// Selection is the optional series filter shared by the dashboard charts.
// The zero value selects nothing.
type Selection struct {
	key    model.SeriesKey
	active bool
}

// NoSelection returns the cleared filter.
func NoSelection() Selection {
	return Selection{}
}

// Select returns a filter on key. Unknown keys give the cleared filter.
func Select(key model.SeriesKey) Selection {
	if !key.Valid() {
		return Selection{}
	}
	return Selection{key: key, active: true}
}

// Clear returns the cleared filter.
func (s Selection) Clear() Selection {
	return Selection{}
}

// Selected returns the filtered series, if any.
func (s Selection) Selected() (model.SeriesKey, bool) {
	return s.key, s.active
}

// Active reports whether a filter is set.
func (s Selection) Active() bool {
	return s.active
}

// Toggle clears the filter when key is already selected, otherwise selects key.
func (s Selection) Toggle(key model.SeriesKey) Selection {
	if !key.Valid() {
		return s
	}
	if s.active && s.key == key {
		return Selection{}
	}
	return Select(key)
}

// ToggleLabel toggles the series named by a pie display label. It returns
// false, leaving s untouched, when the label is not one of the four series.
func (s Selection) ToggleLabel(name string) (Selection, bool) {
	key, ok := model.SeriesKeyFromLabel(name)
	if !ok {
		return s, false
	}
	return s.Toggle(key), true
}

// OpacityFor is full for every key without a filter, and full only for the
// selected key with one.
func (s Selection) OpacityFor(key model.SeriesKey) float64 {
	if !s.active || s.key == key {
		return OpacityFull
	}
	return OpacityDimmed
}

// MarshalJSON encodes the selected wire key or null.
func (s Selection) MarshalJSON() ([]byte, error) {
	if !s.active {
		return []byte("null"), nil
	}
	return json.Marshal(s.key)
}

func (s *Selection) UnmarshalJSON(data []byte) error {
	var key *model.SeriesKey
	if err := json.Unmarshal(data, &key); err != nil {
		return err
	}
	if key == nil {
		*s = Selection{}
		return nil
	}
	*s = Select(*key)
	return nil
}
