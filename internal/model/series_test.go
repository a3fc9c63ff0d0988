package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesKeyFromLabel(t *testing.T) {
	tests := map[string]SeriesKey{
		"In Stock":     InStock,
		"In Transit":   InTransit,
		"Out of Stock": OutOfStock,
		"Suggested":    Suggested,
	}

	for label, want := range tests {
		got, ok := SeriesKeyFromLabel(label)
		require.True(t, ok, label)
		assert.Equal(t, want, got)
		assert.Equal(t, label, got.Label())
	}

	for _, label := range []string{"", "in stock", "Damaged", "Out Of Stock"} {
		_, ok := SeriesKeyFromLabel(label)
		assert.False(t, ok, label)
	}
}

func TestSeriesKey_WireNames(t *testing.T) {
	for _, key := range AllSeries {
		parsed, ok := ParseSeriesKey(key.Key())
		require.True(t, ok)
		assert.Equal(t, key, parsed)
		assert.True(t, key.Valid())
		assert.NotEmpty(t, key.Color())
	}

	_, ok := ParseSeriesKey("InStock")
	assert.False(t, ok)

	invalid := SeriesKey(7)
	assert.False(t, invalid.Valid())
	assert.Empty(t, invalid.Key())
	assert.Equal(t, "SeriesKey(7)", invalid.String())
}

func TestSeriesKey_JSON(t *testing.T) {
	data, err := json.Marshal(map[string]SeriesKey{"k": OutOfStock})
	require.NoError(t, err)
	assert.JSONEq(t, `{"k":"outOfStock"}`, string(data))

	var key SeriesKey
	require.NoError(t, json.Unmarshal([]byte(`"inTransit"`), &key))
	assert.Equal(t, InTransit, key)
	assert.Error(t, json.Unmarshal([]byte(`"nope"`), &key))

	_, err = json.Marshal(SeriesKey(5))
	assert.Error(t, err)
}

func TestCategoryRecord_ValueAndTotal(t *testing.T) {
	r := CategoryRecord{Category: "Electronics", InStock: 450, InTransit: 120, OutOfStock: 25, Suggested: 80}
	assert.Equal(t, 675, r.Total())
	assert.Equal(t, 25, r.Value(OutOfStock))
	assert.Zero(t, r.Value(SeriesKey(9)))
}

func TestInventoryItem_Investment(t *testing.T) {
	item := InventoryItem{OnHand: 10, InTransit: 5, UnitCost: 2.5}
	assert.Equal(t, 15, item.Available())
	assert.Equal(t, 37.5, item.Investment())
	assert.Equal(t, "Low Stock", StatusLowStock.Label())
	assert.Equal(t, "Unknown", ItemStatus("lost").Label())
}
