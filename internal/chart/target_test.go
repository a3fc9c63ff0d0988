package chart

import (
	"testing"

	"go-inventory-dashboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTarget_RoundTrip(t *testing.T) {
	targets := []Target{
		{Kind: TargetSegment, Series: model.OutOfStock, Index: 2},
		{Kind: TargetLegend, Series: model.Suggested},
		{Kind: TargetLine, Series: model.InTransit},
		{Kind: TargetPoint, Series: model.InStock, Index: 6},
		{Kind: TargetSlice, Index: 1},
		{Kind: TargetSliceLegend, Index: 3},
	}

	for _, want := range targets {
		t.Run(want.String(), func(t *testing.T) {
			got, err := ParseTarget(want.String())
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseTarget_Rejects(t *testing.T) {
	for _, s := range []string{
		"",
		"segment",
		"segment:x:inStock",
		"segment:0:damaged",
		"legend",
		"legend:inStock:1",
		"point:inStock:-1",
		"slice:abc",
		"bubble:1",
	} {
		_, err := ParseTarget(s)
		assert.ErrorIs(t, err, ErrUnknownTarget, s)
	}
}
