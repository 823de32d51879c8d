package render

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinDash/internal/domain/models"
)

func TestFanoutForwardsToAllTargets(t *testing.T) {
	a, b := NewHolder(), NewHolder()
	f := NewFanout(a, b)
	ctx := context.Background()

	v := models.DashboardView{Period: models.Period1mo, State: models.ViewReady}
	f.Render(ctx, v)
	f.ShowChart(ctx, models.Series{Symbol: "AAPL", Period: models.Period1mo})

	for _, h := range []*Holder{a, b} {
		got, ok := h.View()
		require.True(t, ok)
		assert.Equal(t, v, got)

		s, ok := h.Series("AAPL")
		require.True(t, ok)
		assert.Equal(t, models.Period1mo, s.Period)
	}
}

func TestHolderEmpty(t *testing.T) {
	h := NewHolder()
	_, ok := h.View()
	assert.False(t, ok)
	_, ok = h.Series("AAPL")
	assert.False(t, ok)
}

func TestHolderKeepsLatest(t *testing.T) {
	h := NewHolder()
	ctx := context.Background()
	h.Render(ctx, models.DashboardView{Period: models.Period5d})
	h.Render(ctx, models.DashboardView{Period: models.Period6mo})
	h.ShowChart(ctx, models.Series{Symbol: "X", Labels: []string{"a"}})
	h.ShowChart(ctx, models.Series{Symbol: "X", Labels: []string{"a", "b"}})

	v, _ := h.View()
	assert.Equal(t, models.Period6mo, v.Period)
	s, _ := h.Series("X")
	assert.Len(t, s.Labels, 2)
}
