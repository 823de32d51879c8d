package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"FinDash/internal/domain/models"
)

func TestDefaultSortFor(t *testing.T) {
	cases := map[models.Period]models.SortState{
		models.Period5d:  {Key: models.SortStrength, Direction: models.Descending},
		models.Period1mo: {Key: models.SortReturn, Direction: models.Descending},
		models.Period3mo: {Key: models.SortStrength, Direction: models.Descending},
		models.Period6mo: {Key: models.SortVolatility, Direction: models.Descending},
		"1y":             {Key: models.SortNone, Direction: models.Descending},
		"":               {Key: models.SortNone, Direction: models.Descending},
	}
	for p, want := range cases {
		assert.Equal(t, want, DefaultSortFor(p), "period %q", p)
	}
}

func TestResolve(t *testing.T) {
	cases := []struct {
		name    string
		saved   models.Preferences
		want    models.Preferences
		persist bool
	}{
		{
			name: "nothing saved",
			want: models.Preferences{Period: models.Period3mo, Sort: models.SortStrength, Direction: models.Descending},
		},
		{
			name:    "period without sort",
			saved:   models.Preferences{Period: models.Period6mo},
			want:    models.Preferences{Period: models.Period6mo, Sort: models.SortVolatility, Direction: models.Descending},
			persist: true,
		},
		{
			name:  "complete",
			saved: models.Preferences{Period: models.Period1mo, Sort: models.SortStrength, Direction: models.Ascending},
			want:  models.Preferences{Period: models.Period1mo, Sort: models.SortStrength, Direction: models.Ascending},
		},
		{
			name:  "sort without direction",
			saved: models.Preferences{Period: models.Period5d, Sort: models.SortReturn},
			want:  models.Preferences{Period: models.Period5d, Sort: models.SortReturn, Direction: models.Descending},
		},
		{
			name:  "sort without period",
			saved: models.Preferences{Sort: models.SortNone, Direction: models.Ascending},
			want:  models.Preferences{Period: models.Period3mo, Sort: models.SortNone, Direction: models.Ascending},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, persist := Resolve(tc.saved, models.Period3mo)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.persist, persist)
		})
	}
}

func TestResolveFallbackPeriod(t *testing.T) {
	got, persist := Resolve(models.Preferences{}, models.Period5d)
	assert.Equal(t, models.Preferences{Period: models.Period5d, Sort: models.SortStrength, Direction: models.Descending}, got)
	assert.False(t, persist)
}

func TestApplyPeriodChangeResetsSort(t *testing.T) {
	p := models.Preferences{Period: models.Period3mo, Sort: models.SortReturn, Direction: models.Ascending}

	got := ApplyPeriodChange(p, models.Period6mo)
	assert.Equal(t, models.Preferences{Period: models.Period6mo, Sort: models.SortVolatility, Direction: models.Descending}, got)

	got = ApplyPeriodChange(p, "2y")
	assert.Equal(t, models.SortNone, got.Sort)
	assert.Equal(t, models.Period("2y"), got.Period)
}

func TestApplySortClick(t *testing.T) {
	p := models.Preferences{Period: models.Period3mo, Sort: models.SortStrength, Direction: models.Descending}

	p = ApplySortClick(p, models.SortStrength)
	assert.Equal(t, models.Ascending, p.Direction)
	p = ApplySortClick(p, models.SortStrength)
	assert.Equal(t, models.Descending, p.Direction)

	p = ApplySortClick(p, models.SortStrength)
	p = ApplySortClick(p, models.SortReturn)
	assert.Equal(t, models.SortReturn, p.Sort)
	assert.Equal(t, models.Descending, p.Direction, "a new key starts descending")
	assert.Equal(t, models.Period3mo, p.Period)
}
