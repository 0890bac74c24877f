package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nucdash/internal/shared/testutil"
)

func statValue(t *testing.T, cs ColumnSummary, name string) float64 {
	t.Helper()
	for _, s := range cs.Stats {
		if s.Name == name {
			require.NotNil(t, s.Value, "statistic %s of %s", name, cs.Column)
			return *s.Value
		}
	}
	t.Fatalf("statistic %s not found for %s", name, cs.Column)
	return 0
}

func TestSummarizer_Summarize(t *testing.T) {
	views, err := prepareFixture(t, testutil.NuclideCSV(), DefaultOptions())
	require.NoError(t, err)

	summary, err := NewSummarizer(nil).Summarize(context.Background(), views.Global())
	require.NoError(t, err)

	assert.Equal(t, ViewGlobal, summary.View)
	assert.Equal(t, 4, summary.Rows)
	assert.Equal(t, 3, summary.Radioactive)
	require.Len(t, summary.Columns, 10)

	byField := make(map[string]ColumnSummary)
	for _, cs := range summary.Columns {
		byField[cs.Field] = cs
	}

	z := byField["z"]
	assert.Equal(t, "z", z.Column)
	assert.Equal(t, 4, z.Count)
	assert.InDelta(t, 12.5, statValue(t, z, "mean"), 1e-9)
	assert.InDelta(t, 8, statValue(t, z, "min"), 1e-9)
	assert.InDelta(t, 20, statValue(t, z, "max"), 1e-9)

	radius := byField["charge_radius"]
	assert.Equal(t, "radius_val", radius.Column)
	assert.InDelta(t, 0, statValue(t, radius, "mean"), 1e-9)

	assert.Equal(t, []CategoryCount{
		{Value: "B-", Count: 2},
		{Value: "EC", Count: 1},
		{Value: "STABLE", Count: 1},
	}, summary.Decay)
}

func TestSummarizer_MissingValuesExcludedPerColumn(t *testing.T) {
	rows := append([]string(nil), testutil.NuclideRows...)
	rows[0] = "0,8,8,16,0,,0.01,-4737.0,0.0,7976.2,0.0,15994914.6,0.3,10,0+,STABLE,0"

	views, err := prepareFixture(t, testutil.NuclideCSV(rows...), DefaultOptions())
	require.NoError(t, err)

	summary, err := NewSummarizer(nil).Summarize(context.Background(), views.Global())
	require.NoError(t, err)

	for _, cs := range summary.Columns {
		if cs.Field == "charge_radius" {
			assert.Equal(t, 3, cs.Count)
			assert.Equal(t, 1, cs.Missing)
			continue
		}
		assert.Equal(t, 4, cs.Count, cs.Field)
		for _, s := range cs.Stats {
			assert.NotNil(t, s.Value, "%s %s", cs.Field, s.Name)
		}
	}
}

func TestSummarizer_NilTable(t *testing.T) {
	_, err := NewSummarizer(nil).Summarize(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}
