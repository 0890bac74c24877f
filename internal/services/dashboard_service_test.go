package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"nucdash/internal/charts"
	"nucdash/internal/dataprocessing"
	"nucdash/internal/shared/testutil"
)

func newDashboard(t *testing.T) *DashboardService {
	t.Helper()
	views, err := dataprocessing.Prepare(context.Background(), testutil.WriteNuclideCSV(t, testutil.NuclideCSV()), dataprocessing.DefaultOptions())
	require.NoError(t, err)
	logger, _ := testutil.NewTestLogger(t)
	return NewDashboardService(views, charts.NewRenderer(3, 2), nil, nil, logger)
}

func TestDashboardService_Views(t *testing.T) {
	svc := newDashboard(t)

	views := svc.Views()
	require.Len(t, views, 2)
	assert.Equal(t, "global", views[0].Name)
	assert.Equal(t, 4, views[0].Rows)
	assert.Nil(t, views[0].Band)
	assert.Equal(t, "Shell Closure", views[1].Title)
	assert.Equal(t, 2, views[1].Rows)
	require.NotNil(t, views[1].Band)
	assert.Equal(t, 18, views[1].Band.Min)
	assert.Equal(t, 30, views[1].Band.Max)

	_, err := svc.View("regional")
	assert.ErrorIs(t, err, ErrViewNotFound)
}

func TestDashboardService_Rows(t *testing.T) {
	svc := newDashboard(t)
	ctx := context.Background()

	page, err := svc.Rows(ctx, "global", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	require.Len(t, page.Rows, 2)
	assert.Equal(t, 10, page.Rows[0]["z"])
	assert.Equal(t, "B-", page.Rows[0][" decay"])

	page, err = svc.Rows(ctx, "local", 10, 5)
	require.NoError(t, err)
	assert.Empty(t, page.Rows)
	assert.Equal(t, 2, page.Total)

	_, err = svc.Rows(ctx, "nowhere", 0, 1)
	assert.ErrorIs(t, err, ErrViewNotFound)
}

func TestDashboardService_Column(t *testing.T) {
	svc := newDashboard(t)
	ctx := context.Background()

	byName, err := svc.Column(ctx, "global", " decay")
	require.NoError(t, err)
	assert.Equal(t, "decay", byName.Field)
	assert.Equal(t, []any{"STABLE", "B-", "B-", "EC"}, byName.Values)

	byField, err := svc.Column(ctx, "local", "n")
	require.NoError(t, err)
	assert.Equal(t, []any{20, 28}, byField.Values)

	_, err = svc.Column(ctx, "global", "radius_unc")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestDashboardService_Scaler(t *testing.T) {
	svc := newDashboard(t)

	params, err := svc.Scaler()
	require.NoError(t, err)
	require.Len(t, params.Features, dataprocessing.NumFeatures)

	radius := params.Features[0]
	assert.Equal(t, "radius_val", radius.Column)
	assert.Equal(t, "charge_radius", radius.Field)
	require.NotNil(t, radius.Mean)
	assert.InDelta(t, 3.2, *radius.Mean, 1e-9)
	assert.Equal(t, 4, radius.Samples)

	halfLife := params.Features[dataprocessing.FieldHalfLife]
	assert.True(t, halfLife.LogTransformed)
	assert.False(t, radius.LogTransformed)
}

func TestDashboardService_Dataset(t *testing.T) {
	svc := newDashboard(t)

	info, err := svc.Dataset()
	require.NoError(t, err)
	assert.Equal(t, 4, info.SourceRows)
	assert.Len(t, info.SHA256, 64)
	assert.False(t, info.PreparedAt.IsZero())
}

func TestDashboardService_Summary(t *testing.T) {
	svc := newDashboard(t)

	summary, err := svc.Summary(context.Background(), "global")
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Rows)
	assert.Equal(t, 3, summary.Radioactive)
}

func TestDashboardService_Charts(t *testing.T) {
	svc := newDashboard(t)
	ctx := context.Background()

	assert.Len(t, svc.Catalog().Charts(), 11)

	data, err := svc.ChartData(ctx, "global_mass_number")
	require.NoError(t, err)
	assert.Len(t, data.Points, 4)

	_, err = svc.ChartData(ctx, "no_chart")
	assert.ErrorIs(t, err, ErrChartNotFound)

	img, err := svc.ChartImage(ctx, "local_neutron_number", charts.FormatSVG)
	require.NoError(t, err)
	assert.Contains(t, string(img), "<svg")

	cached, ok := svc.cache.Get("local_neutron_number", charts.FormatSVG)
	require.True(t, ok)
	assert.Equal(t, img, cached)

	_, err = svc.ChartImage(ctx, "local_neutron_number", "gif")
	assert.ErrorIs(t, err, charts.ErrUnsupportedFormat)
}

func TestDashboardService_Exports(t *testing.T) {
	svc := newDashboard(t)
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, &buf, "local"))
	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 3)

	assert.ErrorIs(t, svc.ExportCSV(ctx, &bytes.Buffer{}, "other"), ErrViewNotFound)

	buf.Reset()
	require.NoError(t, svc.ExportXLSX(ctx, &buf))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Global", "Shell Closure", "Scaler"}, f.GetSheetList())
}

func TestDashboardService_NotPrepared(t *testing.T) {
	svc := NewDashboardService(nil, nil, nil, nil, nil)
	ctx := context.Background()

	assert.Nil(t, svc.Views())
	_, err := svc.Rows(ctx, "global", 0, 1)
	assert.ErrorIs(t, err, ErrNotPrepared)
	_, err = svc.Scaler()
	assert.ErrorIs(t, err, ErrNotPrepared)
	_, err = svc.ChartImage(ctx, "global_mass_number", charts.FormatPNG)
	assert.ErrorIs(t, err, ErrNotPrepared)
}
