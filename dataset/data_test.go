package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ShapeAndValues(t *testing.T) {
	table := Load()
	require.Equal(t, 5, table.Len())
	assert.Equal(t, []string{"Mai/25", "Jun/25", "Jul/25", "Ago/25", "Set/25"}, table.Months())

	for _, kpi := range Catalog() {
		col, err := table.Column(kpi.Key)
		require.NoError(t, err, kpi.Key)
		assert.Len(t, col, 5, kpi.Key)
	}

	leads, err := table.Column(Leads)
	require.NoError(t, err)
	assert.Equal(t, []float64{270, 290, 401, 600, 604}, leads)

	assert.Same(t, table, Load())
}

func TestColumn_ReturnsCopy(t *testing.T) {
	table := Load()
	col, err := table.Column(Leads)
	require.NoError(t, err)
	col[0] = -1

	again, err := table.Column(Leads)
	require.NoError(t, err)
	assert.Equal(t, 270.0, again[0])
}

func TestColumn_UnknownKPI(t *testing.T) {
	_, err := Load().Column("bounce_rate")
	assert.ErrorIs(t, err, ErrUnknownKPI)

	_, err = Lookup("bounce_rate")
	assert.ErrorIs(t, err, ErrUnknownKPI)
}

func TestValue(t *testing.T) {
	v, err := Load().Value(WebCustomers, 4)
	require.NoError(t, err)
	assert.Equal(t, 22.0, v)

	_, err = Load().Value(WebCustomers, 5)
	assert.Error(t, err)
}

func TestFilter(t *testing.T) {
	table := Load()

	all, err := table.Filter(nil)
	require.NoError(t, err)
	assert.Equal(t, 5, all.Len())

	sub, err := table.Filter([]string{"Set/25", "Jun/25"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Jun/25", "Set/25"}, sub.Months())
	leads, err := sub.Column(Leads)
	require.NoError(t, err)
	assert.Equal(t, []float64{290, 604}, leads)

	_, err = table.Filter([]string{"Dez/24"})
	assert.ErrorIs(t, err, ErrNoMonthsSelected)
}

func TestRows(t *testing.T) {
	rows := Load().Rows()
	require.Len(t, rows, 5)
	assert.Equal(t, "Mai/25", rows[0].Month)
	assert.Equal(t, 5218.0, rows[0].Values[Sessions])
	assert.Equal(t, 262.58, rows[4].Values[ROI])
}

func TestNewTable_Validation(t *testing.T) {
	_, err := NewTable([]string{"a", "b"}, map[string][]float64{Leads: {1}})
	assert.Error(t, err)

	_, err = NewTable([]string{"a"}, map[string][]float64{"unknown": {1}})
	assert.ErrorIs(t, err, ErrUnknownKPI)

	table, err := NewTable([]string{"a", "b"}, map[string][]float64{Leads: {1, 2}})
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}
