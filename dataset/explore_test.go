package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func dptr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func leadResults() []ResultRecord {
	return []ResultRecord{
		{StationID: "S1", Characteristic: "Lead", Value: fptr(5.0), Date: dptr(2020, time.January, 15)},
		{StationID: "S1", Characteristic: "Lead", Value: fptr(7.0), Date: dptr(2020, time.February, 10)},
	}
}

func TestContaminants(t *testing.T) {
	results := []ResultRecord{
		{Characteristic: "Zinc"},
		{Characteristic: "Lead"},
		{Characteristic: ""},
		{Characteristic: "Lead"},
		{Characteristic: "Arsenic"},
	}
	assert.Equal(t, []string{"Arsenic", "Lead", "Zinc"}, Contaminants(results))
}

func TestFilterResults(t *testing.T) {
	criteria := FilterCriteria{
		Contaminant: "Lead",
		MinValue:    0,
		MaxValue:    10,
		StartDate:   day(2020, time.January, 1),
		EndDate:     day(2020, time.February, 28),
	}

	t.Run("keeps matching rows in input order", func(t *testing.T) {
		filtered := FilterResults(leadResults(), criteria)
		require.Len(t, filtered, 2)
		assert.Equal(t, 5.0, *filtered[0].Value)
		assert.Equal(t, 7.0, *filtered[1].Value)
	})

	t.Run("contaminant match is case-insensitive substring", func(t *testing.T) {
		results := []ResultRecord{
			{StationID: "S1", Characteristic: "Lead, dissolved", Value: fptr(3.0), Date: dptr(2020, time.January, 5)},
			{StationID: "S1", Characteristic: "LEAD", Value: fptr(4.0), Date: dptr(2020, time.January, 6)},
			{StationID: "S1", Characteristic: "Zinc", Value: fptr(5.0), Date: dptr(2020, time.January, 7)},
			{StationID: "S1", Characteristic: "", Value: fptr(6.0), Date: dptr(2020, time.January, 8)},
		}
		filtered := FilterResults(results, criteria)
		require.Len(t, filtered, 2)
		assert.Equal(t, "Lead, dissolved", filtered[0].Characteristic)
		assert.Equal(t, "LEAD", filtered[1].Characteristic)
	})

	t.Run("value range is inclusive", func(t *testing.T) {
		results := []ResultRecord{
			{StationID: "S1", Characteristic: "Lead", Value: fptr(0.0), Date: dptr(2020, time.January, 5)},
			{StationID: "S1", Characteristic: "Lead", Value: fptr(10.0), Date: dptr(2020, time.January, 6)},
			{StationID: "S1", Characteristic: "Lead", Value: fptr(10.001), Date: dptr(2020, time.January, 7)},
		}
		filtered := FilterResults(results, criteria)
		require.Len(t, filtered, 2)
	})

	t.Run("date range is inclusive", func(t *testing.T) {
		results := []ResultRecord{
			{StationID: "S1", Characteristic: "Lead", Value: fptr(1.0), Date: dptr(2020, time.January, 1)},
			{StationID: "S1", Characteristic: "Lead", Value: fptr(2.0), Date: dptr(2020, time.February, 28)},
			{StationID: "S1", Characteristic: "Lead", Value: fptr(3.0), Date: dptr(2020, time.February, 29)},
		}
		filtered := FilterResults(results, criteria)
		require.Len(t, filtered, 2)
	})

	t.Run("missing value or date excludes the row", func(t *testing.T) {
		results := []ResultRecord{
			{StationID: "S1", Characteristic: "Lead", Value: nil, Date: dptr(2020, time.January, 5)},
			{StationID: "S1", Characteristic: "Lead", Value: fptr(5.0), Date: nil},
		}
		assert.Empty(t, FilterResults(results, criteria))
	})

	t.Run("narrower value range drops rows", func(t *testing.T) {
		narrow := criteria
		narrow.MinValue = 6
		filtered := FilterResults(leadResults(), narrow)
		require.Len(t, filtered, 1)
		assert.Equal(t, 7.0, *filtered[0].Value)
	})
}

func TestValueBounds(t *testing.T) {
	t.Run("min and max over contaminant matches", func(t *testing.T) {
		results := []ResultRecord{
			{Characteristic: "Lead", Value: fptr(5.0)},
			{Characteristic: "Lead", Value: fptr(7.0)},
			{Characteristic: "Lead", Value: nil},
			{Characteristic: "Zinc", Value: fptr(99.0)},
		}
		min, max := ValueBounds(results, "Lead")
		assert.Equal(t, 5.0, min)
		assert.Equal(t, 7.0, max)
	})

	t.Run("defaults to [0,1] with no matches", func(t *testing.T) {
		min, max := ValueBounds(nil, "Lead")
		assert.Equal(t, 0.0, min)
		assert.Equal(t, 1.0, max)
	})
}

func TestDateBounds(t *testing.T) {
	now := time.Date(2024, time.June, 3, 15, 30, 0, 0, time.UTC)

	t.Run("bounds over rows with present value and date", func(t *testing.T) {
		results := []ResultRecord{
			{Characteristic: "Lead", Value: fptr(5.0), Date: dptr(2020, time.February, 10)},
			{Characteristic: "Lead", Value: fptr(7.0), Date: dptr(2020, time.January, 15)},
			{Characteristic: "Lead", Value: nil, Date: dptr(2019, time.January, 1)},
			{Characteristic: "Lead", Value: fptr(9.0), Date: nil},
		}
		start, end := DateBounds(results, "Lead", now)
		assert.Equal(t, day(2020, time.January, 15), start)
		assert.Equal(t, day(2020, time.February, 10), end)
	})

	t.Run("defaults to today with no matches", func(t *testing.T) {
		start, end := DateBounds(nil, "Lead", now)
		assert.Equal(t, day(2024, time.June, 3), start)
		assert.Equal(t, day(2024, time.June, 3), end)
	})
}

func TestDefaultCriteria(t *testing.T) {
	crit := DefaultCriteria(leadResults(), "Lead", time.Now().UTC())
	assert.Equal(t, "Lead", crit.Contaminant)
	assert.Equal(t, 5.0, crit.MinValue)
	assert.Equal(t, 7.0, crit.MaxValue)
	assert.Equal(t, day(2020, time.January, 15), crit.StartDate)
	assert.Equal(t, day(2020, time.February, 10), crit.EndDate)
}

func TestStationSubset(t *testing.T) {
	stations := []StationRecord{
		{ID: "S1", Lat: 40.0, Lon: -74.0},
		{ID: "S2", Lat: 41.0, Lon: -73.0},
		{ID: "S1", Lat: 99.0, Lon: 99.0}, // duplicate identifier
		{ID: "S3", Lat: 42.0, Lon: -72.0},
	}
	filtered := []ResultRecord{
		{StationID: "S1"},
		{StationID: "S1"},
		{StationID: "S3"},
		{StationID: "S9"}, // no station record
	}

	subset := StationSubset(stations, filtered)
	require.Len(t, subset, 2)
	assert.Equal(t, StationRecord{ID: "S1", Lat: 40.0, Lon: -74.0}, subset[0])
	assert.Equal(t, StationRecord{ID: "S3", Lat: 42.0, Lon: -72.0}, subset[1])
}

func TestCentroid(t *testing.T) {
	t.Run("mean of coordinates", func(t *testing.T) {
		lat, lon, ok := Centroid([]StationRecord{
			{ID: "S1", Lat: 40.0, Lon: -74.0},
			{ID: "S2", Lat: 42.0, Lon: -70.0},
		})
		require.True(t, ok)
		assert.InDelta(t, 41.0, lat, 1e-9)
		assert.InDelta(t, -72.0, lon, 1e-9)
	})

	t.Run("empty subset has no centroid", func(t *testing.T) {
		_, _, ok := Centroid(nil)
		assert.False(t, ok)
	})
}

func TestTrend(t *testing.T) {
	t.Run("one point per station and month", func(t *testing.T) {
		points := Trend(leadResults())
		require.Len(t, points, 2)
		assert.Equal(t, TrendPoint{StationID: "S1", Month: day(2020, time.January, 1), Mean: 5.0}, points[0])
		assert.Equal(t, TrendPoint{StationID: "S1", Month: day(2020, time.February, 1), Mean: 7.0}, points[1])
	})

	t.Run("same month values average", func(t *testing.T) {
		results := []ResultRecord{
			{StationID: "S1", Characteristic: "Lead", Value: fptr(4.0), Date: dptr(2020, time.March, 2)},
			{StationID: "S1", Characteristic: "Lead", Value: fptr(6.0), Date: dptr(2020, time.March, 28)},
		}
		points := Trend(results)
		require.Len(t, points, 1)
		assert.Equal(t, 5.0, points[0].Mean)
	})

	t.Run("single record group keeps its value", func(t *testing.T) {
		results := []ResultRecord{
			{StationID: "S1", Characteristic: "Lead", Value: fptr(3.5), Date: dptr(2020, time.April, 1)},
		}
		points := Trend(results)
		require.Len(t, points, 1)
		assert.Equal(t, 3.5, points[0].Mean)
	})

	t.Run("ordered by station then month", func(t *testing.T) {
		results := []ResultRecord{
			{StationID: "S2", Value: fptr(1.0), Date: dptr(2020, time.February, 1)},
			{StationID: "S1", Value: fptr(2.0), Date: dptr(2020, time.March, 1)},
			{StationID: "S2", Value: fptr(3.0), Date: dptr(2020, time.January, 1)},
			{StationID: "S1", Value: fptr(4.0), Date: dptr(2020, time.January, 1)},
		}
		points := Trend(results)
		require.Len(t, points, 4)
		assert.Equal(t, "S1", points[0].StationID)
		assert.Equal(t, day(2020, time.January, 1), points[0].Month)
		assert.Equal(t, "S1", points[1].StationID)
		assert.Equal(t, day(2020, time.March, 1), points[1].Month)
		assert.Equal(t, "S2", points[2].StationID)
		assert.Equal(t, day(2020, time.January, 1), points[2].Month)
		assert.Equal(t, "S2", points[3].StationID)
		assert.Equal(t, day(2020, time.February, 1), points[3].Month)
	})

	t.Run("group sizes account for every filtered row", func(t *testing.T) {
		results := []ResultRecord{
			{StationID: "S1", Characteristic: "Lead", Value: fptr(1.0), Date: dptr(2020, time.January, 3)},
			{StationID: "S1", Characteristic: "Lead", Value: fptr(2.0), Date: dptr(2020, time.January, 9)},
			{StationID: "S2", Characteristic: "Lead", Value: fptr(3.0), Date: dptr(2020, time.January, 4)},
		}
		crit := FilterCriteria{
			Contaminant: "lead",
			MinValue:    0, MaxValue: 10,
			StartDate: day(2020, time.January, 1),
			EndDate:   day(2020, time.December, 31),
		}
		filtered := FilterResults(results, crit)
		require.Len(t, filtered, 3)
		points := Trend(filtered)
		require.Len(t, points, 2)
		assert.Equal(t, 1.5, points[0].Mean)
		assert.Equal(t, 3.0, points[1].Mean)
	})
}

func TestTrendSeries(t *testing.T) {
	points := []TrendPoint{
		{StationID: "S1", Month: day(2020, time.January, 1), Mean: 1.0},
		{StationID: "S1", Month: day(2020, time.February, 1), Mean: 2.0},
		{StationID: "S2", Month: day(2020, time.January, 1), Mean: 3.0},
	}
	series := TrendSeries(points)
	require.Len(t, series, 2)
	assert.Equal(t, "S1", series[0].StationID)
	assert.Len(t, series[0].Points, 2)
	assert.Equal(t, "S2", series[1].StationID)
	assert.Len(t, series[1].Points, 1)

	assert.Empty(t, TrendSeries(nil))
}

// Re-running the pipeline on unchanged inputs yields identical outputs.
func TestPipelineIdempotence(t *testing.T) {
	stations := []StationRecord{{ID: "S1", Lat: 40.0, Lon: -74.0}}
	results := leadResults()
	crit := FilterCriteria{
		Contaminant: "Lead",
		MinValue:    0, MaxValue: 10,
		StartDate: day(2020, time.January, 1),
		EndDate:   day(2020, time.February, 28),
	}

	first := FilterResults(results, crit)
	second := FilterResults(results, crit)
	assert.Equal(t, first, second)

	assert.Equal(t, StationSubset(stations, first), StationSubset(stations, second))
	assert.Equal(t, Trend(first), Trend(second))
}
