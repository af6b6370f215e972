package dataset

import (
	"sort"
	"strings"
	"time"
)

// FilterCriteria carries one interaction's worth of filter parameters. The
// pipeline never mutates it; each change produces a fresh derived view.
type FilterCriteria struct {
	Contaminant string
	MinValue    float64
	MaxValue    float64
	StartDate   time.Time
	EndDate     time.Time
}

// Contaminants returns the distinct non-missing characteristic names across
// the whole results table, sorted ascending. This is the selectable set.
func Contaminants(results []ResultRecord) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, r := range results {
		if r.Characteristic == "" {
			continue
		}
		if _, ok := seen[r.Characteristic]; ok {
			continue
		}
		seen[r.Characteristic] = struct{}{}
		names = append(names, r.Characteristic)
	}
	sort.Strings(names)
	return names
}

// matchesContaminant reports whether a record's characteristic contains the
// contaminant name as a case-insensitive substring. Substring (not exact)
// semantics are deliberate: selecting "Lead" also matches "Lead, dissolved".
// Missing characteristics never match.
func matchesContaminant(r ResultRecord, contaminant string) bool {
	if r.Characteristic == "" {
		return false
	}
	return strings.Contains(strings.ToLower(r.Characteristic), strings.ToLower(contaminant))
}

// FilterResults returns the rows matching every criterion: contaminant
// substring, present value within [MinValue, MaxValue], present date within
// [StartDate, EndDate]. Input order is preserved.
func FilterResults(results []ResultRecord, c FilterCriteria) []ResultRecord {
	out := make([]ResultRecord, 0)
	for _, r := range results {
		if !matchesContaminant(r, c.Contaminant) {
			continue
		}
		if r.Value == nil || *r.Value < c.MinValue || *r.Value > c.MaxValue {
			continue
		}
		if r.Date == nil {
			continue
		}
		d := DateOf(*r.Date)
		if d.Before(DateOf(c.StartDate)) || d.After(DateOf(c.EndDate)) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ValueBounds returns the min and max of present values among rows matching
// the contaminant, before any date filtering. With no matching values the
// bounds default to [0, 1].
func ValueBounds(results []ResultRecord, contaminant string) (float64, float64) {
	found := false
	var min, max float64
	for _, r := range results {
		if !matchesContaminant(r, contaminant) || r.Value == nil {
			continue
		}
		if !found || *r.Value < min {
			min = *r.Value
		}
		if !found || *r.Value > max {
			max = *r.Value
		}
		found = true
	}
	if !found {
		return 0, 1
	}
	return min, max
}

// DateBounds returns the earliest and latest present dates among rows
// matching the contaminant that also carry a value. With no such rows both
// bounds default to now's calendar date.
func DateBounds(results []ResultRecord, contaminant string, now time.Time) (time.Time, time.Time) {
	found := false
	var start, end time.Time
	for _, r := range results {
		if !matchesContaminant(r, contaminant) || r.Value == nil || r.Date == nil {
			continue
		}
		d := DateOf(*r.Date)
		if !found || d.Before(start) {
			start = d
		}
		if !found || d.After(end) {
			end = d
		}
		found = true
	}
	if !found {
		today := DateOf(now)
		return today, today
	}
	return start, end
}

// DefaultCriteria builds the criteria a fresh selection starts from: the
// data-derived value and date bounds for the chosen contaminant.
func DefaultCriteria(results []ResultRecord, contaminant string, now time.Time) FilterCriteria {
	min, max := ValueBounds(results, contaminant)
	start, end := DateBounds(results, contaminant, now)
	return FilterCriteria{
		Contaminant: contaminant,
		MinValue:    min,
		MaxValue:    max,
		StartDate:   start,
		EndDate:     end,
	}
}

// StationSubset returns the stations whose identifier appears among the
// filtered results, in station-table order, one entry per identifier.
func StationSubset(stations []StationRecord, filtered []ResultRecord) []StationRecord {
	wanted := make(map[string]struct{}, len(filtered))
	for _, r := range filtered {
		wanted[r.StationID] = struct{}{}
	}

	subset := make([]StationRecord, 0)
	taken := make(map[string]struct{})
	for _, st := range stations {
		if _, ok := wanted[st.ID]; !ok {
			continue
		}
		if _, dup := taken[st.ID]; dup {
			continue
		}
		taken[st.ID] = struct{}{}
		subset = append(subset, st)
	}
	return subset
}

// Centroid returns the mean coordinates of the subset, used as the initial
// map view center. ok is false for an empty subset.
func Centroid(stations []StationRecord) (lat, lon float64, ok bool) {
	if len(stations) == 0 {
		return 0, 0, false
	}
	for _, st := range stations {
		lat += st.Lat
		lon += st.Lon
	}
	n := float64(len(stations))
	return lat / n, lon / n, true
}

type trendKey struct {
	stationID string
	month     time.Time
}

// Trend groups filtered rows by (station, calendar month) and computes the
// mean value per group. Output is ordered by station id then month.
func Trend(filtered []ResultRecord) []TrendPoint {
	sums := make(map[trendKey]float64)
	counts := make(map[trendKey]int)
	for _, r := range filtered {
		if r.Value == nil || r.Date == nil {
			continue
		}
		key := trendKey{stationID: r.StationID, month: MonthOf(*r.Date)}
		sums[key] += *r.Value
		counts[key]++
	}

	points := make([]TrendPoint, 0, len(sums))
	for key, sum := range sums {
		points = append(points, TrendPoint{
			StationID: key.stationID,
			Month:     key.month,
			Mean:      sum / float64(counts[key]),
		})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].StationID != points[j].StationID {
			return points[i].StationID < points[j].StationID
		}
		return points[i].Month.Before(points[j].Month)
	})
	return points
}

// TrendSeries regroups a flat trend table into one month-ascending series
// per station, ready for line plotting.
func TrendSeries(points []TrendPoint) []StationSeries {
	series := make([]StationSeries, 0)
	for _, p := range points {
		if n := len(series); n > 0 && series[n-1].StationID == p.StationID {
			series[n-1].Points = append(series[n-1].Points, p)
			continue
		}
		series = append(series, StationSeries{StationID: p.StationID, Points: []TrendPoint{p}})
	}
	return series
}
