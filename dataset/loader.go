package dataset

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// Table labels used in error messages.
const (
	stationTable = "station"
	resultTable  = "test results"
)

// Date layouts accepted for ActivityStartDate. Anything else coerces to
// missing and the row is dropped at filter time.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	time.RFC3339,
}

// LoadStations parses the station table from CSV, keeping only rows with a
// non-empty identifier and numeric coordinates. The identifier comes from
// MonitoringLocationIdentifier, falling back to MonitoringLocationName.
func LoadStations(r io.Reader) ([]StationRecord, error) {
	header, rows, err := readTable(r, stationTable)
	if err != nil {
		return nil, err
	}

	latIdx := columnIndex(header, ColLatitude)
	lonIdx := columnIndex(header, ColLongitude)
	var missing []string
	if latIdx < 0 {
		missing = append(missing, ColLatitude)
	}
	if lonIdx < 0 {
		missing = append(missing, ColLongitude)
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Table: stationTable, Columns: missing}
	}

	idIdx := columnIndex(header, ColStationID)
	if idIdx < 0 {
		idIdx = columnIndex(header, ColStationName)
		if idIdx < 0 {
			return nil, &SchemaError{Table: stationTable, Columns: []string{ColStationID, ColStationName}, AnyOf: true}
		}
	}

	stations := make([]StationRecord, 0, len(rows))
	for _, row := range rows {
		lat := parseFloat(row[latIdx])
		lon := parseFloat(row[lonIdx])
		id := strings.TrimSpace(row[idIdx])
		if lat == nil || lon == nil || id == "" {
			continue
		}
		stations = append(stations, StationRecord{ID: id, Lat: *lat, Lon: *lon})
	}
	return stations, nil
}

// LoadResults parses the test results table from CSV. Unparseable values and
// dates become nil rather than failing the load.
func LoadResults(r io.Reader) ([]ResultRecord, error) {
	header, rows, err := readTable(r, resultTable)
	if err != nil {
		return nil, err
	}

	for _, col := range []string{ColDate, ColStationID, ColCharacteristic, ColValue} {
		if columnIndex(header, col) < 0 {
			return nil, &SchemaError{Table: resultTable, Columns: []string{col}}
		}
	}
	dateIdx := columnIndex(header, ColDate)
	idIdx := columnIndex(header, ColStationID)
	charIdx := columnIndex(header, ColCharacteristic)
	valIdx := columnIndex(header, ColValue)

	results := make([]ResultRecord, 0, len(rows))
	for _, row := range rows {
		results = append(results, ResultRecord{
			StationID:      strings.TrimSpace(row[idIdx]),
			Characteristic: strings.TrimSpace(row[charIdx]),
			Value:          parseFloat(row[valIdx]),
			Date:           parseDate(row[dateIdx]),
		})
	}
	return results, nil
}

// readTable reads a header row plus data rows, wrapping structural failures
// in a ParseError for the named table.
func readTable(r io.Reader, table string) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("file is empty")
		}
		return nil, nil, &ParseError{Table: table, Err: err}
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, &ParseError{Table: table, Err: err}
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

func columnIndex(header []string, name string) int {
	for i, col := range header {
		if strings.TrimSpace(col) == name {
			return i
		}
	}
	return -1
}

// parseFloat coerces a cell to a finite float, returning nil for anything
// that does not parse cleanly.
func parseFloat(cell string) *float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// parseDate coerces a cell to a UTC calendar date, returning nil when no
// accepted layout matches.
func parseDate(cell string) *time.Time {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			d := DateOf(t)
			return &d
		}
	}
	return nil
}
