package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"aquascope/dataset"
)

const dateLayout = "2006-01-02"

// handleV1Defaults returns the data-derived default value and date ranges
// for a contaminant, used to initialize the range selectors
// GET /api/v1/datasets/:id/defaults?contaminant=Lead
func (s *Server) handleV1Defaults(c *gin.Context) {
	ds, ok := s.lookupDataset(c)
	if !ok {
		return
	}

	contaminant := c.Query("contaminant")
	if contaminant == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contaminant is required"})
		return
	}

	crit := dataset.DefaultCriteria(ds.Results, contaminant, time.Now().UTC())

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"contaminant": crit.Contaminant,
			"value_range": gin.H{
				"min": crit.MinValue,
				"max": crit.MaxValue,
			},
			"date_range": gin.H{
				"start": crit.StartDate.Format(dateLayout),
				"end":   crit.EndDate.Format(dateLayout),
			},
		},
	})
}

// handleV1Stations returns the stations with filtered results plus the map
// centroid; an empty station list with a null centroid is the "no stations"
// signal
// GET /api/v1/datasets/:id/stations?contaminant=Lead&min=0&max=10&start=2020-01-01&end=2020-12-31
func (s *Server) handleV1Stations(c *gin.Context) {
	ds, ok := s.lookupDataset(c)
	if !ok {
		return
	}
	crit, ok := s.criteriaFromQuery(c, ds)
	if !ok {
		return
	}

	filtered := dataset.FilterResults(ds.Results, crit)
	subset := dataset.StationSubset(ds.Stations, filtered)

	var centroid gin.H
	if lat, lon, ok := dataset.Centroid(subset); ok {
		centroid = gin.H{"lat": lat, "lon": lon}
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"stations": subset,
			"centroid": centroid,
		},
		"meta": gin.H{
			"count": len(subset),
		},
	})
}

// handleV1Trend returns monthly mean values grouped into one series per
// station; zero points is the "no data" signal
// GET /api/v1/datasets/:id/trend?contaminant=Lead&min=0&max=10&start=2020-01-01&end=2020-12-31
func (s *Server) handleV1Trend(c *gin.Context) {
	ds, ok := s.lookupDataset(c)
	if !ok {
		return
	}
	crit, ok := s.criteriaFromQuery(c, ds)
	if !ok {
		return
	}

	filtered := dataset.FilterResults(ds.Results, crit)
	points := dataset.Trend(filtered)

	series := make([]gin.H, 0)
	for _, st := range dataset.TrendSeries(points) {
		pts := make([]gin.H, 0, len(st.Points))
		for _, p := range st.Points {
			pts = append(pts, gin.H{
				"month": p.Month.Format(dateLayout),
				"mean":  p.Mean,
			})
		}
		series = append(series, gin.H{
			"station_id": st.StationID,
			"points":     pts,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"data": series,
		"meta": gin.H{
			"count":         len(points),
			"station_count": len(series),
		},
	})
}

// criteriaFromQuery assembles filter criteria from query parameters,
// falling back to the data-derived defaults for any bound left out.
func (s *Server) criteriaFromQuery(c *gin.Context, ds *dataset.Dataset) (dataset.FilterCriteria, bool) {
	contaminant := c.Query("contaminant")
	if contaminant == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "contaminant is required"})
		return dataset.FilterCriteria{}, false
	}

	crit := dataset.DefaultCriteria(ds.Results, contaminant, time.Now().UTC())

	if minStr := c.Query("min"); minStr != "" {
		val, err := strconv.ParseFloat(minStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min"})
			return crit, false
		}
		crit.MinValue = val
	}
	if maxStr := c.Query("max"); maxStr != "" {
		val, err := strconv.ParseFloat(maxStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max"})
			return crit, false
		}
		crit.MaxValue = val
	}
	if startStr := c.Query("start"); startStr != "" {
		t, err := parseQueryDate(startStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date, expected YYYY-MM-DD"})
			return crit, false
		}
		crit.StartDate = t
	}
	if endStr := c.Query("end"); endStr != "" {
		t, err := parseQueryDate(endStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date, expected YYYY-MM-DD"})
			return crit, false
		}
		crit.EndDate = t
	}

	if crit.MinValue > crit.MaxValue {
		c.JSON(http.StatusBadRequest, gin.H{"error": "min must not exceed max"})
		return crit, false
	}
	if crit.StartDate.After(crit.EndDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must not be after end"})
		return crit, false
	}

	return crit, true
}

func parseQueryDate(raw string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return dataset.DateOf(t.UTC()), nil
}
