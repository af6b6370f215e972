package http

import (
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"aquascope/dataset"
)

// handleV1CreateDataset parses the uploaded station and test results CSVs
// into a new in-memory dataset
// POST /api/v1/datasets (multipart fields: stations, results)
func (s *Server) handleV1CreateDataset(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes())

	stationFile, err := c.FormFile("stations")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stations file is required"})
		return
	}
	resultsFile, err := c.FormFile("results")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "results file is required"})
		return
	}

	stations, err := loadStationsUpload(stationFile)
	if err != nil {
		s.renderLoadError(c, err)
		return
	}
	results, err := loadResultsUpload(resultsFile)
	if err != nil {
		s.renderLoadError(c, err)
		return
	}

	ds := s.store.Put(stations, results)

	c.JSON(http.StatusCreated, gin.H{
		"data": datasetSummary(ds),
	})
}

// handleV1GetDataset returns metadata for a stored dataset
// GET /api/v1/datasets/:id
func (s *Server) handleV1GetDataset(c *gin.Context) {
	ds, ok := s.lookupDataset(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": datasetSummary(ds),
	})
}

// handleV1DeleteDataset discards a stored dataset
// DELETE /api/v1/datasets/:id
func (s *Server) handleV1DeleteDataset(c *gin.Context) {
	id := c.Param("id")
	if !s.store.Delete(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// handleV1ListContaminants returns the selectable contaminant names
// GET /api/v1/datasets/:id/contaminants
func (s *Server) handleV1ListContaminants(c *gin.Context) {
	ds, ok := s.lookupDataset(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": ds.Contaminants,
		"meta": gin.H{
			"count": len(ds.Contaminants),
		},
	})
}

func (s *Server) lookupDataset(c *gin.Context) (*dataset.Dataset, bool) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dataset id is required"})
		return nil, false
	}

	ds, ok := s.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "dataset not found"})
		return nil, false
	}
	return ds, true
}

// renderLoadError maps loader failures onto responses. Parse and schema
// problems are the uploader's to fix, so both come back as 400 with the
// specific message.
func (s *Server) renderLoadError(c *gin.Context, err error) {
	var parseErr *dataset.ParseError
	var schemaErr *dataset.SchemaError
	if errors.As(err, &parseErr) || errors.As(err, &schemaErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func datasetSummary(ds *dataset.Dataset) gin.H {
	return gin.H{
		"id":            ds.ID,
		"station_count": len(ds.Stations),
		"result_count":  len(ds.Results),
		"contaminants":  ds.Contaminants,
		"created_at":    ds.CreatedAt.Format(time.RFC3339),
	}
}

func loadStationsUpload(fh *multipart.FileHeader) ([]dataset.StationRecord, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, &dataset.ParseError{Table: "station", Err: err}
	}
	defer f.Close()
	return dataset.LoadStations(f)
}

func loadResultsUpload(fh *multipart.FileHeader) ([]dataset.ResultRecord, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, &dataset.ParseError{Table: "test results", Err: err}
	}
	defer f.Close()
	return dataset.LoadResults(f)
}
