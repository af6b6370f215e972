package http

import "github.com/gin-gonic/gin"

// registerV1Routes sets up the v1 API structure.
// Groups: /api/v1/datasets
func (s *Server) registerV1Routes() {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware()) // Add X-API-Version: v1 header

	// Dataset endpoints - upload lifecycle and metadata
	datasets := v1.Group("/datasets")
	{
		datasets.POST("", s.handleV1CreateDataset)
		datasets.GET("/:id", s.handleV1GetDataset)
		datasets.DELETE("/:id", s.handleV1DeleteDataset)
		datasets.GET("/:id/contaminants", s.handleV1ListContaminants)

		// Explore endpoints - filtered views over one dataset
		datasets.GET("/:id/defaults", s.handleV1Defaults)
		datasets.GET("/:id/stations", s.handleV1Stations)
		datasets.GET("/:id/trend", s.handleV1Trend)
	}
}

func apiVersionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-API-Version", "v1")
		c.Next()
	}
}
