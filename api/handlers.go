package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ragtext/ragtext/pkg/errors"
	"github.com/ragtext/ragtext/pkg/ingest"
	"github.com/ragtext/ragtext/pkg/types"
)

// handleIngest chunks, embeds, and indexes all files matching the source
// pattern. A fully successful batch returns 200, a mixed batch 207, and a
// pattern matching nothing 404.
func (s *Server) handleIngest(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	files, err := ingest.Discover(s.dataDir, req.Source)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if len(files) == 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "no files match source: " + req.Source,
			Code:  string(errors.ErrCodeSourceNotFound),
		})
		return
	}

	result := s.pipeline.IngestBatch(c.Request.Context(), files, req.Strategy)

	status := http.StatusOK
	if result.Status == ingest.StatusPartial || result.Status == ingest.StatusFailed {
		status = http.StatusMultiStatus
	}

	c.JSON(status, IngestResponse{
		Status:      result.Status,
		Files:       result.Files,
		TotalChunks: result.TotalChunks,
	})
}

// handleSearch runs a similarity search over the collection
func (s *Server) handleSearch(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	limit := 0
	if req.TopK != nil {
		limit = *req.TopK
	}

	results, err := s.chat.Search(c.Request.Context(), req.Query, limit)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SearchResponse{Results: results})
}

// handleChat answers a question with retrieved context
func (s *Server) handleChat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	limit := 0
	if req.TopK != nil {
		limit = *req.TopK
	}

	answer, err := s.chat.Ask(c.Request.Context(), req.Question, limit)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ChatResponse{
		Answer:  answer.Text,
		Sources: answer.Sources,
	})
}

// handleHealth reports service and vector store health
func (s *Server) handleHealth(c *gin.Context) {
	resp := HealthResponse{
		Status:     "ok",
		VectorDB:   "ok",
		Collection: s.collection,
	}

	status := http.StatusOK
	if err := s.store.HealthCheck(c.Request.Context()); err != nil {
		resp.Status = "degraded"
		resp.VectorDB = err.Error()
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, resp)
}

// respondError maps domain errors onto HTTP status codes
func (s *Server) respondError(c *gin.Context, err error) {
	resp := ErrorResponse{Error: err.Error()}
	status := http.StatusInternalServerError

	if ragErr := errors.GetRagError(err); ragErr != nil {
		resp.Code = string(ragErr.Code)
		switch ragErr.Type {
		case types.ErrorTypeValidation:
			status = http.StatusBadRequest
		case types.ErrorTypeNotFound:
			status = http.StatusNotFound
		case types.ErrorTypeExternal:
			status = http.StatusBadGateway
		}
	}

	s.logger.Error("request failed", err, map[string]interface{}{
		"path":   c.Request.URL.Path,
		"status": status,
	})
	c.JSON(status, resp)
}
