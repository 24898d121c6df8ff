package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/marcfields/internal/core/domain"
	"github.com/custodia-labs/marcfields/internal/logger"
)

func ignoreHandler(_ *gin.Context) {
}

func (s *Server) versionHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"build": s.version})
}

func (s *Server) healthCheckHandler(c *gin.Context) {
	type hcResp struct {
		Healthy bool   `json:"healthy"`
		Message string `json:"message,omitempty"`
	}
	c.JSON(http.StatusOK, gin.H{"marcfields": hcResp{Healthy: true}})
}

// fieldsHandler extracts the posted record and returns its fields as an ordered JSON object.
func (s *Server) fieldsHandler(c *gin.Context) {
	raw, ok := readRecord(c)
	if !ok {
		return
	}

	data, err := s.ports.Index.Inspect(c.Request.Context(), raw)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// indexHandler writes the posted record to the configured sink.
func (s *Server) indexHandler(c *gin.Context) {
	raw, ok := readRecord(c)
	if !ok {
		return
	}

	report, err := s.ports.Index.IndexAll(c.Request.Context(), []domain.RawRecord{*raw})
	if err != nil {
		respondError(c, err)
		return
	}
	if len(report.Failed) > 0 {
		respondError(c, report.Failed[0].Err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"batch": report.BatchID, "indexed": report.Indexed})
}

func (s *Server) rulesHandler(c *gin.Context) {
	descs := []domain.RuleDescription{}
	if s.ports.Rules != nil {
		descs = append(descs, s.ports.Rules.Describe()...)
	}
	c.JSON(http.StatusOK, descs)
}

func (s *Server) recordHandler(c *gin.Context) {
	if s.ports.Records == nil {
		c.String(http.StatusNotFound, "no record store")
		return
	}

	rec, err := s.ports.Records.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":        rec.ID,
		"batch":     rec.BatchID,
		"uri":       rec.URI,
		"format":    rec.Format,
		"fields":    rec.Fields,
		"indexedAt": rec.IndexedAt,
	})
}

func readRecord(c *gin.Context) (*domain.RawRecord, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxRecordBytes))
	if err != nil {
		c.String(http.StatusRequestEntityTooLarge, "record too large")
		return nil, false
	}
	if len(body) == 0 {
		c.String(http.StatusBadRequest, "empty record")
		return nil, false
	}
	return &domain.RawRecord{
		URI:      c.Request.URL.Path,
		MIMEType: c.ContentType(),
		Content:  body,
	}, true
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.String(status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrMalformedXML),
		errors.Is(err, domain.ErrNotMarcxRecord),
		errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
