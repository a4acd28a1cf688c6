package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/t3rryhuang/Sentiment-Insight/api/handlers"
	"github.com/t3rryhuang/Sentiment-Insight/dto"
	"github.com/t3rryhuang/Sentiment-Insight/services"
)

type stubInsight struct {
	err error
}

func (s *stubInsight) Suggest(ctx context.Context, q string) ([]dto.EntityDTO, error) {
	return nil, s.err
}

func (s *stubInsight) Series(ctx context.Context, setID uint, start, end time.Time) ([]dto.SeriesPointDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []dto.SeriesPointDTO{}, nil
}

func (s *stubInsight) NetSeverity(ctx context.Context, setID uint, start, end time.Time) (*dto.NetSeverityDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.NetSeverityDTO{}, nil
}

func newTestRouter(svc handlers.InsightProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/entities/:setID/series", handlers.SeriesHandler(svc))
	r.GET("/entities/:setID/net-severity", handlers.NetSeverityHandler(svc))
	return r
}

func doGet(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestSeriesHandlerMissingEntityIs404(t *testing.T) {
	r := newTestRouter(&stubInsight{err: services.ErrEntityNotFound})
	w := doGet(t, r, "/entities/42/series")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSeriesHandlerServiceFailureIs500(t *testing.T) {
	r := newTestRouter(&stubInsight{err: fmt.Errorf("connection refused")})
	w := doGet(t, r, "/entities/42/series")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestNetSeverityHandlerMissingEntityIs404(t *testing.T) {
	r := newTestRouter(&stubInsight{err: services.ErrEntityNotFound})
	w := doGet(t, r, "/entities/42/net-severity")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNetSeverityHandlerServiceFailureIs500(t *testing.T) {
	r := newTestRouter(&stubInsight{err: fmt.Errorf("connection refused")})
	w := doGet(t, r, "/entities/42/net-severity")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSeriesHandlerRejectsBadParams(t *testing.T) {
	r := newTestRouter(&stubInsight{})

	w := doGet(t, r, "/entities/abc/series")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doGet(t, r, "/entities/42/series?start=2026-08-30&end=2026-08-01")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSeriesHandlerOK(t *testing.T) {
	r := newTestRouter(&stubInsight{})
	w := doGet(t, r, "/entities/42/series?start=2026-08-01&end=2026-08-30")
	assert.Equal(t, http.StatusOK, w.Code)
}
