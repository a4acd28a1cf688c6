package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/t3rryhuang/Sentiment-Insight/dto"
	"github.com/t3rryhuang/Sentiment-Insight/services"
)

// InsightProvider is the read service surface the handlers expose.
// *services.InsightService satisfies it.
type InsightProvider interface {
	Suggest(ctx context.Context, q string) ([]dto.EntityDTO, error)
	Series(ctx context.Context, setID uint, start, end time.Time) ([]dto.SeriesPointDTO, error)
	NetSeverity(ctx context.Context, setID uint, start, end time.Time) (*dto.NetSeverityDTO, error)
}

// SuggestEntitiesHandler returns tracked entities matching the q parameter,
// for the search box typeahead.
func SuggestEntitiesHandler(svc InsightProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")
		if q == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
			return
		}
		items, err := svc.Suggest(c.Request.Context(), q)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// SeriesHandler returns the condensed sentiment series for one entity between
// start and end (inclusive, YYYY-MM-DD; default trailing 30 days).
func SeriesHandler(svc InsightProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		setID, ok := setIDParam(c)
		if !ok {
			return
		}
		start, end, ok := windowParams(c)
		if !ok {
			return
		}
		items, err := svc.Series(c.Request.Context(), setID, start, end)
		if err != nil {
			serviceError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// NetSeverityHandler returns the impressions-weighted mean severity for one
// entity between start and end.
func NetSeverityHandler(svc InsightProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		setID, ok := setIDParam(c)
		if !ok {
			return
		}
		start, end, ok := windowParams(c)
		if !ok {
			return
		}
		out, err := svc.NetSeverity(c.Request.Context(), setID, start, end)
		if err != nil {
			serviceError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// serviceError maps a missing entity to 404; everything else is a server
// fault and reported as 500.
func serviceError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrEntityNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "entity not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func setIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("setID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid setID"})
		return 0, false
	}
	return uint(id), true
}

func windowParams(c *gin.Context) (start, end time.Time, ok bool) {
	end = time.Now().UTC().Truncate(24 * time.Hour)
	start = end.AddDate(0, 0, -30)

	if v := c.Query("start"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date, use YYYY-MM-DD"})
			return start, end, false
		}
		start = t
	}
	if v := c.Query("end"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date, use YYYY-MM-DD"})
			return start, end, false
		}
		end = t
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end is before start"})
		return start, end, false
	}
	return start, end, true
}
