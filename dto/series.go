package dto

import (
	"time"

	"github.com/t3rryhuang/Sentiment-Insight/repositories"
)

// SeriesPointDTO is one condensed observation in a sentiment-over-time series.
// Severity is omitted when the underlying rows were never scored.
type SeriesPointDTO struct {
	Date        string `json:"date"`
	Topic       string `json:"topic"`
	Category    string `json:"category"`
	Impressions int    `json:"impressions"`
	Severity    *int   `json:"severity,omitempty"`
}

func NewSeriesPointDTO(p repositories.SeriesPoint) SeriesPointDTO {
	out := SeriesPointDTO{
		Date:        p.Date.Format("2006-01-02"),
		Topic:       p.Topic,
		Category:    p.Category,
		Impressions: p.Impressions,
	}
	if p.Severity >= 0 {
		sev := p.Severity
		out.Severity = &sev
	}
	return out
}

// NetSeverityDTO carries the impressions-weighted mean severity for an entity
// over a window. Scored is false when no scored rows exist in the window.
type NetSeverityDTO struct {
	SetID       uint    `json:"setID"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	NetSeverity float64 `json:"netSeverity"`
	Scored      bool    `json:"scored"`
}

func NewNetSeverityDTO(setID uint, start, end time.Time, value float64, scored bool) NetSeverityDTO {
	return NetSeverityDTO{
		SetID:       setID,
		Start:       start.Format("2006-01-02"),
		End:         end.Format("2006-01-02"),
		NetSeverity: value,
		Scored:      scored,
	}
}
