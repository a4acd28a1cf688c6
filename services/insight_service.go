package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/t3rryhuang/Sentiment-Insight/dto"
	"github.com/t3rryhuang/Sentiment-Insight/repositories"
)

const suggestionLimit = 10

// ErrEntityNotFound reports that the requested setID has no tracked entity.
var ErrEntityNotFound = fmt.Errorf("tracked entity not found")

// InsightService is the read side over the condensed series, backing the
// dashboard API.
type InsightService struct {
	entities      *repositories.TrackedEntityRepository
	condensedLogs *repositories.MetricLogCondensedRepository
}

func NewInsightService(entities *repositories.TrackedEntityRepository, condensedLogs *repositories.MetricLogCondensedRepository) *InsightService {
	return &InsightService{entities: entities, condensedLogs: condensedLogs}
}

// Suggest returns tracked entities whose name contains q, for typeahead.
func (s *InsightService) Suggest(ctx context.Context, q string) ([]dto.EntityDTO, error) {
	items, err := s.entities.SearchByName(ctx, q, suggestionLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EntityDTO, 0, len(items))
	for _, e := range items {
		out = append(out, dto.NewEntityDTO(e))
	}
	return out, nil
}

// Series returns the per-date condensed rows for one entity inside [start, end].
func (s *InsightService) Series(ctx context.Context, setID uint, start, end time.Time) ([]dto.SeriesPointDTO, error) {
	if err := s.requireEntity(ctx, setID); err != nil {
		return nil, err
	}
	points, err := s.condensedLogs.Series(ctx, setID, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SeriesPointDTO, 0, len(points))
	for _, p := range points {
		out = append(out, dto.NewSeriesPointDTO(p))
	}
	return out, nil
}

// NetSeverity returns the impressions-weighted mean severity over the window,
// excluding rows that were never scored.
func (s *InsightService) NetSeverity(ctx context.Context, setID uint, start, end time.Time) (*dto.NetSeverityDTO, error) {
	if err := s.requireEntity(ctx, setID); err != nil {
		return nil, err
	}
	value, scored, err := s.condensedLogs.NetSeverity(ctx, setID, start, end)
	if err != nil {
		return nil, err
	}
	out := dto.NewNetSeverityDTO(setID, start, end, value, scored)
	return &out, nil
}

func (s *InsightService) requireEntity(ctx context.Context, setID uint) error {
	if _, err := s.entities.GetByID(ctx, setID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntityNotFound
		}
		return err
	}
	return nil
}
