package service

import (
	"context"
	"strconv"

	"github.com/vaultpass/batpass-go/internal/generator"
	"github.com/vaultpass/batpass-go/internal/model"
)

const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 100
)

// EventReader reads recorded generation metadata.
type EventReader interface {
	Summary(ctx context.Context) (*model.Stats, error)
	CountByStrength(ctx context.Context) (map[int]int64, error)
	ListRecent(ctx context.Context, limit int) ([]model.GenerationEvent, error)
}

// StatsService reports on recorded generations.
type StatsService struct {
	repo EventReader
}

// NewStatsService creates a new StatsService.
func NewStatsService(repo EventReader) *StatsService {
	return &StatsService{repo: repo}
}

// Summary returns aggregate counts with a bucket for every possible score.
func (s *StatsService) Summary(ctx context.Context) (model.StatsResponse, error) {
	stats, err := s.repo.Summary(ctx)
	if err != nil {
		return model.StatsResponse{}, err
	}

	counts, err := s.repo.CountByStrength(ctx)
	if err != nil {
		return model.StatsResponse{}, err
	}

	byStrength := make(map[string]int64, generator.MaxScore+1)
	for score := 0; score <= generator.MaxScore; score++ {
		byStrength[strconv.Itoa(score)] = counts[score]
	}

	return model.StatsResponse{
		Total:         stats.Total,
		AvgLength:     stats.AvgLength,
		AvgStrength:   stats.AvgStrength,
		LastGenerated: stats.LastGenerated,
		ByStrength:    byStrength,
	}, nil
}

// Recent returns up to limit events, newest first. Out-of-range limits are
// replaced by DefaultRecentLimit or capped at MaxRecentLimit.
func (s *StatsService) Recent(ctx context.Context, limit int) ([]model.EventResponse, error) {
	switch {
	case limit <= 0:
		limit = DefaultRecentLimit
	case limit > MaxRecentLimit:
		limit = MaxRecentLimit
	}

	events, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	return eventsToResponse(events), nil
}

// eventsToResponse converts a slice of GenerationEvent to a slice of EventResponse.
func eventsToResponse(events []model.GenerationEvent) []model.EventResponse {
	result := make([]model.EventResponse, len(events))
	for i, e := range events {
		result[i] = model.EventResponse{
			ID:        e.ID,
			Length:    e.Length,
			Upper:     e.Upper,
			Lower:     e.Lower,
			Digits:    e.Digits,
			Symbols:   e.Symbols,
			Strength:  e.Strength,
			CreatedAt: e.CreatedAt,
		}
	}
	return result
}
