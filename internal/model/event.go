package model

import "time"

// GenerationEvent records the settings of one generation. The password itself is never stored.
type GenerationEvent struct {
	ID        int64
	Length    int
	Upper     bool
	Lower     bool
	Digits    bool
	Symbols   bool
	Strength  int
	CreatedAt time.Time
}

// Stats aggregates recorded generation events.
type Stats struct {
	Total         int64
	AvgLength     float64
	AvgStrength   float64
	LastGenerated *time.Time
}

// StatsResponse represents the stats endpoint payload.
type StatsResponse struct {
	Total         int64            `json:"total"`
	AvgLength     float64          `json:"avg_length"`
	AvgStrength   float64          `json:"avg_strength"`
	LastGenerated *time.Time       `json:"last_generated,omitempty"`
	ByStrength    map[string]int64 `json:"by_strength"`
}

// EventResponse represents a single generation event in API responses.
type EventResponse struct {
	ID        int64     `json:"id"`
	Length    int       `json:"length"`
	Upper     bool      `json:"uppercase"`
	Lower     bool      `json:"lowercase"`
	Digits    bool      `json:"numbers"`
	Symbols   bool      `json:"symbols"`
	Strength  int       `json:"strength"`
	CreatedAt time.Time `json:"created_at"`
}
