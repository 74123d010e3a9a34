package domain

import "time"

// TimeLayout is the ISO-8601 layout used for Spot.CreatedAt.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

type Spot struct {
	ID           string `json:"id"`
	Category     string `json:"category"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	City         string `json:"city"`
	District     string `json:"district"`
	Location     string `json:"location"`
	AveragePrice string `json:"averagePrice"`
	Review       string `json:"review"`
	Image        string `json:"image"`
	CreatedAt    string `json:"createdAt"`
}

// SpotInput carries the caller-supplied fields of a Spot. Image is either a
// data-URL payload, an already stored reference, or empty.
type SpotInput struct {
	Category     string `json:"category" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Type         string `json:"type"`
	City         string `json:"city" validate:"required"`
	District     string `json:"district" validate:"required"`
	Location     string `json:"location"`
	AveragePrice string `json:"averagePrice"`
	Review       string `json:"review" validate:"required,max=100"`
	Image        string `json:"image"`
}

// SpotFilter narrows ListSpots. Zero value matches everything.
type SpotFilter struct {
	Category string
	Query    string
}

// Count is one bar of a dashboard chart.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type Stats struct {
	Total      int     `json:"total"`
	Categories int     `json:"categories"`
	Districts  int     `json:"districts"`
	ByCategory []Count `json:"byCategory"`
	ByDistrict []Count `json:"byDistrict"`
}

// FormatTime renders t the way CreatedAt is stored.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
