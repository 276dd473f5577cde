package models

import (
	"net/http"
	"time"

	"techtrends.sheridan.dev/internal/trends"
)

// TrendsResponse is the body of GET /api/bq.
type TrendsResponse struct {
	Trends []trends.TrendResult `json:"trends"`
}

// NewTrendsResponse wraps results, encoding a nil slice as an empty list.
func NewTrendsResponse(results []trends.TrendResult) TrendsResponse {
	if results == nil {
		results = []trends.TrendResult{}
	}
	return TrendsResponse{Trends: results}
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Code        int    `json:"code"`
	CurrentTime int64  `json:"currentTime"`
	Text        string `json:"text"`
	Version     int    `json:"version"`
}

func NewErrorResponse(code int, text string) ErrorResponse {
	if text == "" {
		text = http.StatusText(code)
	}
	return ErrorResponse{
		Code:        code,
		CurrentTime: ResponseCurrentTime(),
		Text:        text,
		Version:     1,
	}
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	Source string `json:"source"`
	Env    string `json:"env"`
}

// ResponseCurrentTime returns the current time in Unix milliseconds.
func ResponseCurrentTime() int64 {
	return time.Now().UnixMilli()
}
