package models

// TimeSeriesPoint is one day of aggregated journal counts.
type TimeSeriesPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}
