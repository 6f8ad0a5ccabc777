package activity

import "time"

// Map holds the encoded route geometry of an activity, as produced by the
// activity tracker export (Google polyline encoding, 1e-5 precision).
type Map struct {
	SummaryPolyline string `json:"summary_polyline"`
}

// Activity is a single recorded workout. Field names and units follow the
// Strava activity export: distances in meters, times in seconds, speeds in
// meters per second.
type Activity struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Distance           float64   `json:"distance"`
	MovingTime         int64     `json:"moving_time"`
	ElapsedTime        int64     `json:"elapsed_time"`
	TotalElevationGain float64   `json:"total_elevation_gain"`
	Type               string    `json:"type"`
	StartDate          time.Time `json:"start_date"`
	StartDateLocal     time.Time `json:"start_date_local"`
	AverageSpeed       float64   `json:"average_speed"`
	Map                *Map      `json:"map,omitempty"`
}

// SummaryPolyline returns the encoded route, or "" when the activity
// carries no geometry.
func (a Activity) SummaryPolyline() string {
	if a.Map == nil {
		return ""
	}
	return a.Map.SummaryPolyline
}

// IsRun reports whether the activity counts as a run for pace statistics.
func (a Activity) IsRun() bool {
	return a.Type == "Run" || a.Type == "Running"
}
