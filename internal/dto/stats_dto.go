package dto

// DailyStatDTO is one point in the dashboard time series.
type DailyStatDTO struct {
	Date          string  `json:"date"`
	SafetyScore   float64 `json:"safety_score"`
	IncidentCount float64 `json:"incident_count"`
	ActivityLevel float64 `json:"activity_level"`
}

// StatsSummaryResponse aggregates the demo time series with live
// assessment counts from the database.
type StatsSummaryResponse struct {
	Days               []DailyStatDTO `json:"days"`
	AverageSafetyScore float64        `json:"average_safety_score"`
	TotalIncidents     float64        `json:"total_incidents"`
	BestDay            string         `json:"best_day"`
	WorstDay           string         `json:"worst_day"`
	TotalAssessments   int64          `json:"total_assessments"`
	SafeAssessments    int64          `json:"safe_assessments"`
	UnsafeAssessments  int64          `json:"unsafe_assessments"`
}

// VideoDTO is one entry in the demo motion catalog for the player
// dropdown.
type VideoDTO struct {
	Label  string `json:"label"`
	Source string `json:"source"`
}
