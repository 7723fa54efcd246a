package models

// ActivityRequest records a flexible task the user wants time for.
// It is never placed into the timetable automatically.
type ActivityRequest struct {
	ID           string `json:"id"`
	Activity     string `json:"activity"`
	Priority     int    `json:"priority"`      // 1-5
	Deadline     int    `json:"deadline"`      // days remaining at submission, may be negative
	Timing       int    `json:"timing"`        // hours required, 1-24
	DeadlineDate string `json:"deadline_date"` // YYYY-MM-DD format
	SubmittedAt  string `json:"submitted_at"`  // RFC3339 timestamp
}

// CompulsoryEventRequest records a fixed commitment as the user entered it.
type CompulsoryEventRequest struct {
	ID          string `json:"id"`
	Event       string `json:"event"`
	Day         Day    `json:"day"`
	StartTime   string `json:"start_time"` // HH:MM format
	EndTime     string `json:"end_time"`   // HH:MM format
	SubmittedAt string `json:"submitted_at"`
}
