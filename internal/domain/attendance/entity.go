package attendance

// Record is a single check-in event. Time is a 24-hour "HH:MM" clock string.
type Record struct {
	PersonID string `json:"person_id"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}
