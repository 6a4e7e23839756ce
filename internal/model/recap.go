package model

// RecapMode selects how grade entries are grouped in a recap.
type RecapMode string

const (
	// RecapByDate groups by session date (homeroom teachers).
	RecapByDate RecapMode = "date"
	// RecapByTopic groups by topic name (subject-specialist teachers).
	RecapByTopic RecapMode = "topic"
)

// Valid reports whether m is a recognized recap mode.
func (m RecapMode) Valid() bool {
	return m == RecapByDate || m == RecapByTopic
}

// RecapCell is one student's composite for a single group (topic or date).
// The Has* flags distinguish "no data" from a recorded zero; a component
// with its flag unset never contributes to an average.
type RecapCell struct {
	DailyAverage float64 `json:"daily_average"`
	MidSemester  float64 `json:"mid_semester"`
	EndSemester  float64 `json:"end_semester"`
	GroupAverage float64 `json:"group_average"`
	HasDaily     bool    `json:"has_daily"`
	HasMid       bool    `json:"has_mid"`
	HasEnd       bool    `json:"has_end"`
}

// HasAny reports whether at least one component is present in the cell.
func (c RecapCell) HasAny() bool {
	return c.HasDaily || c.HasMid || c.HasEnd
}

// RecapRow is one student's full recap line: one cell per group label plus
// the final score across all groups with at least one component. Derived on
// demand, never persisted.
type RecapRow struct {
	StudentID     string               `json:"student_id"`
	StudentName   string               `json:"student_name"`
	NIS           string               `json:"nis"`
	Cells         map[string]RecapCell `json:"cells"`
	FinalScore    float64              `json:"final_score"`
	PresentGroups int                  `json:"present_groups"`
}

// RecapResult pairs the rows with the ordered group labels the consumer must
// preserve when laying out tabular output.
type RecapResult struct {
	Groups []string   `json:"groups"`
	Rows   []RecapRow `json:"rows"`
}
