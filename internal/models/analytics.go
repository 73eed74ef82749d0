package models

// Analytics is the read-only aggregate view served to the dashboard.
// SkillMastery is empty, not nil-scored, when the oracle is unreachable:
// absence means "unknown", never "zero mastery".
type Analytics struct {
	TotalProblems   int                `json:"total_problems"`
	CorrectProblems int                `json:"correct_problems"`
	Accuracy        int                `json:"accuracy"`
	SkillMastery    map[string]float64 `json:"skill_mastery"`
	RecentActivity  []Interaction      `json:"recent_activity"`
}
