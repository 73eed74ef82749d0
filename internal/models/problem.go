package models

import "time"

// Problem difficulty levels
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// MCQ question categories
const (
	CategoryDataStructure = "data-structure"
	CategoryAlgorithm     = "algorithm"
	CategoryApproach      = "approach"
)

type Problem struct {
	ID              int64         `json:"id"`
	Title           string        `json:"title"`
	Difficulty      string        `json:"difficulty"`
	Description     string        `json:"description"`
	InputFormat     string        `json:"input_format"`
	OutputFormat    string        `json:"output_format"`
	Constraints     []string      `json:"constraints"`
	Skills          []string      `json:"skills"`
	Hints           []string      `json:"hints"`
	OptimalSolution string        `json:"optimal_solution,omitempty"`
	LeetcodeURL     string        `json:"leetcode_url,omitempty"`
	EstimatedTime   int           `json:"estimated_time,omitempty"` // minutes
	MCQQuestions    []MCQQuestion `json:"mcq_questions"`
	CreatedAt       time.Time     `json:"created_at"`
}

type MCQQuestion struct {
	ID            int64    `json:"id"`
	ProblemID     int64    `json:"problem_id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Category      string   `json:"category"`
}

type ProblemFilter struct {
	Difficulty string
	Skill      string
	IDs        []int64
	ExcludeIDs []int64
	Limit      int
	Offset     int
}
