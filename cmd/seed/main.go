package main

import (
	"context"
	"os"

	"github.com/dhruvbhalode/capstone/internal/config"
	"github.com/dhruvbhalode/capstone/internal/db"
	"github.com/dhruvbhalode/capstone/internal/logger"
	"github.com/dhruvbhalode/capstone/internal/models"
	"github.com/dhruvbhalode/capstone/internal/repository/sqlite"
)

// Seeds the problem bank. Safe to run once against a fresh database; running
// it again inserts duplicate titles, so keep it out of production cron.
func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer database.Close()

	problemRepo := sqlite.NewProblemRepository(database.DB)

	ctx := context.Background()
	existing, err := problemRepo.Count(ctx, models.ProblemFilter{})
	if err != nil {
		log.Error("failed to count problems: %v", err)
		os.Exit(1)
	}
	if existing > 0 {
		log.Info("problem bank already has %d problems, nothing to do", existing)
		return
	}

	for _, p := range starterProblems() {
		id, err := problemRepo.Insert(ctx, p)
		if err != nil {
			log.Error("failed to insert %q: %v", p.Title, err)
			os.Exit(1)
		}
		log.Info("inserted problem %d: %s (%s)", id, p.Title, p.Difficulty)
	}

	log.Info("seeded %d problems", len(starterProblems()))
}

func starterProblems() []models.Problem {
	return []models.Problem{
		{
			Title:       "Two Sum",
			Difficulty:  models.DifficultyEasy,
			Description: "Given an array of integers nums and an integer target, return indices of the two numbers such that they add up to target. You may assume that each input has exactly one solution, and you may not use the same element twice.",
			InputFormat: "An array of integers nums and an integer target.",
			OutputFormat: "Indices of the two numbers that add up to target.",
			Constraints: []string{
				"2 <= nums.length <= 10^4",
				"-10^9 <= nums[i] <= 10^9",
				"Only one valid answer exists",
			},
			Skills:        []string{"arrays", "hash-table"},
			Hints:         []string{"Think about what you need to find for each element.", "A hash map lets you look up complements in O(1)."},
			LeetcodeURL:   "https://leetcode.com/problems/two-sum/",
			EstimatedTime: 15,
			MCQQuestions: []models.MCQQuestion{
				{
					Question:      "Which data structure gives O(1) average lookup for the complement of each element?",
					Options:       []string{"Sorted array", "Hash map", "Linked list", "Binary heap"},
					CorrectAnswer: 1,
					Explanation:   "A hash map stores value to index mappings with O(1) average lookup.",
					Category:      models.CategoryDataStructure,
				},
				{
					Question:      "What is the time complexity of the optimal single-pass solution?",
					Options:       []string{"O(n^2)", "O(n log n)", "O(n)", "O(1)"},
					CorrectAnswer: 2,
					Explanation:   "One pass over the array with constant-time hash lookups is linear.",
					Category:      models.CategoryAlgorithm,
				},
			},
		},
		{
			Title:       "Valid Parentheses",
			Difficulty:  models.DifficultyEasy,
			Description: "Given a string s containing just the characters '(', ')', '{', '}', '[' and ']', determine if the input string is valid. Brackets must close in the correct order.",
			InputFormat: "A string s of bracket characters.",
			OutputFormat: "true if the string is valid, false otherwise.",
			Constraints: []string{
				"1 <= s.length <= 10^4",
				"s consists of parentheses only",
			},
			Skills:        []string{"stack", "strings"},
			Hints:         []string{"Process the string one character at a time.", "When you see a closing bracket, what must the most recent unclosed bracket be?"},
			LeetcodeURL:   "https://leetcode.com/problems/valid-parentheses/",
			EstimatedTime: 10,
			MCQQuestions: []models.MCQQuestion{
				{
					Question:      "Which data structure naturally matches the most-recent-open-bracket requirement?",
					Options:       []string{"Queue", "Stack", "Set", "Trie"},
					CorrectAnswer: 1,
					Explanation:   "Last-in first-out ordering is exactly what bracket matching needs.",
					Category:      models.CategoryDataStructure,
				},
				{
					Question:      "What should the stack look like after processing a valid string?",
					Options:       []string{"Full", "Contains one element", "Empty", "Sorted"},
					CorrectAnswer: 2,
					Explanation:   "Every opener must have been matched and popped by a closer.",
					Category:      models.CategoryApproach,
				},
			},
		},
		{
			Title:       "Merge Two Sorted Lists",
			Difficulty:  models.DifficultyEasy,
			Description: "You are given the heads of two sorted linked lists list1 and list2. Merge the two lists into one sorted list by splicing together the nodes of the two lists.",
			InputFormat: "Heads of two sorted linked lists.",
			OutputFormat: "Head of the merged sorted linked list.",
			Constraints: []string{
				"The number of nodes in both lists is in the range [0, 50]",
				"Both list1 and list2 are sorted in non-decreasing order",
			},
			Skills:        []string{"linked-list", "recursion"},
			Hints:         []string{"Compare the heads of both lists.", "A dummy head node simplifies edge cases."},
			LeetcodeURL:   "https://leetcode.com/problems/merge-two-sorted-lists/",
			EstimatedTime: 15,
			MCQQuestions: []models.MCQQuestion{
				{
					Question:      "Why does a dummy head node simplify the iterative solution?",
					Options:       []string{"It reduces time complexity", "It avoids special-casing the first node", "It saves memory", "It sorts the input"},
					CorrectAnswer: 1,
					Explanation:   "With a dummy head every append goes through the same tail pointer logic.",
					Category:      models.CategoryApproach,
				},
			},
		},
		{
			Title:       "Longest Substring Without Repeating Characters",
			Difficulty:  models.DifficultyMedium,
			Description: "Given a string s, find the length of the longest substring without repeating characters.",
			InputFormat: "A string s.",
			OutputFormat: "The length of the longest substring without repeating characters.",
			Constraints: []string{
				"0 <= s.length <= 5 * 10^4",
				"s consists of English letters, digits, symbols and spaces",
			},
			Skills:        []string{"strings", "sliding-window", "hash-table"},
			Hints:         []string{"Keep a window that never contains a duplicate.", "When a duplicate enters, move the left edge past its previous position."},
			LeetcodeURL:   "https://leetcode.com/problems/longest-substring-without-repeating-characters/",
			EstimatedTime: 25,
			MCQQuestions: []models.MCQQuestion{
				{
					Question:      "Which technique keeps the solution linear instead of quadratic?",
					Options:       []string{"Binary search", "Sliding window", "Dynamic programming", "Divide and conquer"},
					CorrectAnswer: 1,
					Explanation:   "Both window edges only move forward, so each character is visited at most twice.",
					Category:      models.CategoryAlgorithm,
				},
				{
					Question:      "What should the window do when the incoming character already exists inside it?",
					Options:       []string{"Reset to empty", "Shrink from the left past the duplicate", "Skip the character", "Expand from the right"},
					CorrectAnswer: 1,
					Explanation:   "Shrinking just past the previous occurrence preserves the no-duplicate invariant with minimal loss.",
					Category:      models.CategoryApproach,
				},
			},
		},
		{
			Title:       "Course Schedule",
			Difficulty:  models.DifficultyMedium,
			Description: "There are numCourses courses labeled from 0 to numCourses - 1. Given a list of prerequisite pairs, return true if you can finish all courses.",
			InputFormat: "An integer numCourses and an array of prerequisite pairs.",
			OutputFormat: "true if all courses can be finished, false otherwise.",
			Constraints: []string{
				"1 <= numCourses <= 2000",
				"0 <= prerequisites.length <= 5000",
			},
			Skills:        []string{"graph", "topological-sort", "bfs"},
			Hints:         []string{"Model the courses as a directed graph.", "The courses can all be finished exactly when the graph has no cycle."},
			LeetcodeURL:   "https://leetcode.com/problems/course-schedule/",
			EstimatedTime: 30,
			MCQQuestions: []models.MCQQuestion{
				{
					Question:      "What graph property makes the schedule impossible to finish?",
					Options:       []string{"Disconnected components", "A cycle", "Multiple edges", "Self-loops only"},
					CorrectAnswer: 1,
					Explanation:   "A cycle means some course transitively requires itself.",
					Category:      models.CategoryAlgorithm,
				},
				{
					Question:      "In Kahn's algorithm, which nodes enter the queue first?",
					Options:       []string{"Nodes with in-degree zero", "Nodes with out-degree zero", "The highest-numbered node", "A random node"},
					CorrectAnswer: 0,
					Explanation:   "Courses with no prerequisites can be taken immediately.",
					Category:      models.CategoryApproach,
				},
			},
		},
		{
			Title:       "Trapping Rain Water",
			Difficulty:  models.DifficultyHard,
			Description: "Given n non-negative integers representing an elevation map where the width of each bar is 1, compute how much water it can trap after raining.",
			InputFormat: "An array of non-negative integers height.",
			OutputFormat: "The total units of trapped water.",
			Constraints: []string{
				"1 <= height.length <= 2 * 10^4",
				"0 <= height[i] <= 10^5",
			},
			Skills:        []string{"arrays", "two-pointers", "dynamic-programming"},
			Hints:         []string{"Water above a bar is bounded by the shorter of the tallest bars to its left and right.", "Two pointers moving inward avoid precomputing both max arrays."},
			LeetcodeURL:   "https://leetcode.com/problems/trapping-rain-water/",
			EstimatedTime: 40,
			MCQQuestions: []models.MCQQuestion{
				{
					Question:      "What bounds the water level above any single bar?",
					Options:       []string{"The tallest bar overall", "The shorter of the max heights to its left and right", "The adjacent bars", "The average height"},
					CorrectAnswer: 1,
					Explanation:   "Water spills over whichever side is lower.",
					Category:      models.CategoryAlgorithm,
				},
				{
					Question:      "Which approach achieves O(n) time with O(1) extra space?",
					Options:       []string{"Precomputed prefix maxima", "Monotonic stack", "Two pointers", "Segment tree"},
					CorrectAnswer: 2,
					Explanation:   "Two pointers track running maxima from both ends without auxiliary arrays.",
					Category:      models.CategoryApproach,
				},
			},
		},
	}
}
