package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/dhruvbhalode/capstone/internal/models"
	"github.com/dhruvbhalode/capstone/internal/repository"
	"github.com/dhruvbhalode/capstone/internal/repository/sqlite"
	"github.com/dhruvbhalode/capstone/internal/testutil"
)

type ProblemRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ProblemRepository
}

func (s *ProblemRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProblemRepository(s.db)
}

func (s *ProblemRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ProblemRepositorySuite) insertProblem(title, difficulty string, skills []string) int64 {
	id, err := s.repo.Insert(context.Background(), models.Problem{
		Title:       title,
		Difficulty:  difficulty,
		Description: "desc",
		Skills:      skills,
	})
	s.Require().NoError(err)
	return id
}

func (s *ProblemRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()

	id, err := s.repo.Insert(ctx, models.Problem{
		Title:        "Two Sum",
		Difficulty:   models.DifficultyEasy,
		Description:  "Find two numbers adding to target.",
		InputFormat:  "nums, target",
		OutputFormat: "indices",
		Constraints:  []string{"2 <= nums.length <= 10^4"},
		Skills:       []string{"arrays", "hash-table"},
		Hints:        []string{"hash map"},
		LeetcodeURL:  "https://leetcode.com/problems/two-sum/",
		EstimatedTime: 15,
		MCQQuestions: []models.MCQQuestion{
			{Question: "Q1", Options: []string{"a", "b"}, CorrectAnswer: 1, Explanation: "e1", Category: models.CategoryDataStructure},
			{Question: "Q2", Options: []string{"c", "d"}, CorrectAnswer: 0, Explanation: "e2", Category: models.CategoryAlgorithm},
		},
	})
	s.Require().NoError(err)

	p, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(p)

	s.Equal("Two Sum", p.Title)
	s.Equal([]string{"arrays", "hash-table"}, p.Skills)
	s.Equal([]string{"2 <= nums.length <= 10^4"}, p.Constraints)
	s.Require().Len(p.MCQQuestions, 2)
	s.Equal("Q1", p.MCQQuestions[0].Question, "questions come back in authored order")
	s.Equal([]string{"a", "b"}, p.MCQQuestions[0].Options)
	s.Equal("Q2", p.MCQQuestions[1].Question)
}

func (s *ProblemRepositorySuite) TestGetMissing() {
	p, err := s.repo.Get(context.Background(), 12345)
	s.Require().NoError(err)
	s.Nil(p)
}

func (s *ProblemRepositorySuite) TestListByDifficulty() {
	ctx := context.Background()
	s.insertProblem("A", models.DifficultyEasy, nil)
	s.insertProblem("B", models.DifficultyHard, nil)
	s.insertProblem("C", models.DifficultyEasy, nil)

	easy, err := s.repo.List(ctx, models.ProblemFilter{Difficulty: models.DifficultyEasy})
	s.Require().NoError(err)
	s.Require().Len(easy, 2)
	s.Equal("A", easy[0].Title)
	s.Equal("C", easy[1].Title)
}

func (s *ProblemRepositorySuite) TestListBySkill() {
	ctx := context.Background()
	s.insertProblem("A", models.DifficultyEasy, []string{"arrays", "hash-table"})
	s.insertProblem("B", models.DifficultyEasy, []string{"graph"})
	s.insertProblem("C", models.DifficultyEasy, []string{"arrays"})

	arrays, err := s.repo.List(ctx, models.ProblemFilter{Skill: "arrays"})
	s.Require().NoError(err)
	s.Require().Len(arrays, 2)
	s.Equal("A", arrays[0].Title)
	s.Equal("C", arrays[1].Title)
}

func (s *ProblemRepositorySuite) TestListExcludeIDs() {
	ctx := context.Background()
	a := s.insertProblem("A", models.DifficultyEasy, nil)
	s.insertProblem("B", models.DifficultyEasy, nil)
	c := s.insertProblem("C", models.DifficultyEasy, nil)

	remaining, err := s.repo.List(ctx, models.ProblemFilter{ExcludeIDs: []int64{a, c}})
	s.Require().NoError(err)
	s.Require().Len(remaining, 1)
	s.Equal("B", remaining[0].Title)
}

func (s *ProblemRepositorySuite) TestListByIDs() {
	ctx := context.Background()
	a := s.insertProblem("A", models.DifficultyEasy, nil)
	s.insertProblem("B", models.DifficultyEasy, nil)
	c := s.insertProblem("C", models.DifficultyEasy, nil)

	picked, err := s.repo.List(ctx, models.ProblemFilter{IDs: []int64{a, c}})
	s.Require().NoError(err)
	s.Require().Len(picked, 2)
	s.Equal(a, picked[0].ID)
	s.Equal(c, picked[1].ID)
}

func (s *ProblemRepositorySuite) TestListLimit() {
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		s.insertProblem("P", models.DifficultyMedium, nil)
	}

	page, err := s.repo.List(ctx, models.ProblemFilter{Limit: 3})
	s.Require().NoError(err)
	s.Len(page, 3)
}

func (s *ProblemRepositorySuite) TestCount() {
	ctx := context.Background()
	s.insertProblem("A", models.DifficultyEasy, nil)
	s.insertProblem("B", models.DifficultyHard, nil)

	total, err := s.repo.Count(ctx, models.ProblemFilter{})
	s.Require().NoError(err)
	s.Equal(2, total)

	hard, err := s.repo.Count(ctx, models.ProblemFilter{Difficulty: models.DifficultyHard})
	s.Require().NoError(err)
	s.Equal(1, hard)
}

func TestProblemRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProblemRepositorySuite))
}
